package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type countingJob struct {
	runs atomic.Int64
	fail bool
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) Run(context.Context) error {
	j.runs.Add(1)
	if j.fail {
		return context.DeadlineExceeded
	}
	return nil
}

func TestScheduler_RunsImmediatelyAndOnTicks(t *testing.T) {
	job := &countingJob{}
	s := New(zerolog.Nop())
	s.Register(job, 20*time.Millisecond)

	s.Start(context.Background())
	defer s.Stop()

	// The startup run happens before the first tick.
	assert.Eventually(t, func() bool { return job.runs.Load() >= 1 }, time.Second, time.Millisecond)

	// And the ticker keeps it going.
	assert.Eventually(t, func() bool { return job.runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_StopWaitsAndHalts(t *testing.T) {
	job := &countingJob{}
	s := New(zerolog.Nop())
	s.Register(job, 10*time.Millisecond)

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return job.runs.Load() >= 1 }, time.Second, time.Millisecond)
	s.Stop()

	after := job.runs.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, after, job.runs.Load())

	// Stopping twice is harmless.
	s.Stop()
}

func TestScheduler_FailingJobKeepsRunning(t *testing.T) {
	job := &countingJob{fail: true}
	s := New(zerolog.Nop())
	s.Register(job, 10*time.Millisecond)

	s.Start(context.Background())
	defer s.Stop()

	// A failing run is logged and retried on the next tick, not fatal.
	assert.Eventually(t, func() bool { return job.runs.Load() >= 2 }, time.Second, time.Millisecond)
}

func TestScheduler_StartIsIdempotent(t *testing.T) {
	job := &countingJob{}
	s := New(zerolog.Nop())
	s.Register(job, time.Hour)

	s.Start(context.Background())
	s.Start(context.Background())
	defer s.Stop()

	assert.Eventually(t, func() bool { return job.runs.Load() >= 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	// A doubled Start must not double the startup run.
	assert.Equal(t, int64(1), job.runs.Load())
}

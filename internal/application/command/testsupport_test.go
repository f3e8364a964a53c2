package command

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/worklink-hub/worklink-platform/internal/domain/account"
	"github.com/worklink-hub/worklink-platform/internal/domain/application"
	"github.com/worklink-hub/worklink-platform/internal/domain/project"
	"github.com/worklink-hub/worklink-platform/internal/domain/review"
	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// IN-MEMORY TEST DOUBLES
// One memStore backs every repository of a test, so a handler sees the
// same data through every TxRepos member, like repositories sharing one
// transaction do.
// ══════════════════════════════════════════════════════════════════════════════

type memStore struct {
	companies     map[string]*account.Company
	students      map[string]*account.Student
	skills        map[shared.SkillName]*account.Skill
	projects      map[string]*project.Project
	modules       map[string]*project.Module
	applications  map[string]*application.Application
	progress      map[string]*application.ModuleProgress // key appID+"/"+moduleID
	reviews       map[string]*review.Review
	moderationLog []review.ModerationEntry
}

func newMemStore() *memStore {
	return &memStore{
		companies:    make(map[string]*account.Company),
		students:     make(map[string]*account.Student),
		skills:       make(map[shared.SkillName]*account.Skill),
		projects:     make(map[string]*project.Project),
		modules:      make(map[string]*project.Module),
		applications: make(map[string]*application.Application),
		progress:     make(map[string]*application.ModuleProgress),
		reviews:      make(map[string]*review.Review),
	}
}

func (s *memStore) repos() TxRepos {
	return TxRepos{
		Companies:     &memCompanyRepo{s},
		Students:      &memStudentRepo{s},
		Projects:      &memProjectRepo{s},
		Modules:       &memModuleRepo{s},
		Applications:  &memApplicationRepo{s},
		Progress:      &memProgressRepo{s},
		Reviews:       &memReviewRepo{s},
		ModerationLog: &memModerationLog{s},
	}
}

// memUnitOfWork hands the handler the store's repositories directly;
// rollback semantics are not modeled because a failing handler test only
// asserts on the returned error.
type memUnitOfWork struct {
	store *memStore
}

func (u *memUnitOfWork) Do(_ context.Context, fn func(r TxRepos) error) error {
	return fn(u.store.repos())
}

// seqIDGen issues deterministic IDs: id-1, id-2, ...
type seqIDGen struct {
	n int
}

func (g *seqIDGen) GenerateID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

// stubHasher marks hashes without real bcrypt cost.
type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (stubHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return shared.ErrUnauthorized
	}
	return nil
}

// capturingPublisher records published events for assertions.
type capturingPublisher struct {
	mu     sync.Mutex
	events []shared.Event
}

func (p *capturingPublisher) Publish(event shared.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *capturingPublisher) published() []shared.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]shared.Event(nil), p.events...)
}

// ──────────────────────────────────────────────────────────────────────────────
// account repositories
// ──────────────────────────────────────────────────────────────────────────────

type memCompanyRepo struct{ s *memStore }

func (r *memCompanyRepo) Create(_ context.Context, c *account.Company) error {
	for _, have := range r.s.companies {
		if have.Email == c.Email {
			return shared.ErrAccountAlreadyExists
		}
	}
	r.s.companies[c.ID] = c
	return nil
}

func (r *memCompanyRepo) GetByID(_ context.Context, id string) (*account.Company, error) {
	c, ok := r.s.companies[id]
	if !ok {
		return nil, shared.ErrCompanyNotFound
	}
	return c, nil
}

func (r *memCompanyRepo) GetByEmail(_ context.Context, email string) (*account.Company, error) {
	for _, c := range r.s.companies {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, shared.ErrCompanyNotFound
}

func (r *memCompanyRepo) Update(_ context.Context, c *account.Company) error {
	r.s.companies[c.ID] = c
	return nil
}

func (r *memCompanyRepo) LockForRating(ctx context.Context, id string) (*account.Company, error) {
	return r.GetByID(ctx, id)
}

type memStudentRepo struct{ s *memStore }

func (r *memStudentRepo) Create(_ context.Context, st *account.Student) error {
	for _, have := range r.s.students {
		if have.Email == st.Email {
			return shared.ErrAccountAlreadyExists
		}
	}
	r.s.students[st.ID] = st
	return nil
}

func (r *memStudentRepo) GetByID(_ context.Context, id string) (*account.Student, error) {
	st, ok := r.s.students[id]
	if !ok {
		return nil, shared.ErrStudentNotFound
	}
	return st, nil
}

func (r *memStudentRepo) GetByEmail(_ context.Context, email string) (*account.Student, error) {
	for _, st := range r.s.students {
		if st.Email == email {
			return st, nil
		}
	}
	return nil, shared.ErrStudentNotFound
}

func (r *memStudentRepo) Update(_ context.Context, st *account.Student) error {
	r.s.students[st.ID] = st
	return nil
}

func (r *memStudentRepo) LockForRating(ctx context.Context, id string) (*account.Student, error) {
	return r.GetByID(ctx, id)
}

type memSkillCatalog struct{ s *memStore }

func (r *memSkillCatalog) GetByID(_ context.Context, id string) (*account.Skill, error) {
	for _, sk := range r.s.skills {
		if sk.ID == id {
			return sk, nil
		}
	}
	return nil, shared.ErrSkillNotFound
}

func (r *memSkillCatalog) GetByName(_ context.Context, name shared.SkillName) (*account.Skill, error) {
	sk, ok := r.s.skills[name.Normalize()]
	if !ok {
		return nil, shared.ErrSkillNotFound
	}
	return sk, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// project repositories
// ──────────────────────────────────────────────────────────────────────────────

type memProjectRepo struct{ s *memStore }

func (r *memProjectRepo) Create(_ context.Context, p *project.Project) error {
	r.s.projects[p.ID] = p
	return nil
}

func (r *memProjectRepo) GetByID(_ context.Context, id string) (*project.Project, error) {
	p, ok := r.s.projects[id]
	if !ok {
		return nil, shared.ErrProjectNotFound
	}
	return p, nil
}

func (r *memProjectRepo) GetByIDForUpdate(ctx context.Context, id string) (*project.Project, error) {
	return r.GetByID(ctx, id)
}

func (r *memProjectRepo) ListByCompany(_ context.Context, companyID string) ([]*project.Project, error) {
	var out []*project.Project
	for _, p := range r.s.projects {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProjectRepo) ListActiveExpired(_ context.Context, cutoff time.Time) ([]*project.Project, error) {
	var out []*project.Project
	for _, p := range r.s.projects {
		if p.Status == project.StatusActive && !p.Deadline.IsZero() && p.Deadline.Before(cutoff) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProjectRepo) Update(_ context.Context, p *project.Project) error {
	r.s.projects[p.ID] = p
	return nil
}

func (r *memProjectRepo) Delete(_ context.Context, id string) error {
	delete(r.s.projects, id)
	return nil
}

type memModuleRepo struct{ s *memStore }

func (r *memModuleRepo) Create(_ context.Context, m *project.Module) error {
	r.s.modules[m.ID] = m
	return nil
}

func (r *memModuleRepo) GetByID(_ context.Context, id string) (*project.Module, error) {
	m, ok := r.s.modules[id]
	if !ok {
		return nil, shared.ErrModuleNotFound
	}
	return m, nil
}

func (r *memModuleRepo) ListByProject(_ context.Context, projectID string) (project.Modules, error) {
	var out project.Modules
	for _, m := range r.s.modules {
		if m.ProjectID == projectID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (r *memModuleRepo) Update(_ context.Context, m *project.Module) error {
	r.s.modules[m.ID] = m
	return nil
}

func (r *memModuleRepo) Delete(_ context.Context, id string) error {
	delete(r.s.modules, id)
	return nil
}

func (r *memModuleRepo) HasProgress(_ context.Context, moduleID string) (bool, error) {
	for _, mp := range r.s.progress {
		if mp.ModuleID == moduleID {
			return true, nil
		}
	}
	return false, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// application repositories
// ──────────────────────────────────────────────────────────────────────────────

type memApplicationRepo struct{ s *memStore }

func (r *memApplicationRepo) Create(_ context.Context, app *application.Application) error {
	for _, have := range r.s.applications {
		if have.ProjectID == app.ProjectID && have.StudentID == app.StudentID {
			return shared.ErrDuplicateApplication
		}
	}
	r.s.applications[app.ID] = app
	return nil
}

func (r *memApplicationRepo) GetByID(_ context.Context, id string) (*application.Application, error) {
	app, ok := r.s.applications[id]
	if !ok {
		return nil, shared.ErrApplicationNotFound
	}
	return app, nil
}

func (r *memApplicationRepo) GetByProjectAndStudent(_ context.Context, projectID, studentID string) (*application.Application, error) {
	for _, app := range r.s.applications {
		if app.ProjectID == projectID && app.StudentID == studentID {
			return app, nil
		}
	}
	return nil, shared.ErrApplicationNotFound
}

func (r *memApplicationRepo) ListByStudent(_ context.Context, studentID string) ([]*application.Application, error) {
	var out []*application.Application
	for _, app := range r.s.applications {
		if app.StudentID == studentID {
			out = append(out, app)
		}
	}
	return out, nil
}

func (r *memApplicationRepo) ListByProject(_ context.Context, projectID string) ([]*application.Application, error) {
	var out []*application.Application
	for _, app := range r.s.applications {
		if app.ProjectID == projectID {
			out = append(out, app)
		}
	}
	return out, nil
}

func (r *memApplicationRepo) Update(_ context.Context, app *application.Application) error {
	r.s.applications[app.ID] = app
	return nil
}

func (r *memApplicationRepo) DeleteByProject(_ context.Context, projectID string) error {
	for id, app := range r.s.applications {
		if app.ProjectID == projectID {
			delete(r.s.applications, id)
		}
	}
	return nil
}

type memProgressRepo struct{ s *memStore }

func progressKey(applicationID, moduleID string) string {
	return applicationID + "/" + moduleID
}

func (r *memProgressRepo) Get(_ context.Context, applicationID, moduleID string) (*application.ModuleProgress, error) {
	mp, ok := r.s.progress[progressKey(applicationID, moduleID)]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return mp, nil
}

func (r *memProgressRepo) ListByApplication(_ context.Context, applicationID string) ([]*application.ModuleProgress, error) {
	var out []*application.ModuleProgress
	for _, mp := range r.s.progress {
		if mp.ApplicationID == applicationID {
			out = append(out, mp)
		}
	}
	return out, nil
}

func (r *memProgressRepo) Upsert(_ context.Context, mp *application.ModuleProgress) error {
	r.s.progress[progressKey(mp.ApplicationID, mp.ModuleID)] = mp
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// review repositories
// ──────────────────────────────────────────────────────────────────────────────

type memReviewRepo struct{ s *memStore }

func (r *memReviewRepo) Create(_ context.Context, rv *review.Review) error {
	for _, have := range r.s.reviews {
		if have.AuthorID == rv.AuthorID && have.RevieweeID == rv.RevieweeID && have.ApplicationID == rv.ApplicationID {
			return shared.ErrDuplicateReview
		}
	}
	r.s.reviews[rv.ID] = rv
	return nil
}

func (r *memReviewRepo) GetByID(_ context.Context, id string) (*review.Review, error) {
	rv, ok := r.s.reviews[id]
	if !ok {
		return nil, shared.ErrReviewNotFound
	}
	return rv, nil
}

func (r *memReviewRepo) GetByTriple(_ context.Context, authorID, revieweeID, applicationID string) (*review.Review, error) {
	for _, rv := range r.s.reviews {
		if rv.AuthorID == authorID && rv.RevieweeID == revieweeID && rv.ApplicationID == applicationID {
			return rv, nil
		}
	}
	return nil, shared.ErrReviewNotFound
}

func (r *memReviewRepo) ListEligibleByReviewee(_ context.Context, revieweeID string, kind review.Kind) ([]*review.Review, error) {
	var out []*review.Review
	for _, rv := range r.s.reviews {
		if rv.RevieweeID == revieweeID && rv.Kind == kind && rv.IsEligible() {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *memReviewRepo) ListByReviewee(ctx context.Context, revieweeID string, kind review.Kind, page shared.Pagination) ([]*review.Review, int, error) {
	all, err := r.ListEligibleByReviewee(ctx, revieweeID, kind)
	if err != nil {
		return nil, 0, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := len(all)
	start := page.Offset()
	if start > total {
		start = total
	}
	end := start + page.Limit()
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (r *memReviewRepo) Update(_ context.Context, rv *review.Review) error {
	r.s.reviews[rv.ID] = rv
	return nil
}

type memModerationLog struct{ s *memStore }

func (r *memModerationLog) Append(_ context.Context, entry review.ModerationEntry) error {
	r.s.moderationLog = append(r.s.moderationLog, entry)
	return nil
}

func (r *memModerationLog) ListByReview(_ context.Context, reviewID string) ([]review.ModerationEntry, error) {
	var out []review.ModerationEntry
	for _, e := range r.s.moderationLog {
		if e.ReviewID == reviewID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// fixture helpers
// ──────────────────────────────────────────────────────────────────────────────

func seedCompany(s *memStore, id, name string) *account.Company {
	c := &account.Company{ID: id, Name: name, Email: id + "@corp.example"}
	s.companies[id] = c
	return c
}

func seedStudent(s *memStore, id, name string, skills ...shared.SkillName) *account.Student {
	st := &account.Student{ID: id, Name: name, Email: id + "@uni.example", Skills: skills}
	s.students[id] = st
	return st
}

func seedActiveProject(s *memStore, id, companyID string, cap int, skills ...shared.SkillName) *project.Project {
	p := &project.Project{
		ID:             id,
		CompanyID:      companyID,
		Title:          "Project " + id,
		Status:         project.StatusActive,
		Visible:        true,
		Deadline:       time.Now().UTC().Add(48 * time.Hour),
		ApplicantCap:   cap,
		RequiredSkills: skills,
	}
	s.projects[id] = p
	return p
}

func seedModule(s *memStore, id, projectID string, weight float64, order int) *project.Module {
	m := &project.Module{
		ID:         id,
		ProjectID:  projectID,
		Title:      "Module " + id,
		Weight:     weight,
		OrderIndex: order,
		Status:     project.ModuleStatusPlanned,
	}
	s.modules[id] = m
	return m
}

func seedApplication(s *memStore, id, projectID, studentID string, status application.Status) *application.Application {
	app := &application.Application{
		ID:        id,
		ProjectID: projectID,
		StudentID: studentID,
		Status:    status,
		BidAmount: shared.Money(1000),
		Proposal:  "seeded",
		AppliedAt: time.Now().UTC(),
	}
	s.applications[id] = app
	return app
}

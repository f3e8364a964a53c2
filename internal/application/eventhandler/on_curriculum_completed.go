package eventhandler

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/worklink-hub/worklink-platform/internal/domain/notification"
	"github.com/worklink-hub/worklink-platform/internal/domain/shared"
)

// ═══════════════════════════════════════════════════════════════════════════
// ON CURRICULUM COMPLETED HANDLER
// Tells the project owner that an applicant finished every module and the
// application is now waiting for final sign-off.
// ═══════════════════════════════════════════════════════════════════════════

// OnCurriculumCompletedHandler notifies the company about full completion.
type OnCurriculumCompletedHandler struct {
	sender notification.Sender
	idGen  IDGenerator
	logger zerolog.Logger
}

// NewOnCurriculumCompletedHandler creates a new OnCurriculumCompletedHandler.
func NewOnCurriculumCompletedHandler(sender notification.Sender, idGen IDGenerator, logger zerolog.Logger) *OnCurriculumCompletedHandler {
	return &OnCurriculumCompletedHandler{
		sender: sender,
		idGen:  idGen,
		logger: logger.With().Str("handler", "on_curriculum_completed").Logger(),
	}
}

// Handle processes the curriculum completed event.
func (h *OnCurriculumCompletedHandler) Handle(event shared.Event) error {
	e, ok := event.(shared.CurriculumCompletedEvent)
	if !ok {
		h.logger.Warn().Str("event_type", string(event.EventType())).Msg("unexpected event type")
		return nil
	}

	n := notification.CurriculumCompleted(h.idGen.GenerateID(), e.CompanyID, e.ProjectTitle, e.ApplicationID)
	if err := h.sender.Send(context.Background(), n); err != nil {
		h.logger.Error().Err(err).Str("application_id", e.ApplicationID).Msg("notification delivery failed")
		return fmt.Errorf("send curriculum completed notification: %w", err)
	}
	return nil
}

// EventType returns the event type this handler subscribes to.
func (h *OnCurriculumCompletedHandler) EventType() shared.EventType {
	return shared.EventCurriculumCompleted
}

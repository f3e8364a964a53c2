package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/worklink-hub/worklink-platform/internal/application/command"
	"github.com/worklink-hub/worklink-platform/internal/application/query"
	"github.com/worklink-hub/worklink-platform/internal/domain/review"
)

// SubmitReviewRequest is the review submission payload.
type SubmitReviewRequest struct {
	AuthorID      string  `json:"author_id" validate:"required"`
	Rating        float64 `json:"rating" validate:"required,gte=1,lte=5"`
	Communication float64 `json:"communication" validate:"min=0,max=5"`
	Quality       float64 `json:"quality" validate:"min=0,max=5"`
	Timeliness    float64 `json:"timeliness" validate:"min=0,max=5"`
	Text          string  `json:"text"`
	Recommend     bool    `json:"recommend"`
	Anonymous     bool    `json:"anonymous"`
	Public        bool    `json:"public"`
}

// SubmitReview handles POST /api/v1/applications/{id}/reviews.
func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var req SubmitReviewRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.commands.SubmitReview.Handle(r.Context(), command.SubmitReviewCommand{
		ApplicationID: chi.URLParam(r, "id"),
		AuthorID:      req.AuthorID,
		Rating:        req.Rating,
		Communication: req.Communication,
		Quality:       req.Quality,
		Timeliness:    req.Timeliness,
		Text:          req.Text,
		Recommend:     req.Recommend,
		Anonymous:     req.Anonymous,
		Public:        req.Public,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeCreated(w, map[string]interface{}{
		"review_id": result.ReviewID,
		"kind":      result.Kind,
		"status":    result.Status,
	})
}

// ListCompanyReviews handles GET /api/v1/companies/{id}/reviews.
func (h *Handler) ListCompanyReviews(w http.ResponseWriter, r *http.Request) {
	h.listReviews(w, r, review.KindCompany)
}

// ListStudentReviews handles GET /api/v1/students/{id}/reviews.
func (h *Handler) ListStudentReviews(w http.ResponseWriter, r *http.Request) {
	h.listReviews(w, r, review.KindStudent)
}

func (h *Handler) listReviews(w http.ResponseWriter, r *http.Request, kind review.Kind) {
	result, err := h.queries.ListReviews.Handle(r.Context(), query.ListReviewsQuery{
		RevieweeID: chi.URLParam(r, "id"),
		Kind:       kind,
		Page:       getIntQueryParam(r, "page", 1),
		PageSize:   getIntQueryParam(r, "page_size", 20),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeSuccess(w, result)
}

// ModerateReviewRequest is the moderation decision payload.
type ModerateReviewRequest struct {
	AdminID string `json:"admin_id" validate:"required"`
	Action  string `json:"action" validate:"required,oneof=approve reject flag"`
}

// ModerateReview handles POST /api/v1/reviews/{id}/moderation.
func (h *Handler) ModerateReview(w http.ResponseWriter, r *http.Request) {
	var req ModerateReviewRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.commands.ModerateReview.Handle(r.Context(), command.ModerateReviewCommand{
		ReviewID: chi.URLParam(r, "id"),
		AdminID:  req.AdminID,
		Action:   review.ModerationAction(req.Action),
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"review_id": result.ReviewID,
		"status":    result.Status,
	})
}

// RespondToReviewRequest is the reviewee response payload.
type RespondToReviewRequest struct {
	RevieweeID string `json:"reviewee_id" validate:"required"`
	Text       string `json:"text" validate:"required"`
}

// RespondToReview handles POST /api/v1/reviews/{id}/response.
func (h *Handler) RespondToReview(w http.ResponseWriter, r *http.Request) {
	var req RespondToReviewRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.commands.RespondToReview.Handle(r.Context(), command.RespondToReviewCommand{
		ReviewID:   chi.URLParam(r, "id"),
		RevieweeID: req.RevieweeID,
		Text:       req.Text,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeSuccess(w, nil)
}

package evaluations

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"offerfit-backend/internal/offer"
	"offerfit-backend/internal/offers"
	"offerfit-backend/internal/shared/server/middleware"
	"offerfit-backend/internal/shared/server/respond"
	"offerfit-backend/internal/usage"
)

// Handler wires HTTP handlers to the evaluations service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches evaluation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/offers/:id/evaluate", h.startEvaluation)
	rg.GET("/evaluations", h.listEvaluations)
	rg.GET("/evaluations/:id", h.getEvaluation)
	rg.POST("/evaluations/:id/phrase", h.retryPhrasing)
}

func (h *Handler) startEvaluation(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	offerID := c.Param("id")
	if offerID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "offer id is required", nil)
		return
	}
	c.Set("offerId", offerID)

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	ev, err := h.Svc.Create(ctx, userID, offerID)
	if err != nil {
		var incomplete *offer.IncompleteError
		switch {
		case errors.Is(err, offers.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "offer not found", nil)
		case errors.Is(err, usage.ErrLimitReached):
			respond.Error(c, http.StatusTooManyRequests, "limit_reached", "You've reached your evaluation limit. Upgrade your plan to continue.", []map[string]string{
				{"field": "usage", "issue": "limit_reached"},
			})
		case errors.As(err, &incomplete):
			details := make([]map[string]string, 0, len(incomplete.Missing))
			for _, field := range incomplete.Missing {
				details = append(details, map[string]string{"field": field, "issue": "missing"})
			}
			respond.Error(c, http.StatusUnprocessableEntity, "incomplete_offer", "offer configuration has unanswered fields", details)
		case strings.Contains(err.Error(), "invalid offer configuration"):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start evaluation", nil)
		}
		return
	}

	c.Set("evaluationId", ev.ID)
	respond.JSON(c, http.StatusCreated, evaluationBody(ev))
}

func (h *Handler) getEvaluation(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	evaluationID := c.Param("id")
	if evaluationID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "evaluation id is required", nil)
		return
	}
	c.Set("evaluationId", evaluationID)

	ev, err := h.Svc.Get(c.Request.Context(), userID, evaluationID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "evaluation not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch evaluation", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, evaluationBody(ev))
}

func (h *Handler) listEvaluations(c *gin.Context) {
	if middleware.IsGuestFromContext(c) {
		respond.Error(c, http.StatusUnauthorized, "login_required", "Login required to view history", nil)
		return
	}

	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}

	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	var evs []Evaluation
	var err error
	if offerID := c.Query("offerId"); offerID != "" {
		evs, err = h.Svc.ListForOffer(c.Request.Context(), userID, offerID, limit, offset)
	} else {
		evs, err = h.Svc.List(c.Request.Context(), userID, limit, offset)
	}
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list evaluations", nil)
		return
	}

	resp := make([]gin.H, 0, len(evs))
	for _, ev := range evs {
		item := gin.H{
			"evaluationId":   ev.ID,
			"offerId":        ev.OfferID,
			"status":         ev.Status,
			"rulesetVersion": ev.RulesetVersion,
			"createdAt":      ev.CreatedAt,
		}
		if ev.Result != nil {
			item["readiness"] = ev.Result.Readiness
			item["alignment"] = ev.Result.Alignment
			item["bottleneck"] = ev.Result.Bottleneck.Dimension
		}
		resp = append(resp, item)
	}

	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) retryPhrasing(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	evaluationID := c.Param("id")
	if evaluationID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "evaluation id is required", nil)
		return
	}
	c.Set("evaluationId", evaluationID)

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	ev, err := h.Svc.RetryPhrasing(ctx, userID, evaluationID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "evaluation not found", nil)
		case errors.Is(err, ErrPhrasingInProgress):
			respond.Error(c, http.StatusConflict, "phrasing_in_progress", "phrasing is already running for this evaluation", nil)
		case errors.Is(err, ErrNoResult):
			respond.Error(c, http.StatusConflict, "no_result", "evaluation has no stored result to phrase", nil)
		case errors.Is(err, ErrJobQueueNotConfigured):
			respond.Error(c, http.StatusServiceUnavailable, "phrasing_unavailable", "phrasing is not configured", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to retry phrasing", nil)
		}
		return
	}

	if ev.Status == StatusCompleted {
		respond.JSON(c, http.StatusOK, evaluationBody(ev))
		return
	}

	respond.JSON(c, http.StatusAccepted, gin.H{
		"evaluationId": ev.ID,
		"status":       StatusPhrasing,
	})
}

func evaluationBody(ev Evaluation) gin.H {
	body := gin.H{
		"evaluationId":   ev.ID,
		"offerId":        ev.OfferID,
		"status":         ev.Status,
		"rulesetVersion": ev.RulesetVersion,
		"createdAt":      ev.CreatedAt,
	}
	if ev.Result != nil {
		body["result"] = ev.Result
	}
	if ev.Phrased != nil {
		body["phrased"] = ev.Phrased
	}
	if ev.PhrasedAt != nil {
		body["phrasedAt"] = ev.PhrasedAt
	}
	if ev.ErrorCode != "" {
		errBody := gin.H{
			"code":      ev.ErrorCode,
			"retryable": ev.ErrorRetryable,
		}
		if ev.ErrorMessage != nil {
			errBody["message"] = *ev.ErrorMessage
		}
		body["error"] = errBody
	}
	return body
}

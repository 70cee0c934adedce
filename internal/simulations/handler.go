package simulations

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"offerfit-backend/internal/engine/ruleset"
	"offerfit-backend/internal/shared/server/middleware"
	"offerfit-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the simulations service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches simulation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/evaluations/:id/simulations", h.plan)
	rg.POST("/evaluations/:id/simulations", h.simulate)
}

func (h *Handler) plan(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	evaluationID := c.Param("id")
	if evaluationID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "evaluation id is required", nil)
		return
	}
	c.Set("evaluationId", evaluationID)

	plan, err := h.Svc.Plan(c.Request.Context(), userID, evaluationID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "evaluation not found", nil)
		case errors.Is(err, ErrNotScored):
			respond.Error(c, http.StatusConflict, "not_scored", "evaluation has no stored result to simulate against", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to build simulation plan", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, plan)
}

type simulateRequest struct {
	Fix string `json:"fix"`
}

func (h *Handler) simulate(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	evaluationID := c.Param("id")
	if evaluationID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "evaluation id is required", nil)
		return
	}
	c.Set("evaluationId", evaluationID)

	var req simulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.Fix == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "fix is required", nil)
		return
	}

	outcome, err := h.Svc.Simulate(c.Request.Context(), userID, evaluationID, ruleset.FixID(req.Fix))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "evaluation not found", nil)
		case errors.Is(err, ErrNotScored):
			respond.Error(c, http.StatusConflict, "not_scored", "evaluation has no stored result to simulate against", nil)
		case errors.Is(err, ErrFixUnknown):
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown fix id", gin.H{"fix": req.Fix})
		case errors.Is(err, ErrFixNotSimulatable):
			respond.Error(c, http.StatusBadRequest, "fix_not_simulatable", err.Error(), gin.H{"fix": req.Fix})
		case errors.Is(err, ErrFixNotApplicable):
			respond.Error(c, http.StatusConflict, "fix_not_applicable", err.Error(), gin.H{"fix": req.Fix})
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to run simulation", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, outcome)
}

package snapshots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"offerfit-backend/internal/shared/server/middleware"
	"offerfit-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the snapshots service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches snapshot routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/evaluations/:id/snapshot", h.capture)
	rg.GET("/snapshots", h.list)
	rg.GET("/snapshots/:id", h.get)
	rg.GET("/snapshots/:id/document", h.document)
}

func (h *Handler) capture(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	evaluationID := c.Param("id")
	if evaluationID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "evaluation id is required", nil)
		return
	}
	c.Set("evaluationId", evaluationID)

	snapshot, err := h.Svc.Capture(c.Request.Context(), userID, evaluationID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "evaluation not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusConflict, "no_result", "evaluation has no stored result to snapshot", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to capture snapshot", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, snapshotBody(snapshot))
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	snapshotID := c.Param("id")
	if snapshotID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "snapshot id is required", nil)
		return
	}

	snapshot, err := h.Svc.Get(c.Request.Context(), userID, snapshotID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "snapshot not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch snapshot", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, snapshotBody(snapshot))
}

func (h *Handler) document(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	snapshotID := c.Param("id")
	if snapshotID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "snapshot id is required", nil)
		return
	}

	snapshot, err := h.Svc.Get(c.Request.Context(), userID, snapshotID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "snapshot not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch snapshot", nil)
		}
		return
	}

	doc, err := DecodeDocument(snapshot.Document)
	if err != nil {
		if errors.Is(err, ErrUnknownSchema) {
			respond.Error(c, http.StatusInternalServerError, "unsupported_schema", "snapshot document schema is not supported by this server", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to decode snapshot document", nil)
		return
	}

	respond.JSON(c, http.StatusOK, doc)
}

func (h *Handler) list(c *gin.Context) {
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
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	userSnapshots, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list snapshots", nil)
		return
	}

	resp := make([]gin.H, 0, len(userSnapshots))
	for _, snapshot := range userSnapshots {
		resp = append(resp, snapshotBody(snapshot))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func snapshotBody(snapshot Snapshot) gin.H {
	return gin.H{
		"snapshotId":     snapshot.ID,
		"evaluationId":   snapshot.EvaluationID,
		"offerId":        snapshot.OfferID,
		"rulesetVersion": snapshot.RulesetVersion,
		"sizeBytes":      snapshot.SizeBytes,
		"archived":       snapshot.StorageKey != "",
		"createdAt":      snapshot.CreatedAt,
	}
}

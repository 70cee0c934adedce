package offers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"offerfit-backend/internal/offer"
	"offerfit-backend/internal/shared/server/middleware"
	"offerfit-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the offers service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches offer routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/offers", h.create)
	rg.GET("/offers", h.list)
	rg.GET("/offers/:id", h.get)
	rg.PUT("/offers/:id", h.update)
	rg.DELETE("/offers/:id", h.delete)
}

type offerRequest struct {
	Name   string              `json:"name"`
	Config offer.Configuration `json:"config"`
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req offerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	o, err := h.Svc.Create(c.Request.Context(), userID, req.Name, req.Config)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create offer", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, toResponse(o))
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	offerID := c.Param("id")
	if offerID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "offer id is required", nil)
		return
	}

	o, err := h.Svc.Get(c.Request.Context(), userID, offerID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "offer not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch offer", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(o))
}

func (h *Handler) list(c *gin.Context) {
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

	userOffers, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list offers", nil)
		return
	}

	resp := make([]OfferResponse, 0, len(userOffers))
	for _, o := range userOffers {
		resp = append(resp, toResponse(o))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	offerID := c.Param("id")
	if offerID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "offer id is required", nil)
		return
	}

	var req offerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	o, err := h.Svc.Update(c.Request.Context(), userID, offerID, req.Name, req.Config)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "offer not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update offer", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(o))
}

func (h *Handler) delete(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	offerID := c.Param("id")
	if offerID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "offer id is required", nil)
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), userID, offerID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "offer not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete offer", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

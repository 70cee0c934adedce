package proofdocs

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"offerfit-backend/internal/offers"
	"offerfit-backend/internal/shared/server/middleware"
	"offerfit-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the proof documents service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches proof document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/offers/:id/proofs", h.upload)
	rg.GET("/offers/:id/proofs", h.list)
	rg.GET("/proofs/:id", h.get)
	rg.GET("/proofs/:id/text", h.text)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	offerID := c.Param("id")
	if offerID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "offer id is required", nil)
		return
	}
	c.Set("offerId", offerID)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	doc, err := h.Svc.Upload(c.Request.Context(), userID, offerID, fileHeader.Filename, contentType, file)
	if err != nil {
		switch {
		case errors.Is(err, offers.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "offer not found", nil)
		case errors.Is(err, ErrUnsupportedType):
			respond.Error(c, http.StatusBadRequest, "unsupported_type", "only pdf, docx, and plain text proof documents are accepted", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to upload proof document", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, toResponse(doc))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	offerID := c.Param("id")
	if offerID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "offer id is required", nil)
		return
	}

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

	docs, err := h.Svc.ListForOffer(c.Request.Context(), userID, offerID, limit, offset)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list proof documents", nil)
		return
	}

	resp := make([]ProofDocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, toResponse(doc))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	proofDocumentID := c.Param("id")
	if proofDocumentID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "proof document id is required", nil)
		return
	}

	doc, err := h.Svc.Get(c.Request.Context(), userID, proofDocumentID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "proof document not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch proof document", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(doc))
}

func (h *Handler) text(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	proofDocumentID := c.Param("id")
	if proofDocumentID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "proof document id is required", nil)
		return
	}

	reader, err := h.Svc.OpenText(c.Request.Context(), userID, proofDocumentID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "proof document not found", nil)
		case errors.Is(err, ErrNoExtractedText):
			respond.Error(c, http.StatusConflict, "no_extracted_text", "proof document has no extracted text", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load extracted text", nil)
		}
		return
	}
	defer reader.Close()

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/geocoder89/pravaah/internal/collections"
	"github.com/geocoder89/pravaah/internal/schema"
	"github.com/gin-gonic/gin"
)

type DocumentService interface {
	Create(ctx context.Context, collection string, body map[string]any) (collections.Created, error)
	List(ctx context.Context, collection, cursor string, limit int) (collections.Page, error)
	Get(ctx context.Context, collection, id string) (json.RawMessage, error)
}

type CollectionsHandler struct {
	svc DocumentService
}

func NewCollectionsHandler(svc DocumentService) *CollectionsHandler {
	return &CollectionsHandler{svc: svc}
}

type createResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Create handles POST /api/:collection.
func (h *CollectionsHandler) Create(ctx *gin.Context) {
	collection := ctx.Param("collection")

	// unknown collections are refused before the body is read
	if _, err := schema.ParseKind(collection); err != nil {
		RespondNotFound(ctx, fmt.Sprintf("Unknown collection %q", collection))
		return
	}

	body, ok := BindObject(ctx)
	if !ok {
		return
	}

	created, err := h.svc.Create(ctx.Request.Context(), collection, body)
	if err != nil {
		h.respondServiceError(ctx, collection, err)
		return
	}

	ctx.JSON(http.StatusCreated, createResponse{
		Success: true,
		ID:      created.ID,
		Message: fmt.Sprintf("Document added to %s successfully", created.Collection),
	})
}

// List handles GET /api/:collection.
func (h *CollectionsHandler) List(ctx *gin.Context) {
	collection := ctx.Param("collection")

	limit := collections.DefaultLimit
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > collections.MaxLimit {
			RespondBadRequest(ctx, fmt.Sprintf("limit must be between 1 and %d", collections.MaxLimit), nil)
			return
		}
		limit = n
	}

	page, err := h.svc.List(ctx.Request.Context(), collection, ctx.Query("cursor"), limit)
	if err != nil {
		h.respondServiceError(ctx, collection, err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, gin.H{
		"success":    true,
		"items":      page.Items,
		"count":      page.Count,
		"total":      page.Total,
		"nextCursor": page.NextCursor,
	})
}

// Get handles GET /api/:collection/:id.
func (h *CollectionsHandler) Get(ctx *gin.Context) {
	collection := ctx.Param("collection")

	doc, err := h.svc.Get(ctx.Request.Context(), collection, ctx.Param("id"))
	if err != nil {
		h.respondServiceError(ctx, collection, err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, doc)
}

func (h *CollectionsHandler) respondServiceError(ctx *gin.Context, collection string, err error) {
	var verr *schema.ValidationError

	switch {
	case errors.As(err, &verr):
		RespondBadRequest(ctx, verr.Error(), verr.Fields)
	case errors.Is(err, schema.ErrUnknownCollection):
		RespondNotFound(ctx, fmt.Sprintf("Unknown collection %q", collection))
	case errors.Is(err, collections.ErrNotFound):
		RespondNotFound(ctx, "Document not found")
	case errors.Is(err, collections.ErrInvalidCursor):
		RespondBadRequest(ctx, "Invalid cursor", nil)
	default:
		slog.Default().ErrorContext(ctx.Request.Context(), "collections.request_failed",
			"collection", collection,
			"err", err,
		)
		if ctx.Request.Method == http.MethodPost {
			RespondInternal(ctx, "Failed to add document")
			return
		}
		RespondInternal(ctx, "Could not load documents")
	}
}

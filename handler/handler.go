package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"streaming-service/entities"
	"streaming-service/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Authorizer is the external access-control collaborator. The core never
// re-checks identity; a denial is surfaced as a not-found response so callers
// cannot probe for existing ids.
type Authorizer interface {
	Authorize(ctx context.Context, videoID uuid.UUID) error
}

// PermitAll is the default Authorizer used when no access-control layer is
// wired in.
type PermitAll struct{}

func (PermitAll) Authorize(context.Context, uuid.UUID) error { return nil }

type Handler struct {
	svc   service.VideoService
	authz Authorizer
}

func New(svc service.VideoService, authz Authorizer) *Handler {
	if authz == nil {
		authz = PermitAll{}
	}
	return &Handler{
		svc:   svc,
		authz: authz,
	}
}

func (h *Handler) Register(r gin.IRouter) {
	videos := r.Group("/api/v1/videos")
	videos.GET("", h.list)
	videos.POST("", h.upload)
	videos.GET("/:id", h.info)
	videos.GET("/:id/stream", h.stream)
	videos.GET("/:id/stream/:chunkIndex", h.chunk)
	videos.GET("/:id/content-type", h.contentType)
	videos.DELETE("/:id", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	summaries, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *Handler) info(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	info, err := h.svc.Info(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *Handler) chunk(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	chunkIndex, err := strconv.Atoi(c.Param("chunkIndex"))
	if err != nil {
		respondError(c, entities.ErrInvalidChunkIndex)
		return
	}

	ctx := c.Request.Context()
	if err := h.authz.Authorize(ctx, id); err != nil {
		respondError(c, entities.ErrNotFound)
		return
	}

	chunk, err := h.svc.Chunk(ctx, id, chunkIndex)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, chunk)
}

func (h *Handler) contentType(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	mimeType, err := h.svc.ContentType(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.String(http.StatusOK, mimeType)
}

func (h *Handler) stream(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.authz.Authorize(ctx, id); err != nil {
		respondError(c, entities.ErrNotFound)
		return
	}

	body, info, err := h.svc.Stream(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	defer body.Close()

	headers := map[string]string{
		"Content-Disposition": fmt.Sprintf("inline; filename=%q", info.Title),
	}
	c.DataFromReader(http.StatusOK, info.Size, info.MimeType, body, headers)
}

func (h *Handler) upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, fmt.Errorf("missing file part: %w", entities.ErrUnreadableUpload))
		return
	}
	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"kind": "invalid_request", "error": "title is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, fmt.Errorf("open upload: %w", entities.ErrUnreadableUpload))
		return
	}
	defer file.Close()

	summary, err := h.svc.Upload(c.Request.Context(), service.UploadInput{
		Reader:      file,
		Size:        fileHeader.Size,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Title:       title,
		Description: c.PostForm("description"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) remove(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, entities.ErrNotFound)
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps domain errors to HTTP responses. Callers distinguish
// failures by the kind field, never by message text.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entities.ErrInvalidChunkIndex):
		c.JSON(http.StatusNotFound, gin.H{"kind": "invalid_chunk_index", "error": "chunk not found"})
	case errors.Is(err, entities.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"kind": "not_found", "error": "resource not found"})
	case errors.Is(err, entities.ErrUnreadableUpload):
		c.JSON(http.StatusBadRequest, gin.H{"kind": "unreadable_upload", "error": "could not read upload"})
	case errors.Is(err, entities.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"kind": "invalid_transition", "error": "operation not allowed in current status"})
	default:
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"kind": "internal", "error": "internal error"})
	}
}

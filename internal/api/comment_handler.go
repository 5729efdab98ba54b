package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/page-comments-api/internal/service"
	"github.com/rs/zerolog"
)

// maxPayloadBytes caps POST /new bodies well above 512 characters of UTF-8 plus JSON framing
const maxPayloadBytes = 16 << 10

// CommentHandler handles comment listing and submission
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// ListComments handles GET /get/:slug
func (h *CommentHandler) ListComments(c *gin.Context) {
	slug := c.Param("slug")

	comments, err := h.services.Reader.ListComments(c.Request.Context(), slug)
	if err != nil {
		writeError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, comments)
}

// SubmitComment handles POST /new/:slug
func (h *CommentHandler) SubmitComment(c *gin.Context) {
	slug := c.Param("slug")

	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxPayloadBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.String(http.StatusBadRequest, textContentTooLong)
			return
		}
		h.log.Warn().Err(err).Str("slug", slug).Msg("Failed to read request body")
		c.String(http.StatusBadRequest, textBadRequest)
		return
	}

	if _, err := h.services.Comment.SubmitComment(c.Request.Context(), c.ClientIP(), slug, payload); err != nil {
		writeError(c, err)
		return
	}

	c.String(http.StatusOK, textOK)
}

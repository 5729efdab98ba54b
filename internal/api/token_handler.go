package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/page-comments-api/internal/service"
	"github.com/rs/zerolog"
)

// TokenHandler handles posting token issuance
type TokenHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewTokenHandler creates a new TokenHandler
func NewTokenHandler(services *service.Services, log zerolog.Logger) *TokenHandler {
	return &TokenHandler{
		services: services,
		log:      log.With().Str("handler", "token").Logger(),
	}
}

// RequestToken handles GET /key
func (h *TokenHandler) RequestToken(c *gin.Context) {
	token, err := h.services.Admission.RequestToken(c.Request.Context(), c.ClientIP())
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.String(http.StatusOK, token)
}

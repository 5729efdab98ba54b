package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/page-comments-api/internal/service"
)

// Plain-text bodies returned to the frontend
const (
	textOK              = "OK"
	textBadRequest      = "Bad Request"
	textContentTooLong  = "Content too long"
	textUnauthorized    = "Unauthorized"
	textTooManyRequests = "Too many requests"
	textInternalError   = "Internal server error"
)

// writeError maps a service error onto its status code and text
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrContentTooLong):
		c.String(http.StatusBadRequest, textContentTooLong)
	case errors.Is(err, service.ErrBadRequest), errors.Is(err, service.ErrPageNotFound):
		c.String(http.StatusBadRequest, textBadRequest)
	case errors.Is(err, service.ErrUnauthorized):
		c.String(http.StatusUnauthorized, textUnauthorized)
	case errors.Is(err, service.ErrRateLimited):
		c.String(http.StatusTooManyRequests, textTooManyRequests)
	default:
		c.String(http.StatusInternalServerError, textInternalError)
	}
}

// writeJSON honours ?pretty by indenting the output
func writeJSON(c *gin.Context, status int, body interface{}) {
	if _, pretty := c.GetQuery("pretty"); pretty {
		c.IndentedJSON(status, body)
		return
	}
	c.JSON(status, body)
}

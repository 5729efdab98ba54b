package service

import (
	"errors"

	"github.com/page-comments-api/internal/metrics"
)

// Errors returned by the admission controller, comment writer and reader.
// Handlers map them onto HTTP status codes with errors.Is.
var (
	ErrBadRequest     = errors.New("bad request")
	ErrContentTooLong = errors.New("content too long")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrRateLimited    = errors.New("too many requests")
	ErrPageNotFound   = errors.New("page not found")
	ErrInternal       = errors.New("internal server error")
)

// outcome maps a submission error onto its metrics label
func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrContentTooLong):
		return metrics.OutcomeContentTooLong
	case errors.Is(err, ErrBadRequest):
		return metrics.OutcomeBadRequest
	case errors.Is(err, ErrUnauthorized):
		return metrics.OutcomeUnauthorized
	case errors.Is(err, ErrRateLimited):
		return metrics.OutcomeRateLimited
	case errors.Is(err, ErrPageNotFound):
		return metrics.OutcomePageNotFound
	default:
		return metrics.OutcomeInternalError
	}
}

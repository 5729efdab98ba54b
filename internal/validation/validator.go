package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/page-comments-api/internal/models"
)

var (
	// ErrMalformed marks payloads that are not a JSON object with string key, author and body
	ErrMalformed = errors.New("malformed comment payload")
	// ErrTooLong marks author or body values over their character limit
	ErrTooLong = errors.New("content too long")
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap exposes ErrMalformed or ErrTooLong
func (e *ValidationError) Unwrap() error {
	return e.err
}

// Limits bounds the author and body length in characters
type Limits struct {
	MaxAuthorLength int
	MaxBodyLength   int
}

// DefaultLimits returns the standard 32/512 character limits
func DefaultLimits() Limits {
	return Limits{
		MaxAuthorLength: models.MaxAuthorLength,
		MaxBodyLength:   models.MaxBodyLength,
	}
}

// submissionPayload mirrors CommentSubmission with pointers so absent fields are detectable
type submissionPayload struct {
	Key    *string `json:"key"`
	Author *string `json:"author"`
	Body   *string `json:"body"`
}

// Validator parses and checks comment submissions
type Validator struct {
	limits    Limits
	sanitizer *Sanitizer
}

// NewValidator creates a new validator instance
func NewValidator(limits Limits) *Validator {
	return &Validator{limits: limits, sanitizer: NewSanitizer()}
}

// ParseSubmission decodes a POST /new body. It never panics: any problem is
// returned as a *ValidationError wrapping ErrMalformed or ErrTooLong.
func (v *Validator) ParseSubmission(raw []byte) (*models.CommentSubmission, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &ValidationError{Message: "request body must be a JSON object", err: ErrMalformed}
	}

	var payload submissionPayload
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return nil, &ValidationError{Message: "invalid JSON: " + err.Error(), err: ErrMalformed}
	}

	switch {
	case payload.Key == nil || *payload.Key == "":
		return nil, &ValidationError{Field: "key", Message: "key is required", err: ErrMalformed}
	case payload.Author == nil:
		return nil, &ValidationError{Field: "author", Message: "author is required", err: ErrMalformed}
	case payload.Body == nil:
		return nil, &ValidationError{Field: "body", Message: "body is required", err: ErrMalformed}
	}

	sub := &models.CommentSubmission{
		Key:    *payload.Key,
		Author: *payload.Author,
		Body:   *payload.Body,
	}

	// Postgres TEXT cannot hold NUL
	for _, f := range []struct{ name, value string }{
		{"key", sub.Key},
		{"author", sub.Author},
		{"body", sub.Body},
	} {
		if strings.ContainsRune(f.value, 0) {
			return nil, &ValidationError{Field: f.name, Message: "must not contain NUL characters", err: ErrMalformed}
		}
	}

	if err := v.ValidateLengths(sub); err != nil {
		return nil, err
	}
	if err := v.ValidateText(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// ValidateText rejects author or body values containing markup, entity
// encoded markup included. Accepted text is stored as sent.
func (v *Validator) ValidateText(sub *models.CommentSubmission) error {
	if v.sanitizer.HasMarkup(sub.Author) {
		return &ValidationError{Field: "author", Message: "markup is not allowed", err: ErrMalformed}
	}
	if v.sanitizer.HasMarkup(sub.Body) {
		return &ValidationError{Field: "body", Message: "markup is not allowed", err: ErrMalformed}
	}
	return nil
}

// ValidateLengths checks author and body against the configured limits
func (v *Validator) ValidateLengths(sub *models.CommentSubmission) error {
	if n := utf8.RuneCountInString(sub.Author); n > v.limits.MaxAuthorLength {
		return &ValidationError{
			Field:   "author",
			Message: fmt.Sprintf("must be at most %d characters, got %d", v.limits.MaxAuthorLength, n),
			err:     ErrTooLong,
		}
	}
	if n := utf8.RuneCountInString(sub.Body); n > v.limits.MaxBodyLength {
		return &ValidationError{
			Field:   "body",
			Message: fmt.Sprintf("must be at most %d characters, got %d", v.limits.MaxBodyLength, n),
			err:     ErrTooLong,
		}
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/page-comments-api/internal/kvstore"
	"github.com/page-comments-api/internal/metrics"
	"github.com/page-comments-api/internal/models"
	"github.com/page-comments-api/internal/repository"
	"github.com/page-comments-api/internal/validation"
	"github.com/rs/zerolog"
)

// commentService is the concrete implementation of CommentService
type commentService struct {
	tokens      kvstore.Store
	cooldowns   kvstore.Store
	pages       repository.PageRepository
	comments    repository.CommentRepository
	validator   *validation.Validator
	cooldownTTL time.Duration
	metrics     metrics.Recorder
	now         func() time.Time
	newID       func() string
	log         zerolog.Logger
}

func newCommentService(deps Deps) *commentService {
	return &commentService{
		tokens:    deps.Tokens,
		cooldowns: deps.Cooldowns,
		pages:     deps.Repos.Page,
		comments:  deps.Repos.Comment,
		validator: validation.NewValidator(validation.Limits{
			MaxAuthorLength: deps.Config.MaxAuthorLength,
			MaxBodyLength:   deps.Config.MaxBodyLength,
		}),
		cooldownTTL: deps.Config.CooldownTTL,
		metrics:     deps.Metrics,
		now:         deps.Now,
		newID:       deps.NewID,
		log:         deps.Log.With().Str("service", "comment").Logger(),
	}
}

// SubmitComment runs the submission pipeline, stopping at the first failing step:
// payload, token, origin, cooldown, page, insert. The cooldown marker written
// after a successful insert is best effort.
func (s *commentService) SubmitComment(ctx context.Context, source, slug string, payload []byte) (comment *models.Comment, err error) {
	defer func() {
		s.metrics.CommentSubmitted(outcome(err))
	}()

	sub, err := s.validator.ParseSubmission(payload)
	if errors.Is(err, validation.ErrTooLong) {
		return nil, fmt.Errorf("%w: %w", ErrContentTooLong, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}

	if err := s.checkToken(ctx, source, sub.Key); err != nil {
		return nil, err
	}

	_, cooling, err := s.cooldowns.Get(ctx, source)
	if err != nil {
		s.log.Error().Err(err).Str("source", source).Msg("Failed to look up cooldown")
		return nil, fmt.Errorf("%w: cooldown lookup: %v", ErrInternal, err)
	}
	if cooling {
		return nil, ErrRateLimited
	}

	exists, err := s.pages.Exists(ctx, slug)
	if err != nil {
		s.log.Error().Err(err).Str("slug", slug).Msg("Failed to look up page")
		return nil, fmt.Errorf("%w: page lookup: %v", ErrInternal, err)
	}
	if !exists {
		return nil, ErrPageNotFound
	}

	comment = &models.Comment{
		ID:        s.newID(),
		Slug:      slug,
		Author:    sub.Author,
		Body:      sub.Body,
		Timestamp: s.now().UTC(),
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		if errors.Is(err, repository.ErrPageNotFound) {
			return nil, ErrPageNotFound
		}
		s.log.Error().
			Err(err).
			Str("slug", slug).
			Str("comment_id", comment.ID).
			Str("source", source).
			Msg("Failed to insert comment")
		return nil, fmt.Errorf("%w: insert comment: %v", ErrInternal, err)
	}

	if err := s.cooldowns.Put(ctx, source, models.CooldownMarkerValue, s.cooldownTTL); err != nil {
		s.log.Warn().Err(err).Str("source", source).Msg("Failed to set cooldown marker after commit")
	}

	s.log.Info().
		Str("slug", slug).
		Str("comment_id", comment.ID).
		Msg("Comment stored")

	return comment, nil
}

// checkToken verifies that key names a live token issued to source
func (s *commentService) checkToken(ctx context.Context, source, key string) error {
	raw, ok, err := s.tokens.Get(ctx, key)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to look up posting token")
		return fmt.Errorf("%w: token lookup: %v", ErrInternal, err)
	}
	if !ok {
		return ErrUnauthorized
	}

	token, err := models.DecodePostingToken(key, raw)
	if err != nil {
		s.log.Warn().Err(err).Msg("Unreadable posting token")
		return ErrUnauthorized
	}

	if token.Source != source {
		return ErrUnauthorized
	}
	return nil
}

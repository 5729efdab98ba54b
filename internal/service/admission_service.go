package service

import (
	"context"
	"fmt"
	"time"

	"github.com/page-comments-api/internal/kvstore"
	"github.com/page-comments-api/internal/metrics"
	"github.com/page-comments-api/internal/models"
	"github.com/rs/zerolog"
)

// admissionService is the concrete implementation of AdmissionService
type admissionService struct {
	tokens    kvstore.Store
	cooldowns kvstore.Store
	tokenTTL  time.Duration
	metrics   metrics.Recorder
	newID     func() string
	log       zerolog.Logger
}

func newAdmissionService(deps Deps) *admissionService {
	return &admissionService{
		tokens:    deps.Tokens,
		cooldowns: deps.Cooldowns,
		tokenTTL:  deps.Config.TokenTTL,
		metrics:   deps.Metrics,
		newID:     deps.NewID,
		log:       deps.Log.With().Str("service", "admission").Logger(),
	}
}

// RequestToken issues a posting token bound to source unless source is cooling down.
// The cooldown check and the token write are not atomic.
func (s *admissionService) RequestToken(ctx context.Context, source string) (string, error) {
	_, cooling, err := s.cooldowns.Get(ctx, source)
	if err != nil {
		s.log.Error().Err(err).Str("source", source).Msg("Failed to look up cooldown")
		return "", fmt.Errorf("%w: cooldown lookup: %v", ErrInternal, err)
	}
	if cooling {
		s.metrics.TokenRateLimited()
		return "", ErrRateLimited
	}

	token := models.NewPostingToken(s.newID(), source)
	raw, err := token.Encode()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if err := s.tokens.Put(ctx, token.ID, raw, s.tokenTTL); err != nil {
		s.log.Error().Err(err).Str("source", source).Msg("Failed to store posting token")
		return "", fmt.Errorf("%w: token write: %v", ErrInternal, err)
	}

	s.metrics.TokenIssued()
	s.log.Debug().Str("source", source).Dur("ttl", s.tokenTTL).Msg("Posting token issued")

	return token.ID, nil
}

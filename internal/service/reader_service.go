package service

import (
	"context"
	"fmt"

	"github.com/page-comments-api/internal/models"
	"github.com/page-comments-api/internal/repository"
	"github.com/rs/zerolog"
)

// readerService is the concrete implementation of ReaderService
type readerService struct {
	comments repository.CommentRepository
	log      zerolog.Logger
}

func newReaderService(deps Deps) *readerService {
	return &readerService{
		comments: deps.Repos.Comment,
		log:      deps.Log.With().Str("service", "reader").Logger(),
	}
}

// ListComments returns the comments of slug, oldest first. Unknown pages
// yield an empty slice.
func (s *readerService) ListComments(ctx context.Context, slug string) ([]models.CommentView, error) {
	comments, err := s.comments.ListBySlug(ctx, slug)
	if err != nil {
		s.log.Error().Err(err).Str("slug", slug).Msg("Failed to list comments")
		return nil, fmt.Errorf("%w: list comments: %v", ErrInternal, err)
	}

	views := make([]models.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, c.View())
	}
	return views, nil
}

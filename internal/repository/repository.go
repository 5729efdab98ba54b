package repository

import (
	"context"
	"errors"

	"github.com/page-comments-api/internal/database"
	"github.com/page-comments-api/internal/models"
)

// ErrPageNotFound is returned when a comment references a page that is not registered
var ErrPageNotFound = errors.New("page not found")

// PageRepository defines the interface for page data operations
type PageRepository interface {
	Exists(ctx context.Context, slug string) (bool, error)
	Register(ctx context.Context, slugs ...string) (int, error)
	List(ctx context.Context) ([]*models.Page, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListBySlug(ctx context.Context, slug string) ([]*models.Comment, error)
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Page    PageRepository
	Comment CommentRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Page:    NewPageRepo(db),
		Comment: NewCommentRepo(db),
	}
}

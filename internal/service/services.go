package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/page-comments-api/internal/config"
	"github.com/page-comments-api/internal/kvstore"
	"github.com/page-comments-api/internal/metrics"
	"github.com/page-comments-api/internal/models"
	"github.com/page-comments-api/internal/repository"
	"github.com/rs/zerolog"
)

// AdmissionService decides whether an address may receive a posting token
type AdmissionService interface {
	RequestToken(ctx context.Context, source string) (string, error)
}

// CommentService validates a submission against its token and page, then stores it
type CommentService interface {
	SubmitComment(ctx context.Context, source, slug string, payload []byte) (*models.Comment, error)
}

// ReaderService lists the comments of a page
type ReaderService interface {
	ListComments(ctx context.Context, slug string) ([]models.CommentView, error)
}

// Services holds all service interfaces
type Services struct {
	Admission AdmissionService
	Comment   CommentService
	Reader    ReaderService
}

// Deps are the collaborators shared by the services
type Deps struct {
	Tokens    kvstore.Store
	Cooldowns kvstore.Store
	Repos     *repository.Repositories
	Metrics   metrics.Recorder
	Config    config.CommentsConfig
	Log       zerolog.Logger

	// Now and NewID default to time.Now and random UUIDs
	Now   func() time.Time
	NewID func() string
}

// NewServices creates all services
func NewServices(deps Deps) *Services {
	if deps.Metrics == nil {
		deps.Metrics = metrics.Nop{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}

	return &Services{
		Admission: newAdmissionService(deps),
		Comment:   newCommentService(deps),
		Reader:    newReaderService(deps),
	}
}

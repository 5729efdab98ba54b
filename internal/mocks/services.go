package mocks

import (
	"context"

	"github.com/page-comments-api/internal/models"
	"github.com/page-comments-api/internal/service"
)

// MockAdmissionService is a mock implementation of AdmissionService
type MockAdmissionService struct {
	RequestTokenFunc func(ctx context.Context, source string) (string, error)
	Sources          []string
}

// Verify interface compliance
var _ service.AdmissionService = (*MockAdmissionService)(nil)

func NewMockAdmissionService() *MockAdmissionService {
	return &MockAdmissionService{}
}

func (m *MockAdmissionService) RequestToken(ctx context.Context, source string) (string, error) {
	m.Sources = append(m.Sources, source)
	if m.RequestTokenFunc != nil {
		return m.RequestTokenFunc(ctx, source)
	}
	return "test-token", nil
}

// MockCommentService is a mock implementation of CommentService
type MockCommentService struct {
	SubmitFunc func(ctx context.Context, source, slug string, payload []byte) (*models.Comment, error)
	Calls      []SubmitCall
}

// SubmitCall records the arguments of a SubmitComment call
type SubmitCall struct {
	Source  string
	Slug    string
	Payload []byte
}

// Verify interface compliance
var _ service.CommentService = (*MockCommentService)(nil)

func NewMockCommentService() *MockCommentService {
	return &MockCommentService{}
}

func (m *MockCommentService) SubmitComment(ctx context.Context, source, slug string, payload []byte) (*models.Comment, error) {
	m.Calls = append(m.Calls, SubmitCall{Source: source, Slug: slug, Payload: payload})
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, source, slug, payload)
	}
	return &models.Comment{ID: "test-comment", Slug: slug}, nil
}

// MockReaderService is a mock implementation of ReaderService
type MockReaderService struct {
	Comments map[string][]models.CommentView
	Err      error
}

// Verify interface compliance
var _ service.ReaderService = (*MockReaderService)(nil)

func NewMockReaderService() *MockReaderService {
	return &MockReaderService{Comments: make(map[string][]models.CommentView)}
}

func (m *MockReaderService) ListComments(ctx context.Context, slug string) ([]models.CommentView, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	views := m.Comments[slug]
	if views == nil {
		views = make([]models.CommentView, 0)
	}
	return views, nil
}

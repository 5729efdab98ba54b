package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/page-comments-api/internal/models"
	"github.com/page-comments-api/internal/repository"
)

// MockPageRepository is a mock implementation of PageRepository
type MockPageRepository struct {
	mu        sync.Mutex
	Pages     map[string]*models.Page
	ExistsErr error
}

// Verify interface compliance
var _ repository.PageRepository = (*MockPageRepository)(nil)

func NewMockPageRepository(slugs ...string) *MockPageRepository {
	m := &MockPageRepository{Pages: make(map[string]*models.Page)}
	for _, slug := range slugs {
		m.Pages[slug] = &models.Page{Slug: slug}
	}
	return m
}

func (m *MockPageRepository) Exists(ctx context.Context, slug string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ExistsErr != nil {
		return false, m.ExistsErr
	}
	_, ok := m.Pages[slug]
	return ok, nil
}

func (m *MockPageRepository) Register(ctx context.Context, slugs ...string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inserted := 0
	for _, slug := range slugs {
		if _, ok := m.Pages[slug]; ok {
			continue
		}
		m.Pages[slug] = &models.Page{Slug: slug}
		inserted++
	}
	return inserted, nil
}

func (m *MockPageRepository) List(ctx context.Context) ([]*models.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pages := make([]*models.Page, 0, len(m.Pages))
	for _, p := range m.Pages {
		pages = append(pages, p)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Slug < pages[j].Slug })
	return pages, nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	mu          sync.Mutex
	Comments    []*models.Comment
	InsertError error
	ListError   error
}

// Verify interface compliance
var _ repository.CommentRepository = (*MockCommentRepository)(nil)

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{Comments: make([]*models.Comment, 0)}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Comments = append(m.Comments, comment)
	return nil
}

func (m *MockCommentRepository) ListBySlug(ctx context.Context, slug string) ([]*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListError != nil {
		return nil, m.ListError
	}
	result := make([]*models.Comment, 0)
	for _, c := range m.Comments {
		if c.Slug == slug {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Comments), nil
}

// NewMockRepositories bundles fresh page and comment mocks
func NewMockRepositories(slugs ...string) (*repository.Repositories, *MockPageRepository, *MockCommentRepository) {
	pages := NewMockPageRepository(slugs...)
	comments := NewMockCommentRepository()
	return &repository.Repositories{Page: pages, Comment: comments}, pages, comments
}

package repository

import (
	"context"
	"fmt"

	"github.com/page-comments-api/internal/database"
	"github.com/page-comments-api/internal/models"
)

// pageRepo is the concrete implementation of PageRepository
type pageRepo struct {
	db *database.DB
}

// NewPageRepo creates a new page repository
func NewPageRepo(db *database.DB) PageRepository {
	return &pageRepo{db: db}
}

// Exists checks if a page with the given slug is registered
func (r *pageRepo) Exists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM pages WHERE slug = $1)", slug).Scan(&exists)
	return exists, err
}

// Register inserts pages, skipping slugs that already exist, and returns how many were new
func (r *pageRepo) Register(ctx context.Context, slugs ...string) (int, error) {
	if len(slugs) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	inserted := 0
	for _, slug := range slugs {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO pages (slug, created_at) VALUES ($1, NOW()) ON CONFLICT (slug) DO NOTHING",
			slug,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to register page %q: %w", slug, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return inserted, nil
}

// List returns all registered pages ordered by slug
func (r *pageRepo) List(ctx context.Context) ([]*models.Page, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT slug, created_at FROM pages ORDER BY slug")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*models.Page
	for rows.Next() {
		var page models.Page
		if err := rows.Scan(&page.Slug, &page.CreatedAt); err != nil {
			return nil, err
		}
		pages = append(pages, &page)
	}

	return pages, rows.Err()
}

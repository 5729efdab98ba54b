package repository

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"github.com/page-comments-api/internal/database"
	"github.com/page-comments-api/internal/models"
)

// foreign_key_violation
const pqForeignKeyViolation = "23503"

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// Create inserts a new comment
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (comment_id, slug, author, body, timestamp)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		comment.ID, comment.Slug, comment.Author, comment.Body, comment.Timestamp,
	)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
		return ErrPageNotFound
	}
	return err
}

// ListBySlug returns every comment of a page, oldest first
func (r *commentRepo) ListBySlug(ctx context.Context, slug string) ([]*models.Comment, error) {
	query := `SELECT comment_id, slug, author, body, timestamp FROM comments WHERE slug = $1 ORDER BY timestamp`
	rows, err := r.db.QueryContext(ctx, query, slug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]*models.Comment, 0)
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(
			&comment.ID, &comment.Slug, &comment.Author, &comment.Body, &comment.Timestamp,
		)
		if err != nil {
			return nil, err
		}
		comments = append(comments, &comment)
	}

	return comments, rows.Err()
}

// Count returns the total number of comments
func (r *commentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments").Scan(&count)
	return count, err
}

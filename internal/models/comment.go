package models

import (
	"time"
)

// Comment represents a comment attached to a page
type Comment struct {
	ID        string    `json:"comment_id" db:"comment_id"`
	Slug      string    `json:"slug" db:"slug"`
	Author    string    `json:"author" db:"author"`
	Body      string    `json:"body" db:"body"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}

// CommentView is the public shape of a comment returned by GET /get/:slug
type CommentView struct {
	Author    string    `json:"Author"`
	Body      string    `json:"Body"`
	Timestamp time.Time `json:"Timestamp"`
}

// View strips storage-only fields from the comment
func (c *Comment) View() CommentView {
	return CommentView{
		Author:    c.Author,
		Body:      c.Body,
		Timestamp: c.Timestamp.UTC(),
	}
}

// CommentSubmission is the validated body of POST /new/:slug
type CommentSubmission struct {
	Key    string `json:"key"`
	Author string `json:"author"`
	Body   string `json:"body"`
}

// Default payload limits, counted in characters
const (
	MaxAuthorLength = 32
	MaxBodyLength   = 512
)

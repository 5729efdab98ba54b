package models

import "time"

// Page is a pre-registered content unit that comments attach to
type Page struct {
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

package models

import (
	"encoding/json"
	"fmt"
)

// TokenStatusCreated is the only status a posting token ever carries
const TokenStatusCreated = "created"

// CooldownMarkerValue is stored under an address after it posts
const CooldownMarkerValue = "posted"

// PostingToken is the record stored under a token id in the KEYS namespace
type PostingToken struct {
	ID     string `json:"-"`
	Source string `json:"source"`
	Status string `json:"status"`
}

// NewPostingToken creates a token record bound to the given address
func NewPostingToken(id, source string) *PostingToken {
	return &PostingToken{
		ID:     id,
		Source: source,
		Status: TokenStatusCreated,
	}
}

// Encode serializes the token record for the key-value store
func (t *PostingToken) Encode() (string, error) {
	raw, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("failed to encode token: %w", err)
	}
	return string(raw), nil
}

// DecodePostingToken parses a stored token record
func DecodePostingToken(id, raw string) (*PostingToken, error) {
	var t PostingToken
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return nil, fmt.Errorf("failed to decode token %s: %w", id, err)
	}
	if t.Source == "" {
		return nil, fmt.Errorf("token %s has no source", id)
	}
	t.ID = id
	return &t, nil
}

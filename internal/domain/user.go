// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"
)

const (
	MaxUsernameLen = 36
)

var (
	ErrUsernameTooLong = errors.New("username too long")
	ErrUsernameEmpty   = errors.New("username empty")
)

// ConnID is the opaque id of one live client link, assigned by the transport.
type ConnID string

type User struct {
	ID       ConnID `json:"id"`
	Username string `json:"username"`
}

// ValidateUsername reports whether username may be used as a display name.
// Uniqueness is never checked.
func ValidateUsername(username string) error {
	if len(username) == 0 {
		return ErrUsernameEmpty
	}
	if len(username) > MaxUsernameLen {
		return ErrUsernameTooLong
	}
	return nil
}

// NewUser is a tiny helper to avoid ad-hoc struct literals in adapters.
func NewUser(id ConnID, username string) (*User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	return &User{ID: id, Username: username}, nil
}

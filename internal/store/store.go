// Package store persists user accounts.
package store

import (
	"context"
	"errors"
)

// User is a registered account.
type User struct {
	ID           int64
	Email        string
	FullName     string
	PasswordHash string
}

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
)

// Users is the interface for user persistence.
type Users interface {
	Create(ctx context.Context, email, fullName, passwordHash string) (*User, error)
	ByEmail(ctx context.Context, email string) (*User, error)
}

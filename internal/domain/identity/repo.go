package identity

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no user exists for the given email.
var ErrNotFound = errors.New("user not found")

// ErrEmailTaken is returned when registration hits an existing email.
var ErrEmailTaken = errors.New("email already registered")

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, email string, fields map[string]interface{}) error
	ListPatients(ctx context.Context, limit, offset int) ([]*User, error)
}

package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users. Implementations are
// bound to a single database handle, so a store built on a transaction
// participates in that transaction for every call.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByActivationToken(ctx context.Context, token string) (User, error)
	GetByPasswordResetToken(ctx context.Context, token string) (User, error)
	Create(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, user User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, page, size int, excludeID uuid.UUID) (UserPage, error)
}

// User represents a stored account with authentication material.
// An inactive account holds exactly one live activation token; an active
// account holds none. At most one password reset token is live at a time.
type User struct {
	ID                 uuid.UUID
	Username           string
	Email              string
	PasswordHash       string
	Inactive           bool
	ActivationToken    *string
	PasswordResetToken *string
	Image              *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// UserPage is a single page of a user listing.
type UserPage struct {
	Content    []User
	Page       int
	Size       int
	TotalPages int
}

package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionTokenStore persists opaque session tokens.
type SessionTokenStore interface {
	Create(ctx context.Context, token SessionToken) error
	GetByToken(ctx context.Context, token string) (SessionToken, error)
	UpdateLastUsedAt(ctx context.Context, token string, lastUsedAt time.Time) error
	DeleteByToken(ctx context.Context, token string) error
	DeleteAllByUserID(ctx context.Context, userID uuid.UUID) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// SessionToken is an opaque server-side session handle. Validity is a sliding
// window measured from LastUsedAt, not from creation: every successful
// verification advances LastUsedAt. A token past the window stays stored until
// the sweeper removes it, but never authenticates.
type SessionToken struct {
	Token      string
	UserID     uuid.UUID
	LastUsedAt time.Time
	CreatedAt  time.Time
}

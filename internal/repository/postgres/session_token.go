package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndzhokv/userd/internal/dbx"
	"github.com/ndzhokv/userd/internal/model"
)

var _ model.SessionTokenStore = (*SessionTokenRepository)(nil)

// SessionTokenRepository persists opaque session tokens. Each token row is
// independent; no cross-row coordination happens here.
type SessionTokenRepository struct {
	db dbx.DBTX
}

func NewSessionTokenRepository(db dbx.DBTX) *SessionTokenRepository {
	return &SessionTokenRepository{
		db: db,
	}
}

func (r *SessionTokenRepository) Create(ctx context.Context, token model.SessionToken) error {
	const query = `INSERT INTO session_tokens (token, user_id, last_used_at) VALUES ($1, $2, $3)`

	if _, err := r.db.ExecContext(ctx, query, token.Token, token.UserID, token.LastUsedAt); err != nil {
		if isUniqueViolation(err) {
			return model.ErrDuplicateToken
		}
		return fmt.Errorf("failed to create session token: %w", err)
	}
	return nil
}

func (r *SessionTokenRepository) GetByToken(ctx context.Context, token string) (model.SessionToken, error) {
	const query = `SELECT token, user_id, last_used_at, created_at FROM session_tokens WHERE token = $1`

	var st model.SessionToken
	err := r.db.QueryRowContext(ctx, query, token).Scan(&st.Token, &st.UserID, &st.LastUsedAt, &st.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.SessionToken{}, model.ErrNotFound
		}
		return model.SessionToken{}, fmt.Errorf("failed to get session token: %w", err)
	}
	return st, nil
}

func (r *SessionTokenRepository) UpdateLastUsedAt(ctx context.Context, token string, lastUsedAt time.Time) error {
	const query = `UPDATE session_tokens SET last_used_at = $2 WHERE token = $1`

	res, err := r.db.ExecContext(ctx, query, token, lastUsedAt)
	if err != nil {
		return fmt.Errorf("failed to refresh session token: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return model.ErrNotFound
	}

	return nil
}

// DeleteByToken removes a token. Deleting an absent token is a no-op.
func (r *SessionTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session_tokens WHERE token = $1`, token); err != nil {
		return fmt.Errorf("failed to delete session token: %w", err)
	}
	return nil
}

func (r *SessionTokenRepository) DeleteAllByUserID(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session_tokens WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete session tokens by user: %w", err)
	}
	return nil
}

// DeleteOlderThan evicts every token idle since before cutoff and reports how
// many rows went away.
func (r *SessionTokenRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM session_tokens WHERE last_used_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale session tokens: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return deleted, nil
}

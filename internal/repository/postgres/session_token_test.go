package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndzhokv/userd/internal/model"
)

func newSessionMockDB(t *testing.T) (sqlmock.Sqlmock, *SessionTokenRepository) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return mock, NewSessionTokenRepository(db)
}

func TestSessionTokenRepository_Create(t *testing.T) {
	mock, repo := newSessionMockDB(t)

	userID := uuid.New()
	lastUsed := time.Now()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO session_tokens (token, user_id, last_used_at) VALUES ($1, $2, $3)`)).
		WithArgs("sessiontoken", userID, lastUsed).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), model.SessionToken{
		Token:      "sessiontoken",
		UserID:     userID,
		LastUsedAt: lastUsed,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionTokenRepository_Create_Duplicate(t *testing.T) {
	mock, repo := newSessionMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO session_tokens`)).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

	err := repo.Create(context.Background(), model.SessionToken{Token: "sessiontoken", UserID: uuid.New()})
	require.ErrorIs(t, err, model.ErrDuplicateToken)
}

func TestSessionTokenRepository_GetByToken(t *testing.T) {
	mock, repo := newSessionMockDB(t)

	userID := uuid.New()
	lastUsed := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT token, user_id, last_used_at, created_at FROM session_tokens WHERE token = $1`)).
		WithArgs("sessiontoken").
		WillReturnRows(sqlmock.NewRows([]string{"token", "user_id", "last_used_at", "created_at"}).
			AddRow("sessiontoken", userID, lastUsed, lastUsed))

	st, err := repo.GetByToken(context.Background(), "sessiontoken")
	require.NoError(t, err)
	assert.Equal(t, userID, st.UserID)
}

func TestSessionTokenRepository_GetByToken_NotFound(t *testing.T) {
	mock, repo := newSessionMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT token, user_id, last_used_at, created_at FROM session_tokens WHERE token = $1`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"token", "user_id", "last_used_at", "created_at"}))

	_, err := repo.GetByToken(context.Background(), "missing")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestSessionTokenRepository_UpdateLastUsedAt_NotFound(t *testing.T) {
	mock, repo := newSessionMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE session_tokens SET last_used_at = $2 WHERE token = $1`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateLastUsedAt(context.Background(), "missing", time.Now())
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestSessionTokenRepository_DeleteByToken_Idempotent(t *testing.T) {
	mock, repo := newSessionMockDB(t)

	// Zero affected rows is still success.
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM session_tokens WHERE token = $1`)).
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.DeleteByToken(context.Background(), "gone"))
}

func TestSessionTokenRepository_DeleteAllByUserID(t *testing.T) {
	mock, repo := newSessionMockDB(t)

	userID := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM session_tokens WHERE user_id = $1`)).
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo.DeleteAllByUserID(context.Background(), userID))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionTokenRepository_DeleteOlderThan(t *testing.T) {
	mock, repo := newSessionMockDB(t)

	cutoff := time.Now().Add(-7 * 24 * time.Hour)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM session_tokens WHERE last_used_at < $1`)).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 5))

	deleted, err := repo.DeleteOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(5), deleted)
}

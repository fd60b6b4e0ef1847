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

var userRows = []string{
	"id", "username", "email", "password_hash", "inactive",
	"activation_token", "password_reset_token", "image", "created_at", "updated_at",
}

func newMockDB(t *testing.T) (sqlmock.Sqlmock, *UserRepository) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return mock, NewUserRepository(db)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	mock, repo := newMockDB(t)

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + userColumns + ` FROM users WHERE email = $1`)).
		WithArgs("user1@mail.com").
		WillReturnRows(sqlmock.NewRows(userRows).
			AddRow(id, "user1", "user1@mail.com", "hash", false, nil, nil, nil, now, now))

	user, err := repo.GetByEmail(context.Background(), "user1@mail.com")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "user1", user.Username)
	assert.False(t, user.Inactive)
	assert.Nil(t, user.ActivationToken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	mock, repo := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + userColumns + ` FROM users WHERE email = $1`)).
		WithArgs("nobody@mail.com").
		WillReturnRows(sqlmock.NewRows(userRows))

	_, err := repo.GetByEmail(context.Background(), "nobody@mail.com")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestUserRepository_GetByActivationToken(t *testing.T) {
	mock, repo := newMockDB(t)

	id := uuid.New()
	token := "activation-token"
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + userColumns + ` FROM users WHERE activation_token = $1`)).
		WithArgs(token).
		WillReturnRows(sqlmock.NewRows(userRows).
			AddRow(id, "user1", "user1@mail.com", "hash", true, token, nil, nil, now, now))

	user, err := repo.GetByActivationToken(context.Background(), token)
	require.NoError(t, err)
	assert.True(t, user.Inactive)
	require.NotNil(t, user.ActivationToken)
	assert.Equal(t, token, *user.ActivationToken)
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	mock, repo := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

	_, err := repo.Create(context.Background(), model.User{
		Username: "user1",
		Email:    "taken@mail.com",
	})
	require.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestUserRepository_Update_NotFound(t *testing.T) {
	mock, repo := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), model.User{ID: uuid.New()})
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestUserRepository_Delete(t *testing.T) {
	mock, repo := newMockDB(t)

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), id))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_List(t *testing.T) {
	mock, repo := newMockDB(t)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT `+userColumns+` FROM users`)).
		WithArgs(10, 0, nil).
		WillReturnRows(sqlmock.NewRows(userRows).
			AddRow(uuid.New(), "user1", "user1@mail.com", "hash", false, nil, nil, nil, now, now).
			AddRow(uuid.New(), "user2", "user2@mail.com", "hash", false, nil, nil, nil, now, now))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM users`)).
		WithArgs(nil).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	page, err := repo.List(context.Background(), 0, 10, uuid.Nil)
	require.NoError(t, err)
	assert.Len(t, page.Content, 2)
	assert.Equal(t, 0, page.Page)
	assert.Equal(t, 10, page.Size)
	assert.Equal(t, 2, page.TotalPages)
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/ndzhokv/userd/internal/dbx"
	"github.com/ndzhokv/userd/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const userColumns = `id, username, email, password_hash, inactive, activation_token, password_reset_token, image, created_at, updated_at`

// UserRepository persists users. It is bound to a dbx.DBTX, so a repository
// built on a transaction participates in that transaction for every call.
type UserRepository struct {
	db dbx.DBTX
}

func NewUserRepository(db dbx.DBTX) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) getBy(ctx context.Context, clause string, arg any) (model.User, error) {
	var user model.User
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + clause

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Inactive,
		&user.ActivationToken, &user.PasswordResetToken, &user.Image,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return r.getBy(ctx, `email = $1`, email)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	return r.getBy(ctx, `id = $1`, id)
}

func (r *UserRepository) GetByActivationToken(ctx context.Context, token string) (model.User, error) {
	return r.getBy(ctx, `activation_token = $1`, token)
}

func (r *UserRepository) GetByPasswordResetToken(ctx context.Context, token string) (model.User, error) {
	return r.getBy(ctx, `password_reset_token = $1`, token)
}

// Create inserts a user. A duplicate email yields model.ErrEmailTaken.
func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, username, email, password_hash, inactive, activation_token, password_reset_token, image)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING ` + userColumns

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	var savedUser model.User
	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.Inactive,
		user.ActivationToken, user.PasswordResetToken, user.Image,
	).Scan(
		&savedUser.ID, &savedUser.Username, &savedUser.Email, &savedUser.PasswordHash,
		&savedUser.Inactive, &savedUser.ActivationToken, &savedUser.PasswordResetToken,
		&savedUser.Image, &savedUser.CreatedAt, &savedUser.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, model.ErrEmailTaken
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return savedUser, nil
}

func (r *UserRepository) Update(ctx context.Context, user model.User) error {
	query := `UPDATE users
			  SET username = $2, email = $3, password_hash = $4, inactive = $5,
			      activation_token = $6, password_reset_token = $7, image = $8, updated_at = NOW()
			  WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.Inactive,
		user.ActivationToken, user.PasswordResetToken, user.Image,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
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

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// List returns a page of active users, excluding excludeID when it is set.
func (r *UserRepository) List(ctx context.Context, page, size int, excludeID uuid.UUID) (model.UserPage, error) {
	query := `SELECT ` + userColumns + ` FROM users
			  WHERE inactive = FALSE AND ($3::uuid IS NULL OR id <> $3)
			  ORDER BY created_at
			  LIMIT $1 OFFSET $2`

	var exclude *uuid.UUID
	if excludeID != uuid.Nil {
		exclude = &excludeID
	}

	rows, err := r.db.QueryContext(ctx, query, size, page*size, exclude)
	if err != nil {
		return model.UserPage{}, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0, size)
	for rows.Next() {
		var user model.User
		if err := rows.Scan(
			&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Inactive,
			&user.ActivationToken, &user.PasswordResetToken, &user.Image,
			&user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return model.UserPage{}, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return model.UserPage{}, fmt.Errorf("failed to iterate user rows: %w", err)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM users WHERE inactive = FALSE AND ($1::uuid IS NULL OR id <> $1)`
	if err := r.db.QueryRowContext(ctx, countQuery, exclude).Scan(&total); err != nil {
		return model.UserPage{}, fmt.Errorf("failed to count users: %w", err)
	}

	return model.UserPage{
		Content:    users,
		Page:       page,
		Size:       size,
		TotalPages: int(math.Ceil(float64(total) / float64(size))),
	}, nil
}

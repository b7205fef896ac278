package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/uzak0209/echo/internal/db"
	"github.com/uzak0209/echo/internal/errs"
	"github.com/uzak0209/echo/internal/model"
)

type UserStore struct {
	db db.Querier
}

func NewUserStore(db db.Querier) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, user model.User) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO users (id, display_name, avatar_url, password_hash, refresh_token, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, user.ID, user.DisplayName, user.AvatarURL, user.PasswordHash, user.RefreshToken, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *UserStore) ByID(ctx context.Context, id string) (model.User, error) {
	return s.one(ctx, `
		SELECT id, display_name, avatar_url, password_hash, refresh_token, created_at
		FROM users WHERE id=$1
	`, id)
}

func (s *UserStore) ByName(ctx context.Context, displayName string) (model.User, error) {
	return s.one(ctx, `
		SELECT id, display_name, avatar_url, password_hash, refresh_token, created_at
		FROM users WHERE display_name=$1
	`, displayName)
}

func (s *UserStore) SetRefreshToken(ctx context.Context, userID string, token *string) error {
	tag, err := s.db.Exec(ctx, `UPDATE users SET refresh_token=$2 WHERE id=$1`, userID, token)
	if err != nil {
		return fmt.Errorf("update refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %s", errs.ErrNotFound, userID)
	}
	return nil
}

func (s *UserStore) one(ctx context.Context, sql string, arg any) (model.User, error) {
	row := s.db.QueryRow(ctx, sql, arg)

	var u model.User
	if err := row.Scan(&u.ID, &u.DisplayName, &u.AvatarURL, &u.PasswordHash, &u.RefreshToken, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, fmt.Errorf("%w: user", errs.ErrNotFound)
		}
		return model.User{}, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}

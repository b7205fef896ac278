package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"

	"github.com/uzak0209/echo/internal/errs"
	"github.com/uzak0209/echo/internal/model"
)

func TestUserCreateAndByName(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	createdAt := time.Now()
	hash := "bcrypt-hash"
	user := model.User{ID: "u1", DisplayName: "alice", AvatarURL: "http://a/img", PasswordHash: &hash, CreatedAt: createdAt}

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("u1", "alice", "http://a/img", &hash, (*string)(nil), createdAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	store := NewUserStore(mock)
	if err := store.Create(context.Background(), user); err != nil {
		t.Fatalf("create: %v", err)
	}

	mock.ExpectQuery(`SELECT id, display_name, avatar_url, password_hash, refresh_token, created_at`).
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows([]string{"id", "display_name", "avatar_url", "password_hash", "refresh_token", "created_at"}).
			AddRow("u1", "alice", "http://a/img", &hash, (*string)(nil), createdAt))

	loaded, err := store.ByName(context.Background(), "alice")
	if err != nil {
		t.Fatalf("by name: %v", err)
	}
	if loaded.ID != "u1" || loaded.PasswordHash == nil || *loaded.PasswordHash != hash {
		t.Fatalf("unexpected user %+v", loaded)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserByIDNotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, display_name, avatar_url, password_hash, refresh_token, created_at`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{"id", "display_name", "avatar_url", "password_hash", "refresh_token", "created_at"}))

	store := NewUserStore(mock)
	if _, err := store.ByID(context.Background(), "missing"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSetRefreshToken(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	token := "refresh-jwt"
	mock.ExpectExec(`UPDATE users SET refresh_token`).
		WithArgs("u1", &token).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	store := NewUserStore(mock)
	if err := store.SetRefreshToken(context.Background(), "u1", &token); err != nil {
		t.Fatalf("set refresh token: %v", err)
	}
}

func TestSetRefreshTokenMissingUser(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	mock.ExpectExec(`UPDATE users SET refresh_token`).
		WithArgs("ghost", (*string)(nil)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	store := NewUserStore(mock)
	if err := store.SetRefreshToken(context.Background(), "ghost", nil); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/uzak0209/echo/internal/errs"
	"github.com/uzak0209/echo/internal/model"
	"github.com/uzak0209/echo/internal/store"
)

var hashPasswordFn = bcrypt.GenerateFromPassword

// Service handles account lifecycle: signup, login, refresh, logout and
// stream-token minting. Exactly one refresh token is live per user;
// issuing a new one replaces the stored value.
type Service struct {
	users  store.Users
	tokens *Tokens
}

func NewService(users store.Users, tokens *Tokens) *Service {
	return &Service{users: users, tokens: tokens}
}

type Credentials struct {
	UserID       string `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"-"`
}

func (s *Service) Signup(ctx context.Context, displayName, password string, avatarURL *string) (Credentials, error) {
	if displayName == "" || password == "" {
		return Credentials{}, fmt.Errorf("%w: display name and password required", errs.ErrValidation)
	}

	if _, err := s.users.ByName(ctx, displayName); err == nil {
		return Credentials{}, fmt.Errorf("%w: display name already registered", errs.ErrValidation)
	} else if !errors.Is(err, errs.ErrNotFound) {
		return Credentials{}, err
	}

	hash, err := hashPasswordFn([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Credentials{}, fmt.Errorf("hash password: %w", err)
	}

	avatar := randomAvatarURL()
	if avatarURL != nil && *avatarURL != "" {
		avatar = *avatarURL
	}

	hashStr := string(hash)
	user := model.User{
		ID:           uuid.NewString(),
		DisplayName:  displayName,
		AvatarURL:    avatar,
		PasswordHash: &hashStr,
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return Credentials{}, err
	}

	return s.issue(ctx, user.ID)
}

func (s *Service) Login(ctx context.Context, displayName, password string) (Credentials, error) {
	user, err := s.users.ByName(ctx, displayName)
	if err != nil {
		return Credentials{}, err
	}

	if user.PasswordHash == nil {
		return Credentials{}, fmt.Errorf("%w: password authentication not enabled for this user", errs.ErrValidation)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return Credentials{}, fmt.Errorf("%w: invalid password", errs.ErrValidation)
	}

	return s.issue(ctx, user.ID)
}

// Refresh verifies the presented refresh token against the single value on
// file and issues a new access token. The refresh token itself is not
// rotated; only a fresh login or signup replaces it.
func (s *Service) Refresh(ctx context.Context, presented string) (string, error) {
	subject, err := s.tokens.Verify(presented, TokenRefresh)
	if err != nil {
		return "", err
	}

	user, err := s.users.ByID(ctx, subject)
	if err != nil {
		return "", err
	}
	if user.RefreshToken == nil || *user.RefreshToken != presented {
		return "", fmt.Errorf("%w: refresh token revoked", errs.ErrUnauthorized)
	}

	return s.tokens.IssueAccess(subject)
}

// Logout clears the stored refresh token; future refresh attempts for the
// user fail until the next login.
func (s *Service) Logout(ctx context.Context, userID string) error {
	return s.users.SetRefreshToken(ctx, userID, nil)
}

// StreamToken mints the short-lived credential an already-authenticated
// client uses to open one event-stream connection.
func (s *Service) StreamToken(userID string) (string, error) {
	return s.tokens.IssueStream(userID)
}

func (s *Service) issue(ctx context.Context, userID string) (Credentials, error) {
	access, err := s.tokens.IssueAccess(userID)
	if err != nil {
		return Credentials{}, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefresh(userID)
	if err != nil {
		return Credentials{}, fmt.Errorf("issue refresh token: %w", err)
	}
	if err := s.users.SetRefreshToken(ctx, userID, &refresh); err != nil {
		return Credentials{}, err
	}
	return Credentials{UserID: userID, AccessToken: access, RefreshToken: refresh}, nil
}

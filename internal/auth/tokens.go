package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/uzak0209/echo/internal/errs"
)

// TokenKind tags a token with the only context it may be used in. A token
// of one kind presented where another is expected is rejected outright.
type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
	TokenStream  TokenKind = "stream"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour

	// Stream tokens travel as URL query parameters, so the exposure
	// window of a leaked value must stay negligible.
	streamTokenTTL = 60 * time.Second
)

type Claims struct {
	TokenKind TokenKind `json:"token_type"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies the three token kinds. Stateless: nothing is
// persisted, verification is signature plus expiry plus kind.
type Tokens struct {
	secret []byte
	now    func() time.Time
}

func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret), now: time.Now}
}

func (t *Tokens) IssueAccess(userID string) (string, error) {
	return t.sign(userID, TokenAccess, accessTokenTTL)
}

func (t *Tokens) IssueRefresh(userID string) (string, error) {
	return t.sign(userID, TokenRefresh, refreshTokenTTL)
}

func (t *Tokens) IssueStream(userID string) (string, error) {
	return t.sign(userID, TokenStream, streamTokenTTL)
}

// StreamTokenTTLSeconds is surfaced to clients so they know how quickly a
// minted stream token must be used.
func StreamTokenTTLSeconds() int64 {
	return int64(streamTokenTTL.Seconds())
}

// Verify returns the subject id when the token is signed by us, unexpired
// and of the expected kind. Every failure collapses to ErrUnauthorized;
// callers never learn which check failed.
func (t *Tokens) Verify(token string, kind TokenKind) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: invalid token", errs.ErrUnauthorized)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.TokenKind != kind {
		return "", fmt.Errorf("%w: invalid token", errs.ErrUnauthorized)
	}
	return claims.Subject, nil
}

func (t *Tokens) sign(userID string, kind TokenKind, ttl time.Duration) (string, error) {
	now := t.now()
	claims := Claims{
		TokenKind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

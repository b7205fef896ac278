package auth

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/uzak0209/echo/internal/errs"
)

// StreamCredentials are the credential sources a stream connection may
// carry. The browser EventSource/WebSocket APIs cannot set custom headers,
// hence the query-parameter path for short-lived stream tokens.
type StreamCredentials struct {
	Bearer      string
	QueryToken  string
	CookieToken string
}

// CredentialsFromCtx pulls the three credential sources off a request.
func CredentialsFromCtx(c *fiber.Ctx) StreamCredentials {
	return StreamCredentials{
		Bearer:      bearerFromHeader(c.Get("Authorization")),
		QueryToken:  c.Query("token"),
		CookieToken: c.Cookies("refresh_token"),
	}
}

// StreamAuth resolves the subject of an inbound stream connection from an
// ordered fallback of credential sources.
type StreamAuth struct {
	tokens *Tokens
}

func NewStreamAuth(tokens *Tokens) *StreamAuth {
	return &StreamAuth{tokens: tokens}
}

// Resolve checks sources top to bottom; the first one present decides.
// A present-but-invalid credential rejects without falling through, so an
// expired stream token is never silently downgraded to cookie auth.
func (a *StreamAuth) Resolve(creds StreamCredentials) (string, error) {
	switch {
	case creds.Bearer != "":
		return a.tokens.Verify(creds.Bearer, TokenAccess)
	case creds.QueryToken != "":
		return a.tokens.Verify(creds.QueryToken, TokenStream)
	case creds.CookieToken != "":
		return a.tokens.Verify(creds.CookieToken, TokenRefresh)
	default:
		return "", fmt.Errorf("%w: missing credentials", errs.ErrUnauthorized)
	}
}

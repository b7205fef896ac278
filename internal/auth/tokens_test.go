package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokens("secret")

	for _, kind := range []TokenKind{TokenAccess, TokenRefresh, TokenStream} {
		var raw string
		var err error
		switch kind {
		case TokenAccess:
			raw, err = tokens.IssueAccess("user-1")
		case TokenRefresh:
			raw, err = tokens.IssueRefresh("user-1")
		case TokenStream:
			raw, err = tokens.IssueStream("user-1")
		}
		if err != nil {
			t.Fatalf("issue %s: %v", kind, err)
		}

		subject, err := tokens.Verify(raw, kind)
		if err != nil {
			t.Fatalf("verify %s: %v", kind, err)
		}
		if subject != "user-1" {
			t.Fatalf("expected subject user-1, got %q", subject)
		}
	}
}

func TestTokenKindMismatchRejected(t *testing.T) {
	tokens := NewTokens("secret")

	refresh, err := tokens.IssueRefresh("user-1")
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}
	if _, err := tokens.Verify(refresh, TokenAccess); err == nil {
		t.Fatalf("expected refresh token to be rejected as access")
	}

	stream, err := tokens.IssueStream("user-1")
	if err != nil {
		t.Fatalf("issue stream: %v", err)
	}
	if _, err := tokens.Verify(stream, TokenRefresh); err == nil {
		t.Fatalf("expected stream token to be rejected as refresh")
	}
}

func TestTokenWrongSecretRejected(t *testing.T) {
	raw, err := NewTokens("secret-a").IssueAccess("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewTokens("secret-b").Verify(raw, TokenAccess); err == nil {
		t.Fatalf("expected signature mismatch to be rejected")
	}
}

func TestTokenExpiry(t *testing.T) {
	tokens := NewTokens("secret")
	issued := time.Now()
	tokens.now = func() time.Time { return issued }

	raw, err := tokens.IssueStream("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tokens.now = func() time.Time { return issued.Add(59 * time.Second) }
	if _, err := tokens.Verify(raw, TokenStream); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}

	tokens.now = func() time.Time { return issued.Add(61 * time.Second) }
	if _, err := tokens.Verify(raw, TokenStream); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestVerifyGarbage(t *testing.T) {
	tokens := NewTokens("secret")
	if _, err := tokens.Verify("not-a-jwt", TokenAccess); err == nil {
		t.Fatalf("expected garbage token to be rejected")
	}
}

package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/uzak0209/echo/internal/errs"
)

func TestNewPost(t *testing.T) {
	post, err := NewPost("user-1", "hello", nil)
	if err != nil {
		t.Fatalf("new post: %v", err)
	}
	if post.ID == "" || post.UserID != "user-1" {
		t.Fatalf("unexpected post identity")
	}
	if post.ViewCount != 0 || !post.Valid {
		t.Fatalf("expected fresh post with zero views and valid flag set")
	}
}

func TestNewPostEmptyContent(t *testing.T) {
	_, err := NewPost("user-1", "", nil)
	if !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNewPostContentLimit(t *testing.T) {
	if _, err := NewPost("user-1", strings.Repeat("a", MaxPostLength), nil); err != nil {
		t.Fatalf("1000 characters should be accepted: %v", err)
	}
	_, err := NewPost("user-1", strings.Repeat("a", MaxPostLength+1), nil)
	if !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("expected validation error for 1001 characters, got %v", err)
	}
}

func TestNewPostCountsRunesNotBytes(t *testing.T) {
	// 1000 multi-byte characters are within the limit.
	if _, err := NewPost("user-1", strings.Repeat("あ", MaxPostLength), nil); err != nil {
		t.Fatalf("multi-byte content rejected: %v", err)
	}
}

func TestClassifyViews(t *testing.T) {
	if ClassifyViews(9, 10) != PostEligible {
		t.Fatalf("expected eligible below threshold")
	}
	if ClassifyViews(10, 10) != PostExpired {
		t.Fatalf("expected expired at threshold")
	}
	if ClassifyViews(11, 10) != PostExpired {
		t.Fatalf("expected expired above threshold")
	}
	if ClassifyViews(0, 1) != PostEligible {
		t.Fatalf("expected fresh post eligible")
	}
}

func TestParseReactionKind(t *testing.T) {
	for _, kind := range ReactionKinds() {
		parsed, err := ParseReactionKind(string(kind))
		if err != nil || parsed != kind {
			t.Fatalf("kind %q did not round trip: %v", kind, err)
		}
	}
	if _, err := ParseReactionKind("angry"); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("expected validation error for unknown kind")
	}
}

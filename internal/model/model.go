// Package model holds the domain entities shared by the service and
// storage layers.
package model

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/uzak0209/echo/internal/errs"
)

// MaxPostLength is the maximum post body length in characters.
const MaxPostLength = 1000

type Post struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	ImageURL  *string   `json:"image_url,omitempty"`
	ViewCount int       `json:"view_count"`
	Valid     bool      `json:"valid"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPost validates the body and constructs a fresh post. The content
// invariant (1..=1000 characters) is enforced here and nowhere else;
// content is never mutated after construction.
func NewPost(userID, content string, imageURL *string) (Post, error) {
	if content == "" {
		return Post{}, fmt.Errorf("%w: content cannot be empty", errs.ErrValidation)
	}
	if utf8.RuneCountInString(content) > MaxPostLength {
		return Post{}, fmt.Errorf("%w: content too long (max %d characters)", errs.ErrValidation, MaxPostLength)
	}
	return Post{
		ID:        uuid.NewString(),
		UserID:    userID,
		Content:   content,
		ImageURL:  imageURL,
		ViewCount: 0,
		Valid:     true,
		CreatedAt: time.Now(),
	}, nil
}

type User struct {
	ID           string    `json:"id"`
	DisplayName  string    `json:"display_name"`
	AvatarURL    string    `json:"avatar_url"`
	PasswordHash *string   `json:"-"`
	RefreshToken *string   `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReactionKind is the closed set of reactions a viewer can leave on a post.
type ReactionKind string

const (
	ReactionSurprise ReactionKind = "surprise"
	ReactionEmpathy  ReactionKind = "empathy"
	ReactionLaugh    ReactionKind = "laugh"
	ReactionSad      ReactionKind = "sad"
	ReactionConfused ReactionKind = "confused"
)

// ReactionKinds lists every kind in a stable order.
func ReactionKinds() []ReactionKind {
	return []ReactionKind{ReactionSurprise, ReactionEmpathy, ReactionLaugh, ReactionSad, ReactionConfused}
}

// ParseReactionKind rejects anything outside the closed set.
func ParseReactionKind(s string) (ReactionKind, error) {
	switch ReactionKind(s) {
	case ReactionSurprise, ReactionEmpathy, ReactionLaugh, ReactionSad, ReactionConfused:
		return ReactionKind(s), nil
	}
	return "", fmt.Errorf("%w: invalid reaction kind %q", errs.ErrValidation, s)
}

type Reaction struct {
	ID        string       `json:"id"`
	PostID    string       `json:"post_id"`
	UserID    string       `json:"user_id"`
	Kind      ReactionKind `json:"kind"`
	CreatedAt time.Time    `json:"created_at"`
}

// PostState is the result of classifying a post's view count against the
// expiration threshold.
type PostState int

const (
	PostEligible PostState = iota
	PostExpired
)

// ClassifyViews is the expiration policy: a post stays eligible while its
// view count is below the threshold. Pure and total; the surrounding
// persistence write is the only fallible step.
func ClassifyViews(viewCount, threshold int) PostState {
	if viewCount < threshold {
		return PostEligible
	}
	return PostExpired
}

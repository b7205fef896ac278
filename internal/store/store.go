// Package store defines the persistence boundary. Services depend on these
// interfaces only; postgres and memory provide the two implementations.
package store

import (
	"context"

	"github.com/uzak0209/echo/internal/model"
)

type Posts interface {
	Create(ctx context.Context, post model.Post) error

	// ByID returns errs.ErrNotFound for unknown or invalidated posts.
	ByID(ctx context.Context, id string) (model.Post, error)

	// ByUser lists a user's still-valid posts, newest first.
	ByUser(ctx context.Context, userID string) ([]model.Post, error)

	// Eligible lists valid posts with a view count below threshold,
	// optionally excluding one owner. Order is unspecified; the caller
	// shuffles.
	Eligible(ctx context.Context, threshold int, excludeUserID string) ([]model.Post, error)

	// IncrementViews atomically bumps the view counter and flips the
	// validity flag in the same write when the new count reaches the
	// threshold. Returns the new count and whether the post is still
	// valid. Unknown or already-invalid posts return errs.ErrNotFound.
	IncrementViews(ctx context.Context, id string, threshold int) (views int, valid bool, err error)
}

type Users interface {
	Create(ctx context.Context, user model.User) error
	ByID(ctx context.Context, id string) (model.User, error)
	ByName(ctx context.Context, displayName string) (model.User, error)

	// SetRefreshToken stores the single live refresh token for a user;
	// nil clears it. Last write wins.
	SetRefreshToken(ctx context.Context, userID string, token *string) error
}

type Reactions interface {
	// Upsert inserts the reaction, replacing any previous reaction by the
	// same user on the same post (last write wins).
	Upsert(ctx context.Context, reaction model.Reaction) error

	// Remove deletes the matching reaction rows; kind nil matches any
	// kind. Removing a non-existent reaction is not an error.
	Remove(ctx context.Context, postID, userID string, kind *model.ReactionKind) error

	// CountsByPost groups a post's reactions by kind.
	CountsByPost(ctx context.Context, postID string) (map[model.ReactionKind]int, error)

	// LatestForOwner returns the most recent reaction left on any of the
	// owner's posts, or nil when there is none.
	LatestForOwner(ctx context.Context, ownerID string) (*model.Reaction, error)

	// CountsForOwner groups every reaction received across the owner's
	// posts by kind.
	CountsForOwner(ctx context.Context, ownerID string) (map[model.ReactionKind]int, error)
}

// Package reaction handles reaction submissions and the per-owner event
// fan-out that follows them.
package reaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/uzak0209/echo/internal/model"
	"github.com/uzak0209/echo/internal/store"
	"github.com/uzak0209/echo/internal/stream"
)

type Service struct {
	reactions store.Reactions
	posts     store.Posts
	topics    *stream.ReactionTopics
	log       *zap.Logger
}

func NewService(reactions store.Reactions, posts store.Posts, topics *stream.ReactionTopics, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{reactions: reactions, posts: posts, topics: topics, log: log}
}

// Add stores the reaction, replacing any previous one by the same user on
// the same post, then notifies the post's owner. The notification is
// fire-and-forget: once the reaction is written, the mutation has
// succeeded, whatever happens to the event.
func (s *Service) Add(ctx context.Context, postID, userID string, kind model.ReactionKind) error {
	reaction := model.Reaction{
		ID:        uuid.NewString(),
		PostID:    postID,
		UserID:    userID,
		Kind:      kind,
		CreatedAt: time.Now(),
	}
	if err := s.reactions.Upsert(ctx, reaction); err != nil {
		return err
	}

	post, err := s.posts.ByID(ctx, postID)
	if err != nil {
		s.log.Warn("skipping reaction event, owner lookup failed",
			zap.String("post_id", postID), zap.Error(err))
		return nil
	}

	s.topics.Publish(post.UserID, stream.NewReactionEvent(postID, userID, kind))
	return nil
}

// Remove deletes the viewer's reaction. Removing one that does not exist
// is fine.
func (s *Service) Remove(ctx context.Context, postID, userID string, kind *model.ReactionKind) error {
	return s.reactions.Remove(ctx, postID, userID, kind)
}

type KindCount struct {
	Kind  model.ReactionKind `json:"kind"`
	Count int                `json:"count"`
}

// CountsByPost returns per-kind totals for a post in the stable kind order.
func (s *Service) CountsByPost(ctx context.Context, postID string) ([]KindCount, error) {
	counts, err := s.reactions.CountsByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return orderedCounts(counts), nil
}

// LatestForOwner returns the kind of the most recent reaction received
// across the owner's posts, or nil when there is none.
func (s *Service) LatestForOwner(ctx context.Context, ownerID string) (*model.ReactionKind, error) {
	latest, err := s.reactions.LatestForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, nil
	}
	kind := latest.Kind
	return &kind, nil
}

// Expression summarizes the reactions a user has received.
type Expression struct {
	Dominant  *model.ReactionKind `json:"dominant"`
	Intensity float64             `json:"intensity"`
	Counts    []KindCount         `json:"counts"`
	Total     int                 `json:"total"`
}

// ExpressionState derives the user's dominant received reaction and an
// intensity that saturates at 100 total reactions.
func (s *Service) ExpressionState(ctx context.Context, ownerID string) (Expression, error) {
	counts, err := s.reactions.CountsForOwner(ctx, ownerID)
	if err != nil {
		return Expression{}, err
	}

	total := 0
	var dominant *model.ReactionKind
	best := 0
	for _, kind := range model.ReactionKinds() {
		n := counts[kind]
		total += n
		if n > best {
			best = n
			k := kind
			dominant = &k
		}
	}

	intensity := float64(total) / 100
	if intensity > 1 {
		intensity = 1
	}

	return Expression{
		Dominant:  dominant,
		Intensity: intensity,
		Counts:    orderedCounts(counts),
		Total:     total,
	}, nil
}

func orderedCounts(counts map[model.ReactionKind]int) []KindCount {
	out := make([]KindCount, 0, len(counts))
	for _, kind := range model.ReactionKinds() {
		if n, ok := counts[kind]; ok {
			out = append(out, KindCount{Kind: kind, Count: n})
		}
	}
	return out
}

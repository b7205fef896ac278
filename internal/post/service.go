// Package post is the lifecycle layer tying the expiration policy, the
// record store and the post-event topic together.
package post

import (
	"context"
	"errors"
	"math/rand"

	"go.uber.org/zap"

	"github.com/uzak0209/echo/internal/errs"
	"github.com/uzak0209/echo/internal/model"
	"github.com/uzak0209/echo/internal/store"
	"github.com/uzak0209/echo/internal/stream"
)

type Service struct {
	posts     store.Posts
	users     store.Users
	events    *stream.Topic[stream.PostEvent]
	threshold int
	log       *zap.Logger
}

func NewService(posts store.Posts, users store.Users, events *stream.Topic[stream.PostEvent], threshold int, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{posts: posts, users: users, events: events, threshold: threshold, log: log}
}

// Create validates, persists, and only then announces the new post. The
// announcement is best-effort: a mutation never fails because nobody is
// listening.
func (s *Service) Create(ctx context.Context, userID, content string, imageURL *string) (model.Post, error) {
	post, err := model.NewPost(userID, content, imageURL)
	if err != nil {
		return model.Post{}, err
	}

	author, err := s.users.ByID(ctx, userID)
	if err != nil {
		return model.Post{}, err
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return model.Post{}, err
	}

	s.events.Publish(stream.NewPostEvent(post, author))
	return post, nil
}

// RegisterView counts one view and applies the expiration policy. A
// missing post is a benign false, not an error: the viewer may simply have
// raced the post's expiry.
func (s *Service) RegisterView(ctx context.Context, postID string) (bool, error) {
	views, valid, err := s.posts.IncrementViews(ctx, postID, s.threshold)
	if errors.Is(err, errs.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if valid {
		s.events.Publish(stream.DisplayCountUpdated(postID, views))
	} else {
		s.events.Publish(stream.PostRemoved(postID))
	}
	return true, nil
}

// Timeline returns up to limit eligible posts in uniformly random order,
// excluding the viewer's own. The shuffle deliberately uses process-wide
// randomness, never anything derived from the request. Every returned
// post counts as viewed.
func (s *Service) Timeline(ctx context.Context, viewerID string, limit int) ([]model.Post, error) {
	posts, err := s.posts.Eligible(ctx, s.threshold, viewerID)
	if err != nil {
		return nil, err
	}

	rand.Shuffle(len(posts), func(i, j int) {
		posts[i], posts[j] = posts[j], posts[i]
	})
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}

	for _, p := range posts {
		if _, err := s.RegisterView(ctx, p.ID); err != nil {
			// the post is already on its way to the client; an
			// uncounted view must not fail the timeline
			s.log.Warn("register view failed", zap.String("post_id", p.ID), zap.Error(err))
		}
	}
	return posts, nil
}

func (s *Service) MyPosts(ctx context.Context, userID string) ([]model.Post, error) {
	return s.posts.ByUser(ctx, userID)
}

// Package memory is the in-memory store implementation, used by service
// tests and as the dev fallback when postgres is unavailable.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/uzak0209/echo/internal/errs"
	"github.com/uzak0209/echo/internal/model"
)

type Store struct {
	mu        sync.RWMutex
	posts     map[string]model.Post
	users     map[string]model.User
	reactions map[string]model.Reaction // keyed by postID + "/" + userID
}

func New() *Store {
	return &Store{
		posts:     map[string]model.Post{},
		users:     map[string]model.User{},
		reactions: map[string]model.Reaction{},
	}
}

func (s *Store) Posts() *PostStore         { return &PostStore{s} }
func (s *Store) Users() *UserStore         { return &UserStore{s} }
func (s *Store) Reactions() *ReactionStore { return &ReactionStore{s} }

type PostStore struct{ s *Store }

func (p *PostStore) Create(_ context.Context, post model.Post) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	p.s.posts[post.ID] = post
	return nil
}

func (p *PostStore) ByID(_ context.Context, id string) (model.Post, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	post, ok := p.s.posts[id]
	if !ok || !post.Valid {
		return model.Post{}, fmt.Errorf("%w: post %s", errs.ErrNotFound, id)
	}
	return post, nil
}

func (p *PostStore) ByUser(_ context.Context, userID string) ([]model.Post, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	var posts []model.Post
	for _, post := range p.s.posts {
		if post.UserID == userID && post.Valid {
			posts = append(posts, post)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (p *PostStore) Eligible(_ context.Context, threshold int, excludeUserID string) ([]model.Post, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	var posts []model.Post
	for _, post := range p.s.posts {
		if !post.Valid || model.ClassifyViews(post.ViewCount, threshold) != model.PostEligible {
			continue
		}
		if excludeUserID != "" && post.UserID == excludeUserID {
			continue
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (p *PostStore) IncrementViews(_ context.Context, id string, threshold int) (int, bool, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	post, ok := p.s.posts[id]
	if !ok || !post.Valid {
		return 0, false, fmt.Errorf("%w: post %s", errs.ErrNotFound, id)
	}
	post.ViewCount++
	post.Valid = model.ClassifyViews(post.ViewCount, threshold) == model.PostEligible
	p.s.posts[id] = post
	return post.ViewCount, post.Valid, nil
}

type UserStore struct{ s *Store }

func (u *UserStore) Create(_ context.Context, user model.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	u.s.users[user.ID] = user
	return nil
}

func (u *UserStore) ByID(_ context.Context, id string) (model.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	user, ok := u.s.users[id]
	if !ok {
		return model.User{}, fmt.Errorf("%w: user", errs.ErrNotFound)
	}
	return user, nil
}

func (u *UserStore) ByName(_ context.Context, displayName string) (model.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	for _, user := range u.s.users {
		if user.DisplayName == displayName {
			return user, nil
		}
	}
	return model.User{}, fmt.Errorf("%w: user", errs.ErrNotFound)
}

func (u *UserStore) SetRefreshToken(_ context.Context, userID string, token *string) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	user, ok := u.s.users[userID]
	if !ok {
		return fmt.Errorf("%w: user %s", errs.ErrNotFound, userID)
	}
	user.RefreshToken = token
	u.s.users[userID] = user
	return nil
}

type ReactionStore struct{ s *Store }

func (r *ReactionStore) Upsert(_ context.Context, reaction model.Reaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.reactions[reaction.PostID+"/"+reaction.UserID] = reaction
	return nil
}

func (r *ReactionStore) Remove(_ context.Context, postID, userID string, kind *model.ReactionKind) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := postID + "/" + userID
	if existing, ok := r.s.reactions[key]; ok {
		if kind == nil || existing.Kind == *kind {
			delete(r.s.reactions, key)
		}
	}
	return nil
}

func (r *ReactionStore) CountsByPost(_ context.Context, postID string) (map[model.ReactionKind]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	counts := map[model.ReactionKind]int{}
	for _, reaction := range r.s.reactions {
		if reaction.PostID == postID {
			counts[reaction.Kind]++
		}
	}
	return counts, nil
}

func (r *ReactionStore) LatestForOwner(_ context.Context, ownerID string) (*model.Reaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var latest *model.Reaction
	for _, reaction := range r.s.reactions {
		post, ok := r.s.posts[reaction.PostID]
		if !ok || post.UserID != ownerID {
			continue
		}
		if latest == nil || reaction.CreatedAt.After(latest.CreatedAt) {
			rc := reaction
			latest = &rc
		}
	}
	return latest, nil
}

func (r *ReactionStore) CountsForOwner(_ context.Context, ownerID string) (map[model.ReactionKind]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	counts := map[model.ReactionKind]int{}
	for _, reaction := range r.s.reactions {
		if post, ok := r.s.posts[reaction.PostID]; ok && post.UserID == ownerID {
			counts[reaction.Kind]++
		}
	}
	return counts, nil
}

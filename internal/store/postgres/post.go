// Package postgres implements the store interfaces on pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/uzak0209/echo/internal/db"
	"github.com/uzak0209/echo/internal/errs"
	"github.com/uzak0209/echo/internal/model"
)

type PostStore struct {
	db db.Querier
}

func NewPostStore(db db.Querier) *PostStore {
	return &PostStore{db: db}
}

func (s *PostStore) Create(ctx context.Context, post model.Post) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO posts (id, user_id, content, image_url, view_count, valid, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, post.ID, post.UserID, post.Content, post.ImageURL, post.ViewCount, post.Valid, post.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (s *PostStore) ByID(ctx context.Context, id string) (model.Post, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, content, image_url, view_count, valid, created_at
		FROM posts WHERE id=$1 AND valid
	`, id)

	var p model.Post
	if err := row.Scan(&p.ID, &p.UserID, &p.Content, &p.ImageURL, &p.ViewCount, &p.Valid, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Post{}, fmt.Errorf("%w: post %s", errs.ErrNotFound, id)
		}
		return model.Post{}, fmt.Errorf("select post: %w", err)
	}
	return p, nil
}

func (s *PostStore) ByUser(ctx context.Context, userID string) ([]model.Post, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, content, image_url, view_count, valid, created_at
		FROM posts
		WHERE user_id=$1 AND valid
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select posts by user: %w", err)
	}
	defer rows.Close()
	return scanPosts(rows)
}

func (s *PostStore) Eligible(ctx context.Context, threshold int, excludeUserID string) ([]model.Post, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, content, image_url, view_count, valid, created_at
		FROM posts
		WHERE valid AND view_count < $1 AND ($2 = '' OR user_id <> $2)
	`, threshold, excludeUserID)
	if err != nil {
		return nil, fmt.Errorf("select eligible posts: %w", err)
	}
	defer rows.Close()
	return scanPosts(rows)
}

// IncrementViews is the correctness boundary for concurrent views: the
// counter bump and the validity flip happen in one UPDATE, so an expired
// post is never observable with its old count.
func (s *PostStore) IncrementViews(ctx context.Context, id string, threshold int) (int, bool, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE posts
		SET view_count = view_count + 1,
		    valid = view_count + 1 < $2
		WHERE id=$1 AND valid
		RETURNING view_count, valid
	`, id, threshold)

	var views int
	var valid bool
	if err := row.Scan(&views, &valid); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, fmt.Errorf("%w: post %s", errs.ErrNotFound, id)
		}
		return 0, false, fmt.Errorf("increment views: %w", err)
	}
	return views, valid, nil
}

func scanPosts(rows pgx.Rows) ([]model.Post, error) {
	var posts []model.Post
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Content, &p.ImageURL, &p.ViewCount, &p.Valid, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

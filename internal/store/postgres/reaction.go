package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/uzak0209/echo/internal/db"
	"github.com/uzak0209/echo/internal/model"
)

type ReactionStore struct {
	db db.Querier
}

func NewReactionStore(db db.Querier) *ReactionStore {
	return &ReactionStore{db: db}
}

// Upsert relies on the (post_id, user_id) unique constraint: a repeat
// reaction replaces the stored row instead of accumulating.
func (s *ReactionStore) Upsert(ctx context.Context, reaction model.Reaction) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO reactions (id, post_id, user_id, kind, created_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (post_id, user_id)
		DO UPDATE SET id=EXCLUDED.id, kind=EXCLUDED.kind, created_at=EXCLUDED.created_at
	`, reaction.ID, reaction.PostID, reaction.UserID, reaction.Kind, reaction.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert reaction: %w", err)
	}
	return nil
}

func (s *ReactionStore) Remove(ctx context.Context, postID, userID string, kind *model.ReactionKind) error {
	var err error
	if kind == nil {
		_, err = s.db.Exec(ctx, `DELETE FROM reactions WHERE post_id=$1 AND user_id=$2`, postID, userID)
	} else {
		_, err = s.db.Exec(ctx, `DELETE FROM reactions WHERE post_id=$1 AND user_id=$2 AND kind=$3`, postID, userID, *kind)
	}
	if err != nil {
		return fmt.Errorf("delete reaction: %w", err)
	}
	return nil
}

func (s *ReactionStore) CountsByPost(ctx context.Context, postID string) (map[model.ReactionKind]int, error) {
	rows, err := s.db.Query(ctx, `
		SELECT kind, COUNT(*) FROM reactions WHERE post_id=$1 GROUP BY kind
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("count reactions: %w", err)
	}
	defer rows.Close()
	return scanCounts(rows)
}

func (s *ReactionStore) LatestForOwner(ctx context.Context, ownerID string) (*model.Reaction, error) {
	row := s.db.QueryRow(ctx, `
		SELECT r.id, r.post_id, r.user_id, r.kind, r.created_at
		FROM reactions r
		JOIN posts p ON p.id = r.post_id
		WHERE p.user_id=$1
		ORDER BY r.created_at DESC
		LIMIT 1
	`, ownerID)

	var r model.Reaction
	if err := row.Scan(&r.ID, &r.PostID, &r.UserID, &r.Kind, &r.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest reaction: %w", err)
	}
	return &r, nil
}

func (s *ReactionStore) CountsForOwner(ctx context.Context, ownerID string) (map[model.ReactionKind]int, error) {
	rows, err := s.db.Query(ctx, `
		SELECT r.kind, COUNT(*)
		FROM reactions r
		JOIN posts p ON p.id = r.post_id
		WHERE p.user_id=$1
		GROUP BY r.kind
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("count received reactions: %w", err)
	}
	defer rows.Close()
	return scanCounts(rows)
}

func scanCounts(rows pgx.Rows) (map[model.ReactionKind]int, error) {
	counts := map[model.ReactionKind]int{}
	for rows.Next() {
		var kind model.ReactionKind
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("scan reaction count: %w", err)
		}
		counts[kind] = count
	}
	return counts, rows.Err()
}

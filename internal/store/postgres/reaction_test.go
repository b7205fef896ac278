package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"

	"github.com/uzak0209/echo/internal/model"
)

func TestReactionUpsert(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	createdAt := time.Now()
	mock.ExpectExec(`INSERT INTO reactions`).
		WithArgs("r1", "p1", "u1", model.ReactionLaugh, createdAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	store := NewReactionStore(mock)
	err := store.Upsert(context.Background(), model.Reaction{
		ID: "r1", PostID: "p1", UserID: "u1", Kind: model.ReactionLaugh, CreatedAt: createdAt,
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReactionRemove(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM reactions WHERE post_id=\$1 AND user_id=\$2$`).
		WithArgs("p1", "u1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	store := NewReactionStore(mock)
	if err := store.Remove(context.Background(), "p1", "u1", nil); err != nil {
		t.Fatalf("remove: %v", err)
	}

	kind := model.ReactionSad
	mock.ExpectExec(`DELETE FROM reactions WHERE post_id=\$1 AND user_id=\$2 AND kind=\$3`).
		WithArgs("p1", "u1", kind).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	if err := store.Remove(context.Background(), "p1", "u1", &kind); err != nil {
		t.Fatalf("remove with kind: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReactionCountsByPost(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT kind, COUNT`).
		WithArgs("p1").
		WillReturnRows(pgxmock.NewRows([]string{"kind", "count"}).
			AddRow(model.ReactionLaugh, 3).
			AddRow(model.ReactionSad, 1))

	store := NewReactionStore(mock)
	counts, err := store.CountsByPost(context.Background(), "p1")
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts[model.ReactionLaugh] != 3 || counts[model.ReactionSad] != 1 {
		t.Fatalf("unexpected counts %v", counts)
	}
}

func TestReactionLatestForOwner(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	createdAt := time.Now()
	mock.ExpectQuery(`SELECT r.id, r.post_id, r.user_id, r.kind, r.created_at`).
		WithArgs("owner-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "post_id", "user_id", "kind", "created_at"}).
			AddRow("r1", "p1", "u1", model.ReactionConfused, createdAt))

	store := NewReactionStore(mock)
	latest, err := store.LatestForOwner(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest == nil || latest.Kind != model.ReactionConfused {
		t.Fatalf("unexpected latest %+v", latest)
	}
}

func TestReactionLatestForOwnerNone(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT r.id, r.post_id, r.user_id, r.kind, r.created_at`).
		WithArgs("owner-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "post_id", "user_id", "kind", "created_at"}))

	store := NewReactionStore(mock)
	latest, err := store.LatestForOwner(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest != nil {
		t.Fatalf("expected nil, got %+v", latest)
	}
}

func TestReactionCountsForOwner(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT r.kind, COUNT`).
		WithArgs("owner-1").
		WillReturnRows(pgxmock.NewRows([]string{"kind", "count"}).
			AddRow(model.ReactionEmpathy, 2))

	store := NewReactionStore(mock)
	counts, err := store.CountsForOwner(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts[model.ReactionEmpathy] != 2 {
		t.Fatalf("unexpected counts %v", counts)
	}
}

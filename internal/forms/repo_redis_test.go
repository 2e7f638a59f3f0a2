package forms

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupRedisRepo(t *testing.T) (*RedisRepo, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisRepo(client), mr
}

func TestRedisRepoDraftLifecycle(t *testing.T) {
	repo, _ := setupRedisRepo(t)
	ctx := context.Background()

	draft := testDraft("d1", 1)
	draft.Data.Personal = map[string]any{"person_type": "fisica"}
	if _, err := repo.SaveDraft(ctx, draft); err != nil {
		t.Fatalf("save draft: %v", err)
	}

	got, err := repo.GetDraft(ctx, "d1")
	if err != nil {
		t.Fatalf("get draft: %v", err)
	}
	if got.Data.Personal["person_type"] != "fisica" {
		t.Fatalf("expected personal data round-trip, got %v", got.Data.Personal)
	}

	byUser, err := repo.GetDraftByUser(ctx, 1)
	if err != nil {
		t.Fatalf("get draft by user: %v", err)
	}
	if byUser.ID != "d1" {
		t.Fatalf("expected draft d1, got %s", byUser.ID)
	}

	if _, err := repo.GetDraftByUser(ctx, 2); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for other user, got %v", err)
	}

	existed, err := repo.DeleteDraft(ctx, "d1")
	if err != nil {
		t.Fatalf("delete draft: %v", err)
	}
	if !existed {
		t.Fatalf("expected delete to report existing draft")
	}

	if _, err := repo.GetDraftByUser(ctx, 1); err != ErrNotFound {
		t.Fatalf("expected user index removed with draft, got %v", err)
	}

	existed, err = repo.DeleteDraft(ctx, "d1")
	if err != nil {
		t.Fatalf("delete missing draft: %v", err)
	}
	if existed {
		t.Fatalf("expected delete of missing draft to report false")
	}
}

func TestRedisRepoDraftExpiresByTTL(t *testing.T) {
	repo, mr := setupRedisRepo(t)
	ctx := context.Background()

	if _, err := repo.SaveDraft(ctx, testDraft("d1", 1)); err != nil {
		t.Fatalf("save draft: %v", err)
	}

	mr.FastForward(31 * 24 * time.Hour)

	if _, err := repo.GetDraft(ctx, "d1"); err != ErrNotFound {
		t.Fatalf("expected draft evicted by TTL, got %v", err)
	}
	if _, err := repo.GetDraftByUser(ctx, 1); err != ErrNotFound {
		t.Fatalf("expected user lookup empty after TTL, got %v", err)
	}
}

func TestRedisRepoCleanupExpiredDrafts(t *testing.T) {
	repo, _ := setupRedisRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()
	repo.now = func() time.Time { return now }

	// Key TTL is refreshed on save, but lastSaved is what expiry is defined
	// on; cleanup must remove drafts stale by lastSaved even when the key is
	// still alive.
	old := testDraft("old", 1)
	old.LastSaved = now.Add(-31 * 24 * time.Hour)
	fresh := testDraft("fresh", 2)
	fresh.LastSaved = now.Add(-29 * 24 * time.Hour)

	for _, d := range []Draft{old, fresh} {
		if _, err := repo.SaveDraft(ctx, d); err != nil {
			t.Fatalf("save draft %s: %v", d.ID, err)
		}
	}

	count, err := repo.CleanupExpiredDrafts(ctx)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 removed, got %d", count)
	}

	if _, err := repo.GetDraft(ctx, "old"); err != ErrNotFound {
		t.Fatalf("expected old draft removed, got %v", err)
	}
	if _, err := repo.GetDraft(ctx, "fresh"); err != nil {
		t.Fatalf("expected fresh draft retained, got %v", err)
	}
}

func TestRedisRepoSubmissionsPersistWithoutTTL(t *testing.T) {
	repo, mr := setupRedisRepo(t)
	ctx := context.Background()

	sub := Submission{
		ID:             "s1",
		ProtocolNumber: "ABC123DEF456",
		UserID:         1,
		SubmittedAt:    time.Now().UTC(),
		Status:         StatusPending,
	}
	if _, err := repo.SaveSubmission(ctx, sub); err != nil {
		t.Fatalf("save submission: %v", err)
	}

	mr.FastForward(60 * 24 * time.Hour)

	got, err := repo.GetSubmission(ctx, "s1")
	if err != nil {
		t.Fatalf("get submission after fast-forward: %v", err)
	}
	if got.Status != StatusPending {
		t.Fatalf("expected pending status, got %s", got.Status)
	}
}

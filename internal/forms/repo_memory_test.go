package forms

import (
	"context"
	"testing"
	"time"
)

func testDraft(id string, userID int64) Draft {
	now := time.Now().UTC()
	return Draft{
		ID:                 id,
		UserID:             userID,
		CurrentStep:        1,
		ProgressPercentage: 0,
		Data:               FormData{},
		LastSaved:          now,
		CreatedAt:          now,
	}
}

func TestMemoryRepoDraftLifecycle(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	draft := testDraft("d1", 1)
	if _, err := repo.SaveDraft(ctx, draft); err != nil {
		t.Fatalf("save draft: %v", err)
	}

	got, err := repo.GetDraft(ctx, "d1")
	if err != nil {
		t.Fatalf("get draft: %v", err)
	}
	if got.UserID != 1 {
		t.Fatalf("expected userId 1, got %d", got.UserID)
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

	existed, err = repo.DeleteDraft(ctx, "d1")
	if err != nil {
		t.Fatalf("delete draft again: %v", err)
	}
	if existed {
		t.Fatalf("expected delete of missing draft to report false")
	}
}

func TestMemoryRepoSaveIsUpsert(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	draft := testDraft("d1", 1)
	if _, err := repo.SaveDraft(ctx, draft); err != nil {
		t.Fatalf("save draft: %v", err)
	}

	draft.CurrentStep = 3
	if _, err := repo.SaveDraft(ctx, draft); err != nil {
		t.Fatalf("save draft update: %v", err)
	}

	got, err := repo.GetDraft(ctx, "d1")
	if err != nil {
		t.Fatalf("get draft: %v", err)
	}
	if got.CurrentStep != 3 {
		t.Fatalf("expected currentStep 3, got %d", got.CurrentStep)
	}
}

func TestMemoryRepoSubmissions(t *testing.T) {
	repo := NewMemoryRepo()
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

	got, err := repo.GetSubmission(ctx, "s1")
	if err != nil {
		t.Fatalf("get submission: %v", err)
	}
	if got.ProtocolNumber != "ABC123DEF456" {
		t.Fatalf("unexpected protocol number %s", got.ProtocolNumber)
	}

	if _, err := repo.GetSubmission(ctx, "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepoCleanupExpiredDrafts(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	now := time.Now().UTC()
	repo.now = func() time.Time { return now }

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

package forms

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu          sync.RWMutex
	drafts      map[string]Draft
	submissions map[string]Submission
	now         func() time.Time
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		drafts:      make(map[string]Draft),
		submissions: make(map[string]Submission),
		now:         time.Now,
	}
}

// SaveDraft upserts a draft keyed by its id.
func (r *MemoryRepo) SaveDraft(ctx context.Context, draft Draft) (Draft, error) {
	if err := ctx.Err(); err != nil {
		return Draft{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drafts[draft.ID] = draft
	return draft, nil
}

// GetDraft returns a draft by id.
func (r *MemoryRepo) GetDraft(ctx context.Context, id string) (Draft, error) {
	if err := ctx.Err(); err != nil {
		return Draft{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	draft, ok := r.drafts[id]
	if !ok {
		return Draft{}, ErrNotFound
	}
	return draft, nil
}

// GetDraftByUser scans for the user's draft. Not indexed; a real database
// would query by user id.
func (r *MemoryRepo) GetDraftByUser(ctx context.Context, userID int64) (Draft, error) {
	if err := ctx.Err(); err != nil {
		return Draft{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, draft := range r.drafts {
		if draft.UserID == userID {
			return draft, nil
		}
	}
	return Draft{}, ErrNotFound
}

// DeleteDraft removes a draft, reporting whether it existed.
func (r *MemoryRepo) DeleteDraft(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.drafts[id]
	delete(r.drafts, id)
	return ok, nil
}

// SaveSubmission stores a completed submission.
func (r *MemoryRepo) SaveSubmission(ctx context.Context, sub Submission) (Submission, error) {
	if err := ctx.Err(); err != nil {
		return Submission{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submissions[sub.ID] = sub
	return sub, nil
}

// GetSubmission returns a submission by id.
func (r *MemoryRepo) GetSubmission(ctx context.Context, id string) (Submission, error) {
	if err := ctx.Err(); err != nil {
		return Submission{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub, ok := r.submissions[id]
	if !ok {
		return Submission{}, ErrNotFound
	}
	return sub, nil
}

// CleanupExpiredDrafts removes drafts idle past the expiration window.
func (r *MemoryRepo) CleanupExpiredDrafts(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	cutoff := r.now().Add(-DraftExpirationDays * 24 * time.Hour)
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for id, draft := range r.drafts {
		if draft.LastSaved.Before(cutoff) {
			delete(r.drafts, id)
			count++
		}
	}
	return count, nil
}

package forms

import "context"

// Repo defines persistence operations for drafts and submissions.
//
// Implementations are not required to serialize read-modify-write cycles:
// two concurrent saves of the same draft race and the last write wins. The
// lab has no lost-update detection.
type Repo interface {
	// SaveDraft upserts a draft keyed by its id.
	SaveDraft(ctx context.Context, draft Draft) (Draft, error)
	// GetDraft returns a draft by id, or ErrNotFound.
	GetDraft(ctx context.Context, id string) (Draft, error)
	// GetDraftByUser returns the user's active draft, or ErrNotFound. At most
	// one draft per user exists by construction: Start checks for an existing
	// draft before creating one.
	GetDraftByUser(ctx context.Context, userID int64) (Draft, error)
	// DeleteDraft removes a draft, reporting whether it existed.
	DeleteDraft(ctx context.Context, id string) (bool, error)
	// SaveSubmission stores a completed submission.
	SaveSubmission(ctx context.Context, sub Submission) (Submission, error)
	// GetSubmission returns a submission by id, or ErrNotFound.
	GetSubmission(ctx context.Context, id string) (Submission, error)
	// CleanupExpiredDrafts removes drafts whose lastSaved age exceeds
	// DraftExpirationDays, returning the count removed.
	CleanupExpiredDrafts(ctx context.Context) (int, error)
}

package forms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"formlab-backend/internal/shared/metrics"
	"formlab-backend/internal/shared/svcerr"
	"formlab-backend/internal/shared/telemetry"
)

// Service orchestrates the form lifecycle: start, auto-save, validation, and
// final submission.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Start returns the user's existing draft or creates a fresh one at step 1.
// Calling it twice in a row yields the same draft.
func (s *Service) Start(ctx context.Context, userID int64) (Draft, error) {
	draft, err := s.Repo.GetDraftByUser(ctx, userID)
	if err == nil {
		return draft, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Draft{}, err
	}

	now := time.Now().UTC()
	draft = Draft{
		ID:                 NewID(),
		UserID:             userID,
		CurrentStep:        1,
		ProgressPercentage: 0,
		Data:               FormData{},
		LastSaved:          now,
		CreatedAt:          now,
	}

	saved, err := s.Repo.SaveDraft(ctx, draft)
	if err != nil {
		return Draft{}, err
	}
	metrics.IncFormStarted()
	return saved, nil
}

// SaveDraft merges step data into the draft and persists it. Auto-save is
// partial-data tolerant: no schema validation happens here, incomplete input
// is stored as given.
func (s *Service) SaveDraft(ctx context.Context, userID int64, draftID string, step int, data map[string]any) (Draft, error) {
	if step < 1 || step > TotalSteps {
		return Draft{}, svcerr.BadRequest("Invalid step")
	}

	var draft Draft
	var err error
	if draftID != "" {
		draft, err = s.Repo.GetDraft(ctx, draftID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return Draft{}, err
		}
	}
	if draftID == "" || errors.Is(err, ErrNotFound) {
		draft, err = s.Start(ctx, userID)
		if err != nil {
			return Draft{}, err
		}
	}

	if draft.UserID != userID {
		return Draft{}, svcerr.Forbidden("Access denied to this draft")
	}

	switch step {
	case 1:
		draft.Data.Personal = mergeSection(draft.Data.Personal, data)
	case 2:
		draft.Data.Address = mergeSection(draft.Data.Address, data)
	case 3:
		// Step 3 replaces the documents array wholesale.
		draft.Data.Documents = toDocuments(data["documents"])
	case 4:
		draft.Data.Confirmation = mergeSection(draft.Data.Confirmation, data)
	}

	draft.CurrentStep = step
	draft.ProgressPercentage = ProgressPercentage(step)
	draft.LastSaved = time.Now().UTC()

	return s.Repo.SaveDraft(ctx, draft)
}

// ValidateStep runs the matching step validator without persisting anything.
func (s *Service) ValidateStep(step int, data map[string]any) (ValidationResult, error) {
	if step < 1 || step > TotalSteps {
		return ValidationResult{}, svcerr.BadRequest("Invalid step")
	}
	return validateStepData(step, data).result(), nil
}

// Submit validates the assembled draft data against all four steps, creates a
// pending submission with a fresh protocol number, and deletes the source
// draft. From the caller's perspective the operation is atomic: a validation
// failure leaves the draft untouched.
func (s *Service) Submit(ctx context.Context, userID int64, draftID string) (Submission, error) {
	start := time.Now()

	draft, err := s.Repo.GetDraft(ctx, draftID)
	if errors.Is(err, ErrNotFound) {
		return Submission{}, svcerr.NotFound("Draft not found")
	}
	if err != nil {
		return Submission{}, err
	}

	if draft.UserID != userID {
		return Submission{}, svcerr.Forbidden("Access denied")
	}

	if errs := ValidateFullForm(draft.Data); len(errs) > 0 {
		metrics.IncFormSubmitFailed()
		return Submission{}, svcerr.Validation("Form has invalid data", errs)
	}

	sub := Submission{
		ID:             NewID(),
		ProtocolNumber: NewProtocolNumber(),
		UserID:         userID,
		Data:           draft.Data,
		SubmittedAt:    time.Now().UTC(),
		Status:         StatusPending,
	}

	if _, err := s.Repo.SaveSubmission(ctx, sub); err != nil {
		metrics.IncFormSubmitFailed()
		return Submission{}, err
	}
	if _, err := s.Repo.DeleteDraft(ctx, draftID); err != nil {
		metrics.IncFormSubmitFailed()
		return Submission{}, fmt.Errorf("delete draft after submit: %w", err)
	}

	metrics.IncFormSubmitted()
	metrics.ObserveSubmitDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	return sub, nil
}

// GetSubmission returns a submission visible to the given user.
func (s *Service) GetSubmission(ctx context.Context, userID int64, id string) (Submission, error) {
	sub, err := s.Repo.GetSubmission(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Submission{}, svcerr.NotFound("Submission not found")
	}
	if err != nil {
		return Submission{}, err
	}
	if sub.UserID != userID {
		return Submission{}, svcerr.Forbidden("Access denied")
	}
	return sub, nil
}

// CleanupExpired removes drafts idle past the expiration window.
func (s *Service) CleanupExpired(ctx context.Context) (int, error) {
	count, err := s.Repo.CleanupExpiredDrafts(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		metrics.AddDraftsCleaned(count)
		telemetry.Info("drafts.cleanup", map[string]any{"removed": count})
	}
	return count, nil
}

// ProgressPercentage computes completion after saving a step.
func ProgressPercentage(step int) int {
	return int(float64(step-1)/float64(TotalSteps)*100 + 0.5)
}

func mergeSection(existing, incoming map[string]any) map[string]any {
	merged := make(map[string]any, len(existing)+len(incoming))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range incoming {
		merged[k] = v
	}
	return merged
}

func toDocuments(raw any) []map[string]any {
	entries, ok := raw.([]any)
	if !ok {
		return nil
	}
	docs := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		if doc, ok := entry.(map[string]any); ok {
			docs = append(docs, doc)
		}
	}
	return docs
}

package forms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisDraftKeyPrefix      = "form:draft:"
	redisDraftUserKeyPrefix  = "form:draft-user:"
	redisSubmissionKeyPrefix = "form:submission:"
)

// draftTTL mirrors the 30-day expiry: Redis evicts idle drafts on its own,
// CleanupExpiredDrafts covers drafts whose lastSaved predates the TTL refresh.
const draftTTL = DraftExpirationDays * 24 * time.Hour

// RedisRepo is a Redis-backed implementation of Repo. Drafts carry a TTL
// refreshed on every save plus a per-user index key; submissions are kept
// without expiry.
type RedisRepo struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisRepo constructs a RedisRepo on an existing client.
func NewRedisRepo(client *redis.Client) *RedisRepo {
	return &RedisRepo{client: client, now: time.Now}
}

func draftKey(id string) string {
	return redisDraftKeyPrefix + id
}

func draftUserKey(userID int64) string {
	return redisDraftUserKeyPrefix + strconv.FormatInt(userID, 10)
}

func submissionKey(id string) string {
	return redisSubmissionKeyPrefix + id
}

// SaveDraft upserts a draft and refreshes its expiry and user index.
func (r *RedisRepo) SaveDraft(ctx context.Context, draft Draft) (Draft, error) {
	payload, err := json.Marshal(draft)
	if err != nil {
		return Draft{}, fmt.Errorf("marshal draft: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, draftKey(draft.ID), payload, draftTTL)
	pipe.Set(ctx, draftUserKey(draft.UserID), draft.ID, draftTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return Draft{}, fmt.Errorf("save draft: %w", err)
	}
	return draft, nil
}

// GetDraft returns a draft by id.
func (r *RedisRepo) GetDraft(ctx context.Context, id string) (Draft, error) {
	raw, err := r.client.Get(ctx, draftKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Draft{}, ErrNotFound
	}
	if err != nil {
		return Draft{}, fmt.Errorf("get draft: %w", err)
	}

	var draft Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return Draft{}, fmt.Errorf("unmarshal draft: %w", err)
	}
	return draft, nil
}

// GetDraftByUser resolves the user's draft through the index key. A stale
// index entry pointing at an evicted draft is removed on the way.
func (r *RedisRepo) GetDraftByUser(ctx context.Context, userID int64) (Draft, error) {
	id, err := r.client.Get(ctx, draftUserKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return Draft{}, ErrNotFound
	}
	if err != nil {
		return Draft{}, fmt.Errorf("get draft index: %w", err)
	}

	draft, err := r.GetDraft(ctx, id)
	if errors.Is(err, ErrNotFound) {
		_ = r.client.Del(ctx, draftUserKey(userID)).Err()
		return Draft{}, ErrNotFound
	}
	return draft, err
}

// DeleteDraft removes a draft and its user index, reporting whether it existed.
func (r *RedisRepo) DeleteDraft(ctx context.Context, id string) (bool, error) {
	draft, err := r.GetDraft(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, draftKey(id))
	pipe.Del(ctx, draftUserKey(draft.UserID))
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("delete draft: %w", err)
	}
	return true, nil
}

// SaveSubmission stores a completed submission without expiry.
func (r *RedisRepo) SaveSubmission(ctx context.Context, sub Submission) (Submission, error) {
	payload, err := json.Marshal(sub)
	if err != nil {
		return Submission{}, fmt.Errorf("marshal submission: %w", err)
	}
	if err := r.client.Set(ctx, submissionKey(sub.ID), payload, 0).Err(); err != nil {
		return Submission{}, fmt.Errorf("save submission: %w", err)
	}
	return sub, nil
}

// GetSubmission returns a submission by id.
func (r *RedisRepo) GetSubmission(ctx context.Context, id string) (Submission, error) {
	raw, err := r.client.Get(ctx, submissionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Submission{}, ErrNotFound
	}
	if err != nil {
		return Submission{}, fmt.Errorf("get submission: %w", err)
	}

	var sub Submission
	if err := json.Unmarshal(raw, &sub); err != nil {
		return Submission{}, fmt.Errorf("unmarshal submission: %w", err)
	}
	return sub, nil
}

// CleanupExpiredDrafts scans for drafts whose lastSaved age exceeds the
// expiration window and deletes them. Redis TTL already evicts most of these;
// the scan catches entries whose TTL was refreshed after lastSaved went stale.
func (r *RedisRepo) CleanupExpiredDrafts(ctx context.Context) (int, error) {
	cutoff := r.now().Add(-draftTTL)
	count := 0

	iter := r.client.Scan(ctx, 0, redisDraftKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		id := key[len(redisDraftKeyPrefix):]

		draft, err := r.GetDraft(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return count, err
		}

		if draft.LastSaved.Before(cutoff) {
			existed, err := r.DeleteDraft(ctx, id)
			if err != nil {
				return count, err
			}
			if existed {
				count++
			}
		}
	}
	if err := iter.Err(); err != nil {
		return count, fmt.Errorf("scan drafts: %w", err)
	}
	return count, nil
}

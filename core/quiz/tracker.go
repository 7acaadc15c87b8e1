package quiz

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/Zhalalov2-code/online-course/core/normalize"
)

const (
	completedKeyPrefix = "completedTests_"
	guestKey           = completedKeyPrefix + "guest"
)

// CompletedRepository persists the completed-tests marker, one raw value per key.
type CompletedRepository interface {
	// GetCompleted returns the value stored under key, or "" when there is none.
	GetCompleted(ctx context.Context, key string) (string, error)
	SetCompleted(ctx context.Context, key, value string) error
}

// CompletedKey is the storage key of a user's completed tests. Anonymous users share the guest key.
func CompletedKey(userID string) string {
	if id := strings.TrimSpace(userID); id != "" {
		return completedKeyPrefix + id
	}
	return guestKey
}

// Tracker remembers which tests each user has completed.
// Updates of the same key are serialized.
type Tracker struct {
	repo CompletedRepository

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewTracker(repo CompletedRepository) *Tracker {
	return &Tracker{repo: repo, locks: make(map[string]*sync.Mutex)}
}

func (t *Tracker) lock(key string) func() {
	t.mu.Lock()
	l, ok := t.locks[key]
	if !ok {
		l = new(sync.Mutex)
		t.locks[key] = l
	}
	t.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Completed returns the set of test IDs the user completed. Corrupt values read as empty.
func (t *Tracker) Completed(ctx context.Context, userID string) (map[string]bool, error) {
	raw, err := t.repo.GetCompleted(ctx, CompletedKey(userID))
	if err != nil {
		return nil, errors.Wrap(err, "reading completed tests")
	}
	return decodeCompleted(raw), nil
}

// MarkCompleted adds testIDs to the user's completed tests.
func (t *Tracker) MarkCompleted(ctx context.Context, userID string, testIDs ...string) (map[string]bool, error) {
	unlock := t.lock(CompletedKey(userID))
	defer unlock()

	completed, err := t.Completed(ctx, userID)
	if err != nil {
		return nil, err
	}
	var changed bool
	for _, id := range testIDs {
		if id = strings.TrimSpace(id); id != "" && !completed[id] {
			completed[id] = true
			changed = true
		}
	}
	if !changed {
		return completed, nil
	}
	if err := t.repo.SetCompleted(ctx, CompletedKey(userID), encodeCompleted(completed)); err != nil {
		return nil, errors.Wrap(err, "saving completed tests")
	}
	return completed, nil
}

// MergeCorrect marks the tests of the user's correct results as completed.
func (t *Tracker) MergeCorrect(ctx context.Context, userID string, results []normalize.Result) (map[string]bool, error) {
	ids := make([]string, 0, len(results))
	for _, r := range results {
		if r.IsCorrect && r.TestID.Valid {
			ids = append(ids, r.TestID.String)
		}
	}
	return t.MarkCompleted(ctx, userID, ids...)
}

func decodeCompleted(raw string) map[string]bool {
	completed := make(map[string]bool)
	if strings.TrimSpace(raw) == "" {
		return completed
	}
	var ids []interface{}
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return completed
	}
	for _, id := range ids {
		if s := strings.TrimSpace(idString(id)); s != "" {
			completed[s] = true
		}
	}
	return completed
}

func encodeCompleted(completed map[string]bool) string {
	ids := make([]string, 0, len(completed))
	for id := range completed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	b, _ := json.Marshal(ids)
	return string(b)
}

func idString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		b, _ := json.Marshal(val)
		return string(b)
	default:
		return ""
	}
}

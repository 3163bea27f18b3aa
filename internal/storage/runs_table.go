package storage

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/gofrs/uuid/v5"
)

// ErrRunNotFound is returned for lookups of unknown run IDs.
var ErrRunNotFound = errors.New("run not found")

// IRunsTable defines the interface for run storage operations.
type IRunsTable interface {
	Save(ctx context.Context, run *Run) error
	FindByID(ctx context.Context, id uuid.UUID) (*Run, error)
	List(ctx context.Context, limit int) ([]*Run, error)
}

var _ IRunsTable = (*RunsTable)(nil)

// RunsTable is the in-memory run store. Runs are per-upload snapshots with
// no persistence requirement, so a mutex-guarded map is the whole store;
// contents are lost on restart.
type RunsTable struct {
	mu   sync.RWMutex
	runs map[uuid.UUID]*Run
}

// NewRunsTable creates an empty in-memory run store.
func NewRunsTable() *RunsTable {
	return &RunsTable{runs: make(map[uuid.UUID]*Run)}
}

// Save stores or replaces a run. The run is copied so later caller mutations
// don't leak into the store.
func (t *RunsTable) Save(ctx context.Context, run *Run) error {
	if run.ID == uuid.Nil {
		return errors.New("run ID is required")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	runCopy := *run
	t.runs[run.ID] = &runCopy
	return nil
}

// FindByID retrieves a run by ID, returning a copy.
func (t *RunsTable) FindByID(ctx context.Context, id uuid.UUID) (*Run, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	run, ok := t.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}

	runCopy := *run
	return &runCopy, nil
}

// List returns runs newest-first, at most limit (all when limit <= 0).
func (t *RunsTable) List(ctx context.Context, limit int) ([]*Run, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]*Run, 0, len(t.runs))
	for _, run := range t.runs {
		runCopy := *run
		result = append(result, &runCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID.String() > result[j].ID.String()
	})

	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}

	return result, nil
}

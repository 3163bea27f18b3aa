package storage

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/deposit-validator/internal/dedup"
	"github.com/carson-networks/deposit-validator/internal/report"
	"github.com/carson-networks/deposit-validator/internal/tabular"
)

// RunState is the lifecycle state of a validation run.
type RunState string

const (
	// RunStateAwaitingInput is the initial state before an upload arrives.
	RunStateAwaitingInput RunState = "awaiting_input"
	// RunStateAwaitingMapping means required columns were not detected and
	// the caller must supply a column mapping before processing resumes.
	RunStateAwaitingMapping RunState = "awaiting_mapping"
	// RunStateProcessing means reconciliation is underway.
	RunStateProcessing RunState = "processing"
	// RunStateComplete means the report is ready.
	RunStateComplete RunState = "complete"
	// RunStateFailed means a fatal error aborted the run.
	RunStateFailed RunState = "failed"
)

// Run is one validation run: the upload, its lifecycle state, and the
// artifacts produced so far. Runs are snapshots; they never change once
// Complete or Failed.
type Run struct {
	ID        uuid.UUID
	State     RunState
	CreatedAt time.Time

	// Upload is the raw table as received, kept so a mapping resolution can
	// restart normalization from the original column names.
	Upload *tabular.Table

	// MissingColumns and AvailableColumns are populated while the run is
	// awaiting a mapping.
	MissingColumns   []string
	AvailableColumns []string

	// Mapping is the caller-supplied canonical -> source column mapping.
	Mapping map[string]string

	Duplicates dedup.Result
	Report     *report.Report

	// Error holds the fatal error message when the run is Failed.
	Error string
}

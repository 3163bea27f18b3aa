package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/deposit-validator/internal/asof"
	"github.com/carson-networks/deposit-validator/internal/classify"
	"github.com/carson-networks/deposit-validator/internal/dedup"
	"github.com/carson-networks/deposit-validator/internal/operator"
	"github.com/carson-networks/deposit-validator/internal/refdata"
	"github.com/carson-networks/deposit-validator/internal/report"
	"github.com/carson-networks/deposit-validator/internal/schema"
	"github.com/carson-networks/deposit-validator/internal/storage"
	"github.com/carson-networks/deposit-validator/internal/tabular"
)

// ErrRunNotFound is returned for unknown run IDs.
var ErrRunNotFound = storage.ErrRunNotFound

// ErrInvalidRunState is returned when an operation does not apply to the
// run's current state, e.g. resolving a mapping on a completed run.
var ErrInvalidRunState = errors.New("operation not valid for run state")

// ValidationService owns the run lifecycle:
//
//	AwaitingInput -> (AwaitingMapping <->) Processing -> Complete | Failed
//
// Transitions are driven by explicit caller calls; there is no implicit
// re-execution. Each run processes as one isolated job on the operator pool.
type ValidationService struct {
	storage      *storage.Storage
	provider     refdata.Provider
	operator     *operator.OperatorDelegator
	cooldownDays int
}

// NewValidationService creates a new ValidationService. A non-positive
// cooldown falls back to the 7-day default.
func NewValidationService(store *storage.Storage, provider refdata.Provider, op *operator.OperatorDelegator, cooldownDays int) *ValidationService {
	if cooldownDays <= 0 {
		cooldownDays = classify.DefaultCooldownDays
	}
	return &ValidationService{
		storage:      store,
		provider:     provider,
		operator:     op,
		cooldownDays: cooldownDays,
	}
}

// CreateRun registers an upload and processes it. When required columns are
// missing the run parks in AwaitingMapping and the returned run carries the
// missing and available column names; no error is returned for that case.
// Fatal processing errors mark the run Failed and are returned to the caller.
func (s *ValidationService) CreateRun(ctx context.Context, upload *tabular.Table) (*storage.Run, error) {
	run := &storage.Run{
		ID:        uuid.Must(uuid.NewV4()),
		State:     storage.RunStateAwaitingInput,
		CreatedAt: time.Now().UTC(),
		Upload:    upload,
	}

	return s.advance(ctx, run, nil)
}

// ResolveMapping supplies the column mapping for a run parked in
// AwaitingMapping and resumes processing. The mapping maps canonical display
// names to normalized source column names.
func (s *ValidationService) ResolveMapping(ctx context.Context, id uuid.UUID, mapping map[string]string) (*storage.Run, error) {
	run, err := s.storage.Runs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if run.State != storage.RunStateAwaitingMapping {
		return nil, fmt.Errorf("%w: run is %s", ErrInvalidRunState, run.State)
	}

	return s.advance(ctx, run, mapping)
}

// advance resolves columns and either parks the run for mapping input or
// pushes it through processing.
func (s *ValidationService) advance(ctx context.Context, run *storage.Run, mapping map[string]string) (*storage.Run, error) {
	run.Mapping = mapping

	resolved, err := schema.Resolve(run.Upload, mapping)
	if err != nil {
		var mappingErr *schema.MappingRequiredError
		if errors.As(err, &mappingErr) {
			run.State = storage.RunStateAwaitingMapping
			run.MissingColumns = mappingErr.Missing
			run.AvailableColumns = mappingErr.Columns
			if saveErr := s.storage.Runs.Save(ctx, run); saveErr != nil {
				return nil, saveErr
			}
			return run, nil
		}
		return nil, err
	}

	run.State = storage.RunStateProcessing
	run.MissingColumns = nil
	if err := s.storage.Runs.Save(ctx, run); err != nil {
		return nil, err
	}

	job := &processRunJob{service: s, run: run, resolved: resolved}
	if err := s.operator.Process(ctx, job); err != nil {
		run.State = storage.RunStateFailed
		run.Error = err.Error()
		if saveErr := s.storage.Runs.Save(ctx, run); saveErr != nil {
			return nil, saveErr
		}
		return run, err
	}

	run.State = storage.RunStateComplete
	if err := s.storage.Runs.Save(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// processRunJob carries one run through the reconciliation pipeline.
type processRunJob struct {
	service  *ValidationService
	run      *storage.Run
	resolved *tabular.Table
}

// Perform runs parse -> duplicate detection -> reference fetch -> join ->
// classify -> report. Parse and fetch failures are fatal; everything found
// at the row level becomes a status in the report instead.
func (j *processRunJob) Perform(ctx context.Context) error {
	records, err := schema.ParseRecords(j.resolved)
	if err != nil {
		return err
	}

	duplicates := dedup.Detect(records)

	refs, err := j.service.provider.Fetch(ctx)
	if err != nil {
		return err
	}

	index := asof.NewIndex(refs)
	joined := asof.Join(records, index)
	classified := classify.Classify(joined, j.service.cooldownDays)

	rows, cols := j.run.Upload.Shape()
	j.run.Duplicates = duplicates
	j.run.Report = report.Assemble(classified, duplicates, rows, cols)
	return nil
}

// GetRun retrieves a run by ID.
func (s *ValidationService) GetRun(ctx context.Context, id uuid.UUID) (*storage.Run, error) {
	return s.storage.Runs.FindByID(ctx, id)
}

// ListRuns returns runs newest-first, at most limit (all when limit <= 0).
func (s *ValidationService) ListRuns(ctx context.Context, limit int) ([]*storage.Run, error) {
	return s.storage.Runs.List(ctx, limit)
}

// DuplicatePreview returns the flagged duplicate rows of a completed run.
func (s *ValidationService) DuplicatePreview(ctx context.Context, id uuid.UUID) ([]dedup.FlaggedRow, error) {
	run, err := s.storage.Runs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if run.State != storage.RunStateComplete {
		return nil, fmt.Errorf("%w: run is %s", ErrInvalidRunState, run.State)
	}
	return run.Duplicates.Flagged, nil
}

// WriteReportCSV streams the CSV export of a completed run.
func (s *ValidationService) WriteReportCSV(ctx context.Context, id uuid.UUID, w io.Writer) error {
	run, err := s.storage.Runs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if run.State != storage.RunStateComplete || run.Report == nil {
		return fmt.Errorf("%w: run is %s", ErrInvalidRunState, run.State)
	}
	return run.Report.WriteCSV(w)
}

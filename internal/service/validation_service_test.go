package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/deposit-validator/internal/classify"
	"github.com/carson-networks/deposit-validator/internal/dedup"
	"github.com/carson-networks/deposit-validator/internal/operator"
	"github.com/carson-networks/deposit-validator/internal/refdata"
	"github.com/carson-networks/deposit-validator/internal/schema"
	"github.com/carson-networks/deposit-validator/internal/storage"
	"github.com/carson-networks/deposit-validator/internal/tabular"
)

// stubProvider returns canned reference records or a canned error.
type stubProvider struct {
	records []refdata.Record
	err     error
}

func (p *stubProvider) Fetch(ctx context.Context) ([]refdata.Record, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.records, nil
}

func newTestService(t *testing.T, provider refdata.Provider) *ValidationService {
	t.Helper()
	delegator := operator.NewOperatorDelegator(1)
	delegator.Start()
	t.Cleanup(delegator.Stop)
	return NewValidationService(storage.NewStorage(), provider, delegator, 0)
}

func referenceCSV(t *testing.T) []refdata.Record {
	t.Helper()
	const csv = `accountId,Date,last_activity,activity_set,deposit_amount,deposit_distribution
5,2024-01-01,2024-01-01,slots,100.00,solo
5,2024-01-05,2024-01-05,poker,100.00,even
9,2024-01-09,2024-01-09,bingo,80.00,split
`
	records, err := refdata.DecodeCSV(bytes.NewReader([]byte(csv)))
	assert.NoError(t, err)
	return records
}

func canonicalUpload(rows [][]string) *tabular.Table {
	return &tabular.Table{
		Columns: []string{"Date", "Name", "Client ID", "Deposit"},
		Rows:    rows,
	}
}

func TestCreateRun_CompletesAndClassifies(t *testing.T) {
	svc := newTestService(t, &stubProvider{records: referenceCSV(t)})

	// Row 0: exact match missing, predecessor at 2024-01-05, delta 7 -> but
	// no ledger row on 2024-01-12, so the missing-entry status wins.
	// Row 1: exact match on 2024-01-05, predecessor 2024-01-01, delta 4.
	// Row 2: account with no reference records at all.
	upload := canonicalUpload([][]string{
		{"2024-01-12", "Alice", "5", "40"},
		{"2024-01-05", "Bob", "5", "25"},
		{"2024-01-05", "Cara", "777", "10"},
	})

	run, err := svc.CreateRun(context.Background(), upload)
	assert.NoError(t, err)
	assert.Equal(t, storage.RunStateComplete, run.State)
	assert.NotNil(t, run.Report)

	records := run.Report.Records
	assert.Len(t, records, 3)

	assert.Equal(t, classify.StatusNoEntryFound, records[0].Status)
	assert.False(t, records[0].OverallDepositAmount.Valid)
	assert.False(t, records[0].RemainingDeposit.Valid)

	assert.Equal(t, classify.StatusInvalid, records[1].Status)
	assert.Equal(t, "2024-01-01", records[1].PreviousActivity)
	assert.True(t, records[1].OverallDepositAmount.Valid)
	assert.Equal(t, "75", records[1].RemainingDeposit.Decimal.String())

	assert.Equal(t, classify.StatusNoEntryFound, records[2].Status)
}

func TestCreateRun_CooldownElapsedIsValid(t *testing.T) {
	const csv = `accountId,Date,last_activity,activity_set,deposit_amount,deposit_distribution
7,2024-01-01,2024-01-01,slots,50.00,solo
7,2024-01-08,2024-01-08,poker,90.00,even
`
	records, err := refdata.DecodeCSV(bytes.NewReader([]byte(csv)))
	assert.NoError(t, err)
	svc := newTestService(t, &stubProvider{records: records})

	// Exact ledger match on 2024-01-08, predecessor 2024-01-01, delta 7.
	run, err := svc.CreateRun(context.Background(), canonicalUpload([][]string{
		{"2024-01-08", "Dave", "7", "30"},
	}))
	assert.NoError(t, err)
	assert.Equal(t, classify.StatusValid, run.Report.Records[0].Status)
	assert.Equal(t, "60", run.Report.Records[0].RemainingDeposit.Decimal.String())
}

func TestCreateRun_DuplicatesFlagged(t *testing.T) {
	svc := newTestService(t, &stubProvider{records: referenceCSV(t)})

	upload := canonicalUpload([][]string{
		{"2024-01-10", "Alice", "1001", "50"},
		{"2024-01-10", "Alice", "1001", "50"},
	})

	run, err := svc.CreateRun(context.Background(), upload)
	assert.NoError(t, err)
	assert.Equal(t, 1, run.Report.Summary.DuplicatePairs)

	flagged, err := svc.DuplicatePreview(context.Background(), run.ID)
	assert.NoError(t, err)
	assert.Len(t, flagged, 2)
	assert.Equal(t, dedup.TagOriginal, flagged[0].Tag)
	assert.Equal(t, dedup.TagDroppedDuplicate, flagged[1].Tag)
}

func TestCreateRun_AwaitingMapping(t *testing.T) {
	svc := newTestService(t, &stubProvider{records: referenceCSV(t)})

	upload := &tabular.Table{
		Columns: []string{"trx date", "agent", "client id", "deposit"},
		Rows:    [][]string{{"2024-01-05", "Alice", "5", "40"}},
	}

	run, err := svc.CreateRun(context.Background(), upload)
	assert.NoError(t, err)
	assert.Equal(t, storage.RunStateAwaitingMapping, run.State)
	assert.Equal(t, []string{schema.ColumnDate, schema.ColumnName}, run.MissingColumns)
	assert.Equal(t, []string{"trx date", "agent", "client id", "deposit"}, run.AvailableColumns)
	assert.Nil(t, run.Report)
}

func TestResolveMapping_ResumesProcessing(t *testing.T) {
	svc := newTestService(t, &stubProvider{records: referenceCSV(t)})

	upload := &tabular.Table{
		Columns: []string{"trx date", "agent", "client id", "deposit"},
		Rows:    [][]string{{"2024-01-05", "Alice", "5", "40"}},
	}

	run, err := svc.CreateRun(context.Background(), upload)
	assert.NoError(t, err)

	resolved, err := svc.ResolveMapping(context.Background(), run.ID, map[string]string{
		schema.ColumnDate: "trx date",
		schema.ColumnName: "agent",
	})
	assert.NoError(t, err)
	assert.Equal(t, storage.RunStateComplete, resolved.State)
	assert.Equal(t, "Alice", resolved.Report.Records[0].CRE)
}

func TestResolveMapping_IncompleteStaysParked(t *testing.T) {
	svc := newTestService(t, &stubProvider{records: referenceCSV(t)})

	upload := &tabular.Table{
		Columns: []string{"trx date", "agent", "client id", "deposit"},
		Rows:    [][]string{{"2024-01-05", "Alice", "5", "40"}},
	}

	run, err := svc.CreateRun(context.Background(), upload)
	assert.NoError(t, err)

	resolved, err := svc.ResolveMapping(context.Background(), run.ID, map[string]string{
		schema.ColumnDate: "trx date",
	})
	assert.NoError(t, err)
	assert.Equal(t, storage.RunStateAwaitingMapping, resolved.State)
	assert.Equal(t, []string{schema.ColumnName}, resolved.MissingColumns)
}

func TestResolveMapping_WrongState(t *testing.T) {
	svc := newTestService(t, &stubProvider{records: referenceCSV(t)})

	run, err := svc.CreateRun(context.Background(), canonicalUpload([][]string{
		{"2024-01-05", "Alice", "5", "40"},
	}))
	assert.NoError(t, err)
	assert.Equal(t, storage.RunStateComplete, run.State)

	_, err = svc.ResolveMapping(context.Background(), run.ID, nil)
	assert.ErrorIs(t, err, ErrInvalidRunState)
}

func TestResolveMapping_UnknownRun(t *testing.T) {
	svc := newTestService(t, &stubProvider{records: referenceCSV(t)})

	_, err := svc.ResolveMapping(context.Background(), uuid.Must(uuid.NewV4()), nil)
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestCreateRun_FetchFailureFailsRun(t *testing.T) {
	fetchErr := &refdata.FetchError{Source: "export", Err: errors.New("unreachable")}
	svc := newTestService(t, &stubProvider{err: fetchErr})

	run, err := svc.CreateRun(context.Background(), canonicalUpload([][]string{
		{"2024-01-05", "Alice", "5", "40"},
	}))

	var gotFetchErr *refdata.FetchError
	assert.True(t, errors.As(err, &gotFetchErr))
	assert.Equal(t, storage.RunStateFailed, run.State)
	assert.Contains(t, run.Error, "unreachable")

	stored, getErr := svc.GetRun(context.Background(), run.ID)
	assert.NoError(t, getErr)
	assert.Equal(t, storage.RunStateFailed, stored.State)
}

func TestCreateRun_ParseFailureFailsRun(t *testing.T) {
	svc := newTestService(t, &stubProvider{records: referenceCSV(t)})

	run, err := svc.CreateRun(context.Background(), canonicalUpload([][]string{
		{"not a date", "Alice", "5", "40"},
	}))

	var parseErr *schema.ParseError
	assert.True(t, errors.As(err, &parseErr))
	assert.Equal(t, storage.RunStateFailed, run.State)
}

func TestListRuns(t *testing.T) {
	svc := newTestService(t, &stubProvider{records: referenceCSV(t)})

	for i := 0; i < 3; i++ {
		_, err := svc.CreateRun(context.Background(), canonicalUpload([][]string{
			{"2024-01-05", "Alice", "5", "40"},
		}))
		assert.NoError(t, err)
	}

	runs, err := svc.ListRuns(context.Background(), 2)
	assert.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestWriteReportCSV(t *testing.T) {
	svc := newTestService(t, &stubProvider{records: referenceCSV(t)})

	run, err := svc.CreateRun(context.Background(), canonicalUpload([][]string{
		{"2024-01-05", "Alice", "5", "40"},
	}))
	assert.NoError(t, err)

	var buf bytes.Buffer
	err = svc.WriteReportCSV(context.Background(), run.ID, &buf)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "CRE,Date,Client ID")
	assert.Contains(t, buf.String(), "Alice")
}

func TestWriteReportCSV_WrongState(t *testing.T) {
	svc := newTestService(t, &stubProvider{records: referenceCSV(t)})

	upload := &tabular.Table{
		Columns: []string{"trx date", "agent", "client id", "deposit"},
		Rows:    [][]string{{"2024-01-05", "Alice", "5", "40"}},
	}
	run, err := svc.CreateRun(context.Background(), upload)
	assert.NoError(t, err)

	var buf bytes.Buffer
	err = svc.WriteReportCSV(context.Background(), run.ID, &buf)
	assert.ErrorIs(t, err, ErrInvalidRunState)
}

package validation

import (
	"time"

	"github.com/carson-networks/deposit-validator/internal/report"
	"github.com/carson-networks/deposit-validator/internal/storage"
)

// Run is the API response model for a validation run.
type Run struct {
	ID               string         `json:"id" doc:"Run UUID"`
	State            string         `json:"state" doc:"Run state: awaiting_mapping, processing, complete, failed"`
	CreatedAt        string         `json:"createdAt" doc:"RFC3339 creation time"`
	MissingColumns   []string       `json:"missingColumns,omitempty" doc:"Canonical columns needing a mapping, present while awaiting_mapping"`
	AvailableColumns []string       `json:"availableColumns,omitempty" doc:"Normalized upload columns available as mapping sources"`
	Summary          *Summary       `json:"summary,omitempty" doc:"Run statistics, present when complete"`
	Records          []OutputRecord `json:"records,omitempty" doc:"Final output rows, present when complete"`
	Error            string         `json:"error,omitempty" doc:"Fatal error message, present when failed"`
}

// Summary is the API model for run statistics.
type Summary struct {
	UploadRows      int           `json:"uploadRows" doc:"Row count of the upload"`
	UploadColumns   int           `json:"uploadColumns" doc:"Column count of the upload"`
	DuplicatePairs  int           `json:"duplicatePairs" doc:"Flagged duplicate rows divided by two"`
	DuplicateGroups int           `json:"duplicateGroups" doc:"Distinct (client, date) keys with duplicates"`
	StatusCounts    []StatusCount `json:"statusCounts" doc:"Status frequency table"`
}

// StatusCount is one row of the status frequency table.
type StatusCount struct {
	Status string `json:"status" doc:"Status value"`
	Count  int    `json:"count" doc:"Occurrences"`
}

// OutputRecord is the API model for one final output row. Decimal fields are
// strings; absent optional amounts are empty strings.
type OutputRecord struct {
	CRE                  string `json:"cre" doc:"Uploaded Name column"`
	Date                 string `json:"date" doc:"Calendar date YYYY-MM-DD"`
	ClientID             string `json:"clientID" doc:"Client identifier"`
	FirstDepositProvided string `json:"firstDepositProvided" doc:"Uploaded deposit amount"`
	RemainingDeposit     string `json:"remainingDeposit,omitempty" doc:"overall_deposit_amount minus 1st_deposit_provided, empty when no reference entry matched"`
	OverallDepositAmount string `json:"overallDepositAmount,omitempty" doc:"Reference deposit_amount, empty when no reference entry matched"`
	PreviousActivity     string `json:"previousActivity,omitempty" doc:"last_activity of the closest prior reference record"`
	Remark               string `json:"remark,omitempty" doc:"Row remark"`
	Status               string `json:"status" doc:"valid, invalid, No previous date found, or No entry found for this trx"`
}

func runToAPI(run *storage.Run) Run {
	resp := Run{
		ID:               run.ID.String(),
		State:            string(run.State),
		CreatedAt:        run.CreatedAt.Format(time.RFC3339),
		MissingColumns:   run.MissingColumns,
		AvailableColumns: run.AvailableColumns,
		Error:            run.Error,
	}

	if run.State == storage.RunStateComplete && run.Report != nil {
		resp.Summary = summaryToAPI(run.Report.Summary)
		resp.Records = recordsToAPI(run.Report.Records)
	}

	return resp
}

func summaryToAPI(s report.Summary) *Summary {
	counts := make([]StatusCount, len(s.StatusCounts))
	for i, c := range s.StatusCounts {
		counts[i] = StatusCount{Status: c.Status, Count: c.Count}
	}
	return &Summary{
		UploadRows:      s.UploadRows,
		UploadColumns:   s.UploadColumns,
		DuplicatePairs:  s.DuplicatePairs,
		DuplicateGroups: s.DuplicateGroups,
		StatusCounts:    counts,
	}
}

func recordsToAPI(records []report.OutputRecord) []OutputRecord {
	out := make([]OutputRecord, len(records))
	for i, r := range records {
		o := OutputRecord{
			CRE:                  r.CRE,
			Date:                 r.Date.String(),
			ClientID:             r.ClientID,
			FirstDepositProvided: r.FirstDepositProvided.String(),
			PreviousActivity:     r.PreviousActivity,
			Remark:               r.Remark,
			Status:               r.Status,
		}
		if r.OverallDepositAmount.Valid {
			o.OverallDepositAmount = r.OverallDepositAmount.Decimal.String()
		}
		if r.RemainingDeposit.Valid {
			o.RemainingDeposit = r.RemainingDeposit.Decimal.String()
		}
		out[i] = o
	}
	return out
}

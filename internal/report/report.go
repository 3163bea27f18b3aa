// Package report projects classified records into the final output schema
// and computes the run summary.
package report

import (
	"sort"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/deposit-validator/internal/classify"
	"github.com/carson-networks/deposit-validator/internal/dedup"
)

// OutputRecord is the final projection of one upload row.
//
// OverallDepositAmount is absent when the row had no exact reference match;
// RemainingDeposit propagates that absence instead of faking a number.
type OutputRecord struct {
	CRE                  string
	Date                 civil.Date
	ClientID             string
	FirstDepositProvided decimal.Decimal
	RemainingDeposit     decimal.NullDecimal
	OverallDepositAmount decimal.NullDecimal
	PreviousActivity     string
	Remark               string
	Status               string
}

// StatusCount is one row of the status frequency table.
type StatusCount struct {
	Status string
	Count  int
}

// Summary carries the run statistics the original tool displayed.
type Summary struct {
	UploadRows     int
	UploadColumns  int
	DuplicatePairs int
	// DuplicateGroups counts distinct duplicated keys; unlike DuplicatePairs
	// it stays meaningful for groups larger than two.
	DuplicateGroups int
	StatusCounts    []StatusCount
}

// Report is the complete outcome of a validation run.
type Report struct {
	Records []OutputRecord
	Summary Summary
}

// Assemble projects the classified records and computes the summary. Status
// frequencies are ordered by descending count, ties by first appearance.
func Assemble(records []classify.ClassifiedRecord, duplicates dedup.Result, uploadRows, uploadColumns int) *Report {
	out := make([]OutputRecord, len(records))
	counts := make(map[string]int, 4)
	var statusOrder []string

	for i, r := range records {
		o := OutputRecord{
			CRE:                  r.Name,
			Date:                 r.Date,
			ClientID:             r.ClientID,
			FirstDepositProvided: r.Deposit,
			PreviousActivity:     formatPreviousActivity(r),
			Remark:               r.Remark,
			Status:               r.Status,
		}

		if r.Ref != nil {
			o.OverallDepositAmount = decimal.NewNullDecimal(r.Ref.DepositAmount)
			o.RemainingDeposit = decimal.NewNullDecimal(r.Ref.DepositAmount.Sub(r.Deposit))
		}

		if _, seen := counts[r.Status]; !seen {
			statusOrder = append(statusOrder, r.Status)
		}
		counts[r.Status]++
		out[i] = o
	}

	statusCounts := make([]StatusCount, 0, len(statusOrder))
	for _, s := range statusOrder {
		statusCounts = append(statusCounts, StatusCount{Status: s, Count: counts[s]})
	}
	sort.SliceStable(statusCounts, func(i, j int) bool {
		return statusCounts[i].Count > statusCounts[j].Count
	})

	return &Report{
		Records: out,
		Summary: Summary{
			UploadRows:      uploadRows,
			UploadColumns:   uploadColumns,
			DuplicatePairs:  duplicates.PairCount,
			DuplicateGroups: duplicates.GroupCount,
			StatusCounts:    statusCounts,
		},
	}
}

func formatPreviousActivity(r classify.ClassifiedRecord) string {
	if r.PreviousActivity == nil {
		return ""
	}
	return r.PreviousActivity.String()
}

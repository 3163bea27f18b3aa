package schema

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/deposit-validator/internal/tabular"
)

// UploadedRecord is one upload row after normalization, frozen for the rest
// of the pipeline. Row preserves the original position for duplicate tagging
// and output ordering.
type UploadedRecord struct {
	Row      int
	Name     string
	Date     civil.Date
	ClientID string
	Deposit  decimal.Decimal
}

// ParseError reports a malformed cell. It is fatal to the run: no partial
// output is produced from an unreadable upload.
type ParseError struct {
	Row    int
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d, column %q: %v", e.Row, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseRecords parses a canonical-schema table into typed records. Dates are
// truncated to calendar precision and deposits parsed as decimals.
func ParseRecords(table *tabular.Table) ([]UploadedRecord, error) {
	records := make([]UploadedRecord, 0, len(table.Rows))

	for i := range table.Rows {
		date, err := tabular.ParseDate(table.Cell(i, ColumnDate))
		if err != nil {
			return nil, &ParseError{Row: i, Column: ColumnDate, Err: err}
		}

		clientID := strings.TrimSpace(table.Cell(i, ColumnClientID))
		if clientID == "" {
			return nil, &ParseError{Row: i, Column: ColumnClientID, Err: fmt.Errorf("empty client id")}
		}

		deposit, err := decimal.NewFromString(strings.TrimSpace(table.Cell(i, ColumnDeposit)))
		if err != nil {
			return nil, &ParseError{Row: i, Column: ColumnDeposit, Err: err}
		}

		records = append(records, UploadedRecord{
			Row:      i,
			Name:     strings.TrimSpace(table.Cell(i, ColumnName)),
			Date:     date,
			ClientID: clientID,
			Deposit:  deposit,
		})
	}

	return records, nil
}

package refdata

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/deposit-validator/internal/tabular"
)

// Reference ledger column names, matched case- and whitespace-insensitively.
const (
	columnAccountID           = "accountid"
	columnDate                = "date"
	columnLastActivity        = "last_activity"
	columnActivitySet         = "activity_set"
	columnDepositAmount       = "deposit_amount"
	columnDepositDistribution = "deposit_distribution"
)

var referenceColumns = []string{
	columnAccountID,
	columnDate,
	columnLastActivity,
	columnActivitySet,
	columnDepositAmount,
	columnDepositDistribution,
}

// DecodeCSV decodes a reference ledger export. The header must carry all six
// reference columns; rows with a malformed date or amount make the whole
// dataset malformed.
func DecodeCSV(r io.Reader) ([]Record, error) {
	table, err := tabular.ReadCSV(r)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(table.Columns))
	for i, c := range table.Columns {
		index[strings.ToLower(strings.TrimSpace(c))] = i
	}
	for _, required := range referenceColumns {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("reference data missing column %q", required)
		}
	}

	cell := func(row []string, column string) string {
		i := index[column]
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	records := make([]Record, 0, len(table.Rows))
	for i, row := range table.Rows {
		date, err := tabular.ParseDate(cell(row, columnDate))
		if err != nil {
			return nil, fmt.Errorf("reference row %d: %w", i, err)
		}

		lastActivity, err := tabular.ParseDate(cell(row, columnLastActivity))
		if err != nil {
			return nil, fmt.Errorf("reference row %d: %w", i, err)
		}

		amount, err := decimal.NewFromString(cell(row, columnDepositAmount))
		if err != nil {
			return nil, fmt.Errorf("reference row %d: invalid deposit_amount: %w", i, err)
		}

		records = append(records, Record{
			AccountID:           cell(row, columnAccountID),
			Date:                date,
			LastActivity:        lastActivity,
			ActivitySet:         cell(row, columnActivitySet),
			DepositAmount:       amount,
			DepositDistribution: cell(row, columnDepositDistribution),
		})
	}

	return records, nil
}

package report

import (
	"io"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/deposit-validator/internal/tabular"
)

// CSVHeader is the export column order.
var CSVHeader = []string{
	"CRE",
	"Date",
	"Client ID",
	"1st_deposit_provided",
	"remaining_deposit",
	"overall_deposit_amount",
	"previous_activity",
	"remark",
	"status",
}

// WriteCSV serializes the output records. Dates render as YYYY-MM-DD and
// absent decimals as empty cells, so the export round-trips cleanly.
func (r *Report) WriteCSV(w io.Writer) error {
	table := &tabular.Table{
		Columns: CSVHeader,
		Rows:    make([][]string, len(r.Records)),
	}

	for i, rec := range r.Records {
		table.Rows[i] = []string{
			rec.CRE,
			rec.Date.String(),
			rec.ClientID,
			rec.FirstDepositProvided.String(),
			nullDecimalString(rec.RemainingDeposit),
			nullDecimalString(rec.OverallDepositAmount),
			rec.PreviousActivity,
			rec.Remark,
			rec.Status,
		}
	}

	return table.WriteCSV(w)
}

func nullDecimalString(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

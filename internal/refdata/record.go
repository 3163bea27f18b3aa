// Package refdata supplies the reference activity ledger the uploads are
// validated against. The ledger is fetched once per run and treated as an
// immutable read-only table from then on.
package refdata

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Record is one row of the reference ledger.
type Record struct {
	AccountID           string
	Date                civil.Date
	LastActivity        civil.Date
	ActivitySet         string
	DepositAmount       decimal.Decimal
	DepositDistribution string
}

// Provider fetches the reference ledger. A failed fetch is fatal to the run;
// no reconciliation work starts without the ledger.
type Provider interface {
	Fetch(ctx context.Context) ([]Record, error)
}

// FetchError reports an unreachable or malformed reference dataset.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching reference data from %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

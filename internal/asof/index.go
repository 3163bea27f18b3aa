// Package asof answers point-in-time questions against the reference ledger:
// the exact-date match for a row and the closest record strictly before it.
package asof

import (
	"sort"

	"cloud.google.com/go/civil"

	"github.com/carson-networks/deposit-validator/internal/refdata"
)

// Index groups reference records by account with dates sorted ascending, so
// the predecessor lookup is a binary search instead of a full scan.
type Index struct {
	byAccount map[string][]refdata.Record
}

// NewIndex builds the per-account index. The sort is stable: records sharing
// an (account, date) keep their input order.
func NewIndex(records []refdata.Record) *Index {
	byAccount := make(map[string][]refdata.Record)
	for _, r := range records {
		byAccount[r.AccountID] = append(byAccount[r.AccountID], r)
	}

	for _, group := range byAccount {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Date.Before(group[j].Date)
		})
	}

	return &Index{byAccount: byAccount}
}

// Exact returns the first reference record at exactly (account, date), or
// nil when none exists.
func (x *Index) Exact(accountID string, date civil.Date) *refdata.Record {
	group := x.byAccount[accountID]
	i := sort.Search(len(group), func(i int) bool {
		return !group[i].Date.Before(date)
	})
	if i < len(group) && group[i].Date == date {
		return &group[i]
	}
	return nil
}

// Before returns the reference record for the account with the greatest date
// strictly before the given date, or nil when none exists. When several
// records share that maximal date, the last one in input order wins.
func (x *Index) Before(accountID string, date civil.Date) *refdata.Record {
	group := x.byAccount[accountID]
	i := sort.Search(len(group), func(i int) bool {
		return !group[i].Date.Before(date)
	})
	if i == 0 {
		return nil
	}
	return &group[i-1]
}

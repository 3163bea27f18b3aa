// Package classify applies the cooldown rule to joined records.
package classify

import (
	"github.com/carson-networks/deposit-validator/internal/asof"
)

// Status values. The two anomaly statuses are classification outcomes, not
// errors; every row gets an output row.
const (
	StatusValid          = "valid"
	StatusInvalid        = "invalid"
	StatusNoPreviousDate = asof.RemarkNoPreviousDate
	StatusNoEntryFound   = "No entry found for this trx"
)

// DefaultCooldownDays is the minimum elapsed days since the last activity
// for a deposit to be valid.
const DefaultCooldownDays = 7

// ClassifiedRecord is a joined record with its final status and remark.
type ClassifiedRecord struct {
	asof.JoinedRecord
	Status string
}

// Classify produces the status for each record, in priority order:
//
//  1. no exact reference match for (date, client) beats everything else,
//     including a "no previous date" remark, and clears the remark;
//  2. no predecessor activity carries the remark into the status;
//  3. otherwise the day delta against the previous activity decides. A
//     negative delta (prior activity dated after the deposit) is classified
//     invalid exactly like a small positive one.
func Classify(records []asof.JoinedRecord, cooldownDays int) []ClassifiedRecord {
	classified := make([]ClassifiedRecord, len(records))

	for i, r := range records {
		c := ClassifiedRecord{JoinedRecord: r}

		switch {
		case r.Ref == nil:
			c.Status = StatusNoEntryFound
			c.Remark = ""
		case r.Remark == asof.RemarkNoPreviousDate || r.PreviousActivity == nil:
			c.Status = StatusNoPreviousDate
		default:
			delta := r.Date.DaysSince(*r.PreviousActivity)
			if delta >= cooldownDays {
				c.Status = StatusValid
			} else {
				c.Status = StatusInvalid
			}
		}

		classified[i] = c
	}

	return classified
}

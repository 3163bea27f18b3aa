package asof

import (
	"cloud.google.com/go/civil"

	"github.com/carson-networks/deposit-validator/internal/refdata"
	"github.com/carson-networks/deposit-validator/internal/schema"
)

// RemarkNoPreviousDate is set when no reference record precedes the row's
// date for its account.
const RemarkNoPreviousDate = "No previous date found"

// JoinedRecord is an upload row extended with both reference lookups.
type JoinedRecord struct {
	schema.UploadedRecord

	// Ref is the exact (date, account) reference match; nil keeps the row
	// with absent reference fields (left-join semantics).
	Ref *refdata.Record

	// PreviousActivity is the last_activity of the closest strictly-earlier
	// reference record; nil when no such record exists.
	PreviousActivity    *civil.Date
	PreviousActivitySet string
	Remark              string
}

// Join runs both lookups for every record. The lookups are independent: a
// missing exact match does not prevent a predecessor match, and vice versa.
func Join(records []schema.UploadedRecord, index *Index) []JoinedRecord {
	joined := make([]JoinedRecord, len(records))

	for i, r := range records {
		j := JoinedRecord{
			UploadedRecord: r,
			Ref:            index.Exact(r.ClientID, r.Date),
		}

		if prev := index.Before(r.ClientID, r.Date); prev != nil {
			activity := prev.LastActivity
			j.PreviousActivity = &activity
			j.PreviousActivitySet = prev.ActivitySet
		} else {
			j.Remark = RemarkNoPreviousDate
		}

		joined[i] = j
	}

	return joined
}

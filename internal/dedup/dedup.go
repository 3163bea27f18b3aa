// Package dedup flags upload rows that share a (client, date) key.
package dedup

import (
	"github.com/carson-networks/deposit-validator/internal/schema"
)

// Tag classifies a member of a duplicate group.
type Tag string

const (
	// TagOriginal marks the first row of a duplicate group in original order.
	TagOriginal Tag = "Original"
	// TagDroppedDuplicate marks every subsequent row of a duplicate group.
	TagDroppedDuplicate Tag = "Dropped Duplicate"
)

// key is the duplicate grouping key: client plus calendar date.
type key struct {
	clientID string
	date     string
}

// FlaggedRow is an upload row that belongs to a duplicate group.
type FlaggedRow struct {
	Record schema.UploadedRecord
	Tag    Tag
}

// Result holds the duplicate groups found in an upload.
type Result struct {
	// Flagged lists every member of every group of size >= 2, in original
	// row order. Rows with a unique key are not listed.
	Flagged []FlaggedRow
	// Tags maps original row index to its tag, for flagged rows only.
	Tags map[int]Tag
	// PairCount is len(Flagged) / 2. The number is exact only when every
	// group has size two; it is reported anyway because that is the figure
	// the tool has always shown. GroupCount is the honest companion.
	PairCount int
	// GroupCount is the number of distinct keys with two or more rows.
	GroupCount int
}

// Detect groups records by (ClientID, Date) and tags every member of each
// group of size >= 2: the first row in original order as Original, the rest
// as Dropped Duplicate.
func Detect(records []schema.UploadedRecord) Result {
	counts := make(map[key]int, len(records))
	for _, r := range records {
		counts[key{r.ClientID, r.Date.String()}]++
	}

	result := Result{Tags: make(map[int]Tag)}
	seen := make(map[key]bool)

	for _, r := range records {
		k := key{r.ClientID, r.Date.String()}
		if counts[k] < 2 {
			continue
		}

		tag := TagDroppedDuplicate
		if !seen[k] {
			tag = TagOriginal
			seen[k] = true
			result.GroupCount++
		}

		result.Flagged = append(result.Flagged, FlaggedRow{Record: r, Tag: tag})
		result.Tags[r.Row] = tag
	}

	result.PairCount = len(result.Flagged) / 2
	return result
}

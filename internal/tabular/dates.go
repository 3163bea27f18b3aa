package tabular

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Cell values arrive in whatever shape the source spreadsheet used. Any
// time-of-day component is discarded; every date in the pipeline is a
// calendar date.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"02-Jan-2006",
}

// ParseDate parses a cell value into a calendar date, trying the accepted
// layouts in order.
func ParseDate(value string) (civil.Date, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return civil.Date{}, fmt.Errorf("empty date value")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return civil.DateOf(t), nil
		}
	}

	return civil.Date{}, fmt.Errorf("unrecognized date value %q", value)
}

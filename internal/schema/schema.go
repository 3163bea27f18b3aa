// Package schema maps arbitrary uploaded column names onto the canonical
// upload schema and parses normalized rows into typed records.
package schema

import (
	"fmt"
	"strings"

	"github.com/carson-networks/deposit-validator/internal/tabular"
)

// Canonical column display names.
const (
	ColumnDate     = "Date"
	ColumnName     = "Name"
	ColumnClientID = "Client ID"
	ColumnDeposit  = "Deposit"
)

// requiredColumns maps the normalized (trimmed, lowercased) required key to
// its canonical display name.
var requiredColumns = map[string]string{
	"date":      ColumnDate,
	"name":      ColumnName,
	"client id": ColumnClientID,
	"deposit":   ColumnDeposit,
}

// RequiredKeys returns the normalized required keys in a stable order.
func RequiredKeys() []string {
	return []string{"date", "name", "client id", "deposit"}
}

// Normalize trims and lowercases raw column names.
func Normalize(columns []string) []string {
	normalized := make([]string, len(columns))
	for i, c := range columns {
		normalized[i] = strings.ToLower(strings.TrimSpace(c))
	}
	return normalized
}

// MappingRequiredError signals that required canonical columns could not be
// matched against the upload and the caller must supply a mapping.
type MappingRequiredError struct {
	// Missing holds canonical display names with no matching source column.
	Missing []string
	// Columns holds the normalized source columns available for mapping.
	Columns []string
}

func (e *MappingRequiredError) Error() string {
	return fmt.Sprintf("column mapping required for: %s", strings.Join(e.Missing, ", "))
}

// Resolve renames the table's columns onto the canonical schema.
//
// Matching is by normalized name. When required columns are missing, the
// caller-supplied mapping (canonical display name -> normalized source
// column) fills the gaps; with gaps left uncovered Resolve returns a
// *MappingRequiredError and no table.
//
// Two canonical columns mapped to the same source column are not rejected;
// the rename is applied as given and the downstream data is whatever falls
// out of it.
func Resolve(table *tabular.Table, mapping map[string]string) (*tabular.Table, error) {
	normalized := Normalize(table.Columns)

	present := make(map[string]bool, len(normalized))
	for _, c := range normalized {
		present[c] = true
	}

	rename := make(map[string]string, len(requiredColumns))
	var missing []string
	for _, key := range RequiredKeys() {
		canonical := requiredColumns[key]
		if present[key] {
			rename[key] = canonical
			continue
		}
		source, mapped := mapping[canonical]
		if mapped && present[source] {
			rename[source] = canonical
			continue
		}
		missing = append(missing, canonical)
	}

	if len(missing) > 0 {
		return nil, &MappingRequiredError{Missing: missing, Columns: normalized}
	}

	renamed := &tabular.Table{
		Columns: make([]string, len(normalized)),
		Rows:    table.Rows,
	}
	for i, c := range normalized {
		if canonical, ok := rename[c]; ok {
			renamed.Columns[i] = canonical
		} else {
			renamed.Columns[i] = c
		}
	}

	return renamed, nil
}

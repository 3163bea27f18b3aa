// Package tabular holds the raw row-oriented form of an upload: a header row
// plus data rows, before any schema normalization is applied.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Table is a header row plus data rows. Rows are ragged-checked at read time;
// a Table built by hand is trusted as-is.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Shape returns (rows, columns) of the data portion.
func (t *Table) Shape() (int, int) {
	return len(t.Rows), len(t.Columns)
}

// ReadCSV parses delimited text into a Table. The first record is the header.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty input: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header row: %w", err)
	}

	table := &Table{Columns: header}
	rowIndex := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", rowIndex, err)
		}
		table.Rows = append(table.Rows, record)
		rowIndex++
	}

	return table, nil
}

// WriteCSV serializes the table as delimited text, header first.
func (t *Table) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}
	for i, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// Cell returns the value at (row, column name), or "" when the column is
// missing or the row is short.
func (t *Table) Cell(row int, column string) string {
	for i, c := range t.Columns {
		if c == column {
			if i < len(t.Rows[row]) {
				return t.Rows[row][i]
			}
			return ""
		}
	}
	return ""
}

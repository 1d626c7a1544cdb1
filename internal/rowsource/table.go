package rowsource

import "strings"

// Row is one tabular record keyed by column name. A key that is missing
// entirely means the cell was absent from the input (short row), which is
// not the same as an empty value.
type Row map[string]string

// Has reports whether the column was present in the row.
func (r Row) Has(column string) bool {
	_, ok := r[column]
	return ok
}

// Get returns the cell value, or the empty string when the cell is absent.
func (r Row) Get(column string) string {
	return r[column]
}

// Table is an ordered sequence of rows sharing one header.
type Table struct {
	Columns []string
	Rows    []Row
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether the header contains the column.
func (t *Table) HasColumn(column string) bool {
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// RequireColumns verifies the header carries every required column and
// reports all missing ones in a single error.
func (t *Table) RequireColumns(source string, columns ...string) error {
	var missing []string
	for _, c := range columns {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return NewSourceError(source, ErrCodeMissingColumns,
			"missing required columns: "+strings.Join(missing, ", "), nil)
	}
	return nil
}

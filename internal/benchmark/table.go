package benchmark

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Row is one line of a Markdown table: an ordered set of column labels and
// the cell for each label.
type Row struct {
	columns []string
	cells   map[string]string
}

// NewRow builds a Row. Every column must be a unique, non-empty label with a
// cell in cells, and cells must not contain labels outside columns.
func NewRow(columns []string, cells map[string]string) (Row, error) {
	if len(columns) == 0 {
		return Row{}, errors.New("row has no columns")
	}

	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if c == "" {
			return Row{}, errors.New("row has an empty column label")
		}
		if seen[c] {
			return Row{}, fmt.Errorf("duplicate column %q", c)
		}
		seen[c] = true

		if _, ok := cells[c]; !ok {
			return Row{}, fmt.Errorf("missing cell for column %q", c)
		}
	}

	for label := range cells {
		if !seen[label] {
			return Row{}, fmt.Errorf("cell %q has no column", label)
		}
	}

	own := make(map[string]string, len(cells))
	for k, v := range cells {
		own[k] = v
	}
	return Row{columns: slices.Clone(columns), cells: own}, nil
}

// MustRow is like NewRow but panics on invalid input. Meant for fixed column sets.
func MustRow(columns []string, cells map[string]string) Row {
	r, err := NewRow(columns, cells)
	if err != nil {
		panic(err)
	}
	return r
}

// Columns returns the row's column labels in order.
func (r Row) Columns() []string {
	return slices.Clone(r.columns)
}

// Cell returns the value for a column label.
func (r Row) Cell(label string) (string, bool) {
	v, ok := r.cells[label]
	return v, ok
}

// RenderTable renders rows as a pipe-delimited Markdown table. The header is
// taken from the first row and every row must carry the same columns. Cell
// values are written as-is: pipes are not escaped and columns are not aligned.
func RenderTable(rows []Row) (string, error) {
	if len(rows) == 0 {
		return "", ErrEmptyInput
	}

	headers := rows[0].columns
	if len(headers) == 0 {
		return "", fmt.Errorf("row 0: no columns: %w", ErrColumnMismatch)
	}

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, tableLine(headers))

	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	lines = append(lines, tableLine(sep))

	for i, row := range rows {
		if len(row.cells) != len(headers) {
			return "", fmt.Errorf("row %d: %w", i, ErrColumnMismatch)
		}

		cells := make([]string, len(headers))
		for j, h := range headers {
			v, ok := row.cells[h]
			if !ok {
				return "", fmt.Errorf("row %d: column %q: %w", i, h, ErrColumnMismatch)
			}
			cells[j] = v
		}
		lines = append(lines, tableLine(cells))
	}

	return strings.Join(lines, "\n"), nil
}

func tableLine(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}

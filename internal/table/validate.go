package table

import "fmt"

// ViolationKind tells whether a validation failure was found in a row or a column.
type ViolationKind string

const (
	ViolationRow    ViolationKind = "row"
	ViolationColumn ViolationKind = "column"
)

// ValidationError reports a partially empty row or column left after pruning.
// Row is the 1-based row number in the source sheet (the header is row 1);
// Column is the column label. Exactly one of the two locators is meaningful,
// depending on Kind.
type ValidationError struct {
	File   string
	Kind   ViolationKind
	Row    int
	Column string
}

func (e *ValidationError) Error() string {
	if e.Kind == ViolationColumn {
		return fmt.Sprintf("%s: column %q is partially empty", e.File, e.Column)
	}
	return fmt.Sprintf("%s: row %d is partially empty", e.File, e.Row)
}

// Validate prunes fully empty columns and rows and rejects partially empty
// ones. Pruning alternates columns-then-rows until a fixed point, because
// dropping an empty row can turn a column fully empty and the other way
// round. Only then is partial emptiness evaluated, once, over what remains.
// One warning is emitted per removal. A partially empty row or column yields
// a *ValidationError and no cleaned table; the input is never modified.
func Validate(t Table) (Table, []string, error) {
	cols := append([]string(nil), t.Header...)
	rows := make([]int, len(t.Rows))
	for i := range rows {
		rows[i] = i
	}

	var warnings []string

	for removed := true; removed; {
		removed = false

		var keptCols []string
		for _, label := range cols {
			if columnEmpty(t, label, rows) {
				warnings = append(warnings, fmt.Sprintf("%s: column %q removed: fully empty in all rows", t.File, label))
				removed = true
				continue
			}
			keptCols = append(keptCols, label)
		}
		cols = keptCols

		var keptRows []int
		for _, ri := range rows {
			if rowEmpty(t.Rows[ri], cols) {
				warnings = append(warnings, fmt.Sprintf("%s: row %d removed: fully empty in all columns", t.File, t.SourceRow(ri)))
				removed = true
				continue
			}
			keptRows = append(keptRows, ri)
		}
		rows = keptRows
	}

	for _, label := range cols {
		empty := 0
		for _, ri := range rows {
			if IsEmpty(t.Rows[ri][label]) {
				empty++
			}
		}
		if empty > 0 && empty < len(rows) {
			return Table{}, warnings, &ValidationError{File: t.File, Kind: ViolationColumn, Column: label}
		}
	}
	for _, ri := range rows {
		if rowMixed(t.Rows[ri], cols) {
			return Table{}, warnings, &ValidationError{File: t.File, Kind: ViolationRow, Row: t.SourceRow(ri)}
		}
	}

	cleaned := Table{File: t.File, Header: cols, Rows: make([]Row, 0, len(rows))}
	for _, ri := range rows {
		row := make(Row, len(cols))
		for _, label := range cols {
			row[label] = t.Rows[ri][label]
		}
		cleaned.Rows = append(cleaned.Rows, row)
		cleaned.SourceRows = append(cleaned.SourceRows, t.SourceRow(ri))
	}
	return cleaned, warnings, nil
}

func columnEmpty(t Table, label string, rows []int) bool {
	for _, ri := range rows {
		if !IsEmpty(t.Rows[ri][label]) {
			return false
		}
	}
	return true
}

func rowEmpty(r Row, cols []string) bool {
	for _, label := range cols {
		if !IsEmpty(r[label]) {
			return false
		}
	}
	return true
}

func rowMixed(r Row, cols []string) bool {
	empty, filled := 0, 0
	for _, label := range cols {
		if IsEmpty(r[label]) {
			empty++
		} else {
			filled++
		}
	}
	return empty > 0 && filled > 0
}

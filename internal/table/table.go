package table

// Row maps a column label to a cell value. An empty string is an empty cell.
type Row map[string]string

// Table holds one report's worth of parsed data: an ordered header of unique
// column labels and ordered rows keyed by those labels. Tables are treated as
// immutable snapshots; operations return new Table values.
type Table struct {
	File   string
	Header []string
	Rows   []Row
	// SourceRows maps each row to its 1-based row number in the source
	// sheet, where the header is row 1. The loader fills it in so locators
	// in warnings and errors survive skipped rows; when absent, the natural
	// numbering 2, 3, ... applies.
	SourceRows []int
}

// New builds a Table, padding every row so it carries exactly the header's
// columns. Cells beyond the header are dropped.
func New(file string, header []string, rows []Row) Table {
	t := Table{
		File:   file,
		Header: append([]string(nil), header...),
		Rows:   make([]Row, 0, len(rows)),
	}
	for _, src := range rows {
		row := make(Row, len(header))
		for _, label := range header {
			row[label] = src[label]
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// SourceRow returns the sheet row number of data row i.
func (t Table) SourceRow(i int) int {
	if i < len(t.SourceRows) {
		return t.SourceRows[i]
	}
	return i + 2
}

// HasColumn reports whether label is declared in the header.
func (t Table) HasColumn(label string) bool {
	for _, h := range t.Header {
		if h == label {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	cp := New(t.File, t.Header, t.Rows)
	cp.SourceRows = append([]int(nil), t.SourceRows...)
	return cp
}

// IsEmpty reports whether a cell value counts as empty.
func IsEmpty(cell string) bool {
	return cell == ""
}

// Package merge folds validated report tables into one destination table over
// a finalized schema. Merging means union-of-columns plus concatenation of
// rows: rows are appended in strict input order and are never joined by key;
// only columns are reconciled, by class name.
package merge

import (
	"fmt"

	"github.com/lipidquant/lipimerge/internal/schema"
	"github.com/lipidquant/lipimerge/internal/table"
)

// Merger accumulates source tables into a growing destination, one table at a
// time. The schema is finalized before any row is emitted, so a class column
// introduced by a later input is already present (and back-filled empty) for
// rows merged earlier.
type Merger struct {
	schema     schema.Schema
	columns    []string
	rows       []table.Row
	provenance map[string]map[string]struct{}
	sources    []string
}

// NewMerger creates a merger whose destination header is fixed to the schema.
func NewMerger(s schema.Schema) *Merger {
	return &Merger{
		schema:     s,
		columns:    s.Columns(),
		provenance: make(map[string]map[string]struct{}),
	}
}

// Add appends every row of t to the destination. Metadata cells are copied
// verbatim; class cells are copied when t declares the class and left empty
// otherwise. It returns one warning per class column t lacks, so column
// provenance stays auditable in the report. A table with no rows gets no
// back-fill warnings: nothing of it was back-filled.
func (m *Merger) Add(t table.Table) []string {
	var warnings []string
	if len(t.Rows) > 0 {
		for _, label := range m.schema.Classes {
			if !t.HasColumn(label) {
				warnings = append(warnings, fmt.Sprintf("%s: class %q absent: cells back-filled empty", t.File, label))
			}
		}
	}

	for _, src := range t.Rows {
		row := make(table.Row, len(m.columns))
		for _, label := range m.columns {
			if !t.HasColumn(label) {
				row[label] = ""
				continue
			}
			row[label] = src[label]
			if !table.IsEmpty(src[label]) {
				m.recordProvenance(label, t.File)
			}
		}
		m.rows = append(m.rows, row)
	}

	m.sources = append(m.sources, t.File)
	return warnings
}

// Result returns the destination table built so far.
func (m *Merger) Result() table.Table {
	return table.New("", m.columns, m.rows)
}

// Provenance maps each destination column to the source files that supplied
// non-empty data for it, in input order.
func (m *Merger) Provenance() map[string][]string {
	out := make(map[string][]string, len(m.provenance))
	for label, files := range m.provenance {
		for _, f := range m.sources {
			if _, ok := files[f]; ok {
				out[label] = append(out[label], f)
			}
		}
	}
	return out
}

func (m *Merger) recordProvenance(label, file string) {
	files, ok := m.provenance[label]
	if !ok {
		files = make(map[string]struct{})
		m.provenance[label] = files
	}
	files[file] = struct{}{}
}

// Merge folds the tables into one destination over the schema and returns the
// merged table together with all back-fill warnings, tables in input order.
func Merge(tables []table.Table, s schema.Schema) (table.Table, []string) {
	m := NewMerger(s)
	var warnings []string
	for _, t := range tables {
		warnings = append(warnings, m.Add(t)...)
	}
	return m.Result(), warnings
}

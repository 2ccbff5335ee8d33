package merge

import (
	"fmt"

	"github.com/lipidquant/lipimerge/internal/table"
)

// VerificationError reports a consistency failure between the merged output
// and the sources it was built from.
type VerificationError struct {
	File   string
	Row    int
	Column string
	Reason string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("%s: row %d, column %q: %s", e.File, e.Row, e.Column, e.Reason)
}

// Verify cross-checks the merged table against its sources: rows were
// concatenated in input order, so destination rows map back to source rows
// positionally. Every source cell must appear verbatim at its mapped
// position, and a row must be empty in every class column its source never
// declared. The check is redundant with the merge itself; it exists so a
// corrupted output can never be written silently.
func Verify(merged table.Table, sources []table.Table) error {
	off := 0
	for _, src := range sources {
		if off+len(src.Rows) > len(merged.Rows) {
			return &VerificationError{File: src.File, Reason: "merged table has fewer rows than its sources"}
		}
		for i, srcRow := range src.Rows {
			dst := merged.Rows[off+i]
			for _, label := range merged.Header {
				if src.HasColumn(label) {
					if dst[label] != srcRow[label] {
						return &VerificationError{
							File: src.File, Row: i + 1, Column: label,
							Reason: fmt.Sprintf("value %q does not match source %q", dst[label], srcRow[label]),
						}
					}
					continue
				}
				if !table.IsEmpty(dst[label]) {
					return &VerificationError{
						File: src.File, Row: i + 1, Column: label,
						Reason: fmt.Sprintf("unexpected value %q in a column the source does not declare", dst[label]),
					}
				}
			}
		}
		off += len(src.Rows)
	}
	if off != len(merged.Rows) {
		return &VerificationError{Reason: fmt.Sprintf("merged table has %d rows, sources account for %d", len(merged.Rows), off)}
	}
	return nil
}

// Package schema computes the unified column layout shared by every row of a
// merged report: the common metadata columns followed by the ordered union of
// all lipid-class columns seen across the inputs.
package schema

import (
	"fmt"

	"github.com/lipidquant/lipimerge/internal/table"
)

// Schema is the finalized column order for the merged output. Meta holds the
// metadata columns in the order the first input declares them; Classes holds
// every distinct class label in first-seen order across inputs.
type Schema struct {
	Meta    []string
	Classes []string
}

// Columns returns the full destination header: metadata first, then classes.
func (s Schema) Columns() []string {
	cols := make([]string, 0, len(s.Meta)+len(s.Classes))
	cols = append(cols, s.Meta...)
	cols = append(cols, s.Classes...)
	return cols
}

// IsClass reports whether label is a class column under this schema.
// Identity is exact, case-sensitive string match.
func (s Schema) IsClass(label string) bool {
	for _, c := range s.Classes {
		if c == label {
			return true
		}
	}
	return false
}

// Error is a fatal schema inconsistency: mismatched metadata columns across
// inputs, or a duplicate class label inside one header.
type Error struct {
	File   string
	Label  string
	Reason string
}

func (e *Error) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("%s: column %q: %s", e.File, e.Label, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Reason)
}

// CheckHeader rejects duplicate labels within one header. Duplicate class
// names make class identity ambiguous, so they are an error rather than an
// arbitrary pick.
func CheckHeader(file string, header []string) error {
	seen := make(map[string]struct{}, len(header))
	for _, label := range header {
		if _, dup := seen[label]; dup {
			return &Error{File: file, Label: label, Reason: "duplicate column label"}
		}
		seen[label] = struct{}{}
	}
	return nil
}

// Unify scans the tables in caller order and accumulates every class column
// into an ordered set: the first occurrence fixes the position, later
// occurrences never move it, new classes are appended. Columns whose label is
// in metaLabels are metadata; their subsequence must be identical (same
// labels, same relative order) in every input, with the first non-empty
// input fixing the canonical order. Any mismatch is a fatal *Error.
//
// A table validation pruned down to an empty header contributes no columns
// and is skipped: fully-empty pruning is a warning upstream, never a reason
// to abort the merge.
func Unify(tables []table.Table, metaLabels []string) (Schema, error) {
	metaSet := make(map[string]struct{}, len(metaLabels))
	for _, label := range metaLabels {
		metaSet[label] = struct{}{}
	}

	var s Schema
	classSeen := make(map[string]struct{})
	metaFile := ""
	metaFixed := false

	for _, t := range tables {
		if len(t.Header) == 0 {
			continue
		}
		if err := CheckHeader(t.File, t.Header); err != nil {
			return Schema{}, err
		}

		var meta []string
		for _, label := range t.Header {
			if _, ok := metaSet[label]; ok {
				meta = append(meta, label)
				continue
			}
			if _, ok := classSeen[label]; !ok {
				classSeen[label] = struct{}{}
				s.Classes = append(s.Classes, label)
			}
		}

		if !metaFixed {
			s.Meta = meta
			metaFile = t.File
			metaFixed = true
			continue
		}
		if !equalLabels(s.Meta, meta) {
			return Schema{}, &Error{
				File:   t.File,
				Reason: fmt.Sprintf("metadata columns %v do not match %v declared by %s", meta, s.Meta, metaFile),
			}
		}
	}

	return s, nil
}

func equalLabels(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

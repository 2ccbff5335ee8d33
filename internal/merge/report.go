package merge

import (
	"github.com/google/uuid"

	"github.com/lipidquant/lipimerge/internal/schema"
	"github.com/lipidquant/lipimerge/internal/table"
)

// Report is the outcome of one merge job: the destination table, every
// warning collected along the way (a table's validation warnings precede its
// merge warnings, tables in input order), and the column provenance used, all
// stamped with a run ID.
type Report struct {
	RunID      string
	Schema     schema.Schema
	Merged     table.Table
	Warnings   []string
	Provenance map[string][]string
}

// NewReport composes results already produced by validation and merging; no
// further computation happens here.
func NewReport(s schema.Schema, merged table.Table, warnings []string, provenance map[string][]string) Report {
	return Report{
		RunID:      uuid.NewString(),
		Schema:     s,
		Merged:     merged,
		Warnings:   warnings,
		Provenance: provenance,
	}
}

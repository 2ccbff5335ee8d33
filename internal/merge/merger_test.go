package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lipidquant/lipimerge/internal/schema"
	"github.com/lipidquant/lipimerge/internal/table"
)

var meta = []string{"Sample"}

func mustUnify(t *testing.T, tables ...table.Table) schema.Schema {
	t.Helper()
	s, err := schema.Unify(tables, meta)
	require.NoError(t, err)
	return s
}

func TestMergeOverlappingClasses(t *testing.T) {
	in1 := table.New("a.xlsx", []string{"Sample", "PC", "PE"}, []table.Row{
		{"Sample": "a1", "PC": "1.1", "PE": "2.1"},
		{"Sample": "a2", "PC": "1.2", "PE": "2.2"},
	})
	in2 := table.New("b.xlsx", []string{"Sample", "PE", "TG"}, []table.Row{
		{"Sample": "b1", "PE": "3.1", "TG": "4.1"},
	})
	s := mustUnify(t, in1, in2)

	merged, warnings := Merge([]table.Table{in1, in2}, s)

	assert.Equal(t, []string{"Sample", "PC", "PE", "TG"}, merged.Header)
	require.Len(t, merged.Rows, 3)

	// Rows from a.xlsx have empty TG cells; rows from b.xlsx empty PC cells.
	assert.Equal(t, table.Row{"Sample": "a1", "PC": "1.1", "PE": "2.1", "TG": ""}, merged.Rows[0])
	assert.Equal(t, table.Row{"Sample": "a2", "PC": "1.2", "PE": "2.2", "TG": ""}, merged.Rows[1])
	assert.Equal(t, table.Row{"Sample": "b1", "PC": "", "PE": "3.1", "TG": "4.1"}, merged.Rows[2])

	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], `a.xlsx: class "TG" absent`)
	assert.Contains(t, warnings[1], `b.xlsx: class "PC" absent`)
}

func TestMergeDisjointClasses(t *testing.T) {
	in1 := table.New("a.xlsx", []string{"Sample", "PC"}, []table.Row{{"Sample": "a1", "PC": "1"}})
	in2 := table.New("b.xlsx", []string{"Sample", "PE"}, []table.Row{{"Sample": "b1", "PE": "2"}})
	in3 := table.New("c.xlsx", []string{"Sample", "TG"}, []table.Row{{"Sample": "c1", "TG": "3"}})
	s := mustUnify(t, in1, in2, in3)

	merged, _ := Merge([]table.Table{in1, in2, in3}, s)

	assert.Equal(t, []string{"Sample", "PC", "PE", "TG"}, merged.Header)
	require.Len(t, merged.Rows, 3)
	// Every cell outside the originating input's own columns is empty.
	assert.Equal(t, table.Row{"Sample": "a1", "PC": "1", "PE": "", "TG": ""}, merged.Rows[0])
	assert.Equal(t, table.Row{"Sample": "b1", "PC": "", "PE": "2", "TG": ""}, merged.Rows[1])
	assert.Equal(t, table.Row{"Sample": "c1", "PC": "", "PE": "", "TG": "3"}, merged.Rows[2])
}

func TestMergeSingleInputIsIdentity(t *testing.T) {
	in := table.New("a.xlsx", []string{"Sample", "PC", "PE"}, []table.Row{
		{"Sample": "a1", "PC": "1.1", "PE": "2.1"},
	})
	s := mustUnify(t, in)

	merged, warnings := Merge([]table.Table{in}, s)

	assert.Equal(t, in.Header, merged.Header)
	assert.Equal(t, in.Rows, merged.Rows)
	assert.Empty(t, warnings)
}

func TestMergeRowCountIsSumOfInputs(t *testing.T) {
	in1 := table.New("a.xlsx", []string{"Sample", "PC"}, []table.Row{
		{"Sample": "a1", "PC": "1"}, {"Sample": "a2", "PC": "2"},
	})
	in2 := table.New("b.xlsx", []string{"Sample", "PC"}, []table.Row{
		{"Sample": "b1", "PC": "3"},
	})
	s := mustUnify(t, in1, in2)

	merged, _ := Merge([]table.Table{in1, in2}, s)
	assert.Len(t, merged.Rows, len(in1.Rows)+len(in2.Rows))
}

func TestMergePreservesInputAndRowOrder(t *testing.T) {
	in1 := table.New("a.xlsx", []string{"Sample", "PC"}, []table.Row{
		{"Sample": "a1", "PC": "1"}, {"Sample": "a2", "PC": "2"},
	})
	in2 := table.New("b.xlsx", []string{"Sample", "PC"}, []table.Row{
		{"Sample": "b1", "PC": "3"}, {"Sample": "b2", "PC": "4"},
	})
	s := mustUnify(t, in1, in2)

	merged, _ := Merge([]table.Table{in1, in2}, s)

	var order []string
	for _, row := range merged.Rows {
		order = append(order, row["Sample"])
	}
	assert.Equal(t, []string{"a1", "a2", "b1", "b2"}, order)
}

// A class introduced only by a later input must already be present, empty, in
// rows merged before it: the schema is finalized before any row is emitted.
func TestMergeBackFillsEarlierRows(t *testing.T) {
	in1 := table.New("a.xlsx", []string{"Sample", "PC"}, []table.Row{{"Sample": "a1", "PC": "1"}})
	in2 := table.New("b.xlsx", []string{"Sample", "TG"}, []table.Row{{"Sample": "b1", "TG": "2"}})
	s := mustUnify(t, in1, in2)

	merged, _ := Merge([]table.Table{in1, in2}, s)

	require.Contains(t, merged.Rows[0], "TG")
	assert.Equal(t, "", merged.Rows[0]["TG"])
}

// A table whose every column was pruned as fully empty merges as nothing:
// no rows, no columns, and no back-fill warnings, since none of its cells
// were back-filled.
func TestMergeFullyPrunedTableContributesNothing(t *testing.T) {
	empty := table.New("empty.xlsx", nil, nil)
	full := table.New("full.xlsx", []string{"Sample", "PC"}, []table.Row{{"Sample": "a1", "PC": "1"}})
	s := mustUnify(t, empty, full)

	merged, warnings := Merge([]table.Table{empty, full}, s)

	assert.Equal(t, []string{"Sample", "PC"}, merged.Header)
	require.Len(t, merged.Rows, 1)
	assert.Empty(t, warnings)
}

func TestMergerProvenance(t *testing.T) {
	in1 := table.New("a.xlsx", []string{"Sample", "PC", "PE"}, []table.Row{
		{"Sample": "a1", "PC": "1", "PE": "2"},
	})
	in2 := table.New("b.xlsx", []string{"Sample", "PE"}, []table.Row{
		{"Sample": "b1", "PE": "3"},
	})
	s := mustUnify(t, in1, in2)

	m := NewMerger(s)
	m.Add(in1)
	m.Add(in2)
	prov := m.Provenance()

	assert.Equal(t, []string{"a.xlsx"}, prov["PC"])
	assert.Equal(t, []string{"a.xlsx", "b.xlsx"}, prov["PE"])
	assert.Equal(t, []string{"a.xlsx", "b.xlsx"}, prov["Sample"])
	assert.NotContains(t, prov, "TG")
}

func TestMergerAddReturnsPerTableWarnings(t *testing.T) {
	in1 := table.New("a.xlsx", []string{"Sample", "PC"}, []table.Row{{"Sample": "a1", "PC": "1"}})
	in2 := table.New("b.xlsx", []string{"Sample", "TG"}, []table.Row{{"Sample": "b1", "TG": "2"}})
	s := mustUnify(t, in1, in2)

	m := NewMerger(s)
	w1 := m.Add(in1)
	w2 := m.Add(in2)

	require.Len(t, w1, 1)
	assert.Contains(t, w1[0], `a.xlsx: class "TG" absent`)
	require.Len(t, w2, 1)
	assert.Contains(t, w2[0], `b.xlsx: class "PC" absent`)
}

func TestNewReportStampsRunID(t *testing.T) {
	merged := table.New("", []string{"Sample"}, nil)
	s := schema.Schema{Meta: meta}

	r1 := NewReport(s, merged, nil, nil)
	r2 := NewReport(s, merged, nil, nil)

	assert.NotEmpty(t, r1.RunID)
	assert.NotEqual(t, r1.RunID, r2.RunID)
}

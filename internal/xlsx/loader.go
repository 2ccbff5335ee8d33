// Package xlsx adapts excelize workbooks to and from the in-memory table
// model. It is the only package that touches spreadsheet files; the merge
// core never sees a filesystem.
package xlsx

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/lipidquant/lipimerge/internal/schema"
	"github.com/lipidquant/lipimerge/internal/table"
)

// LoadOptions control how a workbook is shaped into a Table.
type LoadOptions struct {
	// TrimClassNames strips surrounding whitespace from header labels, so two
	// inputs differing only in padding resolve to the same class.
	TrimClassNames bool
	// IgnoreBlanks drops rows whose sample identifier contains "blank",
	// case-insensitively, before validation. Each drop produces a warning.
	IgnoreBlanks bool
	// SampleColumn is the metadata column holding the sample identifier,
	// consulted by IgnoreBlanks.
	SampleColumn string
}

// Loader reads LipidQuant report workbooks into Tables.
type Loader struct {
	log *zap.Logger
}

func NewLoader(log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{log: log}
}

// Load reads the first data sheet of the workbook at path: row one is the header
// (class names plus metadata labels), every following row is a record. Cell
// values are trimmed of surrounding whitespace and copied verbatim otherwise.
func (l *Loader) Load(path string, opts LoadOptions) (table.Table, []string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return table.Table{}, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sheet := dataSheetName(f)
	if sheet == "" {
		return table.Table{}, nil, fmt.Errorf("%s: workbook has no data sheet", path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return table.Table{}, nil, fmt.Errorf("read sheet %q of %s: %w", sheet, path, err)
	}
	if len(rows) == 0 {
		return table.Table{}, nil, fmt.Errorf("%s: sheet %q has no header row", path, sheet)
	}

	header := make([]string, len(rows[0]))
	for i, label := range rows[0] {
		if opts.TrimClassNames {
			label = strings.TrimSpace(label)
		}
		header[i] = label
	}
	if err := schema.CheckHeader(path, header); err != nil {
		return table.Table{}, nil, err
	}

	var warnings []string
	var srcRows []int
	records := make([]table.Row, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		sheetRow := i + 2
		row := make(table.Row, len(header))
		for j, label := range header {
			if j < len(cells) {
				row[label] = strings.TrimSpace(cells[j])
			} else {
				row[label] = ""
			}
		}
		if opts.IgnoreBlanks && isBlankSample(row[opts.SampleColumn]) {
			warnings = append(warnings, fmt.Sprintf("%s: row %d skipped: blank sample %q", path, sheetRow, row[opts.SampleColumn]))
			continue
		}
		records = append(records, row)
		srcRows = append(srcRows, sheetRow)
	}

	l.log.Debug("workbook loaded",
		zap.String("file", path),
		zap.String("sheet", sheet),
		zap.Int("columns", len(header)),
		zap.Int("rows", len(records)))

	tbl := table.New(path, header, records)
	tbl.SourceRows = srcRows
	return tbl, warnings, nil
}

// dataSheetName picks the first sheet that is not a lipimerge log sheet, so
// the output of one merge can feed a later merge.
func dataSheetName(f *excelize.File) string {
	for _, sheet := range f.GetSheetList() {
		if sheet != logSheet {
			return sheet
		}
	}
	return ""
}

// isBlankSample reports whether a sample identifier names a blank sample.
func isBlankSample(sample string) bool {
	return strings.Contains(strings.ToLower(sample), "blank")
}

package xlsx

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/lipidquant/lipimerge/internal/merge"
)

const (
	logSheet  = "lipimerge.log"
	dataSheet = "merged"
)

// Writer serializes a merge report into an xlsx workbook: a log sheet first
// (version, timestamps, run ID, per-file status, warnings), then the merged
// data sheet written through the excelize stream writer.
type Writer struct {
	log     *zap.Logger
	version string
}

func NewWriter(log *zap.Logger, version string) *Writer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Writer{log: log, version: version}
}

// Write saves the report to path. Inputs are listed on the log sheet in merge
// order, each with an OK status; the function is only called once the whole
// job has succeeded, so there are no per-file failure rows.
func (w *Writer) Write(path string, rep merge.Report, inputs []string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", logSheet); err != nil {
		return fmt.Errorf("prepare log sheet: %w", err)
	}
	if err := w.writeLog(f, rep, inputs); err != nil {
		return err
	}

	if _, err := f.NewSheet(dataSheet); err != nil {
		return fmt.Errorf("create data sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(dataSheet)
	if err != nil {
		return fmt.Errorf("create stream writer: %w", err)
	}

	header := make([]interface{}, len(rep.Merged.Header))
	for i, label := range rep.Merged.Header {
		header[i] = label
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}

	for i, row := range rep.Merged.Rows {
		cells := make([]interface{}, len(rep.Merged.Header))
		for j, label := range rep.Merged.Header {
			cells[j] = row[label]
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := sw.SetRow(cell, cells); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("final flush: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	w.log.Info("report written",
		zap.String("file", path),
		zap.String("run_id", rep.RunID),
		zap.Int("rows", len(rep.Merged.Rows)),
		zap.Int("columns", len(rep.Merged.Header)))
	return nil
}

func (w *Writer) writeLog(f *excelize.File, rep merge.Report, inputs []string) error {
	now := time.Now()
	lines := [][]interface{}{
		{fmt.Sprintf("LipidQuant merge v. %s", w.version)},
		{"Run ID", rep.RunID},
		{"Time (Local)", now.Format("2006-01-02 15:04:05")},
		{"Time (UTC)", now.UTC().Format("2006-01-02 15:04:05 MST")},
		{},
		{"File", "Status"},
	}
	for _, in := range inputs {
		lines = append(lines, []interface{}{in, "OK"})
	}
	lines = append(lines, []interface{}{}, []interface{}{"Warnings"})
	for _, warn := range rep.Warnings {
		lines = append(lines, []interface{}{warn})
	}

	for i, line := range lines {
		if len(line) == 0 {
			continue
		}
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(logSheet, cell, &line); err != nil {
			return fmt.Errorf("write log line %d: %w", i+1, err)
		}
	}
	return nil
}

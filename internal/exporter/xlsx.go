package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"bikeshare/internal/analytics"
	"bikeshare/internal/config"
	"bikeshare/internal/prompt"
)

const (
	selectionSheet = "Selection"
	defaultSheet   = "Sheet1"
)

// XLSXWriter writes statistics workbooks with one sheet per report.
type XLSXWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewXLSXWriter creates a workbook writer rooted at the reports directory.
func NewXLSXWriter(paths *config.Paths, logger *slog.Logger) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{paths: paths, logger: logger}
}

// WriteWorkbook saves a workbook with a Selection sheet followed by one
// Metric/Value sheet per section and returns the file path.
func (w *XLSXWriter) WriteWorkbook(fileName string, sel prompt.Selection, rows int, sections []analytics.Section) (string, error) {
	fullPath := fileName
	if !filepath.IsAbs(fullPath) {
		fullPath = w.paths.GetReportPath(fileName)
	}

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return "", fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetName(defaultSheet, selectionSheet); err != nil {
		return "", fmt.Errorf("failed to rename default sheet: %w", err)
	}
	var selRows [][]string
	for _, rec := range selectionRecords(sel, rows) {
		selRows = append(selRows, rec[1:])
	}
	if err := writeSheet(f, selectionSheet, bold, selRows); err != nil {
		return "", err
	}

	for _, s := range sections {
		if _, err := f.NewSheet(s.Name); err != nil {
			return "", fmt.Errorf("failed to create sheet %s: %w", s.Name, err)
		}
		metrics := make([][]string, 0, len(s.Metrics))
		for _, m := range s.Metrics {
			metrics = append(metrics, []string{m.Name, m.Value})
		}
		if err := writeSheet(f, s.Name, bold, metrics); err != nil {
			return "", err
		}
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	if err := f.SaveAs(fullPath); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	w.logger.Info("Wrote XLSX workbook",
		slog.String("full_path", fullPath),
		slog.Int("sheet_count", len(sections)+1))
	return fullPath, nil
}

func writeSheet(f *excelize.File, sheet string, headerStyle int, rows [][]string) error {
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"Metric", "Value"}); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	if err := f.SetCellStyle(sheet, "A1", "B1", headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}

	return f.SetColWidth(sheet, "A", "A", 32)
}

// Package exporter saves session statistics for use outside the terminal.
//
// This package contains three components:
//
// CSVWriter: Core CSV writing with headers and a UTF-8 BOM for Excel
// compatibility.
//
// XLSXWriter: Builds a workbook with a Selection sheet and one Metric/Value
// sheet per report.
//
// StatsExporter: Names the files after the selection and writes them in the
// configured format (csv, xlsx or both). With both, the two files are
// written concurrently.
//
// Example usage:
//
//	exp := exporter.NewStatsExporter(paths, config.ExportFormatBoth, logger)
//	files, err := exp.Export(ctx, selection, table.NumRows(), summary)
package exporter

package exporter

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"bikeshare/internal/analytics"
	"bikeshare/internal/config"
	apperrors "bikeshare/internal/errors"
	"bikeshare/internal/infrastructure"
	"bikeshare/internal/prompt"
)

// StatsExporter saves the statistics of a session in the configured formats.
type StatsExporter struct {
	csv    *CSVWriter
	xlsx   *XLSXWriter
	format string
	logger *slog.Logger
}

// NewStatsExporter creates an exporter writing under paths.ReportsDir.
func NewStatsExporter(paths *config.Paths, format string, logger *slog.Logger) *StatsExporter {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "exporter"))
	return &StatsExporter{
		csv:    NewCSVWriter(paths, logger),
		xlsx:   NewXLSXWriter(paths, logger),
		format: format,
		logger: logger,
	}
}

// Export writes summary for sel and returns the paths of the files written,
// CSV first. With format "both" the two files are written concurrently and
// the paths of any that succeeded are returned alongside the first error.
func (e *StatsExporter) Export(ctx context.Context, sel prompt.Selection, rows int, summary *analytics.Summary) (_ []string, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, span := infrastructure.StartSpan(ctx, "export",
		attribute.String("format", e.format),
		attribute.String("selection", sel.String()))
	defer func() { infrastructure.EndSpan(span, err) }()

	sections := summary.Sections()
	var paths [2]string

	g, gctx := errgroup.WithContext(ctx)
	if e.format == config.ExportFormatCSV || e.format == config.ExportFormatBoth {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records := append(selectionRecords(sel, rows), sectionRecords(sections)...)
			path, err := e.csv.WriteSimpleCSV(reportName(sel, "csv"), statsHeaders, records)
			if err != nil {
				return apperrors.NewStorageError("failed to export CSV statistics", err).
					WithContext("selection", sel.String())
			}
			paths[0] = path
			return nil
		})
	}
	if e.format == config.ExportFormatXLSX || e.format == config.ExportFormatBoth {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path, err := e.xlsx.WriteWorkbook(reportName(sel, "xlsx"), sel, rows, sections)
			if err != nil {
				return apperrors.NewStorageError("failed to export XLSX statistics", err).
					WithContext("selection", sel.String())
			}
			paths[1] = path
			return nil
		})
	}
	err = g.Wait()

	var written []string
	for _, p := range paths {
		if p != "" {
			written = append(written, p)
		}
	}
	if err != nil {
		return written, err
	}

	e.logger.InfoContext(ctx, "statistics exported",
		slog.Any("selection", sel),
		slog.Any("files", written))
	return written, nil
}

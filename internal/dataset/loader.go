package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"go.opentelemetry.io/otel/attribute"

	"bikeshare/internal/config"
	apperrors "bikeshare/internal/errors"
	"bikeshare/internal/infrastructure"
	"bikeshare/internal/prompt"
)

// cancelCheckInterval is how many rows are read between context checks.
const cancelCheckInterval = 10000

// Loader reads trip logs for a city and applies the month and day filters.
type Loader struct {
	cities *config.Cities
	mem    memory.Allocator
	logger *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithAllocator sets the Arrow allocator used for loaded tables.
func WithAllocator(mem memory.Allocator) Option {
	return func(l *Loader) { l.mem = mem }
}

// WithLogger sets the loader's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader creates a Loader over the resolved city mapping.
func NewLoader(cities *config.Cities, opts ...Option) *Loader {
	l := &Loader{
		cities: cities,
		mem:    memory.DefaultAllocator,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.With(slog.String("component", "dataset"))
	return l
}

// Load reads the data file for sel.City, derives Month and Day and keeps only
// the rows matching the active filters. The caller owns the returned table.
func (l *Loader) Load(ctx context.Context, sel prompt.Selection) (_ *Table, err error) {
	ctx, span := infrastructure.StartSpan(ctx, "dataset.load",
		attribute.String("city", string(sel.City)),
		attribute.String("month", sel.Month),
		attribute.String("day", sel.Day))
	defer func() { infrastructure.EndSpan(span, err) }()
	start := time.Now()

	path, ok := l.cities.Lookup(sel.City)
	if !ok {
		return nil, apperrors.NewDataLoadError(fmt.Sprintf("no data file configured for %s", sel.City), nil).
			WithContext("city", string(sel.City))
	}

	full, err := l.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	full.city = sel.City

	filtered, err := Filter(ctx, full, sel)
	full.Release()
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("rows", filtered.NumRows()))
	l.logger.InfoContext(ctx, "dataset loaded",
		slog.String("file", path),
		slog.Any("selection", sel),
		slog.Int("rows", filtered.NumRows()),
		slog.Duration("duration", time.Since(start)))

	return filtered, nil
}

// ReadFile loads a whole trip log into a Table without filtering.
func (l *Loader) ReadFile(ctx context.Context, path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewDataLoadError("failed to open data file", err).
			WithContext("file", path)
	}
	defer f.Close()

	rec, err := l.read(ctx, f)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr.WithContext("file", path)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, apperrors.NewDataLoadError("failed to read data file", err).
			WithContext("file", path)
	}

	l.logger.DebugContext(ctx, "data file read",
		slog.String("file", path),
		slog.Int64("rows", rec.NumRows()),
		slog.Int64("columns", rec.NumCols()))

	return newTable(rec, l.mem, "", path), nil
}

func (l *Loader) read(ctx context.Context, r io.Reader) (arrow.Record, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true
	reader.FieldsPerRecord = -1

	raw, err := reader.Read()
	if err == io.EOF {
		return nil, apperrors.NewDataLoadError("data file is empty", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	header := normalizeHeader(raw)

	if missing := missingColumns(header); len(missing) > 0 {
		return nil, apperrors.NewDataLoadError("data file is missing required columns", nil).
			WithContext("missing", strings.Join(missing, ", "))
	}

	schema := buildSchema(header)
	b := array.NewRecordBuilder(l.mem, schema)
	defer b.Release()

	startIdx := schema.FieldIndices(ColStartTime)[0]
	monthB := b.Field(len(header)).(*array.StringBuilder)
	dayB := b.Field(len(header) + 1).(*array.StringBuilder)

	for line := 2; ; line++ {
		if line%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		var started time.Time
		for i, name := range header {
			cell := ""
			if i < len(row) {
				cell = strings.TrimSpace(row[i])
			}
			if i == startIdx {
				ts, err := parseStartTime(cell)
				if err != nil {
					return nil, apperrors.NewDataLoadError("invalid start time", err).
						WithContext("line", line).
						WithContext("value", cell)
				}
				started = ts
			}
			if err := appendCell(b.Field(i), cell, started); err != nil {
				return nil, apperrors.NewDataLoadError(fmt.Sprintf("invalid %s value", name), err).
					WithContext("line", line).
					WithContext("value", cell)
			}
		}

		monthB.Append(started.Month().String())
		dayB.Append(started.Weekday().String())
	}

	return b.NewRecord(), nil
}

func appendCell(fb array.Builder, cell string, started time.Time) error {
	if cell == "" {
		fb.AppendNull()
		return nil
	}
	switch b := fb.(type) {
	case *array.TimestampBuilder:
		b.Append(arrow.Timestamp(started.Unix()))
	case *array.Float64Builder:
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return err
		}
		b.Append(v)
	case *array.StringBuilder:
		b.Append(cell)
	default:
		return fmt.Errorf("unsupported column builder %T", fb)
	}
	return nil
}

func parseStartTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("missing start time")
	}
	for _, layout := range startTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format %q", value)
}

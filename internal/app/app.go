package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"bikeshare/internal/analytics"
	"bikeshare/internal/config"
	"bikeshare/internal/dataset"
	apperrors "bikeshare/internal/errors"
	"bikeshare/internal/exporter"
	"bikeshare/internal/infrastructure"
	"bikeshare/internal/pager"
	"bikeshare/internal/prompt"
)

// Messages printed by the session loop.
const (
	NoDataMessage = "No data for this selection."
	loadFailed    = "Unable to load data"
	exportFailed  = "Unable to export statistics"
)

// Application wires the interactive session: filter prompt, dataset loader,
// reporters, optional export and raw row pager.
type Application struct {
	Config   *config.Config
	Paths    *config.Paths
	Logger   *slog.Logger
	Prompter *prompt.Prompter
	Loader   *dataset.Loader
	Reporter *analytics.Reporter
	Exporter *exporter.StatsExporter // nil when export is disabled

	out io.Writer
}

// NewApplication creates an application reading answers from in and writing
// the conversation to out.
func NewApplication(cfg *config.Config, paths *config.Paths, in io.Reader, out io.Writer, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	cities, err := config.NewCities(paths.DataDir, cfg.Data.Cities)
	if err != nil {
		return nil, apperrors.NewConfigError("failed to resolve city data files", err)
	}
	paths.LogPathResolution(logger, cities)

	a := &Application{
		Config:   cfg,
		Paths:    paths,
		Logger:   infrastructure.WithComponent(logger, "app"),
		Prompter: prompt.New(in, out, logger),
		Loader:   dataset.NewLoader(cities, dataset.WithLogger(logger)),
		Reporter: analytics.NewReporter(out, logger),
		out:      out,
	}
	if cfg.Export.Enabled() {
		a.Exporter = exporter.NewStatsExporter(paths, cfg.Export.Format, logger)
	}

	return a, nil
}

// Run repeats sessions until the user declines to restart or input ends.
// Each session runs under its own session ID.
func (a *Application) Run(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Application starting",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion),
		slog.Bool("export_enabled", a.Exporter != nil))

	for sessions := 1; ; sessions++ {
		sctx := infrastructure.ContextWithSessionID(ctx)

		again, err := a.runSession(sctx)
		if errors.Is(err, apperrors.ErrInputClosed) {
			a.Logger.InfoContext(sctx, "Input closed, exiting", slog.Int("sessions", sessions))
			return nil
		}
		if err != nil {
			infrastructure.WithError(a.Logger, err).ErrorContext(sctx, "Session failed")
			return err
		}
		if !again {
			a.Logger.InfoContext(sctx, "User finished", slog.Int("sessions", sessions))
			return nil
		}
	}
}

// runSession runs one pass of the loop and reports whether to restart.
func (a *Application) runSession(ctx context.Context) (again bool, err error) {
	ctx, span := infrastructure.StartSpan(ctx, "session")
	defer func() { infrastructure.EndSpan(span, err) }()

	a.Logger.InfoContext(ctx, "Session started")

	sel, err := a.Prompter.AskFilters(ctx)
	if err != nil {
		return false, err
	}
	span.SetAttributes(attribute.String("selection", sel.String()))

	tbl, err := a.Loader.Load(ctx, sel)
	switch {
	case err == nil:
		err = a.explore(ctx, sel, tbl)
		tbl.Release()
		if err != nil {
			return false, err
		}
	case ctx.Err() != nil:
		return false, ctx.Err()
	default:
		infrastructure.WithError(a.Logger, err).ErrorContext(ctx, "Failed to load dataset",
			slog.String("error_type", string(apperrors.TypeOf(err))),
			slog.Any("selection", sel))
		fmt.Fprintf(a.out, "\n%s: %s\n", loadFailed, describe(err))
	}

	return a.Prompter.AskRestart(ctx)
}

// explore prints the reports for tbl, exports them when configured and
// offers the raw rows.
func (a *Application) explore(ctx context.Context, sel prompt.Selection, tbl *dataset.Table) error {
	if tbl.Empty() {
		a.Logger.InfoContext(ctx, "Selection matched no trips", slog.Any("selection", sel))
		fmt.Fprintf(a.out, "\n%s\n", NoDataMessage)
		return nil
	}

	summary, err := a.Reporter.Run(ctx, tbl)
	if apperrors.IsType(err, apperrors.ErrTypeEmptyResult) {
		fmt.Fprintf(a.out, "\n%s\n", NoDataMessage)
		return nil
	}
	if err != nil {
		return err
	}

	a.export(ctx, sel, tbl.NumRows(), summary)

	return pager.New(tbl, a.Prompter, a.out, a.Logger).Run(ctx)
}

// export saves the statistics. Failures are reported and never end the session.
func (a *Application) export(ctx context.Context, sel prompt.Selection, rows int, summary *analytics.Summary) {
	if a.Exporter == nil {
		return
	}

	files, err := a.Exporter.Export(ctx, sel, rows, summary)
	for _, f := range files {
		fmt.Fprintf(a.out, "Statistics saved to %s\n", f)
	}
	if err != nil {
		infrastructure.WithError(a.Logger, err).WarnContext(ctx, "Statistics export failed")
		fmt.Fprintf(a.out, "%s: %s\n", exportFailed, describe(err))
	}
}

// describe renders err for the user without the error type tag.
func describe(err error) string {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return err.Error()
	}
	msg := appErr.Message
	if file, ok := appErr.Context["file"]; ok {
		msg = fmt.Sprintf("%s %v", msg, file)
	}
	if missing, ok := appErr.Context["missing"]; ok {
		msg = fmt.Sprintf("%s (missing %v)", msg, missing)
	}
	if line, ok := appErr.Context["line"]; ok {
		msg = fmt.Sprintf("%s (line %v)", msg, line)
	}
	if appErr.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, appErr.Cause)
	}
	return msg
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bikeshare/internal/app"
	"bikeshare/internal/config"
	"bikeshare/internal/infrastructure"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})

	// Reads from stdin do not observe ctx, so an interrupt ends the process here.
	go func() {
		select {
		case <-ctx.Done():
			interrupted()
			os.Exit(130)
		case <-done:
		}
	}()

	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	close(done)
	stop()
	os.Exit(code)
}

// interrupted flushes pending spans and the log file before the process
// exits on a signal.
func interrupted() {
	logger := infrastructure.GetLogger()
	logger.Info("Received interrupt signal")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := infrastructure.ShutdownTracing(ctx); err != nil {
		logger.Warn("Tracing shutdown failed", slog.String("error", err.Error()))
	}
	infrastructure.CloseLogFile()
}

// run parses flags, loads configuration and drives the session loop.
// It returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	dataDir := fs.String("data", "", "directory holding chicago.csv, new_york_city.csv and washington.csv (default: working directory)")
	configFile := fs.String("config", "", "path to a YAML config file (default: bikeshare.yaml or configs/bikeshare.yaml if present)")
	exportDir := fs.String("export", "", "directory to export statistics to after each run (default: no export)")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", config.AppName, config.AppVersion)
		return 0
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	if *dataDir != "" {
		cfg.Data.Dir = *dataDir
	}
	if *exportDir != "" {
		cfg.Export.Dir = *exportDir
	}

	paths, err := config.GetPaths(cfg, "")
	if err != nil {
		fmt.Fprintf(stderr, "Failed to resolve paths: %v\n", err)
		return 1
	}
	if err := paths.EnsureDirectories(cfg); err != nil {
		fmt.Fprintf(stderr, "Failed to create required directories: %v\n", err)
		return 1
	}
	cfg.Logging.FilePath = paths.LogFile

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer infrastructure.CloseLogFile()

	cfg.Tracing.FilePath = paths.TraceFile
	if _, err := infrastructure.InitializeTracing(cfg.Tracing, logger); err != nil {
		logger.Error("Failed to initialize tracing", slog.String("error", err.Error()))
		fmt.Fprintf(stderr, "Failed to initialize tracing: %v\n", err)
		return 1
	}
	defer func() {
		if err := infrastructure.ShutdownTracing(context.Background()); err != nil {
			logger.Warn("Tracing shutdown failed", slog.String("error", err.Error()))
		}
	}()

	logger.Info("Configuration loaded",
		slog.String("data_dir", paths.DataDir),
		slog.String("log_output", cfg.Logging.Output),
		slog.String("export_dir", cfg.Export.Dir),
		slog.String("export_format", cfg.Export.Format),
		slog.String("trace_output", cfg.Tracing.Output))

	application, err := app.NewApplication(cfg, paths, stdin, stdout, logger)
	if err != nil {
		logger.Error("Failed to create application", slog.String("error", err.Error()))
		fmt.Fprintf(stderr, "Failed to start: %v\n", err)
		return 1
	}

	if err := application.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

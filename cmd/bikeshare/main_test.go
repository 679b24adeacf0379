package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace/noop"

	"bikeshare/internal/config"
	"bikeshare/internal/infrastructure"
	"bikeshare/internal/shared/testutil"
)

func runForTest(t *testing.T, args []string, answers ...string) (int, string, string) {
	t.Helper()
	t.Setenv("BIKESHARE_LOGGING_OUTPUT", "none")
	t.Cleanup(infrastructure.ResetLoggerForTesting)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, testutil.Answers(answers...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Version(t *testing.T) {
	code, stdout, _ := runForTest(t, []string{"-version"})

	assert.Equal(t, 0, code)
	assert.Equal(t, "bikeshare 1.0.0\n", stdout)
}

func TestRun_BadFlag(t *testing.T) {
	code, _, stderr := runForTest(t, []string{"-nope"})

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "flag provided but not defined")
}

func TestRun_MissingConfigFile(t *testing.T) {
	code, _, stderr := runForTest(t, []string{"-config", filepath.Join(t.TempDir(), "missing.yaml")})

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Failed to load configuration")
}

func TestRun_Session(t *testing.T) {
	dataDir := t.TempDir()
	testutil.WriteTripCSV(t, dataDir, "chicago.csv", testutil.TripHeader, testutil.SampleTrips())
	exportDir := filepath.Join(t.TempDir(), "out")

	code, stdout, stderr := runForTest(t,
		[]string{"-data", dataDir, "-export", exportDir},
		"chicago", "all", "sunday", "no", "no")

	assert.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "The most popular day of the week is Sunday")
	assert.True(t, strings.HasSuffix(stdout, "Would you like to restart? Enter yes or no.\n"))

	_, err := os.Stat(filepath.Join(exportDir, "chicago_all_sunday_stats.csv"))
	assert.NoError(t, err)
}

func TestRun_TracingToFile(t *testing.T) {
	dataDir := t.TempDir()
	testutil.WriteTripCSV(t, dataDir, "chicago.csv", testutil.TripHeader, testutil.SampleTrips())
	traceFile := filepath.Join(t.TempDir(), "trace.json")
	t.Setenv("BIKESHARE_TRACING_OUTPUT", "file")
	t.Setenv("BIKESHARE_TRACING_FILE_PATH", traceFile)
	t.Cleanup(func() { otel.SetTracerProvider(noop.NewTracerProvider()) })

	code, _, stderr := runForTest(t, []string{"-data", dataDir}, "chicago", "all", "all", "no", "no")
	require.Equal(t, 0, code, stderr)

	content, err := os.ReadFile(traceFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"Name":"session"`)
	assert.Contains(t, string(content), `"Name":"dataset.load"`)
	assert.Contains(t, string(content), `"Name":"reports"`)
}

func TestInterrupted_FlushesTracing(t *testing.T) {
	t.Cleanup(func() { otel.SetTracerProvider(noop.NewTracerProvider()) })
	traceFile := filepath.Join(t.TempDir(), "trace.json")

	_, err := infrastructure.InitializeTracing(
		config.TracingConfig{Output: "file", FilePath: traceFile}, infrastructure.GetLogger())
	require.NoError(t, err)

	_, span := infrastructure.StartSpan(context.Background(), "session")
	infrastructure.EndSpan(span, nil)

	interrupted()

	content, err := os.ReadFile(traceFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"Name":"session"`)
}

func TestRun_EndOfInput(t *testing.T) {
	code, stdout, _ := runForTest(t, []string{"-data", t.TempDir()})

	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Please enter a city")
}

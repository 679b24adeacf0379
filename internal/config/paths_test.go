package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPaths(t *testing.T) {
	base := t.TempDir()

	cfg := Default()
	cfg.Data.Dir = "trips"
	cfg.Export.Dir = "/abs/reports"

	paths, err := GetPaths(cfg, base)
	require.NoError(t, err)

	assert.Equal(t, base, paths.BaseDir)
	assert.Equal(t, filepath.Join(base, "trips"), paths.DataDir)
	assert.Equal(t, filepath.Join(base, DefaultLogFile), paths.LogFile)
	assert.Equal(t, filepath.Join(base, "logs"), paths.LogsDir)
	assert.Equal(t, filepath.Join(base, DefaultTraceFile), paths.TraceFile)
	assert.Equal(t, "/abs/reports", paths.ReportsDir)
	assert.Equal(t, filepath.Join("/abs/reports", "x.csv"), paths.GetReportPath("x.csv"))
	assert.Equal(t, filepath.Join(base, "trips", "chicago.csv"), paths.GetDataPath("chicago.csv"))
}

func TestGetPaths_DefaultsToWorkingDirectory(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	paths, err := GetPaths(Default(), "")
	require.NoError(t, err)
	assert.Equal(t, wd, paths.BaseDir)
	assert.Equal(t, filepath.Join(wd, DefaultReportsDir), paths.ReportsDir)
}

func TestEnsureDirectories(t *testing.T) {
	tests := []struct {
		name        string
		output      string
		exportDir   string
		wantLogs    bool
		wantReports bool
	}{
		{name: "file logging without export", output: "file", wantLogs: true},
		{name: "console logging with export", output: "console", exportDir: "out", wantReports: true},
		{name: "both", output: "both", exportDir: "out", wantLogs: true, wantReports: true},
		{name: "nothing to create", output: "none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := t.TempDir()
			cfg := Default()
			cfg.Logging.Output = tt.output
			cfg.Export.Dir = tt.exportDir

			paths, err := GetPaths(cfg, base)
			require.NoError(t, err)
			require.NoError(t, paths.EnsureDirectories(cfg))

			assert.Equal(t, tt.wantLogs, FileExists(paths.LogsDir))
			if tt.exportDir != "" {
				assert.Equal(t, tt.wantReports, FileExists(paths.ReportsDir))
			}
		})
	}
}

func TestEnsureDirectories_TraceFile(t *testing.T) {
	base := t.TempDir()
	cfg := Default()
	cfg.Logging.Output = "none"
	cfg.Tracing.Output = "file"
	cfg.Tracing.FilePath = "traces/spans.json"

	paths, err := GetPaths(cfg, base)
	require.NoError(t, err)
	require.NoError(t, paths.EnsureDirectories(cfg))

	assert.True(t, FileExists(filepath.Join(base, "traces")))
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "present.csv")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(filepath.Join(dir, "absent.csv")))
}

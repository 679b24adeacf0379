package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Paths contains the file system locations used by a session.
// Relative locations are resolved against BaseDir, normally the working
// directory, since the trip logs live next to where the tool is started.
type Paths struct {
	BaseDir    string
	DataDir    string
	LogsDir    string
	ReportsDir string
	LogFile    string
	TraceFile  string
}

// GetPaths resolves the configured locations against baseDir.
// An empty baseDir means the current working directory.
func GetPaths(cfg *Config, baseDir string) (*Paths, error) {
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		baseDir = wd
	}

	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(baseDir, p)
	}

	paths := &Paths{
		BaseDir:   baseDir,
		DataDir:   resolve(cfg.Data.Dir),
		LogFile:   resolve(cfg.Logging.FilePath),
		TraceFile: resolve(cfg.Tracing.FilePath),
	}
	if paths.LogFile != "" {
		paths.LogsDir = filepath.Dir(paths.LogFile)
	}
	reports := cfg.Export.Dir
	if reports == "" {
		reports = DefaultReportsDir
	}
	paths.ReportsDir = resolve(reports)

	return paths, nil
}

// EnsureDirectories creates the directories the session writes to.
// The data directory is read-only input and is never created.
func (p *Paths) EnsureDirectories(cfg *Config) error {
	var directories []string
	if cfg.Logging.Output == "file" || cfg.Logging.Output == "both" {
		directories = append(directories, p.LogsDir)
	}
	if cfg.Export.Enabled() {
		directories = append(directories, p.ReportsDir)
	}
	if cfg.Tracing.Output == "file" && p.TraceFile != "" {
		directories = append(directories, filepath.Dir(p.TraceFile))
	}

	for _, dir := range directories {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
	}
	return nil
}

// GetReportPath returns the path for a report file
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetDataPath returns the path for a data file
func (p *Paths) GetDataPath(filename string) string {
	return filepath.Join(p.DataDir, filename)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// LogPathResolution logs path resolution and which city files are present
func (p *Paths) LogPathResolution(logger *slog.Logger, cities *Cities) {
	if logger == nil {
		logger = slog.Default()
	}

	var missing []string
	if cities != nil {
		for _, city := range cities.Names() {
			path, _ := cities.Lookup(city)
			if !FileExists(path) {
				missing = append(missing, string(city))
			}
		}
	}

	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("base", p.BaseDir),
			slog.String("data", p.DataDir),
			slog.String("logs", p.LogsDir),
			slog.String("reports", p.ReportsDir),
		),
		slog.String("missing_city_files", strings.Join(missing, ",")))
}

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Data    DataConfig    `yaml:"data" envconfig:"DATA"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Export  ExportConfig  `yaml:"export" envconfig:"EXPORT"`
	Tracing TracingConfig `yaml:"tracing" envconfig:"TRACING"`
}

// DataConfig locates the per-city trip logs
type DataConfig struct {
	Dir string `yaml:"dir" envconfig:"DIR" validate:"required"`
	// Cities overrides the file name of individual cities, e.g. chicago: chicago_2017.csv
	Cities map[string]string `yaml:"cities" envconfig:"CITIES"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"required,oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"required,oneof=file console both none"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_if=Output file,required_if=Output both"`
}

// TracingConfig controls span export. Spans are written as JSON lines.
type TracingConfig struct {
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"required,oneof=none file"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_if=Output file"`
}

// ExportConfig controls the optional statistics export. An empty Dir disables it.
type ExportConfig struct {
	Dir    string `yaml:"dir" envconfig:"DIR"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"required,oneof=csv xlsx both"`
}

// Enabled reports whether statistics should be exported after each run.
func (e ExportConfig) Enabled() bool {
	return strings.TrimSpace(e.Dir) != ""
}

// Load builds the configuration from defaults, an optional YAML file and
// BIKESHARE_* environment variables, in increasing order of precedence.
// An empty configFile searches the usual locations; a named file must exist.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	path := configFile
	if path == "" {
		path = getConfigFilePath()
	}
	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Unset variables leave the current value alone, so env only overrides.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays YAML configuration onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks field constraints and the city overrides
func (c *Config) Validate() error {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Output = strings.ToLower(strings.TrimSpace(c.Logging.Output))
	c.Export.Format = strings.ToLower(strings.TrimSpace(c.Export.Format))
	c.Tracing.Output = strings.ToLower(strings.TrimSpace(c.Tracing.Output))

	if err := validator.New().Struct(c); err != nil {
		return err
	}

	for key := range c.Data.Cities {
		if _, ok := ParseCity(key); !ok {
			return fmt.Errorf("unknown city %q in data.cities", key)
		}
	}
	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	// Check for config file in common locations
	locations := []string{
		"bikeshare.yaml",
		"configs/bikeshare.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Dir: DefaultDataDir,
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Output:   DefaultLogOutput,
			FilePath: DefaultLogFile,
		},
		Export: ExportConfig{
			Format: ExportFormatCSV,
		},
		Tracing: TracingConfig{
			Output:   DefaultTraceOutput,
			FilePath: DefaultTraceFile,
		},
	}
}

package config

// Application constants
const (
	// Application Info
	AppName    = "bikeshare"
	AppVersion = "1.0.0"

	// Environment prefix used by envconfig (BIKESHARE_DATA_DIR, BIKESHARE_LOGGING_LEVEL, ...)
	EnvPrefix = "BIKESHARE"

	// File Paths (relative to the base directory)
	DefaultDataDir    = "."
	DefaultLogsDir    = "logs"
	DefaultReportsDir = "reports"
	DefaultLogFile    = "logs/bikeshare.log"
	DefaultTraceFile  = "logs/trace.json"

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogOutput = "file"

	// Trace Settings
	DefaultTraceOutput = "none"

	// Export formats
	ExportFormatCSV  = "csv"
	ExportFormatXLSX = "xlsx"
	ExportFormatBoth = "both"

	// Session
	FilterAll    = "all"
	PageSize     = 5
	SeparatorLen = 40
)

// Months lists the month filter values accepted at the prompt, in calendar order.
var Months = []string{"january", "february", "march", "april", "may", "june"}

// Days lists the day filter values accepted at the prompt, Sunday first.
var Days = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

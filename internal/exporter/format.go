package exporter

import (
	"fmt"
	"strings"

	"bikeshare/internal/analytics"
	"bikeshare/internal/prompt"
)

// statsHeaders is the header row of a CSV statistics export.
var statsHeaders = []string{"Report", "Metric", "Value"}

// reportName returns the export file name for a selection,
// e.g. chicago_march_friday_stats.csv.
func reportName(sel prompt.Selection, ext string) string {
	return fmt.Sprintf("%s_%s_%s_stats.%s", sel.City, sel.Month, sel.Day, strings.TrimPrefix(ext, "."))
}

// selectionRecords describes the filters the statistics were computed for.
func selectionRecords(sel prompt.Selection, rows int) [][]string {
	return [][]string{
		{"Selection", "City", sel.City.DisplayName()},
		{"Selection", "Month", sel.MonthTitle()},
		{"Selection", "Day", sel.DayTitle()},
		{"Selection", "Rows", fmt.Sprintf("%d", rows)},
	}
}

// sectionRecords flattens report sections into CSV records.
func sectionRecords(sections []analytics.Section) [][]string {
	var records [][]string
	for _, s := range sections {
		for _, m := range s.Metrics {
			records = append(records, []string{s.Name, m.Name, m.Value})
		}
	}
	return records
}

package dataset

import (
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
)

// Column names used by the trip logs and the derived columns added on load.
const (
	ColStartTime    = "Start Time"
	ColEndTime      = "End Time"
	ColTripDuration = "Trip Duration"
	ColStartStation = "Start Station"
	ColEndStation   = "End Station"
	ColUserType     = "User Type"
	ColGender       = "Gender"
	ColBirthYear    = "Birth Year"

	ColMonth = "Month"
	ColDay   = "Day"
)

// RequiredColumns must be present in every trip log.
var RequiredColumns = []string{
	ColStartTime,
	ColStartStation,
	ColEndStation,
	ColTripDuration,
	ColUserType,
}

// startTimeLayouts are tried in order when parsing Start Time.
var startTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

var (
	timestampType = &arrow.TimestampType{Unit: arrow.Second}
)

// columnType picks the Arrow type for a source column by its header.
func columnType(name string) arrow.DataType {
	switch name {
	case ColStartTime:
		return timestampType
	case ColTripDuration, ColBirthYear:
		return arrow.PrimitiveTypes.Float64
	default:
		return arrow.BinaryTypes.String
	}
}

// buildSchema returns the table schema: every source column followed by
// the derived Month and Day columns.
func buildSchema(header []string) *arrow.Schema {
	fields := make([]arrow.Field, 0, len(header)+2)
	for _, name := range header {
		fields = append(fields, arrow.Field{Name: name, Type: columnType(name), Nullable: true})
	}
	fields = append(fields,
		arrow.Field{Name: ColMonth, Type: arrow.BinaryTypes.String, Nullable: false},
		arrow.Field{Name: ColDay, Type: arrow.BinaryTypes.String, Nullable: false},
	)
	return arrow.NewSchema(fields, nil)
}

// normalizeHeader trims whitespace and a leading UTF-8 byte order mark.
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		out[i] = strings.TrimSpace(h)
	}
	return out
}

func missingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, req := range RequiredColumns {
		if !present[req] {
			missing = append(missing, req)
		}
	}
	return missing
}

package analytics

import (
	"context"
	"fmt"
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"bikeshare/internal/dataset"
	apperrors "bikeshare/internal/errors"
)

// TimeStats holds the most frequent travel times of a table.
type TimeStats struct {
	Month     string
	Day       string
	StartHour int
}

// StationStats holds the most popular stations and trip of a table.
type StationStats struct {
	StartStation string
	EndStation   string
	Trip         string
}

// DurationStats holds total and mean trip duration in seconds.
// Mean is NaN when no trip has a duration.
type DurationStats struct {
	Total float64
	Mean  float64
	Trips int
}

// BirthYearStats holds the birth year summary of the riders.
type BirthYearStats struct {
	MostCommon int
	Earliest   int
	Latest     int
}

// UserStats holds rider breakdowns. GenderColumn and BirthYearColumn record
// whether the table has those columns at all; Genders may still be empty and
// BirthYears nil when every value in the column is missing.
type UserStats struct {
	UserTypes       []Count[string]
	Genders         []Count[string]
	BirthYears      *BirthYearStats
	GenderColumn    bool
	BirthYearColumn bool
}

// HasGender reports whether the table carries a Gender column.
func (s UserStats) HasGender() bool { return s.GenderColumn }

// HasBirthYears reports whether the table carries a Birth Year column.
func (s UserStats) HasBirthYears() bool { return s.BirthYearColumn }

func checkTable(ctx context.Context, tbl *dataset.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if tbl.Empty() {
		return apperrors.NewEmptyResultError(fmt.Sprintf("no trips for %s", tbl.City()))
	}
	return nil
}

func stringAt(col *array.String) func(int) (string, bool) {
	return func(i int) (string, bool) {
		if col.IsNull(i) {
			return "", false
		}
		return col.Value(i), true
	}
}

func floatAt(col *array.Float64) func(int) (float64, bool) {
	return func(i int) (float64, bool) {
		if col.IsNull(i) || math.IsNaN(col.Value(i)) {
			return 0, false
		}
		return col.Value(i), true
	}
}

// ComputeTimeStats finds the most common month, weekday and start hour.
func ComputeTimeStats(ctx context.Context, tbl *dataset.Table) (TimeStats, error) {
	if err := checkTable(ctx, tbl); err != nil {
		return TimeStats{}, err
	}

	months, err := tbl.Strings(dataset.ColMonth)
	if err != nil {
		return TimeStats{}, err
	}
	days, err := tbl.Strings(dataset.ColDay)
	if err != nil {
		return TimeStats{}, err
	}
	starts, err := tbl.Timestamps(dataset.ColStartTime)
	if err != nil {
		return TimeStats{}, err
	}

	n := tbl.NumRows()
	month, _ := Mode(n, stringAt(months))
	day, _ := Mode(n, stringAt(days))

	unit := starts.DataType().(*arrow.TimestampType).Unit
	hour, ok := Mode(n, func(i int) (int, bool) {
		if starts.IsNull(i) {
			return 0, false
		}
		return starts.Value(i).ToTime(unit).Hour(), true
	})
	if !ok {
		return TimeStats{}, apperrors.NewEmptyResultError("no start times")
	}

	return TimeStats{Month: month, Day: day, StartHour: hour}, nil
}

// ComputeStationStats finds the most common start station, end station and
// "start - end" trip.
func ComputeStationStats(ctx context.Context, tbl *dataset.Table) (StationStats, error) {
	if err := checkTable(ctx, tbl); err != nil {
		return StationStats{}, err
	}

	from, err := tbl.Strings(dataset.ColStartStation)
	if err != nil {
		return StationStats{}, err
	}
	to, err := tbl.Strings(dataset.ColEndStation)
	if err != nil {
		return StationStats{}, err
	}

	n := tbl.NumRows()
	start, _ := Mode(n, stringAt(from))
	end, _ := Mode(n, stringAt(to))
	trip, _ := Mode(n, func(i int) (string, bool) {
		if from.IsNull(i) || to.IsNull(i) {
			return "", false
		}
		return from.Value(i) + " - " + to.Value(i), true
	})

	return StationStats{StartStation: start, EndStation: end, Trip: trip}, nil
}

// ComputeDurationStats sums and averages Trip Duration, skipping missing values.
func ComputeDurationStats(ctx context.Context, tbl *dataset.Table) (DurationStats, error) {
	if err := checkTable(ctx, tbl); err != nil {
		return DurationStats{}, err
	}

	durations, err := tbl.Floats(dataset.ColTripDuration)
	if err != nil {
		return DurationStats{}, err
	}

	get := floatAt(durations)
	var stats DurationStats
	for i := 0; i < durations.Len(); i++ {
		if v, ok := get(i); ok {
			stats.Total += v
			stats.Trips++
		}
	}

	stats.Mean = math.NaN()
	if stats.Trips > 0 {
		stats.Mean = stats.Total / float64(stats.Trips)
	}
	return stats, nil
}

// ComputeUserStats counts user types and, when the columns exist, genders
// and birth years.
func ComputeUserStats(ctx context.Context, tbl *dataset.Table) (UserStats, error) {
	if err := checkTable(ctx, tbl); err != nil {
		return UserStats{}, err
	}

	n := tbl.NumRows()
	userTypes, err := tbl.Strings(dataset.ColUserType)
	if err != nil {
		return UserStats{}, err
	}
	stats := UserStats{UserTypes: ValueCounts(n, stringAt(userTypes))}

	if tbl.HasColumn(dataset.ColGender) {
		genders, err := tbl.Strings(dataset.ColGender)
		if err != nil {
			return UserStats{}, err
		}
		stats.Genders = ValueCounts(n, stringAt(genders))
		stats.GenderColumn = true
	}

	if tbl.HasColumn(dataset.ColBirthYear) {
		years, err := tbl.Floats(dataset.ColBirthYear)
		if err != nil {
			return UserStats{}, err
		}
		stats.BirthYears = birthYears(years)
		stats.BirthYearColumn = true
	}

	return stats, nil
}

func birthYears(years *array.Float64) *BirthYearStats {
	get := floatAt(years)
	mode, ok := Mode(years.Len(), get)
	if !ok {
		return nil
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for i := 0; i < years.Len(); i++ {
		if v, ok := get(i); ok {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}

	return &BirthYearStats{
		MostCommon: int(mode),
		Earliest:   int(lo),
		Latest:     int(hi),
	}
}

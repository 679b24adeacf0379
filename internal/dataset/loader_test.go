package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/internal/config"
	apperrors "bikeshare/internal/errors"
	"bikeshare/internal/prompt"
	"bikeshare/internal/shared/testutil"
)

func newTestLoader(t *testing.T, dir string) (*Loader, *memory.CheckedAllocator) {
	t.Helper()

	cities, err := config.NewCities(dir, nil)
	require.NoError(t, err)

	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	logger, _ := testutil.NewTestLogger(t)
	return NewLoader(cities, WithAllocator(mem), WithLogger(logger)), mem
}

func selection(city config.City, month, day string) prompt.Selection {
	return prompt.Selection{City: city, Month: month, Day: day}
}

func TestLoad_DerivesMonthAndDay(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteTripCSV(t, dir, "chicago.csv", testutil.TripHeader, []testutil.Trip{
		{Start: "2023-01-15 10:00:00", End: "2023-01-15 10:10:00", Duration: "600",
			From: "A", To: "B", UserType: "Subscriber", Gender: "Male", BirthYear: "1990"},
	})

	loader, mem := newTestLoader(t, dir)
	defer mem.AssertSize(t, 0)

	tbl, err := loader.Load(context.Background(), selection(config.Chicago, "all", "all"))
	require.NoError(t, err)
	defer tbl.Release()

	require.Equal(t, 1, tbl.NumRows())
	assert.Equal(t, config.Chicago, tbl.City())

	months, err := tbl.Strings(ColMonth)
	require.NoError(t, err)
	days, err := tbl.Strings(ColDay)
	require.NoError(t, err)

	assert.Equal(t, "January", months.Value(0))
	assert.Equal(t, "Sunday", days.Value(0))
}

func TestLoad_Filters(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteTripCSV(t, dir, "chicago.csv", testutil.TripHeader, testutil.SampleTrips())

	tests := []struct {
		name  string
		month string
		day   string
		want  int
	}{
		{"no filters", "all", "all", 7},
		{"month only", "march", "all", 4},
		{"day only", "all", "sunday", 4},
		{"month and day intersect", "march", "friday", 3},
		{"january sundays", "january", "sunday", 3},
		{"no matching rows", "june", "all", 0},
		{"disjoint month and day", "january", "friday", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, mem := newTestLoader(t, dir)
			defer mem.AssertSize(t, 0)

			tbl, err := loader.Load(context.Background(), selection(config.Chicago, tt.month, tt.day))
			require.NoError(t, err)
			defer tbl.Release()

			assert.Equal(t, tt.want, tbl.NumRows())
			assert.Equal(t, tt.want == 0, tbl.Empty())

			if tt.want == 0 {
				return
			}
			months, err := tbl.Strings(ColMonth)
			require.NoError(t, err)
			days, err := tbl.Strings(ColDay)
			require.NoError(t, err)
			sel := selection(config.Chicago, tt.month, tt.day)
			for i := 0; i < tbl.NumRows(); i++ {
				if sel.FilterMonth() {
					assert.Equal(t, sel.MonthTitle(), months.Value(i))
				}
				if sel.FilterDay() {
					assert.Equal(t, sel.DayTitle(), days.Value(i))
				}
			}
		})
	}
}

func TestLoad_TypedColumns(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteTripCSV(t, dir, "chicago.csv", testutil.TripHeader, testutil.SampleTrips())

	loader, mem := newTestLoader(t, dir)
	defer mem.AssertSize(t, 0)

	tbl, err := loader.Load(context.Background(), selection(config.Chicago, "all", "all"))
	require.NoError(t, err)
	defer tbl.Release()

	durations, err := tbl.Floats(ColTripDuration)
	require.NoError(t, err)
	assert.Equal(t, 776.0, durations.Value(0))

	years, err := tbl.Floats(ColBirthYear)
	require.NoError(t, err)
	assert.True(t, years.IsNull(3), "empty birth year is null")

	starts, err := tbl.Timestamps(ColStartTime)
	require.NoError(t, err)
	assert.Equal(t, "2017-01-01 09:07:57", FormatValue(starts, 0))

	genders, err := tbl.Strings(ColGender)
	require.NoError(t, err)
	assert.True(t, genders.IsNull(3))

	_, err = tbl.Strings(ColTripDuration)
	assert.Error(t, err, "duration is not a text column")
}

func TestLoad_WashingtonHasNoOptionalColumns(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteTripCSV(t, dir, "washington.csv", testutil.WashingtonHeader, testutil.SampleTrips())

	loader, mem := newTestLoader(t, dir)
	defer mem.AssertSize(t, 0)

	tbl, err := loader.Load(context.Background(), selection(config.Washington, "all", "all"))
	require.NoError(t, err)
	defer tbl.Release()

	assert.True(t, tbl.HasColumn(ColUserType))
	assert.False(t, tbl.HasColumn(ColGender))
	assert.False(t, tbl.HasColumn(ColBirthYear))

	_, err = tbl.Strings(ColGender)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string)
	}{
		{
			name:  "missing file",
			setup: func(t *testing.T, dir string) {},
		},
		{
			name: "empty file",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "chicago.csv"), nil, 0o644))
			},
		},
		{
			name: "missing required column",
			setup: func(t *testing.T, dir string) {
				header := []string{"", "Start Time", "End Time", "Start Station", "End Station", "User Type"}
				testutil.WriteTripCSV(t, dir, "chicago.csv", header, nil)
			},
		},
		{
			name: "unparsable start time",
			setup: func(t *testing.T, dir string) {
				trips := testutil.SampleTrips()
				trips[2].Start = "03/03/2017 5pm"
				testutil.WriteTripCSV(t, dir, "chicago.csv", testutil.TripHeader, trips)
			},
		},
		{
			name: "missing start time",
			setup: func(t *testing.T, dir string) {
				trips := testutil.SampleTrips()
				trips[0].Start = ""
				testutil.WriteTripCSV(t, dir, "chicago.csv", testutil.TripHeader, trips)
			},
		},
		{
			name: "non numeric duration",
			setup: func(t *testing.T, dir string) {
				trips := testutil.SampleTrips()
				trips[1].Duration = "ten minutes"
				testutil.WriteTripCSV(t, dir, "chicago.csv", testutil.TripHeader, trips)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.setup(t, dir)

			loader, mem := newTestLoader(t, dir)
			defer mem.AssertSize(t, 0)

			tbl, err := loader.Load(context.Background(), selection(config.Chicago, "all", "all"))
			defer tbl.Release()
			require.Error(t, err)
			assert.Nil(t, tbl)
			assert.ErrorIs(t, err, apperrors.ErrDataLoad)

			appErr, ok := err.(*apperrors.AppError)
			require.True(t, ok)
			assert.Equal(t, filepath.Join(dir, "chicago.csv"), appErr.Context["file"])
		})
	}
}

func TestLoad_ShortRowsPadWithNulls(t *testing.T) {
	dir := t.TempDir()
	content := "\"\",Start Time,End Time,Trip Duration,Start Station,End Station,User Type\n" +
		"0,2017-01-01 09:07:57,2017-01-01 09:20:53,776,A\n" +
		"1,2017-01-02 10:00:00,2017-01-02 10:05:00,300,B,C,Customer,extra\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chicago.csv"), []byte(content), 0o644))

	loader, mem := newTestLoader(t, dir)
	defer mem.AssertSize(t, 0)

	tbl, err := loader.Load(context.Background(), selection(config.Chicago, "all", "all"))
	require.NoError(t, err)
	defer tbl.Release()

	require.Equal(t, 2, tbl.NumRows())

	ends, err := tbl.Strings(ColEndStation)
	require.NoError(t, err)
	users, err := tbl.Strings(ColUserType)
	require.NoError(t, err)

	assert.True(t, ends.IsNull(0))
	assert.True(t, users.IsNull(0))
	assert.Equal(t, "C", ends.Value(1))
	assert.Equal(t, "Customer", users.Value(1), "cells past the header are ignored")
}

func TestLoad_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	trips := make([]testutil.Trip, 0, cancelCheckInterval)
	sample := testutil.SampleTrips()[0]
	for i := 0; i < cancelCheckInterval; i++ {
		trips = append(trips, sample)
	}
	testutil.WriteTripCSV(t, dir, "chicago.csv", testutil.TripHeader, trips)

	loader, mem := newTestLoader(t, dir)
	defer mem.AssertSize(t, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loader.Load(ctx, selection(config.Chicago, "all", "all"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseStartTime(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"2017-06-23 15:09:32", "2017-06-23 15:09:32", false},
		{"2017-06-23T15:09:32", "2017-06-23 15:09:32", false},
		{"2017-06-23 15:09", "2017-06-23 15:09:00", false},
		{"2017-06-23", "2017-06-23 00:00:00", false},
		{"23/06/2017", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseStartTime(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format(TimeLayout))
		})
	}
}

func TestNormalizeHeader(t *testing.T) {
	got := normalizeHeader([]string{"\ufeff", " Start Time ", "User Type"})
	assert.Equal(t, []string{"", "Start Time", "User Type"}, got)
	assert.Empty(t, missingColumns([]string{"Start Time", "Start Station", "End Station", "Trip Duration", "User Type"}))
	assert.Equal(t, []string{"Trip Duration"}, missingColumns([]string{"Start Time", "Start Station", "End Station", "User Type"}))
}

package analytics

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"bikeshare/internal/config"
	"bikeshare/internal/dataset"
	"bikeshare/internal/infrastructure"
)

// Summary collects the results of every reporter for one table.
type Summary struct {
	Time      TimeStats
	Stations  StationStats
	Durations DurationStats
	Users     UserStats
}

// Reporter prints statistics blocks for a table.
type Reporter struct {
	out    io.Writer
	logger *slog.Logger
	now    func() time.Time
}

// NewReporter creates a Reporter writing to out.
func NewReporter(out io.Writer, logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{
		out:    out,
		logger: logger.With(slog.String("component", "analytics")),
		now:    time.Now,
	}
}

// Run prints all four reports in order and returns what they computed.
// It stops at the first error.
func (r *Reporter) Run(ctx context.Context, tbl *dataset.Table) (_ *Summary, err error) {
	ctx, span := infrastructure.StartSpan(ctx, "reports",
		attribute.Int("rows", tbl.NumRows()))
	defer func() { infrastructure.EndSpan(span, err) }()

	var summary Summary

	if summary.Time, err = r.TimeReport(ctx, tbl); err != nil {
		return nil, err
	}
	if summary.Stations, err = r.StationReport(ctx, tbl); err != nil {
		return nil, err
	}
	if summary.Durations, err = r.DurationReport(ctx, tbl); err != nil {
		return nil, err
	}
	if summary.Users, err = r.UserReport(ctx, tbl); err != nil {
		return nil, err
	}

	return &summary, nil
}

// TimeReport prints the most frequent times of travel.
func (r *Reporter) TimeReport(ctx context.Context, tbl *dataset.Table) (TimeStats, error) {
	start := r.header("Calculating the most frequent times of travel...")

	stats, err := ComputeTimeStats(ctx, tbl)
	if err != nil {
		return TimeStats{}, err
	}

	fmt.Fprintf(r.out, "The most popular month is %s\n", stats.Month)
	fmt.Fprintf(r.out, "The most popular day of the week is %s\n", stats.Day)
	fmt.Fprintf(r.out, "The most common start hour is %d\n", stats.StartHour)

	r.footer(ctx, "time", start)
	return stats, nil
}

// StationReport prints the most popular stations and trip.
func (r *Reporter) StationReport(ctx context.Context, tbl *dataset.Table) (StationStats, error) {
	start := r.header("Calculating the most popular stations and trip...")

	stats, err := ComputeStationStats(ctx, tbl)
	if err != nil {
		return StationStats{}, err
	}

	fmt.Fprintf(r.out, "The most popular start station is %s\n", stats.StartStation)
	fmt.Fprintf(r.out, "The most popular end station is %s\n", stats.EndStation)
	fmt.Fprintf(r.out, "The most popular trip is %s\n", stats.Trip)

	r.footer(ctx, "station", start)
	return stats, nil
}

// DurationReport prints total and average travel time.
func (r *Reporter) DurationReport(ctx context.Context, tbl *dataset.Table) (DurationStats, error) {
	start := r.header("Calculating trip duration...")

	stats, err := ComputeDurationStats(ctx, tbl)
	if err != nil {
		return DurationStats{}, err
	}

	fmt.Fprintf(r.out, "Total travel time is %s\n", FormatSeconds(stats.Total))
	fmt.Fprintf(r.out, "Average travel time is %s\n", FormatMean(stats.Mean))

	r.footer(ctx, "duration", start)
	return stats, nil
}

// UserReport prints user type, gender and birth year breakdowns.
func (r *Reporter) UserReport(ctx context.Context, tbl *dataset.Table) (UserStats, error) {
	start := r.header("Calculating user stats...")

	stats, err := ComputeUserStats(ctx, tbl)
	if err != nil {
		return UserStats{}, err
	}

	fmt.Fprintln(r.out, "Counts of user types are ")
	writeCounts(r.out, stats.UserTypes)

	if stats.HasGender() {
		fmt.Fprintln(r.out, "Counts of genders are ")
		writeCounts(r.out, stats.Genders)
	} else {
		fmt.Fprintln(r.out, "\nNo gender data to show")
	}

	if stats.HasBirthYears() {
		mostCommon, earliest, latest := "nan", "nan", "nan"
		if b := stats.BirthYears; b != nil {
			mostCommon, earliest, latest = strconv.Itoa(b.MostCommon), strconv.Itoa(b.Earliest), strconv.Itoa(b.Latest)
		}
		fmt.Fprintf(r.out, "Most common year of birth is %s\n", mostCommon)
		fmt.Fprintf(r.out, "Earliest year of birth is %s\n", earliest)
		fmt.Fprintf(r.out, "Most recent year of birth is %s\n", latest)
	} else {
		fmt.Fprintln(r.out, "\nNo birth year data to show")
	}

	r.footer(ctx, "user", start)
	return stats, nil
}

func (r *Reporter) header(title string) time.Time {
	fmt.Fprintf(r.out, "\n%s\n\n", title)
	return r.now()
}

func (r *Reporter) footer(ctx context.Context, report string, start time.Time) {
	elapsed := r.now().Sub(start)
	fmt.Fprintf(r.out, "\nThis took %s seconds.\n", strconv.FormatFloat(elapsed.Seconds(), 'f', -1, 64))
	fmt.Fprintln(r.out, Separator())

	r.logger.DebugContext(ctx, "report printed",
		slog.String("report", report),
		slog.Duration("elapsed", elapsed))
}

// Separator is the line printed after each block of output.
func Separator() string {
	return strings.Repeat("-", config.SeparatorLen)
}

// FormatSeconds renders a duration in seconds without rounding.
func FormatSeconds(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatMean renders an average like FormatSeconds but always with a
// fractional part, so 200 prints as 200.0.
func FormatMean(v float64) string {
	s := FormatSeconds(v)
	if math.IsNaN(v) || math.IsInf(v, 0) || strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}

func writeCounts(w io.Writer, counts []Count[string]) {
	width := 0
	for _, c := range counts {
		width = max(width, len(c.Value))
	}
	for _, c := range counts {
		fmt.Fprintf(w, "%-*s    %d\n", width, c.Value, c.Count)
	}
}

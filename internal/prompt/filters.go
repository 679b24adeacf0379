package prompt

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bikeshare/internal/config"
	apperrors "bikeshare/internal/errors"
)

const (
	greeting       = "Hello! Let's explore some US bikeshare data!"
	cityQuestion   = "Please enter a city (Chicago, New York City, or Washington): "
	monthQuestion  = "Please enter a month (January, February, March, April, May, or June) or type all for all months: "
	dayQuestion    = "Please enter a day (Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday) or type all for all days: "
	restartMessage = "\nWould you like to restart? Enter yes or no."
)

var (
	validate = validator.New()

	monthTag = "oneof=" + strings.Join(append(append([]string{}, config.Months...), config.FilterAll), " ")
	dayTag   = "oneof=" + strings.Join(append([]string{config.FilterAll}, config.Days...), " ")
)

// Selection is the validated (city, month, day) triple for one session.
// Month and Day hold lower-case names or "all".
type Selection struct {
	City  config.City `validate:"required,oneof=chicago new_york_city washington"`
	Month string      `validate:"required,oneof=january february march april may june all"`
	Day   string      `validate:"required,oneof=all sunday monday tuesday wednesday thursday friday saturday"`
}

// Validate checks every field against its enumeration.
func (s Selection) Validate() error {
	if err := validate.Struct(s); err != nil {
		return apperrors.NewValidationError("invalid filter selection", err)
	}
	return nil
}

// FilterMonth reports whether a month filter is active.
func (s Selection) FilterMonth() bool { return s.Month != config.FilterAll }

// FilterDay reports whether a day filter is active.
func (s Selection) FilterDay() bool { return s.Day != config.FilterAll }

// MonthTitle returns the month in the form used by the derived Month column.
func (s Selection) MonthTitle() string { return titleCase(s.Month) }

// DayTitle returns the day in the form used by the derived Day column.
func (s Selection) DayTitle() string { return titleCase(s.Day) }

// String renders the selection for logs and file names.
func (s Selection) String() string {
	return fmt.Sprintf("%s/%s/%s", s.City, s.Month, s.Day)
}

// LogValue implements slog.LogValuer.
func (s Selection) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("city", string(s.City)),
		slog.String("month", s.Month),
		slog.String("day", s.Day))
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// ParseMonth accepts a month name from january to june, or "all", in any case.
func ParseMonth(input string) (string, bool) {
	return parseEnum(input, monthTag)
}

// ParseDay accepts a weekday name or "all", in any case.
func ParseDay(input string) (string, bool) {
	return parseEnum(input, dayTag)
}

// ParseCityAnswer accepts a city name in any case, with spaces or underscores.
func ParseCityAnswer(input string) (string, bool) {
	city, ok := config.ParseCity(input)
	return string(city), ok
}

func parseEnum(input, tag string) (string, bool) {
	value := strings.ToLower(strings.TrimSpace(input))
	if value == "" {
		return "", false
	}
	if err := validate.Var(value, tag); err != nil {
		return "", false
	}
	return value, true
}

// AskFilters greets the user and collects a validated Selection.
func (p *Prompter) AskFilters(ctx context.Context) (Selection, error) {
	fmt.Fprintln(p.out, greeting)

	city, err := p.Choose(ctx, cityQuestion, ParseCityAnswer)
	if err != nil {
		return Selection{}, err
	}
	month, err := p.Choose(ctx, monthQuestion, ParseMonth)
	if err != nil {
		return Selection{}, err
	}
	day, err := p.Choose(ctx, dayQuestion, ParseDay)
	if err != nil {
		return Selection{}, err
	}

	fmt.Fprintln(p.out, strings.Repeat("-", config.SeparatorLen))

	sel := Selection{City: config.City(city), Month: month, Day: day}
	if err := sel.Validate(); err != nil {
		return Selection{}, err
	}

	p.logger.InfoContext(ctx, "filters selected", slog.Any("selection", sel))
	return sel, nil
}

// AskRestart asks whether to start another session.
func (p *Prompter) AskRestart(ctx context.Context) (bool, error) {
	return p.Confirm(ctx, restartMessage)
}

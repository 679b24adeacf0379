package dataset

import (
	"context"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/compute"

	apperrors "bikeshare/internal/errors"
	"bikeshare/internal/prompt"
)

// Filter returns the rows of t whose derived Month and Day match the active
// filters of sel. A row is kept only when every active filter matches. The
// result is a new table owned by the caller; t is left untouched.
func Filter(ctx context.Context, t *Table, sel prompt.Selection) (*Table, error) {
	if !sel.FilterMonth() && !sel.FilterDay() {
		t.rec.Retain()
		return newTable(t.rec, t.mem, t.city, t.source), nil
	}

	months, err := t.Strings(ColMonth)
	if err != nil {
		return nil, err
	}
	days, err := t.Strings(ColDay)
	if err != nil {
		return nil, err
	}

	month, day := sel.MonthTitle(), sel.DayTitle()

	mb := array.NewBooleanBuilder(t.mem)
	defer mb.Release()
	mb.Reserve(t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		keep := true
		if sel.FilterMonth() && months.Value(i) != month {
			keep = false
		}
		if sel.FilterDay() && days.Value(i) != day {
			keep = false
		}
		mb.Append(keep)
	}
	mask := mb.NewArray()
	defer mask.Release()

	rec, err := compute.FilterRecordBatch(compute.WithAllocator(ctx, t.mem), t.rec, mask, compute.DefaultFilterOptions())
	if err != nil {
		return nil, apperrors.NewDataLoadError("failed to filter trips", err).
			WithContext("file", t.source).
			WithContext("selection", sel.String())
	}

	return newTable(rec, t.mem, t.city, t.source), nil
}

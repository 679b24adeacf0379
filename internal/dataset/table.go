package dataset

import (
	"fmt"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"bikeshare/internal/config"
	apperrors "bikeshare/internal/errors"
)

// TimeLayout is how Start Time values are rendered back to text.
const TimeLayout = "2006-01-02 15:04:05"

// Table is a loaded, filtered trip log held as one Arrow record.
// A Table is owned by a single session iteration and must be released
// when that iteration ends.
type Table struct {
	rec    arrow.Record
	mem    memory.Allocator
	city   config.City
	source string
}

func newTable(rec arrow.Record, mem memory.Allocator, city config.City, source string) *Table {
	return &Table{rec: rec, mem: mem, city: city, source: source}
}

// City returns the city the table was loaded for.
func (t *Table) City() config.City { return t.city }

// NumRows returns the number of trips in the table.
func (t *Table) NumRows() int {
	if t == nil || t.rec == nil {
		return 0
	}
	return int(t.rec.NumRows())
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool { return t.NumRows() == 0 }

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	if t == nil || t.rec == nil {
		return false
	}
	return t.rec.Schema().HasField(name)
}

// Release frees the memory held by the table. It is safe to call on nil.
func (t *Table) Release() {
	if t == nil || t.rec == nil {
		return
	}
	t.rec.Release()
	t.rec = nil
}

func (t *Table) column(name string) (arrow.Array, error) {
	if !t.HasColumn(name) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("column %q not found", name), nil).
			WithContext("source", t.source)
	}
	idx := t.rec.Schema().FieldIndices(name)[0]
	return t.rec.Column(idx), nil
}

// Strings returns the text column name.
func (t *Table) Strings(name string) (*array.String, error) {
	col, err := t.column(name)
	if err != nil {
		return nil, err
	}
	arr, ok := col.(*array.String)
	if !ok {
		return nil, fmt.Errorf("column %q is %s, not utf8", name, col.DataType())
	}
	return arr, nil
}

// Floats returns the float64 column name.
func (t *Table) Floats(name string) (*array.Float64, error) {
	col, err := t.column(name)
	if err != nil {
		return nil, err
	}
	arr, ok := col.(*array.Float64)
	if !ok {
		return nil, fmt.Errorf("column %q is %s, not float64", name, col.DataType())
	}
	return arr, nil
}

// Timestamps returns the timestamp column name.
func (t *Table) Timestamps(name string) (*array.Timestamp, error) {
	col, err := t.column(name)
	if err != nil {
		return nil, err
	}
	arr, ok := col.(*array.Timestamp)
	if !ok {
		return nil, fmt.Errorf("column %q is %s, not timestamp", name, col.DataType())
	}
	return arr, nil
}

// Field is one column of a rendered row.
type Field struct {
	Name  string
	Value string
}

// Row renders row i as name/value pairs, skipping the first column
// (the unlabeled row index carried over from the source file).
func (t *Table) Row(i int) []Field {
	ncols := int(t.rec.NumCols())
	fields := make([]Field, 0, ncols)
	for c := 1; c < ncols; c++ {
		fields = append(fields, Field{
			Name:  t.rec.ColumnName(c),
			Value: FormatValue(t.rec.Column(c), i),
		})
	}
	return fields
}

// FormatValue renders one cell. Missing values render as "nan".
func FormatValue(arr arrow.Array, i int) string {
	if arr.IsNull(i) {
		return "nan"
	}
	switch a := arr.(type) {
	case *array.String:
		return a.Value(i)
	case *array.Float64:
		return strconv.FormatFloat(a.Value(i), 'f', -1, 64)
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return a.Value(i).ToTime(unit).Format(TimeLayout)
	default:
		return a.ValueStr(i)
	}
}

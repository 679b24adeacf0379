package testutil

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// TripHeader is the column layout of the chicago and new_york_city files.
// The first column is the unlabeled row index.
var TripHeader = []string{
	"", "Start Time", "End Time", "Trip Duration", "Start Station",
	"End Station", "User Type", "Gender", "Birth Year",
}

// WashingtonHeader is the column layout of washington.csv, which has no
// Gender or Birth Year columns.
var WashingtonHeader = TripHeader[:7]

// Trip is one fixture row. Fields are raw CSV text; empty means missing.
type Trip struct {
	Start     string
	End       string
	Duration  string
	From      string
	To        string
	UserType  string
	Gender    string
	BirthYear string
}

func (tr Trip) record(index int, width int) []string {
	rec := []string{
		strconv.Itoa(index), tr.Start, tr.End, tr.Duration,
		tr.From, tr.To, tr.UserType, tr.Gender, tr.BirthYear,
	}
	return rec[:width]
}

// WriteTripCSV writes trips under dir/name using header and returns the path.
func WriteTripCSV(t *testing.T, dir, name string, header []string, trips []Trip) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		t.Fatalf("write fixture header: %v", err)
	}
	for i, tr := range trips {
		if err := w.Write(tr.record(i, len(header))); err != nil {
			t.Fatalf("write fixture row %d: %v", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("flush fixture: %v", err)
	}
	return path
}

// SampleTrips returns seven trips spread over January and March 2017.
// Row 3 has no gender or birth year.
func SampleTrips() []Trip {
	return []Trip{
		{"2017-01-01 09:07:57", "2017-01-01 09:20:53", "776", "Canal St & Adams St", "Clinton St & Madison St", "Subscriber", "Male", "1992"},
		{"2017-01-01 09:22:00", "2017-01-01 09:30:00", "480", "Canal St & Adams St", "Streeter Dr & Grand Ave", "Customer", "Female", "1984"},
		{"2017-03-03 17:05:00", "2017-03-03 17:15:00", "600", "Streeter Dr & Grand Ave", "Clinton St & Madison St", "Subscriber", "Male", "1992"},
		{"2017-03-10 17:45:30", "2017-03-10 18:00:00", "870", "Lake Shore Dr & Monroe St", "Streeter Dr & Grand Ave", "Customer", "", ""},
		{"2017-03-12 08:00:00", "2017-03-12 08:10:00", "600", "Canal St & Adams St", "Clinton St & Madison St", "Subscriber", "Female", "1975"},
		{"2017-03-17 17:30:00", "2017-03-17 17:40:00", "600", "Streeter Dr & Grand Ave", "Canal St & Adams St", "Subscriber", "Male", "1968"},
		{"2017-01-15 12:00:00", "2017-01-15 12:30:00", "1800", "Canal St & Adams St", "Clinton St & Madison St", "Subscriber", "Male", "1999"},
	}
}

// Answers returns a reader that yields each line as one prompt answer.
func Answers(lines ...string) io.Reader {
	if len(lines) == 0 {
		return strings.NewReader("")
	}
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

package analytics

import (
	"strconv"
)

// Metric is one named result line of a report.
type Metric struct {
	Name  string
	Value string
}

// Section groups the metrics of one report.
type Section struct {
	Name    string
	Metrics []Metric
}

// Sections flattens the summary into named metric lists, one per report,
// in the order the reports are printed.
func (s *Summary) Sections() []Section {
	users := Section{Name: "Users"}
	for _, c := range s.Users.UserTypes {
		users.Metrics = append(users.Metrics, Metric{"User Type: " + c.Value, strconv.Itoa(c.Count)})
	}
	for _, c := range s.Users.Genders {
		users.Metrics = append(users.Metrics, Metric{"Gender: " + c.Value, strconv.Itoa(c.Count)})
	}
	if b := s.Users.BirthYears; b != nil {
		users.Metrics = append(users.Metrics,
			Metric{"Most Common Birth Year", strconv.Itoa(b.MostCommon)},
			Metric{"Earliest Birth Year", strconv.Itoa(b.Earliest)},
			Metric{"Most Recent Birth Year", strconv.Itoa(b.Latest)},
		)
	}

	return []Section{
		{
			Name: "Times",
			Metrics: []Metric{
				{"Most Popular Month", s.Time.Month},
				{"Most Popular Day", s.Time.Day},
				{"Most Common Start Hour", strconv.Itoa(s.Time.StartHour)},
			},
		},
		{
			Name: "Stations",
			Metrics: []Metric{
				{"Most Popular Start Station", s.Stations.StartStation},
				{"Most Popular End Station", s.Stations.EndStation},
				{"Most Popular Trip", s.Stations.Trip},
			},
		},
		{
			Name: "Durations",
			Metrics: []Metric{
				{"Total Travel Time (s)", FormatSeconds(s.Durations.Total)},
				{"Average Travel Time (s)", FormatMean(s.Durations.Mean)},
				{"Trips", strconv.Itoa(s.Durations.Trips)},
			},
		},
		users,
	}
}

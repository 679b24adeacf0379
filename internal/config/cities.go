package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// City identifies one of the datasets the tool can explore.
type City string

const (
	Chicago     City = "chicago"
	NewYorkCity City = "new_york_city"
	Washington  City = "washington"
)

// KnownCities lists every supported city in prompt order.
var KnownCities = []City{Chicago, NewYorkCity, Washington}

// DefaultCityFiles maps each city to the file name of its trip log.
func DefaultCityFiles() map[City]string {
	return map[City]string{
		Chicago:     "chicago.csv",
		NewYorkCity: "new_york_city.csv",
		Washington:  "washington.csv",
	}
}

// DisplayName returns the human readable name, e.g. "New York City".
func (c City) DisplayName() string {
	words := strings.Split(string(c), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ParseCity normalizes user input ("New York City", "CHICAGO ") to a City.
// The second return value is false when the input names no known city.
func ParseCity(input string) (City, bool) {
	norm := strings.ToLower(strings.TrimSpace(input))
	norm = strings.Join(strings.Fields(norm), "_")
	for _, c := range KnownCities {
		if string(c) == norm {
			return c, true
		}
	}
	return "", false
}

// Cities is the immutable city -> data file mapping resolved at startup.
// It is built once by NewCities and handed to the dataset loader.
type Cities struct {
	files map[City]string
}

// NewCities resolves every known city to a path under dataDir.
// Entries in overrides replace the default file name for that city;
// an override may be absolute.
func NewCities(dataDir string, overrides map[string]string) (*Cities, error) {
	files := make(map[City]string, len(KnownCities))
	for city, name := range DefaultCityFiles() {
		files[city] = name
	}

	for key, name := range overrides {
		city, ok := ParseCity(key)
		if !ok {
			return nil, fmt.Errorf("unknown city %q in data file overrides", key)
		}
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("empty data file for city %q", key)
		}
		files[city] = name
	}

	for city, name := range files {
		if !filepath.IsAbs(name) {
			files[city] = filepath.Join(dataDir, name)
		}
	}

	return &Cities{files: files}, nil
}

// Lookup returns the data file for city.
func (c *Cities) Lookup(city City) (string, bool) {
	path, ok := c.files[city]
	return path, ok
}

// Names returns the configured cities sorted by identifier.
func (c *Cities) Names() []City {
	names := make([]City, 0, len(c.files))
	for city := range c.files {
		names = append(names, city)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

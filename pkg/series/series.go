// Package series defines the volume reading data model and the synthetic
// generator that produces the dev and prod environment series.
package series

import "time"

// Components is the closed set of component labels a reading may carry.
var Components = []string{
	"ComponentA",
	"ComponentB",
	"ComponentC",
	"ComponentD",
	"ComponentE",
}

// Reading is one timestamped volume observation. Component is empty when
// the reading carries no label.
type Reading struct {
	Timestamp time.Time `json:"timestamp"`
	Volume    int       `json:"volume"`
	Component string    `json:"component,omitempty"`
}

// Series is a named, ordered collection of readings for one environment.
// Readings are in generation order (chronological) and are never mutated
// after generation.
type Series struct {
	Name     string    `json:"name"`
	Readings []Reading `json:"readings"`
}

// Len returns the number of readings in the series.
func (s Series) Len() int { return len(s.Readings) }

// Empty reports whether the series has no readings.
func (s Series) Empty() bool { return len(s.Readings) == 0 }

// Filter returns the subsequence of readings whose label equals component,
// preserving order. Readings without a label never match, so filtering by
// the empty string yields an empty series. The result shares no backing
// array with the receiver.
func (s Series) Filter(component string) Series {
	out := Series{Name: s.Name}
	for _, r := range s.Readings {
		if r.Component != "" && r.Component == component {
			out.Readings = append(out.Readings, r)
		}
	}
	return out
}

// Timestamps returns the timestamps of all readings in order.
func (s Series) Timestamps() []time.Time {
	ts := make([]time.Time, len(s.Readings))
	for i, r := range s.Readings {
		ts[i] = r.Timestamp
	}
	return ts
}

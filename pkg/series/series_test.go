package series

import (
	"reflect"
	"testing"
	"time"
)

func TestSeries_Filter(t *testing.T) {
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	s := Series{
		Name: "dev",
		Readings: []Reading{
			{Timestamp: base, Volume: 100, Component: "ComponentA"},
			{Timestamp: base.Add(30 * time.Minute), Volume: 200},
			{Timestamp: base.Add(60 * time.Minute), Volume: 300, Component: "ComponentB"},
			{Timestamp: base.Add(90 * time.Minute), Volume: 400, Component: "ComponentA"},
		},
	}

	tests := []struct {
		name        string
		component   string
		wantVolumes []int
	}{
		{
			name:        "matches preserve order",
			component:   "ComponentA",
			wantVolumes: []int{100, 400},
		},
		{
			name:        "single match",
			component:   "ComponentB",
			wantVolumes: []int{300},
		},
		{
			name:        "no match",
			component:   "ComponentC",
			wantVolumes: nil,
		},
		{
			name:        "empty string never matches unlabeled readings",
			component:   "",
			wantVolumes: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Filter(tt.component)

			if got.Name != s.Name {
				t.Errorf("Name = %q, want %q", got.Name, s.Name)
			}

			var volumes []int
			for _, r := range got.Readings {
				volumes = append(volumes, r.Volume)
				if r.Component != tt.component {
					t.Errorf("reading has component %q, want %q", r.Component, tt.component)
				}
			}
			if !reflect.DeepEqual(volumes, tt.wantVolumes) {
				t.Errorf("volumes = %v, want %v", volumes, tt.wantVolumes)
			}
		})
	}
}

func TestSeries_Filter_Idempotent(t *testing.T) {
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	s := Series{
		Name: "prod",
		Readings: []Reading{
			{Timestamp: base, Volume: 110, Component: "ComponentC"},
			{Timestamp: base.Add(time.Hour), Volume: 120, Component: "ComponentD"},
			{Timestamp: base.Add(2 * time.Hour), Volume: 130, Component: "ComponentC"},
		},
	}

	once := s.Filter("ComponentC")
	twice := once.Filter("ComponentC")

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("filtering twice changed the result:\nonce  = %+v\ntwice = %+v", once, twice)
	}
}

func TestSeries_Filter_DoesNotMutateOriginal(t *testing.T) {
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	s := Series{
		Name: "dev",
		Readings: []Reading{
			{Timestamp: base, Volume: 100, Component: "ComponentA"},
			{Timestamp: base.Add(time.Hour), Volume: 200, Component: "ComponentB"},
		},
	}

	filtered := s.Filter("ComponentA")
	if len(filtered.Readings) != 1 {
		t.Fatalf("len(filtered) = %d, want 1", len(filtered.Readings))
	}
	filtered.Readings[0].Volume = -1

	if s.Readings[0].Volume != 100 {
		t.Error("filtering mutated the original series")
	}
}

func TestSeries_Timestamps(t *testing.T) {
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	s := Series{
		Readings: []Reading{
			{Timestamp: base},
			{Timestamp: base.Add(30 * time.Minute)},
		},
	}

	got := s.Timestamps()
	want := []time.Time{base, base.Add(30 * time.Minute)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Timestamps() = %v, want %v", got, want)
	}
}

func TestSeries_EmptyAndLen(t *testing.T) {
	var s Series
	if !s.Empty() {
		t.Error("zero-value series should be empty")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}

	s.Readings = append(s.Readings, Reading{Volume: 42})
	if s.Empty() {
		t.Error("series with one reading should not be empty")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

package view

import (
	"errors"
	"testing"
	"time"

	"github.com/akeene/volscope/pkg/series"
)

func labeledSeries(name, component string, minutes ...int) series.Series {
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	s := series.Series{Name: name}
	for i, m := range minutes {
		s.Readings = append(s.Readings, series.Reading{
			Timestamp: base.Add(time.Duration(m) * time.Minute),
			Volume:    100 + i,
			Component: component,
		})
	}
	return s
}

func TestNewComponentView_NoData(t *testing.T) {
	dev := labeledSeries("dev", "ComponentA", 0, 30)
	prod := labeledSeries("prod", "ComponentB", 0, 30)

	_, err := NewComponentView(dev, prod, "ComponentC", 20)
	if !errors.Is(err, ErrNoData) {
		t.Errorf("NewComponentView() error = %v, want ErrNoData", err)
	}
}

func TestNewComponentView_UnlabeledNeverMatches(t *testing.T) {
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	dev := series.Series{Name: "dev", Readings: []series.Reading{
		{Timestamp: base, Volume: 100}, // no label
	}}
	prod := series.Series{Name: "prod"}

	_, err := NewComponentView(dev, prod, "", 20)
	if !errors.Is(err, ErrNoData) {
		t.Errorf("NewComponentView(\"\") error = %v, want ErrNoData", err)
	}
}

func TestNewComponentView_MergesBothSeries(t *testing.T) {
	// Dev and prod overlap at minute 30; the merged sequence must be the
	// distinct union in ascending order.
	dev := labeledSeries("dev", "ComponentA", 0, 30, 60)
	prod := labeledSeries("prod", "ComponentA", 30, 90)

	v, err := NewComponentView(dev, prod, "ComponentA", 20)
	if err != nil {
		t.Fatalf("NewComponentView() error = %v", err)
	}

	if v.Component != "ComponentA" {
		t.Errorf("Component = %q, want %q", v.Component, "ComponentA")
	}
	if v.Dev.Len() != 3 || v.Prod.Len() != 2 {
		t.Errorf("filtered lengths = (%d, %d), want (3, 2)", v.Dev.Len(), v.Prod.Len())
	}
	if got := v.Window().Count(); got != 4 {
		t.Errorf("merged timestamp count = %d, want 4", got)
	}
}

func TestNewComponentView_OneSidedData(t *testing.T) {
	dev := labeledSeries("dev", "ComponentA", 0, 30, 60)
	prod := labeledSeries("prod", "ComponentB", 0, 30)

	v, err := NewComponentView(dev, prod, "ComponentA", 20)
	if err != nil {
		t.Fatalf("NewComponentView() error = %v", err)
	}

	if v.Dev.Len() != 3 {
		t.Errorf("dev points = %d, want 3", v.Dev.Len())
	}
	if !v.Prod.Empty() {
		t.Errorf("prod points = %d, want 0", v.Prod.Len())
	}
	if got := v.Window().Count(); got != 3 {
		t.Errorf("merged timestamp count = %d, want 3", got)
	}
}

func TestComponentView_ControlRange(t *testing.T) {
	// 30 distinct merged timestamps with a window of 20 gives offsets [0, 10].
	minutes := make([]int, 30)
	for i := range minutes {
		minutes[i] = i * 30
	}
	dev := labeledSeries("dev", "ComponentA", minutes...)
	prod := series.Series{Name: "prod"}

	v, err := NewComponentView(dev, prod, "ComponentA", 20)
	if err != nil {
		t.Fatalf("NewComponentView() error = %v", err)
	}

	if got := v.Window().MaxOffset(); got != 10 {
		t.Errorf("MaxOffset() = %d, want 10", got)
	}
}

func TestComponentView_Scroll(t *testing.T) {
	minutes := make([]int, 30)
	for i := range minutes {
		minutes[i] = i
	}
	dev := labeledSeries("dev", "ComponentA", minutes...)
	v, err := NewComponentView(dev, series.Series{Name: "prod"}, "ComponentA", 20)
	if err != nil {
		t.Fatalf("NewComponentView() error = %v", err)
	}
	ts := v.Window().Timestamps()

	start, end := v.Scroll(5)
	if !start.Equal(ts[5]) || !end.Equal(ts[24]) {
		t.Errorf("Scroll(5) = [%v, %v], want [%v, %v]", start, end, ts[5], ts[24])
	}

	// Same value again yields the same range.
	start2, end2 := v.Scroll(5)
	if !start2.Equal(start) || !end2.Equal(end) {
		t.Error("Scroll is not idempotent for a repeated value")
	}

	// Scrolling never touches the underlying data.
	if v.Dev.Len() != 30 {
		t.Errorf("dev points after scroll = %d, want 30", v.Dev.Len())
	}
}

func TestComponentView_Snapshot(t *testing.T) {
	dev := labeledSeries("dev", "ComponentA", 0, 30, 60)
	prod := labeledSeries("prod", "ComponentA", 30, 90)

	v, err := NewComponentView(dev, prod, "ComponentA", 2)
	if err != nil {
		t.Fatalf("NewComponentView() error = %v", err)
	}
	v.Scroll(1)

	snap := v.Snapshot()
	ts := v.Window().Timestamps()

	if snap.Component != "ComponentA" {
		t.Errorf("Component = %q, want %q", snap.Component, "ComponentA")
	}
	if snap.Offset != 1 {
		t.Errorf("Offset = %d, want 1", snap.Offset)
	}
	if snap.MaxOffset != 2 {
		t.Errorf("MaxOffset = %d, want 2", snap.MaxOffset)
	}
	if snap.WindowSize != 2 {
		t.Errorf("WindowSize = %d, want 2", snap.WindowSize)
	}
	if !snap.Start.Equal(ts[1]) || !snap.End.Equal(ts[2]) {
		t.Errorf("range = [%v, %v], want [%v, %v]", snap.Start, snap.End, ts[1], ts[2])
	}
	if snap.DevPoints != 3 || snap.ProdPoints != 2 {
		t.Errorf("points = (%d, %d), want (3, 2)", snap.DevPoints, snap.ProdPoints)
	}
}

func TestNewComponentView_DefaultWindowSize(t *testing.T) {
	dev := labeledSeries("dev", "ComponentA", 0, 30)
	v, err := NewComponentView(dev, series.Series{Name: "prod"}, "ComponentA", 0)
	if err != nil {
		t.Fatalf("NewComponentView() error = %v", err)
	}
	if got := v.Window().Size(); got != DefaultWindowSize {
		t.Errorf("window size = %d, want default %d", got, DefaultWindowSize)
	}
}

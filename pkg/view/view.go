package view

import (
	"errors"
	"time"

	"github.com/akeene/volscope/pkg/series"
)

// Terminal, non-fatal outcomes of building a component view. Both mean the
// requested component has nothing to plot; callers report them and skip
// rendering entirely.
var (
	ErrNoData       = errors.New("no data available for component")
	ErrNoTimestamps = errors.New("no valid timestamps for component")
)

// ComponentView holds the dev and prod readings filtered to one component,
// plus the scroll window over the merged timestamps of both.
type ComponentView struct {
	Component string
	Dev       series.Series
	Prod      series.Series

	window *Window
}

// Snapshot is a point-in-time description of the view's window state.
type Snapshot struct {
	Component  string    `json:"component"`
	Offset     int       `json:"offset"`
	MaxOffset  int       `json:"maxOffset"`
	WindowSize int       `json:"windowSize"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	DevPoints  int       `json:"devPoints"`
	ProdPoints int       `json:"prodPoints"`
}

// NewComponentView filters dev and prod to the readings labeled component
// and builds the scroll window over the merged, sorted, de-duplicated union
// of their timestamps.
//
// Returns ErrNoData when neither series has a matching reading, and
// ErrNoTimestamps when matches exist but yield an empty timestamp set. The
// second guard is unreachable through this constructor (a matching reading
// always carries a timestamp) but is kept so an empty sequence can never
// turn into an index panic downstream.
func NewComponentView(dev, prod series.Series, component string, windowSize int) (*ComponentView, error) {
	devF := dev.Filter(component)
	prodF := prod.Filter(component)

	if devF.Empty() && prodF.Empty() {
		return nil, ErrNoData
	}

	merged := MergeTimestamps(devF.Timestamps(), prodF.Timestamps())
	if len(merged) == 0 {
		return nil, ErrNoTimestamps
	}

	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	w, err := NewWindow(merged, windowSize)
	if err != nil {
		return nil, err
	}

	return &ComponentView{
		Component: component,
		Dev:       devF,
		Prod:      prodF,
		window:    w,
	}, nil
}

// Window returns the scroll window.
func (v *ComponentView) Window() *Window { return v.window }

// Scroll applies the single state transition of the view: clamp offset into
// the valid range, move the window, and return the new visible bounds.
func (v *ComponentView) Scroll(offset int) (start, end time.Time) {
	v.window.SetOffset(offset)
	return v.window.Bounds()
}

// Snapshot returns the current window state for the HTTP API.
func (v *ComponentView) Snapshot() Snapshot {
	start, end := v.window.Bounds()
	return Snapshot{
		Component:  v.Component,
		Offset:     v.window.Offset(),
		MaxOffset:  v.window.MaxOffset(),
		WindowSize: v.window.Size(),
		Start:      start,
		End:        end,
		DevPoints:  v.Dev.Len(),
		ProdPoints: v.Prod.Len(),
	}
}

// Package view implements the windowed component viewer: filtering the dev
// and prod series to a single component and exposing a fixed-size scroll
// window over the merged, sorted sequence of their timestamps.
package view

import (
	"errors"
	"sort"
	"sync"
	"time"
)

// DefaultWindowSize is the number of timestamps visible at once.
const DefaultWindowSize = 20

// Window is a fixed-size contiguous view over a sorted sequence of distinct
// timestamps. The offset is the only mutable state; it is clamped so that
// 0 <= offset <= max(0, len(timestamps)-size) always holds. Safe for
// concurrent use.
type Window struct {
	timestamps []time.Time
	size       int

	mu     sync.Mutex
	offset int
}

// NewWindow creates a window of the given size over timestamps, which must
// be sorted ascending and non-empty. The initial offset is 0.
func NewWindow(timestamps []time.Time, size int) (*Window, error) {
	if len(timestamps) == 0 {
		return nil, errors.New("window: no timestamps")
	}
	if size <= 0 {
		return nil, errors.New("window: size must be positive")
	}
	return &Window{timestamps: timestamps, size: size}, nil
}

// Size returns the window size.
func (w *Window) Size() int { return w.size }

// Count returns the number of timestamps the window scrolls over.
func (w *Window) Count() int { return len(w.timestamps) }

// Timestamps returns the sorted timestamp sequence the window scrolls over.
// Callers must not modify the returned slice.
func (w *Window) Timestamps() []time.Time { return w.timestamps }

// MaxOffset returns the largest valid offset: max(0, count-size). When the
// sequence fits inside the window the only valid offset is 0.
func (w *Window) MaxOffset() int {
	m := len(w.timestamps) - w.size
	if m < 0 {
		return 0
	}
	return m
}

// Offset returns the current offset.
func (w *Window) Offset() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.offset
}

// SetOffset moves the window start to v, clamped into [0, MaxOffset], and
// returns the applied offset. Setting the same value twice is a no-op; the
// underlying timestamps are never touched.
func (w *Window) SetOffset(v int) int {
	if v < 0 {
		v = 0
	}
	if m := w.MaxOffset(); v > m {
		v = m
	}
	w.mu.Lock()
	w.offset = v
	w.mu.Unlock()
	return v
}

// Bounds returns the visible range [timestamps[offset],
// timestamps[min(offset+size, count)-1]] for the current offset.
func (w *Window) Bounds() (start, end time.Time) {
	w.mu.Lock()
	offset := w.offset
	w.mu.Unlock()

	hi := offset + w.size
	if hi > len(w.timestamps) {
		hi = len(w.timestamps)
	}
	return w.timestamps[offset], w.timestamps[hi-1]
}

// MergeTimestamps returns the sorted union of the given timestamp sequences
// with duplicate instants removed.
func MergeTimestamps(lists ...[]time.Time) []time.Time {
	var merged []time.Time
	for _, list := range lists {
		merged = append(merged, list...)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Before(merged[j])
	})

	out := merged[:0]
	for i, ts := range merged {
		if i == 0 || !ts.Equal(out[len(out)-1]) {
			out = append(out, ts)
		}
	}
	return out
}

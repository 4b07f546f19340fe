// Package calendar implements the time-interval math the scheduling engine is
// built on: half-open intervals, overlap and containment checks, interval set
// merge/intersection/difference and fixed-step slot enumeration.
package calendar

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	// ErrInvalidInterval возвращается при попытке построить интервал с end <= start
	ErrInvalidInterval = errors.New("calendar: invalid interval, end must be after start")
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// New constructs an interval, rejecting end <= start. Endpoints are never
// silently swapped.
func New(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, fmt.Errorf("%w: [%s, %s)", ErrInvalidInterval,
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return Interval{Start: start, End: end}, nil
}

// FromStart constructs an interval from a start instant and a positive duration.
func FromStart(start time.Time, d time.Duration) (Interval, error) {
	return New(start, start.Add(d))
}

// Duration returns the interval length.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// IsZero reports whether the interval is the zero value.
func (i Interval) IsZero() bool {
	return i.Start.IsZero() && i.End.IsZero()
}

// Overlaps reports whether two half-open intervals share any instant.
// Touching endpoints do not overlap: [9:00, 10:00) and [10:00, 11:00) are disjoint.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Contains reports whether inner lies entirely within i.
// An interval contains itself.
func (i Interval) Contains(inner Interval) bool {
	return !inner.Start.Before(i.Start) && !inner.End.After(i.End)
}

// Intersect returns the overlapping portion of two intervals.
// The second return value is false when the intervals are disjoint.
func Intersect(a, b Interval) (Interval, bool) {
	start := a.Start
	if b.Start.After(start) {
		start = b.Start
	}
	end := a.End
	if b.End.Before(end) {
		end = b.End
	}
	if !end.After(start) {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}

// Merge coalesces overlapping and adjacent intervals into a minimal ordered
// set. The input slice is not modified.
func Merge(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return []Interval{}
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := make([]Interval, 0, len(sorted))
	current := sorted[0]

	for _, next := range sorted[1:] {
		// Adjacent intervals ([9,10) + [10,11)) merge into one.
		if !next.Start.After(current.End) {
			if next.End.After(current.End) {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}

	return append(merged, current)
}

// Subtract removes every busy interval from the free set and returns the
// remaining free intervals, ordered. Both inputs may be unordered.
func Subtract(free []Interval, busy []Interval) []Interval {
	remaining := Merge(free)
	if len(busy) == 0 {
		return remaining
	}

	for _, b := range Merge(busy) {
		next := make([]Interval, 0, len(remaining)+1)
		for _, f := range remaining {
			if !f.Overlaps(b) {
				next = append(next, f)
				continue
			}
			if b.Start.After(f.Start) {
				next = append(next, Interval{Start: f.Start, End: b.Start})
			}
			if b.End.Before(f.End) {
				next = append(next, Interval{Start: b.End, End: f.End})
			}
		}
		remaining = next
	}

	return remaining
}

// Slots enumerates candidate booking intervals of the given length inside the
// window, advancing by step. Only slots that fit entirely within the window are
// returned. The result is rebuilt on every call; there is no shared cursor.
func Slots(window Interval, step, length time.Duration) []Interval {
	if step <= 0 || length <= 0 {
		return []Interval{}
	}

	slots := make([]Interval, 0)
	for start := window.Start; !start.Add(length).After(window.End); start = start.Add(step) {
		slots = append(slots, Interval{Start: start, End: start.Add(length)})
	}
	return slots
}

// SlotsIn enumerates slots across every window in the free set.
func SlotsIn(free []Interval, step, length time.Duration) []Interval {
	slots := make([]Interval, 0)
	for _, window := range free {
		slots = append(slots, Slots(window, step, length)...)
	}
	return slots
}

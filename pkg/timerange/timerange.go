// Package timerange provides interval math over minute-of-day offsets.
// A Range is half-open: [Start, End). Two back-to-back ranges share a
// boundary minute without overlapping.
package timerange

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the exclusive upper bound for End.
const MinutesPerDay = 24 * 60

// Range is a time-of-day interval in minutes from midnight.
type Range struct {
	Start int `json:"start_minute"`
	End   int `json:"end_minute"`
}

// New builds a Range without validating it; use Valid on untrusted input.
func New(start, end int) Range {
	return Range{Start: start, End: end}
}

// Valid reports whether the range satisfies 0 <= Start < End <= 1440.
func (r Range) Valid() bool {
	return r.Start >= 0 && r.Start < r.End && r.End <= MinutesPerDay
}

// Duration returns the range length in minutes.
func (r Range) Duration() int {
	return r.End - r.Start
}

// Overlaps reports whether a and b share at least one minute.
// Half-open semantics: a.End == b.Start is not an overlap.
func Overlaps(a, b Range) bool {
	return a.Start < b.End && b.Start < a.End
}

// Contains reports whether inner lies entirely within outer.
func Contains(outer, inner Range) bool {
	return inner.Start >= outer.Start && inner.End <= outer.End
}

// Shift returns the range moved by delta minutes.
func (r Range) Shift(delta int) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}

// Clock renders the range as "HH:MM-HH:MM".
func (r Range) Clock() string {
	return FormatMinute(r.Start) + "-" + FormatMinute(r.End)
}

func (r Range) String() string { return r.Clock() }

// FormatMinute renders a minute offset as "HH:MM".
func FormatMinute(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ParseMinute parses "HH:MM" into a minute offset.
func ParseMinute(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if hour < 0 || hour > 24 || minute < 0 || minute > 59 || hour*60+minute > MinutesPerDay {
		return 0, fmt.Errorf("time %q out of day bounds", s)
	}
	return hour*60 + minute, nil
}

// ParseClock parses "HH:MM-HH:MM" into a Range.
func ParseClock(s string) (Range, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return Range{}, fmt.Errorf("invalid range %q: want HH:MM-HH:MM", s)
	}
	start, err := ParseMinute(strings.TrimSpace(parts[0]))
	if err != nil {
		return Range{}, err
	}
	end, err := ParseMinute(strings.TrimSpace(parts[1]))
	if err != nil {
		return Range{}, err
	}
	r := Range{Start: start, End: end}
	if !r.Valid() {
		return Range{}, fmt.Errorf("range %q is empty or inverted", s)
	}
	return r, nil
}

// AlignedStarts returns every start minute s within working such that
// s is aligned to step relative to working.Start and [s, s+duration]
// still fits inside working. Ascending order. Returns nil when duration
// or step are non-positive or nothing fits.
func AlignedStarts(working Range, step, duration int) []int {
	if step <= 0 || duration <= 0 {
		return nil
	}
	var starts []int
	for s := working.Start; s+duration <= working.End; s += step {
		starts = append(starts, s)
	}
	return starts
}

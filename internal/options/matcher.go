package options

import (
	"reflect"

	"time-picker/internal/timeofday"
)

// NoIndex marks an unset index in an Outcome.
const NoIndex = -1

// Outcome is the result of matching a value against an option list.
type Outcome struct {
	MatchedIndex int
	ActiveIndex  int
}

// NoOutcome has neither a matched nor an active option.
func NoOutcome() Outcome {
	return Outcome{MatchedIndex: NoIndex, ActiveIndex: NoIndex}
}

// HasMatch reports whether an option equals the value.
func (o Outcome) HasMatch() bool { return o.MatchedIndex != NoIndex }

// HasActive reports whether an option is highlighted.
func (o Outcome) HasActive() bool { return o.ActiveIndex != NoIndex }

// Resolved remembers the last lazy option that was selected and the time it produced.
type Resolved struct {
	Metadata any
	Time     timeofday.TimeOfDay
}

// Match finds the option equal to value, or else the nearest one to value
// (or to startTime when there is no value). Ties go to the earlier option.
// Lazy options only match when last shows they produced value.
func Match(value, startTime *timeofday.TimeOfDay, opts []Option, last *Resolved) Outcome {
	out := NoOutcome()

	if value != nil {
		if i := exact(*value, opts, last); i != NoIndex {
			out.MatchedIndex = i
			return out
		}
		out.ActiveIndex = nearest(*value, opts)
		return out
	}

	if startTime != nil {
		out.ActiveIndex = nearest(*startTime, opts)
	}
	return out
}

func exact(v timeofday.TimeOfDay, opts []Option, last *Resolved) int {
	for i, o := range opts {
		if o.Time != nil {
			if *o.Time == v {
				return i
			}
			continue
		}
		if last != nil && last.Time == v && reflect.DeepEqual(last.Metadata, o.Metadata) {
			return i
		}
	}
	return NoIndex
}

func nearest(v timeofday.TimeOfDay, opts []Option) int {
	best := NoIndex
	var bestDistance timeofday.TimeOfDay
	for i, o := range opts {
		if o.Time == nil || o.Disabled {
			continue
		}
		d := *o.Time - v
		if d < 0 {
			d = -d
		}
		if best == NoIndex || d < bestDistance {
			best, bestDistance = i, d
		}
	}
	return best
}

// Direction is a keyboard navigation request within the list.
type Direction int

const (
	Next Direction = iota
	Previous
	First
	Last
)

// Step moves the active option. From no active option, Next starts at the
// first entry and Previous at the last. Movement wraps and disabled entries
// are skipped; when every entry is disabled nothing becomes active.
func Step(current Outcome, opts []Option, dir Direction) Outcome {
	out := current
	n := len(opts)
	if n == 0 {
		out.ActiveIndex = NoIndex
		return out
	}

	from := current.ActiveIndex
	if from == NoIndex {
		from = current.MatchedIndex
	}

	var start, delta int
	switch dir {
	case First:
		start, delta = 0, 1
	case Last:
		start, delta = n-1, -1
	case Next:
		start, delta = 0, 1
		if from != NoIndex {
			start = (from + 1) % n
		}
	case Previous:
		start, delta = n-1, -1
		if from != NoIndex {
			start = (from - 1 + n) % n
		}
	}

	out.ActiveIndex = NoIndex
	for i := 0; i < n; i++ {
		idx := ((start+i*delta)%n + n) % n
		if !opts[idx].Disabled {
			out.ActiveIndex = idx
			break
		}
	}
	return out
}

package options

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"time-picker/internal/timeofday"
)

func ptr(h, m int) *timeofday.TimeOfDay { v := hm(h, m); return &v }

func hourly() []Option {
	return Generate(Params{ShowHourOptions: true})
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name      string
		value     *timeofday.TimeOfDay
		startTime *timeofday.TimeOfDay
		expected  Outcome
	}{
		{"exact match", ptr(8, 0), nil, Outcome{MatchedIndex: 8, ActiveIndex: NoIndex}},
		{"nearest below", ptr(8, 23), nil, Outcome{MatchedIndex: NoIndex, ActiveIndex: 8}},
		{"nearest above", ptr(8, 31), nil, Outcome{MatchedIndex: NoIndex, ActiveIndex: 9}},
		{"tie goes to earlier", ptr(8, 30), nil, Outcome{MatchedIndex: NoIndex, ActiveIndex: 8}},
		{"value wins over start time", ptr(8, 0), ptr(15, 0), Outcome{MatchedIndex: 8, ActiveIndex: NoIndex}},
		{"start time when no value", nil, ptr(15, 10), Outcome{MatchedIndex: NoIndex, ActiveIndex: 15}},
		{"exact start time is only active", nil, ptr(15, 0), Outcome{MatchedIndex: NoIndex, ActiveIndex: 15}},
		{"nothing", nil, nil, NoOutcome()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Match(tt.value, tt.startTime, hourly(), nil))
		})
	}
}

func TestMatch_NeverBothForAValue(t *testing.T) {
	opts := Generate(Params{ShowHourOptions: true, Step: 45})
	for v := timeofday.TimeOfDay(0); v < timeofday.Day; v += 7 * timeofday.Minute {
		value := v
		out := Match(&value, nil, opts, nil)
		assert.False(t, out.HasMatch() && out.HasActive(), "value %s", v)
		assert.True(t, out.HasMatch() || out.HasActive(), "value %s", v)
	}
}

func TestMatch_SkipsDisabledForActive(t *testing.T) {
	opts := hourly()
	opts[8].Disabled = true

	out := Match(ptr(8, 10), nil, opts, nil)
	assert.Equal(t, 9, out.ActiveIndex)
}

func TestMatch_LazyOptions(t *testing.T) {
	opts := Generate(Params{
		ShowNow:         true,
		ShowHourOptions: true,
		CustomOptions:   []CustomOption{{Label: "Lunch", Value: map[string]int{"h": 12}}},
	})

	t.Run("unresolved lazy options never match", func(t *testing.T) {
		out := Match(ptr(12, 17), nil, opts, nil)
		assert.False(t, out.HasMatch())
		assert.Equal(t, 2+12, out.ActiveIndex)
	})

	t.Run("custom option matches its last resolution", func(t *testing.T) {
		last := &Resolved{Metadata: map[string]int{"h": 12}, Time: hm(12, 17)}
		out := Match(ptr(12, 17), nil, opts, last)
		assert.Equal(t, 1, out.MatchedIndex)
	})

	t.Run("now matches its last resolution", func(t *testing.T) {
		last := &Resolved{Metadata: NowMetadata, Time: hm(12, 17)}
		out := Match(ptr(12, 17), nil, opts, last)
		assert.Equal(t, 0, out.MatchedIndex)
	})

	t.Run("stale resolution does not match", func(t *testing.T) {
		last := &Resolved{Metadata: NowMetadata, Time: hm(9, 17)}
		out := Match(ptr(12, 17), nil, opts, last)
		assert.False(t, out.HasMatch())
	})
}

func TestMatch_EmptyList(t *testing.T) {
	assert.Equal(t, NoOutcome(), Match(ptr(8, 0), ptr(8, 0), nil, nil))
}

func TestStep(t *testing.T) {
	opts := Generate(Params{ShowHourOptions: true, Step: 360}) // 00, 06, 12, 18

	tests := []struct {
		name     string
		current  Outcome
		dir      Direction
		expected int
	}{
		{"next from none starts at first", NoOutcome(), Next, 0},
		{"previous from none starts at last", NoOutcome(), Previous, 3},
		{"next advances", Outcome{NoIndex, 1}, Next, 2},
		{"next wraps", Outcome{NoIndex, 3}, Next, 0},
		{"previous wraps", Outcome{NoIndex, 0}, Previous, 3},
		{"next from matched", Outcome{2, NoIndex}, Next, 3},
		{"first", Outcome{NoIndex, 2}, First, 0},
		{"last", Outcome{NoIndex, 1}, Last, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Step(tt.current, opts, tt.dir).ActiveIndex)
		})
	}
}

func TestStep_SkipsDisabled(t *testing.T) {
	opts := Generate(Params{ShowHourOptions: true, Step: 360})
	opts[0].Disabled = true
	opts[1].Disabled = true

	assert.Equal(t, 2, Step(NoOutcome(), opts, Next).ActiveIndex)
	assert.Equal(t, 2, Step(NoOutcome(), opts, First).ActiveIndex)
	assert.Equal(t, 3, Step(Outcome{NoIndex, 2}, opts, Next).ActiveIndex)
	assert.Equal(t, 2, Step(Outcome{NoIndex, 3}, opts, Next).ActiveIndex)
	assert.Equal(t, 3, Step(Outcome{NoIndex, 2}, opts, Previous).ActiveIndex)
}

func TestStep_AllDisabledOrEmpty(t *testing.T) {
	opts := Generate(Params{ShowHourOptions: true, Step: 720})
	for i := range opts {
		opts[i].Disabled = true
	}
	assert.Equal(t, NoIndex, Step(NoOutcome(), opts, Next).ActiveIndex)
	assert.Equal(t, NoIndex, Step(NoOutcome(), nil, Previous).ActiveIndex)
}

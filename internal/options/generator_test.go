package options

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"time-picker/internal/clock"
	apperrors "time-picker/internal/errors"
	"time-picker/internal/timeofday"
	"time-picker/internal/validation"
)

func hm(h, m int) timeofday.TimeOfDay { return timeofday.New(h, m, 0) }

func times(opts []Option) []timeofday.TimeOfDay {
	var out []timeofday.TimeOfDay
	for _, o := range opts {
		if o.Time != nil {
			out = append(out, *o.Time)
		}
	}
	return out
}

func TestGenerate_DefaultHourOptions(t *testing.T) {
	opts := Generate(Params{ShowHourOptions: true})

	require.Len(t, opts, 24)
	assert.Equal(t, "12:00 AM", opts[0].Label)
	assert.Equal(t, "11:00 PM", opts[23].Label)
	assert.Equal(t, "23:00", opts[23].Metadata)
}

func TestGenerate_Precedence(t *testing.T) {
	resolver := func(v any) (int64, error) { return int64(hm(12, 0)), nil }
	opts := Generate(Params{
		ShowNow:         true,
		ShowHourOptions: true,
		Step:            720,
		CustomOptions: []CustomOption{
			{Label: "Noon", Value: "noon", ToMilliseconds: resolver},
			{Label: "Lunch", Value: 42, ToMilliseconds: resolver},
		},
	})

	require.Len(t, opts, 5)
	assert.True(t, opts[0].IsNow())
	assert.Equal(t, NowLabel, opts[0].Label)
	assert.Equal(t, NowMetadata, opts[0].Metadata)

	assert.True(t, opts[1].IsCustom)
	assert.Nil(t, opts[1].Time)
	assert.Equal(t, "Noon", opts[1].Label)
	assert.Equal(t, "noon", opts[1].Metadata)
	assert.Equal(t, 42, opts[2].Metadata)

	assert.Equal(t, []timeofday.TimeOfDay{hm(0, 0), hm(12, 0)}, times(opts))
}

func TestGenerate_Empty(t *testing.T) {
	assert.Empty(t, Generate(Params{}))

	min, max := hm(10, 0), hm(9, 0)
	assert.Empty(t, Generate(Params{
		ShowHourOptions: true,
		Constraints:     validation.NewConstraints(&min, &max),
	}))
}

func TestGenerate_Bounds(t *testing.T) {
	min, max := hm(8, 0), hm(15, 0)
	start := hm(8, 15)

	tests := []struct {
		name     string
		params   Params
		expected []timeofday.TimeOfDay
	}{
		{
			name: "min and max inclusive",
			params: Params{ShowHourOptions: true, Step: 180,
				Constraints: validation.NewConstraints(&min, &max)},
			expected: []timeofday.TimeOfDay{hm(8, 0), hm(11, 0), hm(14, 0)},
		},
		{
			name: "start time anchors the grid",
			params: Params{ShowHourOptions: true, Step: 60, StartTime: &start,
				Constraints: validation.NewConstraints(&min, &max)},
			expected: []timeofday.TimeOfDay{hm(8, 15), hm(9, 15), hm(10, 15), hm(11, 15), hm(12, 15), hm(13, 15), hm(14, 15)},
		},
		{
			name: "start time before min keeps its phase",
			params: Params{ShowHourOptions: true, Step: 120, StartTime: func() *timeofday.TimeOfDay { v := hm(1, 30); return &v }(),
				Constraints: validation.NewConstraints(&min, &max)},
			expected: []timeofday.TimeOfDay{hm(9, 30), hm(11, 30), hm(13, 30)},
		},
		{
			name:     "max at end of day",
			params:   Params{ShowHourOptions: true, Step: 600},
			expected: []timeofday.TimeOfDay{hm(0, 0), hm(10, 0), hm(20, 0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, times(Generate(tt.params)))
		})
	}
}

func TestGenerate_StrictlyIncreasingWithinBounds(t *testing.T) {
	min, max := hm(3, 7), hm(21, 50)
	for _, step := range []int{1, 7, 15, 45, 60, 95, 1440} {
		p := Params{ShowHourOptions: true, Step: step, Constraints: validation.NewConstraints(&min, &max)}
		first, last := Bounds(p)
		got := times(Generate(p))

		for i, v := range got {
			assert.GreaterOrEqual(t, v, first)
			assert.LessOrEqual(t, v, last)
			if i > 0 {
				assert.Greater(t, v, got[i-1], "step %d", step)
			}
		}
	}
}

func TestGenerate_RestrictedDisabled(t *testing.T) {
	opts := Generate(Params{
		ShowHourOptions: true,
		Constraints:     validation.NewConstraints(nil, nil, hm(8, 0), hm(10, 0)),
	})

	for _, o := range opts {
		expected := *o.Time == hm(8, 0) || *o.Time == hm(10, 0)
		assert.Equal(t, expected, o.Disabled, o.Label)
	}
}

func TestGenerate_24HourLabels(t *testing.T) {
	opts := Generate(Params{ShowHourOptions: true, Format: timeofday.Format{Use24Hour: true}})
	assert.Equal(t, "13:00", opts[13].Label)
}

func TestResolve(t *testing.T) {
	mock := clock.NewMock(time.Date(2024, 3, 1, 14, 32, 45, 0, time.Local))
	fixed := hm(9, 0)

	got, err := Resolve(Option{Time: &fixed}, mock, false)
	require.NoError(t, err)
	assert.Equal(t, fixed, got)

	got, err = Resolve(Option{Label: NowLabel, Metadata: NowMetadata}, mock, false)
	require.NoError(t, err)
	assert.Equal(t, hm(14, 32), got)

	got, err = Resolve(Option{Label: NowLabel, Metadata: NowMetadata}, mock, true)
	require.NoError(t, err)
	assert.Equal(t, timeofday.New(14, 32, 45), got)

	got, err = Resolve(Option{IsCustom: true, Metadata: "x", Resolver: func(v any) (int64, error) {
		assert.Equal(t, "x", v)
		return int64(hm(1, 20)), nil
	}}, mock, false)
	require.NoError(t, err)
	assert.Equal(t, hm(1, 20), got)
}

func TestResolve_ContractViolations(t *testing.T) {
	mock := clock.NewMock(time.Now())
	boom := errors.New("boom")

	tests := []struct {
		name   string
		option Option
		cause  error
	}{
		{"missing resolver", Option{Label: "Custom", IsCustom: true}, nil},
		{"resolver error", Option{Label: "Custom", IsCustom: true, Resolver: func(any) (int64, error) { return 0, boom }}, boom},
		{"negative result", Option{IsCustom: true, Resolver: func(any) (int64, error) { return -1, nil }}, nil},
		{"past end of day", Option{IsCustom: true, Resolver: func(any) (int64, error) { return int64(timeofday.Day), nil }}, nil},
		{"not lazy and not custom", Option{Label: "odd"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.option, mock, false)
			require.Error(t, err)
			assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeContract))
			if tt.cause != nil {
				assert.ErrorIs(t, err, tt.cause)
			}
		})
	}
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueService/pkg/types"
)

func timeRange(t *testing.T, start, end string) Schedule {
	t.Helper()
	s, err := NewTimeRangeSchedule(types.TimeString(start), types.TimeString(end))
	require.NoError(t, err)
	return s
}

func sessionSchedule(t *testing.T, slot SessionSlot) Schedule {
	t.Helper()
	s, err := NewSessionSchedule(slot)
	require.NoError(t, err)
	return s
}

func TestSessionSlot_Interval(t *testing.T) {
	tests := []struct {
		slot  SessionSlot
		start int
		end   int
	}{
		{SessionMorning, 480, 720},
		{SessionAfternoon, 780, 1020},
		{SessionEvening, 1080, 1320},
		{SessionFullDay, 480, 1320},
	}

	for _, tt := range tests {
		t.Run(string(tt.slot), func(t *testing.T) {
			interval, err := tt.slot.Interval()
			require.NoError(t, err)
			assert.Equal(t, tt.start, interval.Start)
			assert.Equal(t, tt.end, interval.End)
		})
	}
}

func TestSessionSlot_Interval_Unknown(t *testing.T) {
	_, err := SessionSlot("LUNCH").Interval()
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestNewTimeRangeSchedule(t *testing.T) {
	t.Run("valid range", func(t *testing.T) {
		s, err := NewTimeRangeSchedule("09:30", "11:00")
		require.NoError(t, err)
		assert.True(t, s.HasTimeRange())
		assert.False(t, s.HasSession())
	})

	t.Run("start equals end", func(t *testing.T) {
		_, err := NewTimeRangeSchedule("09:30", "09:30")
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("start after end", func(t *testing.T) {
		_, err := NewTimeRangeSchedule("14:00", "09:30")
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := NewTimeRangeSchedule("9am", "11:00")
		assert.ErrorIs(t, err, types.ErrInvalidTimeFormat)
	})
}

func TestSchedule_Interval(t *testing.T) {
	t.Run("precise time range", func(t *testing.T) {
		interval, err := timeRange(t, "11:00", "13:00").Interval()
		require.NoError(t, err)
		assert.Equal(t, Interval{Start: 660, End: 780}, interval)
	})

	t.Run("legacy session", func(t *testing.T) {
		interval, err := sessionSchedule(t, SessionMorning).Interval()
		require.NoError(t, err)
		assert.Equal(t, Interval{Start: 480, End: 720}, interval)
	})

	t.Run("time range takes priority over session", func(t *testing.T) {
		evening := SessionEvening
		s := timeRange(t, "10:00", "11:00")
		s.Session = &evening

		interval, err := s.Interval()
		require.NoError(t, err)
		assert.Equal(t, Interval{Start: 600, End: 660}, interval)
	})

	t.Run("empty schedule is unresolvable", func(t *testing.T) {
		_, err := Schedule{}.Interval()
		assert.ErrorIs(t, err, ErrUnresolvableSchedule)
	})

	t.Run("one-sided time range is unresolvable", func(t *testing.T) {
		start := types.TimeString("10:00")
		_, err := Schedule{StartTime: &start}.Interval()
		assert.ErrorIs(t, err, ErrUnresolvableSchedule)
	})

	t.Run("malformed stored time is unresolvable", func(t *testing.T) {
		start := types.TimeString("25:99")
		end := types.TimeString("26:00")
		_, err := Schedule{StartTime: &start, EndTime: &end}.Interval()
		assert.ErrorIs(t, err, ErrUnresolvableSchedule)
	})
}

func TestInterval_Overlaps(t *testing.T) {
	morning := Interval{Start: 480, End: 720}

	tests := []struct {
		name     string
		a, b     Interval
		overlaps bool
	}{
		{"partial overlap", Interval{660, 780}, morning, true},
		{"contained", Interval{500, 600}, morning, true},
		{"containing", Interval{400, 800}, morning, true},
		{"identical", morning, morning, true},
		{"back-to-back after", Interval{720, 780}, morning, false},
		{"back-to-back before", Interval{400, 480}, morning, false},
		{"disjoint", Interval{780, 1020}, morning, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, tt.a.Overlaps(tt.b))
			// Пересечение симметрично
			assert.Equal(t, tt.overlaps, tt.b.Overlaps(tt.a))
		})
	}
}

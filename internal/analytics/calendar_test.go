package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuqie6/taskboard/internal/schema"
)

func TestCalendarDurationDays(t *testing.T) {
	cases := []struct {
		name           string
		start, end     time.Time
		ignoreWeekends bool
		want           int
	}{
		{"mon-fri ignoring weekends", date(2024, 3, 4), date(2024, 3, 8), true, 5},
		{"full week ignoring weekends", date(2024, 3, 4), date(2024, 3, 10), true, 5},
		{"full week with weekends", date(2024, 3, 4), date(2024, 3, 10), false, 7},
		{"two weeks ignoring weekends", date(2024, 3, 4), date(2024, 3, 15), true, 10},
		{"single day", date(2024, 3, 4), date(2024, 3, 4), false, 1},
		{"weekend only", date(2024, 3, 9), date(2024, 3, 10), true, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cal := NewCalendar(sprint(tc.start, tc.end, tc.ignoreWeekends), nil)
			assert.Equal(t, tc.want, cal.DurationDays())
		})
	}
}

func TestCalendarExcludeDaysDoNotReduceDuration(t *testing.T) {
	excluded := []schema.SprintExcludeDay{{SprintID: 1, Day: at(2024, 3, 6, 12)}}
	cal := NewCalendar(sprint(date(2024, 3, 4), date(2024, 3, 8), true), excluded)

	assert.Equal(t, 5, cal.DurationDays())
	assert.False(t, cal.IsPlannedDay(date(2024, 3, 6)))
	assert.Len(t, cal.PlannedDays(), 4)
}

func TestCalendarIsPlannedDay(t *testing.T) {
	withWeekends := NewCalendar(sprint(date(2024, 3, 4), date(2024, 3, 10), false), nil)
	noWeekends := NewCalendar(sprint(date(2024, 3, 4), date(2024, 3, 10), true), nil)

	saturday := date(2024, 3, 9)
	assert.True(t, withWeekends.IsPlannedDay(saturday))
	assert.False(t, noWeekends.IsPlannedDay(saturday))
	assert.False(t, noWeekends.IsPlannedDay(date(2024, 3, 10)))
	assert.True(t, noWeekends.IsPlannedDay(date(2024, 3, 4)))
	// 时分秒不影响判定
	assert.False(t, noWeekends.IsPlannedDay(at(2024, 3, 9, 23)))
}

func TestDaysIsRestartableAndFinite(t *testing.T) {
	seq := Days(date(2024, 3, 4), at(2024, 3, 6, 18))

	collect := func() []time.Time {
		var out []time.Time
		for d := range seq {
			out = append(out, d)
		}
		return out
	}

	first := collect()
	second := collect()
	require.Len(t, first, 3)
	assert.Equal(t, first, second)
	assert.Equal(t, date(2024, 3, 6), first[2])

	var partial []time.Time
	for d := range seq {
		partial = append(partial, d)
		break
	}
	assert.Len(t, partial, 1)

	empty := 0
	for range Days(date(2024, 3, 6), date(2024, 3, 4)) {
		empty++
	}
	assert.Zero(t, empty)
}

func TestDayTruncatesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	local := time.Date(2024, 3, 5, 3, 0, 0, 0, loc) // 2024-03-04 19:00 UTC
	assert.Equal(t, date(2024, 3, 4), Day(local))
	assert.Equal(t, date(2024, 3, 4).UnixMilli(), Timestamp(local))
}

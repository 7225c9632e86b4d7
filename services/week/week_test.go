package week

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var wib = time.FixedZone("WIB", 7*60*60)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, wib)
}

func TestWeekNumberOf(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{name: "jan 1 on monday", date: date(2024, time.January, 1), want: 1},
		{name: "first saturday", date: date(2024, time.January, 6), want: 1},
		{name: "first sunday starts week 2", date: date(2024, time.January, 7), want: 2},
		{name: "jan 1 on wednesday", date: date(2025, time.January, 1), want: 1},
		{name: "sunday after wednesday start", date: date(2025, time.January, 5), want: 2},
		{name: "jan 1 on sunday", date: date(2023, time.January, 1), want: 1},
		{name: "saturday after sunday start", date: date(2023, time.January, 7), want: 1},
		{name: "leap year march", date: date(2024, time.March, 4), want: 10},
		{name: "leap year last day", date: date(2024, time.December, 31), want: 53},
		{name: "late evening counts as same day", date: time.Date(2024, time.January, 6, 23, 59, 0, 0, wib), want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekNumberOf(tt.date))
		})
	}
}

func TestWeekRangeOf(t *testing.T) {
	r := WeekRangeOf(10, 2024, wib)
	assert.Equal(t, date(2024, time.March, 4), r.Start)
	assert.Equal(t, date(2024, time.March, 10), r.End)
	assert.Equal(t, time.Monday, r.Start.Weekday())
	assert.Equal(t, time.Sunday, r.End.Weekday())

	first := WeekRangeOf(1, 2023, wib)
	assert.Equal(t, date(2023, time.January, 2), first.Start)
}

// mondayOnOrBefore shifts jan1 + 7(week-1) back to its Monday.
func mondayOnOrBefore(week, year int) time.Time {
	simple := date(year, time.January, 1).AddDate(0, 0, (week-1)*7)
	return simple.AddDate(0, 0, -((int(simple.Weekday()) + 6) % 7))
}

func TestWeekRangeMatchesMondayShiftUnlessJan1IsSunday(t *testing.T) {
	for year := 2000; year <= 2040; year++ {
		sundayStart := date(year, time.January, 1).Weekday() == time.Sunday
		for w := 1; w <= MaxWeek; w++ {
			got := WeekRangeOf(w, year, wib).Start
			want := mondayOnOrBefore(w, year)
			if sundayStart {
				assert.Equal(t, want.AddDate(0, 0, 7), got, "year %d week %d", year, w)
			} else {
				assert.Equal(t, want, got, "year %d week %d", year, w)
			}
		}
	}
	assert.Equal(t, date(2023, time.January, 2), WeekRangeOf(1, 2023, wib).Start)
	assert.Equal(t, date(2024, time.January, 1), WeekRangeOf(1, 2024, wib).Start)
}

func TestWeekRangeEndIsSixDaysAfterStart(t *testing.T) {
	for year := 2020; year <= 2030; year++ {
		for w := 1; w <= MaxWeek; w++ {
			r := WeekRangeOf(w, year, wib)
			if !assert.Equal(t, r.Start.AddDate(0, 0, 6), r.End, "week %d of %d", w, year) {
				return
			}
			assert.Equal(t, time.Monday, r.Start.Weekday())
		}
	}
}

func TestWeekRoundTrip(t *testing.T) {
	for year := 2020; year <= 2030; year++ {
		for d := date(year, time.January, 1); d.Year() == year; d = d.AddDate(0, 0, 1) {
			w := WeekNumberOf(d)
			r := WeekRangeOf(w, d.Year(), wib)
			if d.Weekday() == time.Sunday {
				// A platform week opens on Sunday, the displayed range on the next day.
				if !assert.Equal(t, r.Start, d.AddDate(0, 0, 1), "sunday %s", d.Format("2006-01-02")) {
					return
				}
				continue
			}
			if !assert.True(t, r.Contains(d), "%s not in week %d (%s..%s)",
				d.Format("2006-01-02"), w, r.Start.Format("2006-01-02"), r.End.Format("2006-01-02")) {
				return
			}
		}
	}
}

func TestContainsIgnoresTimeOfDay(t *testing.T) {
	r := WeekRangeOf(10, 2024, wib)
	assert.True(t, r.Contains(time.Date(2024, time.March, 10, 23, 59, 0, 0, wib)))
	assert.True(t, r.Contains(time.Date(2024, time.March, 4, 0, 0, 0, 0, wib)))
	assert.False(t, r.Contains(time.Date(2024, time.March, 11, 0, 0, 0, 0, wib)))
	assert.False(t, r.Contains(time.Date(2024, time.March, 3, 23, 59, 0, 0, wib)))
}

func TestCalculatorCurrentWeek(t *testing.T) {
	c := NewCalculator(wib)
	c.now = func() time.Time { return time.Date(2024, time.March, 3, 18, 30, 0, 0, time.UTC) }

	// 18:30 UTC on Mar 3 is already Mar 4 in WIB.
	assert.Equal(t, date(2024, time.March, 4), c.Today())
	assert.Equal(t, 10, c.CurrentWeekNumber())
	assert.Equal(t, date(2024, time.March, 4), c.CurrentWeekRange().Start)
}

func TestValidWeek(t *testing.T) {
	assert.False(t, ValidWeek(0))
	assert.True(t, ValidWeek(1))
	assert.True(t, ValidWeek(53))
	assert.False(t, ValidWeek(54))
}

func TestCalculatorNearestYear(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		week int
		want int
	}{
		{name: "same year", now: date(2024, time.March, 4), week: 10, want: 2024},
		{name: "late week in early january", now: date(2025, time.January, 3), week: 52, want: 2024},
		{name: "early week in late december", now: date(2024, time.December, 30), week: 1, want: 2025},
		{name: "mid year distant week", now: date(2024, time.July, 1), week: 50, want: 2024},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCalculator(wib)
			c.now = func() time.Time { return tt.now }
			assert.Equal(t, tt.want, c.NearestYear(tt.week))
		})
	}
}

// Package week converts calendar dates to the platform's week numbers and back.
//
// Week numbers follow the platform backend: weeks are counted from January 1 with
// Sunday as the first day, so week 1 runs from Jan 1 to the first Saturday. This is
// not ISO-8601 and must not be mixed with it in anything sent upstream.
package week

import "time"

// MaxWeek is the largest week number a year can produce.
const MaxWeek = 53

// WeekRange is the Monday-to-Sunday span shown for a week number.
type WeekRange struct {
	WeekNumber int       `json:"weekNumber"`
	Year       int       `json:"year"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
}

// Contains reports whether t falls on one of the range's days.
func (r WeekRange) Contains(t time.Time) bool {
	d := midnight(t.In(r.Start.Location()))
	return !d.Before(r.Start) && !d.After(r.End)
}

// Calculator does week arithmetic in a fixed location.
type Calculator struct {
	loc *time.Location
	now func() time.Time
}

// NewCalculator returns a Calculator for loc; nil means time.Local.
func NewCalculator(loc *time.Location) *Calculator {
	if loc == nil {
		loc = time.Local
	}
	return &Calculator{loc: loc, now: time.Now}
}

// Location returns the calculator's location.
func (c *Calculator) Location() *time.Location {
	return c.loc
}

// Today returns local midnight of the current day.
func (c *Calculator) Today() time.Time {
	return midnight(c.now().In(c.loc))
}

// WeekNumberOf returns the platform week number of t's local calendar day.
func (c *Calculator) WeekNumberOf(t time.Time) int {
	return WeekNumberOf(t.In(c.loc))
}

// CurrentWeekNumber returns the week number of today.
func (c *Calculator) CurrentWeekNumber() int {
	return WeekNumberOf(c.Today())
}

// WeekRangeOf returns the Monday-to-Sunday range for week of year.
func (c *Calculator) WeekRangeOf(week, year int) WeekRange {
	return WeekRangeOf(week, year, c.loc)
}

// NearestYear picks the year whose week is closest to today, so week 52
// asked for in early January resolves to the previous year.
func (c *Calculator) NearestYear(week int) int {
	today := c.Today()
	current := WeekNumberOf(today)
	switch {
	case week-current > MaxWeek/2:
		return today.Year() - 1
	case current-week > MaxWeek/2:
		return today.Year() + 1
	}
	return today.Year()
}

// CurrentWeekRange returns the range of the current week.
func (c *Calculator) CurrentWeekRange() WeekRange {
	today := c.Today()
	return c.WeekRangeOf(WeekNumberOf(today), today.Year())
}

// WeekNumberOf computes ceil((days + weekday(Jan 1) + 1) / 7) where days is the
// number of whole days between Jan 1 and t, both in t's location.
func WeekNumberOf(t time.Time) int {
	days := t.YearDay() - 1
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	n := days + int(jan1.Weekday()) + 1
	return (n + 6) / 7
}

// WeekRangeOf returns the Monday-start range displayed for a platform week.
// Week w covers the Sunday-to-Saturday span starting jan1 - weekday(jan1) + 7(w-1);
// the range starts on the Monday after that Sunday. Out-of-range week numbers are
// not rejected and yield dates outside year.
func WeekRangeOf(week, year int, loc *time.Location) WeekRange {
	if loc == nil {
		loc = time.Local
	}
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	sunday := jan1.AddDate(0, 0, (week-1)*7-int(jan1.Weekday()))
	start := sunday.AddDate(0, 0, 1)
	return WeekRange{
		WeekNumber: week,
		Year:       year,
		Start:      start,
		End:        start.AddDate(0, 0, 6),
	}
}

// ValidWeek reports whether week is usable as a platform week number.
func ValidWeek(week int) bool {
	return week >= 1 && week <= MaxWeek
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

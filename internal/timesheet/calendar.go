package timesheet

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/exp/slices"
)

// Layout for the DD-Month dates the dialogue layer collects. The year
// is supplied separately and applied uniformly; leave never spans a
// year boundary within a single render.
const dayMonthLayout = "02-January"

const parseLayout = "2-January-2006"

var weekendDays = []time.Weekday{time.Saturday, time.Sunday}

// ParseDayMonth parses a "05-February" style date against the given year.
func ParseDayMonth(s string, year int) (time.Time, error) {
	t, err := time.Parse(parseLayout, s+"-"+strconv.Itoa(year))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// MonthSpan returns the first and last day of the month.
func MonthSpan(month time.Month, year int) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}

func DaysIn(month time.Month, year int) int {
	_, last := MonthSpan(month, year)
	return last.Day()
}

func IsWeekend(d time.Time) bool {
	return slices.Contains(weekendDays, d.Weekday())
}

// HolidayCalendar maps dates to holiday labels. It is read-only to the
// core; reloads must swap the whole map, never mutate it mid-render.
type HolidayCalendar map[time.Time]string

func NewHolidayCalendar() HolidayCalendar {
	return make(HolidayCalendar)
}

func (hc HolidayCalendar) Add(date time.Time, label string) {
	hc[normalize(date)] = label
}

func (hc HolidayCalendar) Label(date time.Time) (string, bool) {
	label, ok := hc[normalize(date)]
	return label, ok
}

func normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

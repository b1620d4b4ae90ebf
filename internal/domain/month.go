package domain

import (
	"regexp"
	"strconv"
	"time"
)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Month is a calendar month in the form YYYY-MM. The zero value is invalid;
// construct with ParseMonth or MonthOf.
type Month struct {
	year  int
	month time.Month
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(s string) (Month, error) {
	if !monthPattern.MatchString(s) {
		return Month{}, ErrInvalidMonth
	}

	year, _ := strconv.Atoi(s[:4])
	mon, _ := strconv.Atoi(s[5:])
	if mon < 1 || mon > 12 {
		return Month{}, ErrInvalidMonth
	}

	return Month{year: year, month: time.Month(mon)}, nil
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{year: t.Year(), month: t.Month()}
}

func (m Month) String() string {
	return m.Date(1).Format("2006-01")
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return time.Date(m.year, m.month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampDay clamps a billing day to the last day of the month, so a
// day-31 template resolves to day 30 in a 30-day month and day 28 in a
// non-leap February.
func (m Month) ClampDay(day int) int {
	if last := m.Days(); day > last {
		return last
	}
	if day < 1 {
		return 1
	}
	return day
}

// Date returns midnight UTC on the given day of the month. The day is
// clamped first.
func (m Month) Date(day int) time.Time {
	return time.Date(m.year, m.month, m.ClampDay(day), 0, 0, 0, 0, time.UTC)
}

// Prev returns the preceding calendar month.
func (m Month) Prev() Month {
	t := m.Date(1).AddDate(0, -1, 0)
	return MonthOf(t)
}

// IsZero reports whether m is the zero value.
func (m Month) IsZero() bool {
	return m.year == 0
}

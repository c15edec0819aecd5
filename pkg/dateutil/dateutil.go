package dateutil

import (
	"time"
)

// DateLayout is the calendar-date format used on the command line and in reports.
const DateLayout = "2006-01-02"

// DateBack returns the calendar date years and months before date. The day of
// month is kept, clamped to 28 in February and to 30 in April, June, September
// and November. Time of day is dropped.
func DateBack(date time.Time, years, months int) time.Time {
	extraYears := months / 12
	extraMonths := months % 12

	m := (int(date.Month()) - extraMonths) % 12
	if m <= 0 {
		m += 12
	}
	if m > int(date.Month()) {
		extraYears++
	}
	y := date.Year() - years - extraYears

	d := date.Day()
	switch time.Month(m) {
	case time.February:
		if d > 28 {
			d = 28
		}
	case time.April, time.June, time.September, time.November:
		if d > 30 {
			d = 30
		}
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, date.Location())
}

// YearsUntilDate calculates the number of years between two dates
func YearsUntilDate(fromDate, toDate time.Time) float64 {
	duration := toDate.Sub(fromDate)
	return duration.Hours() / 24 / 365.25
}

// MonthsUntilDate calculates the number of whole calendar months between two dates
func MonthsUntilDate(fromDate, toDate time.Time) int {
	months := (toDate.Year()-fromDate.Year())*12 + int(toDate.Month()) - int(fromDate.Month())
	if toDate.Day() < fromDate.Day() {
		months--
	}
	return months
}

// Format renders a date as YYYY-MM-DD.
func Format(date time.Time) string {
	return date.Format(DateLayout)
}

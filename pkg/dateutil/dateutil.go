package dateutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// SplitMonths splits a month count into whole years and remaining months.
func SplitMonths(months int) (years, rem int) {
	return months / 12, months % 12
}

// AddMonths returns the date that lies the given number of months after from.
// The day of month is clamped so that Jan 31 + 1 month lands on the last day of February.
func AddMonths(from time.Time, months int) time.Time {
	y, m, d := from.Date()
	first := time.Date(y, m+time.Month(months), 1, from.Hour(), from.Minute(), from.Second(), from.Nanosecond(), from.Location())
	if last := DaysInMonth(first); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

// DaysInMonth returns the number of days in the month containing t.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// MonthLabel renders a whole-month offset for a chart axis:
// "Aujourd'hui", "6 mois", "1 an", "2 ans", "1 an et 3 mois".
func MonthLabel(month int) string {
	if month <= 0 {
		return "Aujourd'hui"
	}
	years, rem := SplitMonths(month)
	switch {
	case years == 0:
		return fmt.Sprintf("%d mois", rem)
	case rem == 0:
		return yearsLabel(years)
	default:
		return fmt.Sprintf("%s et %d mois", yearsLabel(years), rem)
	}
}

// FractionalMonthLabel labels a point of the 0.1-month chart grid ("Mois 2,5"). Points
// within 0.01 of a whole month use the whole-month number.
func FractionalMonthLabel(month float64) string {
	if month == 0 {
		return "Aujourd'hui"
	}
	if math.Abs(month-math.Round(month)) < 0.01 {
		return fmt.Sprintf("Mois %d", int(math.Round(month)))
	}
	return "Mois " + strings.Replace(strconv.FormatFloat(month, 'f', 1, 64), ".", ",", 1)
}

// DurationLabel describes a month count as a duration ("3 ans et 4 mois").
func DurationLabel(months int) string {
	if months == 0 {
		return "déjà atteint"
	}
	return MonthLabel(months)
}

func yearsLabel(n int) string {
	if n == 1 {
		return "1 an"
	}
	return fmt.Sprintf("%d ans", n)
}

package week

import (
	"time"

	"github.com/hochfrequenz/shift-tracker/internal/domain"
)

// Shift is a completed shift together with its position in Record.Past
type Shift struct {
	StoreIndex int
	domain.PastTimeBlock
}

// DayReport holds the shifts of one calendar day
type DayReport struct {
	Date    time.Time
	Weekday time.Weekday
	Shifts  []Shift
	Total   time.Duration
}

// WeekdayName returns the English name of the day
func (d DayReport) WeekdayName() string {
	return d.Weekday.String()
}

// Aggregate groups the record's completed shifts by local calendar day over
// the seven days starting at weekStart. The result always has exactly Days
// entries in calendar order; shifts keep their order from the record.
func Aggregate(rec *domain.Record, weekStart time.Time) []DayReport {
	loc := weekStart.Location()
	y, m, d := weekStart.Date()

	days := make([]DayReport, 0, Days)
	for i := 0; i < Days; i++ {
		date := time.Date(y, m, d+i, 0, 0, 0, 0, loc)
		report := DayReport{Date: date, Weekday: date.Weekday(), Shifts: []Shift{}}

		for idx, past := range rec.Past {
			if !SameDay(past.Date, date, loc) {
				continue
			}
			report.Shifts = append(report.Shifts, Shift{StoreIndex: idx, PastTimeBlock: past})
			report.Total += past.Duration()
		}
		days = append(days, report)
	}
	return days
}

// Total sums the totals of all days
func Total(days []DayReport) time.Duration {
	var total time.Duration
	for _, d := range days {
		total += d.Total
	}
	return total
}

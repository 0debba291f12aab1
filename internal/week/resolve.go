// Package week resolves week selectors to calendar weeks and aggregates
// completed shifts over them. Weeks run Sunday through Saturday.
package week

import "time"

// Days is the number of days in every aggregated week
const Days = 7

// Resolve returns local midnight of the Sunday that begins the selected week.
//
// With absolute set, week counts whole weeks forward from January 1 of the
// current year (week 0 is the week containing January 1). Otherwise week
// counts backward from today (week 0 is the current week). Negative values
// move the other way and are not clamped.
func Resolve(now time.Time, week int, absolute bool) time.Time {
	loc := now.Location()

	var anchor time.Time
	if absolute {
		anchor = time.Date(now.Year(), time.January, 1+week*Days, 0, 0, 0, 0, loc)
	} else {
		y, m, d := now.Date()
		anchor = time.Date(y, m, d-week*Days, 0, 0, 0, 0, loc)
	}
	return StartOf(anchor)
}

// StartOf returns local midnight of the Sunday on or before t
func StartOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d-int(t.Weekday()), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day in loc
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

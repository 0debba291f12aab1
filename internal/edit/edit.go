// Package edit lists and mutates the completed shifts of one week.
package edit

import (
	"errors"
	"fmt"
	"time"

	"github.com/hochfrequenz/shift-tracker/internal/domain"
	"github.com/hochfrequenz/shift-tracker/internal/week"
)

// ErrIndexOutOfRange means a store index did not come from a fresh listing
var ErrIndexOutOfRange = errors.New("shift index out of range")

// Entry is one listed shift. Display is its zero-based position in the
// listing; Store is its position in Record.Past.
type Entry struct {
	Display int
	Store   int
	Shift   domain.PastTimeBlock
}

// ListWeek returns the shifts of the week beginning at weekStart in
// calendar-day order, numbered from 0.
func ListWeek(rec *domain.Record, weekStart time.Time) []Entry {
	var entries []Entry
	for _, day := range week.Aggregate(rec, weekStart) {
		for _, s := range day.Shifts {
			entries = append(entries, Entry{
				Display: len(entries),
				Store:   s.StoreIndex,
				Shift:   s.PastTimeBlock,
			})
		}
	}
	return entries
}

// Action is a mutation of one completed shift
type Action interface {
	apply(rec *domain.Record, index int)
}

// SetDuration replaces the recorded length
type SetDuration struct {
	Hours, Minutes, Seconds int64
}

func (a SetDuration) apply(rec *domain.Record, index int) {
	rec.Past[index].Seconds = a.Total()
}

// Total returns the duration in seconds
func (a SetDuration) Total() int64 {
	return a.Hours*3600 + a.Minutes*60 + a.Seconds
}

// SetComment replaces the comment
type SetComment struct {
	Text string
}

func (a SetComment) apply(rec *domain.Record, index int) {
	rec.Past[index].Comment = a.Text
}

// Delete removes the shift. Store indices of later shifts shift down by one,
// so any listing taken before a Delete is stale.
type Delete struct{}

func (Delete) apply(rec *domain.Record, index int) {
	rec.Past = append(rec.Past[:index], rec.Past[index+1:]...)
}

// Apply performs action on the shift at storeIndex
func Apply(rec *domain.Record, storeIndex int, action Action) error {
	if storeIndex < 0 || storeIndex >= len(rec.Past) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, storeIndex, len(rec.Past))
	}
	action.apply(rec, storeIndex)
	return nil
}

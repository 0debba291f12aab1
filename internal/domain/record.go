package domain

import (
	"errors"
	"fmt"
	"time"
)

// CurrentVersion is written into every saved record. It is not checked on read.
const CurrentVersion = "0.3.0"

// TimeBlock is one contiguous interval of an in-progress shift.
// The last block of an active shift may still be live (End lags behind now).
type TimeBlock struct {
	Start         time.Time
	End           time.Time
	FinishedTasks []string
}

// Duration returns End-Start in whole seconds
func (b TimeBlock) Duration() time.Duration {
	return time.Duration(b.End.Unix()-b.Start.Unix()) * time.Second
}

// PastTimeBlock is the finalized summary of one completed shift
type PastTimeBlock struct {
	ID            string
	Date          time.Time // start of the shift
	Seconds       int64
	Comment       string
	FinishedTasks []string
}

// Duration returns the recorded shift length
func (p PastTimeBlock) Duration() time.Duration {
	return time.Duration(p.Seconds) * time.Second
}

// Record is the whole persisted state of the tracker
type Record struct {
	Version string
	State   TrackingState
	Tasks   []string
	Times   []TimeBlock
	Past    []PastTimeBlock
}

// NewRecord returns the empty default record used when no history exists
func NewRecord() *Record {
	return &Record{
		Version: CurrentVersion,
		State:   StateStopped,
		Tasks:   []string{},
		Times:   []TimeBlock{},
		Past:    []PastTimeBlock{},
	}
}

// Validate checks the state/times invariants
func (r *Record) Validate() error {
	if !r.State.Valid() {
		return fmt.Errorf("invalid state %s", r.State)
	}
	if r.State == StateStopped && len(r.Times) != 0 {
		return fmt.Errorf("state %s with %d open time blocks", r.State, len(r.Times))
	}
	if r.State != StateStopped && len(r.Times) == 0 {
		return fmt.Errorf("state %s without time blocks", r.State)
	}
	for i, b := range r.Times {
		if i < len(r.Times)-1 && b.End.Before(b.Start) {
			return fmt.Errorf("time block %d ends before it starts", i)
		}
	}
	for i, p := range r.Past {
		if p.Seconds < 0 {
			return fmt.Errorf("past shift %d has negative duration", i)
		}
	}
	return nil
}

// ErrNoTimeBlocks is returned when an active shift has no blocks to work with
var ErrNoTimeBlocks = errors.New("no time blocks recorded")

// ShiftLength sums the lengths of all blocks of the current shift
func (r *Record) ShiftLength() time.Duration {
	var total time.Duration
	for _, b := range r.Times {
		total += b.Duration()
	}
	return total
}

// LastBlock returns a pointer to the live block, or nil when there is none
func (r *Record) LastBlock() *TimeBlock {
	if len(r.Times) == 0 {
		return nil
	}
	return &r.Times[len(r.Times)-1]
}

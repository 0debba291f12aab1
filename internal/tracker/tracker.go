// Package tracker implements the shift state machine.
//
// Every operation mutates the record passed in; persisting it is the
// caller's job. Illegal transitions leave the record untouched and return
// ErrAlreadyTracking or ErrNotTracking.
package tracker

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hochfrequenz/shift-tracker/internal/domain"
	"go.uber.org/zap"
)

var (
	// ErrAlreadyTracking is returned by Start while a shift is being tracked
	ErrAlreadyTracking = errors.New("already tracking time")
	// ErrNotTracking is returned by Pause, Stop and FinishTask without an active shift
	ErrNotTracking = errors.New("not tracking any time")
)

// Tracker applies state transitions to a record
type Tracker struct {
	now    func() time.Time
	newID  func() string
	logger *zap.Logger
}

// Option configures a Tracker
type Option func(*Tracker)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithIDGenerator overrides how completed shifts are identified
func WithIDGenerator(newID func() string) Option {
	return func(t *Tracker) { t.newID = newID }
}

// WithLogger sets the logger used for transition diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// New creates a Tracker using the wall clock
func New(opts ...Option) *Tracker {
	t := &Tracker{
		now:    time.Now,
		newID:  uuid.NewString,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Now returns the current instant in UTC with whole-second precision
func (t *Tracker) Now() time.Time {
	return t.now().UTC().Truncate(time.Second)
}

// Start opens a new time block. Resuming a paused shift is a Start as well.
func (t *Tracker) Start(rec *domain.Record) (domain.TimeBlock, error) {
	if rec.State == domain.StateTracking {
		return domain.TimeBlock{}, ErrAlreadyTracking
	}

	now := t.Now()
	block := domain.TimeBlock{Start: now, End: now, FinishedTasks: []string{}}
	rec.Times = append(rec.Times, block)
	rec.State = domain.StateTracking

	t.logger.Debug("shift started", zap.Time("at", now), zap.Int("blocks", len(rec.Times)))
	return block, nil
}

// Pause finalizes the live block and returns the shift length so far
func (t *Tracker) Pause(rec *domain.Record) (time.Duration, error) {
	if rec.State == domain.StateStopped {
		return 0, ErrNotTracking
	}

	t.advance(rec)
	rec.State = domain.StatePaused

	length := rec.ShiftLength()
	t.logger.Debug("shift paused", zap.Duration("length", length))
	return length, nil
}

// Stop ends the shift and appends exactly one completed shift to the history.
// The completed shift is dated with the start of its first block.
func (t *Tracker) Stop(rec *domain.Record, comment string) (domain.PastTimeBlock, error) {
	if rec.State == domain.StateStopped {
		return domain.PastTimeBlock{}, ErrNotTracking
	}
	if len(rec.Times) == 0 {
		return domain.PastTimeBlock{}, domain.ErrNoTimeBlocks
	}

	// a paused shift's last block is already final
	if rec.State != domain.StatePaused {
		t.advance(rec)
	}

	finished := []string{}
	for _, b := range rec.Times {
		finished = append(finished, b.FinishedTasks...)
	}

	past := domain.PastTimeBlock{
		ID:            t.newID(),
		Date:          rec.Times[0].Start,
		Seconds:       int64(rec.ShiftLength() / time.Second),
		Comment:       comment,
		FinishedTasks: finished,
	}
	rec.Past = append(rec.Past, past)
	rec.Times = []domain.TimeBlock{}
	rec.State = domain.StateStopped

	t.logger.Debug("shift stopped",
		zap.String("id", past.ID),
		zap.Int64("seconds", past.Seconds),
		zap.Int("finished_tasks", len(finished)))
	return past, nil
}

// Status describes the current shift
type Status struct {
	State     domain.TrackingState
	Elapsed   time.Duration
	StartedAt time.Time
	Active    bool
}

// Status reports the state and, for an active shift, its running length.
// While tracking the live block is advanced to now; a paused shift is
// reported as-is.
func (t *Tracker) Status(rec *domain.Record) Status {
	st := Status{State: rec.State}
	if rec.State == domain.StateStopped || len(rec.Times) == 0 {
		return st
	}

	if rec.State == domain.StateTracking {
		t.advance(rec)
	}
	st.Active = true
	st.Elapsed = rec.ShiftLength()
	st.StartedAt = rec.Times[0].Start
	return st
}

func (t *Tracker) advance(rec *domain.Record) {
	if last := rec.LastBlock(); last != nil {
		last.End = t.Now()
	}
}

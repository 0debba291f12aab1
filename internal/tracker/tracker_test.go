package tracker

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/hochfrequenz/shift-tracker/internal/domain"
)

// fakeClock is advanced manually by tests
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestTracker() (*Tracker, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 10, 5, 8, 0, 0, 0, time.UTC)}
	ids := 0
	tr := New(
		WithClock(clock.Now),
		WithIDGenerator(func() string {
			ids++
			return "shift-" + string(rune('0'+ids))
		}),
	)
	return tr, clock
}

func TestTracker_PauseResumeStop(t *testing.T) {
	tr, clock := newTestTracker()
	rec := domain.NewRecord()
	startedAt := clock.now

	if _, err := tr.Start(rec); err != nil {
		t.Fatal(err)
	}
	clock.Advance(time.Hour)
	if _, err := tr.Pause(rec); err != nil {
		t.Fatal(err)
	}
	clock.Advance(10 * time.Minute)
	if _, err := tr.Start(rec); err != nil {
		t.Fatalf("resume: %v", err)
	}
	clock.Advance(30 * time.Minute)

	past, err := tr.Stop(rec, "worked")
	if err != nil {
		t.Fatal(err)
	}

	if past.Seconds != 5400 {
		t.Errorf("Seconds = %d, want 5400", past.Seconds)
	}
	if past.Comment != "worked" {
		t.Errorf("Comment = %q, want worked", past.Comment)
	}
	if !past.Date.Equal(startedAt) {
		t.Errorf("Date = %v, want %v", past.Date, startedAt)
	}
	if past.ID != "shift-1" {
		t.Errorf("ID = %q, want shift-1", past.ID)
	}
	if len(rec.Past) != 1 {
		t.Fatalf("Past count = %d, want 1", len(rec.Past))
	}
	if rec.State != domain.StateStopped || len(rec.Times) != 0 {
		t.Errorf("after stop: state=%s times=%d", rec.State, len(rec.Times))
	}
	if err := rec.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestTracker_DurationIndependentOfPauses(t *testing.T) {
	intervals := []time.Duration{25 * time.Minute, 40 * time.Minute, 5 * time.Minute, 2 * time.Hour}

	for pauses := 0; pauses < len(intervals); pauses++ {
		tr, clock := newTestTracker()
		rec := domain.NewRecord()
		var want time.Duration

		for i := 0; i <= pauses; i++ {
			if _, err := tr.Start(rec); err != nil {
				t.Fatal(err)
			}
			clock.Advance(intervals[i])
			want += intervals[i]
			if i < pauses {
				if _, err := tr.Pause(rec); err != nil {
					t.Fatal(err)
				}
				clock.Advance(17 * time.Minute)
			}
		}

		past, err := tr.Stop(rec, "")
		if err != nil {
			t.Fatal(err)
		}
		if got := past.Duration(); got != want {
			t.Errorf("%d pauses: duration = %v, want %v", pauses, got, want)
		}
	}
}

func TestTracker_StopWhilePausedDoesNotExtend(t *testing.T) {
	tr, clock := newTestTracker()
	rec := domain.NewRecord()

	tr.Start(rec)
	clock.Advance(time.Hour)
	tr.Pause(rec)
	clock.Advance(3 * time.Hour)

	past, err := tr.Stop(rec, "lunch never ended")
	if err != nil {
		t.Fatal(err)
	}
	if past.Seconds != 3600 {
		t.Errorf("Seconds = %d, want 3600", past.Seconds)
	}
}

func TestTracker_IllegalTransitions(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(tr *Tracker, rec *domain.Record)
		op      func(tr *Tracker, rec *domain.Record) error
		wantErr error
	}{
		{
			name:    "start while tracking",
			prepare: func(tr *Tracker, rec *domain.Record) { tr.Start(rec) },
			op: func(tr *Tracker, rec *domain.Record) error {
				_, err := tr.Start(rec)
				return err
			},
			wantErr: ErrAlreadyTracking,
		},
		{
			name:    "pause while stopped",
			prepare: func(tr *Tracker, rec *domain.Record) {},
			op: func(tr *Tracker, rec *domain.Record) error {
				_, err := tr.Pause(rec)
				return err
			},
			wantErr: ErrNotTracking,
		},
		{
			name:    "stop while stopped",
			prepare: func(tr *Tracker, rec *domain.Record) {},
			op: func(tr *Tracker, rec *domain.Record) error {
				_, err := tr.Stop(rec, "nothing")
				return err
			},
			wantErr: ErrNotTracking,
		},
		{
			name: "stop after stop",
			prepare: func(tr *Tracker, rec *domain.Record) {
				tr.Start(rec)
				tr.Stop(rec, "first")
			},
			op: func(tr *Tracker, rec *domain.Record) error {
				_, err := tr.Stop(rec, "second")
				return err
			},
			wantErr: ErrNotTracking,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, clock := newTestTracker()
			rec := domain.NewRecord()
			tt.prepare(tr, rec)
			clock.Advance(time.Minute)

			before := cloneRecord(rec)
			err := tt.op(tr, rec)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(before, rec); diff != "" {
				t.Errorf("illegal transition changed the record (-before +after):\n%s", diff)
			}
		})
	}
}

func TestTracker_StateLegality(t *testing.T) {
	tr, clock := newTestTracker()
	rec := domain.NewRecord()

	allowed := map[domain.TrackingState][]domain.TrackingState{
		domain.StateStopped:  {domain.StateStopped, domain.StateTracking},
		domain.StateTracking: {domain.StateTracking, domain.StatePaused, domain.StateStopped},
		domain.StatePaused:   {domain.StatePaused, domain.StateTracking, domain.StateStopped},
	}

	ops := []string{"start", "pause", "start", "start", "stop", "pause", "stop", "start", "pause", "pause", "stop", "start"}
	for _, op := range ops {
		from := rec.State
		pastBefore := len(rec.Past)
		clock.Advance(7 * time.Minute)

		var err error
		switch op {
		case "start":
			_, err = tr.Start(rec)
		case "pause":
			_, err = tr.Pause(rec)
		case "stop":
			_, err = tr.Stop(rec, op)
		}

		if !contains(allowed[from], rec.State) {
			t.Fatalf("%s: illegal transition %s -> %s", op, from, rec.State)
		}
		if err != nil && len(rec.Past) != pastBefore {
			t.Fatalf("%s: rejected operation changed history", op)
		}
		if err == nil && op == "stop" && len(rec.Past) != pastBefore+1 {
			t.Fatalf("stop appended %d shifts, want 1", len(rec.Past)-pastBefore)
		}
		if verr := rec.Validate(); verr != nil {
			t.Fatalf("%s: record invalid: %v", op, verr)
		}
	}
}

func TestTracker_Status(t *testing.T) {
	tr, clock := newTestTracker()
	rec := domain.NewRecord()

	st := tr.Status(rec)
	if st.Active || st.State != domain.StateStopped {
		t.Errorf("stopped status = %+v", st)
	}

	startedAt := clock.now
	tr.Start(rec)
	clock.Advance(45 * time.Minute)
	st = tr.Status(rec)
	if !st.Active || st.Elapsed != 45*time.Minute || st.State != domain.StateTracking {
		t.Errorf("tracking status = %+v", st)
	}
	if !st.StartedAt.Equal(startedAt) {
		t.Errorf("StartedAt = %v, want %v", st.StartedAt, startedAt)
	}

	tr.Pause(rec)
	clock.Advance(time.Hour)
	st = tr.Status(rec)
	if st.Elapsed != 45*time.Minute || st.State != domain.StatePaused {
		t.Errorf("paused status = %+v, elapsed should not grow", st)
	}
}

func TestTracker_NowTruncatesToSeconds(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	tr := New(WithClock(func() time.Time {
		return time.Date(2026, 1, 1, 10, 0, 0, 999_000_000, loc)
	}))

	now := tr.Now()
	if now.Nanosecond() != 0 {
		t.Errorf("Now() nanos = %d, want 0", now.Nanosecond())
	}
	if now.Location() != time.UTC {
		t.Errorf("Now() location = %v, want UTC", now.Location())
	}
}

func contains(states []domain.TrackingState, s domain.TrackingState) bool {
	for _, st := range states {
		if st == s {
			return true
		}
	}
	return false
}

func cloneRecord(rec *domain.Record) *domain.Record {
	c := *rec
	c.Tasks = append([]string{}, rec.Tasks...)
	c.Times = append([]domain.TimeBlock{}, rec.Times...)
	c.Past = append([]domain.PastTimeBlock{}, rec.Past...)
	return &c
}

package edit

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/hochfrequenz/shift-tracker/internal/domain"
)

func testRecord() *domain.Record {
	rec := domain.NewRecord()
	rec.Past = []domain.PastTimeBlock{
		{ID: "thu", Date: time.Date(2026, 10, 8, 9, 0, 0, 0, time.UTC), Seconds: 100, Comment: "thursday"},
		{ID: "old", Date: time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC), Seconds: 200, Comment: "old"},
		{ID: "mon", Date: time.Date(2026, 10, 5, 9, 0, 0, 0, time.UTC), Seconds: 300, Comment: "monday"},
		{ID: "mon2", Date: time.Date(2026, 10, 5, 18, 0, 0, 0, time.UTC), Seconds: 400, Comment: "monday evening"},
	}
	return rec
}

var weekStart = time.Date(2026, 10, 4, 0, 0, 0, 0, time.UTC)

func TestListWeek(t *testing.T) {
	entries := ListWeek(testRecord(), weekStart)

	var got [][2]int
	var ids []string
	for _, e := range entries {
		got = append(got, [2]int{e.Display, e.Store})
		ids = append(ids, e.Shift.ID)
	}

	if diff := cmp.Diff([][2]int{{0, 2}, {1, 3}, {2, 0}}, got); diff != "" {
		t.Errorf("indices mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"mon", "mon2", "thu"}, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestListWeek_Empty(t *testing.T) {
	if entries := ListWeek(domain.NewRecord(), weekStart); len(entries) != 0 {
		t.Errorf("ListWeek on empty record = %d entries", len(entries))
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		index  int
		action Action
		check  func(t *testing.T, rec *domain.Record)
	}{
		{
			name:   "set duration",
			index:  2,
			action: SetDuration{Hours: 7, Minutes: 45, Seconds: 30},
			check: func(t *testing.T, rec *domain.Record) {
				if rec.Past[2].Seconds != 7*3600+45*60+30 {
					t.Errorf("Seconds = %d", rec.Past[2].Seconds)
				}
			},
		},
		{
			name:   "set comment",
			index:  0,
			action: SetComment{Text: "fixed"},
			check: func(t *testing.T, rec *domain.Record) {
				if rec.Past[0].Comment != "fixed" {
					t.Errorf("Comment = %q", rec.Past[0].Comment)
				}
			},
		},
		{
			name:   "delete keeps survivors in order",
			index:  1,
			action: Delete{},
			check: func(t *testing.T, rec *domain.Record) {
				var ids []string
				for _, p := range rec.Past {
					ids = append(ids, p.ID)
				}
				if diff := cmp.Diff([]string{"thu", "mon", "mon2"}, ids); diff != "" {
					t.Errorf("ids mismatch (-want +got):\n%s", diff)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testRecord()
			if err := Apply(rec, tt.index, tt.action); err != nil {
				t.Fatal(err)
			}
			tt.check(t, rec)
		})
	}
}

func TestApply_IndexOutOfRange(t *testing.T) {
	for _, index := range []int{-1, 4, 100} {
		rec := testRecord()
		err := Apply(rec, index, Delete{})
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Apply(%d) error = %v, want ErrIndexOutOfRange", index, err)
		}
		if len(rec.Past) != 4 {
			t.Errorf("Apply(%d) changed the record", index)
		}
	}
}

func TestDelete_InvalidatesLaterIndices(t *testing.T) {
	rec := testRecord()
	before := ListWeek(rec, weekStart)

	if err := Apply(rec, before[0].Store, Delete{}); err != nil {
		t.Fatal(err)
	}

	after := ListWeek(rec, weekStart)
	if len(after) != 2 {
		t.Fatalf("entries after delete = %d, want 2", len(after))
	}
	if after[0].Store != before[1].Store-1 {
		t.Errorf("store index of monday evening = %d, want %d", after[0].Store, before[1].Store-1)
	}
}

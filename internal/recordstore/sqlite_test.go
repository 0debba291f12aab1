package recordstore

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hochfrequenz/shift-tracker/internal/domain"
)

func TestSQLiteStore_EmptyDatabaseYieldsDefault(t *testing.T) {
	store, err := NewSQLiteStore(":memory:", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	rec, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(domain.NewRecord(), rec); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store, err := NewSQLiteStore(":memory:", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	want := sampleRecord()
	if err := store.Save(want); err != nil {
		t.Fatal(err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	// a second save replaces rather than appends
	got.Past = got.Past[:1]
	got.State = domain.StateStopped
	got.Times = []domain.TimeBlock{}
	if err := store.Save(got); err != nil {
		t.Fatal(err)
	}
	again, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(got, again); diff != "" {
		t.Errorf("second save mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteStore_InvalidStateYieldsDefault(t *testing.T) {
	store, err := NewSQLiteStore(":memory:", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if _, err := store.db.Exec(`INSERT INTO meta (key, value) VALUES ('state', 'garbage')`); err != nil {
		t.Fatal(err)
	}

	rec, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if rec.State != domain.StateStopped || len(rec.Past) != 0 {
		t.Errorf("Load() = %+v, want default record", rec)
	}
}

func TestSQLiteStore_UndecodableRowsYieldDefault(t *testing.T) {
	store, err := NewSQLiteStore(":memory:", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	for _, stmt := range []string{
		`INSERT INTO meta (key, value) VALUES ('version', '0.3.0'), ('state', '2')`,
		`INSERT INTO past_shifts (position, date_unix, seconds, comment, finished_tasks) VALUES (0, 0, 60, 'x', 'not json')`,
	} {
		if _, err := store.db.Exec(stmt); err != nil {
			t.Fatal(err)
		}
	}

	rec, err := store.Load()
	if err != nil {
		t.Fatalf("undecodable rows should not fail Load: %v", err)
	}
	if diff := cmp.Diff(domain.NewRecord(), rec); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteStore_DriverErrorIsReturned(t *testing.T) {
	store, err := NewSQLiteStore(":memory:", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Save(sampleRecord()); err != nil {
		t.Fatal(err)
	}
	store.Close()

	rec, err := store.Load()
	if err == nil {
		t.Fatalf("Load() on a closed database = %+v, want error", rec)
	}
	if rec != nil {
		t.Errorf("Load() returned a record alongside error %v", err)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		backend  string
		wantFile string
		wantErr  bool
	}{
		{"", "timesheets", false},
		{BackendMsgpack, "timesheets", false},
		{BackendSQLite, "timesheets.db", false},
		{"json", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			store, err := Open(tt.backend, dir, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open(%q) error = %v, wantErr %v", tt.backend, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer store.Close()
			if got := store.Path(); got != filepath.Join(dir, tt.wantFile) {
				t.Errorf("Path() = %q, want %q", got, filepath.Join(dir, tt.wantFile))
			}
		})
	}
}

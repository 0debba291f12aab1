package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRecordWatcher_NotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "timesheets")
	if err := os.WriteFile(path, []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan string, 10)
	rw, err := NewRecordWatcher(path, func(p string) { changed <- p }, nil)
	if err != nil {
		t.Fatal(err)
	}
	rw.SetDebounce(20 * time.Millisecond)
	rw.Start(context.Background())
	defer rw.Stop()

	// several writes in a burst collapse into one notification
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("bb"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case got := <-changed:
		want, _ := filepath.Abs(path)
		if got != want {
			t.Errorf("callback path = %q, want %q", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification")
	}

	select {
	case <-changed:
		t.Error("burst produced more than one notification")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestRecordWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "timesheets")

	changed := make(chan string, 10)
	rw, err := NewRecordWatcher(path, func(p string) { changed <- p }, nil)
	if err != nil {
		t.Fatal(err)
	}
	rw.SetDebounce(10 * time.Millisecond)
	rw.Start(context.Background())
	defer rw.Stop()

	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-changed:
		t.Errorf("unexpected notification for %q", p)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestNewRecordWatcher_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "timesheets")
	if _, err := NewRecordWatcher(path, nil, nil); err == nil {
		t.Error("NewRecordWatcher() should fail for a missing directory")
	}
}

package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewWatcher(t *testing.T) {
	w, err := New(Config{
		Directories: []string{t.TempDir()},
		Debounce:    100,
	})
	if err != nil {
		t.Fatal(err)
	}
	if w == nil {
		t.Fatal("expected non-nil watcher")
	}
	w.watcher.Close()
}

func TestDefaults(t *testing.T) {
	w, _ := New(Config{})
	defer w.watcher.Close()

	if w.Config.Debounce != 500 {
		t.Errorf("expected default debounce 500, got %d", w.Config.Debounce)
	}
	if w.Config.Pattern != "*.xlsx" {
		t.Errorf("expected default pattern *.xlsx, got %q", w.Config.Pattern)
	}
}

func TestWatcherEvents(t *testing.T) {
	dir := t.TempDir()

	w, err := New(Config{
		Directories: []string{dir},
		Debounce:    50,
	})
	if err != nil {
		t.Fatal(err)
	}

	handlerCalled := make(chan string, 1)
	w.Handler = func(path string) error {
		handlerCalled <- path
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		w.Start(ctx)
	}()

	// Give the watcher time to start
	time.Sleep(100 * time.Millisecond)

	testFile := filepath.Join(dir, "payroll.xlsx")
	os.WriteFile(testFile, []byte("test"), 0644)

	select {
	case path := <-handlerCalled:
		if path != testFile {
			t.Errorf("expected %q, got %q", testFile, path)
		}
	case <-time.After(2 * time.Second):
		t.Error("timeout waiting for handler call")
	}

	cancel()
}

func TestWatcherSkipsNonMatching(t *testing.T) {
	dir := t.TempDir()

	w, err := New(Config{
		Directories: []string{dir},
		Debounce:    50,
	})
	if err != nil {
		t.Fatal(err)
	}

	handlerCalled := false
	w.Handler = func(path string) error {
		handlerCalled = true
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go w.Start(ctx)
	time.Sleep(100 * time.Millisecond)

	os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("test"), 0644)
	time.Sleep(200 * time.Millisecond)

	if handlerCalled {
		t.Error("handler should not be called for .txt files")
	}

	cancel()
}

func TestWatcherSkipsLockFiles(t *testing.T) {
	dir := t.TempDir()

	w, err := New(Config{
		Directories: []string{dir},
		Debounce:    50,
	})
	if err != nil {
		t.Fatal(err)
	}

	handlerCalled := false
	w.Handler = func(path string) error {
		handlerCalled = true
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go w.Start(ctx)
	time.Sleep(100 * time.Millisecond)

	// Excel writes a ~$ lock file next to an open workbook
	os.WriteFile(filepath.Join(dir, "~$payroll.xlsx"), []byte("lock"), 0644)
	time.Sleep(200 * time.Millisecond)

	if handlerCalled {
		t.Error("handler should not be called for lock files")
	}

	cancel()
}

func TestGetStatus(t *testing.T) {
	w, _ := New(Config{
		Directories: []string{"/tmp/a", "/tmp/b"},
	})
	defer w.watcher.Close()

	status := w.GetStatus()
	if !status.Running {
		t.Error("expected running=true")
	}
	if len(status.Directories) != 2 {
		t.Errorf("expected 2 directories, got %d", len(status.Directories))
	}
}

func TestGetEventsCopies(t *testing.T) {
	w, _ := New(Config{})
	defer w.watcher.Close()

	w.record(Event{Path: "/tmp/a.xlsx", Status: "processed"})
	events := w.GetEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	events[0].Path = "mutated"
	if w.GetEvents()[0].Path != "/tmp/a.xlsx" {
		t.Error("GetEvents should return a copy")
	}
}

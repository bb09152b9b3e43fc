package gitstate

import (
	"testing"
	"time"
)

func TestWatchDeliversSnapshot(t *testing.T) {
	root, r := newTestRepo(t, "ref: refs/heads/master\n")

	got := make(chan Snapshot, 8)
	w, err := r.Watch(10*time.Millisecond, func(s Snapshot) { got <- s })
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	defer w.Close()

	writeTestFile(t, gitPath(root, "HEAD"), "abcdef0123456789abcdef0123456789abcdef01\n")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case snap := <-got:
			if snap.State == StateDetached {
				return
			}
			// An intermediate delivery may still see the old state.
		case <-deadline:
			t.Fatal("timed out waiting for detached snapshot")
		}
	}
}

func TestWatchRejectsNilCallback(t *testing.T) {
	t.Parallel()

	_, r := newTestRepo(t, "ref: refs/heads/master\n")
	if _, err := r.Watch(0, nil); err == nil {
		t.Fatal("expected error for nil callback")
	}
}

func TestWatcherCloseIdempotent(t *testing.T) {
	t.Parallel()

	_, r := newTestRepo(t, "ref: refs/heads/master\n")
	w, err := r.Watch(0, func(Snapshot) {})
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}

func TestShouldIgnoreWatchPath(t *testing.T) {
	t.Parallel()

	if !shouldIgnoreWatchPath("/repo/.git/HEAD.lock") {
		t.Fatal("lock files should be ignored")
	}
	if shouldIgnoreWatchPath("/repo/.git/HEAD") {
		t.Fatal("HEAD should not be ignored")
	}
}

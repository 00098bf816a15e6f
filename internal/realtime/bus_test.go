package realtime

import (
	"testing"
	"time"
)

func TestDebouncerCoalescesBursts(t *testing.T) {
	out := make(chan string, 16)
	deb := newDebouncer(20*time.Millisecond, out)
	defer deb.stop()

	for i := 0; i < 10; i++ {
		deb.hit(TableRegistrations)
	}

	select {
	case got := <-out:
		if got != TableRegistrations {
			t.Fatalf("unexpected key %q", got)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("expected one emit from the burst")
	}

	select {
	case got := <-out:
		t.Fatalf("burst must coalesce to one emit, got extra %q", got)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestDebouncerKeysAreIndependent(t *testing.T) {
	out := make(chan string, 16)
	deb := newDebouncer(10*time.Millisecond, out)
	defer deb.stop()

	deb.hit(TableCategories)
	deb.hit(TableAdmins)

	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case got := <-out:
			seen[got] = true
		case <-time.After(200 * time.Millisecond):
			t.Fatalf("missing emit, saw %v", seen)
		}
	}
	if !seen[TableCategories] || !seen[TableAdmins] {
		t.Fatalf("expected both keys emitted, saw %v", seen)
	}
}

func TestDebouncerEmitsAgainAfterWindow(t *testing.T) {
	out := make(chan string, 16)
	deb := newDebouncer(10*time.Millisecond, out)
	defer deb.stop()

	deb.hit(TableRegistrations)
	select {
	case <-out:
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("first emit missing")
	}

	// A hit after the window opens a fresh emit.
	deb.hit(TableRegistrations)
	select {
	case <-out:
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("second emit missing")
	}
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	out := make(chan string, 16)
	deb := newDebouncer(10*time.Millisecond, out)

	deb.hit(TableRegistrations)
	deb.stop()

	select {
	case got := <-out:
		t.Fatalf("stopped debouncer must not emit, got %q", got)
	case <-time.After(50 * time.Millisecond):
	}

	// Hits after stop are ignored.
	deb.hit(TableCategories)
	select {
	case got := <-out:
		t.Fatalf("hit after stop must be ignored, got %q", got)
	case <-time.After(50 * time.Millisecond):
	}
}

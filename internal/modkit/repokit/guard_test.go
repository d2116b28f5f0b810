package repokit

import (
	"context"
	"strings"
	"testing"
	"time"
)

// fakeGuard records the ctx it saw and returns a preset error
type fakeGuard struct {
	lastCtx context.Context
	err     error
}

func (f *fakeGuard) Guard(ctx context.Context) error {
	f.lastCtx = ctx
	return f.err
}

type errBoom string

func (e errBoom) Error() string { return string(e) }

// assertPanicContains runs fn and asserts it panics with a message containing wantSub
func assertPanicContains(t *testing.T, wantSub string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic, got none")
			return
		}
		var msg string
		switch x := r.(type) {
		case string:
			msg = x
		case error:
			msg = x.Error()
		}
		if !strings.Contains(msg, wantSub) {
			t.Fatalf("panic message mismatch, got %q want contains %q", msg, wantSub)
		}
	}()
	fn()
}

func TestMustGuard_PanicsOnNilStore(t *testing.T) {
	t.Parallel()
	assertPanicContains(t, "nil store", func() {
		MustGuard(context.Background(), nil)
	})
}

func TestMustGuard_PanicsOnGuardError(t *testing.T) {
	t.Parallel()
	assertPanicContains(t, "store guard failed: boom", func() {
		MustGuard(context.Background(), &fakeGuard{err: errBoom("boom")})
	})
}

func TestMustGuard_NoPanicOnHealthyStore(t *testing.T) {
	t.Parallel()

	fg := &fakeGuard{}
	MustGuard(context.Background(), fg)

	if fg.lastCtx == nil {
		t.Fatalf("expected the guard to receive a context")
	}
	// a default deadline is applied when the caller supplied none
	if _, ok := fg.lastCtx.Deadline(); !ok {
		t.Fatalf("expected a deadline to be set by MustGuard")
	}
}

func TestMustGuard_HonorsExistingDeadline(t *testing.T) {
	t.Parallel()

	fg := &fakeGuard{}
	parent, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	MustGuard(parent, fg)

	dlWant, okWant := parent.Deadline()
	dlGot, okGot := fg.lastCtx.Deadline()
	if !okWant || !okGot {
		t.Fatalf("both contexts should have deadlines: parent=%v child=%v", okWant, okGot)
	}
	diff := dlGot.Sub(dlWant)
	if diff < -2*time.Millisecond || diff > 2*time.Millisecond {
		t.Fatalf("child deadline should match parent: got %v want %v", dlGot, dlWant)
	}
}

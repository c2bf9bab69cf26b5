package captest

import (
	"context"
	"errors"
	"testing"

	capability "github.com/ipfs/go-capability"
	detectrace "github.com/ipfs/go-detect-race"
)

// NestingDepth sets how many layers SubtestNesting stacks up.
var NestingDepth = 64

func init() {
	// Keep the stacks shallow when the race detector is enabled so these
	// tests don't take forever.
	if detectrace.WithRace() {
		NestingDepth = 8
	}
}

func mustWrap(t *testing.T, wrap capability.Decorator, c capability.Capability) capability.Capability {
	t.Helper()
	w, err := wrap(c)
	if err != nil {
		t.Fatal("error wrapping capability: ", err)
	}
	return w
}

func SubtestNilInner(t *testing.T, wrap capability.Decorator) {
	w, err := wrap(nil)
	if err == nil {
		t.Fatal("wrapping a nil capability should fail")
	}
	if !capability.IsNil(w) {
		t.Fatal("a failed wrap should not return a capability")
	}

	var typed *Probe
	if _, err := wrap(typed); err == nil {
		t.Fatal("wrapping a typed nil capability should fail")
	}
}

func SubtestDelegatesOnce(t *testing.T, wrap capability.Decorator) {
	ctx := context.Background()

	p := NewProbe(nil)
	w := mustWrap(t, wrap, p)
	defer capability.Close(w)

	if err := w.Perform(ctx); err != nil {
		t.Fatal("error performing: ", err)
	}
	if p.Performs() != 1 {
		t.Fatalf("base performed %d times, expected 1", p.Performs())
	}
}

func SubtestRepeat(t *testing.T, wrap capability.Decorator) {
	ctx := context.Background()

	rec := capability.NewRecorder()
	p := NewProbe(rec)
	w := mustWrap(t, wrap, p)
	defer capability.Close(w)

	if err := w.Perform(ctx); err != nil {
		t.Fatal(err)
	}
	first := rec.Lines()
	rec.Reset()
	if err := w.Perform(ctx); err != nil {
		t.Fatal(err)
	}
	second := rec.Lines()

	if p.Performs() != 2 {
		t.Fatalf("base performed %d times, expected 2", p.Performs())
	}
	if len(first) != len(second) {
		t.Fatalf("second call emitted %d lines, first emitted %d", len(second), len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("line %d differs between calls: %q != %q", i, first[i], second[i])
		}
	}
}

func SubtestOrdering(t *testing.T, wrap capability.Decorator) {
	ctx := context.Background()

	rec := capability.NewRecorder()
	p := NewProbe(rec)

	c, err := capability.Chain(p,
		Marker("outer", rec),
		wrap,
		Marker("inner", rec),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer capability.Close(c)

	if err := c.Perform(ctx); err != nil {
		t.Fatal(err)
	}

	want := []string{"outer.before", "inner.before", BaseLine, "inner.after", "outer.after"}
	if have := rec.Lines(); !Subsequence(have, want) {
		t.Fatalf("unexpected trace order: %q, want %q in order", have, want)
	}
}

func SubtestRelease(t *testing.T, wrap capability.Decorator) {
	p := NewProbe(nil)
	w := mustWrap(t, wrap, p)

	if err := capability.Close(w); err != nil {
		t.Fatal("error closing: ", err)
	}
	if p.Closes() != 1 {
		t.Fatalf("base released %d times, expected 1", p.Closes())
	}

	// closing twice must not release again
	if err := capability.Close(w); err != nil {
		t.Fatal("error closing twice: ", err)
	}
	if p.Closes() != 1 {
		t.Fatalf("base released %d times after second close, expected 1", p.Closes())
	}
}

func SubtestPerformAfterClose(t *testing.T, wrap capability.Decorator) {
	ctx := context.Background()

	p := NewProbe(nil)
	w := mustWrap(t, wrap, p)
	if err := capability.Close(w); err != nil {
		t.Fatal(err)
	}
	if err := w.Perform(ctx); !errors.Is(err, capability.ErrClosed) {
		t.Fatalf("perform after close returned %v, expected ErrClosed", err)
	}
	if p.Performs() != 0 {
		t.Fatal("closed wrapper should not reach its base")
	}
}

func SubtestNesting(t *testing.T, wrap capability.Decorator) {
	ctx := context.Background()

	p := NewProbe(nil)
	var c capability.Capability = p
	for i := 0; i < NestingDepth; i++ {
		c = mustWrap(t, wrap, c)
	}

	if err := c.Perform(ctx); err != nil {
		t.Fatal(err)
	}
	if p.Performs() != 1 {
		t.Fatalf("base performed %d times through %d layers, expected 1", p.Performs(), NestingDepth)
	}

	if err := capability.Close(c); err != nil {
		t.Fatal(err)
	}
	if p.Closes() != 1 {
		t.Fatalf("base released %d times through %d layers, expected 1", p.Closes(), NestingDepth)
	}
}

func SubtestInnerError(t *testing.T, wrap capability.Decorator) {
	ctx := context.Background()

	p := NewFailingProbe(nil, ErrTest)
	w := mustWrap(t, wrap, p)
	defer capability.Close(w)

	if err := w.Perform(ctx); !errors.Is(err, ErrTest) {
		t.Fatalf("expected inner error to propagate, got %v", err)
	}
}

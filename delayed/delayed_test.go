package delayed

import (
	"context"
	"testing"
	"time"

	delay "github.com/ipfs/go-ipfs-delay"

	captest "github.com/ipfs/go-capability/test"
)

func TestDelayed(t *testing.T) {
	ctx := context.Background()

	p := captest.NewProbe(nil)
	d, err := New(p, delay.Fixed(100*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	now := time.Now()
	if err := d.Perform(ctx); err != nil {
		t.Fatal(err)
	}
	if err := d.Perform(ctx); err != nil {
		t.Fatal(err)
	}
	if time.Since(now) < 200*time.Millisecond {
		t.Fatal("There should have been a delay of 100ms on each call")
	}
	if p.Performs() != 2 {
		t.Fatalf("expected 2 calls to reach the base, got %d", p.Performs())
	}
}

func TestDelayedAll(t *testing.T) {
	// Don't actually delay, we just want to make sure this works correctly, not that it
	// delays anything.
	captest.SubtestAll(t, Decorator(delay.Fixed(0)))
}

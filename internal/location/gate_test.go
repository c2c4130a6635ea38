package location

import (
	"context"
	"errors"
	"testing"
)

type fakeConfirm struct {
	answer bool
	calls  int
}

func (f *fakeConfirm) Confirm(string) bool {
	f.calls++
	return f.answer
}

type fakeProvider struct {
	point Point
	err   error
	calls int
}

func (f *fakeProvider) CurrentPosition(context.Context) (Point, error) {
	f.calls++
	return f.point, f.err
}

func TestGate_PromptsOnce(t *testing.T) {
	c := &fakeConfirm{answer: true}
	p := &fakeProvider{point: Point{Lat: 1.3521, Lng: 103.8198}}
	g := NewGate(c, p)

	for i := 0; i < 3; i++ {
		loc, err := g.Request(context.Background())
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		if loc == nil || loc.Lat != 1.3521 {
			t.Fatalf("request %d: loc = %+v", i, loc)
		}
	}
	if c.calls != 1 {
		t.Fatalf("prompt shown %d times, want 1", c.calls)
	}
	if p.calls != 1 {
		t.Fatalf("position requested %d times, want 1", p.calls)
	}
}

func TestGate_DenialLeavesNil(t *testing.T) {
	c := &fakeConfirm{answer: false}
	p := &fakeProvider{point: Point{Lat: 1, Lng: 2}}
	g := NewGate(c, p)

	loc, err := g.Request(context.Background())
	if err != nil || loc != nil {
		t.Fatalf("loc=%v err=%v, want nil/nil", loc, err)
	}
	if p.calls != 0 {
		t.Fatal("provider must not be called after denial")
	}
	// And no second prompt on a later request.
	if _, _ = g.Request(context.Background()); c.calls != 1 {
		t.Fatalf("prompt shown %d times, want 1", c.calls)
	}
}

func TestGate_NoProvider(t *testing.T) {
	g := NewGate(&fakeConfirm{answer: true}, nil)
	loc, err := g.Request(context.Background())
	if err != nil || loc != nil {
		t.Fatalf("loc=%v err=%v, want nil/nil on missing capability", loc, err)
	}
}

func TestGate_ProviderError(t *testing.T) {
	p := &fakeProvider{err: errors.New("timeout")}
	g := NewGate(&fakeConfirm{answer: true}, p)
	loc, err := g.Request(context.Background())
	if err == nil || loc != nil {
		t.Fatalf("loc=%v err=%v, want nil/error", loc, err)
	}
	if g.Location() != nil {
		t.Fatal("failed fix must leave stored location nil")
	}
}

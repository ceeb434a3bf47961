package iambic

import "testing"

func TestSinglePaddleRepeatsElement(t *testing.T) {
	k := New(0.06)
	for i := 0; i < 4; i++ {
		el, ok := k.Next(true, false)
		if !ok || el != Dot {
			t.Fatalf("iteration %d: expected repeated Dot, got %v ok=%v", i, el, ok)
		}
	}
}

func TestSqueezeAlternatesStartingOppositeLastSent(t *testing.T) {
	k := New(0.06)
	first, _ := k.Next(true, false) // dot alone
	if first != Dot {
		t.Fatalf("expected Dot first")
	}
	second, _ := k.Next(true, true) // squeeze: should start opposite of last sent (Dot) -> Dash
	if second != Dash {
		t.Fatalf("expected squeeze to start with Dash opposite the last Dot, got %v", second)
	}
	third, _ := k.Next(true, true)
	if third != Dot {
		t.Fatalf("expected alternation back to Dot, got %v", third)
	}
}

func TestBothReleasedStopsGeneration(t *testing.T) {
	k := New(0.06)
	k.Next(true, false)
	_, ok := k.Next(false, false)
	if ok {
		t.Fatalf("expected no element when both paddles are released")
	}
	if len(k.Log()) != 1 {
		t.Fatalf("expected exactly one logged element, got %d", len(k.Log()))
	}
}

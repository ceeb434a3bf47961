package runtime

import "testing"

func TestFrameQueueDropsOldestOnOverflow(t *testing.T) {
	q := NewFrameQueue(2)
	q.Push([]float32{1})
	q.Push([]float32{2})
	q.Push([]float32{3})

	got := q.DrainAll()
	if len(got) != 2 {
		t.Fatalf("expected capacity-bounded queue to hold 2 frames, got %d", len(got))
	}
	if got[0][0] != 2 || got[1][0] != 3 {
		t.Fatalf("expected the oldest frame dropped, got %v", got)
	}
}

func TestFrameQueueDrainAllEmptiesTheQueue(t *testing.T) {
	q := NewFrameQueue(4)
	q.Push([]float32{1})
	q.Push([]float32{2})

	if got := q.DrainAll(); len(got) != 2 {
		t.Fatalf("expected 2 frames drained, got %d", len(got))
	}
	if q.Len() != 0 {
		t.Fatalf("expected the queue to be empty after DrainAll, got len=%d", q.Len())
	}
}

func TestNewFrameQueueDefaultsCapacity(t *testing.T) {
	q := NewFrameQueue(0)
	for i := 0; i < 300; i++ {
		q.Push([]float32{float32(i)})
	}
	if q.Len() != 256 {
		t.Fatalf("expected default capacity 256, got %d", q.Len())
	}
}

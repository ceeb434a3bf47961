package runtime

import (
	"sync"
	"testing"
	"time"
)

type recordingSink struct {
	mu     sync.Mutex
	played [][]float32
}

func (s *recordingSink) Play(samples []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.played = append(s.played, samples)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.played)
}

func TestPlaybackDrainsFIFOInOrder(t *testing.T) {
	p := NewPlayback()
	p.Enqueue(PlaybackItem{Samples: []float32{1}})
	p.Enqueue(PlaybackItem{Samples: []float32{2}})

	sink := &recordingSink{}
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		p.Run(stop, sink)
		close(done)
	}()

	waitForCondition(t, func() bool { return sink.count() == 2 })
	close(stop)
	<-done

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if sink.played[0][0] != 1 || sink.played[1][0] != 2 {
		t.Fatalf("expected FIFO order, got %v", sink.played)
	}
}

func TestPlaybackStopIsObservedWithinTwoHundredMillis(t *testing.T) {
	p := NewPlayback()
	p.Enqueue(PlaybackItem{Samples: []float32{1}, DelaySeconds: 5})

	sink := &recordingSink{}
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		p.Run(stop, sink)
		close(done)
	}()

	start := time.Now()
	close(stop)
	select {
	case <-done:
	case <-time.After(250 * time.Millisecond):
		t.Fatalf("Run did not stop within 250ms of stop being closed")
	}
	if elapsed := time.Since(start); elapsed > 250*time.Millisecond {
		t.Fatalf("stop took too long to take effect: %v", elapsed)
	}
}

func waitForCondition(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within deadline")
}

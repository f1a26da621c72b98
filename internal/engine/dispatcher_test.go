package engine

import (
	"context"
	"testing"
	"time"
)

func TestRenderQueueDropsOldest(t *testing.T) {
	q := NewRenderQueue(2)
	var ran []int
	for i := 1; i <= 3; i++ {
		q.Submit(func() { ran = append(ran, i) })
	}

	if n := q.Drain(); n != 2 {
		t.Errorf("Drain() = %d, expected 2", n)
	}
	if len(ran) != 2 || ran[0] != 2 || ran[1] != 3 {
		t.Errorf("ran = %v, expected [2 3]", ran)
	}
}

func TestRenderQueueRun(t *testing.T) {
	q := NewRenderQueue(0)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		q.Run(ctx)
		close(stopped)
	}()

	done := make(chan struct{})
	q.Submit(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback did not run")
	}

	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

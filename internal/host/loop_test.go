package host

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoop_TickRunsOnlyQueuedWork(t *testing.T) {
	l := NewLoop()
	var order []int
	l.Defer(func() {
		order = append(order, 1)
		l.Defer(func() { order = append(order, 3) })
	})
	l.Defer(func() { order = append(order, 2) })

	assert.Equal(t, 2, l.Tick())
	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, 1, l.Pending())

	assert.Equal(t, 1, l.Tick())
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestLoop_Drain(t *testing.T) {
	l := NewLoop()
	depth := 0
	var next func()
	next = func() {
		depth++
		if depth < 5 {
			l.Defer(next)
		}
	}
	l.Defer(next)

	assert.Equal(t, 5, l.Drain())
	assert.Equal(t, 0, l.Pending())
}

func TestLoop_RunStopsOnCancel(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	ran := make(chan struct{})

	go func() { done <- l.Run(ctx) }()
	l.Defer(func() { close(ran) })

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("deferred work did not run")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_FiresAtDeadline(t *testing.T) {
	var mu sync.Mutex
	var fired []string

	d := New(func(b Batch) {
		mu.Lock()
		fired = append(fired, b.SID)
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	d.Schedule(ctx, time.Now().Add(30*time.Millisecond), Batch{SID: "IMSI1"})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(fired) == 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	assert.Equal(t, []string{"IMSI1"}, fired)
	mu.Unlock()
}

func TestDispatcher_CancelDropsPendingAction(t *testing.T) {
	var mu sync.Mutex
	var fired []string

	d := New(func(b Batch) {
		mu.Lock()
		fired = append(fired, b.SID)
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	d.Schedule(ctx, time.Now().Add(50*time.Millisecond), Batch{SID: "IMSI1"})
	d.Cancel(ctx, "IMSI1")

	time.Sleep(150 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Empty(t, fired)
}

func TestDispatcher_FiresInDeadlineOrder(t *testing.T) {
	var mu sync.Mutex
	var fired []string

	d := New(func(b Batch) {
		mu.Lock()
		fired = append(fired, b.SID)
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	now := time.Now()
	d.Schedule(ctx, now.Add(60*time.Millisecond), Batch{SID: "second"})
	d.Schedule(ctx, now.Add(20*time.Millisecond), Batch{SID: "first"})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(fired) == 2
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"first", "second"}, fired)
}

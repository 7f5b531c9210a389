package scheduler

import (
	"container/heap"
	"context"
	"sync"
	"time"
)

// Dispatcher is a single-threaded cooperative scheduler: one
// goroutine owns a min-heap of pending actions and a
// time.Timer; Schedule/Cancel are posted in as commands so the heap is
// never touched from more than one goroutine.
type Dispatcher struct {
	fire FireFunc

	cmdCh  chan func(*dispatcherState)
	doneCh chan struct{}

	nextID uint64
	idMu   sync.Mutex
}

type dispatcherState struct {
	queue actionQueue
	bySID map[string][]*pendingAction
}

// New returns a Dispatcher that invokes fire when a scheduled batch's
// deadline elapses. Call Run to start its goroutine.
func New(fire FireFunc) *Dispatcher {
	return &Dispatcher{
		fire:   fire,
		cmdCh:  make(chan func(*dispatcherState), 64),
		doneCh: make(chan struct{}),
	}
}

// Run drives the dispatcher's event loop until ctx is canceled.
// Callers should run it in its own goroutine.
func (d *Dispatcher) Run(ctx context.Context) {
	defer close(d.doneCh)

	state := &dispatcherState{bySID: make(map[string][]*pendingAction)}
	heap.Init(&state.queue)

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()
	resetTimer := func() {
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		if state.queue.Len() == 0 {
			timer.Reset(time.Hour)
			return
		}
		delay := time.Until(state.queue[0].at)
		if delay < 0 {
			delay = 0
		}
		timer.Reset(delay)
	}
	resetTimer()

	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-d.cmdCh:
			cmd(state)
			resetTimer()
		case <-timer.C:
			now := time.Now()
			for state.queue.Len() > 0 && !state.queue[0].at.After(now) {
				action := heap.Pop(&state.queue).(*pendingAction)
				removeFromSIDIndex(state, action)
				d.fire(action.batch)
			}
			resetTimer()
		}
	}
}

func removeFromSIDIndex(state *dispatcherState, action *pendingAction) {
	list := state.bySID[action.sid]
	for i, a := range list {
		if a.id == action.id {
			state.bySID[action.sid] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(state.bySID[action.sid]) == 0 {
		delete(state.bySID, action.sid)
	}
}

// Schedule enqueues batch to fire at deadline. It returns once the
// command has been accepted by the dispatcher loop.
func (d *Dispatcher) Schedule(ctx context.Context, deadline time.Time, batch Batch) {
	d.idMu.Lock()
	d.nextID++
	id := d.nextID
	d.idMu.Unlock()

	ack := make(chan struct{})
	cmd := func(state *dispatcherState) {
		action := &pendingAction{id: id, at: deadline, sid: batch.SID, batch: batch}
		heap.Push(&state.queue, action)
		state.bySID[batch.SID] = append(state.bySID[batch.SID], action)
		close(ack)
	}
	select {
	case d.cmdCh <- cmd:
	case <-ctx.Done():
		return
	}
	select {
	case <-ack:
	case <-ctx.Done():
	}
}

// Cancel drops every pending action for sid.
func (d *Dispatcher) Cancel(ctx context.Context, sid string) {
	ack := make(chan struct{})
	cmd := func(state *dispatcherState) {
		for _, action := range state.bySID[sid] {
			if action.index >= 0 {
				heap.Remove(&state.queue, action.index)
			}
		}
		delete(state.bySID, sid)
		close(ack)
	}
	select {
	case d.cmdCh <- cmd:
	case <-ctx.Done():
		return
	}
	select {
	case <-ack:
	case <-ctx.Done():
	}
}

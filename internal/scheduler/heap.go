package scheduler

import (
	"container/heap"
	"time"
)

type pendingAction struct {
	id    uint64
	at    time.Time
	sid   string
	batch Batch
	index int // heap.Interface bookkeeping
}

// actionQueue is a min-heap on (at) implementing container/heap.Interface.
type actionQueue []*pendingAction

func (q actionQueue) Len() int { return len(q) }

func (q actionQueue) Less(i, j int) bool { return q[i].at.Before(q[j].at) }

func (q actionQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *actionQueue) Push(x any) {
	action := x.(*pendingAction)
	action.index = len(*q)
	*q = append(*q, action)
}

func (q *actionQueue) Pop() any {
	old := *q
	n := len(old)
	action := old[n-1]
	old[n-1] = nil
	action.index = -1
	*q = old[:n-1]
	return action
}

var _ heap.Interface = (*actionQueue)(nil)

// internal/sched/queue.go

package sched

import (
	"sync"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
)

// categoryQueue is a FIFO of pending jobs for a single category. Appends are
// mutex-protected so producers may enqueue from worker goroutines; the drain
// side is always driven by the single frame thread.
type categoryQueue struct {
	mu sync.Mutex
	q  *linkedlistqueue.Queue
}

func newCategoryQueue() *categoryQueue {
	return &categoryQueue{q: linkedlistqueue.New()}
}

// push appends to the back of the queue and returns the new depth.
func (cq *categoryQueue) push(j *Job) int {
	cq.mu.Lock()
	defer cq.mu.Unlock()
	cq.q.Enqueue(j)
	return cq.q.Size()
}

// pop removes and returns the front of the queue.
func (cq *categoryQueue) pop() (*Job, bool) {
	cq.mu.Lock()
	defer cq.mu.Unlock()
	v, ok := cq.q.Dequeue()
	if !ok {
		return nil, false
	}
	return v.(*Job), true
}

// depth returns the current queue length without mutating it.
func (cq *categoryQueue) depth() int {
	cq.mu.Lock()
	defer cq.mu.Unlock()
	return cq.q.Size()
}

package sched

import (
	"sync"
	"testing"
	"time"
)

func TestCategoryQueueFIFO(t *testing.T) {
	q := newCategoryQueue()

	for i := 1; i <= 3; i++ {
		q.push(newJob(JobID(i), Transform, 0.1, time.Now(), nil))
	}

	for i := 1; i <= 3; i++ {
		j, ok := q.pop()
		if !ok {
			t.Fatalf("expected job %d, queue empty", i)
		}
		if j.ID != JobID(i) {
			t.Errorf("expected job %d, got %d", i, j.ID)
		}
	}
}

func TestCategoryQueueEmpty(t *testing.T) {
	q := newCategoryQueue()

	if _, ok := q.pop(); ok {
		t.Fatal("expected empty queue")
	}
	if q.depth() != 0 {
		t.Fatalf("expected depth 0, got %d", q.depth())
	}

	// Push one, pop one, verify empty again.
	q.push(newJob(1, Physics, 0.5, time.Now(), nil))
	if q.depth() != 1 {
		t.Fatalf("expected depth 1, got %d", q.depth())
	}
	q.pop()
	if _, ok := q.pop(); ok {
		t.Error("expected empty after pop")
	}
}

func TestCategoryQueueConcurrentPush(t *testing.T) {
	q := newCategoryQueue()

	const producers = 8
	const perProducer = 100

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.push(newJob(0, AI, 0.1, time.Now(), nil))
			}
		}()
	}
	wg.Wait()

	if q.depth() != producers*perProducer {
		t.Fatalf("expected depth %d, got %d", producers*perProducer, q.depth())
	}
}

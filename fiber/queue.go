package fiber

import "sync"

// Queue is an intrusive, head-insertion doubly-linked list of fibers. The
// zero value is an empty queue.
//
// All mutation goes through enqueueLocked/dequeueLocked, which take no lock
// themselves: callers invoke them with the scheduler's critical section
// held. Order within a queue is insertion-at-head;
// queues are expected to stay short, so there is no benefit to paying for
// ordered insertion.
type Queue struct {
	head *Fiber
}

// critical section stands in for the original __disable_irq/__enable_irq
// bracket. On the host engine the timer tick and the event dispatcher are
// real goroutines racing against fiber code, so a mutex is the faithful
// analogue; on a baremetal target this would instead mask the relevant
// interrupt.
type criticalSection struct {
	mu sync.Mutex
}

func (c *criticalSection) enter() { c.mu.Lock() }
func (c *criticalSection) exit()  { c.mu.Unlock() }

// enqueueLocked links f at the head of q. f must currently be off-queue.
func enqueueLocked(f *Fiber, q *Queue) {
	f.next = q.head
	f.prev = nil
	if q.head != nil {
		q.head.prev = f
	}
	q.head = f
	f.queue = q
}

// dequeueLocked unlinks f from whatever queue it is on. It is a no-op if f is
// already off-queue.
func dequeueLocked(f *Fiber) {
	q := f.queue
	if q == nil {
		return
	}
	if f.prev != nil {
		f.prev.next = f.next
	} else {
		q.head = f.next
	}
	if f.next != nil {
		f.next.prev = f.prev
	}
	f.prev, f.next, f.queue = nil, nil, nil
}

// forEachLocked walks q front to back, invoking visit(f) for each fiber. The
// caller may dequeue/re-enqueue f (and only f) during visit without
// corrupting the walk, because next is snapshotted before visit runs.
func forEachLocked(q *Queue, visit func(f *Fiber)) {
	n := q.head
	for n != nil {
		next := n.next
		visit(n)
		n = next
	}
}

func (q *Queue) empty() bool { return q.head == nil }

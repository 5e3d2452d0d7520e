package fiber

import "testing"

func TestEnqueueDequeueRoundTrip(t *testing.T) {
	var q Queue
	a := &Fiber{}
	b := &Fiber{}

	enqueueLocked(a, &q)
	enqueueLocked(b, &q)
	if q.head != b {
		t.Fatalf("expected b at head, got %v", q.head)
	}

	dequeueLocked(b)
	dequeueLocked(a)
	if !q.empty() {
		t.Fatalf("expected empty queue after round trip, got head=%v", q.head)
	}
	if a.queue != nil || b.queue != nil {
		t.Fatalf("expected both fibers off-queue")
	}
}

func TestDequeueOffQueueIsNoop(t *testing.T) {
	f := &Fiber{}
	dequeueLocked(f) // must not panic
	if f.queue != nil {
		t.Fatalf("expected nil queue")
	}
}

func TestForEachLockedSurvivesRequeueDuringWalk(t *testing.T) {
	var from, to Queue
	a := &Fiber{}
	b := &Fiber{}
	c := &Fiber{}
	enqueueLocked(a, &from)
	enqueueLocked(b, &from)
	enqueueLocked(c, &from)

	var visited []*Fiber
	forEachLocked(&from, func(f *Fiber) {
		visited = append(visited, f)
		dequeueLocked(f)
		enqueueLocked(f, &to)
	})

	if len(visited) != 3 {
		t.Fatalf("expected to visit all 3 fibers, visited %d", len(visited))
	}
	if !from.empty() {
		t.Fatalf("expected source queue empty after walk")
	}
	count := 0
	forEachLocked(&to, func(f *Fiber) { count++ })
	if count != 3 {
		t.Fatalf("expected 3 fibers moved to destination queue, got %d", count)
	}
}

func TestPackUnpackFilterRoundTrip(t *testing.T) {
	cases := []struct{ id, value uint16 }{
		{0, 0},
		{5, 0},
		{0, 7},
		{5, 7},
		{0xFFFF, 0xFFFF},
	}
	for _, c := range cases {
		packed := packFilter(c.id, c.value)
		id, value := unpackFilter(packed)
		if id != c.id || value != c.value {
			t.Fatalf("packFilter(%d,%d) round trip got id=%d value=%d", c.id, c.value, id, value)
		}
	}
}

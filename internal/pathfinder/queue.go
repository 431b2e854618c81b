package pathfinder

// queue is a FIFO of paths backed by a slice. Popped slots are cleared and the
// backing array is compacted once the dead prefix dominates it.
type queue struct {
	items []*Path
	head  int
}

func newQueue() *queue {
	return &queue{items: make([]*Path, 0, 64)}
}

func (q *queue) len() int { return len(q.items) - q.head }

func (q *queue) push(p *Path) { q.items = append(q.items, p) }

func (q *queue) front() *Path { return q.items[q.head] }

func (q *queue) pop() *Path {
	p := q.items[q.head]
	q.items[q.head] = nil
	q.head++
	if q.head >= 1024 && q.head*2 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	return p
}

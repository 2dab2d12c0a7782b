// Package queue implements the shared cyclic process-queue buffer that
// every warrior's processes slide through: one []int holding core
// addresses, sized nwarriors*processes+1, with each warrior owning a
// sliding head/tail cursor pair into it.
package queue

// Buffer is the process queue shared by every warrior in a battle. Core
// addresses for runnable processes live in buf; Head/Tail are per-warrior
// cursors into it.
type Buffer struct {
	buf  []int
	Head []int
	Tail []int
}

// New builds a queue buffer sized nwarriors*processes+1 and assigns each
// warrior its initial slice in reverse order, exactly as the original
// simulator does: warrior 0 gets the slice at the *high* end of the
// buffer, warrior n-1 the slice at the low end. starts[i] is warrior
// i's first active process (a core address); Head[i]/Tail[i] are always
// keyed by the warrior's own natural index i, regardless of where its
// slice physically sits in buf, so callers can use the same warrior id
// across the queue, the ring and the process-count table.
func New(nwarriors, processes int, starts []int) *Buffer {
	size := nwarriors*processes + 1
	q := &Buffer{
		buf:  make([]int, size),
		Head: make([]int, nwarriors),
		Tail: make([]int, nwarriors),
	}
	pofs := size - 1
	for i := 0; i < nwarriors; i++ {
		pofs -= processes
		q.buf[pofs] = starts[i]
		q.Head[i] = pofs
		q.Tail[i] = pofs + 1
	}
	return q
}

func (q *Buffer) wrap(i int) int {
	if i == len(q.buf) {
		return 0
	}
	return i
}

// Dequeue pops the core address at the head of warrior id's queue and
// advances its head cursor.
func (q *Buffer) Dequeue(id int) int {
	addr := q.buf[q.Head[id]]
	q.Head[id] = q.wrap(q.Head[id] + 1)
	return addr
}

// Enqueue pushes a core address onto the tail of warrior id's queue and
// advances its tail cursor.
func (q *Buffer) Enqueue(id int, addr int) {
	q.buf[q.Tail[id]] = addr
	q.Tail[id] = q.wrap(q.Tail[id] + 1)
}

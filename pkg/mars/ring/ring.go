// Package ring implements the warrior ring: the intrusive doubly-linked
// list of still-alive warriors the scheduler walks round-robin, using
// index arrays instead of pointers so a death unlinks in O(1) without
// aliasing concerns in Go.
package ring

// Ring links nwarriors warriors into a circular doubly-linked list via
// index arrays. A freshly initialized ring links warrior i to warrior
// i+1 (mod n): tracing the original simulator's reverse queue-slice
// allocation back out, that is the execution order it actually produces.
type Ring struct {
	next  []int
	prev  []int
	alive int
	n     int
}

// New builds a ring over warriors 0..n-1, all alive.
func New(n int) *Ring {
	r := &Ring{
		next:  make([]int, n),
		prev:  make([]int, n),
		alive: n,
		n:     n,
	}
	for i := 0; i < n; i++ {
		r.next[i] = (i + 1) % n
		r.prev[i] = (i - 1 + n) % n
	}
	return r
}

// Successor returns the next alive warrior after id in the ring.
func (r *Ring) Successor(id int) int { return r.next[id] }

// Remove unlinks warrior id from the ring and decrements the alive count.
func (r *Ring) Remove(id int) {
	r.next[r.prev[id]] = r.next[id]
	r.prev[r.next[id]] = r.prev[id]
	r.alive--
}

// AliveCount returns the number of warriors still linked into the ring.
func (r *Ring) AliveCount() int { return r.alive }

// Walk calls fn for each warrior in the ring starting at start and moving
// via Successor, stopping as soon as fn returns true (found) or the walk
// has visited every living warrior once.
func (r *Ring) Walk(start int, fn func(id int) bool) bool {
	id := start
	for i := 0; i < r.alive; i++ {
		if fn(id) {
			return true
		}
		id = r.next[id]
	}
	return false
}

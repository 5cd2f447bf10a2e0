package sat

import (
	"fmt"
	"math/bits"
	"strings"
)

// Queue is a FIFO ring buffer whose capacity is always a power of two. It is
// used to hold the literals waiting to be propagated.
type Queue[T any] struct {
	ring  []T
	mask  int
	start int
	end   int
	size  int
}

// NewQueue returns an empty queue able to hold at least capa elements before
// growing.
func NewQueue[T any](capa int) *Queue[T] {
	capa = ceilPow2(capa)
	return &Queue[T]{
		ring: make([]T, capa),
		mask: capa - 1,
	}
}

// ceilPow2 returns the smallest power of two strictly greater than i, or 1
// when i is not positive.
func ceilPow2(i int) int {
	if i <= 0 {
		return 1
	}
	return 1 << bits.Len(uint(i))
}

func (q *Queue[T]) IsEmpty() bool {
	return q.size == 0
}

func (q *Queue[T]) Size() int {
	return q.size
}

// Clear empties the queue in constant time. The ring is kept.
func (q *Queue[T]) Clear() {
	q.start, q.end, q.size = 0, 0, 0
}

func (q *Queue[T]) Push(elem T) {
	if q.size == len(q.ring) {
		q.grow()
	}
	q.ring[q.end] = elem
	q.end = (q.end + 1) & q.mask
	q.size++
}

// grow doubles the ring and unrolls its content so that the oldest element
// ends up at index 0.
func (q *Queue[T]) grow() {
	ring := make([]T, len(q.ring)*2)
	n := copy(ring, q.ring[q.start:])
	copy(ring[n:], q.ring[:q.start])
	q.ring = ring
	q.mask = len(ring) - 1
	q.start = 0
	q.end = q.size
}

// Pop removes and returns the oldest element. It panics on an empty queue.
func (q *Queue[T]) Pop() T {
	if q.size == 0 {
		panic("pop on an empty queue")
	}
	elem := q.ring[q.start]
	q.start = (q.start + 1) & q.mask
	q.size--
	return elem
}

func (q *Queue[T]) String() string {
	sb := strings.Builder{}
	sb.WriteString("Queue[")
	for i := 0; i < q.size; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%v", q.ring[(q.start+i)&q.mask])
	}
	sb.WriteByte(']')
	return sb.String()
}

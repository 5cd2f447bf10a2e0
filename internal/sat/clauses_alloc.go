package sat

import (
	"math/bits"
	"sync"
)

// Clause literals are drawn from size-classed pools so that the many short
// lived learnt clauses recycle their backing arrays once they are deleted.

const nPools = 4

// Smallest capacity served by the last, unbounded pool.
const lastCapa = 1 << nPools

// Pool i serves requests whose capacity has bit length i+1; the last pool
// serves everything from 2^(nPools-1) up.
var pools [nPools]sync.Pool

// poolID returns the pool serving slices of capacity capa.
func poolID(capa int) int {
	return min(max(bits.Len(uint(capa))-1, 0), nPools-1)
}

// allocSlice returns an empty slice with at least the requested capacity.
func allocSlice(capa int) *[]Literal {
	id := poolID(capa)
	if ref, ok := pools[id].Get().(*[]Literal); ok && capa <= cap(*ref) {
		return ref
	}

	switch {
	case id < nPools-1:
		s := make([]Literal, 0, 2<<id)
		return &s
	case capa <= lastCapa*2:
		s := make([]Literal, 0, lastCapa*2)
		return &s
	default:
		s := make([]Literal, 0, capa)
		return &s
	}
}

// freeSlice hands s back to its pool.
func freeSlice(s *[]Literal) {
	*s = (*s)[:0]
	pools[poolID(cap(*s))].Put(s)
}

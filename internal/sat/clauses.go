package sat

import (
	"strings"
)

type Clause struct {
	learnt   bool
	activity float64

	// The clause's literals. Must always contain at least two literals. The
	// first two literals are the watched ones.
	literals []Literal

	// Pooled backing array of literals, released when the clause is removed.
	sliceRef *[]Literal
}

// NewClause builds a clause from literals and attaches it to the solver. The
// input slice is never retained.
//
// Problem clauses are first normalized against the root-level assignment:
// duplicate and false literals are dropped, and tautologies or clauses that
// are already satisfied yield a nil clause. A clause reduced to a single
// literal is enqueued directly. The boolean result is false when the clause
// cannot be satisfied.
func NewClause(s *Solver, literals []Literal, learnt bool) (*Clause, bool) {
	ref := allocSlice(len(literals))
	lits := append(*ref, literals...)

	if !learnt {
		seen := make(map[Literal]struct{}, len(lits))
		j := 0
		for _, l := range lits {
			if _, ok := seen[l.Opposite()]; ok {
				freeSlice(ref)
				return nil, true // always true
			}
			if _, ok := seen[l]; ok {
				continue
			}
			seen[l] = struct{}{}

			switch s.LitValue(l) {
			case True:
				freeSlice(ref)
				return nil, true // already satisfied
			case False:
				continue
			}
			lits[j] = l
			j++
		}
		lits = lits[:j]
	}

	switch len(lits) {
	case 0:
		freeSlice(ref)
		return nil, false
	case 1:
		l := lits[0]
		freeSlice(ref)
		return nil, s.enqueue(l, nil)
	}

	*ref = lits
	c := &Clause{
		learnt:   learnt,
		literals: lits,
		sliceRef: ref,
	}

	if learnt {
		// Watch the literal of highest decision level next to the asserting
		// one so that backjumping leaves it as the last one assigned.
		maxLevel := -1
		wl := -1
		for i := 1; i < len(c.literals); i++ {
			if level := s.level[c.literals[i].VarID()]; level > maxLevel {
				maxLevel = level
				wl = i
			}
		}
		c.literals[wl], c.literals[1] = c.literals[1], c.literals[wl]

		s.BumpClaActivity(c)
		for _, l := range c.literals {
			s.BumpVarActivity(l)
		}
	}

	s.Watch(c, c.literals[0].Opposite(), c.literals[1])
	s.Watch(c, c.literals[1].Opposite(), c.literals[0])

	return c, true
}

func (c *Clause) locked(s *Solver) bool {
	return s.reason[c.literals[0].VarID()] == c
}

// Remove detaches the clause from the solver and releases its literals.
func (c *Clause) Remove(s *Solver) {
	s.Unwatch(c, c.literals[0].Opposite())
	s.Unwatch(c, c.literals[1].Opposite())
	if c.sliceRef != nil {
		freeSlice(c.sliceRef)
		c.sliceRef = nil
	}
}

// Simplify drops the literals that are false at the root level. It returns
// true if the clause is satisfied and can be removed.
func (c *Clause) Simplify(s *Solver) bool {
	j := 0
	for i := 0; i < len(c.literals); i++ {
		switch s.LitValue(c.literals[i]) {
		case True:
			return true
		case False:
			// discard the literal.
		case Unknown:
			c.literals[j] = c.literals[i]
			j++
		}
	}
	c.literals = c.literals[:j]
	return false
}

// Propagate is called when l became true, that is, when the watched literal
// l.Opposite() became false. It returns false on conflict.
func (c *Clause) Propagate(s *Solver, l Literal) bool {
	// Make sure the false literal is c.literals[1].
	opp := l.Opposite()
	if c.literals[0] == opp {
		c.literals[0] = c.literals[1]
		c.literals[1] = opp
	}

	// If c.literals[0] is True, then the clause is already true.
	if s.LitValue(c.literals[0]) == True {
		s.Watch(c, l, c.literals[0])
		return true
	}

	// Look for a new literal to watch.
	for i := 2; i < len(c.literals); i++ {
		if s.LitValue(c.literals[i]) != False {
			c.literals[1] = c.literals[i]
			c.literals[i] = opp
			s.Watch(c, c.literals[1].Opposite(), c.literals[0])
			return true
		}
	}

	// The first literal must be true if all other literals are false.
	s.Watch(c, l, c.literals[0])
	return s.enqueue(c.literals[0], c)
}

func (c *Clause) ExplainFailure(s *Solver) []Literal {
	s.tmpReason = s.tmpReason[:0]
	for _, l := range c.literals {
		s.tmpReason = append(s.tmpReason, l.Opposite())
	}
	if c.learnt {
		s.BumpClaActivity(c)
	}
	return s.tmpReason
}

func (c *Clause) ExplainAssign(s *Solver, l Literal) []Literal {
	s.tmpReason = s.tmpReason[:0]
	for i := 1; i < len(c.literals); i++ {
		s.tmpReason = append(s.tmpReason, c.literals[i].Opposite())
	}
	if c.learnt {
		s.BumpClaActivity(c)
	}
	return s.tmpReason
}

func (c *Clause) String() string {
	sb := strings.Builder{}
	sb.WriteString("Clause[")
	for i, l := range c.literals {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

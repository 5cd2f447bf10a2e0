package sat

import (
	"github.com/rhartert/yagh"
)

// VarOrder selects the next decision variable: the unassigned variable of
// highest activity, kept at the top of a min-heap keyed on negated activity.
type VarOrder struct {
	solver      *Solver
	phase       []LBool
	phaseSaving bool
	heap        *yagh.IntMap[float64]
}

// NewVarOrder returns an ordering over the nVar variables of s, all of them
// initially eligible.
func NewVarOrder(s *Solver, nVar int, phaseSaving bool) *VarOrder {
	vo := &VarOrder{
		solver:      s,
		phase:       make([]LBool, nVar),
		phaseSaving: phaseSaving,
		heap:        yagh.New[float64](nVar),
	}
	for v := 0; v < nVar; v++ {
		vo.Undo(v)
	}
	return vo
}

// NewVar is a no-op: variables are only added to the ordering when a search
// starts.
func (vo *VarOrder) NewVar() {}

// Update repositions varID after its activity changed.
func (vo *VarOrder) Update(varID int) {
	if vo.heap.Contains(varID) {
		vo.heap.Put(varID, -vo.solver.activities[varID])
	}
}

// Undo makes varID eligible again after it has been unassigned.
func (vo *VarOrder) Undo(varID int) {
	if vo.phaseSaving {
		vo.phase[varID] = vo.solver.VarValue(varID)
	}
	vo.heap.Put(varID, -vo.solver.activities[varID])
}

// Select returns the decision literal for the most active unassigned
// variable. The boolean is false when every variable is assigned.
func (vo *VarOrder) Select() (Literal, bool) {
	for {
		next, ok := vo.heap.Pop()
		if !ok {
			return 0, false
		}
		if vo.solver.VarValue(next.Elem) != Unknown {
			continue // already assigned
		}
		if vo.phase[next.Elem] == True {
			return PositiveLiteral(next.Elem), true
		}
		return NegativeLiteral(next.Elem), true
	}
}

package sat

// stampSet is a set of variable IDs that can be emptied in constant time.
// Membership is recorded as the stamp of the current generation; clearing the
// set starts a new generation.
type stampSet struct {
	stamps []uint32
	gen    uint32
}

func newStampSet() *stampSet {
	return &stampSet{gen: 1}
}

func (ss *stampSet) Contains(v int) bool {
	return ss.stamps[v] == ss.gen
}

func (ss *stampSet) Add(v int) {
	ss.stamps[v] = ss.gen
}

func (ss *stampSet) Clear() {
	ss.gen++
	if ss.gen == 0 { // wrapped around
		ss.gen = 1
		clear(ss.stamps)
	}
}

// Grow makes room for one more variable.
func (ss *stampSet) Grow() {
	ss.stamps = append(ss.stamps, 0)
}

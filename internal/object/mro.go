package object

// ComputeMRO builds the method resolution order for a class with the
// given base list: a real depth-first left-to-right linearization (the
// pre-2.3 CPython scheme, not C3), keeping each base's own chain intact
// and collapsing repeats to their first (most-derived) occurrence.
func ComputeMRO(self *Value, bases []*Value) []*Value {
	mro := []*Value{self}
	seen := map[*Value]bool{self: true}
	for _, base := range bases {
		for _, anc := range base.MRO {
			if seen[anc] {
				continue
			}
			seen[anc] = true
			mro = append(mro, anc)
		}
	}
	return mro
}

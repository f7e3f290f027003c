package world

import "slices"

// registry owns the live actor index of a World together with the queues that
// defer structural changes until the commit phase.
type registry struct {
	groups map[Kind][]Member
	// kinds lists every committed kind in first-insertion order; map
	// iteration order is random and must not leak into update or draw order.
	kinds []Kind

	adds    []Member
	removes []Member
}

func newRegistry() registry {
	return registry{groups: map[Kind][]Member{}}
}

// group returns the indexed sequence for kind. Callers must not modify it.
func (r *registry) group(kind Kind) []Member {
	return r.groups[kind]
}

func (r *registry) enqueueAdd(m Member)    { r.adds = append(r.adds, m) }
func (r *registry) enqueueRemove(m Member) { r.removes = append(r.removes, m) }

// takeAdds hands over the pending additions and resets the queue.
func (r *registry) takeAdds() []Member {
	q := r.adds
	r.adds = nil
	return q
}

// takeRemoves hands over the pending removals and resets the queue.
func (r *registry) takeRemoves() []Member {
	q := r.removes
	r.removes = nil
	return q
}

// insert appends m to its kind's sequence, creating the sequence on first use.
func (r *registry) insert(m Member) {
	kind := m.Kind()
	group, ok := r.groups[kind]
	if !ok {
		r.kinds = append(r.kinds, kind)
	}
	r.groups[kind] = append(group, m)
}

// erase drops the first entry of m from its kind's sequence. It reports
// whether m is still indexed afterwards; erasing an absent actor is a no-op.
func (r *registry) erase(m Member) bool {
	kind := m.Kind()
	group := r.groups[kind]
	target := m.base()
	idx := slices.IndexFunc(group, func(o Member) bool { return o.base() == target })
	if idx < 0 {
		return false
	}
	group = slices.Delete(group, idx, idx+1)
	r.groups[kind] = group
	return slices.ContainsFunc(group, func(o Member) bool { return o.base() == target })
}

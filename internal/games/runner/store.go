package runner

// store is an ordered collection of entities owned by the World.
//
// Entities keep insertion order while present. An index handed out by a
// query is only valid until the next mutating call; callers that need a
// stable reference use the entity ID.
type store struct {
	items []Entity
}

func (s *store) add(e Entity) {
	s.items = append(s.items, e)
}

func (s *store) len() int {
	return len(s.items)
}

// view exposes the live entities. The slice must not be retained across a
// mutating call.
func (s *store) view() []Entity {
	return s.items
}

// removeAt splices out the entity at index i. Stale indices are ignored.
func (s *store) removeAt(i int) bool {
	if i < 0 || i >= len(s.items) {
		return false
	}
	copy(s.items[i:], s.items[i+1:])
	s.items[len(s.items)-1] = Entity{}
	s.items = s.items[:len(s.items)-1]
	return true
}

// indexOf returns the current index of the entity with the given ID, or -1.
func (s *store) indexOf(id uint64) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// retain keeps the entities for which keep returns true, compacting in place
// without disturbing their order. Returns how many were dropped.
func (s *store) retain(keep func(e *Entity) bool) int {
	kept := s.items[:0]
	for i := range s.items {
		if keep(&s.items[i]) {
			kept = append(kept, s.items[i])
		}
	}
	removed := len(s.items) - len(kept)
	for i := len(kept); i < len(s.items); i++ {
		s.items[i] = Entity{}
	}
	s.items = kept
	return removed
}

// each calls fn with a pointer to every entity in order.
func (s *store) each(fn func(e *Entity)) {
	for i := range s.items {
		fn(&s.items[i])
	}
}

func (s *store) clear() {
	clear(s.items)
	s.items = s.items[:0]
}

package listing

// Identifiable is implemented by rows that carry a stable backend identity (_id).
type Identifiable interface {
	Identity() string
}

// SelectionSet is a set of rows keyed by identity. It is not safe for
// concurrent use; the owning store serializes access.
type SelectionSet[T Identifiable] struct {
	order []string
	rows  map[string]T
}

// NewSelectionSet creates an empty selection.
func NewSelectionSet[T Identifiable]() *SelectionSet[T] {
	return &SelectionSet[T]{rows: make(map[string]T)}
}

// Toggle adds item when checked and removes it by identity otherwise.
// Both directions are idempotent.
func (s *SelectionSet[T]) Toggle(checked bool, item T) {
	id := item.Identity()
	if checked {
		if _, ok := s.rows[id]; ok {
			return
		}
		s.rows[id] = item
		s.order = append(s.order, id)
		return
	}
	if _, ok := s.rows[id]; !ok {
		return
	}
	delete(s.rows, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Replace makes items the whole selection, dropping duplicate identities.
func (s *SelectionSet[T]) Replace(items []T) {
	s.Clear()
	for _, item := range items {
		s.Toggle(true, item)
	}
}

// Clear empties the selection.
func (s *SelectionSet[T]) Clear() {
	s.order = nil
	s.rows = make(map[string]T)
}

// Contains reports whether a row with id is selected.
func (s *SelectionSet[T]) Contains(id string) bool {
	_, ok := s.rows[id]
	return ok
}

// Len is the number of selected rows.
func (s *SelectionSet[T]) Len() int {
	return len(s.rows)
}

// Items returns the selected rows in the order they were first selected.
func (s *SelectionSet[T]) Items() []T {
	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.rows[id])
	}
	return out
}

// IDs returns the selected identities in selection order.
func (s *SelectionSet[T]) IDs() []string {
	return append([]string(nil), s.order...)
}

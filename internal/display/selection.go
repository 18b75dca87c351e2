package display

import "context"

// Selection tracks ids picked while a list is in edit mode. It is meant for a
// single goroutine and does no locking.
type Selection[K comparable] struct {
	order []K
	set   map[K]struct{}
}

// NewSelection returns an empty selection.
func NewSelection[K comparable]() *Selection[K] {
	return &Selection[K]{set: make(map[K]struct{})}
}

// Toggle adds id when absent and removes it when present.
func (s *Selection[K]) Toggle(id K) {
	if s.set == nil {
		s.set = make(map[K]struct{})
	}
	if _, ok := s.set[id]; ok {
		delete(s.set, id)
		for i, existing := range s.order {
			if existing == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		return
	}
	s.set[id] = struct{}{}
	s.order = append(s.order, id)
}

// Has reports whether id is selected.
func (s *Selection[K]) Has(id K) bool {
	_, ok := s.set[id]
	return ok
}

// Len returns the number of selected ids.
func (s *Selection[K]) Len() int {
	return len(s.set)
}

// IDs returns a copy of the selected ids in the order they were picked.
func (s *Selection[K]) IDs() []K {
	out := make([]K, len(s.order))
	copy(out, s.order)
	return out
}

// Clear drops every selected id, e.g. when leaving edit mode.
func (s *Selection[K]) Clear() {
	s.order = nil
	s.set = make(map[K]struct{})
}

// DeleteResult is the outcome of removing one selected id.
type DeleteResult[K comparable] struct {
	ID  K
	Err error
}

// DeleteSelected calls remove once for every selected id. A failing removal
// does not stop the others; every outcome is reported.
func DeleteSelected[K comparable](ctx context.Context, sel *Selection[K], remove func(context.Context, K) error) []DeleteResult[K] {
	ids := sel.IDs()
	results := make([]DeleteResult[K], 0, len(ids))
	for _, id := range ids {
		results = append(results, DeleteResult[K]{ID: id, Err: remove(ctx, id)})
	}
	return results
}

package numbers

import "slices"

// Set is a deduplicating collection of Numbers backed by a hash map.
// Ordering is applied once, when a sorted snapshot is taken.
type Set struct {
	items map[string]struct{}
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{items: make(map[string]struct{})}
}

// Add inserts n and reports whether it was not already present.
func (s *Set) Add(n Number) bool {
	return s.addDigits(n.String())
}

func (s *Set) addDigits(d string) bool {
	if s.items == nil {
		s.items = make(map[string]struct{})
	}
	if _, ok := s.items[d]; ok {
		return false
	}
	s.items[d] = struct{}{}
	return true
}

// Has returns true if n is in the set.
func (s *Set) Has(n Number) bool {
	_, ok := s.items[n.String()]
	return ok
}

// Len returns the number of distinct values.
func (s *Set) Len() int {
	return len(s.items)
}

// Sorted returns the values in ascending numeric order.
func (s *Set) Sorted() []Number {
	out := make([]Number, 0, len(s.items))
	for d := range s.items {
		out = append(out, Number{digits: d})
	}
	slices.SortFunc(out, Number.Cmp)
	return out
}

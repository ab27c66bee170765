package term

import (
	"sort"
	"strings"
)

// Set is an ordered, name-keyed collection of terms. Insertion order is
// preserved; adding a term whose name is already present is a no-op.
//
// A nil *Set behaves as an empty set for all read operations, so optional
// sets (normalization contexts, empty variable groups) need no guarding.
type Set struct {
	items  []Term
	byName map[string]int
}

// NewSet creates a Set holding the given terms, in order, deduplicated by name.
func NewSet(terms ...Term) *Set {
	s := &Set{byName: make(map[string]int, len(terms))}
	for _, t := range terms {
		s.Add(t)
	}

	return s
}

// Add appends t unless a term with the same name is already present.
// It reports whether t was added.
func (s *Set) Add(t Term) bool {
	if t == nil {
		return false
	}
	if _, ok := s.byName[t.Name()]; ok {
		return false
	}

	if s.byName == nil {
		s.byName = make(map[string]int)
	}
	s.byName[t.Name()] = len(s.items)
	s.items = append(s.items, t)

	return true
}

// AddAll appends every term of other not already present, preserving
// other's order.
func (s *Set) AddAll(other *Set) {
	if other == nil {
		return
	}
	for _, t := range other.items {
		s.Add(t)
	}
}

// Len returns the number of terms in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}

	return len(s.items)
}

// At returns the i-th term in insertion order.
func (s *Set) At(i int) Term {
	return s.items[i]
}

// Terms returns the terms in insertion order. The slice is a copy.
func (s *Set) Terms() []Term {
	if s == nil {
		return nil
	}

	out := make([]Term, len(s.items))
	copy(out, s.items)

	return out
}

// Contains reports whether a term with t's name is present.
func (s *Set) Contains(t Term) bool {
	if s == nil || t == nil {
		return false
	}
	_, ok := s.byName[t.Name()]

	return ok
}

// ContainsName reports whether a term with the given name is present.
func (s *Set) ContainsName(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.byName[name]

	return ok
}

// Overlaps reports whether the two sets share at least one name.
func (s *Set) Overlaps(other *Set) bool {
	if s == nil || other == nil {
		return false
	}

	// Probe the smaller side against the larger one's index.
	small, large := s, other
	if large.Len() < small.Len() {
		small, large = large, small
	}
	for _, t := range small.items {
		if _, ok := large.byName[t.Name()]; ok {
			return true
		}
	}

	return false
}

// Names returns the term names in insertion order.
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}

	out := make([]string, len(s.items))
	for i, t := range s.items {
		out[i] = t.Name()
	}

	return out
}

// SortedNames returns the term names in lexical order. This is the
// canonical rendering used for cache-key identity.
func (s *Set) SortedNames() []string {
	out := s.Names()
	sort.Strings(out)

	return out
}

// Vars returns the members that are variables, in insertion order.
func (s *Set) Vars() []*Var {
	if s == nil {
		return nil
	}

	out := make([]*Var, 0, len(s.items))
	for _, t := range s.items {
		if v, ok := t.(*Var); ok {
			out = append(out, v)
		}
	}

	return out
}

// Select returns a new Set holding the members whose names appear in names,
// preserving this set's order.
func (s *Set) Select(names []string) *Set {
	out := NewSet()
	if s == nil {
		return out
	}

	want := make(map[string]struct{}, len(names))
	for _, n := range names {
		want[n] = struct{}{}
	}
	for _, t := range s.items {
		if _, ok := want[t.Name()]; ok {
			out.Add(t)
		}
	}

	return out
}

// Clone returns a shallow copy of the set.
func (s *Set) Clone() *Set {
	out := NewSet()
	out.AddAll(s)

	return out
}

// Join returns the member names joined with sep, in insertion order.
func (s *Set) Join(sep string) string {
	return strings.Join(s.Names(), sep)
}

// String renders the set as a comma-separated name list, for log output.
func (s *Set) String() string {
	return "(" + s.Join(",") + ")"
}

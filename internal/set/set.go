// Package set provides an insertion-ordered string set.
package set

import (
	"slices"
	"strings"
)

// Ordered is a string set that remembers the order in which items were first
// added.
type Ordered struct {
	index map[string]struct{}
	items []string
}

// New constructs a new Ordered set. Duplicate items after the first are
// dropped.
func New(items ...string) *Ordered {
	s := &Ordered{index: make(map[string]struct{}, len(items))}
	s.Add(items...)
	return s
}

// Add inserts items that aren't already present, keeping first-seen order.
func (s *Ordered) Add(items ...string) {
	for _, item := range items {
		if _, ok := s.index[item]; ok {
			continue
		}
		s.index[item] = struct{}{}
		s.items = append(s.items, item)
	}
}

// Contains checks if the given item is in the set.
func (s *Ordered) Contains(item string) bool {
	_, ok := s.index[item]
	return ok
}

// Len returns the number of items in the set.
func (s *Ordered) Len() int {
	return len(s.items)
}

// Items returns the items in first-seen order. It's safe for the caller to
// mutate the returned slice.
func (s *Ordered) Items() []string {
	return slices.Clone(s.items)
}

// Sorted returns the items as a sorted slice. It's safe for the caller to
// mutate the returned slice.
func (s *Ordered) Sorted() []string {
	items := slices.Clone(s.items)
	slices.Sort(items)
	return items
}

// String implements Stringer.
func (s *Ordered) String() string {
	var b strings.Builder
	b.WriteRune('{')
	for i, item := range s.items {
		if i > 0 {
			b.WriteRune(',')
			b.WriteRune(' ')
		}
		b.WriteString(item)
	}
	b.WriteRune('}')
	return b.String()
}

// Package wordlist holds named word lists that are drawn from without
// replacement and replenished from an immutable snapshot.
package wordlist

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sort"
)

var (
	// ErrUnknownList matches any *UnknownListError.
	ErrUnknownList = errors.New("unknown list")
	// ErrEmptyList is returned when drawing from a list whose restore
	// snapshot has no items.
	ErrEmptyList = errors.New("list has no items")
)

// UnknownListError reports a lookup of a name with neither a working nor a
// restore entry.
type UnknownListError struct {
	Name string
}

// Error implements error.
func (e *UnknownListError) Error() string {
	return fmt.Sprintf("unknown list %q", e.Name)
}

// Is makes UnknownListError match ErrUnknownList.
func (e *UnknownListError) Is(target error) bool {
	return target == ErrUnknownList
}

// Store maps list names to a working sequence, consumed by draws, and a
// restore sequence used to refill it. A Store isn't safe for concurrent use.
type Store struct {
	r       *rand.Rand
	working map[string][]string
	restore map[string][]string
}

// New constructs an empty Store that draws using r.
func New(r *rand.Rand) *Store {
	return &Store{
		r:       r,
		working: make(map[string][]string),
		restore: make(map[string][]string),
	}
}

// NewSeeded constructs an empty Store with a deterministic PCG source.
func NewSeeded(seed uint64) *Store {
	return New(rand.New(rand.NewPCG(seed, seed)))
}

// AddList inserts or overwrites both views of the named list.
func (s *Store) AddList(name string, items []string) {
	s.working[name] = slices.Clone(items)
	s.restore[name] = slices.Clone(items)
}

// AddLists merges lists into the store; on a name collision the new list
// wins. Afterwards every restore sequence is re-snapshotted from the working
// sequences.
func (s *Store) AddLists(lists map[string][]string) {
	for name, items := range lists {
		s.working[name] = slices.Clone(items)
	}
	s.Snapshot()
}

// Has reports whether a list is registered under name.
func (s *Store) Has(name string) bool {
	_, ok := s.restore[name]
	return ok
}

// Get returns a copy of the working sequence, or of the restore sequence if
// the working one is missing or drained.
func (s *Store) Get(name string) ([]string, error) {
	if items := s.working[name]; len(items) > 0 {
		return slices.Clone(items), nil
	}
	if items, ok := s.restore[name]; ok {
		return slices.Clone(items), nil
	}
	return nil, &UnknownListError{Name: name}
}

// Restore returns a copy of the restore sequence.
func (s *Store) Restore(name string) ([]string, error) {
	items, ok := s.restore[name]
	if !ok {
		return nil, &UnknownListError{Name: name}
	}
	return slices.Clone(items), nil
}

// Len returns the number of items left in the working sequence.
func (s *Store) Len(name string) int {
	return len(s.working[name])
}

// Names returns every registered list name, sorted.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.restore))
	for name := range s.restore {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Refill resets a drained working sequence from its restore copy. It's a
// no-op for lists that still have items.
func (s *Store) Refill(name string) error {
	if len(s.working[name]) > 0 {
		return nil
	}
	items, ok := s.restore[name]
	if !ok {
		return &UnknownListError{Name: name}
	}
	s.working[name] = slices.Clone(items)
	return nil
}

// DrawOne removes and returns an item from a uniformly random position in
// the working sequence, refilling it first if it's drained. The order of the
// remaining items isn't preserved.
func (s *Store) DrawOne(name string) (string, error) {
	if err := s.Refill(name); err != nil {
		return "", err
	}
	items := s.working[name]
	if len(items) == 0 {
		return "", fmt.Errorf("draw from %q: %w", name, ErrEmptyList)
	}
	i := s.r.IntN(len(items))
	item := items[i]
	last := len(items) - 1
	items[i] = items[last]
	items[last] = ""
	s.working[name] = items[:last]
	return item, nil
}

// Snapshot copies every working sequence into the restore view. Drained
// working sequences keep their previous restore copy.
func (s *Store) Snapshot() {
	restore := make(map[string][]string, len(s.working))
	for name, items := range s.working {
		if prev, ok := s.restore[name]; ok && len(items) == 0 {
			restore[name] = prev
			continue
		}
		restore[name] = slices.Clone(items)
	}
	s.restore = restore
}

// Reset copies every restore sequence back into the working view.
func (s *Store) Reset() {
	working := make(map[string][]string, len(s.restore))
	for name, items := range s.restore {
		working[name] = slices.Clone(items)
	}
	s.working = working
}

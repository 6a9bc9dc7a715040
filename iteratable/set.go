package iteratable

import (
	"bytes"
	"fmt"
)

// Set is a set of comparable values which remembers insertion order.
// It carries an internal iterator, which will visit items added while
// iterating (useful for work-list algorithms like closures):
//
//     S.IterateOnce()
//     for S.Next() {
//         item := S.Item()
//         S.Add(…)          // will be visited later on
//     }
//
// The zero value is not ready to use, create sets with NewSet.
type Set struct {
	items []interface{}
	index map[interface{}]int
	at    int // current iteration position
}

// NewSet creates an empty set with an initial capacity (may be 0).
func NewSet(capacity int) *Set {
	if capacity < 0 {
		capacity = 0
	}
	return &Set{
		items: make([]interface{}, 0, capacity),
		index: make(map[interface{}]int, capacity),
		at:    -1,
	}
}

// Add adds items to s. Items already contained are not added again.
// Returns s (for chaining).
func (s *Set) Add(items ...interface{}) *Set {
	for _, item := range items {
		if _, found := s.index[item]; !found {
			s.index[item] = len(s.items)
			s.items = append(s.items, item)
		}
	}
	return s
}

// Contains checks if item is contained in s.
func (s *Set) Contains(item interface{}) bool {
	if s == nil {
		return false
	}
	_, found := s.index[item]
	return found
}

// Size returns the number of items in s.
func (s *Set) Size() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Empty is true for a set with no items.
func (s *Set) Empty() bool {
	return s.Size() == 0
}

// Values returns the items of s in insertion order, as a new slice.
func (s *Set) Values() []interface{} {
	if s == nil {
		return nil
	}
	vals := make([]interface{}, len(s.items))
	copy(vals, s.items)
	return vals
}

// Copy creates a shallow copy of s. The iterator is not copied.
func (s *Set) Copy() *Set {
	c := NewSet(s.Size())
	if s != nil {
		c.Add(s.items...)
	}
	return c
}

// Equals is true if s and other contain the same items, regardless of order.
func (s *Set) Equals(other *Set) bool {
	if s.Size() != other.Size() {
		return false
	}
	for _, item := range s.Values() {
		if !other.Contains(item) {
			return false
		}
	}
	return true
}

// --- Iteration -------------------------------------------------------------

// IterateOnce resets the iterator of s.
func (s *Set) IterateOnce() {
	s.at = -1
}

// Next moves the iterator to the next item. It returns false if all items
// have been visited.
func (s *Set) Next() bool {
	if s.at < len(s.items) {
		s.at++
	}
	return s.at < len(s.items)
}

// Item returns the current item of an iteration.
func (s *Set) Item() interface{} {
	if s.at < 0 || s.at >= len(s.items) {
		return nil
	}
	return s.items[s.at]
}

func (s *Set) String() string {
	var b bytes.Buffer
	b.WriteString("{")
	for i, item := range s.Values() {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(fmt.Sprintf(" %v", item))
	}
	b.WriteString(" }")
	return b.String()
}

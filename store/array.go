package store

import "slices"

// ArrayStore keeps records in insertion order in a growable slice.
type ArrayStore struct {
	records []Record
}

var _ Store = (*ArrayStore)(nil)

// NewArray returns an empty ArrayStore.
func NewArray() *ArrayStore {
	return &ArrayStore{}
}

func (s *ArrayStore) Name() string { return "Array" }

// Insert appends r. Amortized O(1).
func (s *ArrayStore) Insert(r Record) {
	s.records = append(s.records, r)
}

func (s *ArrayStore) index(name string) int {
	for i := range s.records {
		if s.records[i].Name == name {
			return i
		}
	}

	return -1
}

// Search scans from the start. O(n).
func (s *ArrayStore) Search(name string) (Record, bool) {
	i := s.index(name)
	if i < 0 {
		return Record{}, false
	}

	return s.records[i], true
}

func (s *ArrayStore) Update(name string, fields ...Field) bool {
	i := s.index(name)
	if i < 0 {
		return false
	}

	apply(&s.records[i], fields)

	return true
}

// Delete removes the first match and shifts the tail left, keeping order.
func (s *ArrayStore) Delete(name string) bool {
	i := s.index(name)
	if i < 0 {
		return false
	}

	s.records = slices.Delete(s.records, i, i+1)

	return true
}

func (s *ArrayStore) Size() int { return len(s.records) }

package store

type listNode struct {
	record Record
	next   *listNode
}

// ListStore is a singly linked list with a head pointer only. New records
// go to the head, so traversal order is the reverse of insertion.
type ListStore struct {
	head *listNode
	size int
}

var _ Store = (*ListStore)(nil)

// NewList returns an empty ListStore.
func NewList() *ListStore {
	return &ListStore{}
}

func (s *ListStore) Name() string { return "LinkedList" }

// Insert pushes r onto the head. O(1).
func (s *ListStore) Insert(r Record) {
	s.head = &listNode{record: r, next: s.head}
	s.size++
}

func (s *ListStore) find(name string) *listNode {
	for n := s.head; n != nil; n = n.next {
		if n.record.Name == name {
			return n
		}
	}

	return nil
}

func (s *ListStore) Search(name string) (Record, bool) {
	n := s.find(name)
	if n == nil {
		return Record{}, false
	}

	return n.record, true
}

func (s *ListStore) Update(name string, fields ...Field) bool {
	n := s.find(name)
	if n == nil {
		return false
	}

	apply(&n.record, fields)

	return true
}

// Delete unlinks the first node whose name matches.
func (s *ListStore) Delete(name string) bool {
	if s.head == nil {
		return false
	}

	if s.head.record.Name == name {
		old := s.head
		s.head = old.next
		old.next = nil
		s.size--

		return true
	}

	for prev := s.head; prev.next != nil; prev = prev.next {
		if prev.next.record.Name == name {
			removed := prev.next
			prev.next = removed.next
			removed.next = nil
			s.size--

			return true
		}
	}

	return false
}

func (s *ListStore) Size() int { return s.size }

package store

// HashStore maps each distinct name to one record. Inserting a name that is
// already present replaces the stored record.
type HashStore struct {
	records map[string]Record
}

var _ Store = (*HashStore)(nil)

// NewHash returns an empty HashStore.
func NewHash() *HashStore {
	return &HashStore{records: make(map[string]Record)}
}

func (s *HashStore) Name() string { return "HashMap" }

func (s *HashStore) Insert(r Record) {
	s.records[r.Name] = r
}

func (s *HashStore) Search(name string) (Record, bool) {
	r, ok := s.records[name]

	return r, ok
}

func (s *HashStore) Update(name string, fields ...Field) bool {
	r, ok := s.records[name]
	if !ok {
		return false
	}

	apply(&r, fields)
	s.records[name] = r

	return true
}

func (s *HashStore) Delete(name string) bool {
	if _, ok := s.records[name]; !ok {
		return false
	}

	delete(s.records, name)

	return true
}

// Size returns the number of distinct names.
func (s *HashStore) Size() int { return len(s.records) }

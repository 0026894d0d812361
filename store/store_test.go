package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends() []func() Store {
	return []func() Store{
		func() Store { return NewArray() },
		func() Store { return NewList() },
		func() Store { return NewHash() },
		func() Store { return NewTree() },
	}
}

func forEachBackend(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Helper()

	for _, newStore := range backends() {
		s := newStore()
		t.Run(s.Name(), func(t *testing.T) {
			t.Parallel()
			fn(t, s)
		})
	}
}

var (
	alice   = Record{Name: "Alice", Phone: "111", Email: "a@x.com"}
	bob     = Record{Name: "Bob", Phone: "222", Email: "b@x.com"}
	charlie = Record{Name: "Charlie", Phone: "333", Email: "c@x.com"}
)

func TestBasicScenario(t *testing.T) {
	t.Parallel()

	forEachBackend(t, func(t *testing.T, s Store) {
		s.Insert(alice)
		s.Insert(bob)
		s.Insert(charlie)
		require.Equal(t, 3, s.Size())

		got, ok := s.Search("Bob")
		require.True(t, ok)
		assert.Equal(t, bob, got)

		require.True(t, s.Update("Alice", SetPhone("000")))

		got, ok = s.Search("Alice")
		require.True(t, ok)
		assert.Equal(t, "000", got.Phone)
		assert.Equal(t, "a@x.com", got.Email)

		assert.True(t, s.Delete("Charlie"))
		assert.Equal(t, 2, s.Size())
		assert.False(t, s.Delete("Charlie"))
		assert.Equal(t, 2, s.Size())

		_, ok = s.Search("Charlie")
		assert.False(t, ok)
	})
}

func TestSearchAfterInsert(t *testing.T) {
	t.Parallel()

	forEachBackend(t, func(t *testing.T, s Store) {
		records := []Record{alice, bob, charlie}
		for _, r := range records {
			s.Insert(r)

			got, ok := s.Search(r.Name)
			require.True(t, ok, "search %q", r.Name)
			assert.Equal(t, r, got)
		}
	})
}

func TestSearchIsExactMatch(t *testing.T) {
	t.Parallel()

	forEachBackend(t, func(t *testing.T, s Store) {
		s.Insert(alice)

		for _, name := range []string{"alice", "Alic", "Alice ", ""} {
			_, ok := s.Search(name)
			assert.False(t, ok, "search %q", name)
		}
	})
}

func TestEmptyStore(t *testing.T) {
	t.Parallel()

	forEachBackend(t, func(t *testing.T, s Store) {
		assert.Equal(t, 0, s.Size())

		_, ok := s.Search("Alice")
		assert.False(t, ok)
		assert.False(t, s.Update("Alice", SetPhone("1")))
		assert.False(t, s.Delete("Alice"))
		assert.Equal(t, 0, s.Size())
	})
}

func TestSizeTracksInsertsAndDeletes(t *testing.T) {
	t.Parallel()

	forEachBackend(t, func(t *testing.T, s Store) {
		names := []string{"M", "F", "T", "B", "H", "P", "Z", "A", "C"}
		for _, n := range names {
			s.Insert(Record{Name: n})
		}

		deleted := 0
		for _, n := range []string{"F", "Q", "Z", "F", "M"} {
			if s.Delete(n) {
				deleted++
			}
		}

		assert.Equal(t, 3, deleted)
		assert.Equal(t, len(names)-deleted, s.Size())
	})
}

func TestUpdateMissingDoesNotMutate(t *testing.T) {
	t.Parallel()

	forEachBackend(t, func(t *testing.T, s Store) {
		s.Insert(alice)

		assert.False(t, s.Update("Bob", SetPhone("999"), SetEmail("z@z")))
		assert.Equal(t, 1, s.Size())

		got, ok := s.Search("Alice")
		require.True(t, ok)
		assert.Equal(t, alice, got)
	})
}

func TestUpdateFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		fields []Field
		want   Record
	}{
		{
			name: "no fields",
			want: alice,
		},
		{
			name:   "phone only",
			fields: []Field{SetPhone("000")},
			want:   Record{Name: "Alice", Phone: "000", Email: "a@x.com"},
		},
		{
			name:   "email only",
			fields: []Field{SetEmail("new@x.com")},
			want:   Record{Name: "Alice", Phone: "111", Email: "new@x.com"},
		},
		{
			name:   "both",
			fields: []Field{SetPhone("000"), SetEmail("new@x.com")},
			want:   Record{Name: "Alice", Phone: "000", Email: "new@x.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			forEachBackend(t, func(t *testing.T, s Store) {
				s.Insert(alice)
				s.Insert(bob)

				require.True(t, s.Update("Alice", tt.fields...))

				got, ok := s.Search("Alice")
				require.True(t, ok)
				assert.Equal(t, tt.want, got)

				other, _ := s.Search("Bob")
				assert.Equal(t, bob, other)
			})
		})
	}
}

func TestSearchReturnsCopy(t *testing.T) {
	t.Parallel()

	forEachBackend(t, func(t *testing.T, s Store) {
		s.Insert(alice)

		got, _ := s.Search("Alice")
		got.Phone = "mutated"

		again, _ := s.Search("Alice")
		assert.Equal(t, "111", again.Phone)
	})
}

func TestHashOverwritesDuplicate(t *testing.T) {
	t.Parallel()

	s := NewHash()
	s.Insert(alice)
	s.Insert(Record{Name: "Alice", Phone: "999", Email: "second@x.com"})

	assert.Equal(t, 1, s.Size())

	got, ok := s.Search("Alice")
	require.True(t, ok)
	assert.Equal(t, "999", got.Phone)
	assert.Equal(t, "second@x.com", got.Email)

	assert.True(t, s.Delete("Alice"))
	assert.Equal(t, 0, s.Size())
	_, ok = s.Search("Alice")
	assert.False(t, ok)
}

func TestSequenceStoresKeepDuplicates(t *testing.T) {
	t.Parallel()

	first := Record{Name: "Alice", Phone: "1", Email: "first@x.com"}
	second := Record{Name: "Alice", Phone: "2", Email: "second@x.com"}

	tests := []struct {
		store Store
		// record returned first by search given the traversal order
		found Record
		// record left after one delete
		rest Record
	}{
		{store: NewArray(), found: first, rest: second},
		{store: NewList(), found: second, rest: first},
	}

	for _, tt := range tests {
		t.Run(tt.store.Name(), func(t *testing.T) {
			t.Parallel()

			s := tt.store
			s.Insert(first)
			s.Insert(second)
			assert.Equal(t, 2, s.Size())

			got, ok := s.Search("Alice")
			require.True(t, ok)
			assert.Equal(t, tt.found, got)

			require.True(t, s.Delete("Alice"))
			assert.Equal(t, 1, s.Size())

			got, ok = s.Search("Alice")
			require.True(t, ok)
			assert.Equal(t, tt.rest, got)

			require.True(t, s.Delete("Alice"))
			assert.False(t, s.Delete("Alice"))
			assert.Equal(t, 0, s.Size())
		})
	}
}

func TestArrayDeletePreservesOrder(t *testing.T) {
	t.Parallel()

	s := NewArray()
	for _, n := range []string{"a", "b", "c", "d"} {
		s.Insert(Record{Name: n})
	}

	require.True(t, s.Delete("b"))

	names := make([]string, 0, s.Size())
	for _, r := range s.records {
		names = append(names, r.Name)
	}

	assert.Equal(t, []string{"a", "c", "d"}, names)
}

func TestListDeleteSplicesMiddleAndTail(t *testing.T) {
	t.Parallel()

	s := NewList()
	for _, n := range []string{"a", "b", "c", "d"} {
		s.Insert(Record{Name: n})
	}

	// head is d, tail is a
	require.True(t, s.Delete("b"))
	require.True(t, s.Delete("a"))
	require.True(t, s.Delete("d"))

	var names []string
	for n := s.head; n != nil; n = n.next {
		names = append(names, n.record.Name)
	}

	assert.Equal(t, []string{"c"}, names)
	assert.Equal(t, 1, s.Size())
}

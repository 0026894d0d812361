// Package store implements four interchangeable contact stores keyed by
// name: a slice, a singly linked list, a hash map and an unbalanced binary
// search tree.
//
// Duplicate names behave differently per backend. ArrayStore and ListStore
// keep every inserted record and return the first structural match.
// HashStore overwrites. TreeStore keeps duplicates as separate nodes routed
// right and returns the first one met top-down.
//
// None of the stores are safe for concurrent use.
package store

// Record is a single contact. Name is the key; Phone and Email are the
// only fields Update touches.
type Record struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Field changes one attribute of a stored Record during Update.
type Field func(*Record)

// SetPhone overwrites the phone of the matched record.
func SetPhone(phone string) Field {
	return func(r *Record) { r.Phone = phone }
}

// SetEmail overwrites the email of the matched record.
func SetEmail(email string) Field {
	return func(r *Record) { r.Email = email }
}

func apply(r *Record, fields []Field) {
	for _, f := range fields {
		f(r)
	}
}

// Store is the contract shared by every backend.
type Store interface {
	// Name returns the label used for the backend in benchmark output.
	Name() string

	// Insert adds r. Duplicate names are not rejected here; see the
	// package documentation for how each backend treats them.
	Insert(r Record)

	// Search returns the record stored under name, or false if none.
	Search(name string) (Record, bool)

	// Update applies fields to the record stored under name. Fields not
	// supplied are left as they are. It returns false, changing nothing,
	// when name is absent.
	Update(name string, fields ...Field) bool

	// Delete removes the first record stored under name and reports
	// whether one was removed.
	Delete(name string) bool

	// Size returns the number of records currently held.
	Size() int
}

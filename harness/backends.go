package harness

import (
	"errors"
	"fmt"

	"github.com/weiihann/contactbench/store"
)

// ErrUnknownBackend is returned for a backend name with no constructor.
var ErrUnknownBackend = errors.New("unknown backend")

var constructors = map[string]func() store.Store{
	"Array":      func() store.Store { return store.NewArray() },
	"LinkedList": func() store.Store { return store.NewList() },
	"HashMap":    func() store.Store { return store.NewHash() },
	"BST":        func() store.Store { return store.NewTree() },
}

// KnownBackends returns the supported backend names in report order.
func KnownBackends() []string {
	return []string{"Array", "LinkedList", "HashMap", "BST"}
}

// NewBackend returns a fresh, empty store for the named backend.
func NewBackend(name string) (store.Store, error) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownBackend, name)
	}

	return ctor(), nil
}

// ValidateBackends checks that every name is known.
func ValidateBackends(names []string) error {
	for _, name := range names {
		if _, ok := constructors[name]; !ok {
			return fmt.Errorf("%w %q", ErrUnknownBackend, name)
		}
	}

	return nil
}

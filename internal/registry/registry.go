// Package registry holds the immutable table of conversion operations.
//
// The table is built once at process start and never mutated, so concurrent
// lookups need no synchronization. Duplicate keys and missing handlers are
// configuration errors that fail startup, not runtime conditions.
package registry

import (
	"context"
	"fmt"

	"github.com/yuggu7665-beep/converter-tools/internal/domain"
	"github.com/yuggu7665-beep/converter-tools/internal/validate"
)

// Handler is one pure conversion function. It receives an input that already
// passed the descriptor's schema and returns a result value or a typed error.
type Handler func(ctx context.Context, in *validate.Input) (any, error)

// Entry binds an operation descriptor to its converter.
type Entry struct {
	Descriptor domain.Descriptor
	Handler    Handler
}

type key struct {
	category domain.Category
	name     string
}

// Registry resolves (category, operation) pairs to entries in O(1).
type Registry struct {
	entries map[key]Entry
	ordered []Entry
}

// New builds a registry from the given entries. Duplicate (category, name)
// pairs and entries without a handler are rejected.
func New(entries []Entry) (*Registry, error) {
	reg := &Registry{
		entries: make(map[key]Entry, len(entries)),
		ordered: make([]Entry, 0, len(entries)),
	}

	for _, entry := range entries {
		desc := entry.Descriptor
		if desc.Category == "" || desc.Name == "" {
			return nil, fmt.Errorf("registry entry %q/%q has an incomplete identity", desc.Category, desc.Name)
		}
		if entry.Handler == nil {
			return nil, fmt.Errorf("operation %s/%s has no converter", desc.Category, desc.Name)
		}

		k := key{category: desc.Category, name: desc.Name}
		if _, exists := reg.entries[k]; exists {
			return nil, fmt.Errorf("duplicate operation %s/%s", desc.Category, desc.Name)
		}
		reg.entries[k] = entry
		reg.ordered = append(reg.ordered, entry)
	}

	return reg, nil
}

// Lookup resolves an operation by its composite key.
func (r *Registry) Lookup(category domain.Category, operation string) (Entry, bool) {
	entry, ok := r.entries[key{category: category, name: operation}]
	return entry, ok
}

// Descriptors returns all descriptors in registration order.
func (r *Registry) Descriptors() []domain.Descriptor {
	descs := make([]domain.Descriptor, 0, len(r.ordered))
	for _, entry := range r.ordered {
		descs = append(descs, entry.Descriptor)
	}
	return descs
}

// Len returns the number of registered operations.
func (r *Registry) Len() int {
	return len(r.ordered)
}

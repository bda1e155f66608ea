// Package domain defines the core domain types and interfaces.
//
// Concept-oriented files: domain.go (categories, field schemas, operation
// descriptors, the raw request envelope), provider.go (the upstream rate
// provider contract), errors.go (sentinel errors). No implementation code -
// just contracts shared by the validator, registry, converters, and dispatcher.
package domain

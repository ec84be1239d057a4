// Package projection holds response envelopes shared by the HTTP mappers.
package projection

// Collection wraps a list response so fields can be added later without
// breaking clients that expect an object at the top level.
type Collection[T any] struct {
	Count int `json:"count"`
	Data  []T `json:"data"`
}

// NewCollection builds an envelope; a nil slice is emitted as [].
func NewCollection[T any](data []T) Collection[T] {
	if data == nil {
		data = []T{}
	}
	return Collection[T]{Count: len(data), Data: data}
}

// Map converts each source element and wraps the result.
func Map[S, T any](sources []S, fn func(S) T) Collection[T] {
	data := make([]T, 0, len(sources))
	for _, source := range sources {
		data = append(data, fn(source))
	}
	return NewCollection(data)
}

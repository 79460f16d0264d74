package resource

import "github.com/wippyai/native-adapter/errors"

// Typed is a view of a Table restricted to one resource type.
type Typed[T any] struct {
	table  *Table
	typeID TypeID
}

// NewTyped returns a typed view over table.
func NewTyped[T any](table *Table, typeID TypeID) *Typed[T] {
	return &Typed[T]{table: table, typeID: typeID}
}

// Insert adds a value and returns its handle.
func (t *Typed[T]) Insert(value T) (Handle, error) {
	return t.table.Insert(t.typeID, value)
}

// With borrows handle for the duration of fn.
func (t *Typed[T]) With(handle Handle, fn func(T) error) error {
	return t.table.Borrow(handle, t.typeID, func(v any) error {
		typed, ok := v.(T)
		if !ok {
			return errors.New(errors.PhasePlatform, errors.KindInvalidInput).
				Detail("%s %d holds %T", t.typeID, handle, v).
				Build()
		}
		return fn(typed)
	})
}

// Remove destroys the resource behind handle.
func (t *Typed[T]) Remove(handle Handle) error {
	return t.table.Remove(handle, t.typeID)
}

// Len returns the number of live resources of this type.
func (t *Typed[T]) Len() int {
	return t.table.Count(t.typeID)
}

// Each iterates over live resources of this type.
func (t *Typed[T]) Each(fn func(Handle, T) bool) {
	t.table.backend.Each(func(h Handle, id TypeID, v any) bool {
		if id != t.typeID {
			return true
		}
		typed, ok := v.(T)
		if !ok {
			return true
		}
		return fn(h, typed)
	})
}

package resource

import (
	stderrors "errors"
	"sync"

	"go.uber.org/multierr"

	"github.com/wippyai/native-adapter/errors"
)

// Table manages typed resources with borrow tracking and observer support.
type Table struct {
	backend   *LocalBackend
	observers []Observer
	obsMu     sync.RWMutex
}

// NewTable creates a new table with a LocalBackend.
func NewTable() *Table {
	return &Table{
		backend: NewLocalBackend(),
	}
}

// Insert adds a value and returns its handle.
func (t *Table) Insert(typeID TypeID, value any) (Handle, error) {
	handle, err := t.backend.Create(typeID, value)
	if err != nil {
		return 0, errors.Wrap(errors.PhasePlatform, errors.KindNotInitialized, err, typeID.String()+" table closed")
	}

	t.notify(Event{
		Type:   EventCreated,
		Handle: handle,
		TypeID: typeID,
		Value:  value,
	})

	return handle, nil
}

// Get retrieves a value by handle without borrowing it.
func (t *Table) Get(handle Handle) (any, bool) {
	v, _, ok := t.backend.Get(handle)
	return v, ok
}

// GetTyped retrieves a value only if it matches the expected type.
func (t *Table) GetTyped(handle Handle, typeID TypeID) (any, bool) {
	v, actual, ok := t.backend.Get(handle)
	if !ok || actual != typeID {
		return nil, false
	}
	return v, true
}

// Borrow pins a resource for the duration of fn. Removing a borrowed
// resource fails with a busy error.
func (t *Table) Borrow(handle Handle, typeID TypeID, fn func(any) error) error {
	value, err := t.backend.Borrow(handle, typeID)
	if err != nil {
		return t.lookupError(handle, typeID, err)
	}
	t.notify(Event{Type: EventBorrowed, Handle: handle, TypeID: typeID, Value: value})

	defer func() {
		t.backend.ReturnBorrow(handle)
		t.notify(Event{Type: EventBorrowReturned, Handle: handle, TypeID: typeID, Value: value})
	}()
	return fn(value)
}

// Remove takes a resource out of the table and destroys it if it
// implements Dropper. The handle is invalid afterwards even if Drop fails.
func (t *Table) Remove(handle Handle, typeID TypeID) error {
	value, err := t.backend.Drop(handle, typeID)
	if err != nil {
		if stderrors.Is(err, ErrOutstandingBorrow) {
			t.notify(Event{Type: EventDropRejected, Handle: handle, TypeID: typeID})
		}
		return t.lookupError(handle, typeID, err)
	}

	var dropErr error
	if d, ok := value.(Dropper); ok {
		dropErr = d.Drop()
	}

	t.notify(Event{
		Type:   EventDropped,
		Handle: handle,
		TypeID: typeID,
		Value:  value,
	})

	if dropErr != nil {
		return errors.Platform("destroy "+typeID.String(), dropErr)
	}
	return nil
}

func (t *Table) lookupError(handle Handle, typeID TypeID, err error) error {
	switch {
	case stderrors.Is(err, ErrOutstandingBorrow):
		return errors.Busy(errors.PhasePlatform, typeID.String(), handle)
	case stderrors.Is(err, ErrWrongType):
		return errors.New(errors.PhaseDecode, errors.KindInvalidInput).
			Value(handle).
			Cause(err).
			Detail("handle %d is not a %s", handle, typeID).
			Build()
	default:
		return errors.NotFound(errors.PhasePlatform, typeID.String(), handle)
	}
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Table) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of active resources.
func (t *Table) Len() int {
	return t.backend.Len()
}

// Count returns the number of active resources of one type.
func (t *Table) Count(typeID TypeID) int {
	n := 0
	t.backend.Each(func(_ Handle, id TypeID, _ any) bool {
		if id == typeID {
			n++
		}
		return true
	})
	return n
}

// Clear removes every resource that is not borrowed and returns the
// combined errors.
func (t *Table) Clear() error {
	type item struct {
		h  Handle
		id TypeID
	}
	// Collect first: Remove takes the backend lock.
	var items []item
	t.backend.Each(func(h Handle, id TypeID, _ any) bool {
		items = append(items, item{h, id})
		return true
	})
	var err error
	for _, it := range items {
		err = multierr.Append(err, t.Remove(it.h, it.id))
	}
	return err
}

// Close destroys all resources and stops accepting new ones.
func (t *Table) Close() error {
	return t.backend.Close()
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}

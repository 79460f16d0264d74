package resource

import (
	"errors"
	"sync"

	"go.uber.org/multierr"
)

var (
	ErrClosed            = errors.New("resource backend closed")
	ErrNotFound          = errors.New("resource not found")
	ErrWrongType         = errors.New("resource has a different type")
	ErrOutstandingBorrow = errors.New("cannot drop resource with outstanding borrows")
)

// LocalBackend is an in-memory handle store with borrow tracking.
// Freed slots are reused; each reuse bumps a generation counter folded into
// the handle so a stale handle never resolves to a new object.
type LocalBackend struct {
	entries  []entry
	freeList []uint32
	mu       sync.RWMutex
	closed   bool
}

type entry struct {
	value       any
	typeID      TypeID
	generation  uint32
	borrowCount uint32
	valid       bool
}

// NewLocalBackend creates a new in-memory backend.
func NewLocalBackend() *LocalBackend {
	return &LocalBackend{
		entries:  make([]entry, 0, 16),
		freeList: make([]uint32, 0, 8),
	}
}

func makeHandle(slot, generation uint32) Handle {
	return Handle(generation)<<32 | Handle(slot+1)
}

func (b *LocalBackend) lookup(handle Handle) *entry {
	slot := uint32(handle) - 1
	if uint32(handle) == 0 || int(slot) >= len(b.entries) {
		return nil
	}
	e := &b.entries[slot]
	if !e.valid || e.generation != uint32(handle>>32) {
		return nil
	}
	return e
}

// Create stores a value and returns a handle.
func (b *LocalBackend) Create(typeID TypeID, value any) (Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0, ErrClosed
	}

	if n := len(b.freeList); n > 0 {
		slot := b.freeList[n-1]
		b.freeList = b.freeList[:n-1]
		e := &b.entries[slot]
		e.generation++
		e.typeID = typeID
		e.value = value
		e.valid = true
		return makeHandle(slot, e.generation), nil
	}

	b.entries = append(b.entries, entry{typeID: typeID, value: value, valid: true})
	return makeHandle(uint32(len(b.entries)-1), 0), nil
}

// Get retrieves a value by handle.
func (b *LocalBackend) Get(handle Handle) (any, TypeID, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e := b.lookup(handle)
	if e == nil {
		return nil, 0, false
	}
	return e.value, e.typeID, true
}

// Borrow increments the borrow count of a handle of the given type and
// returns its value.
func (b *LocalBackend) Borrow(handle Handle, typeID TypeID) (any, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e := b.lookup(handle)
	if e == nil {
		return nil, ErrNotFound
	}
	if e.typeID != typeID {
		return nil, ErrWrongType
	}
	e.borrowCount++
	return e.value, nil
}

// ReturnBorrow decrements the borrow count for a handle.
func (b *LocalBackend) ReturnBorrow(handle Handle) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	e := b.lookup(handle)
	if e == nil || e.borrowCount == 0 {
		return false
	}
	e.borrowCount--
	return true
}

// Drop removes a resource of the given type and returns its value. The
// caller is responsible for destroying the value.
func (b *LocalBackend) Drop(handle Handle, typeID TypeID) (any, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e := b.lookup(handle)
	if e == nil {
		return nil, ErrNotFound
	}
	if e.typeID != typeID {
		return nil, ErrWrongType
	}
	if e.borrowCount > 0 {
		return nil, ErrOutstandingBorrow
	}

	value := e.value
	e.valid = false
	e.value = nil
	b.freeList = append(b.freeList, uint32(handle)-1)
	return value, nil
}

// Close destroys every remaining resource and rejects further use.
func (b *LocalBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	var err error
	for i := range b.entries {
		if b.entries[i].valid {
			if d, ok := b.entries[i].value.(Dropper); ok {
				err = multierr.Append(err, d.Drop())
			}
		}
	}

	b.entries = nil
	b.freeList = nil
	return err
}

// Len returns the number of active resources.
func (b *LocalBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := 0
	for _, e := range b.entries {
		if e.valid {
			count++
		}
	}
	return count
}

// Each iterates over all active resources in slot order.
func (b *LocalBackend) Each(fn func(Handle, TypeID, any) bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for i, e := range b.entries {
		if e.valid {
			if !fn(makeHandle(uint32(i), e.generation), e.typeID, e.value) {
				break
			}
		}
	}
}

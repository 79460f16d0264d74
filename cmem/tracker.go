package cmem

import (
	"fmt"
	"sync"
	"unsafe"

	nativeadapter "github.com/wippyai/native-adapter"
)

// Tracker wraps an allocator and accounts for every live block.
//
// Freeing a pointer the tracker never handed out (or already took back)
// panics before the inner allocator sees it, turning a would-be heap
// corruption into a contained abnormal termination.
type Tracker struct {
	inner  nativeadapter.Allocator
	live   map[unsafe.Pointer]uintptr
	allocs uint64
	frees  uint64
	bytes  uintptr
	mu     sync.Mutex
}

var _ nativeadapter.Allocator = (*Tracker)(nil)

// NewTracker wraps inner.
func NewTracker(inner nativeadapter.Allocator) *Tracker {
	return &Tracker{
		inner: inner,
		live:  make(map[unsafe.Pointer]uintptr),
	}
}

// Alloc allocates from the inner allocator and records the block.
func (t *Tracker) Alloc(size uintptr) unsafe.Pointer {
	p := t.inner.Alloc(size)
	t.mu.Lock()
	t.live[p] = size
	t.allocs++
	t.bytes += size
	t.mu.Unlock()
	return p
}

// Free releases a tracked block.
func (t *Tracker) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	t.mu.Lock()
	size, ok := t.live[ptr]
	if ok {
		delete(t.live, ptr)
		t.frees++
		t.bytes -= size
	}
	t.mu.Unlock()
	if !ok {
		panic(fmt.Sprintf("cmem: free of untracked pointer %p", ptr))
	}
	t.inner.Free(ptr)
}

// Stats is a snapshot of tracker counters.
type Stats struct {
	Allocs    uint64
	Frees     uint64
	Live      int
	LiveBytes uintptr
}

// Stats returns the current counters.
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Stats{
		Allocs:    t.allocs,
		Frees:     t.frees,
		Live:      len(t.live),
		LiveBytes: t.bytes,
	}
}

// Live returns the number of blocks not yet freed.
func (t *Tracker) Live() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live)
}

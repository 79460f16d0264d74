package cmem

import (
	"sync"
	"unsafe"

	nativeadapter "github.com/wippyai/native-adapter"
)

// GoAllocator serves blocks from the Go heap. Each block stays referenced
// until Free; the Go heap does not move objects, so an address stays valid
// across calls. Blocks are word aligned. Blocks are ordinary Go memory and
// must not be handed to C code under cgo pointer-passing rules; cgo builds
// use CAllocator instead.
type GoAllocator struct {
	live map[unsafe.Pointer]*goBlock
	mu   sync.Mutex
}

type goBlock struct {
	words []uint64
}

var _ nativeadapter.Allocator = (*GoAllocator)(nil)

// NewGoAllocator creates an empty Go-heap allocator.
func NewGoAllocator() *GoAllocator {
	return &GoAllocator{live: make(map[unsafe.Pointer]*goBlock)}
}

// Alloc returns size zeroed bytes.
func (a *GoAllocator) Alloc(size uintptr) unsafe.Pointer {
	size = roundSize(size)
	b := &goBlock{words: make([]uint64, (size+7)/8)}
	p := unsafe.Pointer(&b.words[0])

	a.mu.Lock()
	a.live[p] = b
	a.mu.Unlock()
	return p
}

// Free forgets a block. Unknown pointers are ignored.
func (a *GoAllocator) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	a.mu.Lock()
	delete(a.live, ptr)
	a.mu.Unlock()
}

// Len returns the number of blocks not yet freed.
func (a *GoAllocator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}

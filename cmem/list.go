package cmem

import (
	"sync"
	"unsafe"

	nativeadapter "github.com/wippyai/native-adapter"
)

// AllocationList records blocks allocated while building one result.
type AllocationList struct {
	ptrs []unsafe.Pointer
}

var allocationListPool = sync.Pool{
	New: func() any {
		return &AllocationList{ptrs: make([]unsafe.Pointer, 0, 8)}
	},
}

// NewAllocationList returns an empty list from the pool.
func NewAllocationList() *AllocationList {
	return allocationListPool.Get().(*AllocationList)
}

const maxPooledAllocationCapacity = 128

// Release returns to pool. Must call after Free or Forget; list invalid after Release.
func (al *AllocationList) Release() {
	// Only pool small lists to prevent memory bloat
	if cap(al.ptrs) > maxPooledAllocationCapacity {
		return
	}
	al.Reset()
	allocationListPool.Put(al)
}

// FreeAndRelease frees every recorded block and returns the list to the pool.
func (al *AllocationList) FreeAndRelease(allocator nativeadapter.Allocator) {
	al.Free(allocator)
	al.Release()
}

// Alloc allocates from allocator and records the block.
func (al *AllocationList) Alloc(allocator nativeadapter.Allocator, size uintptr) unsafe.Pointer {
	p := allocator.Alloc(size)
	al.Add(p)
	return p
}

// Add records a block allocated elsewhere.
func (al *AllocationList) Add(ptr unsafe.Pointer) {
	al.ptrs = append(al.ptrs, ptr)
}

// Free releases every recorded block, newest first.
func (al *AllocationList) Free(allocator nativeadapter.Allocator) {
	if allocator == nil {
		return
	}
	for i := len(al.ptrs) - 1; i >= 0; i-- {
		if al.ptrs[i] != nil {
			allocator.Free(al.ptrs[i])
		}
	}
	al.Reset()
}

// Reset forgets the recorded blocks without freeing them, which is how a
// successful build hands ownership on.
func (al *AllocationList) Reset() {
	for i := range al.ptrs {
		al.ptrs[i] = nil
	}
	al.ptrs = al.ptrs[:0]
}

// Count returns the number of recorded blocks.
func (al *AllocationList) Count() int {
	return len(al.ptrs)
}

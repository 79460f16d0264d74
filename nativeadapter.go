package nativeadapter

import "unsafe"

// Allocator hands out memory that outlives the Go call that produced it.
//
// Memory returned by Alloc is not managed by the Go garbage collector and may
// be retained by the host after the boundary call returns. Every pointer must
// be passed to Free of the same allocator exactly once. Alloc never returns
// nil for a successful allocation; exhaustion panics.
type Allocator interface {
	Alloc(size uintptr) unsafe.Pointer
	Free(ptr unsafe.Pointer)
}

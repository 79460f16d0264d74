//go:build cgo

package cmem

/*
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	nativeadapter "github.com/wippyai/native-adapter"
)

// CAllocator allocates with the C runtime's malloc and free.
type CAllocator struct{}

var _ nativeadapter.Allocator = CAllocator{}

// Alloc returns size bytes of zeroed C memory.
func (CAllocator) Alloc(size uintptr) unsafe.Pointer {
	size = roundSize(size)
	p := C.calloc(1, C.size_t(size))
	if p == nil {
		outOfMemory(size)
	}
	return p
}

// Free releases memory obtained from Alloc.
func (CAllocator) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	C.free(ptr)
}

func loadNative() (nativeadapter.Allocator, error) {
	return CAllocator{}, nil
}

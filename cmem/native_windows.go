//go:build !cgo && windows

package cmem

import (
	"unsafe"

	"golang.org/x/sys/windows"

	nativeadapter "github.com/wippyai/native-adapter"
	"github.com/wippyai/native-adapter/errors"
)

// MSVCRTAllocator calls calloc and free exported by msvcrt.dll.
type MSVCRTAllocator struct {
	calloc *windows.LazyProc
	free   *windows.LazyProc
}

var _ nativeadapter.Allocator = (*MSVCRTAllocator)(nil)

func loadNative() (nativeadapter.Allocator, error) {
	dll := windows.NewLazySystemDLL("msvcrt.dll")
	a := &MSVCRTAllocator{
		calloc: dll.NewProc("calloc"),
		free:   dll.NewProc("free"),
	}
	if err := a.calloc.Find(); err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindNotFound, err, "resolve msvcrt calloc")
	}
	if err := a.free.Find(); err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindNotFound, err, "resolve msvcrt free")
	}
	return a, nil
}

// Alloc returns size bytes of zeroed msvcrt memory.
func (a *MSVCRTAllocator) Alloc(size uintptr) unsafe.Pointer {
	size = roundSize(size)
	r1, _, _ := a.calloc.Call(1, size)
	if r1 == 0 {
		outOfMemory(size)
	}
	return unsafe.Pointer(r1)
}

// Free releases memory obtained from Alloc.
func (a *MSVCRTAllocator) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	a.free.Call(uintptr(ptr))
}

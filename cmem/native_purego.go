//go:build !cgo && (darwin || linux)

package cmem

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"

	nativeadapter "github.com/wippyai/native-adapter"
	"github.com/wippyai/native-adapter/errors"
)

// LibcAllocator calls the system libc's calloc and free through purego.
type LibcAllocator struct {
	calloc func(n, size uintptr) unsafe.Pointer
	free   func(ptr unsafe.Pointer)
}

var _ nativeadapter.Allocator = (*LibcAllocator)(nil)

func libcPath() string {
	switch runtime.GOOS {
	case "darwin":
		return "/usr/lib/libSystem.B.dylib"
	default:
		return "libc.so.6"
	}
}

func loadNative() (alloc nativeadapter.Allocator, err error) {
	path := libcPath()
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindNotFound, err,
			fmt.Sprintf("load libc from %s", path))
	}

	// RegisterLibFunc panics when a symbol is missing.
	defer func() {
		if r := recover(); r != nil {
			alloc = nil
			err = errors.New(errors.PhaseLoad, errors.KindNotFound).
				Detail("resolve allocator symbols in %s: %v", path, r).
				Build()
		}
	}()

	a := &LibcAllocator{}
	purego.RegisterLibFunc(&a.calloc, handle, "calloc")
	purego.RegisterLibFunc(&a.free, handle, "free")
	return a, nil
}

// Alloc returns size bytes of zeroed libc memory.
func (a *LibcAllocator) Alloc(size uintptr) unsafe.Pointer {
	size = roundSize(size)
	p := a.calloc(1, size)
	if p == nil {
		outOfMemory(size)
	}
	return p
}

// Free releases memory obtained from Alloc.
func (a *LibcAllocator) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	a.free(ptr)
}

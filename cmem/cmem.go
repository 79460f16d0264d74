package cmem

import (
	"fmt"
	"sync"

	nativeadapter "github.com/wippyai/native-adapter"
)

var (
	nativeOnce  sync.Once
	nativeAlloc nativeadapter.Allocator
	nativeErr   error
)

// Native returns the process-wide native allocator. The allocator is loaded
// on first use; a load failure is returned on every call.
func Native() (nativeadapter.Allocator, error) {
	nativeOnce.Do(func() {
		nativeAlloc, nativeErr = loadNative()
	})
	return nativeAlloc, nativeErr
}

// roundSize avoids zero-byte requests, which malloc may answer with NULL.
func roundSize(size uintptr) uintptr {
	if size == 0 {
		return 1
	}
	return size
}

func outOfMemory(size uintptr) {
	panic(errOutOfMemory{size: size})
}

type errOutOfMemory struct {
	size uintptr
}

func (e errOutOfMemory) Error() string {
	return fmt.Sprintf("cmem: out of memory allocating %d bytes", e.size)
}

//go:build !cgo && !darwin && !linux && !windows

package cmem

import nativeadapter "github.com/wippyai/native-adapter"

func loadNative() (nativeadapter.Allocator, error) {
	return NewGoAllocator(), nil
}

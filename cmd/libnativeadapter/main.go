// Command libnativeadapter builds the adapter as a C shared library:
//
//	go build -buildmode=c-shared -tags glfw -o libnativeadapter.so ./cmd/libnativeadapter
//
// The generated header declares one na_* function per operation. The
// library configures itself on first call from the file named by
// NATIVE_ADAPTER_CONFIG.
package main

import (
	"sync"
	"unsafe"

	"go.uber.org/zap"

	nativeadapter "github.com/wippyai/native-adapter"
	"github.com/wippyai/native-adapter/adapter"
	"github.com/wippyai/native-adapter/boundary"
	"github.com/wippyai/native-adapter/cmem"
	"github.com/wippyai/native-adapter/config"
	"github.com/wippyai/native-adapter/errors"
	"github.com/wippyai/native-adapter/exception"
	"github.com/wippyai/native-adapter/platform/headless"

	// registers the desktop backend when built with -tags glfw
	_ "github.com/wippyai/native-adapter/platform/glfw"
)

var (
	instance *adapter.Adapter
	initOnce sync.Once
)

// get returns the process-wide adapter, opening it on first use.
func get() *adapter.Adapter {
	initOnce.Do(func() {
		instance = initialize(exception.Default(), open)
	})
	return instance
}

// initialize runs open under containment. A failure or panic is recorded
// in log under "init" and yields an adapter whose calls all fail.
func initialize(log *exception.Log, open func() (*adapter.Adapter, error)) *adapter.Adapter {
	if ad := boundary.Run(boundary.New(log, nil), "init", open); ad != nil {
		return ad
	}
	alloc, err := cmem.Native()
	return unavailable(log, alloc, err)
}

func open() (*adapter.Adapter, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	l, err := config.NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	adapter.SetLogger(l)
	boundary.SetLogger(l)

	// Memory handed to the host must not live on the Go heap.
	if cfg.Memory.Allocator != config.AllocatorNative {
		l.Warn("ignoring memory.allocator for the shared library", zap.String("allocator", cfg.Memory.Allocator))
		cfg.Memory.Allocator = config.AllocatorNative
	}
	return adapter.Open(cfg)
}

// unavailable returns an adapter whose backend is already closed, so every
// operation fails with not_initialized. Without a native allocator, results
// that carry memory come back as the null handle.
func unavailable(log *exception.Log, alloc nativeadapter.Allocator, allocErr error) *adapter.Adapter {
	if allocErr != nil || alloc == nil {
		alloc = noAllocator{err: allocErr}
	}

	backend := headless.New(headless.Options{})
	backend.Close()

	ad, _ := adapter.New(adapter.Options{
		Platform:  backend,
		Allocator: alloc,
		Log:       log,
	})
	return ad
}

// noAllocator stands in for a native allocator that failed to load. Every
// allocation fails, so the operation returns its default value.
type noAllocator struct {
	err error
}

func (n noAllocator) Alloc(uintptr) unsafe.Pointer {
	panic(errors.Wrap(errors.PhaseLoad, errors.KindAllocation, n.err, "native allocator unavailable"))
}

func (noAllocator) Free(unsafe.Pointer) {}

func main() {}

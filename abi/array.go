package abi

import (
	"unsafe"

	nativeadapter "github.com/wippyai/native-adapter"
	"github.com/wippyai/native-adapter/cmem"
)

// ArrayHeader is the host-visible handle of a transfer array.
// C layout: struct { void* data; size_t len; size_t cap; }.
// Data is nil for an empty array; the header itself is never nil for a
// successful call.
type ArrayHeader struct {
	Data unsafe.Pointer
	Len  uintptr
	Cap  uintptr
}

// Element is a fixed-layout value stored in a transfer array.
// ReleaseNative frees whatever native memory the element owns.
type Element interface {
	ReleaseNative(a nativeadapter.Allocator)
}

// TransferArray owns a native array of T until it is transferred or released.
type TransferArray[T Element] struct {
	alloc nativeadapter.Allocator
	hdr   *ArrayHeader
}

// FromSequence moves items into native memory. The array takes ownership
// of whatever the items own; callers must not release them separately.
func FromSequence[T Element](a nativeadapter.Allocator, items []T) TransferArray[T] {
	al := cmem.NewAllocationList()
	defer al.Release()

	hdr := build(a, al, items)
	al.Reset()
	return TransferArray[T]{alloc: a, hdr: hdr}
}

func build[T Element](a nativeadapter.Allocator, al *cmem.AllocationList, items []T) *ArrayHeader {
	done := false
	defer func() {
		if !done {
			al.Free(a)
		}
	}()

	hdr := (*ArrayHeader)(al.Alloc(a, unsafe.Sizeof(ArrayHeader{})))
	if n := len(items); n > 0 {
		var zero T
		data := al.Alloc(a, uintptr(n)*unsafe.Sizeof(zero))
		copy(unsafe.Slice((*T)(data), n), items)
		hdr.Data = data
		hdr.Len = uintptr(n)
		hdr.Cap = uintptr(n)
	}
	done = true
	return hdr
}

// Build converts src element by element. conv must allocate through the
// supplied list; if conv fails or panics, every allocation made so far is
// freed and no array exists. A panic is re-raised after the rollback.
func Build[S any, T Element](a nativeadapter.Allocator, src []S, conv func(al *cmem.AllocationList, s S) (T, error)) (TransferArray[T], error) {
	al := cmem.NewAllocationList()
	defer al.Release()

	done := false
	defer func() {
		if !done {
			al.Free(a)
		}
	}()

	items := make([]T, len(src))
	for i, s := range src {
		item, err := conv(al, s)
		if err != nil {
			return TransferArray[T]{}, err
		}
		items[i] = item
	}
	hdr := build(a, al, items)
	done = true
	al.Reset()
	return TransferArray[T]{alloc: a, hdr: hdr}, nil
}

// Adopt takes back ownership of an array the host returned.
func Adopt[T Element](a nativeadapter.Allocator, hdr *ArrayHeader) TransferArray[T] {
	return TransferArray[T]{alloc: a, hdr: hdr}
}

// IsNull reports whether arr is the null handle.
func (arr TransferArray[T]) IsNull() bool {
	return arr.hdr == nil
}

// Len returns the number of elements.
func (arr TransferArray[T]) Len() int {
	if arr.hdr == nil {
		return 0
	}
	return int(arr.hdr.Len)
}

// At returns a copy of element i.
func (arr TransferArray[T]) At(i int) T {
	return Elements[T](arr.hdr)[i]
}

// Transfer hands the array to the host and resets arr to the null handle.
func (arr *TransferArray[T]) Transfer() *ArrayHeader {
	hdr := arr.hdr
	*arr = TransferArray[T]{}
	return hdr
}

// Release frees every element, then the storage, and resets arr to the
// null handle.
func (arr *TransferArray[T]) Release() {
	hdr := arr.hdr
	a := arr.alloc
	*arr = TransferArray[T]{}
	if hdr == nil {
		return
	}
	for _, item := range Elements[T](hdr) {
		item.ReleaseNative(a)
	}
	if hdr.Data != nil {
		a.Free(hdr.Data)
	}
	a.Free(unsafe.Pointer(hdr))
}

// ReleaseArray frees an array previously transferred to the host. It is the
// host's release entry point and must be called once per handle.
func ReleaseArray[T Element](a nativeadapter.Allocator, hdr *ArrayHeader) {
	arr := Adopt[T](a, hdr)
	arr.Release()
}

// Elements views the elements of hdr. The slice aliases native memory owned
// by whoever owns hdr.
func Elements[T Element](hdr *ArrayHeader) []T {
	if hdr == nil || hdr.Data == nil || hdr.Len == 0 {
		return nil
	}
	return unsafe.Slice((*T)(hdr.Data), hdr.Len)
}

// StringArray copies strs into a transfer array of owned strings.
func StringArray(a nativeadapter.Allocator, strs []string) TransferArray[OwnedString] {
	arr, _ := Build(a, strs, func(al *cmem.AllocationList, s string) (OwnedString, error) {
		return AllocString(a, al, s), nil
	})
	return arr
}

package abi

import (
	"unsafe"

	nativeadapter "github.com/wippyai/native-adapter"
	"github.com/wippyai/native-adapter/cmem"
)

// OwnedString is the flat form of a native string owned by the host.
// C layout: struct { char* ptr; size_t len; }. The bytes are followed by a
// NUL that is not counted in Len. Ptr == nil is the null handle; an empty
// string has a non-nil Ptr.
type OwnedString struct {
	Ptr unsafe.Pointer
	Len uintptr
}

// NullString is the null string handle.
var NullString = OwnedString{}

// IsNull reports whether s is the null handle.
func (s OwnedString) IsNull() bool {
	return s.Ptr == nil
}

// Text copies the string out of native memory.
func (s OwnedString) Text() string {
	if s.Ptr == nil || s.Len == 0 {
		return ""
	}
	return string(unsafe.Slice((*byte)(s.Ptr), s.Len))
}

// ReleaseNative frees the string's storage.
func (s OwnedString) ReleaseNative(a nativeadapter.Allocator) {
	if s.Ptr != nil {
		a.Free(s.Ptr)
	}
}

// Owned is a native-side handle to a string or byte buffer that has not
// been handed to the host yet.
type Owned struct {
	alloc nativeadapter.Allocator
	raw   OwnedString
}

// NewOwnedString copies s into native memory.
func NewOwnedString(a nativeadapter.Allocator, s string) Owned {
	return Owned{alloc: a, raw: copyString(a, nil, s)}
}

// NewOwnedBytes copies b into native memory.
func NewOwnedBytes(a nativeadapter.Allocator, b []byte) Owned {
	return Owned{alloc: a, raw: copyString(a, nil, string(b))}
}

// AllocString copies s into native memory and records the block in al.
// Composite builders use it so a failed build can be rolled back.
func AllocString(a nativeadapter.Allocator, al *cmem.AllocationList, s string) OwnedString {
	return copyString(a, al, s)
}

func copyString(a nativeadapter.Allocator, al *cmem.AllocationList, s string) OwnedString {
	n := uintptr(len(s))
	var p unsafe.Pointer
	if al != nil {
		p = al.Alloc(a, n+1)
	} else {
		p = a.Alloc(n + 1)
	}
	buf := unsafe.Slice((*byte)(p), n+1)
	copy(buf, s)
	buf[n] = 0
	return OwnedString{Ptr: p, Len: n}
}

// IsNull reports whether o is the null handle.
func (o Owned) IsNull() bool {
	return o.raw.Ptr == nil
}

// Len returns the length in bytes.
func (o Owned) Len() int {
	return int(o.raw.Len)
}

// Text copies the contents out.
func (o Owned) Text() string {
	return o.raw.Text()
}

// Transfer hands the string to the host and resets o to the null handle.
func (o *Owned) Transfer() OwnedString {
	raw := o.raw
	*o = Owned{}
	return raw
}

// Release frees the string and resets o to the null handle.
func (o *Owned) Release() {
	if o.raw.Ptr != nil {
		o.raw.ReleaseNative(o.alloc)
	}
	*o = Owned{}
}

// ReleaseString frees a string previously transferred to the host. It is
// the host's release entry point and must be called once per handle.
func ReleaseString(a nativeadapter.Allocator, s OwnedString) {
	s.ReleaseNative(a)
}

package abi

import (
	"unicode/utf8"
	"unsafe"

	"github.com/wippyai/native-adapter/errors"
)

// MaxCStringLen bounds the NUL scan in BorrowCString.
const MaxCStringLen = 1 << 20

// Borrowed is call-scoped, read-only access to host memory.
type Borrowed struct {
	ptr      unsafe.Pointer
	n        uintptr
	nullable bool
	overlong bool
}

// Borrow wraps n bytes at ptr. A nil ptr is rejected on access.
func Borrow(ptr unsafe.Pointer, n uintptr) Borrowed {
	return Borrowed{ptr: ptr, n: n}
}

// BorrowNullable wraps n bytes at ptr; a nil ptr reads as empty.
func BorrowNullable(ptr unsafe.Pointer, n uintptr) Borrowed {
	return Borrowed{ptr: ptr, n: n, nullable: true}
}

// BorrowCString wraps a NUL-terminated string. Strings longer than
// MaxCStringLen fail on access.
func BorrowCString(ptr unsafe.Pointer) Borrowed {
	if ptr == nil {
		return Borrowed{}
	}
	var n uintptr
	for n < MaxCStringLen {
		if *(*byte)(unsafe.Add(ptr, n)) == 0 {
			return Borrowed{ptr: ptr, n: n}
		}
		n++
	}
	return Borrowed{ptr: ptr, n: n, overlong: true}
}

// BorrowString lends a Go string for the duration of a call. It is how Go
// callers (tests, the CLI) enter the same code paths as the host.
func BorrowString(s string) Borrowed {
	if len(s) == 0 {
		return Borrowed{ptr: unsafe.Pointer(&emptyByte), n: 0}
	}
	return Borrowed{ptr: unsafe.Pointer(unsafe.StringData(s)), n: uintptr(len(s))}
}

// BorrowBytes lends a Go byte slice; a nil slice is the null pointer.
func BorrowBytes(b []byte) Borrowed {
	if b == nil {
		return Borrowed{}
	}
	if len(b) == 0 {
		return Borrowed{ptr: unsafe.Pointer(&emptyByte), n: 0}
	}
	return Borrowed{ptr: unsafe.Pointer(unsafe.SliceData(b)), n: uintptr(len(b))}
}

var emptyByte byte

// Null is the null borrowed pointer.
var Null = Borrowed{}

// IsNull reports whether the pointer is null.
func (b Borrowed) IsNull() bool {
	return b.ptr == nil
}

// Len returns the declared length in bytes.
func (b Borrowed) Len() int {
	return int(b.n)
}

// Nullable returns a copy of b that reads a null pointer as empty.
func (b Borrowed) Nullable() Borrowed {
	b.nullable = true
	return b
}

func (b Borrowed) check(arg string) error {
	if b.ptr == nil {
		if b.nullable {
			return nil
		}
		return errors.NullPointer(errors.PhaseDecode, []string{arg}, "const char*")
	}
	if b.overlong {
		return errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
			Path(arg).
			Detail("no NUL terminator within %d bytes", MaxCStringLen).
			Build()
	}
	return nil
}

func (b Borrowed) span() []byte {
	if b.ptr == nil || b.n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(b.ptr), b.n)
}

// View calls fn with the borrowed bytes. The slice aliases host memory and
// must not be retained after fn returns.
func (b Borrowed) View(arg string, fn func([]byte) error) error {
	if err := b.check(arg); err != nil {
		return err
	}
	return fn(b.span())
}

// Bytes returns a copy of the borrowed bytes. A nullable null pointer
// yields nil.
func (b Borrowed) Bytes(arg string) ([]byte, error) {
	if err := b.check(arg); err != nil {
		return nil, err
	}
	if b.ptr == nil {
		return nil, nil
	}
	out := make([]byte, b.n)
	copy(out, b.span())
	return out, nil
}

// Text returns a copy of the borrowed bytes as UTF-8 text.
func (b Borrowed) Text(arg string) (string, error) {
	if err := b.check(arg); err != nil {
		return "", err
	}
	span := b.span()
	if !utf8.Valid(span) {
		return "", errors.InvalidUTF8(errors.PhaseDecode, []string{arg}, span)
	}
	return string(span), nil
}

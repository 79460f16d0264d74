package abi

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"testing"
	"unsafe"

	"github.com/wippyai/native-adapter/cmem"
	"github.com/wippyai/native-adapter/errors"
)

func newTracker() *cmem.Tracker {
	return cmem.NewTracker(cmem.NewGoAllocator())
}

func kindOf(t *testing.T, err error) errors.Kind {
	t.Helper()
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("error %v is not a structured error", err)
	}
	return e.Kind
}

func TestBorrowed_Text(t *testing.T) {
	tests := []struct {
		name    string
		b       Borrowed
		want    string
		errKind errors.Kind
	}{
		{"string", BorrowString("hello"), "hello", ""},
		{"empty string", BorrowString(""), "", ""},
		{"bytes", BorrowBytes([]byte("héllo")), "héllo", ""},
		{"null", Null, "", errors.KindNullPointer},
		{"nullable null", Null.Nullable(), "", ""},
		{"nil slice", BorrowBytes(nil), "", errors.KindNullPointer},
		{"invalid utf-8", BorrowBytes([]byte{0xff, 0xfe, 'a'}), "", errors.KindInvalidEncoding},
		{"nil with length", Borrow(nil, 4), "", errors.KindNullPointer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.b.Text("arg")
			if tt.errKind != "" {
				if err == nil {
					t.Fatalf("Text() = %q, want %s error", got, tt.errKind)
				}
				if k := kindOf(t, err); k != tt.errKind {
					t.Fatalf("error kind = %s, want %s", k, tt.errKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("Text() error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBorrowed_BoundedByLength(t *testing.T) {
	buf := []byte("hello world")
	b := Borrow(unsafe.Pointer(&buf[0]), 5)
	got, err := b.Text("arg")
	if err != nil || got != "hello" {
		t.Fatalf("Text() = %q, %v; want %q", got, err, "hello")
	}
	if b.Len() != 5 {
		t.Fatalf("Len() = %d", b.Len())
	}
}

func TestBorrowed_BytesIsACopy(t *testing.T) {
	src := []byte("abc")
	out, err := BorrowBytes(src).Bytes("arg")
	if err != nil {
		t.Fatal(err)
	}
	src[0] = 'X'
	if string(out) != "abc" {
		t.Fatalf("Bytes() aliases host memory: %q", out)
	}

	null, err := Null.Nullable().Bytes("arg")
	if err != nil || null != nil {
		t.Fatalf("nullable null Bytes() = %v, %v", null, err)
	}
}

func TestBorrowed_View(t *testing.T) {
	var seen string
	err := BorrowString("scoped").View("arg", func(b []byte) error {
		seen = string(b)
		return nil
	})
	if err != nil || seen != "scoped" {
		t.Fatalf("View() saw %q, err %v", seen, err)
	}

	sentinel := fmt.Errorf("stop")
	if err := BorrowString("x").View("arg", func([]byte) error { return sentinel }); err != sentinel {
		t.Fatalf("View() should return the callback error, got %v", err)
	}

	called := false
	err = Null.View("arg", func([]byte) error { called = true; return nil })
	if err == nil || called {
		t.Fatal("View() on a null pointer must fail without calling back")
	}
}

func TestBorrowCString(t *testing.T) {
	buf := []byte("title\x00ignored")
	b := BorrowCString(unsafe.Pointer(&buf[0]))
	got, err := b.Text("title")
	if err != nil || got != "title" {
		t.Fatalf("Text() = %q, %v", got, err)
	}

	if !BorrowCString(nil).IsNull() {
		t.Fatal("nil C string should borrow as null")
	}

	long := make([]byte, MaxCStringLen+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err = BorrowCString(unsafe.Pointer(&long[0])).Text("title")
	if err == nil || kindOf(t, err) != errors.KindOutOfBounds {
		t.Fatalf("unterminated string error = %v", err)
	}
}

// No API derived from Borrowed may hand out host memory that outlives the call.
func TestBorrowed_NoEscapingAccessors(t *testing.T) {
	typ := reflect.TypeOf(Borrowed{})
	pointerish := map[reflect.Type]bool{
		reflect.TypeOf(unsafe.Pointer(nil)): true,
		reflect.TypeOf(uintptr(0)):          true,
	}
	for i := 0; i < typ.NumMethod(); i++ {
		m := typ.Method(i)
		for o := 0; o < m.Type.NumOut(); o++ {
			if pointerish[m.Type.Out(o)] {
				t.Errorf("Borrowed.%s returns %s", m.Name, m.Type.Out(o))
			}
		}
	}
	if typ.NumField() > 0 {
		for i := 0; i < typ.NumField(); i++ {
			if typ.Field(i).IsExported() {
				t.Errorf("Borrowed exposes field %s", typ.Field(i).Name)
			}
		}
	}
}

func TestOwned_StringDrop(t *testing.T) {
	tr := newTracker()

	o := NewOwnedString(tr, "hello")
	if o.IsNull() || o.Len() != 5 || o.Text() != "hello" {
		t.Fatalf("owned = %q (len %d)", o.Text(), o.Len())
	}
	raw := o.Transfer()
	if !o.IsNull() {
		t.Fatal("Transfer must leave the null handle behind")
	}

	term := unsafe.Slice((*byte)(raw.Ptr), raw.Len+1)
	if term[raw.Len] != 0 {
		t.Fatal("owned strings must be NUL terminated")
	}

	ReleaseString(tr, raw)
	if tr.Live() != 0 {
		t.Fatalf("Live() = %d after string drop, want 0", tr.Live())
	}
}

func TestOwned_EmptyIsNotNull(t *testing.T) {
	tr := newTracker()
	o := NewOwnedString(tr, "")
	if o.IsNull() {
		t.Fatal("empty string must not be the null handle")
	}
	o.Release()
	if tr.Live() != 0 {
		t.Fatalf("Live() = %d", tr.Live())
	}
	if !NullString.IsNull() || NullString.Text() != "" {
		t.Fatal("NullString should be null and read as empty")
	}
}

// Release consumes the handle: a second Release through the same variable
// is a no-op rather than a double free (the tracker would panic).
func TestOwned_ReleaseConsumes(t *testing.T) {
	tr := newTracker()
	o := NewOwnedBytes(tr, []byte("data"))
	o.Release()
	if !o.IsNull() {
		t.Fatal("Release must reset the handle")
	}
	o.Release()
	if tr.Stats().Frees != 1 {
		t.Fatalf("Frees = %d, want exactly 1", tr.Stats().Frees)
	}
}

func TestConsumingMethodsUsePointerReceivers(t *testing.T) {
	types := []reflect.Type{
		reflect.TypeOf(Owned{}),
		reflect.TypeOf(TransferArray[OwnedString]{}),
	}
	for _, typ := range types {
		for _, name := range []string{"Release", "Transfer"} {
			if _, ok := typ.MethodByName(name); ok {
				t.Errorf("%s.%s must not be callable on a copy", typ, name)
			}
			if _, ok := reflect.PointerTo(typ).MethodByName(name); !ok {
				t.Errorf("*%s.%s missing", typ, name)
			}
		}
	}
}

func TestFromSequence_Empty(t *testing.T) {
	tr := newTracker()

	arr := FromSequence[OwnedString](tr, nil)
	if arr.IsNull() {
		t.Fatal("empty sequence must not produce the null handle")
	}
	if arr.Len() != 0 {
		t.Fatalf("Len() = %d", arr.Len())
	}
	hdr := arr.Transfer()
	if hdr == nil || hdr.Len != 0 || hdr.Cap != 0 || hdr.Data != nil {
		t.Fatalf("header = %+v", hdr)
	}
	if !arr.IsNull() {
		t.Fatal("Transfer must leave the null handle behind")
	}

	ReleaseArray[OwnedString](tr, hdr)
	if tr.Live() != 0 {
		t.Fatalf("Live() = %d after release, want 0", tr.Live())
	}

	var null TransferArray[OwnedString]
	if !null.IsNull() || null.Len() != 0 {
		t.Fatal("zero TransferArray is the null handle")
	}
	null.Release()
}

func TestStringArray_ReleasesElements(t *testing.T) {
	tr := newTracker()

	arr := StringArray(tr, []string{"a", "", "ccc"})
	if arr.Len() != 3 {
		t.Fatalf("Len() = %d", arr.Len())
	}
	if arr.At(2).Text() != "ccc" || arr.At(1).IsNull() {
		t.Fatalf("elements = %q, %v", arr.At(2).Text(), arr.At(1))
	}
	// header + data + three strings
	if tr.Live() != 5 {
		t.Fatalf("Live() = %d, want 5", tr.Live())
	}

	hdr := arr.Transfer()
	if hdr.Len != 3 || hdr.Cap != 3 {
		t.Fatalf("header = %+v", hdr)
	}
	got := Elements[OwnedString](hdr)
	if got[0].Text() != "a" {
		t.Fatalf("Elements()[0] = %q", got[0].Text())
	}

	ReleaseArray[OwnedString](tr, hdr)
	if tr.Live() != 0 {
		t.Fatalf("Live() = %d after release, want 0", tr.Live())
	}
}

func TestTransferArray_ReleaseConsumes(t *testing.T) {
	tr := newTracker()
	arr := StringArray(tr, []string{"x"})
	arr.Release()
	arr.Release()
	if !arr.IsNull() || tr.Live() != 0 {
		t.Fatalf("IsNull=%v Live=%d", arr.IsNull(), tr.Live())
	}
}

func TestBuild_RollsBackOnError(t *testing.T) {
	tr := newTracker()

	_, err := Build(tr, []string{"a", "b", "bad", "d"}, func(al *cmem.AllocationList, s string) (OwnedString, error) {
		if s == "bad" {
			return OwnedString{}, fmt.Errorf("cannot convert %q", s)
		}
		return AllocString(tr, al, s), nil
	})
	if err == nil {
		t.Fatal("Build should fail")
	}
	if tr.Live() != 0 {
		t.Fatalf("Live() = %d after failed build, want 0", tr.Live())
	}
}

func TestBuild_RollsBackOnPanic(t *testing.T) {
	tr := newTracker()

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Fatal("panic should be re-raised after rollback")
			}
		}()
		Build(tr, []string{"a", "b", "c"}, func(al *cmem.AllocationList, s string) (OwnedString, error) {
			if s == "c" {
				panic("conversion exploded")
			}
			return AllocString(tr, al, s), nil
		})
	}()

	if tr.Live() != 0 {
		t.Fatalf("Live() = %d after panicking build, want 0", tr.Live())
	}
}

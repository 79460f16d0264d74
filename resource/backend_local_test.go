package resource

import (
	"errors"
	"sync"
	"testing"
)

type dropCounter struct {
	mu    sync.Mutex
	drops int
	err   error
}

func (d *dropCounter) Drop() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.drops++
	return d.err
}

func TestLocalBackend_Basic(t *testing.T) {
	b := NewLocalBackend()

	handle, err := b.Create(TypeWindow, "test value")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if handle == 0 {
		t.Fatal("Expected non-zero handle")
	}

	val, typeID, ok := b.Get(handle)
	if !ok || val != "test value" || typeID != TypeWindow {
		t.Fatalf("Get() = %v, %v, %v", val, typeID, ok)
	}

	val, err = b.Drop(handle, TypeWindow)
	if err != nil {
		t.Fatalf("Drop failed: %v", err)
	}
	if val != "test value" {
		t.Fatalf("Expected 'test value', got %v", val)
	}

	if _, _, ok := b.Get(handle); ok {
		t.Fatal("Expected Get to fail after Drop")
	}
	if _, err := b.Drop(handle, TypeWindow); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Drop error = %v, want ErrNotFound", err)
	}
}

func TestLocalBackend_NullHandle(t *testing.T) {
	b := NewLocalBackend()
	b.Create(TypeWindow, "x")

	if _, _, ok := b.Get(0); ok {
		t.Fatal("handle 0 must never resolve")
	}
	if _, err := b.Borrow(0, TypeWindow); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Borrow(0) error = %v", err)
	}
	if _, err := b.Drop(0, TypeWindow); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Drop(0) error = %v", err)
	}
}

func TestLocalBackend_StaleHandleAfterReuse(t *testing.T) {
	b := NewLocalBackend()

	h1, _ := b.Create(TypeWindow, "first")
	if _, err := b.Drop(h1, TypeWindow); err != nil {
		t.Fatal(err)
	}
	h2, _ := b.Create(TypeWindow, "second")

	if h1 == h2 {
		t.Fatal("reused slot must produce a new handle")
	}
	if _, _, ok := b.Get(h1); ok {
		t.Fatal("stale handle resolved to the new object")
	}
	if v, _, ok := b.Get(h2); !ok || v != "second" {
		t.Fatalf("Get(h2) = %v, %v", v, ok)
	}
}

func TestLocalBackend_Borrow(t *testing.T) {
	b := NewLocalBackend()
	handle, _ := b.Create(TypeWindow, "w")

	if _, err := b.Borrow(handle, TypeWindow); err != nil {
		t.Fatalf("Borrow failed: %v", err)
	}
	if _, err := b.Drop(handle, TypeWindow); !errors.Is(err, ErrOutstandingBorrow) {
		t.Fatalf("Drop while borrowed error = %v", err)
	}

	if !b.ReturnBorrow(handle) {
		t.Fatal("ReturnBorrow failed")
	}
	if b.ReturnBorrow(handle) {
		t.Fatal("ReturnBorrow with no outstanding borrow should fail")
	}
	if _, err := b.Drop(handle, TypeWindow); err != nil {
		t.Fatalf("Drop after return failed: %v", err)
	}
}

func TestLocalBackend_WrongType(t *testing.T) {
	b := NewLocalBackend()
	handle, _ := b.Create(TypeWindow, "w")

	if _, err := b.Borrow(handle, TypeID(99)); !errors.Is(err, ErrWrongType) {
		t.Fatalf("Borrow error = %v", err)
	}
	if _, err := b.Drop(handle, TypeID(99)); !errors.Is(err, ErrWrongType) {
		t.Fatalf("Drop error = %v", err)
	}
	if b.Len() != 1 {
		t.Fatal("wrong-type drop must not remove the resource")
	}
}

func TestLocalBackend_Close(t *testing.T) {
	b := NewLocalBackend()

	d1 := &dropCounter{}
	d2 := &dropCounter{err: errors.New("destroy failed")}
	b.Create(TypeWindow, d1)
	b.Create(TypeWindow, d2)

	err := b.Close()
	if err == nil || err.Error() != "destroy failed" {
		t.Fatalf("Close() error = %v", err)
	}
	if d1.drops != 1 || d2.drops != 1 {
		t.Fatalf("drops = %d, %d", d1.drops, d2.drops)
	}

	if _, err := b.Create(TypeWindow, "late"); !errors.Is(err, ErrClosed) {
		t.Fatalf("Create after Close error = %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("second Close() = %v", err)
	}
}

func TestLocalBackend_Concurrent(t *testing.T) {
	b := NewLocalBackend()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			h, err := b.Create(TypeWindow, n)
			if err != nil {
				t.Errorf("Create failed: %v", err)
				return
			}
			if v, _, ok := b.Get(h); !ok || v != n {
				t.Errorf("Get(%d) = %v, %v", h, v, ok)
			}
			if _, err := b.Drop(h, TypeWindow); err != nil {
				t.Errorf("Drop failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if b.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", b.Len())
	}
}

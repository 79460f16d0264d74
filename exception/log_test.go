package exception

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/wippyai/native-adapter/errors"
)

func TestLog_RecordDrain(t *testing.T) {
	l := New(MaxRecords)

	l.Record("op_a", "first", errors.KindNotFound)
	l.Record("op_b", "second", errors.KindExplicitFailure)
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}

	got := l.Drain()
	if len(got) != 2 {
		t.Fatalf("Drain() returned %d records, want 2", len(got))
	}
	if got[0].Operation != "op_a" || got[1].Operation != "op_b" {
		t.Fatalf("records out of insertion order: %+v", got)
	}
	if got[0].Seq >= got[1].Seq {
		t.Fatalf("sequence numbers not increasing: %d, %d", got[0].Seq, got[1].Seq)
	}

	if again := l.Drain(); len(again) != 0 {
		t.Fatalf("second Drain() returned %d records, want 0", len(again))
	}
}

func TestLog_Clear(t *testing.T) {
	l := New(MaxRecords)
	l.Record("op", "msg", errors.KindExplicitFailure)
	l.Clear()
	if l.Len() != 0 {
		t.Fatalf("Len() = %d after Clear, want 0", l.Len())
	}
	if got := l.Drain(); len(got) != 0 {
		t.Fatalf("Drain() after Clear returned %d records", len(got))
	}
}

func TestLog_RecordError(t *testing.T) {
	l := New(MaxRecords)

	l.RecordError("op_nil", nil)
	l.RecordError("op_x", errors.NotFound(errors.PhasePlatform, "window", 4))
	l.RecordError("op_panic", fmt.Errorf("outer: %w", errors.NewPanicError("boom", nil)))
	l.RecordError("op_plain", fmt.Errorf("not found"))

	got := l.Drain()
	if len(got) != 3 {
		t.Fatalf("Drain() returned %d records, want 3", len(got))
	}
	if got[0].Kind != errors.KindNotFound || !strings.Contains(got[0].Message, "window 4 not found") {
		t.Errorf("record 0 = %+v", got[0])
	}
	if !got[1].Abnormal() || got[1].Message != "boom" {
		t.Errorf("record 1 = %+v", got[1])
	}
	if got[2].Kind != errors.KindExplicitFailure || got[2].Message != "not found" {
		t.Errorf("record 2 = %+v", got[2])
	}
}

func TestLog_CapacityDropsOldest(t *testing.T) {
	l := New(3)
	for i := 0; i < 5; i++ {
		l.Record("op", fmt.Sprintf("m%d", i), errors.KindExplicitFailure)
	}

	if l.Dropped() != 2 {
		t.Fatalf("Dropped() = %d, want 2", l.Dropped())
	}
	got := l.Drain()
	if len(got) != 3 {
		t.Fatalf("Drain() returned %d records, want 3", len(got))
	}
	for i, want := range []string{"m2", "m3", "m4"} {
		if got[i].Message != want {
			t.Errorf("record %d = %q, want %q", i, got[i].Message, want)
		}
	}
}

func TestNew_ClampsCapacity(t *testing.T) {
	if c := New(0).Capacity(); c != MaxRecords {
		t.Errorf("New(0).Capacity() = %d, want %d", c, MaxRecords)
	}
	if c := New(MaxRecords * 10).Capacity(); c != MaxRecords {
		t.Errorf("oversized capacity = %d, want %d", c, MaxRecords)
	}
}

func TestDefault_Singleton(t *testing.T) {
	if Default() != Default() {
		t.Fatal("Default() should return one process-wide log")
	}
}

func TestLog_ConcurrentRecordCompleteness(t *testing.T) {
	l := New(MaxRecords)
	const workers = 16
	const perWorker = 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				l.Record(fmt.Sprintf("op_%d", w), fmt.Sprintf("%d/%d", w, i), errors.KindExplicitFailure)
			}
		}(w)
	}
	wg.Wait()

	got := l.Drain()
	if len(got) != workers*perWorker {
		t.Fatalf("Drain() returned %d records, want %d", len(got), workers*perWorker)
	}
	seen := make(map[string]bool, len(got))
	for _, r := range got {
		if seen[r.Message] {
			t.Fatalf("duplicate record %q", r.Message)
		}
		seen[r.Message] = true
	}
}

func TestLog_DrainAtomicUnderConcurrentRecord(t *testing.T) {
	l := New(MaxRecords)
	const workers = 8
	const perWorker = 100

	var wg sync.WaitGroup
	start := make(chan struct{})
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			<-start
			for i := 0; i < perWorker; i++ {
				l.Record("op", fmt.Sprintf("%d/%d", w, i), errors.KindExplicitFailure)
			}
		}(w)
	}

	var drained [][]Record
	var dmu sync.Mutex
	var dwg sync.WaitGroup
	dwg.Add(1)
	go func() {
		defer dwg.Done()
		<-start
		for i := 0; i < 20; i++ {
			batch := l.Drain()
			dmu.Lock()
			drained = append(drained, batch)
			dmu.Unlock()
		}
	}()

	close(start)
	wg.Wait()
	dwg.Wait()

	// Nothing records any more: one Drain collects the rest, the next is empty.
	drained = append(drained, l.Drain())
	if rest := l.Drain(); len(rest) != 0 {
		t.Fatalf("Drain() after quiescence returned %d records, want 0", len(rest))
	}

	seen := make(map[string]bool)
	total := 0
	for _, batch := range drained {
		for _, r := range batch {
			if seen[r.Message] {
				t.Fatalf("record %q returned by two drains", r.Message)
			}
			seen[r.Message] = true
			total++
		}
	}
	if total != workers*perWorker {
		t.Fatalf("drained %d records in total, want %d", total, workers*perWorker)
	}
}

func TestLog_Restore(t *testing.T) {
	l := New(MaxRecords)
	l.Record("op_a", "first", errors.KindNotFound)
	l.Record("op_b", "second", errors.KindNotFound)

	drained := l.Drain()
	l.Record("op_c", "after drain", errors.KindBusy)
	l.Restore(drained)

	got := l.Drain()
	if len(got) != 3 {
		t.Fatalf("Drain() after Restore returned %d records, want 3", len(got))
	}
	for i, op := range []string{"op_a", "op_b", "op_c"} {
		if got[i].Operation != op {
			t.Fatalf("record %d = %s, want %s (%+v)", i, got[i].Operation, op, got)
		}
	}
	if got[0].Seq != drained[0].Seq {
		t.Fatal("Restore must keep sequence numbers")
	}
}

func TestLog_RestoreRespectsCapacity(t *testing.T) {
	l := New(2)
	l.Record("op_a", "", errors.KindExplicitFailure)
	l.Record("op_b", "", errors.KindExplicitFailure)
	drained := l.Drain()
	l.Record("op_c", "", errors.KindExplicitFailure)

	l.Restore(drained)
	got := l.Drain()
	if len(got) != 2 || got[0].Operation != "op_b" || got[1].Operation != "op_c" {
		t.Fatalf("records = %+v", got)
	}
	if l.Dropped() != 1 {
		t.Fatalf("Dropped() = %d, want 1", l.Dropped())
	}
	l.Restore(nil)
	if l.Len() != 0 {
		t.Fatal("restoring nothing must not add records")
	}
}

type faultyError struct{ inner *strings.Builder }

func (e faultyError) Error() string { return e.inner.String() + "unreachable" }

func TestDescribe_FaultingErrors(t *testing.T) {
	var typedNil *errors.Error

	tests := []struct {
		name string
		err  error
		msg  string
		kind errors.Kind
	}{
		{"typed nil", typedNil, "nil *errors.Error", errors.KindExplicitFailure},
		{"error method panics", faultyError{}, errors.Aborted, errors.KindAbnormalTermination},
		{"panic payload error panics", errors.NewPanicError(faultyError{}, nil), "PANIC", errors.KindAbnormalTermination},
		{"wrapped structured", fmt.Errorf("ctx: %w", errors.NotFound(errors.PhasePlatform, "window", 1)), "not found", errors.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, kind := Describe(tt.err)
			if !strings.Contains(msg, tt.msg) || kind != tt.kind {
				t.Fatalf("Describe() = %q, %s; want %q, %s", msg, kind, tt.msg, tt.kind)
			}
		})
	}
}

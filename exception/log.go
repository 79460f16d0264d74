package exception

import (
	stderrors "errors"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/wippyai/native-adapter/errors"
)

// MaxRecords bounds one generation of the log. Beyond it the oldest record
// is discarded.
const MaxRecords = 1024

// Record is one captured failure.
type Record struct {
	Operation string
	Message   string
	Kind      errors.Kind
	Seq       uint64
}

// Abnormal reports whether the record describes a recovered panic.
func (r Record) Abnormal() bool {
	return r.Kind == errors.KindAbnormalTermination
}

// Log is an append-only, drain-and-swap failure log.
type Log struct {
	current  atomic.Pointer[generation]
	seq      atomic.Uint64
	dropped  atomic.Uint64
	capacity int
}

type generation struct {
	records []Record
	mu      sync.Mutex
	sealed  bool
}

// New creates a log holding at most capacity records per generation.
// Capacities outside 1..MaxRecords are clamped.
func New(capacity int) *Log {
	if capacity <= 0 || capacity > MaxRecords {
		capacity = MaxRecords
	}
	l := &Log{capacity: capacity}
	l.current.Store(&generation{})
	return l
}

var (
	defaultLog  *Log
	defaultOnce sync.Once
)

// Default returns the process-wide log, creating it on first use.
func Default() *Log {
	defaultOnce.Do(func() {
		defaultLog = New(MaxRecords)
	})
	return defaultLog
}

// Record appends a failure. It always succeeds.
func (l *Log) Record(op, message string, kind errors.Kind) {
	r := Record{
		Operation: op,
		Message:   message,
		Kind:      kind,
		Seq:       l.seq.Add(1),
	}
	for {
		g := l.current.Load()
		g.mu.Lock()
		if g.sealed {
			// Lost the race with Drain; the next generation is already installed.
			g.mu.Unlock()
			continue
		}
		if len(g.records) >= l.capacity {
			copy(g.records, g.records[1:])
			g.records[len(g.records)-1] = r
			l.dropped.Add(1)
		} else {
			g.records = append(g.records, r)
		}
		g.mu.Unlock()
		return
	}
}

// RecordError appends a failure described by err.
func (l *Log) RecordError(op string, err error) {
	if err == nil {
		return
	}
	msg, kind := Describe(err)
	l.Record(op, msg, kind)
}

// Describe reduces err to the message and kind stored in a Record. If
// inspecting err panics (an Error or Unwrap method that faults), the
// failure is reported as errors.Aborted with kind abnormal_termination.
func Describe(err error) (msg string, kind errors.Kind) {
	defer func() {
		if recover() != nil {
			msg, kind = errors.Aborted, errors.KindAbnormalTermination
		}
	}()
	var pe *errors.PanicError
	if stderrors.As(err, &pe) {
		return pe.Describe(), errors.KindAbnormalTermination
	}
	return err.Error(), errors.KindOf(err)
}

// Drain takes the current records and leaves the log empty. Records are
// returned in insertion order.
func (l *Log) Drain() []Record {
	old := l.current.Swap(&generation{})

	old.mu.Lock()
	old.sealed = true
	records := old.records
	old.records = nil
	old.mu.Unlock()

	// Appenders interleave between Seq assignment and the append.
	sort.Slice(records, func(i, j int) bool { return records[i].Seq < records[j].Seq })
	return records
}

// Restore puts drained records back, for a consumer that could not deliver
// them. Records keep their sequence numbers and are merged with anything
// recorded since the drain; the capacity bound still applies, dropping the
// oldest.
func (l *Log) Restore(records []Record) {
	if len(records) == 0 {
		return
	}
	for {
		g := l.current.Load()
		g.mu.Lock()
		if g.sealed {
			g.mu.Unlock()
			continue
		}
		merged := make([]Record, 0, len(records)+len(g.records))
		merged = append(merged, records...)
		merged = append(merged, g.records...)
		sort.Slice(merged, func(i, j int) bool { return merged[i].Seq < merged[j].Seq })
		if over := len(merged) - l.capacity; over > 0 {
			merged = merged[over:]
			l.dropped.Add(uint64(over))
		}
		g.records = merged
		g.mu.Unlock()
		return
	}
}

// Clear discards the current records.
func (l *Log) Clear() {
	l.Drain()
}

// Len returns the number of records waiting to be drained.
func (l *Log) Len() int {
	g := l.current.Load()
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.records)
}

// Dropped returns how many records were discarded because a generation was full.
func (l *Log) Dropped() uint64 {
	return l.dropped.Load()
}

// Capacity returns the per-generation bound.
func (l *Log) Capacity() int {
	return l.capacity
}

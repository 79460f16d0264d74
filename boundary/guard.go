package boundary

import (
	"runtime/debug"
	"sync"

	"github.com/puzpuzpuz/xsync"
	"go.uber.org/zap"

	"github.com/wippyai/native-adapter/errors"
	"github.com/wippyai/native-adapter/exception"
)

// Defaulter is implemented by return types whose safe placeholder is not
// their zero value.
type Defaulter[T any] interface {
	DefaultValue() T
}

// DefaultOf returns the safe placeholder for T. A DefaultValue method that
// panics yields the zero value.
func DefaultOf[T any]() (v T) {
	var zero T
	d, ok := any(zero).(Defaulter[T])
	if !ok {
		return zero
	}
	defer func() {
		if recover() != nil {
			v = zero
		}
	}()
	return d.DefaultValue()
}

// Guard binds the wrapper to an exception log and a logger.
type Guard struct {
	log      *exception.Log
	logger   *zap.Logger
	calls    *xsync.Counter
	failures *xsync.Counter
	aborts   *xsync.Counter
}

// New creates a guard recording into log. A nil logger uses Logger().
func New(log *exception.Log, l *zap.Logger) *Guard {
	if log == nil {
		log = exception.Default()
	}
	if l == nil {
		l = Logger()
	}
	return &Guard{
		log:      log,
		logger:   l,
		calls:    &xsync.Counter{},
		failures: &xsync.Counter{},
		aborts:   &xsync.Counter{},
	}
}

var (
	defaultGuard *Guard
	defaultOnce  sync.Once
)

// Default returns the guard bound to the process-wide exception log.
func Default() *Guard {
	defaultOnce.Do(func() {
		defaultGuard = New(exception.Default(), nil)
	})
	return defaultGuard
}

// Log returns the guard's exception log.
func (g *Guard) Log() *exception.Log {
	return g.log
}

// Stats counts calls through a guard.
type Stats struct {
	Calls    int64
	Failures int64
	Aborts   int64
}

// Stats returns the guard's counters. Failures excludes aborts.
func (g *Guard) Stats() Stats {
	return Stats{
		Calls:    g.calls.Value(),
		Failures: g.failures.Value(),
		Aborts:   g.aborts.Value(),
	}
}

// Run executes body under containment. See the package documentation.
func Run[T any](g *Guard, op string, body func() (T, error)) (result T) {
	if g == nil {
		g = Default()
	}
	g.calls.Inc()

	completed := false
	defer func() {
		if completed {
			return
		}
		// recover returns nil here only while runtime.Goexit unwinds.
		r := recover()
		g.fail(op, errors.NewPanicError(r, debug.Stack()))
		result = DefaultOf[T]()
	}()

	v, err := body()
	completed = true
	if err != nil {
		g.fail(op, err)
		return DefaultOf[T]()
	}
	return v
}

// Do executes a body without a result under containment.
func Do(g *Guard, op string, body func() error) {
	Run(g, op, func() (struct{}, error) {
		return struct{}{}, body()
	})
}

// fail records err. It never calls methods of err directly: the message and
// kind come from exception.Describe, which survives faulting errors.
func (g *Guard) fail(op string, err error) {
	msg, kind := exception.Describe(err)
	g.log.Record(op, msg, kind)

	if kind == errors.KindAbnormalTermination {
		g.aborts.Inc()
		var stack []byte
		if pe, ok := err.(*errors.PanicError); ok {
			stack = pe.Stack
		}
		g.logger.Error("boundary: operation panicked",
			zap.String("op", op),
			zap.String("panic", msg),
			zap.ByteString("stack", stack))
		return
	}
	g.failures.Inc()
	g.logger.Warn("boundary: operation failed",
		zap.String("op", op),
		zap.String("kind", string(kind)),
		zap.String("error", msg))
}

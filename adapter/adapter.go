package adapter

import (
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	nativeadapter "github.com/wippyai/native-adapter"
	"github.com/wippyai/native-adapter/abi"
	"github.com/wippyai/native-adapter/boundary"
	"github.com/wippyai/native-adapter/cmem"
	"github.com/wippyai/native-adapter/config"
	"github.com/wippyai/native-adapter/errors"
	"github.com/wippyai/native-adapter/exception"
	"github.com/wippyai/native-adapter/platform"
	"github.com/wippyai/native-adapter/resource"

	// registers the in-memory backend
	_ "github.com/wippyai/native-adapter/platform/headless"
)

// Options wires an Adapter by hand. Nil fields get defaults.
type Options struct {
	Platform  platform.Platform
	Allocator nativeadapter.Allocator
	Log       *exception.Log
	Logger    *zap.Logger
}

// Adapter is the Go form of the boundary surface. Every method takes and
// returns only fixed-layout values and runs inside the containment wrapper,
// so none of them panics or reports an error directly: failures are
// recorded in the exception log and the method returns its default value.
type Adapter struct {
	guard    *boundary.Guard
	platform platform.Platform
	alloc    nativeadapter.Allocator
	tracker  *cmem.Tracker
	table    *resource.Table
	windows  *resource.Typed[platform.Window]
	logger   *zap.Logger

	closeOnce sync.Once
	closeErr  error
}

// New builds an adapter from explicit collaborators. A nil Platform is
// rejected; a nil Allocator uses the Go-heap allocator.
func New(opts Options) (*Adapter, error) {
	if opts.Platform == nil {
		return nil, errors.NotInitialized(errors.PhaseConfig, "platform")
	}
	l := opts.Logger
	if l == nil {
		l = Logger()
	}
	alloc := opts.Allocator
	if alloc == nil {
		alloc = cmem.NewGoAllocator()
	}
	log := opts.Log
	if log == nil {
		log = exception.Default()
	}

	a := &Adapter{
		guard:    boundary.New(log, l),
		platform: opts.Platform,
		alloc:    alloc,
		table:    resource.NewTable(),
		logger:   l,
	}
	if t, ok := alloc.(*cmem.Tracker); ok {
		a.tracker = t
	}
	a.windows = resource.NewTyped[platform.Window](a.table, resource.TypeWindow)
	a.table.Subscribe(resource.ObserverFunc(a.onResourceEvent))

	l.Debug("adapter created", zap.String("platform", opts.Platform.Name()))
	return a, nil
}

// Open builds an adapter from configuration: allocator, exception log
// capacity, logger and platform backend.
func Open(cfg config.Config) (*Adapter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l, err := config.NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	alloc, err := allocatorFor(cfg.Memory)
	if err != nil {
		return nil, err
	}

	p, err := platform.Open(cfg.Platform.Backend, cfg.PlatformOptions())
	if err != nil {
		return nil, err
	}

	return New(Options{
		Platform:  p,
		Allocator: alloc,
		Log:       exception.New(cfg.Exceptions.Capacity),
		Logger:    l,
	})
}

func allocatorFor(c config.MemoryConfig) (nativeadapter.Allocator, error) {
	var alloc nativeadapter.Allocator
	switch c.Allocator {
	case config.AllocatorGo:
		alloc = cmem.NewGoAllocator()
	default:
		native, err := cmem.Native()
		if err != nil {
			return nil, errors.Wrap(errors.PhaseLoad, errors.KindAllocation, err, "load native allocator")
		}
		alloc = native
	}
	if c.TrackLeaks {
		alloc = cmem.NewTracker(alloc)
	}
	return alloc, nil
}

func (a *Adapter) onResourceEvent(e resource.Event) {
	a.logger.Debug("resource event",
		zap.Stringer("event", e.Type),
		zap.Stringer("type", e.TypeID),
		zap.Uint64("handle", uint64(e.Handle)))
}

// Allocator returns the allocator used for every value handed to the host.
func (a *Adapter) Allocator() nativeadapter.Allocator {
	return a.alloc
}

// Log returns the exception log.
func (a *Adapter) Log() *exception.Log {
	return a.guard.Log()
}

// Platform returns the backend.
func (a *Adapter) Platform() platform.Platform {
	return a.platform
}

// Close destroys all windows and closes the platform. Values already
// transferred to the host stay valid until the host releases them.
func (a *Adapter) Close() error {
	a.closeOnce.Do(func() {
		err := multierr.Append(a.table.Close(), a.platform.Close())
		if a.tracker != nil {
			if live := a.tracker.Live(); live > 0 {
				a.logger.Warn("native allocations outstanding at close", zap.Int("live", live))
			}
		}
		a.closeErr = err
		a.logger.Debug("adapter closed", zap.Error(err))
	})
	return a.closeErr
}

// Stats is a snapshot of adapter counters.
type Stats struct {
	boundary.Stats
	Windows           int
	PendingExceptions int
	DroppedExceptions uint64
	// -1 when the allocator is not tracked.
	LiveAllocations int
}

// Stats returns call counters and resource usage.
func (a *Adapter) Stats() Stats {
	s := Stats{
		Stats:             a.guard.Stats(),
		Windows:           a.windows.Len(),
		PendingExceptions: a.Log().Len(),
		DroppedExceptions: a.Log().Dropped(),
		LiveAllocations:   -1,
	}
	if a.tracker != nil {
		s.LiveAllocations = a.tracker.Live()
	}
	return s
}

// allocList allocates strings that belong to a composite result under
// construction.
type allocList struct {
	alloc nativeadapter.Allocator
	list  *cmem.AllocationList
}

func (l allocList) str(s string) abi.OwnedString {
	return abi.AllocString(l.alloc, l.list, s)
}

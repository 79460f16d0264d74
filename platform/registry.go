package platform

import (
	"sort"
	"sync"

	"github.com/wippyai/native-adapter/errors"
)

// Options configures a backend when it is opened by name.
type Options struct {
	// Screens seeds backends that do not enumerate real displays.
	Screens []Screen
}

// Factory opens a backend.
type Factory func(opts Options) (Platform, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes a backend available to Open. Backends call it from init.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = f
}

// Open creates the backend registered under name.
func Open(name string, opts Options) (Platform, error) {
	registryMu.RLock()
	f, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, errors.New(errors.PhaseConfig, errors.KindUnsupported).
			Value(name).
			Detail("platform backend %q is not compiled in (available: %v)", name, Backends()).
			Build()
	}
	return f(opts)
}

// Backends lists registered backend names in sorted order.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

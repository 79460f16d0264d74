package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/wippyai/native-adapter/errors"
	"github.com/wippyai/native-adapter/exception"
	"github.com/wippyai/native-adapter/platform"
)

// EnvPath names the environment variable holding the config file path.
const EnvPath = "NATIVE_ADAPTER_CONFIG"

// Config is the adapter configuration file.
type Config struct {
	Log        LogConfig        `toml:"log"`
	Exceptions ExceptionsConfig `toml:"exceptions"`
	Memory     MemoryConfig     `toml:"memory"`
	Platform   PlatformConfig   `toml:"platform"`
}

type LogConfig struct {
	// debug, info, warn, error
	Level string `toml:"level"`
	// json or console
	Encoding string `toml:"encoding"`
	// "stderr", "stdout" or a file path
	Output   string         `toml:"output"`
	Sampling SamplingConfig `toml:"sampling"`
}

// SamplingConfig mirrors zap's sampler: per second and message, the first
// Initial entries are logged, then every Thereafter-th.
type SamplingConfig struct {
	Enabled    bool `toml:"enabled"`
	Initial    int  `toml:"initial"`
	Thereafter int  `toml:"thereafter"`
}

type ExceptionsConfig struct {
	// Records kept before the oldest is dropped, at most exception.MaxRecords.
	Capacity int `toml:"capacity"`
}

const (
	AllocatorNative = "native"
	AllocatorGo     = "go"
)

type MemoryConfig struct {
	Allocator string `toml:"allocator"`
	// Wrap the allocator in a tracker and log leaks on close.
	TrackLeaks bool `toml:"track_leaks"`
}

type PlatformConfig struct {
	Backend string         `toml:"backend"`
	Screens []ScreenConfig `toml:"screens"`
}

// ScreenConfig seeds a display for backends without real screens.
type ScreenConfig struct {
	Name    string  `toml:"name"`
	X       int32   `toml:"x"`
	Y       int32   `toml:"y"`
	Width   int32   `toml:"width"`
	Height  int32   `toml:"height"`
	Scale   float64 `toml:"scale"`
	Primary bool    `toml:"primary"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:    "info",
			Encoding: "json",
			Output:   "stderr",
			Sampling: SamplingConfig{
				Enabled:    true,
				Initial:    100,
				Thereafter: 100,
			},
		},
		Exceptions: ExceptionsConfig{
			Capacity: exception.MaxRecords,
		},
		Memory: MemoryConfig{
			Allocator: AllocatorNative,
		},
		Platform: PlatformConfig{
			Backend: "headless",
		},
	}
}

// Load reads a TOML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(errors.PhaseConfig, errors.KindNotFound, err, fmt.Sprintf("read %s", path))
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, fmt.Sprintf("parse %s", path))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// FromEnv loads the file named by NATIVE_ADAPTER_CONFIG, or returns the
// defaults when the variable is unset.
func FromEnv() (Config, error) {
	path := os.Getenv(EnvPath)
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	invalid := func(field, format string, args ...any) error {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path(field).
			Detail(format, args...).
			Build()
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		return invalid("log.level", "unknown level %q", c.Log.Level)
	}
	switch c.Log.Encoding {
	case "json", "console":
	default:
		return invalid("log.encoding", "must be json or console, got %q", c.Log.Encoding)
	}
	if c.Log.Output == "" {
		return invalid("log.output", "must not be empty")
	}
	if c.Log.Sampling.Enabled && (c.Log.Sampling.Initial <= 0 || c.Log.Sampling.Thereafter <= 0) {
		return invalid("log.sampling", "initial and thereafter must be positive")
	}

	if c.Exceptions.Capacity < 1 || c.Exceptions.Capacity > exception.MaxRecords {
		return invalid("exceptions.capacity", "must be between 1 and %d, got %d", exception.MaxRecords, c.Exceptions.Capacity)
	}

	switch c.Memory.Allocator {
	case AllocatorNative, AllocatorGo:
	default:
		return invalid("memory.allocator", "must be %s or %s, got %q", AllocatorNative, AllocatorGo, c.Memory.Allocator)
	}

	if c.Platform.Backend == "" {
		return invalid("platform.backend", "must not be empty")
	}
	primaries := 0
	for i, s := range c.Platform.Screens {
		if s.Width <= 0 || s.Height <= 0 {
			return invalid(fmt.Sprintf("platform.screens[%d]", i), "width and height must be positive")
		}
		if s.Primary {
			primaries++
		}
	}
	if primaries > 1 {
		return invalid("platform.screens", "at most one screen may be primary")
	}
	return nil
}

// PlatformOptions converts the platform section for platform.Open. A nil
// Screens slice lets the backend use its own defaults.
func (c Config) PlatformOptions() platform.Options {
	if c.Platform.Screens == nil {
		return platform.Options{}
	}
	screens := make([]platform.Screen, len(c.Platform.Screens))
	for i, s := range c.Platform.Screens {
		scale := s.Scale
		if scale <= 0 {
			scale = 1
		}
		screens[i] = platform.Screen{
			Name:    s.Name,
			Bounds:  platform.Rect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height},
			Scale:   scale,
			Primary: s.Primary,
		}
	}
	return platform.Options{Screens: screens}
}

//go:build glfw

package glfw

import (
	"fmt"
	"sync"

	glfw3 "github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/native-adapter/errors"
	"github.com/wippyai/native-adapter/platform"
)

// Name is the backend name reported by Platform.Name.
const Name = "glfw"

func init() {
	platform.Register(Name, func(platform.Options) (platform.Platform, error) {
		return New()
	})
}

// Backend implements platform.Platform on GLFW.
type Backend struct {
	loop *loop

	// helper is a hidden window used for clipboard and input queries when
	// no user window exists.
	helper *glfw3.Window

	// Touched only on the GLFW thread.
	windows map[*window]struct{}

	closeOnce sync.Once
	closeErr  error
}

var _ platform.Platform = (*Backend)(nil)

// New initializes GLFW on a dedicated thread.
func New() (*Backend, error) {
	l, err := startLoop()
	if err != nil {
		return nil, err
	}
	b := &Backend{loop: l, windows: make(map[*window]struct{})}

	err = l.call(func() error {
		glfw3.WindowHint(glfw3.Visible, glfw3.False)
		w, err := glfw3.CreateWindow(1, 1, "native-adapter", nil, nil)
		if err != nil {
			return errors.Platform("create helper window", err)
		}
		b.helper = w
		return nil
	})
	if err != nil {
		l.stop()
		return nil, err
	}

	Logger().Debug("glfw backend started", zap.String("version", glfw3.GetVersionString()))
	return b, nil
}

func (b *Backend) Name() string { return Name }

// Close destroys every window and terminates GLFW.
func (b *Backend) Close() error {
	b.closeOnce.Do(func() {
		var err error
		callErr := b.loop.call(func() error {
			for w := range b.windows {
				err = multierr.Append(err, w.destroy())
			}
			if b.helper != nil {
				err = multierr.Append(err, destroy(b.helper))
				b.helper = nil
			}
			return nil
		})
		b.loop.stop()
		b.closeErr = multierr.Append(err, callErr)
	})
	return b.closeErr
}

// destroy converts a GLFW panic during teardown into an error so one bad
// window does not stop the rest from being destroyed.
func destroy(w *glfw3.Window) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Platform("destroy window", fmt.Errorf("%v", r))
		}
	}()
	w.Destroy()
	return nil
}

// active returns the focused user window, or the helper window.
func (b *Backend) active() *glfw3.Window {
	for w := range b.windows {
		if w.win.GetAttrib(glfw3.Focused) == glfw3.True {
			return w.win
		}
	}
	return b.helper
}

// Windows

func (b *Backend) CreateWindow(opts platform.WindowOptions) (platform.Window, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, errors.InvalidInput(errors.PhasePlatform, "window size must be positive")
	}
	var out *window
	err := b.loop.call(func() error {
		visible := glfw3.True
		if opts.Hidden {
			visible = glfw3.False
		}
		glfw3.DefaultWindowHints()
		glfw3.WindowHint(glfw3.Visible, visible)
		w, err := glfw3.CreateWindow(int(opts.Width), int(opts.Height), opts.Title, nil, nil)
		if err != nil {
			return errors.Platform("create window", err)
		}
		out = &window{backend: b, win: w, title: opts.Title}
		b.windows[out] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Input

func (b *Backend) KeyPressed(k platform.Key) (bool, error) {
	key, ok := glfwKey(k)
	if !ok {
		return false, errors.InvalidInput(errors.PhasePlatform, fmt.Sprintf("unknown key %d", k))
	}
	var down bool
	err := b.loop.call(func() error {
		down = b.active().GetKey(key) == glfw3.Press
		return nil
	})
	return down, err
}

func (b *Backend) MousePosition() (platform.Point, error) {
	var p platform.Point
	err := b.loop.call(func() error {
		w := b.active()
		wx, wy := w.GetPos()
		cx, cy := w.GetCursorPos()
		p = platform.Point{X: int32(wx) + int32(cx), Y: int32(wy) + int32(cy)}
		return nil
	})
	return p, err
}

func (b *Backend) MouseButtonPressed(btn platform.MouseButton) (bool, error) {
	button, ok := glfwButton(btn)
	if !ok {
		return false, errors.InvalidInput(errors.PhasePlatform, fmt.Sprintf("unknown mouse button %d", btn))
	}
	var down bool
	err := b.loop.call(func() error {
		down = b.active().GetMouseButton(button) == glfw3.Press
		return nil
	})
	return down, err
}

func (b *Backend) Clipboard() (string, error) {
	var text string
	err := b.loop.call(func() error {
		text = b.helper.GetClipboardString()
		return nil
	})
	return text, err
}

func (b *Backend) SetClipboard(text string) error {
	return b.loop.call(func() error {
		b.helper.SetClipboardString(text)
		return nil
	})
}

// Screens

func (b *Backend) Screens() ([]platform.Screen, error) {
	var screens []platform.Screen
	err := b.loop.call(func() error {
		primary := glfw3.GetPrimaryMonitor()
		monitors := glfw3.GetMonitors()
		screens = make([]platform.Screen, 0, len(monitors))
		for _, m := range monitors {
			x, y := m.GetPos()
			s := platform.Screen{
				Name:    m.GetName(),
				Bounds:  platform.Rect{X: int32(x), Y: int32(y)},
				Primary: m == primary,
				Scale:   1,
			}
			if vm := m.GetVideoMode(); vm != nil {
				s.Bounds.Width = int32(vm.Width)
				s.Bounds.Height = int32(vm.Height)
			}
			if sx, _ := m.GetContentScale(); sx > 0 {
				s.Scale = float64(sx)
			}
			screens = append(screens, s)
		}
		return nil
	})
	return screens, err
}

// Dialogs

func (b *Backend) OpenFiles(platform.FileDialog) ([]string, error) {
	return nil, errors.Unsupported(errors.PhasePlatform, "glfw has no file dialogs")
}

func (b *Backend) SaveFile(platform.FileDialog) (string, error) {
	return "", errors.Unsupported(errors.PhasePlatform, "glfw has no file dialogs")
}

func (b *Backend) Message(platform.MessageDialog) (bool, error) {
	return false, errors.Unsupported(errors.PhasePlatform, "glfw has no message boxes")
}

// Sound

func (b *Backend) Beep() error {
	return errors.Unsupported(errors.PhasePlatform, "glfw has no sound")
}

func (b *Backend) Play(string) error {
	return errors.Unsupported(errors.PhasePlatform, "glfw has no sound")
}

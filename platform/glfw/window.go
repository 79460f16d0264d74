//go:build glfw

package glfw

import (
	glfw3 "github.com/go-gl/glfw/v3.3/glfw"

	"github.com/wippyai/native-adapter/errors"
	"github.com/wippyai/native-adapter/platform"
)

// window fields are touched only on the GLFW thread.
type window struct {
	backend *Backend
	win     *glfw3.Window
	// GLFW 3.3 cannot read a title back.
	title string
}

func (w *window) do(fn func() error) error {
	return w.backend.loop.call(func() error {
		if w.win == nil {
			return errors.NotFound(errors.PhasePlatform, "window", w.title)
		}
		return fn()
	})
}

func (w *window) Title() (string, error) {
	var title string
	err := w.do(func() error {
		title = w.title
		return nil
	})
	return title, err
}

func (w *window) SetTitle(title string) error {
	return w.do(func() error {
		w.win.SetTitle(title)
		w.title = title
		return nil
	})
}

func (w *window) Size() (platform.Size, error) {
	var s platform.Size
	err := w.do(func() error {
		width, height := w.win.GetSize()
		s = platform.Size{Width: int32(width), Height: int32(height)}
		return nil
	})
	return s, err
}

func (w *window) SetSize(s platform.Size) error {
	if s.Width <= 0 || s.Height <= 0 {
		return errors.InvalidInput(errors.PhasePlatform, "window size must be positive")
	}
	return w.do(func() error {
		w.win.SetSize(int(s.Width), int(s.Height))
		return nil
	})
}

func (w *window) Position() (platform.Point, error) {
	var p platform.Point
	err := w.do(func() error {
		x, y := w.win.GetPos()
		p = platform.Point{X: int32(x), Y: int32(y)}
		return nil
	})
	return p, err
}

func (w *window) SetPosition(p platform.Point) error {
	return w.do(func() error {
		w.win.SetPos(int(p.X), int(p.Y))
		return nil
	})
}

func (w *window) Focus() error {
	return w.do(func() error {
		w.win.Focus()
		return nil
	})
}

func (w *window) Focused() (bool, error) {
	var focused bool
	err := w.do(func() error {
		focused = w.win.GetAttrib(glfw3.Focused) == glfw3.True
		return nil
	})
	return focused, err
}

func (w *window) Drop() error {
	return w.do(w.destroy)
}

// destroy runs on the GLFW thread.
func (w *window) destroy() error {
	if w.win == nil {
		return nil
	}
	err := destroy(w.win)
	w.win = nil
	delete(w.backend.windows, w)
	return err
}

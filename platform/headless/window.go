package headless

import (
	"github.com/wippyai/native-adapter/errors"
	"github.com/wippyai/native-adapter/platform"
)

type window struct {
	backend *Backend
	title   string
	bounds  platform.Rect
	dropped bool
}

// check is called with the backend lock held.
func (w *window) check(name string) error {
	if err := w.backend.enter(name); err != nil {
		return err
	}
	if w.dropped {
		return errors.NotFound(errors.PhasePlatform, "window", w.title)
	}
	return nil
}

func (w *window) Title() (string, error) {
	w.backend.mu.Lock()
	defer w.backend.mu.Unlock()
	if err := w.check("Title"); err != nil {
		return "", err
	}
	return w.title, nil
}

func (w *window) SetTitle(title string) error {
	w.backend.mu.Lock()
	defer w.backend.mu.Unlock()
	if err := w.check("SetTitle"); err != nil {
		return err
	}
	w.title = title
	return nil
}

func (w *window) Size() (platform.Size, error) {
	w.backend.mu.Lock()
	defer w.backend.mu.Unlock()
	if err := w.check("Size"); err != nil {
		return platform.Size{}, err
	}
	return platform.Size{Width: w.bounds.Width, Height: w.bounds.Height}, nil
}

func (w *window) SetSize(s platform.Size) error {
	w.backend.mu.Lock()
	defer w.backend.mu.Unlock()
	if err := w.check("SetSize"); err != nil {
		return err
	}
	if s.Width <= 0 || s.Height <= 0 {
		return errors.InvalidInput(errors.PhasePlatform, "window size must be positive")
	}
	w.bounds.Width, w.bounds.Height = s.Width, s.Height
	return nil
}

func (w *window) Position() (platform.Point, error) {
	w.backend.mu.Lock()
	defer w.backend.mu.Unlock()
	if err := w.check("Position"); err != nil {
		return platform.Point{}, err
	}
	return platform.Point{X: w.bounds.X, Y: w.bounds.Y}, nil
}

func (w *window) SetPosition(p platform.Point) error {
	w.backend.mu.Lock()
	defer w.backend.mu.Unlock()
	if err := w.check("SetPosition"); err != nil {
		return err
	}
	w.bounds.X, w.bounds.Y = p.X, p.Y
	return nil
}

func (w *window) Focus() error {
	w.backend.mu.Lock()
	defer w.backend.mu.Unlock()
	if err := w.check("Focus"); err != nil {
		return err
	}
	w.backend.focused = w
	return nil
}

func (w *window) Focused() (bool, error) {
	w.backend.mu.Lock()
	defer w.backend.mu.Unlock()
	if err := w.check("Focused"); err != nil {
		return false, err
	}
	return w.backend.focused == w, nil
}

func (w *window) Drop() error {
	w.backend.mu.Lock()
	defer w.backend.mu.Unlock()
	if err := w.check("Drop"); err != nil {
		return err
	}
	w.dropped = true
	delete(w.backend.windows, w)
	if w.backend.focused == w {
		w.backend.focused = nil
	}
	return nil
}

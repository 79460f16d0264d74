package adapter

import (
	"go.uber.org/multierr"

	"github.com/wippyai/native-adapter/abi"
	"github.com/wippyai/native-adapter/boundary"
	"github.com/wippyai/native-adapter/errors"
	"github.com/wippyai/native-adapter/platform"
	"github.com/wippyai/native-adapter/resource"
)

// withWindow borrows h for the duration of fn.
func (a *Adapter) withWindow(h resource.Handle, fn func(platform.Window) error) error {
	return a.windows.With(h, fn)
}

// WindowCreate opens a window and returns its handle, or 0.
func (a *Adapter) WindowCreate(title abi.Borrowed, width, height int32, hidden bool) resource.Handle {
	return boundary.Run(a.guard, "window_create", func() (resource.Handle, error) {
		t, err := title.Text("title")
		if err != nil {
			return 0, err
		}
		w, err := a.platform.CreateWindow(platform.WindowOptions{
			Title:  t,
			Width:  width,
			Height: height,
			Hidden: hidden,
		})
		if err != nil {
			return 0, err
		}
		h, err := a.windows.Insert(w)
		if err != nil {
			w.Drop()
			return 0, err
		}
		return h, nil
	})
}

// WindowClose destroys a window. Closing a window that another call is
// using fails with a busy exception.
func (a *Adapter) WindowClose(h resource.Handle) bool {
	return boundary.Run(a.guard, "window_close", func() (bool, error) {
		if err := a.windows.Remove(h); err != nil {
			return false, err
		}
		return true, nil
	})
}

func (a *Adapter) WindowSetTitle(h resource.Handle, title abi.Borrowed) bool {
	return boundary.Run(a.guard, "window_set_title", func() (bool, error) {
		t, err := title.Text("title")
		if err != nil {
			return false, err
		}
		err = a.withWindow(h, func(w platform.Window) error {
			return w.SetTitle(t)
		})
		return err == nil, err
	})
}

// WindowGetTitle returns an owned copy of the title, or the null string.
func (a *Adapter) WindowGetTitle(h resource.Handle) abi.OwnedString {
	return boundary.Run(a.guard, "window_get_title", func() (abi.OwnedString, error) {
		var title string
		err := a.withWindow(h, func(w platform.Window) (err error) {
			title, err = w.Title()
			return err
		})
		if err != nil {
			return abi.NullString, err
		}
		s := abi.NewOwnedString(a.alloc, title)
		return s.Transfer(), nil
	})
}

func (a *Adapter) WindowSize(h resource.Handle) platform.Size {
	return boundary.Run(a.guard, "window_size", func() (s platform.Size, err error) {
		err = a.withWindow(h, func(w platform.Window) error {
			s, err = w.Size()
			return err
		})
		return s, err
	})
}

func (a *Adapter) WindowSetSize(h resource.Handle, width, height int32) bool {
	return boundary.Run(a.guard, "window_set_size", func() (bool, error) {
		err := a.withWindow(h, func(w platform.Window) error {
			return w.SetSize(platform.Size{Width: width, Height: height})
		})
		return err == nil, err
	})
}

func (a *Adapter) WindowPosition(h resource.Handle) platform.Point {
	return boundary.Run(a.guard, "window_position", func() (p platform.Point, err error) {
		err = a.withWindow(h, func(w platform.Window) error {
			p, err = w.Position()
			return err
		})
		return p, err
	})
}

func (a *Adapter) WindowSetPosition(h resource.Handle, x, y int32) bool {
	return boundary.Run(a.guard, "window_set_position", func() (bool, error) {
		err := a.withWindow(h, func(w platform.Window) error {
			return w.SetPosition(platform.Point{X: x, Y: y})
		})
		return err == nil, err
	})
}

func (a *Adapter) WindowFocus(h resource.Handle) bool {
	return boundary.Run(a.guard, "window_focus", func() (bool, error) {
		err := a.withWindow(h, func(w platform.Window) error {
			return w.Focus()
		})
		return err == nil, err
	})
}

// WindowIsFocused returns false both for an unfocused window and for a
// failed call; check the exception log to tell them apart.
func (a *Adapter) WindowIsFocused(h resource.Handle) bool {
	return boundary.Run(a.guard, "window_is_focused", func() (focused bool, err error) {
		err = a.withWindow(h, func(w platform.Window) error {
			focused, err = w.Focused()
			return err
		})
		return focused, err
	})
}

// WindowDragEdge resizes a window as if edge were dragged by (dx, dy). If
// the window cannot be moved its previous size is restored.
func (a *Adapter) WindowDragEdge(h resource.Handle, edge int32, dx, dy int32) bool {
	return boundary.Run(a.guard, "window_drag_edge", func() (bool, error) {
		e := platform.ResizeEdge(edge)
		if !e.Valid() {
			return false, errors.New(errors.PhaseDecode, errors.KindInvalidInput).
				Path("edge").
				Value(edge).
				Detail("unknown resize edge %d", edge).
				Build()
		}
		err := a.withWindow(h, func(w platform.Window) error {
			pos, err := w.Position()
			if err != nil {
				return err
			}
			size, err := w.Size()
			if err != nil {
				return err
			}
			r := e.Drag(platform.Rect{X: pos.X, Y: pos.Y, Width: size.Width, Height: size.Height}, dx, dy)
			if err := w.SetSize(platform.Size{Width: r.Width, Height: r.Height}); err != nil {
				return err
			}
			if err := w.SetPosition(platform.Point{X: r.X, Y: r.Y}); err != nil {
				// undo the resize so a failed drag leaves the window as it was
				return multierr.Append(err, w.SetSize(size))
			}
			return nil
		})
		return err == nil, err
	})
}

// WindowCount returns the number of open windows.
func (a *Adapter) WindowCount() uint32 {
	return boundary.Run(a.guard, "window_count", func() (uint32, error) {
		return uint32(a.windows.Len()), nil
	})
}

package adapter

import (
	"github.com/wippyai/native-adapter/abi"
	"github.com/wippyai/native-adapter/boundary"
	"github.com/wippyai/native-adapter/errors"
	"github.com/wippyai/native-adapter/platform"
)

func (a *Adapter) KeyPressed(key int32) bool {
	return boundary.Run(a.guard, "key_pressed", func() (bool, error) {
		k := platform.Key(key)
		if !k.Valid() {
			return false, errors.New(errors.PhaseDecode, errors.KindInvalidInput).
				Path("key").
				Value(key).
				Detail("unknown key code %d", key).
				Build()
		}
		return a.platform.KeyPressed(k)
	})
}

func (a *Adapter) MousePosition() platform.Point {
	return boundary.Run(a.guard, "mouse_position", a.platform.MousePosition)
}

func (a *Adapter) MouseButtonPressed(button int32) bool {
	return boundary.Run(a.guard, "mouse_button_pressed", func() (bool, error) {
		b := platform.MouseButton(button)
		if !b.Valid() {
			return false, errors.New(errors.PhaseDecode, errors.KindInvalidInput).
				Path("button").
				Value(button).
				Detail("unknown mouse button %d", button).
				Build()
		}
		return a.platform.MouseButtonPressed(b)
	})
}

// ClipboardGet returns the clipboard text. An empty clipboard yields an
// empty, non-null string; a failure yields the null string.
func (a *Adapter) ClipboardGet() abi.OwnedString {
	return boundary.Run(a.guard, "clipboard_get", func() (abi.OwnedString, error) {
		text, err := a.platform.Clipboard()
		if err != nil {
			return abi.NullString, err
		}
		s := abi.NewOwnedString(a.alloc, text)
		return s.Transfer(), nil
	})
}

func (a *Adapter) ClipboardSet(text abi.Borrowed) bool {
	return boundary.Run(a.guard, "clipboard_set", func() (bool, error) {
		t, err := text.Text("text")
		if err != nil {
			return false, err
		}
		if err := a.platform.SetClipboard(t); err != nil {
			return false, err
		}
		return true, nil
	})
}

package adapter

import (
	"strings"

	"github.com/wippyai/native-adapter/abi"
	"github.com/wippyai/native-adapter/boundary"
	"github.com/wippyai/native-adapter/errors"
	"github.com/wippyai/native-adapter/platform"
)

// splitFilters turns "*.png;*.jpg" into patterns, dropping empty entries.
func splitFilters(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ";") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// DialogOpenFiles shows an open dialog and returns the chosen paths.
// filters may be null. Cancelling gives an empty array; a failure gives nil.
func (a *Adapter) DialogOpenFiles(title, filters abi.Borrowed, multiple bool) *abi.ArrayHeader {
	return boundary.Run(a.guard, "dialog_open_files", func() (*abi.ArrayHeader, error) {
		t, err := title.Text("title")
		if err != nil {
			return nil, err
		}
		f, err := filters.Nullable().Text("filters")
		if err != nil {
			return nil, err
		}
		paths, err := a.platform.OpenFiles(platform.FileDialog{
			Title:    t,
			Filters:  splitFilters(f),
			Multiple: multiple,
		})
		if err != nil {
			return nil, err
		}
		arr := abi.StringArray(a.alloc, paths)
		return arr.Transfer(), nil
	})
}

// DialogSaveFile shows a save dialog. Cancelling gives an empty string; a
// failure gives the null string.
func (a *Adapter) DialogSaveFile(title, defaultName abi.Borrowed) abi.OwnedString {
	return boundary.Run(a.guard, "dialog_save_file", func() (abi.OwnedString, error) {
		t, err := title.Text("title")
		if err != nil {
			return abi.NullString, err
		}
		name, err := defaultName.Nullable().Text("default_name")
		if err != nil {
			return abi.NullString, err
		}
		path, err := a.platform.SaveFile(platform.FileDialog{Title: t, DefaultName: name})
		if err != nil {
			return abi.NullString, err
		}
		s := abi.NewOwnedString(a.alloc, path)
		return s.Transfer(), nil
	})
}

// DialogMessage shows a message box and reports whether it was accepted.
func (a *Adapter) DialogMessage(title, message abi.Borrowed, level int32, cancel bool) bool {
	return boundary.Run(a.guard, "dialog_message", func() (bool, error) {
		t, err := title.Text("title")
		if err != nil {
			return false, err
		}
		m, err := message.Text("message")
		if err != nil {
			return false, err
		}
		lvl := platform.MessageLevel(level)
		if lvl < platform.MessageInfo || lvl > platform.MessageError {
			return false, errors.New(errors.PhaseDecode, errors.KindInvalidInput).
				Path("level").
				Value(level).
				Detail("unknown message level %d", level).
				Build()
		}
		return a.platform.Message(platform.MessageDialog{Title: t, Message: m, Level: lvl, Cancel: cancel})
	})
}

func (a *Adapter) SoundBeep() bool {
	return boundary.Run(a.guard, "sound_beep", func() (bool, error) {
		return true, a.platform.Beep()
	})
}

func (a *Adapter) SoundPlay(name abi.Borrowed) bool {
	return boundary.Run(a.guard, "sound_play", func() (bool, error) {
		n, err := name.Text("name")
		if err != nil {
			return false, err
		}
		return true, a.platform.Play(n)
	})
}

package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/wippyai/native-adapter/abi"
	"github.com/wippyai/native-adapter/adapter"
	"github.com/wippyai/native-adapter/exception"
	"github.com/wippyai/native-adapter/platform"
	"github.com/wippyai/native-adapter/resource"
)

type paramKind int

const (
	paramString paramKind = iota
	paramNullableString
	paramInt
	paramBool
	paramHandle
)

func (k paramKind) String() string {
	switch k {
	case paramString:
		return "string"
	case paramNullableString:
		return "string?"
	case paramInt:
		return "i32"
	case paramBool:
		return "bool"
	case paramHandle:
		return "handle"
	default:
		return "?"
	}
}

type paramInfo struct {
	name string
	kind paramKind
}

// args holds decoded command-line arguments for one call.
type args struct {
	raw    []string
	params []paramInfo
}

func (a args) str(i int) abi.Borrowed {
	v := a.raw[i]
	if a.params[i].kind == paramNullableString && v == "" {
		return abi.Null
	}
	return abi.BorrowString(v)
}

func (a args) i32(i int) int32 {
	v, _ := strconv.ParseInt(a.raw[i], 10, 32)
	return int32(v)
}

func (a args) flag(i int) bool {
	v, _ := strconv.ParseBool(a.raw[i])
	return v
}

func (a args) handle(i int) resource.Handle {
	v, _ := strconv.ParseUint(a.raw[i], 0, 64)
	return resource.Handle(v)
}

type opInfo struct {
	name   string
	result string
	params []paramInfo
	call   func(ad *adapter.Adapter, in args) string
}

func (o opInfo) signature() string {
	var ps []string
	for _, p := range o.params {
		ps = append(ps, p.name+": "+p.kind.String())
	}
	sig := o.name + "(" + strings.Join(ps, ", ") + ")"
	if o.result != "" {
		sig += " -> " + o.result
	}
	return sig
}

// validate checks that raw has one well-formed value per parameter.
func (o opInfo) validate(raw []string) error {
	if len(raw) != len(o.params) {
		return fmt.Errorf("%s takes %d arguments, got %d", o.name, len(o.params), len(raw))
	}
	for i, p := range o.params {
		var err error
		switch p.kind {
		case paramInt:
			_, err = strconv.ParseInt(raw[i], 10, 32)
		case paramBool:
			_, err = strconv.ParseBool(raw[i])
		case paramHandle:
			_, err = strconv.ParseUint(raw[i], 0, 64)
		}
		if err != nil {
			return fmt.Errorf("argument %s: %w", p.name, err)
		}
	}
	return nil
}

func p(name string, kind paramKind) paramInfo { return paramInfo{name: name, kind: kind} }

func ownedText(ad *adapter.Adapter, s abi.OwnedString) string {
	defer ad.StringDrop(s)
	if s.IsNull() {
		return "<null>"
	}
	return strconv.Quote(s.Text())
}

func stringList(ad *adapter.Adapter, hdr *abi.ArrayHeader) string {
	if hdr == nil {
		return "<null>"
	}
	defer ad.StringArrayDrop(hdr)
	var out []string
	for _, s := range abi.Elements[abi.OwnedString](hdr) {
		out = append(out, strconv.Quote(s.Text()))
	}
	return "[" + strings.Join(out, ", ") + "]"
}

func screenText(s adapter.ScreenInfo) string {
	primary := ""
	if s.Primary {
		primary = " primary"
	}
	return fmt.Sprintf("%s %dx%d+%d+%d @%.2gx%s", s.Name.Text(), s.Width, s.Height, s.X, s.Y, s.Scale, primary)
}

func screenList(ad *adapter.Adapter, hdr *abi.ArrayHeader) string {
	if hdr == nil {
		return "<null>"
	}
	defer ad.ScreenArrayDrop(hdr)
	screens := abi.Elements[adapter.ScreenInfo](hdr)
	if len(screens) == 0 {
		return "[]"
	}
	var b strings.Builder
	for i, s := range screens {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(screenText(s))
	}
	return b.String()
}

var operations = []opInfo{
	{name: "window_create", result: "handle",
		params: []paramInfo{p("title", paramString), p("width", paramInt), p("height", paramInt), p("hidden", paramBool)},
		call: func(ad *adapter.Adapter, in args) string {
			return fmt.Sprint(uint64(ad.WindowCreate(in.str(0), in.i32(1), in.i32(2), in.flag(3))))
		}},
	{name: "window_close", result: "bool",
		params: []paramInfo{p("window", paramHandle)},
		call: func(ad *adapter.Adapter, in args) string {
			return fmt.Sprint(ad.WindowClose(in.handle(0)))
		}},
	{name: "window_set_title", result: "bool",
		params: []paramInfo{p("window", paramHandle), p("title", paramString)},
		call: func(ad *adapter.Adapter, in args) string {
			return fmt.Sprint(ad.WindowSetTitle(in.handle(0), in.str(1)))
		}},
	{name: "window_get_title", result: "string",
		params: []paramInfo{p("window", paramHandle)},
		call: func(ad *adapter.Adapter, in args) string {
			return ownedText(ad, ad.WindowGetTitle(in.handle(0)))
		}},
	{name: "window_size", result: "size",
		params: []paramInfo{p("window", paramHandle)},
		call: func(ad *adapter.Adapter, in args) string {
			s := ad.WindowSize(in.handle(0))
			return fmt.Sprintf("%dx%d", s.Width, s.Height)
		}},
	{name: "window_set_size", result: "bool",
		params: []paramInfo{p("window", paramHandle), p("width", paramInt), p("height", paramInt)},
		call: func(ad *adapter.Adapter, in args) string {
			return fmt.Sprint(ad.WindowSetSize(in.handle(0), in.i32(1), in.i32(2)))
		}},
	{name: "window_position", result: "point",
		params: []paramInfo{p("window", paramHandle)},
		call: func(ad *adapter.Adapter, in args) string {
			pt := ad.WindowPosition(in.handle(0))
			return fmt.Sprintf("(%d, %d)", pt.X, pt.Y)
		}},
	{name: "window_set_position", result: "bool",
		params: []paramInfo{p("window", paramHandle), p("x", paramInt), p("y", paramInt)},
		call: func(ad *adapter.Adapter, in args) string {
			return fmt.Sprint(ad.WindowSetPosition(in.handle(0), in.i32(1), in.i32(2)))
		}},
	{name: "window_focus", result: "bool",
		params: []paramInfo{p("window", paramHandle)},
		call: func(ad *adapter.Adapter, in args) string {
			return fmt.Sprint(ad.WindowFocus(in.handle(0)))
		}},
	{name: "window_is_focused", result: "bool",
		params: []paramInfo{p("window", paramHandle)},
		call: func(ad *adapter.Adapter, in args) string {
			return fmt.Sprint(ad.WindowIsFocused(in.handle(0)))
		}},
	{name: "window_drag_edge", result: "bool",
		params: []paramInfo{p("window", paramHandle), p("edge", paramInt), p("dx", paramInt), p("dy", paramInt)},
		call: func(ad *adapter.Adapter, in args) string {
			return fmt.Sprint(ad.WindowDragEdge(in.handle(0), in.i32(1), in.i32(2), in.i32(3)))
		}},
	{name: "window_count", result: "u32",
		call: func(ad *adapter.Adapter, in args) string {
			return fmt.Sprint(ad.WindowCount())
		}},
	{name: "key_pressed", result: "bool",
		params: []paramInfo{p("key", paramString)},
		call: func(ad *adapter.Adapter, in args) string {
			k, ok := platform.ParseKey(in.raw[0])
			if !ok {
				// let the adapter report the invalid code
				return fmt.Sprint(ad.KeyPressed(-1))
			}
			return fmt.Sprint(ad.KeyPressed(int32(k)))
		}},
	{name: "mouse_position", result: "point",
		call: func(ad *adapter.Adapter, in args) string {
			pt := ad.MousePosition()
			return fmt.Sprintf("(%d, %d)", pt.X, pt.Y)
		}},
	{name: "mouse_button_pressed", result: "bool",
		params: []paramInfo{p("button", paramInt)},
		call: func(ad *adapter.Adapter, in args) string {
			return fmt.Sprint(ad.MouseButtonPressed(in.i32(0)))
		}},
	{name: "clipboard_get", result: "string",
		call: func(ad *adapter.Adapter, in args) string {
			return ownedText(ad, ad.ClipboardGet())
		}},
	{name: "clipboard_set", result: "bool",
		params: []paramInfo{p("text", paramString)},
		call: func(ad *adapter.Adapter, in args) string {
			return fmt.Sprint(ad.ClipboardSet(in.str(0)))
		}},
	{name: "screen_count", result: "u32",
		call: func(ad *adapter.Adapter, in args) string {
			return fmt.Sprint(ad.ScreenCount())
		}},
	{name: "screens", result: "screen[]",
		call: func(ad *adapter.Adapter, in args) string {
			return screenList(ad, ad.Screens())
		}},
	{name: "primary_screen", result: "screen",
		call: func(ad *adapter.Adapter, in args) string {
			s := ad.PrimaryScreen()
			defer ad.ScreenDrop(s)
			if s.Name.IsNull() {
				return "<none>"
			}
			return screenText(s)
		}},
	{name: "dialog_open_files", result: "string[]",
		params: []paramInfo{p("title", paramString), p("filters", paramNullableString), p("multiple", paramBool)},
		call: func(ad *adapter.Adapter, in args) string {
			return stringList(ad, ad.DialogOpenFiles(in.str(0), in.str(1), in.flag(2)))
		}},
	{name: "dialog_save_file", result: "string",
		params: []paramInfo{p("title", paramString), p("default_name", paramNullableString)},
		call: func(ad *adapter.Adapter, in args) string {
			return ownedText(ad, ad.DialogSaveFile(in.str(0), in.str(1)))
		}},
	{name: "dialog_message", result: "bool",
		params: []paramInfo{p("title", paramString), p("message", paramString), p("level", paramInt), p("cancel", paramBool)},
		call: func(ad *adapter.Adapter, in args) string {
			return fmt.Sprint(ad.DialogMessage(in.str(0), in.str(1), in.i32(2), in.flag(3)))
		}},
	{name: "sound_beep", result: "bool",
		call: func(ad *adapter.Adapter, in args) string {
			return fmt.Sprint(ad.SoundBeep())
		}},
	{name: "sound_play", result: "bool",
		params: []paramInfo{p("name", paramString)},
		call: func(ad *adapter.Adapter, in args) string {
			return fmt.Sprint(ad.SoundPlay(in.str(0)))
		}},
	{name: "exceptions_pending", result: "u32",
		call: func(ad *adapter.Adapter, in args) string {
			return fmt.Sprint(ad.ExceptionsPending())
		}},
	{name: "clear_exceptions",
		call: func(ad *adapter.Adapter, in args) string {
			ad.ClearExceptions()
			return "ok"
		}},
}

func init() {
	sort.Slice(operations, func(i, j int) bool { return operations[i].name < operations[j].name })
}

func lookup(name string) (opInfo, bool) {
	i := sort.Search(len(operations), func(i int) bool { return operations[i].name >= name })
	if i < len(operations) && operations[i].name == name {
		return operations[i], true
	}
	return opInfo{}, false
}

// outcome is the result of one call plus whatever it left in the
// exception log.
type outcome struct {
	result     string
	exceptions []exception.Record
}

// invoke runs op and drains the exceptions it produced.
func invoke(ad *adapter.Adapter, name string, raw []string) (outcome, error) {
	op, ok := lookup(name)
	if !ok {
		return outcome{}, fmt.Errorf("unknown operation %q", name)
	}
	if err := op.validate(raw); err != nil {
		return outcome{}, err
	}
	result := op.call(ad, args{raw: raw, params: op.params})
	return outcome{result: result, exceptions: drainExceptions(ad)}, nil
}

// drainExceptions empties the log through the same path a host uses.
func drainExceptions(ad *adapter.Adapter) []exception.Record {
	hdr := ad.CheckExceptions()
	if hdr == nil {
		return nil
	}
	defer ad.ExceptionArrayDrop(hdr)
	var out []exception.Record
	for _, r := range abi.Elements[adapter.ExceptionRecord](hdr) {
		out = append(out, exception.Record{
			Operation: r.Operation.Text(),
			Message:   r.Message.Text(),
			Kind:      r.Kind.Kind(),
			Seq:       r.Seq,
		})
	}
	return out
}

func formatException(r exception.Record) string {
	return fmt.Sprintf("#%d %s [%s] %s", r.Seq, r.Operation, r.Kind, r.Message)
}

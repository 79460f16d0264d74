package headless

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/native-adapter/errors"
	"github.com/wippyai/native-adapter/platform"
)

func TestWindows(t *testing.T) {
	b := New(Options{})

	w, err := b.CreateWindow(platform.WindowOptions{Title: "main", Width: 640, Height: 480})
	if err != nil {
		t.Fatal(err)
	}
	if b.WindowCount() != 1 {
		t.Fatalf("WindowCount() = %d", b.WindowCount())
	}

	if title, _ := w.Title(); title != "main" {
		t.Fatalf("Title() = %q", title)
	}
	if err := w.SetTitle("renamed"); err != nil {
		t.Fatal(err)
	}
	if title, _ := w.Title(); title != "renamed" {
		t.Fatalf("Title() = %q", title)
	}

	if err := w.SetSize(platform.Size{Width: 800, Height: 600}); err != nil {
		t.Fatal(err)
	}
	if s, _ := w.Size(); s != (platform.Size{Width: 800, Height: 600}) {
		t.Fatalf("Size() = %+v", s)
	}
	if err := w.SetSize(platform.Size{Width: 0, Height: 10}); errors.KindOf(err) != errors.KindInvalidInput {
		t.Fatalf("SetSize(0) kind = %s", errors.KindOf(err))
	}

	if err := w.SetPosition(platform.Point{X: 10, Y: 20}); err != nil {
		t.Fatal(err)
	}
	if p, _ := w.Position(); p != (platform.Point{X: 10, Y: 20}) {
		t.Fatalf("Position() = %+v", p)
	}

	if err := w.Drop(); err != nil {
		t.Fatal(err)
	}
	if b.WindowCount() != 0 {
		t.Fatal("dropped window still counted")
	}
	if _, err := w.Title(); errors.KindOf(err) != errors.KindNotFound {
		t.Fatalf("Title() after Drop kind = %s", errors.KindOf(err))
	}
}

func TestWindows_Focus(t *testing.T) {
	b := New(Options{})

	a, _ := b.CreateWindow(platform.WindowOptions{Title: "a", Width: 1, Height: 1})
	c, _ := b.CreateWindow(platform.WindowOptions{Title: "c", Width: 1, Height: 1})
	h, _ := b.CreateWindow(platform.WindowOptions{Title: "h", Width: 1, Height: 1, Hidden: true})

	if f, _ := c.Focused(); !f {
		t.Fatal("last visible window should have focus")
	}
	if f, _ := h.Focused(); f {
		t.Fatal("hidden window must not take focus")
	}

	a.Focus()
	if f, _ := a.Focused(); !f {
		t.Fatal("Focus() did not focus")
	}
	if f, _ := c.Focused(); f {
		t.Fatal("only one window may be focused")
	}

	a.Drop()
	if f, _ := c.Focused(); f {
		t.Fatal("dropping the focused window must not move focus implicitly")
	}
}

func TestCreateWindow_InvalidSize(t *testing.T) {
	b := New(Options{})
	if _, err := b.CreateWindow(platform.WindowOptions{Width: -1, Height: 10}); err == nil {
		t.Fatal("negative size should fail")
	}
}

func TestInput(t *testing.T) {
	b := New(Options{})

	if down, _ := b.KeyPressed(platform.KeyA); down {
		t.Fatal("no key is pressed initially")
	}
	b.PressKey(platform.KeyA)
	if down, _ := b.KeyPressed(platform.KeyA); !down {
		t.Fatal("KeyPressed after PressKey")
	}
	b.ReleaseKey(platform.KeyA)
	if down, _ := b.KeyPressed(platform.KeyA); down {
		t.Fatal("KeyPressed after ReleaseKey")
	}

	b.MoveMouse(platform.Point{X: 5, Y: 7})
	if p, _ := b.MousePosition(); p != (platform.Point{X: 5, Y: 7}) {
		t.Fatalf("MousePosition() = %+v", p)
	}
	b.SetButton(platform.MouseRight, true)
	if down, _ := b.MouseButtonPressed(platform.MouseRight); !down {
		t.Fatal("right button should be down")
	}

	if err := b.SetClipboard("copied"); err != nil {
		t.Fatal(err)
	}
	if s, _ := b.Clipboard(); s != "copied" {
		t.Fatalf("Clipboard() = %q", s)
	}
}

func TestScreens(t *testing.T) {
	b := New(Options{})
	screens, err := b.Screens()
	if err != nil || len(screens) != 1 || !screens[0].Primary {
		t.Fatalf("Screens() = %+v, %v", screens, err)
	}

	b.SetScreens([]platform.Screen{})
	screens, err = b.Screens()
	if err != nil || screens == nil || len(screens) != 0 {
		t.Fatalf("no displays should be an empty, non-nil result: %+v, %v", screens, err)
	}

	seeded := New(Options{Screens: []platform.Screen{{Name: "x"}, {Name: "y"}}})
	if s, _ := seeded.Screens(); len(s) != 2 {
		t.Fatalf("seeded screens = %d", len(s))
	}
}

func TestDialogs(t *testing.T) {
	b := New(Options{})

	if paths, err := b.OpenFiles(platform.FileDialog{}); err != nil || len(paths) != 0 {
		t.Fatalf("unqueued open dialog = %v, %v", paths, err)
	}

	b.QueueOpenFiles("/a.txt", "/b.txt")
	if paths, _ := b.OpenFiles(platform.FileDialog{Multiple: true}); len(paths) != 2 {
		t.Fatalf("OpenFiles() = %v", paths)
	}
	b.QueueOpenFiles("/a.txt", "/b.txt")
	if paths, _ := b.OpenFiles(platform.FileDialog{}); len(paths) != 1 {
		t.Fatalf("single-select OpenFiles() = %v", paths)
	}

	b.QueueSaveFile("/out.png")
	if path, _ := b.SaveFile(platform.FileDialog{}); path != "/out.png" {
		t.Fatalf("SaveFile() = %q", path)
	}
	if path, _ := b.SaveFile(platform.FileDialog{}); path != "" {
		t.Fatalf("cancelled SaveFile() = %q", path)
	}

	b.QueueMessage(false)
	if ok, _ := b.Message(platform.MessageDialog{Title: "t", Message: "m"}); ok {
		t.Fatal("queued cancel not returned")
	}
	if ok, _ := b.Message(platform.MessageDialog{Title: "t2"}); !ok {
		t.Fatal("unqueued message should default to ok")
	}
	if msgs := b.Messages(); len(msgs) != 2 || msgs[0].Message != "m" {
		t.Fatalf("Messages() = %+v", msgs)
	}
}

func TestSound(t *testing.T) {
	b := New(Options{})
	b.Beep()
	b.Beep()
	if b.Beeps() != 2 {
		t.Fatalf("Beeps() = %d", b.Beeps())
	}
	if err := b.Play("chime"); err != nil {
		t.Fatal(err)
	}
	if err := b.Play(""); err == nil {
		t.Fatal("empty sound name should fail")
	}
	if p := b.Played(); len(p) != 1 || p[0] != "chime" {
		t.Fatalf("Played() = %v", p)
	}
}

func TestFaultInjection(t *testing.T) {
	b := New(Options{})

	boom := stderrors.New("enumeration failed")
	b.FailNext("Screens", boom)
	if _, err := b.Screens(); err != boom {
		t.Fatalf("Screens() error = %v", err)
	}
	if _, err := b.Screens(); err != nil {
		t.Fatalf("fault should apply once, got %v", err)
	}

	b.PanicNext("Beep", "speaker on fire")
	func() {
		defer func() {
			if r := recover(); r != "speaker on fire" {
				t.Fatalf("recovered %v", r)
			}
		}()
		b.Beep()
	}()
	// the lock is released after an injected panic
	if err := b.Beep(); err != nil {
		t.Fatal(err)
	}

	w, _ := b.CreateWindow(platform.WindowOptions{Width: 1, Height: 1})
	b.FailNext("SetTitle", boom)
	if err := w.SetTitle("x"); err != boom {
		t.Fatalf("SetTitle() error = %v", err)
	}
}

func TestClose(t *testing.T) {
	b := New(Options{})
	w, _ := b.CreateWindow(platform.WindowOptions{Width: 1, Height: 1})

	if err := b.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Screens(); errors.KindOf(err) != errors.KindNotInitialized {
		t.Fatalf("Screens() after Close kind = %s", errors.KindOf(err))
	}
	if _, err := w.Title(); err == nil {
		t.Fatal("window call after Close should fail")
	}
}

func TestRegistered(t *testing.T) {
	p, err := platform.Open(Name, platform.Options{Screens: []platform.Screen{}})
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()
	if p.Name() != Name {
		t.Fatalf("Name() = %q", p.Name())
	}
	if s, _ := p.Screens(); len(s) != 0 {
		t.Fatalf("seeded empty screens, got %d", len(s))
	}

	_, err = platform.Open("nope", platform.Options{})
	if errors.KindOf(err) != errors.KindUnsupported {
		t.Fatalf("unknown backend kind = %s", errors.KindOf(err))
	}
}

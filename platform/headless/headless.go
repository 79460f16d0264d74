// Package headless is an in-memory platform backend.
//
// It keeps windows, input state and the clipboard in memory and answers
// dialogs from queued responses. Tests drive it through the scripting
// methods (PressKey, MoveMouse, QueueOpenFiles, FailNext, ...).
package headless

import (
	"sync"

	"github.com/wippyai/native-adapter/errors"
	"github.com/wippyai/native-adapter/platform"
)

// Name is the backend name reported by Platform.Name.
const Name = "headless"

// Options seeds a new backend.
type Options struct {
	Screens []platform.Screen
}

// DefaultScreens is used when Options.Screens is nil.
var DefaultScreens = []platform.Screen{
	{Name: "Headless-1", Bounds: platform.Rect{Width: 1920, Height: 1080}, Scale: 1, Primary: true},
}

type fault struct {
	err     error
	payload any
	panics  bool
}

// Backend implements platform.Platform in memory.
type Backend struct {
	mu sync.Mutex

	windows map[*window]struct{}
	focused *window
	nextPos int32

	keys      map[platform.Key]bool
	buttons   map[platform.MouseButton]bool
	mouse     platform.Point
	clipboard string
	screens   []platform.Screen

	openResponses    [][]string
	saveResponses    []string
	messageResponses []bool
	messages         []platform.MessageDialog

	beeps  int
	played []string

	faults map[string][]fault
	closed bool
}

var _ platform.Platform = (*Backend)(nil)

// New creates a headless backend.
func New(opts Options) *Backend {
	screens := opts.Screens
	if screens == nil {
		screens = DefaultScreens
	}
	return &Backend{
		windows: make(map[*window]struct{}),
		keys:    make(map[platform.Key]bool),
		buttons: make(map[platform.MouseButton]bool),
		screens: append([]platform.Screen(nil), screens...),
		faults:  make(map[string][]fault),
	}
}

func (b *Backend) Name() string { return Name }

// Close destroys every window. Later calls fail with not_initialized.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for w := range b.windows {
		w.dropped = true
	}
	b.windows = nil
	b.focused = nil
	b.closed = true
	return nil
}

// FailNext makes the next call of op return err. op is the method name,
// e.g. "Screens" or "SetTitle".
func (b *Backend) FailNext(op string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.faults[op] = append(b.faults[op], fault{err: err})
}

// PanicNext makes the next call of op panic with payload.
func (b *Backend) PanicNext(op string, payload any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.faults[op] = append(b.faults[op], fault{payload: payload, panics: true})
}

// enter is called with b.mu held at the start of every operation.
func (b *Backend) enter(op string) error {
	if b.closed {
		return errors.NotInitialized(errors.PhasePlatform, "headless backend")
	}
	queue := b.faults[op]
	if len(queue) == 0 {
		return nil
	}
	f := queue[0]
	b.faults[op] = queue[1:]
	if f.panics {
		b.mu.Unlock()
		defer b.mu.Lock()
		panic(f.payload)
	}
	return f.err
}

// Windows

func (b *Backend) CreateWindow(opts platform.WindowOptions) (platform.Window, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("CreateWindow"); err != nil {
		return nil, err
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, errors.InvalidInput(errors.PhasePlatform, "window size must be positive")
	}

	w := &window{
		backend: b,
		title:   opts.Title,
		bounds:  platform.Rect{X: b.nextPos, Y: b.nextPos, Width: opts.Width, Height: opts.Height},
	}
	b.nextPos += 32
	b.windows[w] = struct{}{}
	if !opts.Hidden {
		b.focused = w
	}
	return w, nil
}

// WindowCount returns the number of live windows.
func (b *Backend) WindowCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.windows)
}

// Input

func (b *Backend) KeyPressed(k platform.Key) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("KeyPressed"); err != nil {
		return false, err
	}
	return b.keys[k], nil
}

func (b *Backend) MousePosition() (platform.Point, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("MousePosition"); err != nil {
		return platform.Point{}, err
	}
	return b.mouse, nil
}

func (b *Backend) MouseButtonPressed(btn platform.MouseButton) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("MouseButtonPressed"); err != nil {
		return false, err
	}
	return b.buttons[btn], nil
}

func (b *Backend) Clipboard() (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("Clipboard"); err != nil {
		return "", err
	}
	return b.clipboard, nil
}

func (b *Backend) SetClipboard(text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("SetClipboard"); err != nil {
		return err
	}
	b.clipboard = text
	return nil
}

// PressKey marks k as held down.
func (b *Backend) PressKey(k platform.Key) {
	b.mu.Lock()
	b.keys[k] = true
	b.mu.Unlock()
}

// ReleaseKey marks k as released.
func (b *Backend) ReleaseKey(k platform.Key) {
	b.mu.Lock()
	delete(b.keys, k)
	b.mu.Unlock()
}

// MoveMouse sets the cursor position.
func (b *Backend) MoveMouse(p platform.Point) {
	b.mu.Lock()
	b.mouse = p
	b.mu.Unlock()
}

// SetButton sets the state of a mouse button.
func (b *Backend) SetButton(btn platform.MouseButton, down bool) {
	b.mu.Lock()
	b.buttons[btn] = down
	b.mu.Unlock()
}

// Screens

func (b *Backend) Screens() ([]platform.Screen, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("Screens"); err != nil {
		return nil, err
	}
	return append([]platform.Screen{}, b.screens...), nil
}

// SetScreens replaces the attached screens. An empty slice simulates a
// machine with no displays.
func (b *Backend) SetScreens(screens []platform.Screen) {
	b.mu.Lock()
	b.screens = append([]platform.Screen(nil), screens...)
	b.mu.Unlock()
}

// Dialogs

func (b *Backend) OpenFiles(opts platform.FileDialog) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("OpenFiles"); err != nil {
		return nil, err
	}
	if len(b.openResponses) == 0 {
		return []string{}, nil
	}
	paths := b.openResponses[0]
	b.openResponses = b.openResponses[1:]
	if !opts.Multiple && len(paths) > 1 {
		paths = paths[:1]
	}
	return append([]string{}, paths...), nil
}

func (b *Backend) SaveFile(opts platform.FileDialog) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("SaveFile"); err != nil {
		return "", err
	}
	if len(b.saveResponses) == 0 {
		return "", nil
	}
	path := b.saveResponses[0]
	b.saveResponses = b.saveResponses[1:]
	return path, nil
}

func (b *Backend) Message(opts platform.MessageDialog) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("Message"); err != nil {
		return false, err
	}
	b.messages = append(b.messages, opts)
	if len(b.messageResponses) == 0 {
		return true, nil
	}
	ok := b.messageResponses[0]
	b.messageResponses = b.messageResponses[1:]
	return ok, nil
}

// QueueOpenFiles queues the result of the next open dialog. An empty slice
// simulates cancellation.
func (b *Backend) QueueOpenFiles(paths ...string) {
	b.mu.Lock()
	b.openResponses = append(b.openResponses, paths)
	b.mu.Unlock()
}

// QueueSaveFile queues the result of the next save dialog.
func (b *Backend) QueueSaveFile(path string) {
	b.mu.Lock()
	b.saveResponses = append(b.saveResponses, path)
	b.mu.Unlock()
}

// QueueMessage queues the button choice of the next message box.
func (b *Backend) QueueMessage(ok bool) {
	b.mu.Lock()
	b.messageResponses = append(b.messageResponses, ok)
	b.mu.Unlock()
}

// Messages returns every message box shown so far.
func (b *Backend) Messages() []platform.MessageDialog {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]platform.MessageDialog(nil), b.messages...)
}

// Sound

func (b *Backend) Beep() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("Beep"); err != nil {
		return err
	}
	b.beeps++
	return nil
}

func (b *Backend) Play(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.enter("Play"); err != nil {
		return err
	}
	if name == "" {
		return errors.InvalidInput(errors.PhasePlatform, "sound name is empty")
	}
	b.played = append(b.played, name)
	return nil
}

// Beeps returns how many times Beep succeeded.
func (b *Backend) Beeps() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.beeps
}

// Played returns the names passed to Play.
func (b *Backend) Played() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.played...)
}

func init() {
	platform.Register(Name, func(opts platform.Options) (platform.Platform, error) {
		return New(Options{Screens: opts.Screens}), nil
	})
}

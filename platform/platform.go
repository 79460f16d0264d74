package platform

// Point is a position in screen coordinates.
type Point struct {
	X int32
	Y int32
}

// Size is a width and height in screen coordinates.
type Size struct {
	Width  int32
	Height int32
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X      int32
	Y      int32
	Width  int32
	Height int32
}

// WindowOptions configures a new window.
type WindowOptions struct {
	Title  string
	Width  int32
	Height int32
	Hidden bool
}

// Window is a live top-level window. Drop destroys it.
type Window interface {
	Title() (string, error)
	SetTitle(title string) error
	Size() (Size, error)
	SetSize(Size) error
	Position() (Point, error)
	SetPosition(Point) error
	Focus() error
	Focused() (bool, error)
	Drop() error
}

// Windows creates windows.
type Windows interface {
	CreateWindow(opts WindowOptions) (Window, error)
}

// Input reads keyboard, mouse and clipboard state.
type Input interface {
	KeyPressed(k Key) (bool, error)
	MousePosition() (Point, error)
	MouseButtonPressed(b MouseButton) (bool, error)
	Clipboard() (string, error)
	SetClipboard(text string) error
}

// Screen describes one attached display.
type Screen struct {
	Name    string
	Bounds  Rect
	Scale   float64
	Primary bool
}

// Screens enumerates displays. A machine with no displays returns an empty
// slice and no error.
type Screens interface {
	Screens() ([]Screen, error)
}

// FileDialog configures open and save dialogs.
type FileDialog struct {
	Title       string
	Directory   string
	DefaultName string
	// Filters are glob patterns such as "*.png".
	Filters  []string
	Multiple bool
}

// MessageLevel selects the icon of a message box.
type MessageLevel int32

const (
	MessageInfo MessageLevel = iota
	MessageWarning
	MessageError
)

// MessageDialog configures a message box.
type MessageDialog struct {
	Title   string
	Message string
	Level   MessageLevel
	Cancel  bool
}

// Dialogs shows modal system dialogs. A cancelled dialog is not an error:
// OpenFiles returns an empty slice and SaveFile an empty path.
type Dialogs interface {
	OpenFiles(opts FileDialog) ([]string, error)
	SaveFile(opts FileDialog) (string, error)
	Message(opts MessageDialog) (bool, error)
}

// Sound plays system sounds.
type Sound interface {
	Beep() error
	Play(name string) error
}

// Platform is the full set of OS integrations used by the adapter.
type Platform interface {
	Windows
	Input
	Screens
	Dialogs
	Sound

	Name() string
	Close() error
}

// PrimaryScreen returns the primary screen from a list, falling back to the
// first one.
func PrimaryScreen(screens []Screen) (Screen, bool) {
	for _, s := range screens {
		if s.Primary {
			return s, true
		}
	}
	if len(screens) > 0 {
		return screens[0], true
	}
	return Screen{}, false
}

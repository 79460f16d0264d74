package resource

// Handle is an opaque reference to a resource in a table.
// Handle 0 is reserved and always invalid; it is the default value returned
// by failed calls.
type Handle uint64

// TypeID tags the kind of object behind a handle.
type TypeID uint32

const (
	TypeWindow TypeID = iota + 1
)

// String returns the name used in error messages.
func (t TypeID) String() string {
	switch t {
	case TypeWindow:
		return "window"
	default:
		return "resource"
	}
}

// EventType identifies a resource lifecycle notification.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
	EventBorrowed
	EventBorrowReturned
	EventDropRejected
)

func (e EventType) String() string {
	switch e {
	case EventCreated:
		return "created"
	case EventDropped:
		return "dropped"
	case EventBorrowed:
		return "borrowed"
	case EventBorrowReturned:
		return "borrow_returned"
	case EventDropRejected:
		return "drop_rejected"
	default:
		return "unknown"
	}
}

// Event represents a resource lifecycle event.
type Event struct {
	Value  any
	Handle Handle
	TypeID TypeID
	Type   EventType
}

// Observer receives notifications about resource lifecycle events.
type Observer interface {
	OnResourceEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) OnResourceEvent(e Event) { f(e) }

// Dropper is optionally implemented by resource values that own OS state.
// Drop is called once, when the value leaves the table.
type Dropper interface {
	Drop() error
}

// Package resource maps opaque integer handles to platform objects.
//
// Windows and other OS objects never cross the boundary as pointers. The
// host receives a Handle from a Table and passes it back on every call:
//
//	table := resource.NewTable()
//	windows := resource.NewTyped[platform.Window](table, resource.TypeWindow)
//
//	h, err := windows.Insert(w)
//	err = windows.With(h, func(w platform.Window) error {
//	    return w.SetTitle("hello")
//	})
//	err = windows.Remove(h)
//
// # Handles
//
// Handle 0 is the null handle and never resolves. Slots are reused, but each
// reuse bumps a generation stored in the upper 32 bits, so a stale handle
// fails with not_found instead of reaching a newer object.
//
// Handles are typed: Borrow and Remove fail with invalid_input when the
// handle belongs to a different TypeID.
//
// # Borrows
//
// Calls that operate on an object borrow its handle for their duration.
// Removing a borrowed handle fails with a busy error and emits
// EventDropRejected; the object stays alive until the borrow is returned.
//
// # Observers
//
//	table.Subscribe(resource.ObserverFunc(func(e resource.Event) {
//	    logger.Debug("resource event", zap.Stringer("type", e.Type))
//	}))
//
// # Teardown
//
// Values implementing Dropper are destroyed when removed and when the table
// is closed. Close combines every Drop error with multierr.
package resource

// Package boundary is the containment wrapper every host-facing operation
// runs through.
//
// Run executes a fallible body and always hands back a value of the declared
// type:
//
//	n := boundary.Run(g, "screen_count", func() (uint32, error) {
//	    return countScreens()
//	})
//
// On success the body's result is returned and nothing is logged. When the
// body returns an error, or panics, the failure is appended to the guard's
// exception log and the default value of T is returned. A panic never
// propagates out of Run.
//
// # Default Values
//
// The default of T is its Go zero value (nil pointer, zero number, false,
// zero struct) unless T implements Defaulter[T], in which case DefaultValue
// is used. DefaultValue must be pure; it is called when the real
// computation did not complete.
//
// # Goexit
//
// runtime.Goexit cannot be stopped by a deferred function. When a body calls
// it, Run still records an abnormal termination before the goroutine exits.
package boundary

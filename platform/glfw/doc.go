// Package glfw is a desktop platform backend built on GLFW 3.3.
//
// The implementation is compiled only with the glfw build tag, which also
// requires cgo and the GLFW build dependencies:
//
//	go build -tags glfw ./...
//
// Without the tag the package is empty and importing it registers nothing,
// so selecting the "glfw" backend fails with an unsupported error.
//
// Every GLFW call runs on one goroutine locked to its OS thread. Callers on
// other threads hand a closure to that goroutine and block until it returns.
// A panic inside GLFW is carried back and re-raised on the caller's
// goroutine, where the adapter's containment wrapper records it.
//
// GLFW has no dialogs or sound; those operations report unsupported.
//
// On macOS GLFW only works from the process main thread, which a shared
// library loaded by a host does not own. Use the backend on Linux and Windows.
package glfw

// Package platform defines the OS integrations the adapter wraps.
//
// Window creation, input polling, screen enumeration, dialogs and sound are
// provided by a Platform backend. Every method may fail; the adapter runs
// each call inside the containment wrapper, so a backend is free to return
// errors or even panic without affecting the host.
//
// Backends:
//
//	platform/headless  deterministic in-memory backend for tests, CI and the CLI
//	platform/glfw      desktop backend on GLFW 3.3 (build tag glfw)
//
// Key, MouseButton and ResizeEdge are backend-neutral enumerations. Each has a
// single lookup table; backends keep one more table translating to their own
// constants.
package platform

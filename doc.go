// Package nativeadapter exposes windowing, input, screen, dialog and sound
// primitives to a foreign host runtime through a flat C calling convention.
//
// The hard part is not any single OS call but the boundary discipline around
// all of them: no failure, panic or ownership mistake inside native code may
// corrupt or hang the host process.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	nativeadapter/          Root package with the Allocator interface
//	├── errors/             Structured error types and failure classification
//	├── exception/          Process-wide exception log drained by the host
//	├── boundary/           Containment wrapper and default-value protocol
//	├── abi/                Borrowed/owned pointers and transfer arrays
//	├── cmem/               Native allocators (cgo, purego, msvcrt, Go heap)
//	├── resource/           Handle table for platform objects
//	├── platform/           Interfaces for OS integrations and backends
//	├── adapter/            The flat operation surface
//	├── config/             TOML configuration and logger construction
//	└── cmd/
//	    ├── libnativeadapter/  c-shared library exporting na_* functions
//	    └── adapterctl/        inspector CLI and TUI
//
// # Boundary Protocol
//
// Every exported operation runs through boundary.Run:
//
//	count := boundary.Run(guard, "screen_count", func() (uint32, error) {
//	    screens, err := platform.Screens()
//	    return uint32(len(screens)), err
//	})
//
// On success the result is returned unchanged. On an error or a panic the
// failure is appended to the exception log and the default value of the
// return type is returned instead. Panics never cross the boundary.
//
// # Ownership
//
// Arguments arrive as abi.Borrowed values that are valid only during the
// call. Results that carry memory are abi.OwnedString or abi.TransferArray
// values allocated from an Allocator; the host owns them after the call and
// must hand each one back to its release entry point exactly once.
//
// # Failure Detail
//
// Default values are not distinguishable from legitimate results (a screen
// count of zero looks the same as a failed enumeration). Hosts call
// na_exceptions_pending or na_check_exceptions to learn whether a call
// failed and why.
package nativeadapter

// Package cmem provides the allocators behind every value the adapter hands
// to its host.
//
// Native returns the best allocator for the build:
//
//	cgo builds              C calloc/free
//	darwin, linux (no cgo)  libc calloc/free loaded with purego
//	windows (no cgo)        msvcrt calloc/free loaded with x/sys/windows
//	anything else           GoAllocator (Go heap)
//
// GoAllocator keeps every block reachable until Free, so its addresses stay
// valid across calls on targets without a C runtime. Tracker wraps
// any allocator and counts live blocks; it is the leak check used by tests
// and by the track_leaks configuration switch.
//
// AllocationList records allocations made while building a composite value
// so that a failed build can be rolled back without the host ever seeing a
// partially initialised result.
package cmem

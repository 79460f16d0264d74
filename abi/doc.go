// Package abi defines the values that cross the host boundary and who owns
// them.
//
// # Borrowed
//
// Borrowed wraps host memory that is valid only for the duration of the
// current call. Its contents can be copied out (Text, Bytes) or inspected
// inside a callback (View); no API hands out a reference to host memory that
// outlives the call.
//
// # Owned
//
// Owned is native memory produced here and handed to the host. Transfer
// yields the flat OwnedString and resets the handle, so the native side
// cannot touch the memory again. Release frees it and resets the handle. Go
// has no move-only types: both methods take a pointer receiver and leave the
// null handle behind, which makes a second call through the same variable a
// no-op. Releasing a copy of a handle is a host contract violation and is
// not detected.
//
// # TransferArray
//
// TransferArray is a contiguous native array with an explicit length handed
// to the host as *ArrayHeader. Releasing it releases every element (each
// element type knows how to free what it owns) and then the storage. An
// empty array is a valid header with zero length, never the null handle.
//
// Element types live in native memory and must be fixed-layout values that
// hold no Go pointers.
package abi

package adapter

import (
	"github.com/wippyai/native-adapter/abi"
	"github.com/wippyai/native-adapter/boundary"
	"github.com/wippyai/native-adapter/cmem"
	"github.com/wippyai/native-adapter/exception"
)

// CheckExceptions drains the exception log into an array of
// ExceptionRecord owned by the host. An empty log gives an empty array.
// If the array cannot be built the drained records go back into the log
// ahead of the check_exceptions failure itself.
func (a *Adapter) CheckExceptions() *abi.ArrayHeader {
	return boundary.Run(a.guard, "check_exceptions", func() (hdr *abi.ArrayHeader, err error) {
		records := a.Log().Drain()
		delivered := false
		defer func() {
			if !delivered {
				a.Log().Restore(records)
			}
		}()

		arr, err := abi.Build(a.alloc, records, func(al *cmem.AllocationList, r exception.Record) (ExceptionRecord, error) {
			return toException(allocList{a.alloc, al}, r), nil
		})
		if err != nil {
			return nil, err
		}
		delivered = true
		return arr.Transfer(), nil
	})
}

// ClearExceptions discards the log contents.
func (a *Adapter) ClearExceptions() {
	boundary.Do(a.guard, "clear_exceptions", func() error {
		a.Log().Clear()
		return nil
	})
}

// ExceptionsPending returns how many records are waiting to be drained.
func (a *Adapter) ExceptionsPending() uint32 {
	return boundary.Run(a.guard, "exceptions_pending", func() (uint32, error) {
		return uint32(a.Log().Len()), nil
	})
}

// StringDrop releases a string returned by any operation. Call it exactly
// once per string; the null string is ignored.
func (a *Adapter) StringDrop(s abi.OwnedString) {
	boundary.Do(a.guard, "string_drop", func() error {
		abi.ReleaseString(a.alloc, s)
		return nil
	})
}

// StringArrayDrop releases an array of strings and every string in it.
func (a *Adapter) StringArrayDrop(hdr *abi.ArrayHeader) {
	boundary.Do(a.guard, "string_array_drop", func() error {
		abi.ReleaseArray[abi.OwnedString](a.alloc, hdr)
		return nil
	})
}

// ExceptionArrayDrop releases an array returned by CheckExceptions.
func (a *Adapter) ExceptionArrayDrop(hdr *abi.ArrayHeader) {
	boundary.Do(a.guard, "exception_array_drop", func() error {
		abi.ReleaseArray[ExceptionRecord](a.alloc, hdr)
		return nil
	})
}

// ScreenArrayDrop releases an array returned by Screens.
func (a *Adapter) ScreenArrayDrop(hdr *abi.ArrayHeader) {
	boundary.Do(a.guard, "screen_array_drop", func() error {
		abi.ReleaseArray[ScreenInfo](a.alloc, hdr)
		return nil
	})
}

// ScreenDrop releases the name owned by a ScreenInfo from PrimaryScreen.
func (a *Adapter) ScreenDrop(s ScreenInfo) {
	boundary.Do(a.guard, "screen_drop", func() error {
		s.ReleaseNative(a.alloc)
		return nil
	})
}

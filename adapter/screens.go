package adapter

import (
	"github.com/wippyai/native-adapter/abi"
	"github.com/wippyai/native-adapter/boundary"
	"github.com/wippyai/native-adapter/cmem"
	"github.com/wippyai/native-adapter/errors"
	"github.com/wippyai/native-adapter/platform"
)

// ScreenCount returns the number of displays. Zero is both a legitimate
// answer and the failure default; ExceptionsPending tells them apart.
func (a *Adapter) ScreenCount() uint32 {
	return boundary.Run(a.guard, "screen_count", func() (uint32, error) {
		screens, err := a.platform.Screens()
		if err != nil {
			return 0, err
		}
		return uint32(len(screens)), nil
	})
}

// Screens returns an array of ScreenInfo. No displays gives an empty
// array; a failure gives nil.
func (a *Adapter) Screens() *abi.ArrayHeader {
	return boundary.Run(a.guard, "screens", func() (*abi.ArrayHeader, error) {
		screens, err := a.platform.Screens()
		if err != nil {
			return nil, err
		}
		arr, err := abi.Build(a.alloc, screens, func(al *cmem.AllocationList, s platform.Screen) (ScreenInfo, error) {
			return toScreen(allocList{a.alloc, al}, s), nil
		})
		if err != nil {
			return nil, err
		}
		return arr.Transfer(), nil
	})
}

// PrimaryScreen returns the primary display. The result owns its name and
// must be released with ScreenDrop. Failure returns the zero ScreenInfo,
// whose name is the null string.
func (a *Adapter) PrimaryScreen() ScreenInfo {
	return boundary.Run(a.guard, "primary_screen", func() (ScreenInfo, error) {
		screens, err := a.platform.Screens()
		if err != nil {
			return ScreenInfo{}, err
		}
		s, ok := platform.PrimaryScreen(screens)
		if !ok {
			return ScreenInfo{}, errors.NotFound(errors.PhasePlatform, "screen", "primary")
		}
		return toScreen(allocList{alloc: a.alloc}, s), nil
	})
}

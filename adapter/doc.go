// Package adapter is the operation surface of the native adapter.
//
// Each exported method of Adapter corresponds to one C entry point. Methods
// accept only fixed-layout values (integers, booleans, abi.Borrowed) and
// return only fixed-layout values (abi.OwnedString, *abi.ArrayHeader,
// ScreenInfo, platform.Point, platform.Size, resource.Handle).
//
// Failures never escape as Go errors or panics. They are recorded in the
// exception log under the operation's snake_case name, and the method
// returns its default value:
//
//	h := ad.WindowCreate(abi.BorrowString("main"), 800, 600, false)
//	if h == 0 {
//	    hdr := ad.CheckExceptions()
//	    for _, r := range abi.Elements[adapter.ExceptionRecord](hdr) {
//	        log.Printf("%s: %s", r.Operation.Text(), r.Message.Text())
//	    }
//	    ad.ExceptionArrayDrop(hdr)
//	}
//
// Windows are kept in a resource table and addressed by generation-tagged
// handles, so a stale handle is reported as not found rather than reaching
// a destroyed window. Closing a window while another call is using it
// fails with a busy exception.
//
// Every owned result must be handed back to exactly one of StringDrop,
// StringArrayDrop, ExceptionArrayDrop, ScreenArrayDrop or ScreenDrop.
package adapter

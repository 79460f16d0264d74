package adapter

import (
	nativeadapter "github.com/wippyai/native-adapter"
	"github.com/wippyai/native-adapter/abi"
	"github.com/wippyai/native-adapter/errors"
	"github.com/wippyai/native-adapter/exception"
	"github.com/wippyai/native-adapter/platform"
)

// KindCode is the integer form of an errors.Kind carried in ExceptionRecord.
type KindCode int32

const (
	KindCodeUnknown KindCode = iota
	KindCodeExplicitFailure
	KindCodeAbnormalTermination
	KindCodeInvalidEncoding
	KindCodeNullPointer
	KindCodeOutOfBounds
	KindCodeNotFound
	KindCodeInvalidInput
	KindCodeUnsupported
	KindCodeNotInitialized
	KindCodeBusy
	KindCodeAllocation
	KindCodePlatform
)

var kindCodes = [...]errors.Kind{
	KindCodeUnknown:             "",
	KindCodeExplicitFailure:     errors.KindExplicitFailure,
	KindCodeAbnormalTermination: errors.KindAbnormalTermination,
	KindCodeInvalidEncoding:     errors.KindInvalidEncoding,
	KindCodeNullPointer:         errors.KindNullPointer,
	KindCodeOutOfBounds:         errors.KindOutOfBounds,
	KindCodeNotFound:            errors.KindNotFound,
	KindCodeInvalidInput:        errors.KindInvalidInput,
	KindCodeUnsupported:         errors.KindUnsupported,
	KindCodeNotInitialized:      errors.KindNotInitialized,
	KindCodeBusy:                errors.KindBusy,
	KindCodeAllocation:          errors.KindAllocation,
	KindCodePlatform:            errors.KindPlatform,
}

// CodeOf returns the code for k, or KindCodeUnknown.
func CodeOf(k errors.Kind) KindCode {
	for code, kind := range kindCodes {
		if kind == k && k != "" {
			return KindCode(code)
		}
	}
	return KindCodeUnknown
}

// Kind returns the kind named by c.
func (c KindCode) Kind() errors.Kind {
	if c < 0 || int(c) >= len(kindCodes) {
		return ""
	}
	return kindCodes[c]
}

// ExceptionRecord is the flat form of exception.Record.
// C layout: struct { na_string operation; na_string message; int32_t kind; uint64_t seq; }.
type ExceptionRecord struct {
	Operation abi.OwnedString
	Message   abi.OwnedString
	Kind      KindCode
	Seq       uint64
}

// ReleaseNative frees both strings.
func (r ExceptionRecord) ReleaseNative(a nativeadapter.Allocator) {
	r.Operation.ReleaseNative(a)
	r.Message.ReleaseNative(a)
}

// Abnormal reports whether the record came from a recovered panic.
func (r ExceptionRecord) Abnormal() bool {
	return r.Kind == KindCodeAbnormalTermination
}

// ScreenInfo is the flat form of platform.Screen.
type ScreenInfo struct {
	Name    abi.OwnedString
	X       int32
	Y       int32
	Width   int32
	Height  int32
	Scale   float64
	Primary bool
}

// ReleaseNative frees the name.
func (s ScreenInfo) ReleaseNative(a nativeadapter.Allocator) {
	s.Name.ReleaseNative(a)
}

func toException(al allocList, r exception.Record) ExceptionRecord {
	return ExceptionRecord{
		Operation: al.str(r.Operation),
		Message:   al.str(r.Message),
		Kind:      CodeOf(r.Kind),
		Seq:       r.Seq,
	}
}

func toScreen(al allocList, s platform.Screen) ScreenInfo {
	return ScreenInfo{
		Name:    al.str(s.Name),
		X:       s.Bounds.X,
		Y:       s.Bounds.Y,
		Width:   s.Bounds.Width,
		Height:  s.Bounds.Height,
		Scale:   s.Scale,
		Primary: s.Primary,
	}
}

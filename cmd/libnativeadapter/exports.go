package main

/*
#include <stdbool.h>
#include <stddef.h>
#include <stdint.h>

typedef struct { char* ptr; size_t len; } na_string;
typedef struct { void* data; size_t len; size_t cap; } na_array;
typedef struct { int32_t x; int32_t y; } na_point;
typedef struct { int32_t width; int32_t height; } na_size;

typedef struct {
	na_string name;
	int32_t x;
	int32_t y;
	int32_t width;
	int32_t height;
	double scale;
	bool primary;
} na_screen;

typedef struct {
	na_string operation;
	na_string message;
	int32_t kind;
	uint64_t seq;
} na_exception;
*/
import "C"

import (
	"unsafe"

	"github.com/wippyai/native-adapter/abi"
	"github.com/wippyai/native-adapter/adapter"
	"github.com/wippyai/native-adapter/platform"
	"github.com/wippyai/native-adapter/resource"
)

// The C structs above mirror abi.OwnedString, abi.ArrayHeader,
// platform.Point, platform.Size, adapter.ScreenInfo and
// adapter.ExceptionRecord field for field, so values are reinterpreted
// in place rather than copied.

func borrow(p *C.char, n C.size_t) abi.Borrowed {
	return abi.Borrow(unsafe.Pointer(p), uintptr(n))
}

func borrowNullable(p *C.char, n C.size_t) abi.Borrowed {
	return abi.BorrowNullable(unsafe.Pointer(p), uintptr(n))
}

func toC(s abi.OwnedString) C.na_string {
	return *(*C.na_string)(unsafe.Pointer(&s))
}

func fromC(s C.na_string) abi.OwnedString {
	return *(*abi.OwnedString)(unsafe.Pointer(&s))
}

func arrayToC(h *abi.ArrayHeader) *C.na_array {
	return (*C.na_array)(unsafe.Pointer(h))
}

func arrayFromC(h *C.na_array) *abi.ArrayHeader {
	return (*abi.ArrayHeader)(unsafe.Pointer(h))
}

func screenToC(s adapter.ScreenInfo) C.na_screen {
	return *(*C.na_screen)(unsafe.Pointer(&s))
}

func screenFromC(s C.na_screen) adapter.ScreenInfo {
	return *(*adapter.ScreenInfo)(unsafe.Pointer(&s))
}

func pointToC(p platform.Point) C.na_point {
	return C.na_point{x: C.int32_t(p.X), y: C.int32_t(p.Y)}
}

// Windows

//export na_window_create
func na_window_create(title *C.char, titleLen C.size_t, width, height C.int32_t, hidden C.bool) C.uint64_t {
	return C.uint64_t(get().WindowCreate(borrow(title, titleLen), int32(width), int32(height), bool(hidden)))
}

//export na_window_close
func na_window_close(window C.uint64_t) C.bool {
	return C.bool(get().WindowClose(resource.Handle(window)))
}

//export na_window_set_title
func na_window_set_title(window C.uint64_t, title *C.char, titleLen C.size_t) C.bool {
	return C.bool(get().WindowSetTitle(resource.Handle(window), borrow(title, titleLen)))
}

//export na_window_get_title
func na_window_get_title(window C.uint64_t) C.na_string {
	return toC(get().WindowGetTitle(resource.Handle(window)))
}

//export na_window_size
func na_window_size(window C.uint64_t) C.na_size {
	s := get().WindowSize(resource.Handle(window))
	return C.na_size{width: C.int32_t(s.Width), height: C.int32_t(s.Height)}
}

//export na_window_set_size
func na_window_set_size(window C.uint64_t, width, height C.int32_t) C.bool {
	return C.bool(get().WindowSetSize(resource.Handle(window), int32(width), int32(height)))
}

//export na_window_position
func na_window_position(window C.uint64_t) C.na_point {
	return pointToC(get().WindowPosition(resource.Handle(window)))
}

//export na_window_set_position
func na_window_set_position(window C.uint64_t, x, y C.int32_t) C.bool {
	return C.bool(get().WindowSetPosition(resource.Handle(window), int32(x), int32(y)))
}

//export na_window_focus
func na_window_focus(window C.uint64_t) C.bool {
	return C.bool(get().WindowFocus(resource.Handle(window)))
}

//export na_window_is_focused
func na_window_is_focused(window C.uint64_t) C.bool {
	return C.bool(get().WindowIsFocused(resource.Handle(window)))
}

//export na_window_drag_edge
func na_window_drag_edge(window C.uint64_t, edge, dx, dy C.int32_t) C.bool {
	return C.bool(get().WindowDragEdge(resource.Handle(window), int32(edge), int32(dx), int32(dy)))
}

//export na_window_count
func na_window_count() C.uint32_t {
	return C.uint32_t(get().WindowCount())
}

// Input

//export na_key_pressed
func na_key_pressed(key C.int32_t) C.bool {
	return C.bool(get().KeyPressed(int32(key)))
}

//export na_mouse_position
func na_mouse_position() C.na_point {
	return pointToC(get().MousePosition())
}

//export na_mouse_button_pressed
func na_mouse_button_pressed(button C.int32_t) C.bool {
	return C.bool(get().MouseButtonPressed(int32(button)))
}

//export na_clipboard_get
func na_clipboard_get() C.na_string {
	return toC(get().ClipboardGet())
}

//export na_clipboard_set
func na_clipboard_set(text *C.char, textLen C.size_t) C.bool {
	return C.bool(get().ClipboardSet(borrow(text, textLen)))
}

// Screens

//export na_screen_count
func na_screen_count() C.uint32_t {
	return C.uint32_t(get().ScreenCount())
}

//export na_screens
func na_screens() *C.na_array {
	return arrayToC(get().Screens())
}

//export na_primary_screen
func na_primary_screen() C.na_screen {
	return screenToC(get().PrimaryScreen())
}

// Dialogs and sound

//export na_dialog_open_files
func na_dialog_open_files(title *C.char, titleLen C.size_t, filters *C.char, filtersLen C.size_t, multiple C.bool) *C.na_array {
	return arrayToC(get().DialogOpenFiles(borrow(title, titleLen), borrowNullable(filters, filtersLen), bool(multiple)))
}

//export na_dialog_save_file
func na_dialog_save_file(title *C.char, titleLen C.size_t, defaultName *C.char, defaultNameLen C.size_t) C.na_string {
	return toC(get().DialogSaveFile(borrow(title, titleLen), borrowNullable(defaultName, defaultNameLen)))
}

//export na_dialog_message
func na_dialog_message(title *C.char, titleLen C.size_t, message *C.char, messageLen C.size_t, level C.int32_t, cancel C.bool) C.bool {
	return C.bool(get().DialogMessage(borrow(title, titleLen), borrow(message, messageLen), int32(level), bool(cancel)))
}

//export na_sound_beep
func na_sound_beep() C.bool {
	return C.bool(get().SoundBeep())
}

//export na_sound_play
func na_sound_play(name *C.char, nameLen C.size_t) C.bool {
	return C.bool(get().SoundPlay(borrow(name, nameLen)))
}

// Exceptions and release

//export na_check_exceptions
func na_check_exceptions() *C.na_array {
	return arrayToC(get().CheckExceptions())
}

//export na_clear_exceptions
func na_clear_exceptions() {
	get().ClearExceptions()
}

//export na_exceptions_pending
func na_exceptions_pending() C.uint32_t {
	return C.uint32_t(get().ExceptionsPending())
}

//export na_string_drop
func na_string_drop(s C.na_string) {
	get().StringDrop(fromC(s))
}

//export na_string_array_drop
func na_string_array_drop(arr *C.na_array) {
	get().StringArrayDrop(arrayFromC(arr))
}

//export na_exception_array_drop
func na_exception_array_drop(arr *C.na_array) {
	get().ExceptionArrayDrop(arrayFromC(arr))
}

//export na_screen_array_drop
func na_screen_array_drop(arr *C.na_array) {
	get().ScreenArrayDrop(arrayFromC(arr))
}

//export na_screen_drop
func na_screen_drop(s C.na_screen) {
	get().ScreenDrop(screenFromC(s))
}

// na_shutdown destroys every window and closes the backend. Later calls
// fail with not_initialized; values already returned stay valid.
//
//export na_shutdown
func na_shutdown() {
	get().Close()
}

//go:build glfw

package glfw

import (
	glfw3 "github.com/go-gl/glfw/v3.3/glfw"

	"github.com/wippyai/native-adapter/platform"
)

var keyTable = [...]glfw3.Key{
	platform.KeyUnknown:      glfw3.KeyUnknown,
	platform.KeySpace:        glfw3.KeySpace,
	platform.KeyApostrophe:   glfw3.KeyApostrophe,
	platform.KeyComma:        glfw3.KeyComma,
	platform.KeyMinus:        glfw3.KeyMinus,
	platform.KeyPeriod:       glfw3.KeyPeriod,
	platform.KeySlash:        glfw3.KeySlash,
	platform.Key0:            glfw3.Key0,
	platform.Key1:            glfw3.Key1,
	platform.Key2:            glfw3.Key2,
	platform.Key3:            glfw3.Key3,
	platform.Key4:            glfw3.Key4,
	platform.Key5:            glfw3.Key5,
	platform.Key6:            glfw3.Key6,
	platform.Key7:            glfw3.Key7,
	platform.Key8:            glfw3.Key8,
	platform.Key9:            glfw3.Key9,
	platform.KeySemicolon:    glfw3.KeySemicolon,
	platform.KeyEqual:        glfw3.KeyEqual,
	platform.KeyA:            glfw3.KeyA,
	platform.KeyB:            glfw3.KeyB,
	platform.KeyC:            glfw3.KeyC,
	platform.KeyD:            glfw3.KeyD,
	platform.KeyE:            glfw3.KeyE,
	platform.KeyF:            glfw3.KeyF,
	platform.KeyG:            glfw3.KeyG,
	platform.KeyH:            glfw3.KeyH,
	platform.KeyI:            glfw3.KeyI,
	platform.KeyJ:            glfw3.KeyJ,
	platform.KeyK:            glfw3.KeyK,
	platform.KeyL:            glfw3.KeyL,
	platform.KeyM:            glfw3.KeyM,
	platform.KeyN:            glfw3.KeyN,
	platform.KeyO:            glfw3.KeyO,
	platform.KeyP:            glfw3.KeyP,
	platform.KeyQ:            glfw3.KeyQ,
	platform.KeyR:            glfw3.KeyR,
	platform.KeyS:            glfw3.KeyS,
	platform.KeyT:            glfw3.KeyT,
	platform.KeyU:            glfw3.KeyU,
	platform.KeyV:            glfw3.KeyV,
	platform.KeyW:            glfw3.KeyW,
	platform.KeyX:            glfw3.KeyX,
	platform.KeyY:            glfw3.KeyY,
	platform.KeyZ:            glfw3.KeyZ,
	platform.KeyEscape:       glfw3.KeyEscape,
	platform.KeyEnter:        glfw3.KeyEnter,
	platform.KeyTab:          glfw3.KeyTab,
	platform.KeyBackspace:    glfw3.KeyBackspace,
	platform.KeyInsert:       glfw3.KeyInsert,
	platform.KeyDelete:       glfw3.KeyDelete,
	platform.KeyRight:        glfw3.KeyRight,
	platform.KeyLeft:         glfw3.KeyLeft,
	platform.KeyDown:         glfw3.KeyDown,
	platform.KeyUp:           glfw3.KeyUp,
	platform.KeyPageUp:       glfw3.KeyPageUp,
	platform.KeyPageDown:     glfw3.KeyPageDown,
	platform.KeyHome:         glfw3.KeyHome,
	platform.KeyEnd:          glfw3.KeyEnd,
	platform.KeyF1:           glfw3.KeyF1,
	platform.KeyF2:           glfw3.KeyF2,
	platform.KeyF3:           glfw3.KeyF3,
	platform.KeyF4:           glfw3.KeyF4,
	platform.KeyF5:           glfw3.KeyF5,
	platform.KeyF6:           glfw3.KeyF6,
	platform.KeyF7:           glfw3.KeyF7,
	platform.KeyF8:           glfw3.KeyF8,
	platform.KeyF9:           glfw3.KeyF9,
	platform.KeyF10:          glfw3.KeyF10,
	platform.KeyF11:          glfw3.KeyF11,
	platform.KeyF12:          glfw3.KeyF12,
	platform.KeyLeftShift:    glfw3.KeyLeftShift,
	platform.KeyLeftControl:  glfw3.KeyLeftControl,
	platform.KeyLeftAlt:      glfw3.KeyLeftAlt,
	platform.KeyLeftSuper:    glfw3.KeyLeftSuper,
	platform.KeyRightShift:   glfw3.KeyRightShift,
	platform.KeyRightControl: glfw3.KeyRightControl,
	platform.KeyRightAlt:     glfw3.KeyRightAlt,
	platform.KeyRightSuper:   glfw3.KeyRightSuper,
}

var buttonTable = [...]glfw3.MouseButton{
	platform.MouseLeft:   glfw3.MouseButtonLeft,
	platform.MouseRight:  glfw3.MouseButtonRight,
	platform.MouseMiddle: glfw3.MouseButtonMiddle,
}

func glfwKey(k platform.Key) (glfw3.Key, bool) {
	if !k.Valid() || int(k) >= len(keyTable) {
		return glfw3.KeyUnknown, false
	}
	return keyTable[k], true
}

func glfwButton(b platform.MouseButton) (glfw3.MouseButton, bool) {
	if !b.Valid() {
		return 0, false
	}
	return buttonTable[b], true
}

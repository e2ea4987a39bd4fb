package engine

import (
	"Beneath/internal/platform"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var keyTable = buildKeyTable()

func buildKeyTable() map[glfw.Key]platform.Key {
	table := map[glfw.Key]platform.Key{
		glfw.KeyBackspace:    platform.KeyBackspace,
		glfw.KeyTab:          platform.KeyTab,
		glfw.KeyEnter:        platform.KeyReturn,
		glfw.KeyKPEnter:      platform.KeyReturn,
		glfw.KeyLeftShift:    platform.KeyShift,
		glfw.KeyRightShift:   platform.KeyShift,
		glfw.KeyLeftControl:  platform.KeyControl,
		glfw.KeyRightControl: platform.KeyControl,
		glfw.KeyLeftAlt:      platform.KeyAlt,
		glfw.KeyRightAlt:     platform.KeyAlt,
		glfw.KeyCapsLock:     platform.KeyCapsLock,
		glfw.KeySpace:        platform.KeySpace,
		glfw.KeyLeft:         platform.KeyArrowLeft,
		glfw.KeyUp:           platform.KeyArrowUp,
		glfw.KeyRight:        platform.KeyArrowRight,
		glfw.KeyDown:         platform.KeyArrowDown,
	}
	// glfw keeps letters, digits and function keys contiguous.
	for i := 0; i < 26; i++ {
		table[glfw.KeyA+glfw.Key(i)] = platform.KeyA + platform.Key(i)
	}
	for i := 0; i < 10; i++ {
		table[glfw.Key0+glfw.Key(i)] = platform.Key0 + platform.Key(i)
	}
	for i := 0; i < 12; i++ {
		table[glfw.KeyF1+glfw.Key(i)] = platform.KeyF1 + platform.Key(i)
	}
	return table
}

func translateKey(key glfw.Key) platform.Key {
	if k, ok := keyTable[key]; ok {
		return k
	}
	return platform.KeyCount
}

func translateMouseButton(button glfw.MouseButton) platform.Key {
	switch button {
	case glfw.MouseButtonLeft:
		return platform.KeyMouseLeft
	case glfw.MouseButtonRight:
		return platform.KeyMouseRight
	case glfw.MouseButtonMiddle:
		return platform.KeyMouseMiddle
	}
	return platform.KeyCount
}

package platform

// Key identifies a button tracked by the platform layer. Mouse buttons share
// the table with the keyboard so application code can treat them uniformly.
type Key int

const (
	KeyMouseLeft Key = iota
	KeyMouseRight
	KeyMouseMiddle

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	KeyBackspace
	KeyTab
	KeyReturn
	KeyShift
	KeyControl
	KeyAlt
	KeyCapsLock
	KeySpace
	KeyArrowLeft
	KeyArrowUp
	KeyArrowRight
	KeyArrowDown

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	// KeyCount is the size of the key table. It doubles as the "unmapped" marker.
	KeyCount
)

var keyNames = [...]string{
	"MouseLeft", "MouseRight", "MouseMiddle",
	"F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9", "F10", "F11", "F12",
	"Backspace", "Tab", "Return", "Shift", "Control", "Alt", "CapsLock", "Space",
	"ArrowLeft", "ArrowUp", "ArrowRight", "ArrowDown",
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
	"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M",
	"N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
}

func (k Key) String() string {
	if k < 0 || k >= KeyCount {
		return "Unknown"
	}
	return keyNames[k]
}

// Valid reports whether k indexes the key table.
func (k Key) Valid() bool {
	return k >= 0 && k < KeyCount
}

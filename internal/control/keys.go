package control

import "strings"

type Key int

const (
	KeyNone Key = iota
	KeyForward
	KeyReverse
	KeyBrake
	KeyReset
)

func (k Key) String() string {
	switch k {
	case KeyForward:
		return "forward"
	case KeyReverse:
		return "reverse"
	case KeyBrake:
		return "brake"
	case KeyReset:
		return "reset"
	default:
		return "none"
	}
}

// ParseKey accepts DOM key codes ("ArrowRight", "Space", "KeyR"), terminal
// key names ("right", " ") and the Key names themselves.
func ParseKey(code string) Key {
	switch strings.ToLower(code) {
	case "arrowright", "right", "forward":
		return KeyForward
	case "arrowleft", "left", "reverse":
		return KeyReverse
	case "space", " ", "brake":
		return KeyBrake
	case "keyr", "r", "reset":
		return KeyReset
	default:
		return KeyNone
	}
}

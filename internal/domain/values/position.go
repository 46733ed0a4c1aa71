package values

import "fmt"

// Position is the screen edge a bar is anchored to.
type Position string

const (
	PositionTop    Position = "top"
	PositionBottom Position = "bottom"
)

// ParsePosition validates a bar position string.
func ParsePosition(s string) (Position, error) {
	switch Position(s) {
	case PositionTop, PositionBottom:
		return Position(s), nil
	default:
		return "", fmt.Errorf("invalid bar position %q (valid: top, bottom)", s)
	}
}

func (p Position) String() string {
	return string(p)
}

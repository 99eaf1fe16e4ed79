package emit

import (
	"fmt"
	"strings"
)

// OverrideMode selects which ancestor methods a generated class overrides.
type OverrideMode int

const (
	// OverrideNone emits only the class's own method.
	OverrideNone OverrideMode = iota
	// OverrideAll overrides the method of every ancestor.
	OverrideAll
	// OverrideRandom overrides each ancestor's method with probability 1/2.
	OverrideRandom
)

func (m OverrideMode) String() string {
	switch m {
	case OverrideNone:
		return "none"
	case OverrideAll:
		return "all"
	case OverrideRandom:
		return "random"
	default:
		return fmt.Sprintf("OverrideMode(%d)", int(m))
	}
}

// ParseOverrideMode parses "none", "all" or "random".
func ParseOverrideMode(s string) (OverrideMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return OverrideNone, nil
	case "all":
		return OverrideAll, nil
	case "random":
		return OverrideRandom, nil
	default:
		return OverrideNone, fmt.Errorf("emit: unknown override mode: %s", s)
	}
}

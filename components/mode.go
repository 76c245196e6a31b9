package components

import (
	"fmt"
	"strings"
)

// Mode selects one of the playground's physical metaphors.
type Mode uint8

const (
	ModeEntropy Mode = iota
	ModeNeural
	ModePhase
	ModeOptimization

	modeCount
)

var modeNames = [modeCount]string{
	ModeEntropy:      "entropy",
	ModeNeural:       "neural",
	ModePhase:        "phase",
	ModeOptimization: "optimization",
}

// Modes returns every mode in toolbar order.
func Modes() []Mode {
	return []Mode{ModeEntropy, ModeNeural, ModePhase, ModeOptimization}
}

// Valid reports whether m names a known mode.
func (m Mode) Valid() bool {
	return m < modeCount
}

// String returns the lowercase mode tag.
func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
	return modeNames[m]
}

// ParseMode converts a mode tag into a Mode. Matching is case-insensitive.
func ParseMode(s string) (Mode, error) {
	tag := strings.ToLower(strings.TrimSpace(s))
	for i, name := range modeNames {
		if name == tag {
			return Mode(i), nil
		}
	}
	// "optimize" is the label used on the toolbar.
	if tag == "optimize" {
		return ModeOptimization, nil
	}
	return ModeEntropy, fmt.Errorf("unknown mode %q", s)
}

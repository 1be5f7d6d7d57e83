package onboarding

// Position names the single active step of the wizard.
type Position int

const (
	PositionNone Position = iota
	PositionPrompt
	PositionMode
	PositionSeed
	PositionKey
	PositionName
	PositionColor
	PositionEmoji
	PositionTerms
	PositionPresent
)

var positionNames = [...]string{
	PositionNone:    "none",
	PositionPrompt:  "prompt",
	PositionMode:    "mode",
	PositionSeed:    "seed",
	PositionKey:     "key",
	PositionName:    "name",
	PositionColor:   "color",
	PositionEmoji:   "emoji",
	PositionTerms:   "terms",
	PositionPresent: "present",
}

func (p Position) String() string {
	if p < 0 || int(p) >= len(positionNames) {
		return "unknown"
	}
	return positionNames[p]
}

// CreateStepIndex returns the 0-based index of p among the four create
// steps, or -1.
func CreateStepIndex(p Position) int {
	switch p {
	case PositionName:
		return 0
	case PositionColor:
		return 1
	case PositionEmoji:
		return 2
	case PositionTerms:
		return 3
	}
	return -1
}

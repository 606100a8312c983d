package models

import (
	"fmt"
	"strings"
)

// Mode identifies which task a submission file belongs to.
type Mode int

const (
	ModeClassification Mode = iota + 1
	ModeRanking
)

// Modes lists every task in report order.
var Modes = []Mode{ModeClassification, ModeRanking}

func (m Mode) String() string {
	switch m {
	case ModeClassification:
		return "classification"
	case ModeRanking:
		return "ranking"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a flag or config value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "classification":
		return ModeClassification, nil
	case "ranking":
		return ModeRanking, nil
	default:
		return 0, fmt.Errorf("invalid evaluation mode %q: must be classification or ranking", s)
	}
}

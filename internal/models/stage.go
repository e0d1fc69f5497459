package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/hireboard/internal/common"
)

// Stage is a pipeline state a candidate can occupy.
type Stage string

const (
	StageNew       Stage = "new"
	StageInterview Stage = "interview"
	StageOffer     Stage = "offer"
	StageHired     Stage = "hired"
)

var stages = []Stage{StageNew, StageInterview, StageOffer, StageHired}

// AllStages returns the stages in board column order.
func AllStages() []Stage {
	out := make([]Stage, len(stages))
	copy(out, stages)
	return out
}

// Valid reports whether s is one of the four pipeline stages.
func (s Stage) Valid() bool {
	for _, st := range stages {
		if s == st {
			return true
		}
	}
	return false
}

func (s Stage) String() string { return string(s) }

// Title is the column heading shown on the board.
func (s Stage) Title() string {
	switch s {
	case StageNew:
		return "New"
	case StageInterview:
		return "Interview"
	case StageOffer:
		return "Offer"
	case StageHired:
		return "Hired"
	default:
		return string(s)
	}
}

// ParseStage accepts a stage name in any letter case.
func ParseStage(s string) (Stage, error) {
	st := Stage(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidStage, s)
	}
	return st, nil
}

// CanTransition reports whether a candidate may move from one stage to
// another. Every stage is reachable from every other stage, including moving
// back out of hired; only unknown stages are refused.
func CanTransition(from, to Stage) bool {
	return from.Valid() && to.Valid()
}

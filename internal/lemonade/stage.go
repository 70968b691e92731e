// Package lemonade holds the lemonade-making state machine: four stages,
// the taps that move between them, and the prompt/image shown per stage.
package lemonade

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Stage is the current phase of the interaction.
type Stage int

const (
	StageSelect  Stage = iota // pick a lemon from the tree
	StageSqueeze              // squeeze the lemon
	StageDrink                // drink the lemonade
	StageRestart              // empty glass, start again
)

var stages = []Stage{StageSelect, StageSqueeze, StageDrink, StageRestart}

// Stages returns every stage in interaction order. The slice is a copy.
func Stages() []Stage {
	return append([]Stage(nil), stages...)
}

// ErrUnknownStage is returned when a stage tag does not name a stage.
var ErrUnknownStage = errors.New("unknown stage")

// String returns the persisted tag for the stage.
func (s Stage) String() string {
	switch s {
	case StageSelect:
		return "select"
	case StageSqueeze:
		return "squeeze"
	case StageDrink:
		return "drink"
	case StageRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the four stages.
func (s Stage) Valid() bool {
	return s >= StageSelect && s <= StageRestart
}

// ParseStage maps a persisted tag back to a Stage.
func ParseStage(tag string) (Stage, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "select":
		return StageSelect, nil
	case "squeeze":
		return StageSqueeze, nil
	case "drink":
		return StageDrink, nil
	case "restart":
		return StageRestart, nil
	}
	return StageSelect, errors.Wrapf(ErrUnknownStage, "%q", tag)
}

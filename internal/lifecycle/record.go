// Package lifecycle saves and restores the lemonade state across process
// suspension and relaunch.
package lifecycle

import (
	"github.com/cockroachdb/errors"

	"github.com/jask/lemonade/internal/lemonade"
)

// Record is the flat, persisted form of a lemonade.State.
type Record struct {
	Stage        string `json:"stage"`
	LemonSize    int    `json:"lemon_size"`
	SqueezeCount int    `json:"squeeze_count"`
}

// Encode flattens s into a Record.
func Encode(s lemonade.State) Record {
	return Record{Stage: s.Stage.String(), LemonSize: s.LemonSize, SqueezeCount: s.SqueezeCount}
}

// Decode turns a Record back into a State. Only the stage tag is checked;
// the counters are restored as stored.
func Decode(r Record) (lemonade.State, error) {
	stage, err := lemonade.ParseStage(r.Stage)
	if err != nil {
		return lemonade.State{}, errors.Wrap(err, "decode record")
	}
	return lemonade.State{Stage: stage, LemonSize: r.LemonSize, SqueezeCount: r.SqueezeCount}, nil
}

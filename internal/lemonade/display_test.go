package lemonade

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisplayForEachStage(t *testing.T) {
	tests := []struct {
		stage  Stage
		prompt string
		image  Image
		target Target
	}{
		{StageSelect, "Tap the lemon tree to select a lemon", ImageLemonTree, TargetTree},
		{StageSqueeze, "Tap the lemon to squeeze it", ImageLemonSqueeze, TargetLemon},
		{StageDrink, "Tap the glass to drink the lemonade", ImageLemonDrink, TargetGlass},
		{StageRestart, "Tap the empty glass to start again", ImageLemonRestart, TargetEmptyGlass},
	}
	for _, tt := range tests {
		t.Run(tt.stage.String(), func(t *testing.T) {
			d := DisplayFor(State{Stage: tt.stage, LemonSize: -1, SqueezeCount: -1})
			require.Equal(t, tt.prompt, d.Prompt)
			require.Equal(t, tt.image, d.Image)
			require.Equal(t, tt.target, d.Target)
			require.NotEmpty(t, d.Description)
		})
	}
}

func TestDisplayImageIgnoresCounters(t *testing.T) {
	for size := -1; size <= 4; size++ {
		require.Equal(t, ImageLemonSqueeze, DisplayFor(State{Stage: StageSqueeze, LemonSize: size, SqueezeCount: -1}).Image)
		for count := -1; count <= 4; count++ {
			require.Equal(t, ImageLemonDrink, DisplayFor(State{Stage: StageDrink, LemonSize: size, SqueezeCount: count}).Image)
		}
	}
}

// The target shown for a stage always submits an event that advances it.
func TestDisplayTargetAdvancesStage(t *testing.T) {
	for _, s := range Stages() {
		d := DisplayFor(State{Stage: s, LemonSize: 3, SqueezeCount: 3})
		ev, ok := EventFor(s, d.Target)
		require.True(t, ok)
		require.Contains(t, Expected(s), ev)
	}
}

func TestEventForUnknownTarget(t *testing.T) {
	_, ok := EventFor(StageSelect, Target("bucket"))
	require.False(t, ok)
}

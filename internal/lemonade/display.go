package lemonade

// Image names a picture the renderer draws.
type Image string

const (
	ImageLemonTree    Image = "lemon_tree"
	ImageLemonSqueeze Image = "lemon_squeeze"
	ImageLemonDrink   Image = "lemon_drink"
	ImageLemonRestart Image = "lemon_restart"
)

// Target is the on-screen element that advances the current stage.
type Target string

const (
	TargetTree       Target = "tree"
	TargetLemon      Target = "lemon"
	TargetGlass      Target = "glass"
	TargetEmptyGlass Target = "empty glass"
)

// Display is what the renderer shows for one state.
type Display struct {
	Prompt      string
	Image       Image
	Description string
	Target      Target
}

// DisplayFor selects the prompt and stage image for s. The lemon tree is
// drawn above it in every stage and is not part of the result.
func DisplayFor(s State) Display {
	switch s.Stage {
	case StageSqueeze:
		return Display{
			Prompt:      "Tap the lemon to squeeze it",
			Image:       lemonImage(s.LemonSize),
			Description: "Lemon",
			Target:      TargetLemon,
		}
	case StageDrink:
		return Display{
			Prompt:      "Tap the glass to drink the lemonade",
			Image:       glassImage(s.LemonSize, s.SqueezeCount),
			Description: "Glass of Lemonade",
			Target:      TargetGlass,
		}
	case StageRestart:
		return Display{
			Prompt:      "Tap the empty glass to start again",
			Image:       ImageLemonRestart,
			Description: "Empty Glass",
			Target:      TargetEmptyGlass,
		}
	default:
		return Display{
			Prompt:      "Tap the lemon tree to select a lemon",
			Image:       ImageLemonTree,
			Description: "Lemon Tree",
			Target:      TargetTree,
		}
	}
}

// EventFor maps a tap on target to the event it submits in stage s.
func EventFor(s Stage, target Target) (Event, bool) {
	switch target {
	case TargetTree:
		return TreeEvent(s), true
	case TargetLemon:
		return EventTapLemon, true
	case TargetGlass:
		return EventTapGlass, true
	case TargetEmptyGlass:
		return EventTapEmptyGlass, true
	}
	return 0, false
}

// lemonImage and glassImage branch on the counters, but there is one lemon
// picture and one glass picture, so every branch yields the same image.
func lemonImage(size int) Image {
	switch size {
	case 2, 3, 4:
		return ImageLemonSqueeze
	default:
		return ImageLemonSqueeze
	}
}

func glassImage(size, count int) Image {
	switch {
	case size == count && size >= minDraw && size < maxDraw:
		return ImageLemonDrink
	default:
		return ImageLemonDrink
	}
}

package lemonade

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/cockroachdb/errors"
)

// Event is a tap submitted to the machine.
type Event int

const (
	EventSelectTree    Event = iota + 1 // tree tap while selecting
	EventTapLemon                       // lemon tap
	EventTapGlass                       // full glass tap
	EventTapTree                        // tree tap after drinking
	EventTapEmptyGlass                  // empty glass tap
)

var events = []Event{EventSelectTree, EventTapLemon, EventTapGlass, EventTapTree, EventTapEmptyGlass}

// Events returns every event. The slice is a copy.
func Events() []Event {
	return append([]Event(nil), events...)
}

// ErrUnknownEvent is returned by ParseEvent.
var ErrUnknownEvent = errors.New("unknown event")

func (e Event) String() string {
	switch e {
	case EventSelectTree:
		return "select-tree"
	case EventTapLemon:
		return "tap-lemon"
	case EventTapGlass:
		return "tap-glass"
	case EventTapTree:
		return "tap-tree"
	case EventTapEmptyGlass:
		return "tap-empty-glass"
	default:
		return "unknown"
	}
}

// TreeEvent maps a tap on the lemon tree to the event it stands for in
// stage s. The tree is visible in every stage; picking a lemon and
// starting over are separate rows in the transition table.
func TreeEvent(s Stage) Event {
	if s == StageSelect {
		return EventSelectTree
	}
	return EventTapTree
}

// ParseEvent resolves an event name. Underscores and spaces are accepted in
// place of dashes. On failure the error suggests the closest known name.
func ParseEvent(name string) (Event, error) {
	norm := strings.ToLower(strings.TrimSpace(name))
	norm = strings.NewReplacer("_", "-", " ", "-").Replace(norm)
	for _, ev := range events {
		if ev.String() == norm {
			return ev, nil
		}
	}
	if s := suggestEvent(norm); s != "" {
		return 0, errors.Wrapf(ErrUnknownEvent, "%q (did you mean %q?)", name, s)
	}
	return 0, errors.Wrapf(ErrUnknownEvent, "%q", name)
}

// suggestEvent returns the closest event name within a small edit distance.
func suggestEvent(name string) string {
	if name == "" {
		return ""
	}
	best, bestDist := "", len(name)/2+2
	for _, ev := range events {
		d := levenshtein.ComputeDistance(name, ev.String())
		if d < bestDist {
			best, bestDist = ev.String(), d
		}
	}
	return best
}

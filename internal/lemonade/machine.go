package lemonade

// Sentinel marks a lemon size or squeeze count that has no meaning in the
// current stage.
const Sentinel = -1

// Bounds of the random draws, low inclusive, high exclusive.
const (
	minDraw = 2
	maxDraw = 5
)

// State is the complete interaction state.
type State struct {
	Stage        Stage
	LemonSize    int
	SqueezeCount int
}

// Initial returns the state the app starts in.
func Initial() State {
	return State{Stage: StageSelect, LemonSize: Sentinel, SqueezeCount: Sentinel}
}

type edge struct {
	from Stage
	on   Event
}

type transition struct {
	to   Stage
	draw bool // draw fresh lemon size and squeeze count; otherwise reset to Sentinel
}

// transitions is the only place stage progression is defined. Pairs not
// listed are ignored.
var transitions = map[edge]transition{
	{StageSelect, EventSelectTree}:     {to: StageSqueeze},
	{StageSqueeze, EventTapLemon}:      {to: StageDrink, draw: true},
	{StageDrink, EventTapGlass}:        {to: StageRestart},
	{StageRestart, EventTapTree}:       {to: StageSelect},
	{StageRestart, EventTapEmptyGlass}: {to: StageSelect},
}

// Machine owns one InteractionState. It is not safe for concurrent use;
// the host UI submits taps one at a time.
type Machine struct {
	rng   RandomSource
	state State
}

// New returns a machine in the initial state. A nil rng uses a randomly
// seeded default source.
func New(rng RandomSource) *Machine {
	if rng == nil {
		rng = NewRandomSource(0)
	}
	return &Machine{rng: rng, state: Initial()}
}

// Submit applies ev to the current stage. Taps that do not belong to the
// current stage leave the state untouched. It reports whether the stage
// changed.
func (m *Machine) Submit(ev Event) bool {
	t, ok := transitions[edge{m.state.Stage, ev}]
	if !ok {
		return false
	}
	next := State{Stage: t.to, LemonSize: Sentinel, SqueezeCount: Sentinel}
	if t.draw {
		next.LemonSize = m.rng.NextInt(minDraw, maxDraw)
		next.SqueezeCount = m.rng.NextInt(minDraw, maxDraw)
	}
	m.state = next
	return true
}

// Accepts reports whether ev would change the current stage.
func (m *Machine) Accepts(ev Event) bool {
	_, ok := transitions[edge{m.state.Stage, ev}]
	return ok
}

// Snapshot returns a copy of the current state.
func (m *Machine) Snapshot() State {
	return m.state
}

// Restore replaces the current state wholesale. Values are not checked;
// callers pass states produced by Snapshot.
func (m *Machine) Restore(s State) {
	m.state = s
}

// Expected returns the events that advance stage s, in table order.
func Expected(s Stage) []Event {
	var out []Event
	for _, ev := range events {
		if _, ok := transitions[edge{s, ev}]; ok {
			out = append(out, ev)
		}
	}
	return out
}

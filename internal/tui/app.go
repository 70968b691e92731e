// Package tui renders the lemonade machine as a terminal app and turns key
// presses and mouse clicks into taps.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"github.com/jask/lemonade/internal/config"
	"github.com/jask/lemonade/internal/lemonade"
	"github.com/jask/lemonade/internal/lifecycle"
)

const defaultWidth = 60

// App is the bubbletea model. It holds the only reference to the machine
// while the program runs.
type App struct {
	ctx     context.Context
	machine *lemonade.Machine
	store   lifecycle.Store
	log     zerolog.Logger
	keys    keyMap
	help    help.Model
	mouse   bool
	width   int
	status  string
	lastErr error
}

// Deps are the collaborators the app is wired with.
type Deps struct {
	Machine *lemonade.Machine
	Store   lifecycle.Store
	Log     zerolog.Logger
}

type savedMsg struct {
	err  error
	then afterSave
}

type afterSave int

const (
	afterNothing afterSave = iota
	afterQuit
	afterSuspend
)

func New(ctx context.Context, deps Deps, ui config.UIConfig) *App {
	if deps.Machine == nil {
		deps.Machine = lemonade.New(lemonade.NewRandomSource(ui.Seed))
	}
	if deps.Store == nil {
		deps.Store = lifecycle.NewMemoryStore()
	}
	return &App{
		ctx:     ctx,
		machine: deps.Machine,
		store:   deps.Store,
		log:     deps.Log,
		keys:    newKeyMap(),
		help:    help.New(),
		mouse:   ui.Mouse && ui.AltScreen,
		width:   defaultWidth,
	}
}

// ProgramOptions returns the bubbletea options for ui. Click rows are
// screen rows, so mouse input is only enabled together with the alternate
// screen.
func ProgramOptions(ctx context.Context, ui config.UIConfig) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if ui.AltScreen {
		opts = append(opts, tea.WithAltScreen())
		if ui.Mouse {
			opts = append(opts, tea.WithMouseCellMotion())
		}
	}
	return opts
}

// Run runs p, which must be driving a, and saves the machine once p stops.
// The save also covers stops the model never sees: SIGTERM, SIGINT and a
// cancelled context.
func (a *App) Run(p *tea.Program) error {
	_, runErr := p.Run()
	if err := lifecycle.Suspend(context.WithoutCancel(a.ctx), a.store, a.machine); err != nil {
		a.log.Error().Err(err).Msg("save snapshot on exit")
		if runErr == nil {
			return err
		}
	}
	if runErr == nil || errors.Is(runErr, tea.ErrInterrupted) {
		return nil
	}
	return errors.Wrap(runErr, "run tui")
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.help.Width = m.Width
	case tea.KeyMsg:
		return a.handleKey(m)
	case tea.MouseMsg:
		if a.mouse {
			a.handleMouse(m)
		}
	case savedMsg:
		return a.handleSaved(m)
	case tea.ResumeMsg:
		a.status = "resumed"
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	stage := a.machine.Snapshot().Stage
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, a.saveCmd(afterQuit)
	case key.Matches(m, a.keys.Suspend):
		return a, a.saveCmd(afterSuspend)
	case key.Matches(m, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	case key.Matches(m, a.keys.Tap):
		a.tapTarget(lemonade.DisplayFor(a.machine.Snapshot()).Target)
	case key.Matches(m, a.keys.Tree):
		a.submit(lemonade.TreeEvent(stage))
	case key.Matches(m, a.keys.Lemon):
		a.submit(lemonade.EventTapLemon)
	case key.Matches(m, a.keys.Glass):
		a.submit(lemonade.EventTapGlass)
	case key.Matches(m, a.keys.EmptyGlass):
		a.submit(lemonade.EventTapEmptyGlass)
	}
	return a, nil
}

func (a *App) handleMouse(m tea.MouseMsg) {
	if m.Action != tea.MouseActionPress || m.Button != tea.MouseButtonLeft {
		return
	}
	l := a.layout()
	switch {
	case l.tree.contains(m.Y):
		a.tapTarget(lemonade.TargetTree)
	case l.image.contains(m.Y):
		a.tapTarget(lemonade.DisplayFor(a.machine.Snapshot()).Target)
	}
}

func (a *App) handleSaved(m savedMsg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		a.lastErr = m.err
		a.log.Error().Err(m.err).Msg("save snapshot")
	} else {
		a.lastErr = nil
	}
	switch m.then {
	case afterQuit:
		return a, tea.Quit
	case afterSuspend:
		return a, tea.Suspend
	}
	return a, nil
}

func (a *App) tapTarget(t lemonade.Target) {
	ev, ok := lemonade.EventFor(a.machine.Snapshot().Stage, t)
	if !ok {
		return
	}
	a.submit(ev)
}

func (a *App) submit(ev lemonade.Event) {
	from := a.machine.Snapshot().Stage
	if !a.machine.Submit(ev) {
		a.log.Debug().Str("stage", from.String()).Str("event", ev.String()).Msg("tap ignored")
		return
	}
	st := a.machine.Snapshot()
	a.status = ""
	a.log.Debug().
		Str("from", from.String()).
		Str("event", ev.String()).
		Str("to", st.Stage.String()).
		Int("lemon_size", st.LemonSize).
		Int("squeeze_count", st.SqueezeCount).
		Msg("transition")
}

// saveCmd snapshots the machine now and writes it from a command, so the
// write never races a later tap.
func (a *App) saveCmd(then afterSave) tea.Cmd {
	rec := lifecycle.Encode(a.machine.Snapshot())
	ctx, store := a.ctx, a.store
	return func() tea.Msg {
		return savedMsg{err: store.Save(ctx, rec), then: then}
	}
}

// span is a half-open range of screen rows.
type span struct{ top, bottom int }

func (s span) contains(y int) bool { return y >= s.top && y < s.bottom }

type screen struct {
	lines []string
	tree  span
	image span
}

func (a *App) layout() screen {
	st := a.machine.Snapshot()
	d := lemonade.DisplayFor(st)
	var s screen

	add := func(lines ...string) {
		for _, l := range lines {
			s.lines = append(s.lines, lipgloss.PlaceHorizontal(a.width, lipgloss.Center, l))
		}
	}

	add(titleStyle.Render("Lemonade"), "")

	s.tree.top = len(s.lines)
	add(picture(lemonade.ImageLemonTree)...)
	s.tree.bottom = len(s.lines)
	add(captionStyle.Render("Lemon Tree"), "")

	add(promptStyle.Render(d.Prompt), statusStyle.Render(a.keyHint(st.Stage)), "")

	if st.Stage != lemonade.StageSelect {
		s.image.top = len(s.lines)
		add(picture(d.Image)...)
		s.image.bottom = len(s.lines)
		add(captionStyle.Render(d.Description), "")
	}

	if a.lastErr != nil {
		add(errorStyle.Render("could not save: " + a.lastErr.Error()))
	} else if a.status != "" {
		add(statusStyle.Render(a.status))
	}
	add(a.help.View(a.keys))
	return s
}

// keyHint names the keys that advance stage.
func (a *App) keyHint(stage lemonade.Stage) string {
	var keys []string
	for _, ev := range lemonade.Expected(stage) {
		if b, ok := a.eventBinding(ev); ok {
			keys = append(keys, b.Help().Key)
		}
	}
	return "press " + strings.Join(keys, " or ")
}

func (a *App) eventBinding(ev lemonade.Event) (key.Binding, bool) {
	switch ev {
	case lemonade.EventSelectTree, lemonade.EventTapTree:
		return a.keys.Tree, true
	case lemonade.EventTapLemon:
		return a.keys.Lemon, true
	case lemonade.EventTapGlass:
		return a.keys.Glass, true
	case lemonade.EventTapEmptyGlass:
		return a.keys.EmptyGlass, true
	}
	return key.Binding{}, false
}

func (a *App) View() string {
	return strings.Join(a.layout().lines, "\n")
}

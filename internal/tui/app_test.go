package tui

import (
	"context"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jask/lemonade/internal/config"
	"github.com/jask/lemonade/internal/lemonade"
	"github.com/jask/lemonade/internal/lifecycle"
)

type brokenStore struct{}

func (brokenStore) Save(context.Context, lifecycle.Record) error {
	return errors.New("read-only disk")
}
func (brokenStore) Load(context.Context) (lifecycle.Record, bool, error) {
	return lifecycle.Record{}, false, nil
}
func (brokenStore) Clear(context.Context) error { return nil }

func newTestApp(t *testing.T, store lifecycle.Store) *App {
	t.Helper()
	m := lemonade.New(lemonade.RandomFunc(func(low, _ int) int { return low + 1 }))
	return New(context.Background(), Deps{Machine: m, Store: store, Log: zerolog.Nop()}, config.UIConfig{Mouse: true, AltScreen: true})
}

func press(a *App, k string) tea.Cmd {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+z":
		msg = tea.KeyMsg{Type: tea.KeyCtrlZ}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	_, cmd := a.Update(msg)
	return cmd
}

func click(a *App, y int) {
	a.Update(tea.MouseMsg{X: 10, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func TestKeysWalkFullCycle(t *testing.T) {
	a := newTestApp(t, nil)

	press(a, "t")
	require.Equal(t, lemonade.StageSqueeze, a.machine.Snapshot().Stage)
	press(a, "l")
	require.Equal(t, lemonade.State{Stage: lemonade.StageDrink, LemonSize: 3, SqueezeCount: 3}, a.machine.Snapshot())
	press(a, "g")
	require.Equal(t, lemonade.StageRestart, a.machine.Snapshot().Stage)
	press(a, "e")
	require.Equal(t, lemonade.Initial(), a.machine.Snapshot())

	press(a, "t")
	press(a, "l")
	press(a, "g")
	press(a, "t")
	require.Equal(t, lemonade.Initial(), a.machine.Snapshot())
}

func TestWrongKeyIsIgnored(t *testing.T) {
	a := newTestApp(t, nil)
	for _, k := range []string{"l", "g", "e", "x"} {
		press(a, k)
		require.Equal(t, lemonade.Initial(), a.machine.Snapshot(), k)
	}

	press(a, "t")
	press(a, "t")
	require.Equal(t, lemonade.StageSqueeze, a.machine.Snapshot().Stage)
}

func TestEnterTapsCurrentTarget(t *testing.T) {
	a := newTestApp(t, nil)
	want := []lemonade.Stage{lemonade.StageSqueeze, lemonade.StageDrink, lemonade.StageRestart, lemonade.StageSelect}
	for _, stage := range want {
		press(a, "enter")
		require.Equal(t, stage, a.machine.Snapshot().Stage)
	}
}

func TestViewShowsPromptForStage(t *testing.T) {
	a := newTestApp(t, nil)
	require.Contains(t, a.View(), "Tap the lemon tree to select a lemon")
	require.NotContains(t, a.View(), "Glass of Lemonade")

	press(a, "t")
	require.Contains(t, a.View(), "Tap the lemon to squeeze it")
	press(a, "l")
	require.Contains(t, a.View(), "Tap the glass to drink the lemonade")
	require.Contains(t, a.View(), "Glass of Lemonade")
	press(a, "g")
	require.Contains(t, a.View(), "Tap the empty glass to start again")
}

func TestMouseClicks(t *testing.T) {
	a := newTestApp(t, nil)

	l := a.layout()
	click(a, l.tree.top)
	require.Equal(t, lemonade.StageSqueeze, a.machine.Snapshot().Stage)

	// clicking the tree again does nothing while squeezing
	click(a, a.layout().tree.top+1)
	require.Equal(t, lemonade.StageSqueeze, a.machine.Snapshot().Stage)

	l = a.layout()
	require.Greater(t, l.image.bottom, l.image.top)
	click(a, l.image.top)
	require.Equal(t, lemonade.StageDrink, a.machine.Snapshot().Stage)

	// rows outside the pictures are inert
	click(a, 0)
	require.Equal(t, lemonade.StageDrink, a.machine.Snapshot().Stage)
}

func TestMouseDisabled(t *testing.T) {
	m := lemonade.New(nil)
	a := New(context.Background(), Deps{Machine: m, Log: zerolog.Nop()}, config.UIConfig{Mouse: false})
	click(a, a.layout().tree.top)
	require.Equal(t, lemonade.Initial(), m.Snapshot())
}

func TestMouseNeedsAltScreen(t *testing.T) {
	m := lemonade.New(nil)
	ui := config.UIConfig{Mouse: true, AltScreen: false}
	a := New(context.Background(), Deps{Machine: m, Log: zerolog.Nop()}, ui)
	click(a, a.layout().tree.top)
	require.Equal(t, lemonade.Initial(), m.Snapshot())

	require.Len(t, ProgramOptions(context.Background(), ui), 1)
	ui.AltScreen = true
	require.Len(t, ProgramOptions(context.Background(), ui), 3)
	ui.Mouse = false
	require.Len(t, ProgramOptions(context.Background(), ui), 2)
}

// The program can stop without the model seeing a key: SIGTERM arrives as
// QuitMsg and SIGINT as InterruptMsg. Either way the state is saved.
func TestRunSavesOnOutsideStop(t *testing.T) {
	for _, stop := range []tea.Msg{tea.QuitMsg{}, tea.InterruptMsg{}} {
		store := lifecycle.NewMemoryStore()
		a := newTestApp(t, store)
		p := tea.NewProgram(a, tea.WithInput(nil), tea.WithOutput(io.Discard), tea.WithoutSignalHandler())
		go func() {
			p.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
			p.Send(stop)
		}()

		require.NoError(t, a.Run(p))
		rec, found, err := store.Load(context.Background())
		require.NoError(t, err)
		require.True(t, found, "%T", stop)
		require.Equal(t, "squeeze", rec.Stage, "%T", stop)
	}
}

func TestRunReportsSaveFailure(t *testing.T) {
	a := newTestApp(t, brokenStore{})
	p := tea.NewProgram(a, tea.WithInput(nil), tea.WithOutput(io.Discard), tea.WithoutSignalHandler())
	go p.Send(tea.QuitMsg{})

	err := a.Run(p)
	require.Error(t, err)
	require.Contains(t, err.Error(), "read-only disk")
}

func TestQuitSavesThenQuits(t *testing.T) {
	store := lifecycle.NewMemoryStore()
	a := newTestApp(t, store)
	press(a, "t")
	press(a, "l")
	want := a.machine.Snapshot()

	cmd := press(a, "q")
	require.NotNil(t, cmd)
	msg := cmd()
	saved, ok := msg.(savedMsg)
	require.True(t, ok)
	require.NoError(t, saved.err)

	rec, found, err := store.Load(context.Background())
	require.NoError(t, err)
	require.True(t, found)
	got, err := lifecycle.Decode(rec)
	require.NoError(t, err)
	require.Equal(t, want, got)

	_, next := a.Update(msg)
	require.NotNil(t, next)
	require.Equal(t, tea.Quit(), next())
}

func TestSaveUsesStateAtKeyPress(t *testing.T) {
	store := lifecycle.NewMemoryStore()
	a := newTestApp(t, store)

	cmd := press(a, "ctrl+z")
	press(a, "t")
	cmd()

	rec, _, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "select", rec.Stage)
}

func TestSuspendSaves(t *testing.T) {
	store := lifecycle.NewMemoryStore()
	a := newTestApp(t, store)
	press(a, "t")

	msg := press(a, "ctrl+z")()
	_, found, _ := store.Load(context.Background())
	require.True(t, found)

	_, next := a.Update(msg)
	require.NotNil(t, next)

	a.Update(tea.ResumeMsg{})
	require.Contains(t, a.View(), "resumed")
}

func TestSaveFailureIsShownAndStillQuits(t *testing.T) {
	a := newTestApp(t, brokenStore{})

	msg := press(a, "ctrl+c")()
	_, next := a.Update(msg)
	require.Contains(t, a.View(), "read-only disk")
	require.Equal(t, tea.Quit(), next())
}

func TestHelpToggle(t *testing.T) {
	a := newTestApp(t, nil)
	require.NotContains(t, a.View(), "empty glass")
	press(a, "?")
	require.Contains(t, a.View(), "empty glass")
}

func TestWindowResize(t *testing.T) {
	a := newTestApp(t, nil)
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	require.Equal(t, 100, a.width)
	for _, line := range a.layout().lines {
		require.LessOrEqual(t, lipgloss.Width(line), 100)
	}
}

func TestKeyHintFollowsStage(t *testing.T) {
	a := newTestApp(t, nil)
	require.Equal(t, "press t", a.keyHint(lemonade.StageSelect))
	require.Equal(t, "press l", a.keyHint(lemonade.StageSqueeze))
	require.Equal(t, "press g", a.keyHint(lemonade.StageDrink))
	require.Equal(t, "press t or e", a.keyHint(lemonade.StageRestart))
	require.Contains(t, a.View(), "press t")
}

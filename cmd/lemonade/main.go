package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/jask/lemonade/internal/config"
	"github.com/jask/lemonade/internal/lemonade"
	"github.com/jask/lemonade/internal/lifecycle"
	"github.com/jask/lemonade/internal/logger"
	"github.com/jask/lemonade/internal/service"
	"github.com/jask/lemonade/internal/tui"
)

var exampleUsage = strings.TrimSpace(`
  lemonade
  lemonade tap select-tree tap-lemon
  lemonade state --json
  lemonade state --all
  lemonade --backend file --slot porch reset
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// env is what every subcommand gets after config, logging and the store
// are set up.
type env struct {
	cfg   config.Config
	log   zerolog.Logger
	store lifecycle.Store
	close func()
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:           "lemonade",
		Short:         "Make lemonade: pick a lemon, squeeze it, drink, start again",
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(cfgPath, cmd.Flags())
			if err != nil {
				return err
			}
			defer e.close()
			return runTUI(cmd.Context(), e)
		},
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "config file (default $LEMONADE_CONFIG or ~/.config/lemonade/config.toml)")
	pf.String("backend", "", "snapshot store: sqlite, file or memory")
	pf.String("slot", "", "snapshot slot name (sqlite backend)")
	pf.String("log-level", "", "debug, info, warn, error or disabled")
	pf.Uint64("seed", 0, "random seed for lemon draws (0 = random)")

	root.AddCommand(
		newStateCmd(&cfgPath),
		newTapCmd(&cfgPath),
		newResetCmd(&cfgPath),
		newConfigCmd(&cfgPath),
	)
	return root
}

func setup(cfgPath string, flags *pflag.FlagSet) (*env, error) {
	cfg, err := config.Load(cfgPath, flags)
	if err != nil {
		return nil, err
	}
	log, logCloser, err := logger.Init(logger.Config{Output: cfg.Log.Output, Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return nil, err
	}
	store, closeStore, err := service.OpenStore(cfg.Store)
	if err != nil {
		_ = logCloser.Close()
		return nil, err
	}
	log.Debug().Str("backend", cfg.Store.Backend).Str("slot", cfg.Store.Slot).Msg("store ready")
	return &env{
		cfg:   cfg,
		log:   log,
		store: store,
		close: func() {
			if err := closeStore(); err != nil {
				log.Warn().Err(err).Msg("close store")
			}
			_ = logCloser.Close()
		},
	}, nil
}

func (e *env) game() *service.GameService {
	return &service.GameService{Store: e.store, Random: lemonade.NewRandomSource(e.cfg.UI.Seed), Log: e.log}
}

func runTUI(ctx context.Context, e *env) error {
	m, err := e.game().Load(ctx)
	if err != nil {
		return err
	}
	app := tui.New(ctx, tui.Deps{Machine: m, Store: e.store, Log: e.log}, e.cfg.UI)
	return app.Run(tea.NewProgram(app, tui.ProgramOptions(ctx, e.cfg.UI)...))
}

type stateView struct {
	Stage        string `json:"stage"`
	LemonSize    int    `json:"lemon_size"`
	SqueezeCount int    `json:"squeeze_count"`
	Prompt       string `json:"prompt"`
	Saved        bool   `json:"saved"`
}

func printState(w io.Writer, st lemonade.State, saved, asJSON bool) error {
	v := stateView{
		Stage:        st.Stage.String(),
		LemonSize:    st.LemonSize,
		SqueezeCount: st.SqueezeCount,
		Prompt:       lemonade.DisplayFor(st).Prompt,
		Saved:        saved,
	}
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintf(w, "stage: %s\nlemon size: %d\nsqueeze count: %d\n%s\n", v.Stage, v.LemonSize, v.SqueezeCount, v.Prompt)
	return err
}

type slotView struct {
	Slot    string    `json:"slot"`
	SavedAt time.Time `json:"saved_at"`
	stateView
}

func printSlots(w io.Writer, slots []lifecycle.Slot, asJSON bool) error {
	views := make([]slotView, 0, len(slots))
	for _, sl := range slots {
		st, err := lifecycle.Decode(sl.Record)
		if err != nil {
			return errors.Wrapf(err, "slot %s", sl.Name)
		}
		views = append(views, slotView{
			Slot:    sl.Name,
			SavedAt: sl.SavedAt,
			stateView: stateView{
				Stage:        st.Stage.String(),
				LemonSize:    st.LemonSize,
				SqueezeCount: st.SqueezeCount,
				Prompt:       lemonade.DisplayFor(st).Prompt,
				Saved:        true,
			},
		})
	}
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	}
	if len(views) == 0 {
		_, err := fmt.Fprintln(w, "no saved slots")
		return err
	}
	for _, v := range views {
		if _, err := fmt.Fprintf(w, "%s: %s (lemon size %d, squeeze count %d) saved %s\n",
			v.Slot, v.Stage, v.LemonSize, v.SqueezeCount, v.SavedAt.Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return nil
}

func newStateCmd(cfgPath *string) *cobra.Command {
	var asJSON, all bool
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Print the saved state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(*cfgPath, cmd.Flags())
			if err != nil {
				return err
			}
			defer e.close()
			if all {
				lister, ok := e.store.(lifecycle.SlotLister)
				if !ok {
					return errors.Newf("--all needs the sqlite backend, not %q", e.cfg.Store.Backend)
				}
				slots, err := lister.Slots(cmd.Context())
				if err != nil {
					return err
				}
				return printSlots(cmd.OutOrStdout(), slots, asJSON)
			}
			rec, ok, err := e.store.Load(cmd.Context())
			if err != nil {
				return err
			}
			st := lemonade.Initial()
			if ok {
				if st, err = lifecycle.Decode(rec); err != nil {
					return err
				}
			}
			return printState(cmd.OutOrStdout(), st, ok, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	cmd.Flags().BoolVar(&all, "all", false, "list every saved slot (sqlite backend)")
	return cmd
}

func newTapCmd(cfgPath *string) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "tap <event>...",
		Short: "Submit taps without the TUI and save the result",
		Long: "Submit taps without the TUI and save the result.\n\nEvents: " +
			strings.Join(eventNames(), ", ") +
			"\nTaps that do not fit the current stage are ignored.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			events := make([]lemonade.Event, 0, len(args))
			for _, a := range args {
				ev, err := lemonade.ParseEvent(a)
				if err != nil {
					return err
				}
				events = append(events, ev)
			}
			e, err := setup(*cfgPath, cmd.Flags())
			if err != nil {
				return err
			}
			defer e.close()
			st, err := e.game().Tap(cmd.Context(), events...)
			if err != nil {
				return err
			}
			return printState(cmd.OutOrStdout(), st, true, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func newResetCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the saved state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(*cfgPath, cmd.Flags())
			if err != nil {
				return err
			}
			defer e.close()
			if err := (&service.MaintenanceService{Store: e.store}).Reset(cmd.Context()); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "saved state cleared")
			return err
		},
	}
}

func newConfigCmd(cfgPath *string) *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration, or write it with --write",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*cfgPath, cmd.Flags())
			if err != nil {
				return err
			}
			if write {
				if err := config.Save(*cfgPath, cfg); err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", config.Path(*cfgPath))
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		},
	}
	cmd.Flags().BoolVar(&write, "write", false, "write the effective config to the config file")
	return cmd
}

func eventNames() []string {
	events := lemonade.Events()
	out := make([]string, len(events))
	for i, ev := range events {
		out[i] = ev.String()
	}
	return out
}

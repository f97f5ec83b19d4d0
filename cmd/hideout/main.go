package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gopxl/beep/v2"
	"github.com/mattn/go-isatty"
	"github.com/vinser/hideout/internal/app"
	"github.com/vinser/hideout/internal/flags"
	"github.com/vinser/hideout/internal/logger"
	"github.com/vinser/hideout/internal/model/report"
	"github.com/vinser/hideout/internal/scenario"
	"github.com/vinser/hideout/internal/sim"
	"github.com/vinser/hideout/internal/sound"
	"github.com/vinser/hideout/internal/state"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fl, err := flags.Parse("hideout", args)
	if err != nil {
		return err
	}

	st := state.Load()
	if fl.Reset {
		st = state.New()
	}
	if fl.IsSet("mute") {
		st.Mute = fl.Mute
	}
	if fl.Scenario != "" {
		st.Scenario = fl.Scenario
	}
	if fl.Algorithm != "" {
		st.Algorithm = fl.Algorithm
	}

	closeLog, err := initLogger(fl)
	if err != nil {
		return err
	}
	defer closeLog()

	sc, err := loadScenario(st.Scenario)
	if err != nil && fl.Scenario == "" {
		// A remembered file may have moved since the last session.
		logger.Log.WithError(err).Warn("Falling back to the embedded scenario.")
		st.Scenario = ""
		sc, err = scenario.Default()
	}
	if err != nil {
		return err
	}
	if fl.Algorithm == "" && st.Algorithm != "" {
		fl.Algorithm = st.Algorithm
	}
	if err := fl.Apply(sc); err != nil {
		return err
	}

	if fl.Headless {
		return runHeadless(sc, os.Stdout)
	}

	sm := openSound(st.Mute, sound.NewManager)
	defer sm.Close()

	p := tea.NewProgram(app.New(st, sc, sm), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// openSound starts the audio backend even when muted so the viewer can
// unmute later. It returns nil when no backend is available.
func openSound(muted bool, open func(beep.SampleRate) (*sound.Manager, error)) *sound.Manager {
	sm, err := open(sound.CommonSampleRate)
	if err != nil {
		logger.Log.WithError(err).Warn("Sound disabled.")
		return nil
	}
	if muted {
		sm.Mute()
	}
	return sm
}

func loadScenario(path string) (*scenario.Scenario, error) {
	if path == "" {
		return scenario.Default()
	}
	return scenario.Load(path)
}

// initLogger keeps the terminal clean while the viewer owns it.
func initLogger(fl *flags.Flags) (func(), error) {
	path := fl.LogFile
	if path == "" {
		path = os.Getenv("LOG_FILE")
	}
	switch {
	case path != "":
		f, err := logger.OpenFile(path)
		if err != nil {
			return nil, err
		}
		logger.Init(f)
		return func() { f.Close() }, nil
	case fl.Headless:
		logger.Init(os.Stderr)
	default:
		logger.Init(io.Discard)
	}
	return func() {}, nil
}

func runHeadless(sc *scenario.Scenario, w io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r, err := sim.New(sc)
	if err != nil {
		return err
	}
	rep, err := r.Run(ctx, sim.DefaultStep)
	if err != nil {
		return err
	}

	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		md, err := report.Markdown(report.Data{
			Name:      r.Name,
			Algorithm: r.Engine.Config().Algorithm.String(),
			RunID:     r.ID,
			Elapsed:   r.Clock(),
			Report:    rep,
		})
		if err == nil {
			fmt.Fprint(w, report.Glamour(md, 80))
			return nil
		}
	}
	fmt.Fprintln(w, strings.Join(rep.Lines(), "\n"))
	return nil
}

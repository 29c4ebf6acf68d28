package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"padseq/config"
	"padseq/debug"
	"padseq/midi"
	"padseq/osc"
	"padseq/sequencer"
	"padseq/theme"
	"padseq/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "padseq: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "config file (default ~/.config/padseq/config.yaml)")
	monitor := flag.Bool("monitor", false, "show the terminal monitor")
	writeConfig := flag.Bool("write-config", false, "write the effective config and exit")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn, error")
	controller := flag.String("controller", "", "controller name used in OSC addresses")
	listPorts := flag.Bool("list-ports", false, "list MIDI ports and exit")
	flag.Parse()

	if *listPorts {
		defer gomidi.CloseDriver()
		return printPorts()
	}

	path := *configPath
	if path == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	if *monitor {
		cfg.Monitor.Enabled = true
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *controller != "" {
		cfg.Controller = *controller
	}

	if *writeConfig {
		if err := cfg.Save(path); err != nil {
			return err
		}
		fmt.Println("wrote", path)
		return nil
	}

	// The monitor owns the terminal, so logs go to a file while it runs.
	logFile := cfg.Log.File
	if cfg.Monitor.Enabled && logFile == "" {
		logFile = debug.DefaultPath()
	}
	if err := debug.Setup(cfg.Log.Level, logFile); err != nil {
		return err
	}
	defer debug.Close()

	initial, err := cfg.InitialContext()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inbox := sequencer.NewInbox()
	sink, sources, cleanup, err := openTransport(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	sched := sequencer.NewScheduler(initial, inbox, sink)
	var snapshots <-chan sequencer.Snapshot
	if cfg.Monitor.Enabled {
		snapshots = sched.Monitor()
	}

	// Sources stop with the scheduler, whether it ends by signal or by
	// quitting the monitor.
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	waitSources := startSources(runCtx, inbox, sources)

	debug.Info("main", "running",
		"transport", cfg.Transport, "bpm", initial.BPM, "mode", initial.Mode)

	if !cfg.Monitor.Enabled {
		err = sched.Run(runCtx)
		cancel()
		waitSources()
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	done := make(chan error, 1)
	go func() { done <- sched.Run(runCtx) }()

	palette, perr := theme.LoadOrDefault(cfg.Monitor.Palette)
	if perr != nil {
		debug.Warn("main", "palette not loaded, using plasma", "err", perr)
	}
	p := tea.NewProgram(tui.NewModel(snapshots, inbox, theme.New(palette)),
		tea.WithAltScreen(), tea.WithContext(ctx))
	_, uiErr := p.Run()

	cancel()
	err = <-done
	waitSources()
	if uiErr != nil && !errors.Is(uiErr, tea.ErrProgramKilled) {
		return uiErr
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// startSources feeds every source into inbox until ctx is done. The
// returned func waits for them all to return.
func startSources(ctx context.Context, inbox *sequencer.Inbox, sources []sequencer.Source) func() {
	var wg sync.WaitGroup
	for _, src := range sources {
		wg.Add(1)
		go func(src sequencer.Source) {
			defer wg.Done()
			if err := inbox.Listen(ctx, src); err != nil && !errors.Is(err, context.Canceled) {
				debug.Error("input", "source stopped", "err", err)
			}
		}(src)
	}
	return wg.Wait
}

// openTransport builds the output sink and input sources for the
// configured transport. cleanup releases ports and clients.
func openTransport(cfg *config.Config) (sequencer.Sink, []sequencer.Source, func(), error) {
	switch cfg.Transport {
	case config.TransportOSC:
		return openOSC(cfg)
	case config.TransportMIDI:
		return openMIDI(cfg)
	}
	return nil, nil, nil, errors.Errorf("unknown transport %q", cfg.Transport)
}

func openOSC(cfg *config.Config) (sequencer.Sink, []sequencer.Source, func(), error) {
	bridge, err := osc.NewClient(cfg.OSC.Target)
	if err != nil {
		return nil, nil, nil, err
	}
	var sampler osc.Sender
	if cfg.OSC.SamplerTarget != "" {
		c, err := osc.NewClient(cfg.OSC.SamplerTarget)
		if err != nil {
			return nil, nil, nil, err
		}
		sampler = c
	}

	sink := osc.NewSink(osc.SinkConfig{
		Controller:    cfg.Controller,
		SamplerPrefix: cfg.OSC.SamplerPrefix,
		ClockProtocol: cfg.OSC.ClockProtocol,
		SelectCC:      cfg.Lights.Select,
		BeatCC:        cfg.Lights.Beat,
	}, bridge, sampler)
	if err := sink.Handshake(); err != nil {
		debug.Warn("osc", "handshake failed", "target", cfg.OSC.Target, "err", err)
	}

	src := osc.NewSource(cfg.OSC.Listen, cfg.Controls)
	if cfg.MIDI.ClockOut == "" {
		return sink, []sequencer.Source{src}, func() {}, nil
	}

	// MIDI clock to hardware alongside the OSC output
	clock, err := midi.OpenSender(cfg.MIDI.ClockOut)
	if err != nil {
		return nil, nil, nil, err
	}
	clockSink := midi.NewSink(midi.SinkConfig{}, nil, nil, clock)
	cleanup := func() {
		if err := clockSink.Stop(); err != nil {
			debug.Warn("midi", "stop clock", "err", err)
		}
		gomidi.CloseDriver()
	}
	return sequencer.MultiSink{sink, clockSink}, []sequencer.Source{src}, cleanup, nil
}

func openMIDI(cfg *config.Config) (sequencer.Sink, []sequencer.Source, func(), error) {
	in, err := midi.FindIn(cfg.MIDI.ControllerIn)
	if err != nil {
		return nil, nil, nil, err
	}
	out, err := midi.FindOut(cfg.MIDI.ControllerOut)
	if err != nil {
		return nil, nil, nil, err
	}
	ctrl, err := midi.OpenController(in, out, midi.ControllerConfig{
		Channel:  uint8(cfg.MIDI.LightChannel - 1),
		Controls: cfg.Controls,
		SelectCC: uint8(cfg.Lights.Select),
		BeatCC:   uint8(cfg.Lights.Beat),
	})
	if err != nil {
		return nil, nil, nil, err
	}

	sampler, err := midi.OpenSender(cfg.MIDI.SamplerOut)
	if err != nil {
		return nil, nil, nil, err
	}
	clock, err := midi.OpenSender(cfg.MIDI.ClockOut)
	if err != nil {
		return nil, nil, nil, err
	}

	sink := midi.NewSink(midi.SinkConfig{
		Channel: uint8(cfg.MIDI.Channel - 1),
		Kit:     midi.GetKit(cfg.MIDI.Kit),
	}, ctrl, sampler, clock)
	if err := ctrl.ClearLights(); err != nil {
		debug.Warn("midi", "clear lights", "err", err)
	}

	cleanup := func() {
		if err := sink.Stop(); err != nil {
			debug.Warn("midi", "stop clock", "err", err)
		}
		if err := ctrl.Close(); err != nil {
			debug.Warn("midi", "clear lights", "err", err)
		}
		gomidi.CloseDriver()
	}
	return sink, []sequencer.Source{ctrl}, cleanup, nil
}

func printPorts() error {
	ins, outs, err := midi.ListPorts()
	if err != nil {
		return err
	}
	fmt.Println("inputs:")
	for _, in := range ins {
		fmt.Printf("  %s\n", in.String())
	}
	fmt.Println("outputs:")
	for _, out := range outs {
		fmt.Printf("  %s\n", out.String())
	}
	return nil
}

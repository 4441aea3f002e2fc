// Package beacon holds the signaling commands: sos, flash, torch, panel
// and config.
package beacon

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/morselight/cmd/beacon/config"
	"github.com/gigurra/morselight/cmd/beacon/session"
	"github.com/gigurra/morselight/cmd/common"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const sosText = "SOS"

type SignalParams struct {
	Text       []string `pos:"true" optional:"true" help:"Text to flash. If none provided, reads from stdin."`
	WPM        int      `short:"w" name:"wpm" help:"Words per minute (1-60). Defaults to the config value." default:"20"`
	Torch      bool     `name:"torch" help:"Flash the device torch." default:"true"`
	Screen     bool     `name:"screen" help:"Flash the terminal." default:"true"`
	Beep       bool     `name:"beep" help:"Play a tone while the signal is on." default:"true"`
	Haptic     bool     `name:"haptic" help:"Tick at the start of each mark." default:"false"`
	Loop       bool     `short:"l" name:"loop" help:"Repeat until interrupted." default:"false"`
	Notify     bool     `name:"notify" help:"Show desktop notifications when signaling starts and stops." default:"false"`
	NoWakeLock bool     `name:"no-wakelock" help:"Do not keep the display awake." default:"false"`
	LogLevel   string   `name:"log-level" help:"Log level: debug, info, warn, error." default:"warn"`
}

func SOSCmd() *cobra.Command {
	return boa.CmdT[SignalParams]{
		Use:         "sos",
		Short:       "Signal SOS",
		Long:        "Signal SOS on every enabled output. Use --loop to repeat until Ctrl+C.",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *SignalParams, cmd *cobra.Command, args []string) {
			if len(params.Text) > 0 {
				common.Fail("sos", fmt.Errorf("sos takes no text, use flash"))
			}
			if err := runSignal(params, sosText, cmd.Flags().Changed); err != nil {
				common.Fail("sos", err)
			}
		},
	}.ToCobra()
}

func FlashCmd() *cobra.Command {
	return boa.CmdT[SignalParams]{
		Use:         "flash",
		Short:       "Signal custom text in Morse",
		Long:        "Signal text in Morse on every enabled output. Characters without a Morse code are skipped.",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *SignalParams, cmd *cobra.Command, args []string) {
			text, err := inputText(params.Text, os.Stdin)
			if err == nil {
				err = runSignal(params, text, cmd.Flags().Changed)
			}
			if err != nil {
				common.Fail("flash", err)
			}
		},
	}.ToCobra()
}

// inputText joins args, or reads stdin when there are none, and collapses
// whitespace runs into single spaces.
func inputText(args []string, stdin io.Reader) (string, error) {
	text := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		text = string(data)
	}
	return normalizeText(text), nil
}

func normalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// settings are the effective values for one run, config overridden by
// explicitly set flags.
type settings struct {
	WPM      int
	Options  session.Options
	Notify   bool
	WakeLock bool
}

func resolve(params *SignalParams, cfg *config.Config, changed func(string) bool) settings {
	s := settings{
		WPM: cfg.WPM,
		Options: session.Options{
			Torch:  cfg.Outputs.Torch,
			Screen: cfg.Outputs.Screen,
			Beep:   cfg.Outputs.Beep,
			Haptic: cfg.Outputs.Haptic,
			Loop:   cfg.Loop,
		},
		Notify:   cfg.Notify,
		WakeLock: cfg.WakeLock,
	}
	if changed("wpm") {
		s.WPM = params.WPM
	}
	if changed("torch") {
		s.Options.Torch = params.Torch
	}
	if changed("screen") {
		s.Options.Screen = params.Screen
	}
	if changed("beep") {
		s.Options.Beep = params.Beep
	}
	if changed("haptic") {
		s.Options.Haptic = params.Haptic
	}
	if changed("loop") {
		s.Options.Loop = params.Loop
	}
	if changed("notify") {
		s.Notify = params.Notify
	}
	if changed("no-wakelock") {
		s.WakeLock = !params.NoWakeLock
	}
	return s
}

func runSignal(params *SignalParams, text string, changed func(string) bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	s := resolve(params, cfg, changed)

	// The flasher owns the terminal, so console output waits until it is
	// closed.
	flashing := s.Options.Screen && term.IsTerminal(int(os.Stdout.Fd()))
	var console io.Writer = os.Stderr
	if flashing {
		console = nil
	}
	closeLog := common.SetupLogging(common.ParseLevel(params.LogLevel), console)
	defer closeLog()

	devices, cleanup := buildDevices(cfg, s, wiring{flashTerminal: flashing, console: console})
	ctrl := session.New(devices)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	res, err := signalText(ctrl, text, s, interrupt)
	cleanup()
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s after %d cycle(s) in %s\n", text, res.Outcome, res.Cycles, res.Elapsed.Round(time.Millisecond))
	return nil
}

// signalText runs one session to its end. An interrupt stops it at the
// next step boundary.
func signalText(ctrl *session.Controller, text string, s settings, interrupt <-chan os.Signal) (session.Result, error) {
	if err := ctrl.Start(text, s.WPM, s.Options); err != nil {
		return session.Result{}, err
	}
	select {
	case sig := <-interrupt:
		slog.Info("stopping", "signal", sig)
		ctrl.Stop()
	case <-ctrl.Done():
	}
	return ctrl.Wait(), nil
}

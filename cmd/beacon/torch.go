package beacon

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/morselight/cmd/beacon/config"
	"github.com/gigurra/morselight/cmd/beacon/device"
	"github.com/gigurra/morselight/cmd/common"
	"github.com/spf13/cobra"
)

type TorchParams struct {
	Duration string `short:"d" name:"duration" help:"How long to keep the torch on." default:"300ms"`
	Backend  string `short:"b" name:"backend" help:"Torch backend: auto, sysfs, termux or none. Defaults to the config value." optional:"true"`
	LEDRoot  string `name:"led-root" help:"Directory holding sysfs LED class devices." optional:"true"`
}

func TorchCmd() *cobra.Command {
	return boa.CmdT[TorchParams]{
		Use:         "torch",
		Short:       "Probe the torch and flash it once",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *TorchParams, cmd *cobra.Command, args []string) {
			if err := runTorchCmd(params); err != nil {
				common.Fail("torch", err)
			}
		},
	}.ToCobra()
}

func runTorchCmd(params *TorchParams) error {
	d, err := time.ParseDuration(params.Duration)
	if err != nil {
		return fmt.Errorf("--duration: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	backend, ledRoot := cfg.Torch.Backend, cfg.Torch.LEDRoot
	if params.Backend != "" {
		backend = params.Backend
	}
	if params.LEDRoot != "" {
		ledRoot = params.LEDRoot
	}

	torch, err := device.DetectTorch(backend, ledRoot)
	if err != nil {
		return err
	}
	return testTorch(torch, d, os.Stdout, time.Sleep)
}

// testTorch reports the torch capability and, when available, switches it
// on for d.
func testTorch(torch device.Torch, d time.Duration, out io.Writer, sleep func(time.Duration)) error {
	capability := torch.Probe()
	fmt.Fprintf(out, "Torch capability: %s\n", capability)
	if sysfs, ok := torch.(*device.SysfsTorch); ok && sysfs.Dir != "" {
		fmt.Fprintf(out, "LED: %s\n", sysfs.Dir)
	}
	if capability != device.Available {
		return fmt.Errorf("%w: torch %s", device.ErrUnavailable, capability)
	}

	if err := torch.SetActive(true); err != nil {
		return err
	}
	sleep(d)
	if err := torch.SetActive(false); err != nil {
		return err
	}
	fmt.Fprintf(out, "Flashed for %s\n", d)
	return nil
}

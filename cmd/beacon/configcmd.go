package beacon

import (
	"fmt"
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/morselight/cmd/beacon/config"
	"github.com/gigurra/morselight/cmd/common"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

type ConfigInitParams struct {
	Force bool `short:"f" name:"force" help:"Overwrite an existing config file." default:"false"`
}

func ConfigCmd() *cobra.Command {
	return boa.CmdT[boa.NoParams]{
		Use:         "config",
		Short:       "Show the effective configuration",
		Long:        "Show the configuration loaded from ~/.morselight/config.json, with defaults filled in.",
		ParamEnrich: common.DefaultParamEnricher(),
		SubCmds: []*cobra.Command{
			configInitCmd(),
		},
		RunFunc: func(params *boa.NoParams, cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				common.Fail("config", err)
			}
			fmt.Printf("Config file: %s\n", config.ConfigPath())
			printConfig(os.Stdout, cfg)
		},
	}.ToCobra()
}

func configInitCmd() *cobra.Command {
	return boa.CmdT[ConfigInitParams]{
		Use:         "init",
		Short:       "Write a config file with default values",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *ConfigInitParams, cmd *cobra.Command, args []string) {
			path := config.ConfigPath()
			if err := initConfig(path, params.Force); err != nil {
				common.Fail("config init", err)
			}
			fmt.Printf("Wrote %s\n", path)
		},
	}.ToCobra()
}

func initConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	return config.SaveTo(path, config.DefaultConfig())
}

func printConfig(w io.Writer, cfg *config.Config) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Key", "Value"})
	t.AppendRows([]table.Row{
		{"wpm", cfg.WPM},
		{"loop", cfg.Loop},
		{"outputs.torch", cfg.Outputs.Torch},
		{"outputs.screen", cfg.Outputs.Screen},
		{"outputs.beep", cfg.Outputs.Beep},
		{"outputs.haptic", cfg.Outputs.Haptic},
		{"torch.backend", cfg.Torch.Backend},
		{"torch.led_root", cfg.Torch.LEDRoot},
		{"tone.frequency_hz", cfg.Tone.FrequencyHz},
		{"tone.volume", cfg.Tone.Volume},
		{"wake_lock", cfg.WakeLock},
		{"notify", cfg.Notify},
	})
	t.Render()
}

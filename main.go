package main

import (
	"runtime/debug"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/morselight/cmd/beacon"
	"github.com/gigurra/morselight/cmd/morse"
	"github.com/spf13/cobra"
)

func main() {
	boa.CmdT[boa.NoParams]{
		Use:     "morselight",
		Short:   "Signal Morse code with the torch, the screen and sound",
		Version: appVersion(),
		SubCmds: []*cobra.Command{
			beacon.SOSCmd(),
			beacon.FlashCmd(),
			beacon.TorchCmd(),
			beacon.PanelCmd(),
			beacon.ConfigCmd(),
			morse.Cmd(),
		},
	}.Run()
}

func appVersion() string {
	bi, hasBuildInfo := debug.ReadBuildInfo()
	if !hasBuildInfo {
		return "unknown-(no build info)"
	}

	versionString := bi.Main.Version
	if versionString == "" {
		versionString = "unknown-(no version)"
	}

	return versionString
}

package morse

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/atotto/clipboard"
	"github.com/gigurra/morselight/cmd/beacon/device"
	"github.com/gigurra/morselight/cmd/beacon/player"
	"github.com/gigurra/morselight/cmd/common"
	"github.com/gigurra/morselight/cmd/morse/code"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var clipboardWriteAll = clipboard.WriteAll

type Params struct {
	Text     []string `pos:"true" optional:"true" help:"Text to encode/decode. If none provided, reads from stdin."`
	Decode   bool     `short:"d" help:"Decode morse code to text." default:"false"`
	Play     bool     `short:"p" help:"Play the encoded text as a tone (requires CGO on Linux)." default:"false"`
	Schedule bool     `short:"s" help:"Print the on/off schedule instead of the code." default:"false"`
	Copy     bool     `short:"c" help:"Copy the output to the clipboard." default:"false"`
	WPM      int      `short:"w" help:"Words per minute for playback and schedules." default:"20"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "morse",
		Short:       "Encode/decode Morse code",
		Long:        "Convert text to Morse code or decode Morse code back to text. Use -s for the timing schedule and -p to hear it.",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := Run(params, os.Stdin, os.Stdout); err != nil {
				common.Fail("morse", err)
			}
		},
	}.ToCobra()
}

func Run(params *Params, stdin io.Reader, stdout io.Writer) error {
	if params.Decode && (params.Play || params.Schedule) {
		return fmt.Errorf("--decode cannot be combined with --play or --schedule")
	}
	if params.Play || params.Schedule {
		if _, err := code.UnitFor(params.WPM); err != nil {
			return fmt.Errorf("--wpm %d: %w", params.WPM, err)
		}
	}

	var lines []string
	if len(params.Text) > 0 {
		lines = []string{strings.Join(params.Text, " ")}
	} else {
		scanner := bufio.NewScanner(stdin)
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return err
		}
	}

	var copied []string
	for _, line := range lines {
		out, err := process(params, line, stdout)
		if err != nil {
			return err
		}
		copied = append(copied, out)
	}

	if params.Copy {
		if err := clipboardWriteAll(strings.Join(copied, "\n")); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
	}
	return nil
}

// process handles one line and returns what it printed.
func process(params *Params, line string, stdout io.Writer) (string, error) {
	if params.Decode {
		decoded := code.Decode(line)
		fmt.Fprintln(stdout, decoded)
		return decoded, nil
	}

	if params.Schedule {
		sched, err := code.ScheduleText(line, params.WPM)
		if err != nil {
			return "", err
		}
		var sb strings.Builder
		w := io.MultiWriter(stdout, &sb)
		fmt.Fprintln(w, code.Pattern(code.Encode(line)))
		renderSchedule(w, sched)
		return sb.String(), nil
	}

	encoded := code.Text(line)
	fmt.Fprintln(stdout, encoded)
	if params.Play {
		if err := play(line, params.WPM); err != nil {
			return "", err
		}
	}
	return encoded, nil
}

func renderSchedule(w io.Writer, sched code.Schedule) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"#", "State", "Duration"})
	for i, step := range sched {
		state := "off"
		if step.Active {
			state = "ON"
		}
		t.AppendRow(table.Row{i, state, step.Duration})
	}
	t.AppendFooter(table.Row{"", "on", sched.ActiveTime()})
	t.AppendFooter(table.Row{"", "off", sched.InactiveTime()})
	t.AppendFooter(table.Row{sched.Marks(), "total", sched.Total()})
	t.Render()
}

func play(text string, wpm int) error {
	if !device.AudioAvailable {
		fmt.Fprintln(os.Stderr, "Audio beeps not available (built without CGO). Using terminal bell.")
	}
	sched, err := code.ScheduleText(text, wpm)
	if err != nil {
		return err
	}

	beeper := device.NewToneBeeper(device.DefaultFrequency, device.DefaultVolume)
	defer beeper.Close()

	var never player.Flag
	player.New().Play(sched, []device.Output{device.Named("beep", beeper)}, &never)
	return nil
}

package beacon

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gigurra/morselight/cmd/beacon/config"
	"github.com/gigurra/morselight/cmd/beacon/device"
	"github.com/gigurra/morselight/cmd/beacon/player"
	"github.com/gigurra/morselight/cmd/beacon/session"
	"github.com/gigurra/morselight/cmd/common"
	"github.com/gigurra/morselight/cmd/morse/code"
	"github.com/spf13/cobra"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1)
	onStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))  // Green
	offStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")) // Gray
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	logStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
)

const (
	panelLogLines = 8
	historySize   = 200
)

type PanelParams struct {
	LogLevel string `name:"log-level" help:"Minimum level of log records shown in the panel log." default:"warn"`
}

func PanelCmd() *cobra.Command {
	return boa.CmdT[PanelParams]{
		Use:         "panel",
		Short:       "Interactive signaling panel",
		Long:        "Full-screen control panel: type text, adjust the rate, toggle outputs and start or stop signaling.",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *PanelParams, cmd *cobra.Command, args []string) {
			if err := runPanel(params); err != nil {
				common.Fail("panel", err)
			}
		},
	}.ToCobra()
}

type tickMsg time.Time

// flashMsg repaints after the screen output toggled.
type flashMsg struct{}

type stepMsg struct {
	index int
	total int
}

type doneMsg session.Result

type configMsg struct {
	cfg *config.Config
}

type model struct {
	ctrl    *session.Controller
	history *device.History
	flash   *atomic.Bool
	send    func(tea.Msg)

	input     textinput.Model
	wpm       int
	opts      session.Options
	color     string
	sessionID string
	step      int
	steps     int
	running   bool
	status    string
	failed    bool
	width     int
	height    int
}

func newModel(ctrl *session.Controller, history *device.History, flash *atomic.Bool, cfg *config.Config, send func(tea.Msg)) model {
	ti := textinput.New()
	ti.Placeholder = "text to flash"
	ti.CharLimit = 200
	ti.Width = 40

	m := model{
		ctrl:    ctrl,
		history: history,
		flash:   flash,
		send:    send,
		input:   ti,
		color:   device.DefaultFlashColor,
		status:  "Ready.",
	}
	return m.applyConfig(cfg)
}

func (m model) applyConfig(cfg *config.Config) model {
	s := resolve(&SignalParams{}, cfg, func(string) bool { return false })
	m.wpm = s.WPM
	m.opts = s.Options
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), tea.EnterAltScreen)
}

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m, tickCmd()

	case flashMsg:
		return m, nil

	case stepMsg:
		m.step = msg.index + 1
		m.steps = msg.total
		return m, nil

	case doneMsg:
		if msg.ID != m.sessionID {
			return m, nil
		}
		m.running = false
		m.step = 0
		m.setStatus(fmt.Sprintf("Done: %s after %d cycle(s).", msg.Outcome, msg.Cycles), false)
		return m, nil

	case configMsg:
		m = m.applyConfig(msg.cfg)
		m.setStatus("Config reloaded.", false)
		return m, nil

	case tea.KeyMsg:
		if m.input.Focused() {
			switch msg.String() {
			case "enter":
				m.input.Blur()
				return m.start(m.input.Value()), nil
			case "esc":
				m.input.Blur()
				return m, nil
			case "ctrl+c":
				return m.quit()
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m.quit()
		case "i", "/":
			cmd := m.input.Focus()
			return m, cmd
		case "+", "=", "up":
			m.wpm = clampRate(m.wpm + 1)
		case "-", "down":
			m.wpm = clampRate(m.wpm - 1)
		case "t":
			m.opts.Torch = !m.opts.Torch
		case "c":
			m.opts.Screen = !m.opts.Screen
		case "b":
			m.opts.Beep = !m.opts.Beep
		case "h":
			m.opts.Haptic = !m.opts.Haptic
		case "l":
			m.opts.Loop = !m.opts.Loop
		case "s":
			return m.start(sosText), nil
		case "enter":
			return m.start(m.input.Value()), nil
		case "x", "esc":
			m.ctrl.Stop()
		}
		return m, nil
	}
	return m, nil
}

func clampRate(wpm int) int {
	return max(code.MinWPM, min(code.MaxWPM, wpm))
}

func (m model) start(text string) model {
	text = normalizeText(text)
	if err := m.ctrl.Start(text, m.wpm, m.opts); err != nil {
		if errors.Is(err, session.ErrAlreadyRunning) {
			m.setStatus("Already signaling, stop first (x).", true)
		} else {
			m.setStatus(err.Error(), true)
		}
		return m
	}
	cur := m.ctrl.Current()
	m.sessionID = cur.ID
	m.running = true
	m.step = 0
	m.steps = len(cur.Schedule)
	m.setStatus(fmt.Sprintf("Signaling %q.", text), false)

	send := m.send
	go func() {
		send(doneMsg(cur.Result()))
	}()
	return m
}

func (m model) quit() (tea.Model, tea.Cmd) {
	m.ctrl.Stop()
	return m, tea.Quit
}

func (m *model) setStatus(s string, failed bool) {
	m.status = s
	m.failed = failed
	if failed {
		m.history.Append(s)
	}
}

func (m model) View() string {
	if m.flash.Load() && m.running && m.opts.Screen && m.width > 0 {
		return device.FlashBlock(m.width, m.height, true, m.color)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("morselight"))
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(code.Pattern(code.Encode(m.input.Value()))))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Rate: %s WPM\n", activeStyle.Render(fmt.Sprint(m.wpm)))
	b.WriteString(strings.Join([]string{
		toggle("t", "torch", m.opts.Torch),
		toggle("c", "screen", m.opts.Screen),
		toggle("b", "beep", m.opts.Beep),
		toggle("h", "haptic", m.opts.Haptic),
		toggle("l", "loop", m.opts.Loop),
	}, "  "))
	b.WriteString("\n\n")

	if m.running {
		fmt.Fprintf(&b, "%s %s\n", activeStyle.Render("SIGNALING"), progressBar(m.step, m.steps, 30))
	} else {
		b.WriteString(offStyle.Render("idle"))
		b.WriteString("\n")
	}
	if m.failed {
		b.WriteString(errorStyle.Render(m.status))
	} else {
		b.WriteString(m.status)
	}
	b.WriteString("\n\n")

	lines := m.history.Lines()
	if len(lines) > panelLogLines {
		lines = lines[:panelLogLines]
	}
	for _, line := range lines {
		b.WriteString(logStyle.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("i: edit text  enter: flash  s: SOS  x: stop  +/-: rate  t/c/b/h/l: toggles  q: quit"))
	return b.String()
}

func toggle(key, label string, on bool) string {
	if on {
		return onStyle.Render(fmt.Sprintf("[%s] %s on", key, label))
	}
	return offStyle.Render(fmt.Sprintf("[%s] %s off", key, label))
}

func progressBar(step, total, width int) string {
	if total <= 0 {
		return ""
	}
	filled := step * width / total
	return fmt.Sprintf("[%s%s] %d/%d", strings.Repeat("#", filled), strings.Repeat(".", width-filled), step, total)
}

func runPanel(params *PanelParams) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	history := device.NewHistory(historySize)
	closeLog := common.SetupLogging(common.ParseLevel(params.LogLevel), nil, history)
	defer closeLog()

	var prog atomic.Pointer[tea.Program]
	send := func(msg tea.Msg) {
		if p := prog.Load(); p != nil {
			p.Send(msg)
		}
	}

	flash := &atomic.Bool{}
	screen := device.FlasherFunc(func(on bool) error {
		flash.Store(on)
		send(flashMsg{})
		return nil
	})

	s := resolve(&SignalParams{}, cfg, func(string) bool { return false })
	s.Options.Beep = true
	devices, cleanup := buildDevices(cfg, s, wiring{screen: screen, log: history})
	defer cleanup()

	var ctrl *session.Controller
	ctrl = session.New(devices, session.WithPlayerOptions(
		player.WithStepObserver(func(i int, _ code.Step) {
			if cur := ctrl.Current(); cur != nil {
				send(stepMsg{index: i, total: len(cur.Schedule)})
			}
		}),
	))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	err = config.Watch(ctx, config.ConfigPath(), func(c *config.Config) {
		send(configMsg{cfg: c})
	})
	if err != nil {
		history.Append(fmt.Sprintf("Not watching config: %v", err))
	}

	p := tea.NewProgram(newModel(ctrl, history, flash, cfg, send))
	prog.Store(p)
	_, err = p.Run()

	ctrl.Stop()
	if ctrl.Running() {
		ctrl.Wait()
	}
	return err
}

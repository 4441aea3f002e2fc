package device

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// DefaultFlashColor is the background used for an active flash.
const DefaultFlashColor = "15"

// TerminalFlasher turns the whole terminal into a light source by painting
// it with a solid background.
type TerminalFlasher struct {
	Out   io.Writer
	Color string

	mu   sync.Mutex
	fd   int
	open bool
}

func NewTerminalFlasher(out *os.File) *TerminalFlasher {
	return &TerminalFlasher{Out: out, Color: DefaultFlashColor, fd: int(out.Fd())}
}

// Open switches to the alternate screen and hides the cursor.
func (f *TerminalFlasher) Open() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.open {
		return
	}
	fmt.Fprint(f.Out, "\033[?1049h\033[?25l\033[2J")
	f.open = true
}

// Close restores the cursor and the original screen.
func (f *TerminalFlasher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.open {
		return nil
	}
	f.open = false
	_, err := fmt.Fprint(f.Out, "\033[0m\033[2J\033[?25h\033[?1049l")
	return err
}

func (f *TerminalFlasher) SetActive(on bool) error {
	width, height, err := term.GetSize(f.fd)
	if err != nil {
		width, height = 80, 24
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	_, err = fmt.Fprint(f.Out, "\033[H"+FlashBlock(width, height, on, f.Color))
	return err
}

// FlashBlock renders width x height cells, filled with color when on and
// blank otherwise.
func FlashBlock(width, height int, on bool, color string) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	style := lipgloss.NewStyle()
	if on {
		if color == "" {
			color = DefaultFlashColor
		}
		style = style.Background(lipgloss.Color(color))
	}
	line := style.Render(strings.Repeat(" ", width))
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

package device

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// History keeps the most recent log lines, newest first. It is also an
// io.Writer so a slog handler can write into it.
type History struct {
	mu    sync.Mutex
	max   int
	lines []string
	now   func() time.Time
}

func NewHistory(max int) *History {
	if max <= 0 {
		max = 100
	}
	return &History{max: max, now: time.Now}
}

// Append records a message prefixed with the local time.
func (h *History) Append(message string) {
	h.push(fmt.Sprintf("[%s] %s", h.now().Format("15:04:05"), message))
}

func (h *History) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if line != "" {
			h.push(line)
		}
	}
	return len(p), nil
}

func (h *History) push(line string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lines = append([]string{line}, h.lines...)
	if len(h.lines) > h.max {
		h.lines = h.lines[:h.max]
	}
}

// Lines returns a copy of the stored lines, newest first.
func (h *History) Lines() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.lines))
	copy(out, h.lines)
	return out
}

// PrintLogger writes timestamped messages to a stream, one per line.
type PrintLogger struct {
	Out io.Writer
}

func (p PrintLogger) Append(message string) {
	fmt.Fprintf(p.Out, "[%s] %s\n", time.Now().Format("15:04:05"), message)
}

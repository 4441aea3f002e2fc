package device

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/GiGurra/cmder"
)

// DefaultLEDRoot is where Linux exposes LED class devices.
const DefaultLEDRoot = "/sys/class/leds"

// SysfsTorch drives an LED class device such as a phone's camera flash.
type SysfsTorch struct {
	Dir string
	max string
}

// FindSysfsTorch returns the first LED under root whose name mentions torch
// or flash. The returned torch has an empty Dir when none is found.
func FindSysfsTorch(root string) *SysfsTorch {
	for _, pattern := range []string{"*torch*", "*flash*"} {
		matches, _ := filepath.Glob(filepath.Join(root, pattern))
		for _, m := range matches {
			if _, err := os.Stat(filepath.Join(m, "brightness")); err == nil {
				return &SysfsTorch{Dir: m}
			}
		}
	}
	return &SysfsTorch{}
}

func (t *SysfsTorch) Probe() Capability {
	if t.Dir == "" {
		return Unsupported
	}
	data, err := os.ReadFile(filepath.Join(t.Dir, "max_brightness"))
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return Unsupported
		case os.IsPermission(err):
			return Denied
		default:
			return Unavailable
		}
	}
	max := strings.TrimSpace(string(data))
	if n, err := strconv.Atoi(max); err != nil || n <= 0 {
		return Unavailable
	}
	if err := writable(filepath.Join(t.Dir, "brightness")); err != nil {
		if os.IsPermission(err) {
			return Denied
		}
		return Unavailable
	}
	t.max = max
	return Available
}

func (t *SysfsTorch) SetActive(on bool) error {
	if t.Dir == "" {
		return ErrUnavailable
	}
	value := "0"
	if on {
		value = t.max
		if value == "" {
			value = "1"
		}
	}
	return os.WriteFile(filepath.Join(t.Dir, "brightness"), []byte(value), 0644)
}

// TermuxTorch switches an Android torch through the termux-api package.
type TermuxTorch struct {
	Timeout time.Duration
}

func (t *TermuxTorch) Probe() Capability {
	if _, err := exec.LookPath("termux-torch"); err != nil {
		return Unsupported
	}
	return Available
}

func (t *TermuxTorch) SetActive(on bool) error {
	state := "off"
	if on {
		state = "on"
	}
	timeout := t.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	res := cmder.New("termux-torch", state).
		WithAttemptTimeout(timeout).
		Run(context.Background())
	if res.Err != nil {
		return fmt.Errorf("termux-torch %s: %w", state, res.Err)
	}
	return nil
}

// NoTorch is used when the torch is disabled or nothing was found.
type NoTorch struct{}

func (NoTorch) Probe() Capability {
	return Unsupported
}

func (NoTorch) SetActive(bool) error {
	return ErrUnavailable
}

// DetectTorch picks a torch backend: "sysfs", "termux", "none" or "auto".
// Auto prefers an available sysfs LED, then termux.
func DetectTorch(backend, ledRoot string) (Torch, error) {
	if ledRoot == "" {
		ledRoot = DefaultLEDRoot
	}
	switch backend {
	case "sysfs":
		return FindSysfsTorch(ledRoot), nil
	case "termux":
		return &TermuxTorch{}, nil
	case "none":
		return NoTorch{}, nil
	case "", "auto":
		if t := FindSysfsTorch(ledRoot); t.Dir != "" {
			return t, nil
		}
		if _, err := exec.LookPath("termux-torch"); err == nil {
			return &TermuxTorch{}, nil
		}
		return NoTorch{}, nil
	default:
		return nil, fmt.Errorf("unknown torch backend %q", backend)
	}
}

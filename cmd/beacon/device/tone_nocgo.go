//go:build !((linux && cgo) || windows || darwin)

package device

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// AudioAvailable reports whether this build can produce a real tone.
// Audio requires CGO on Linux.
const AudioAvailable = false

// ToneBeeper falls back to the terminal bell: one ring per activation.
type ToneBeeper struct {
	Out io.Writer

	mu sync.Mutex
	on bool
}

func NewToneBeeper(frequency, volume float64) *ToneBeeper {
	return &ToneBeeper{Out: os.Stdout}
}

// Probe always succeeds, the bell needs no device.
func (b *ToneBeeper) Probe() Capability {
	return Available
}

func (b *ToneBeeper) SetActive(on bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if on && !b.on {
		if _, err := fmt.Fprint(b.Out, "\a"); err != nil {
			return err
		}
	}
	b.on = on
	return nil
}

func (b *ToneBeeper) Close() error {
	return nil
}

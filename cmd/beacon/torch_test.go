package beacon

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gigurra/morselight/cmd/beacon/device"
)

type fakeTorch struct {
	capability device.Capability
	calls      []bool
}

func (f *fakeTorch) Probe() device.Capability {
	return f.capability
}

func (f *fakeTorch) SetActive(on bool) error {
	f.calls = append(f.calls, on)
	return nil
}

func TestTestTorch_Available(t *testing.T) {
	torch := &fakeTorch{capability: device.Available}
	var out bytes.Buffer
	var slept time.Duration

	err := testTorch(torch, 300*time.Millisecond, &out, func(d time.Duration) { slept = d })
	if err != nil {
		t.Fatal(err)
	}
	if len(torch.calls) != 2 || !torch.calls[0] || torch.calls[1] {
		t.Errorf("calls = %v, want [true false]", torch.calls)
	}
	if slept != 300*time.Millisecond {
		t.Errorf("slept %v", slept)
	}
	if !strings.Contains(out.String(), "Torch capability: available") {
		t.Errorf("output = %q", out.String())
	}
}

func TestTestTorch_Unavailable(t *testing.T) {
	for _, capability := range []device.Capability{device.Unavailable, device.Unsupported, device.Denied} {
		t.Run(capability.String(), func(t *testing.T) {
			torch := &fakeTorch{capability: capability}
			err := testTorch(torch, time.Millisecond, &bytes.Buffer{}, func(time.Duration) {})
			if !errors.Is(err, device.ErrUnavailable) {
				t.Errorf("error = %v, want ErrUnavailable", err)
			}
			if len(torch.calls) != 0 {
				t.Errorf("torch switched: %v", torch.calls)
			}
		})
	}
}

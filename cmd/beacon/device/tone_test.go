package device

import (
	"math"
	"testing"
)

func peak(samples [][2]float64) float64 {
	m := 0.0
	for _, s := range samples {
		m = math.Max(m, math.Abs(s[0]))
	}
	return m
}

func TestToneStreamer_Gate(t *testing.T) {
	tone := newToneStreamer(700, 0.5)
	buf := make([][2]float64, 2048)

	n, ok := tone.Stream(buf)
	if n != len(buf) || !ok {
		t.Fatalf("Stream = %d, %v", n, ok)
	}
	if p := peak(buf); p != 0 {
		t.Errorf("gated off peak = %v, want 0", p)
	}

	tone.gate.Store(true)
	tone.Stream(buf)
	if p := peak(buf); p <= 0.4 || p > 0.5 {
		t.Errorf("gated on peak = %v, want close to 0.5", p)
	}

	tone.gate.Store(false)
	tone.Stream(buf)
	if tone.gain != 0 {
		t.Errorf("gain after release = %v, want 0", tone.gain)
	}
}

func TestToneStreamer_Ramp(t *testing.T) {
	tone := newToneStreamer(700, 0.5)
	tone.gate.Store(true)
	buf := make([][2]float64, rampSamples/2)
	tone.Stream(buf)
	if tone.gain >= 0.5 {
		t.Errorf("gain reached %v after half a ramp", tone.gain)
	}
}

func TestToneStreamer_Closed(t *testing.T) {
	tone := newToneStreamer(0, 0)
	if tone.frequency != DefaultFrequency || tone.volume != DefaultVolume {
		t.Errorf("defaults not applied: %v %v", tone.frequency, tone.volume)
	}
	tone.closed.Store(true)
	if n, ok := tone.Stream(make([][2]float64, 8)); n != 0 || ok {
		t.Errorf("closed Stream = %d, %v", n, ok)
	}
}

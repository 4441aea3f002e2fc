package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gigurra/morselight/cmd/morse/code"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFrom_Missing(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.WPM != 20 || !cfg.Outputs.Screen || cfg.Torch.Backend != "auto" || !cfg.WakeLock {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFrom_FillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, `{"wpm": 12, "loop": true, "tone": {"frequency_hz": 600}}`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.WPM != 12 || !cfg.Loop {
		t.Errorf("wpm/loop not read: %+v", cfg)
	}
	if cfg.Tone.FrequencyHz != 600 || cfg.Tone.Volume != DefaultConfig().Tone.Volume {
		t.Errorf("tone = %+v", cfg.Tone)
	}
	if cfg.Outputs == nil || cfg.Torch == nil || cfg.Torch.Backend != "auto" {
		t.Errorf("missing sections not defaulted: %+v", cfg)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		rate    bool
	}{
		{"rate too high", `{"wpm": 99}`, true},
		{"negative rate", `{"wpm": -1}`, true},
		{"unknown backend", `{"torch": {"backend": "laser"}}`, false},
		{"loud", `{"tone": {"volume": 3}}`, false},
		{"not json", `wpm = 20`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			writeFile(t, path, tt.content)
			_, err := LoadFrom(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.rate != errors.Is(err, code.ErrInvalidRate) {
				t.Errorf("error = %v, rate error expected: %v", err, tt.rate)
			}
		})
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := DefaultConfig()
	cfg.WPM = 8
	cfg.Outputs.Haptic = true
	cfg.Notify = true

	if err := SaveTo(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.WPM != 8 || !loaded.Outputs.Haptic || !loaded.Notify {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestWatch_Reloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	writeFile(t, path, `{"wpm": 10}`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 8)
	if err := Watch(ctx, path, func(c *Config) { changes <- c }); err != nil {
		t.Fatal(err)
	}

	writeFile(t, filepath.Join(dir, "other.json"), `{"wpm": 1}`)
	writeFile(t, path, `{"wpm": 30}`)

	deadline := time.After(5 * time.Second)
	for {
		select {
		case c := <-changes:
			if c.WPM == 30 {
				return
			}
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}

// Package config provides configuration loading for morselight.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gigurra/morselight/cmd/beacon/device"
	"github.com/gigurra/morselight/cmd/common"
	"github.com/gigurra/morselight/cmd/morse/code"
)

// Config represents the morselight configuration file structure.
type Config struct {
	WPM      int           `json:"wpm"`
	Loop     bool          `json:"loop"`
	Outputs  *OutputConfig `json:"outputs,omitempty"`
	Torch    *TorchConfig  `json:"torch,omitempty"`
	Tone     *ToneConfig   `json:"tone,omitempty"`
	WakeLock bool          `json:"wake_lock"`
	Notify   bool          `json:"notify"`
}

// OutputConfig selects which channels are enabled by default.
type OutputConfig struct {
	Torch  bool `json:"torch"`
	Screen bool `json:"screen"`
	Beep   bool `json:"beep"`
	Haptic bool `json:"haptic"`
}

// TorchConfig picks the torch backend: auto, sysfs, termux or none.
type TorchConfig struct {
	Backend string `json:"backend"`
	LEDRoot string `json:"led_root,omitempty"`
}

type ToneConfig struct {
	FrequencyHz float64 `json:"frequency_hz"`
	Volume      float64 `json:"volume"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		WPM:  20,
		Loop: false,
		Outputs: &OutputConfig{
			Torch:  true,
			Screen: true,
			Beep:   true,
		},
		Torch: &TorchConfig{
			Backend: "auto",
		},
		Tone: &ToneConfig{
			FrequencyHz: device.DefaultFrequency,
			Volume:      device.DefaultVolume,
		},
		WakeLock: true,
	}
}

// ConfigDir returns the morselight config directory (~/.morselight).
func ConfigDir() string {
	return common.AppDir()
}

// ConfigPath returns the path to the config file (~/.morselight/config.json).
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// Load loads the config from ~/.morselight/config.json.
// Returns default config if file doesn't exist.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom loads the config at path, filling missing sections with defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	defaults := DefaultConfig()
	if config.WPM == 0 {
		config.WPM = defaults.WPM
	}
	if config.Outputs == nil {
		config.Outputs = defaults.Outputs
	}
	if config.Torch == nil {
		config.Torch = defaults.Torch
	} else if config.Torch.Backend == "" {
		config.Torch.Backend = defaults.Torch.Backend
	}
	if config.Tone == nil {
		config.Tone = defaults.Tone
	} else {
		if config.Tone.FrequencyHz == 0 {
			config.Tone.FrequencyHz = defaults.Tone.FrequencyHz
		}
		if config.Tone.Volume == 0 {
			config.Tone.Volume = defaults.Tone.Volume
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &config, nil
}

// Validate checks ranges that would otherwise fail at playback time.
func (c *Config) Validate() error {
	if _, err := code.UnitFor(c.WPM); err != nil {
		return err
	}
	switch c.Torch.Backend {
	case "auto", "sysfs", "termux", "none":
	default:
		return fmt.Errorf("unknown torch backend %q", c.Torch.Backend)
	}
	if c.Tone.Volume < 0 || c.Tone.Volume > 1 {
		return fmt.Errorf("tone volume %v out of range 0-1", c.Tone.Volume)
	}
	return nil
}

// Save saves the config to ~/.morselight/config.json.
func Save(config *Config) error {
	return SaveTo(ConfigPath(), config)
}

func SaveTo(path string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

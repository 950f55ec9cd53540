// Package config loads optional process configuration from a TOML
// file, never from a CLI flag: spec.md's CLI contract is exactly one
// positional argument and nothing else, so any knob beyond that is
// wired through an environment variable naming an optional file.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// ConfigEnvVar is the environment variable naming an optional TOML
// config file.
const ConfigEnvVar = "NANOCC_CONFIG"

// DefaultFrameReservation is the stack space (in bytes) the driver
// reserves for local variables when no config overrides it: 208 bytes,
// 26 slots of 8 bytes each, per spec.md §9.
const DefaultFrameReservation = 208

// Config holds the handful of knobs an implementation may want to
// override without touching the fixed CLI contract.
type Config struct {
	// FrameReservation overrides the prologue's `sub rsp, N`. Zero
	// means "use DefaultFrameReservation".
	FrameReservation int `toml:"frame_reservation"`
}

// Load reads the file named by ConfigEnvVar, if set. With the
// variable unset, or pointing at a file that doesn't exist, Load
// returns the zero Config and no error: an absent config is not a
// failure.
func Load() (Config, error) {
	path := os.Getenv(ConfigEnvVar)
	if path == "" {
		return Config{}, nil
	}

	var cfg Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Config{}, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "loading %s=%s", ConfigEnvVar, path)
	}
	return cfg, nil
}

// Frame returns the frame reservation to use: the config override if
// present and positive, otherwise the fixed default.
func (c Config) Frame() int {
	if c.FrameReservation > 0 {
		return c.FrameReservation
	}
	return DefaultFrameReservation
}

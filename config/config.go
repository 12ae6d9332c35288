// Package config loads the run harness's configuration by layering a YAML
// file under command-line flag overrides via spf13/viper.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"
)

// Config holds the compile-time maze parameters (maze length, move stack
// capacity) plus the run harness's own knobs.
type Config struct {
	// MazeLength is N, the maze's side length. Must be >= 2.
	MazeLength int `mapstructure:"mazeLength"`
	// StackSize bounds the move stack. Must be >= MazeLength^2; defaults to
	// exactly MazeLength^2 when left at zero.
	StackSize int `mapstructure:"stackSize"`
	// Debug enables debug-level logging.
	Debug bool `mapstructure:"debug"`
	// Addr is the diagnostics server's listen address; empty disables it.
	Addr string `mapstructure:"addr"`
	// Simulate selects the in-memory simulator over real hardware collaborators.
	Simulate bool `mapstructure:"simulate"`
	// StepDelayMs is the simulator's artificial per-maneuver delay.
	StepDelayMs int `mapstructure:"stepDelayMs"`
}

// Defaults returns the baseline configuration before any file or flag layer
// is applied.
func Defaults() Config {
	return Config{
		MazeLength:  16,
		StackSize:   0, // resolved to MazeLength^2 by Validate
		Debug:       false,
		Addr:        "",
		Simulate:    true,
		StepDelayMs: 0,
	}
}

// Load builds a Config by layering, in increasing priority: built-in
// defaults, the YAML file at path (if it exists; a missing file is not an
// error), then any values the caller has already set or bound into v. main
// passes a fresh viper and applies its flag overrides to the returned Config
// afterwards. The result is validated before being returned.
func Load(v *viper.Viper, path string) (Config, error) {
	defaults := Defaults()
	v.SetDefault("mazeLength", defaults.MazeLength)
	v.SetDefault("stackSize", defaults.StackSize)
	v.SetDefault("debug", defaults.Debug)
	v.SetDefault("addr", defaults.Addr)
	v.SetDefault("simulate", defaults.Simulate)
	v.SetDefault("stepDelayMs", defaults.StepDelayMs)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFoundErr viper.ConfigFileNotFoundError
			notFound := errors.As(err, &notFoundErr) || errors.Is(err, fs.ErrNotExist)
			if !notFound {
				return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate checks the maze-size invariants and resolves StackSize's
// zero-value default.
func (c *Config) Validate() error {
	if c.MazeLength < 2 {
		return fmt.Errorf("config: mazeLength must be >= 2, got %d", c.MazeLength)
	}
	if c.StackSize == 0 {
		c.StackSize = c.MazeLength * c.MazeLength
	}
	if c.StackSize < c.MazeLength*c.MazeLength {
		return fmt.Errorf("config: stackSize must be >= mazeLength^2 (%d), got %d", c.MazeLength*c.MazeLength, c.StackSize)
	}
	return nil
}

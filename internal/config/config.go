//go:build !tinygo

// Package config loads the host simulator's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"rover/app"
	"rover/hal"
)

var (
	// ErrUnknownKeys is returned when a file sets keys nothing reads.
	ErrUnknownKeys = errors.New("unknown keys")
	// ErrBlinkOnHost is returned for blink_on_panic = true. The blink loop
	// never returns, so the simulator could not be stopped after a panic.
	ErrBlinkOnHost = errors.New("app.blink_on_panic is firmware only")
)

// LogConfig controls the host logger.
type LogConfig struct {
	Level string `toml:"level"`
	// Rate caps firmware log lines per second (0 = unlimited).
	Rate  float64 `toml:"rate"`
	Burst int     `toml:"burst"`
}

// File is the layout of a rover.toml.
type File struct {
	App app.Config    `toml:"app"`
	Sim hal.SimConfig `toml:"sim"`
	Log LogConfig     `toml:"log"`
}

// Default is what the simulator runs with when no file is given. Unlike the
// firmware default it never blinks forever on panic.
func Default() File {
	cfg := app.DefaultConfig()
	cfg.BlinkOnPanic = false
	return File{
		App: cfg,
		Sim: hal.DefaultSimConfig(),
		Log: LogConfig{Level: "info", Burst: 20},
	}
}

// Load reads path over Default. Keys left out keep their default value.
func Load(path string) (File, error) {
	f := Default()
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return File{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return File{}, fmt.Errorf("%s: %w: %s", path, ErrUnknownKeys, strings.Join(keys, ", "))
	}
	if f.App.BlinkOnPanic {
		return File{}, fmt.Errorf("%s: %w", path, ErrBlinkOnHost)
	}
	if err := f.App.Validate(); err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

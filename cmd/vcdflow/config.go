package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Neumenon/vcdflow/vcd"
)

// settings are the reader defaults a config file can override.
type settings struct {
	Mode       vcd.Mode
	Order      vcd.IDOrder
	BufferSize int
	StrictTime bool
}

func defaultSettings() settings {
	return settings{
		Mode:       vcd.ModeAuto,
		Order:      vcd.OrderNatural,
		BufferSize: 1 << 20,
	}
}

type fileConfig struct {
	Mode       string `toml:"mode"`
	IDOrder    string `toml:"id_order"`
	BufferKiB  int    `toml:"buffer_kib"`
	StrictTime bool   `toml:"strict_time"`
}

// loadSettings reads a TOML config file; an empty path returns the
// defaults untouched.
func loadSettings(path string) (settings, error) {
	cfg := defaultSettings()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return settings{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("mode") {
		mode, err := parseMode(raw.Mode)
		if err != nil {
			return settings{}, err
		}
		cfg.Mode = mode
	}

	if meta.IsDefined("id_order") {
		order, err := parseIDOrder(raw.IDOrder)
		if err != nil {
			return settings{}, err
		}
		cfg.Order = order
	}

	if meta.IsDefined("buffer_kib") {
		if raw.BufferKiB < 1 {
			return settings{}, fmt.Errorf("config: buffer_kib must be positive")
		}
		cfg.BufferSize = raw.BufferKiB << 10
	}

	if meta.IsDefined("strict_time") {
		cfg.StrictTime = raw.StrictTime
	}

	return cfg, nil
}

func parseMode(s string) (vcd.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return vcd.ModeAuto, nil
	case "fast":
		return vcd.ModeFast, nil
	case "fallback":
		return vcd.ModeFallback, nil
	default:
		return 0, fmt.Errorf("config: unknown mode %q", s)
	}
}

func parseIDOrder(s string) (vcd.IDOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "natural", "":
		return vcd.OrderNatural, nil
	case "legacy":
		return vcd.OrderLegacy, nil
	default:
		return 0, fmt.Errorf("config: unknown id order %q", s)
	}
}

// readerOptions expands settings into Reader options.
func (s settings) readerOptions() []vcd.ReaderOption {
	opts := []vcd.ReaderOption{
		vcd.WithMode(s.Mode),
		vcd.WithIDOrder(s.Order),
		vcd.WithBufferSize(s.BufferSize),
	}
	if s.StrictTime {
		opts = append(opts, vcd.WithStrictTime())
	}
	return opts
}

// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package config loads the fplot YAML configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration. Zero fields keep their defaults.
type Config struct {
	Database     string   `yaml:"database,omitempty"`
	HistoryLimit int      `yaml:"history_limit,omitempty"`
	MaxPoints    int      `yaml:"max_points,omitempty"`
	CacheSize    int      `yaml:"cache_size,omitempty"`
	Defaults     Defaults `yaml:"defaults,omitempty"`
	Log          Log      `yaml:"log,omitempty"`
}

// Defaults are the plot inputs used when a flag is not given.
type Defaults struct {
	Min   string `yaml:"min,omitempty"`
	Max   string `yaml:"max,omitempty"`
	Step  string `yaml:"step,omitempty"`
	Angle string `yaml:"angle,omitempty"`
}

// Log configures commonlog.
type Log struct {
	Verbosity int    `yaml:"verbosity,omitempty"`
	File      string `yaml:"file,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Database:     "fplot.db",
		HistoryLimit: 20,
		MaxPoints:    100000,
		CacheSize:    64,
		Defaults: Defaults{
			Min:   "-10",
			Max:   "10",
			Step:  "0.1",
			Angle: "rad",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error when
// optional is true.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, leaving fields the document omits as they
// were. Unknown keys are rejected.
func Parse(data []byte, cfg *Config) error {
	var file Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parse config: %w", err)
	}
	merge(cfg, file)
	return cfg.validate()
}

func merge(dst *Config, src Config) {
	if src.Database != "" {
		dst.Database = src.Database
	}
	if src.HistoryLimit != 0 {
		dst.HistoryLimit = src.HistoryLimit
	}
	if src.MaxPoints != 0 {
		dst.MaxPoints = src.MaxPoints
	}
	if src.CacheSize != 0 {
		dst.CacheSize = src.CacheSize
	}
	if src.Defaults.Min != "" {
		dst.Defaults.Min = src.Defaults.Min
	}
	if src.Defaults.Max != "" {
		dst.Defaults.Max = src.Defaults.Max
	}
	if src.Defaults.Step != "" {
		dst.Defaults.Step = src.Defaults.Step
	}
	if src.Defaults.Angle != "" {
		dst.Defaults.Angle = src.Defaults.Angle
	}
	if src.Log.Verbosity != 0 {
		dst.Log.Verbosity = src.Log.Verbosity
	}
	if src.Log.File != "" {
		dst.Log.File = src.Log.File
	}
}

func (c Config) validate() error {
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must not be negative, got %d", c.HistoryLimit)
	}
	if c.MaxPoints < 0 {
		return fmt.Errorf("max_points must not be negative, got %d", c.MaxPoints)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must not be negative, got %d", c.CacheSize)
	}
	switch c.Defaults.Angle {
	case "rad", "radian", "radians", "deg", "degree", "degrees":
	default:
		return fmt.Errorf("defaults.angle must be rad or deg, got %q", c.Defaults.Angle)
	}
	return nil
}

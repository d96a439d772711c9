// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"nickandperla.net/fplot/internal/config"
	"nickandperla.net/fplot/pkg/fplot"
)

const defaultConfigPath = "fplot.yaml"

// app carries the global flags and the loaded configuration.
type app struct {
	configPath string
	dbPath     string
	noHistory  bool
	verbosity  int

	cfg config.Config
}

// setup loads configuration and configures logging. Flags win over the
// file, the file wins over built-in defaults.
func (a *app) setup(cmd *cobra.Command) error {
	path, optional := a.configPath, false
	if path == "" {
		path, optional = defaultConfigPath, true
	}
	cfg, err := config.Load(path, optional)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("db") {
		cfg.Database = a.dbPath
	}
	if a.verbosity > 0 {
		cfg.Log.Verbosity = a.verbosity
	}
	a.cfg = cfg

	var logPath *string
	if cfg.Log.File != "" {
		logPath = &cfg.Log.File
	}
	commonlog.Configure(cfg.Log.Verbosity, logPath)
	return nil
}

// plotter opens a Plotter using the loaded configuration.
func (a *app) plotter() (*fplot.Plotter, error) {
	opts := []fplot.Option{
		fplot.WithHistoryLimit(a.cfg.HistoryLimit),
		fplot.WithMaxPoints(a.cfg.MaxPoints),
		fplot.WithCacheSize(a.cfg.CacheSize),
	}
	if a.noHistory || a.cfg.Database == "" {
		opts = append(opts, fplot.WithMemoryHistory())
	} else {
		opts = append(opts, fplot.WithSQLiteHistory(a.cfg.Database))
	}

	p, err := fplot.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("open plotter: %w", err)
	}
	return p, nil
}

// angle resolves the angle mode from the --deg/--rad flags and the
// configured default.
func (a *app) angle(deg, rad bool) (fplot.AngleMode, error) {
	switch {
	case deg && rad:
		return fplot.Radians, fmt.Errorf("--deg and --rad are mutually exclusive")
	case deg:
		return fplot.Degrees, nil
	case rad:
		return fplot.Radians, nil
	}
	mode, ok := fplot.ParseAngleMode(a.cfg.Defaults.Angle)
	if !ok {
		return fplot.Radians, fmt.Errorf("unknown angle mode %q", a.cfg.Defaults.Angle)
	}
	return mode, nil
}

// userError prints the categorized message for err and returns an error
// cobra reports as a failure without repeating internal detail.
func userError(cmd *cobra.Command, err error) error {
	cmd.PrintErrln("Error:", fplot.Message(err))
	return errSilent
}

var errSilent = errors.New("reported")

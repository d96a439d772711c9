// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"nickandperla.net/fplot/internal/export"
	"nickandperla.net/fplot/pkg/fplot"
)

func newREPLCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Plot formulas interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			angle, err := app.angle(false, false)
			if err != nil {
				return err
			}
			p, err := app.plotter()
			if err != nil {
				return err
			}
			defer p.Close()

			s := &session{
				plotter: p,
				min:     app.cfg.Defaults.Min,
				max:     app.cfg.Defaults.Max,
				step:    app.cfg.Defaults.Step,
				angle:   angle,
			}
			runREPL(s)
			return nil
		},
	}
}

// session holds the REPL settings and the last successful result.
type session struct {
	plotter *fplot.Plotter
	min     string
	max     string
	step    string
	angle   fplot.AngleMode
	last    *fplot.Result
	lastRaw string
}

func printBanner(w io.Writer) {
	fmt.Fprintln(w, "fplot REPL (Ctrl+D to exit)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Type a formula to plot it, or a command:")
	fmt.Fprintln(w, "  :range MIN MAX   :step STEP   :deg   :rad")
	fmt.Fprintln(w, "  :table   :csv [FILE]   :history   :clear   :help")
	fmt.Fprintln(w, "Up/Down recall history.")
	fmt.Fprintln(w)
}

func runREPL(s *session) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		printBanner(os.Stdout)
		runBasicREPL(s, os.Stdin, os.Stdout)
		return
	}
	runRawREPL(s)
}

// runBasicREPL handles non-TTY input (piped input)
func runBasicREPL(s *session, in io.Reader, out io.Writer) {
	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(out, s.prompt())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(out)
			return
		}
		s.handle(strings.TrimRight(line, "\r\n"), out)
	}
}

// runRawREPL handles TTY input with line editing and history recall
func runRawREPL(s *session) {
	fd := int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set raw mode: %v\n", err)
		printBanner(os.Stdout)
		runBasicREPL(s, os.Stdin, os.Stdout)
		return
	}
	defer term.Restore(fd, oldState)

	out := crlfWriter{os.Stdout}
	printBanner(out)
	for {
		fmt.Fprint(out, s.prompt())
		line, eof := readLineRaw(os.Stdin, os.Stdout, s.plotter.History())
		if eof {
			fmt.Fprint(out, "\n")
			return
		}
		s.handle(line, out)
	}
}

func (s *session) prompt() string {
	return fmt.Sprintf("[%s..%s step %s %s]> ", s.min, s.max, s.step, s.angle)
}

// handle runs one REPL line.
func (s *session) handle(line string, out io.Writer) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if !strings.HasPrefix(line, ":") {
		s.plot(line, out)
		return
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case ":range":
		if len(fields) != 3 {
			fmt.Fprintln(out, "usage: :range MIN MAX")
			return
		}
		s.min, s.max = fields[1], fields[2]
	case ":step":
		if len(fields) != 2 {
			fmt.Fprintln(out, "usage: :step STEP")
			return
		}
		s.step = fields[1]
	case ":deg":
		s.angle = fplot.Degrees
	case ":rad":
		s.angle = fplot.Radians
	case ":table":
		if s.last == nil {
			fmt.Fprintln(out, "nothing plotted yet")
			return
		}
		if err := export.WriteTable(out, s.last.Series); err != nil {
			fmt.Fprintln(out, "Error:", err)
		}
	case ":csv":
		if err := s.csv(fields[1:], out); err != nil {
			fmt.Fprintln(out, "Error:", err)
		}
	case ":history":
		for i, f := range s.plotter.History() {
			fmt.Fprintf(out, "%2d  %s\n", i+1, f)
		}
	case ":clear":
		if err := s.plotter.ClearHistory(); err != nil {
			fmt.Fprintln(out, "Error:", fplot.Message(err))
		}
	case ":help":
		printBanner(out)
	default:
		fmt.Fprintf(out, "unknown command %s (try :help)\n", fields[0])
	}
}

func (s *session) plot(formula string, out io.Writer) {
	res, err := s.plotter.Build(context.Background(), fplot.Request{
		Formula: formula,
		Min:     s.min,
		Max:     s.max,
		Step:    s.step,
		Angle:   s.angle,
	})
	if err != nil {
		fmt.Fprintln(out, "Error:", fplot.Message(err))
		return
	}
	s.last, s.lastRaw = res, formula

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range res.Series {
		if p.Defined {
			lo, hi = math.Min(lo, p.Y), math.Max(hi, p.Y)
		}
	}
	fmt.Fprintf(out, "y = %s\n", res.Canonical.Display)
	fmt.Fprintf(out, "  %d points, %d of %d grid points undefined, y in [%g, %g]\n",
		len(res.Series), res.Meta.Invalid, res.Meta.Total, lo, hi)
}

// csv writes the last series to out, or to the named file ("-" derives a
// name from the formula).
func (s *session) csv(args []string, out io.Writer) error {
	if s.last == nil {
		fmt.Fprintln(out, "nothing plotted yet")
		return nil
	}
	if len(args) == 0 {
		return export.WriteCSV(out, s.last.Series)
	}

	name := args[0]
	if name == "-" {
		name = export.CSVFilename(s.lastRaw)
	}
	if err := writeCSVFile(name, s.last.Series); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s\n", name)
	return nil
}

// crlfWriter translates "\n" to "\r\n" for a terminal in raw mode.
type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	_, err := io.WriteString(c.w, strings.ReplaceAll(string(p), "\n", "\r\n"))
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

// Copyright 2023 The Zoned Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package repl provides a read/eval/print loop for date-time values.
//
// It supports readline-style command editing,
// and interrupts through Control-C.
//
// Each input line is a timestamp in any of the accepted grammars,
// optionally followed by "+ <duration>" or "- <duration>" terms, or
// one of a small set of commands ("now", "unix", "zone", "help").
// The result prints in the session zone alongside its UTC reading and
// epoch counters.
package repl // import "go.zoned.dev/repl"

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"go.zoned.dev/civil"
	"go.zoned.dev/tz"
	"go.zoned.dev/zoned"
)

var interrupted = make(chan os.Signal, 1)

// A Session holds the state a REPL mutates: the zone results are
// viewed through and the last result, reusable as "." in the next
// line.
type Session struct {
	Zone tz.Zone
	last zoned.Time
	ok   bool
}

// REPL executes a read, eval, print loop over the session.
func REPL(s *Session) {
	signal.Notify(interrupted, os.Interrupt)
	defer signal.Stop(interrupted)

	if s.Zone == nil {
		s.Zone = tz.Local()
	}

	rl, err := readline.New(">>> ")
	if err != nil {
		PrintError(err)
		return
	}
	defer rl.Close()
	for {
		if err := rep(rl, s); err != nil {
			if err == readline.ErrInterrupt {
				fmt.Println(err)
				continue
			}
			break
		}
	}
	fmt.Println()
}

// rep reads, evaluates, and prints one line.
//
// It returns an error (possibly readline.ErrInterrupt) only if
// readline failed. Evaluation errors are printed.
func rep(rl *readline.Instance, s *Session) error {
	line, err := rl.Readline()
	if err != nil {
		if err == io.EOF {
			return io.EOF
		}
		return err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if err := Exec(os.Stdout, s, line); err != nil {
		PrintError(err)
	}
	return nil
}

// Exec evaluates one line against the session and prints the result
// to out.
func Exec(out io.Writer, s *Session, line string) error {
	word, rest := split(line)
	switch word {
	case "help":
		fmt.Fprint(out, helpText)
		return nil
	case "zone":
		if rest == "" {
			fmt.Fprintln(out, s.Zone)
			return nil
		}
		loc, err := tz.LoadLocation(rest)
		if err != nil {
			return err
		}
		s.Zone = loc
		if s.ok {
			s.last = s.last.In(loc)
		}
		return nil
	}

	t, err := eval(s, line)
	if err != nil {
		return err
	}
	s.last, s.ok = t, true
	return print(out, t)
}

// eval computes the timestamp expression: a base value followed by
// signed duration terms.
func eval(s *Session, line string) (zoned.Time, error) {
	base, rest, err := evalBase(s, line)
	if err != nil {
		return zoned.Time{}, err
	}
	for rest != "" {
		op, after := split(rest)
		if op != "+" && op != "-" {
			return zoned.Time{}, fmt.Errorf("repl: expected + or -, got %q", op)
		}
		arg, after2 := split(after)
		if arg == "" {
			return zoned.Time{}, fmt.Errorf("repl: missing duration after %q", op)
		}
		d, err := parseDelta(arg)
		if err != nil {
			return zoned.Time{}, err
		}
		if op == "-" {
			d = d.Neg()
		}
		base, err = base.Add(d)
		if err != nil {
			return zoned.Time{}, err
		}
		rest = after2
	}
	return base, nil
}

func evalBase(s *Session, line string) (zoned.Time, string, error) {
	word, rest := split(line)
	switch word {
	case ".":
		if !s.ok {
			return zoned.Time{}, "", fmt.Errorf("repl: no previous result")
		}
		return s.last, rest, nil
	case "now":
		return zoned.Now(s.Zone), rest, nil
	case "unix":
		arg, rest := split(rest)
		secs, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return zoned.Time{}, "", fmt.Errorf("repl: unix wants an integer, got %q", arg)
		}
		t, err := zoned.FromUnix(secs, 0, s.Zone)
		if err != nil {
			return zoned.Time{}, "", err
		}
		return t, rest, nil
	}

	// A timestamp literal extends to the end of the first token that
	// completes a parse; try the generous grammars over successively
	// shorter prefixes ending at token boundaries.
	for end := len(line); end > 0; end = strings.LastIndexAny(line[:end], " \t") {
		lit := strings.TrimSpace(line[:end])
		if t, err := parseStamp(s, lit); err == nil {
			return t, strings.TrimSpace(line[end:]), nil
		}
	}
	return zoned.Time{}, "", fmt.Errorf("repl: cannot parse %q", line)
}

func parseStamp(s *Session, lit string) (zoned.Time, error) {
	if t, err := zoned.Parse(lit); err == nil {
		return t.In(s.Zone), nil
	}
	if t, err := zoned.ParseRFC2822(lit); err == nil {
		return t.In(s.Zone), nil
	}
	// A bare date reads as local midnight.
	if d, err := civil.DateOf(parseYMD(lit)); err == nil {
		return zoned.FromLocal(d.At(civil.TimeOfDay{}), s.Zone)
	}
	return zoned.Time{}, fmt.Errorf("repl: cannot parse %q", lit)
}

func parseYMD(lit string) (int, civil.Month, int) {
	parts := strings.Split(lit, "-")
	if len(parts) != 3 {
		return 0, 0, 0 // month 0 never validates
	}
	y, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	d, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0
	}
	return y, civil.Month(m), d
}

// parseDelta reads a duration in the standard library's "1h30m" form
// or as a count of days, such as "3d".
func parseDelta(arg string) (civil.Delta, error) {
	if n := len(arg); n > 1 && arg[n-1] == 'd' {
		days, err := strconv.ParseInt(arg[:n-1], 10, 64)
		if err == nil {
			return civil.Hours(days * 24), nil
		}
	}
	d, err := time.ParseDuration(arg)
	if err != nil {
		return civil.Delta{}, fmt.Errorf("repl: bad duration %q", arg)
	}
	return civil.FromStd(d), nil
}

func print(out io.Writer, t zoned.Time) error {
	fmt.Fprintln(out, t)
	if t.Zone() != tz.UTC {
		fmt.Fprintf(out, "  utc   %s\n", t.UTC())
	}
	fmt.Fprintf(out, "  iso   %s\n", t.RFC3339())
	if s, err := t.RFC2822(); err == nil {
		fmt.Fprintf(out, "  mail  %s\n", s)
	}
	fmt.Fprintf(out, "  unix  %d\n", t.Unix())
	return nil
}

func split(s string) (head, tail string) {
	s = strings.TrimSpace(s)
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

const helpText = `commands:
  <timestamp>            parse an RFC 3339, RFC 2822, or date literal
  <timestamp> + 90m      shift by a duration (s, m, h, or d suffixes)
  now                    the current instant
  unix <seconds>         an epoch second count
  .                      the previous result
  zone [name]            show or switch the session zone
  help                   this text
`

// PrintError prints the error to stderr.
func PrintError(err error) {
	fmt.Fprintln(os.Stderr, err)
}

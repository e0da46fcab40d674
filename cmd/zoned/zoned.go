// Copyright 2023 The Zoned Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The zoned command converts timestamps between zones and grammars.
// With no arguments, it starts a read-eval-print loop (REPL).
package main // import "go.zoned.dev/cmd/zoned"

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"

	"go.zoned.dev/repl"
	"go.zoned.dev/tz"
	"go.zoned.dev/zoned"
)

// flags
var (
	zoneName = flag.String("zone", "", "IANA zone to view results through (default $ZONED_ZONE or the system zone)")
	layout   = flag.String("format", "", "strftime-style output layout (default $ZONED_FORMAT or a multi-line report)")
	utc      = flag.Bool("utc", false, "shorthand for -zone UTC")
	verbose  = flag.Bool("v", false, "log conversion details")
)

// config carries the environment defaults the flags fall back to.
type config struct {
	Zone   string `envconfig:"ZONE"`
	Format string `envconfig:"FORMAT"`
}

func main() {
	os.Exit(doMain())
}

func doMain() int {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "zoned"})
	flag.Parse()

	var cfg config
	if err := envconfig.Process("zoned", &cfg); err != nil {
		logger.Error("bad environment", "err", err)
		return 1
	}
	if *zoneName == "" {
		*zoneName = cfg.Zone
	}
	if *layout == "" {
		*layout = cfg.Format
	}
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	zone, err := sessionZone()
	if err != nil {
		logger.Error("bad zone", "zone", *zoneName, "err", err)
		return 1
	}
	logger.Debug("session", "zone", zone)

	switch {
	case flag.NArg() == 0 && term.IsTerminal(int(os.Stdin.Fd())):
		fmt.Println("Welcome to zoned (type help for commands, ^D to exit)")
		repl.REPL(&repl.Session{Zone: zone})
		return 0
	case flag.NArg() == 0:
		logger.Error("no timestamps given")
		return 1
	}

	s := &repl.Session{Zone: zone}
	for _, arg := range flag.Args() {
		if err := run(s, arg); err != nil {
			logger.Error("convert failed", "arg", arg, "err", err)
			return 1
		}
	}
	return 0
}

func sessionZone() (tz.Zone, error) {
	switch {
	case *utc || *zoneName == "UTC":
		return tz.UTC, nil
	case *zoneName == "":
		return tz.Local(), nil
	}
	return tz.LoadLocation(*zoneName)
}

// run converts one command line argument.  With a -format layout each
// result prints on one line; otherwise the REPL's full report is used.
func run(s *repl.Session, arg string) error {
	if *layout == "" {
		return repl.Exec(os.Stdout, s, arg)
	}

	t, err := parseArg(s.Zone, arg)
	if err != nil {
		return err
	}
	out, err := t.Format(*layout)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func parseArg(zone tz.Zone, arg string) (zoned.Time, error) {
	if t, err := zoned.Parse(arg); err == nil {
		return t.In(zone), nil
	}
	t, err := zoned.ParseRFC2822(arg)
	if err != nil {
		return zoned.Time{}, err
	}
	return t.In(zone), nil
}

// Copyright 2023 The Zoned Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package repl

import (
	"bytes"
	"strings"
	"testing"
	_ "time/tzdata"

	"go.zoned.dev/tz"
)

func exec(t *testing.T, s *Session, line string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Exec(&buf, s, line); err != nil {
		t.Fatalf("%q: %v", line, err)
	}
	return buf.String()
}

func TestExecLiteral(t *testing.T) {
	s := &Session{Zone: tz.UTC}
	out := exec(t, s, "2015-05-15T02:00:00Z")
	if !strings.Contains(out, "2015-05-15 02:00:00 UTC") {
		t.Errorf("output:\n%s", out)
	}
	if !strings.Contains(out, "unix  1431655200") {
		t.Errorf("output:\n%s", out)
	}
}

func TestExecArithmetic(t *testing.T) {
	s := &Session{Zone: tz.UTC}
	out := exec(t, s, "2015-05-15T02:00:00Z + 90m - 30m")
	if !strings.Contains(out, "2015-05-15 03:00:00 UTC") {
		t.Errorf("output:\n%s", out)
	}

	out = exec(t, s, ". + 1d")
	if !strings.Contains(out, "2015-05-16 03:00:00 UTC") {
		t.Errorf("output:\n%s", out)
	}
}

func TestExecUnixAndDate(t *testing.T) {
	s := &Session{Zone: tz.UTC}
	out := exec(t, s, "unix 1431655200")
	if !strings.Contains(out, "2015-05-15 02:00:00 UTC") {
		t.Errorf("output:\n%s", out)
	}

	out = exec(t, s, "2015-05-15")
	if !strings.Contains(out, "2015-05-15 00:00:00 UTC") {
		t.Errorf("output:\n%s", out)
	}
}

func TestExecZone(t *testing.T) {
	s := &Session{Zone: tz.UTC}
	exec(t, s, "zone America/New_York")
	if s.Zone.String() != "America/New_York" {
		t.Fatalf("zone = %v", s.Zone)
	}
	out := exec(t, s, "2016-07-04T16:00:00Z")
	if !strings.Contains(out, "2016-07-04 12:00:00 -04:00") {
		t.Errorf("output:\n%s", out)
	}

	if err := Exec(&bytes.Buffer{}, s, "zone Not/AZone"); err == nil {
		t.Error("unknown zone accepted")
	}
}

func TestExecErrors(t *testing.T) {
	s := &Session{Zone: tz.UTC}
	for _, line := range []string{
		"nonsense",
		"2015-05-15T02:00:00Z + bogus",
		"2015-05-15T02:00:00Z * 2",
	} {
		if err := Exec(&bytes.Buffer{}, s, line); err == nil {
			t.Errorf("%q accepted", line)
		}
	}
}

// Copyright 2023 The Zoned Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tz

import (
	"time"

	"github.com/pkg/errors"

	"go.zoned.dev/civil"
)

// A Location is a named region of the IANA timezone database, with its
// full history of offset transitions.  Location values wrap the same
// pointer for the same region, so they are comparable with ==.
type Location struct {
	loc *time.Location
}

// LoadLocation looks up a region by its IANA name, such as
// "America/New_York".  As a special case, "UTC" and the empty string
// load the UTC region and "Local" loads the system zone.
func LoadLocation(name string) (Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Location{}, errors.Wrapf(err, "tz: load %q", name)
	}
	return Location{loc: loc}, nil
}

// MustLoadLocation is like LoadLocation but panics if the region is
// unknown.
func MustLoadLocation(name string) Location {
	l, err := LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return l
}

// Local returns the system's configured zone.
func Local() Location { return Location{loc: time.Local} }

// FromStdLocation wraps a standard library location.
func FromStdLocation(loc *time.Location) Location {
	if loc == nil {
		loc = time.UTC
	}
	return Location{loc: loc}
}

// StdLocation returns the underlying standard library location.
func (l Location) StdLocation() *time.Location {
	if l.loc == nil {
		return time.UTC
	}
	return l.loc
}

// OffsetAt implements Zone.
func (l Location) OffsetAt(utc civil.DateTime) FixedOffset {
	return l.offsetAtUnix(utc.Unix())
}

func (l Location) offsetAtUnix(sec int64) FixedOffset {
	_, off := time.Unix(sec, 0).In(l.StdLocation()).Zone()
	return FixedOffset{secs: int32(off)}
}

// ResolveLocal implements Zone.
//
// The timezone database is indexed by instant, not by wall clock, so
// the candidate offsets are found by probing instants around the
// reading.  Offsets in effect shortly before and after the naive guess
// cover every transition that could affect it; a candidate offset is
// kept only if applying it lands on an instant where that offset really
// holds.
func (l Location) ResolveLocal(local civil.DateTime) Resolution {
	guess := local.Unix()

	probes := [3]FixedOffset{
		l.offsetAtUnix(guess - 2*86_400),
		l.offsetAtUnix(guess),
		l.offsetAtUnix(guess + 2*86_400),
	}

	var valid []FixedOffset
probe:
	for _, off := range probes {
		for _, seen := range valid {
			if off == seen {
				continue probe
			}
		}
		if l.offsetAtUnix(guess-int64(off.secs)) == off {
			valid = append(valid, off)
		}
	}

	switch len(valid) {
	case 0:
		return None()
	case 1:
		return Single(valid[0])
	default:
		return Ambiguous(valid[0], valid[1])
	}
}

// ZoneName reports the abbreviation in effect at the given UTC
// instant, such as "EST" or "EDT".
func (l Location) ZoneName(utc civil.DateTime) string {
	name, _ := time.Unix(utc.Unix(), 0).In(l.StdLocation()).Zone()
	return name
}

// String returns the IANA name of the region.
func (l Location) String() string { return l.StdLocation().String() }

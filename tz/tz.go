// Copyright 2023 The Zoned Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tz maps between civil local times and UTC instants.
//
// A Zone knows two things: the fixed offset in effect at a given UTC
// instant, and how a wall-clock reading resolves back to instants.  The
// second mapping is not a function: daylight saving transitions make
// some local times ambiguous and others nonexistent, so ResolveLocal
// returns a Resolution describing zero, one, or two candidates.
//
// UTC and FixedOffset zones resolve every local time uniquely.
// Location wraps the system timezone database and carries the full
// transition history of a named region.
package tz

import (
	"go.zoned.dev/civil"
)

// A Zone converts between local civil time and UTC civil time.
//
// Implementations must be comparable with == so that values carrying
// the same Zone can be compared cheaply.
type Zone interface {
	// OffsetAt reports the offset in effect at the given UTC instant.
	OffsetAt(utc civil.DateTime) FixedOffset

	// ResolveLocal maps a wall-clock reading to the UTC offsets under
	// which it exists.
	ResolveLocal(local civil.DateTime) Resolution

	// String returns a short name for the zone, such as "UTC" or
	// "America/New_York".
	String() string
}

// UTC is the zero-offset zone.
var UTC Zone = utcZone{}

type utcZone struct{}

func (utcZone) OffsetAt(civil.DateTime) FixedOffset    { return FixedOffset{} }
func (utcZone) ResolveLocal(civil.DateTime) Resolution { return Single(FixedOffset{}) }
func (utcZone) String() string                         { return "UTC" }

// A Resolution is the result of mapping a local time reading onto a
// zone's timeline.  It holds zero, one, or two candidate offsets.
type Resolution struct {
	n        int
	min, max FixedOffset
}

// None reports a local time skipped by a forward transition.
func None() Resolution { return Resolution{} }

// Single reports a local time with exactly one interpretation.
func Single(off FixedOffset) Resolution { return Resolution{n: 1, min: off, max: off} }

// Ambiguous reports a local time repeated by a backward transition.
// The earlier instant corresponds to max (the pre-transition offset)
// and the later to min.
func Ambiguous(min, max FixedOffset) Resolution {
	if min == max {
		return Single(min)
	}
	if min.secs > max.secs {
		min, max = max, min
	}
	return Resolution{n: 2, min: min, max: max}
}

// IsNone reports whether the local time does not exist.
func (r Resolution) IsNone() bool { return r.n == 0 }

// IsAmbiguous reports whether the local time has two interpretations.
func (r Resolution) IsAmbiguous() bool { return r.n == 2 }

// Unique returns the offset if the local time resolves uniquely.
func (r Resolution) Unique() (FixedOffset, bool) {
	return r.min, r.n == 1
}

// Earliest returns the offset yielding the earliest UTC instant, if any.
// For an ambiguous time that is the larger (pre-transition) offset.
func (r Resolution) Earliest() (FixedOffset, bool) {
	return r.max, r.n > 0
}

// Latest returns the offset yielding the latest UTC instant, if any.
func (r Resolution) Latest() (FixedOffset, bool) {
	return r.min, r.n > 0
}

// Copyright 2023 The Zoned Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tz

import (
	"fmt"

	"go.zoned.dev/civil"
)

// A FixedOffset is a constant displacement from UTC, in seconds.
// Positive offsets lie east of the prime meridian.  The zero value
// is UTC itself.
//
// FixedOffset implements Zone: every local time resolves uniquely.
type FixedOffset struct {
	secs int32
}

const maxOffsetSecs = 86_400

// East returns the offset secs seconds east of UTC.
// It returns an error unless |secs| is less than one day.
func East(secs int) (FixedOffset, error) {
	if secs <= -maxOffsetSecs || secs >= maxOffsetSecs {
		return FixedOffset{}, fmt.Errorf("tz: offset %d out of range", secs)
	}
	return FixedOffset{secs: int32(secs)}, nil
}

// West returns the offset secs seconds west of UTC.
func West(secs int) (FixedOffset, error) {
	if secs <= -maxOffsetSecs || secs >= maxOffsetSecs {
		return FixedOffset{}, fmt.Errorf("tz: offset %d out of range", -secs)
	}
	return FixedOffset{secs: int32(-secs)}, nil
}

// MustEast is like East but panics on a bad offset.
// It is intended for offsets known at compile time.
func MustEast(secs int) FixedOffset {
	off, err := East(secs)
	if err != nil {
		panic(err)
	}
	return off
}

// MustWest is like West but panics on a bad offset.
func MustWest(secs int) FixedOffset {
	off, err := West(secs)
	if err != nil {
		panic(err)
	}
	return off
}

// Seconds returns the offset east of UTC in seconds.
func (o FixedOffset) Seconds() int { return int(o.secs) }

// IsUTC reports whether the offset is zero.
func (o FixedOffset) IsUTC() bool { return o.secs == 0 }

// OffsetAt implements Zone.
func (o FixedOffset) OffsetAt(civil.DateTime) FixedOffset { return o }

// ResolveLocal implements Zone.
func (o FixedOffset) ResolveLocal(civil.DateTime) Resolution { return Single(o) }

// String formats the offset as "+hh:mm" or "+hh:mm:ss", with "+00:00"
// for UTC.
func (o FixedOffset) String() string {
	secs := o.secs
	sign := byte('+')
	if secs < 0 {
		sign = '-'
		secs = -secs
	}
	h, m, s := secs/3600, secs/60%60, secs%60
	if s != 0 {
		return fmt.Sprintf("%c%02d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%c%02d:%02d", sign, h, m)
}

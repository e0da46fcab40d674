// Copyright 2023 The Zoned Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package zoned provides a timezone-aware instant in time.
//
// A Time pairs a civil date-time that is always kept in UTC with the
// zone it is viewed through.  The UTC half is the value's identity:
// comparison, equality, and hashing consider it alone, so two Times in
// different zones are equal exactly when they name the same instant,
// even though they print differently.  The zone half decides what the
// local clock fields read and how the value formats.
//
// Times are immutable values.  Every mutating operation returns a new
// Time, and values may be shared freely between goroutines as long as
// the zone implementation is itself safe for concurrent reads.
package zoned

import (
	"encoding/binary"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"

	"go.zoned.dev/civil"
	"go.zoned.dev/tz"
)

var (
	// ErrOutOfRange means the result cannot be represented.
	ErrOutOfRange = errors.New("zoned: value out of range")

	// ErrNonexistentTime means a local reading was skipped by a zone
	// transition and names no instant.
	ErrNonexistentTime = errors.New("zoned: nonexistent local time")

	// ErrAmbiguousTime means a local reading was repeated by a zone
	// transition and names two instants.
	ErrAmbiguousTime = errors.New("zoned: ambiguous local time")
)

// A Time is an instant viewed through a timezone.  The zero value is
// the Unix epoch in UTC.
type Time struct {
	utc  civil.DateTime
	zone tz.Zone
	off  tz.FixedOffset
}

// Epoch is the Unix epoch, 1970-01-01T00:00:00Z.
var Epoch = Time{}

// Min and Max bound the representable instants.
var (
	Min = Time{utc: civil.MinDateTime}
	Max = Time{utc: civil.MaxDateTime}
)

// New builds a Time from a civil date-time already in UTC, viewed
// through zone.
func New(utc civil.DateTime, zone tz.Zone) Time {
	zone = normZone(zone)
	return Time{utc: utc, zone: zone, off: zone.OffsetAt(utc)}
}

// FromLocal interprets a wall-clock reading in zone.  It fails with
// ErrNonexistentTime or ErrAmbiguousTime when the zone's transitions
// leave the reading without a unique meaning.
func FromLocal(local civil.DateTime, zone tz.Zone) (Time, error) {
	zone = normZone(zone)
	res := zone.ResolveLocal(local)
	off, ok := res.Unique()
	if !ok {
		if res.IsNone() {
			return Time{}, ErrNonexistentTime
		}
		return Time{}, ErrAmbiguousTime
	}
	return fromLocalOffset(local, off, zone)
}

// FromLocalEarliest is like FromLocal but settles an ambiguous reading
// on the earlier of its two instants.
func FromLocalEarliest(local civil.DateTime, zone tz.Zone) (Time, error) {
	zone = normZone(zone)
	off, ok := zone.ResolveLocal(local).Earliest()
	if !ok {
		return Time{}, ErrNonexistentTime
	}
	return fromLocalOffset(local, off, zone)
}

// FromLocalLatest is like FromLocal but settles an ambiguous reading
// on the later of its two instants.
func FromLocalLatest(local civil.DateTime, zone tz.Zone) (Time, error) {
	zone = normZone(zone)
	off, ok := zone.ResolveLocal(local).Latest()
	if !ok {
		return Time{}, ErrNonexistentTime
	}
	return fromLocalOffset(local, off, zone)
}

func fromLocalOffset(local civil.DateTime, off tz.FixedOffset, zone tz.Zone) (Time, error) {
	utc, err := local.AddOffset(-off.Seconds())
	if err != nil {
		return Time{}, ErrOutOfRange
	}
	return Time{utc: utc, zone: zone, off: off}, nil
}

// FromUnix builds a Time from an epoch second count and a nanosecond
// part, viewed through zone.  The nanosecond part may exceed a whole
// second only on the 59th second of a minute, encoding a leap second.
func FromUnix(secs, nanos int64, zone tz.Zone) (Time, error) {
	utc, err := civil.FromUnix(secs, nanos)
	if err != nil {
		return Time{}, ErrOutOfRange
	}
	return New(utc, zone), nil
}

// FromUnixMilli builds a Time from an epoch millisecond count.
func FromUnixMilli(ms int64, zone tz.Zone) (Time, error) {
	utc, err := civil.FromUnixMilli(ms)
	if err != nil {
		return Time{}, ErrOutOfRange
	}
	return New(utc, zone), nil
}

// FromUnixMicro builds a Time from an epoch microsecond count.
func FromUnixMicro(us int64, zone tz.Zone) (Time, error) {
	utc, err := civil.FromUnixMicro(us)
	if err != nil {
		return Time{}, ErrOutOfRange
	}
	return New(utc, zone), nil
}

// FromUnixNano builds a Time from an epoch nanosecond count.
func FromUnixNano(ns int64, zone tz.Zone) (Time, error) {
	utc, err := civil.FromUnixNano(ns)
	if err != nil {
		return Time{}, ErrOutOfRange
	}
	return New(utc, zone), nil
}

// Now reads the platform clock, viewed through zone.
func Now(zone tz.Zone) Time {
	t, err := FromStdTime(time.Now())
	if err != nil {
		panic(err)
	}
	return t.In(zone)
}

// FromStdTime converts a standard library time.  The zone carries over
// when the location is part of the timezone database; a location with
// a fixed offset becomes a fixed-offset zone.
func FromStdTime(st time.Time) (Time, error) {
	utc, err := civil.FromUnix(st.Unix(), int64(st.Nanosecond()))
	if err != nil {
		return Time{}, ErrOutOfRange
	}
	return New(utc, tz.FromStdLocation(st.Location())), nil
}

// StdTime converts to a standard library time.  A leap second has no
// standard library representation and lands on the following second.
func (t Time) StdTime() time.Time {
	secs := t.utc.Unix()
	nanos := int64(t.utc.SubsecNanos())
	var loc *time.Location
	if l, ok := t.Zone().(tz.Location); ok {
		loc = l.StdLocation()
	} else {
		loc = time.FixedZone(t.off.String(), t.off.Seconds())
		if t.off.IsUTC() {
			loc = time.UTC
		}
	}
	return time.Unix(secs, nanos).In(loc)
}

// NaiveUTC returns the civil date-time in UTC that is the value's
// identity.
func (t Time) NaiveUTC() civil.DateTime { return t.utc }

// NaiveLocal returns the wall-clock reading in the value's zone.  It
// panics when shifting the instant by its offset leaves the
// representable range; values near Min and Max should be ranged-checked
// before their local fields are used.
func (t Time) NaiveLocal() civil.DateTime {
	local, err := t.utc.AddOffset(t.off.Seconds())
	if err != nil {
		panic("zoned: local time out of range")
	}
	return local
}

// overflowingLocal projects to local wall-clock time without a range
// check.  The result can lie one offset beyond Min or Max and must not
// escape the package.
func (t Time) overflowingLocal() civil.DateTime {
	return t.utc.OverflowingAddOffset(t.off.Seconds())
}

// Zone returns the zone the value is viewed through.
func (t Time) Zone() tz.Zone { return normZone(t.zone) }

// Offset returns the fixed offset in effect at the instant.
func (t Time) Offset() tz.FixedOffset { return t.off }

// In returns the same instant viewed through another zone.
func (t Time) In(zone tz.Zone) Time { return New(t.utc, zone) }

// UTC returns the same instant viewed through UTC.
func (t Time) UTC() Time { return New(t.utc, tz.UTC) }

// FixedOffset pins the value to its current offset, detaching it from
// future transitions of its zone.
func (t Time) FixedOffset() Time {
	return Time{utc: t.utc, zone: t.off, off: t.off}
}

// Local clock fields.  All of them read through NaiveLocal and share
// its panic on out-of-range projection.

func (t Time) Date() civil.Date           { return t.NaiveLocal().Date() }
func (t Time) TimeOfDay() civil.TimeOfDay { return t.NaiveLocal().TimeOfDay() }
func (t Time) Year() int                  { return t.NaiveLocal().Year() }
func (t Time) Month() civil.Month         { return t.NaiveLocal().Month() }
func (t Time) Day() int                   { return t.NaiveLocal().Day() }
func (t Time) Ordinal() int               { return t.NaiveLocal().Ordinal() }
func (t Time) Weekday() civil.Weekday     { return t.NaiveLocal().Weekday() }
func (t Time) ISOWeek() civil.ISOWeek     { return t.NaiveLocal().ISOWeek() }
func (t Time) Hour() int                  { return t.NaiveLocal().Hour() }
func (t Time) Minute() int                { return t.NaiveLocal().Minute() }
func (t Time) Second() int                { return t.NaiveLocal().Second() }
func (t Time) Nanosecond() int            { return t.NaiveLocal().Nanosecond() }
func (t Time) IsLeapSecond() bool         { return t.utc.IsLeapSecond() }

// Epoch counters delegate to the UTC identity.

func (t Time) Unix() int64              { return t.utc.Unix() }
func (t Time) UnixMilli() int64         { return t.utc.UnixMilli() }
func (t Time) UnixMicro() int64         { return t.utc.UnixMicro() }
func (t Time) UnixNano() (int64, error) { return t.utc.UnixNano() }
func (t Time) SubsecMillis() int        { return t.utc.SubsecMillis() }
func (t Time) SubsecMicros() int        { return t.utc.SubsecMicros() }
func (t Time) SubsecNanos() int         { return t.utc.SubsecNanos() }

// Equal reports whether t and u name the same instant.  The zones and
// offsets play no part.
func (t Time) Equal(u Time) bool { return t.utc == u.utc }

// Compare orders by instant alone.
func (t Time) Compare(u Time) int { return t.utc.Compare(u.utc) }

// Before reports whether the instant t is before u.
func (t Time) Before(u Time) bool { return t.Compare(u) < 0 }

// After reports whether the instant t is after u.
func (t Time) After(u Time) bool { return t.Compare(u) > 0 }

// Hash digests the instant.  Equal Times hash equally regardless of
// zone.
func (t Time) Hash() uint64 {
	var buf [12]byte
	binary.BigEndian.PutUint64(buf[:8], uint64(t.utc.Unix()))
	binary.BigEndian.PutUint32(buf[8:], uint32(t.utc.SubsecNanos()))
	return xxhash.Sum64(buf[:])
}

func normZone(zone tz.Zone) tz.Zone {
	if zone == nil {
		return tz.UTC
	}
	return zone
}

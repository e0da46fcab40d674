// Copyright 2023 The Zoned Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package civil

import "fmt"

// A TimeOfDay is a clock reading within a day, with nanosecond precision.
//
// The zero TimeOfDay is midnight.
//
// Leap seconds: a Nanosecond value in [1e9, 2e9) represents a positive leap
// second, the inserted 61st second of a minute. Arithmetic and subtraction
// assume that no leap second ever elapsed between two values, except that a
// value which itself encodes a leap second contributes exactly one. This
// asymmetry is deliberate; it lets leap-second readings round-trip without
// requiring a table of past and future leap seconds.
type TimeOfDay struct {
	secs  uint32 // seconds since midnight, 0..86399
	nanos uint32 // 0..1_999_999_999; >= 1e9 encodes a leap second
}

// Midnight is the zero TimeOfDay.
var Midnight = TimeOfDay{}

// EndOfDay is the latest representable non-leap TimeOfDay, 23:59:59.999999999.
var EndOfDay = TimeOfDay{secs: 86399, nanos: 999_999_999}

// TimeOfDayOf returns the TimeOfDay with the given hour, minute, second, and
// nanosecond. A nanosecond value in [1e9, 2e9) encodes a leap second.
func TimeOfDayOf(hour, min, sec, nanos int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("civil: hour %d out of range", hour)
	}
	if min < 0 || min > 59 {
		return TimeOfDay{}, fmt.Errorf("civil: minute %d out of range", min)
	}
	if sec < 0 || sec > 59 {
		return TimeOfDay{}, fmt.Errorf("civil: second %d out of range", sec)
	}
	if nanos < 0 || nanos >= 2_000_000_000 {
		return TimeOfDay{}, fmt.Errorf("civil: nanosecond %d out of range", nanos)
	}
	return TimeOfDay{
		secs:  uint32(hour*3600 + min*60 + sec),
		nanos: uint32(nanos),
	}, nil
}

// MustTimeOfDayOf is like TimeOfDayOf but panics on error.
func MustTimeOfDayOf(hour, min, sec, nanos int) TimeOfDay {
	t, err := TimeOfDayOf(hour, min, sec, nanos)
	if err != nil {
		panic(err)
	}
	return t
}

// Hour returns the hour, in the range 0 through 23.
func (t TimeOfDay) Hour() int { return int(t.secs / 3600) }

// Minute returns the minute, in the range 0 through 59.
func (t TimeOfDay) Minute() int { return int(t.secs / 60 % 60) }

// Second returns the second, in the range 0 through 59. During a leap second
// the reported second is still 59; the extra second lives in Nanosecond.
func (t TimeOfDay) Second() int { return int(t.secs % 60) }

// Nanosecond returns the nanosecond offset within the second. The value may
// reach 1,999,999,999 when the time encodes a leap second.
func (t TimeOfDay) Nanosecond() int { return int(t.nanos) }

// IsLeapSecond reports whether the time encodes a positive leap second.
func (t TimeOfDay) IsLeapSecond() bool { return t.nanos >= 1_000_000_000 }

// SecondsFromMidnight returns the number of non-leap seconds since midnight.
func (t TimeOfDay) SecondsFromMidnight() int { return int(t.secs) }

// WithHour returns the time with the hour changed.
func (t TimeOfDay) WithHour(hour int) (TimeOfDay, error) {
	return TimeOfDayOf(hour, t.Minute(), t.Second(), t.Nanosecond())
}

// WithMinute returns the time with the minute changed.
func (t TimeOfDay) WithMinute(min int) (TimeOfDay, error) {
	return TimeOfDayOf(t.Hour(), min, t.Second(), t.Nanosecond())
}

// WithSecond returns the time with the second changed. The nanosecond field
// is preserved, including a leap-second encoding.
func (t TimeOfDay) WithSecond(sec int) (TimeOfDay, error) {
	return TimeOfDayOf(t.Hour(), t.Minute(), sec, t.Nanosecond())
}

// WithNanosecond returns the time with the nanosecond offset changed.
// Values in [1e9, 2e9) encode a leap second.
func (t TimeOfDay) WithNanosecond(nanos int) (TimeOfDay, error) {
	return TimeOfDayOf(t.Hour(), t.Minute(), t.Second(), nanos)
}

// Sub returns the duration from u until t, assuming no leap second elapsed
// between them except those encoded by t or u themselves.
func (t TimeOfDay) Sub(u TimeOfDay) Delta {
	secs := int64(t.secs) - int64(u.secs)
	nanos := int64(t.nanos) - int64(u.nanos)

	// A leap second at the earlier endpoint has elapsed in full; one at the
	// later endpoint has not yet finished.
	switch {
	case t.secs > u.secs && u.nanos >= 1_000_000_000:
		secs++
	case t.secs < u.secs && t.nanos >= 1_000_000_000:
		secs--
	}
	return mustDelta(deltaOf(secs, nanos))
}

// Compare orders times of day field-wise; a leap second sorts after the
// second it extends.
func (t TimeOfDay) Compare(u TimeOfDay) int {
	switch {
	case t.secs != u.secs:
		if t.secs < u.secs {
			return -1
		}
		return 1
	case t.nanos != u.nanos:
		if t.nanos < u.nanos {
			return -1
		}
		return 1
	}
	return 0
}

// String returns an ISO 8601 representation such as "15:04:05.999999999".
// The subsecond part is omitted when zero; a leap second prints as second 60.
func (t TimeOfDay) String() string {
	sec := t.Second()
	nanos := t.Nanosecond()
	if nanos >= 1_000_000_000 {
		sec += 1 // prints as 60
		nanos -= 1_000_000_000
	}
	base := fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), sec)
	switch {
	case nanos == 0:
		return base
	case nanos%1_000_000 == 0:
		return fmt.Sprintf("%s.%03d", base, nanos/1_000_000)
	case nanos%1_000 == 0:
		return fmt.Sprintf("%s.%06d", base, nanos/1_000)
	}
	return fmt.Sprintf("%s.%09d", base, nanos)
}

// overflowingAdd adds a delta of dsecs seconds plus dnanos nanoseconds
// (dnanos in [0, 1e9)) to t and returns the new time of day together with the
// number of whole days carried.
//
// When t encodes a leap second, the addition first decides whether the delta
// escapes the inserted second. Leaving it forward consumes the remainder of
// the leap second as elapsed time; arithmetic that stays inside it moves only
// the nanosecond cursor.
func (t TimeOfDay) overflowingAdd(dsecs, dnanos int64) (TimeOfDay, int64) {
	secs := int64(t.secs)
	nanos := int64(t.nanos)

	if nanos >= 1_000_000_000 {
		rfrac := 2_000_000_000 - nanos // remainder of the inserted second, (0, 1e9]
		switch {
		case dsecs >= 1 || (dsecs == 0 && dnanos >= rfrac):
			// Forward escape: rfrac nanoseconds elapse inside the leap
			// second, then ordinary arithmetic continues from the start of
			// the next second.
			dnanos -= rfrac
			if dnanos < 0 {
				dnanos += 1_000_000_000
				dsecs--
			}
			secs++
			nanos = 0
		case dsecs <= -3 || (dsecs == -2 && dsecs*1_000_000_000+dnanos < -nanos):
			// Backward escape past the start of the extended second.
			dnanos += nanos
			for dnanos >= 1_000_000_000 {
				dnanos -= 1_000_000_000
				dsecs++
			}
			nanos = 0
		default:
			// The delta lands inside the extended second (or earlier within
			// second 59 itself); only the nanosecond cursor moves.
			return TimeOfDay{secs: uint32(secs), nanos: uint32(nanos + dsecs*1_000_000_000 + dnanos)}, 0
		}
	}

	nanos += dnanos
	if nanos >= 1_000_000_000 {
		nanos -= 1_000_000_000
		secs++
	}
	secs += dsecs
	days := floorDiv(secs, 86400)
	secs -= days * 86400
	return TimeOfDay{secs: uint32(secs), nanos: uint32(nanos)}, days
}

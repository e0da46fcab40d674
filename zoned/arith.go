// Copyright 2023 The Zoned Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zoned

import (
	"time"

	"go.zoned.dev/civil"
)

// Add advances the instant by an exact span of time.  The offset is
// recomputed, so adding across a zone transition lands on the correct
// local reading.
func (t Time) Add(d civil.Delta) (Time, error) {
	utc, err := t.utc.CheckedAdd(d)
	if err != nil {
		return Time{}, ErrOutOfRange
	}
	return New(utc, t.Zone()), nil
}

// Sub retreats the instant by an exact span of time.
func (t Time) Sub(d civil.Delta) (Time, error) {
	return t.Add(d.Neg())
}

// MustAdd is the panicking version of Add.
func (t Time) MustAdd(d civil.Delta) Time {
	nt, err := t.Add(d)
	if err != nil {
		panic("zoned: Time.Add out of range")
	}
	return nt
}

// MustSub is the panicking version of Sub.
func (t Time) MustSub(d civil.Delta) Time {
	nt, err := t.Sub(d)
	if err != nil {
		panic("zoned: Time.Sub out of range")
	}
	return nt
}

// AddStd advances the instant by a standard library duration.
func (t Time) AddStd(d time.Duration) (Time, error) {
	return t.Add(civil.FromStd(d))
}

// SubStd retreats the instant by a standard library duration.
func (t Time) SubStd(d time.Duration) (Time, error) {
	return t.Add(civil.FromStd(-d))
}

// Since reports the exact span from u to t, ignoring leap seconds
// unless one of the endpoints itself encodes one.
func (t Time) Since(u Time) civil.Delta {
	return t.utc.Sub(u.utc)
}

// AddMonths moves the local calendar by whole months, clamping the day
// of the month when the target month is shorter: January 31 plus one
// month is the last day of February.  The shifted local reading must
// exist uniquely in the zone.
func (t Time) AddMonths(n int64) (Time, error) {
	return t.mapLocal(func(local civil.DateTime) (civil.DateTime, error) {
		d, err := local.Date().AddMonths(n)
		if err != nil {
			return civil.DateTime{}, err
		}
		return d.At(local.TimeOfDay()), nil
	})
}

// MustAddMonths is the panicking version of AddMonths.
func (t Time) MustAddMonths(n int64) Time {
	nt, err := t.AddMonths(n)
	if err != nil {
		panic("zoned: Time.AddMonths out of range")
	}
	return nt
}

// AddDays moves the local calendar by whole days, keeping the clock
// reading.  Around a transition the same clock reading on another day
// may not exist, or may exist twice; both cases fail.
func (t Time) AddDays(n int64) (Time, error) {
	return t.mapLocal(func(local civil.DateTime) (civil.DateTime, error) {
		d, err := local.Date().AddDays(n)
		if err != nil {
			return civil.DateTime{}, err
		}
		return d.At(local.TimeOfDay()), nil
	})
}

// MustAddDays is the panicking version of AddDays.
func (t Time) MustAddDays(n int64) Time {
	nt, err := t.AddDays(n)
	if err != nil {
		panic("zoned: Time.AddDays out of range")
	}
	return nt
}

// YearsSince counts the whole years from base to t, flooring partial
// years.  It reports false when t precedes base.
func (t Time) YearsSince(base Time) (int, bool) {
	tl, bl := t.overflowingLocal(), base.overflowingLocal()
	years := tl.Year() - bl.Year()

	// A month and day not yet reached costs one year.
	tm, bm := tl.Month(), bl.Month()
	if tm < bm ||
		(tm == bm && tl.Day() < bl.Day()) ||
		(tm == bm && tl.Day() == bl.Day() &&
			tl.TimeOfDay().Compare(bl.TimeOfDay()) < 0) {
		years--
	}
	if years < 0 {
		return 0, false
	}
	return years, true
}

// Field setters.  Each replaces one local clock field and re-anchors
// the reading in the value's zone.  A reading that does not exist
// there, or exists twice, is an error rather than a silently shifted
// instant.

// WithYear replaces the local year.
func (t Time) WithYear(year int) (Time, error) {
	return t.mapLocal(func(local civil.DateTime) (civil.DateTime, error) {
		return local.WithYear(year)
	})
}

// WithMonth replaces the local month.
func (t Time) WithMonth(month civil.Month) (Time, error) {
	return t.mapLocal(func(local civil.DateTime) (civil.DateTime, error) {
		return local.WithMonth(month)
	})
}

// WithDay replaces the local day of the month.
func (t Time) WithDay(day int) (Time, error) {
	return t.mapLocal(func(local civil.DateTime) (civil.DateTime, error) {
		return local.WithDay(day)
	})
}

// WithOrdinal replaces the local day of the year.
func (t Time) WithOrdinal(ordinal int) (Time, error) {
	return t.mapLocal(func(local civil.DateTime) (civil.DateTime, error) {
		return local.WithOrdinal(ordinal)
	})
}

// WithHour replaces the local hour.
func (t Time) WithHour(hour int) (Time, error) {
	return t.mapLocal(func(local civil.DateTime) (civil.DateTime, error) {
		return local.WithHour(hour)
	})
}

// WithMinute replaces the local minute.
func (t Time) WithMinute(min int) (Time, error) {
	return t.mapLocal(func(local civil.DateTime) (civil.DateTime, error) {
		return local.WithMinute(min)
	})
}

// WithSecond replaces the local second.
func (t Time) WithSecond(sec int) (Time, error) {
	return t.mapLocal(func(local civil.DateTime) (civil.DateTime, error) {
		return local.WithSecond(sec)
	})
}

// WithNanosecond replaces the sub-second part.
func (t Time) WithNanosecond(nanos int) (Time, error) {
	return t.mapLocal(func(local civil.DateTime) (civil.DateTime, error) {
		return local.WithNanosecond(nanos)
	})
}

// mapLocal rewrites the local reading and re-resolves it against the
// value's zone.  The projection tolerates a reading just beyond the
// representable range so that edits near Min and Max can bring the
// value back inside; only the final instant is range-checked.
func (t Time) mapLocal(f func(civil.DateTime) (civil.DateTime, error)) (Time, error) {
	local, err := f(t.overflowingLocal())
	if err != nil {
		return Time{}, ErrOutOfRange
	}
	nt, err := FromLocal(local, t.Zone())
	if err != nil {
		return Time{}, err
	}
	if !nt.utc.InRange() {
		return Time{}, ErrOutOfRange
	}
	return nt, nil
}

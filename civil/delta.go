// Copyright 2023 The Zoned Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package civil

import (
	"fmt"
	"time"
)

// A Delta is an exact signed span of time, counted in seconds and
// nanoseconds. Unlike time.Duration it spans the full representable Date
// range, so the difference between any two DateTimes is always a valid Delta.
//
// The representation is normalized: the nanosecond part is always in
// [0, 1e9), so -1.5 seconds is stored as -2 seconds + 500ms.
type Delta struct {
	secs  int64
	nanos int32 // 0..999_999_999
}

// Delta bounds: exactly ±(1<<63 - 1) milliseconds, so conversions to whole
// milliseconds never overflow an int64 and Neg is total over the valid range.
// The minimum is the maximum's negation in normalized form.
const (
	maxDeltaSecs  = 9223372036854775807 / 1000
	maxDeltaNanos = 9223372036854775807 % 1000 * 1_000_000
	minDeltaSecs  = -maxDeltaSecs - 1
	minDeltaNanos = 1_000_000_000 - maxDeltaNanos
)

// DeltaOf returns a Delta of secs seconds plus nanos nanoseconds. The two
// components may have different signs; the result is their exact sum.
func DeltaOf(secs, nanos int64) (Delta, error) {
	return deltaOf(secs, nanos)
}

func deltaOf(secs, nanos int64) (Delta, error) {
	secs += nanos / 1_000_000_000
	nanos %= 1_000_000_000
	if nanos < 0 {
		nanos += 1_000_000_000
		secs--
	}
	if secs > maxDeltaSecs || (secs == maxDeltaSecs && nanos > maxDeltaNanos) ||
		secs < minDeltaSecs || (secs == minDeltaSecs && nanos < minDeltaNanos) {
		return Delta{}, fmt.Errorf("civil: delta out of range")
	}
	return Delta{secs: secs, nanos: int32(nanos)}, nil
}

func mustDelta(d Delta, err error) Delta {
	if err != nil {
		panic(err)
	}
	return d
}

// Seconds returns a Delta of n seconds. It panics if n is outside the Delta
// range; use DeltaOf for a checked construction.
func Seconds(n int64) Delta { return mustDelta(deltaOf(n, 0)) }

// Minutes returns a Delta of n minutes.
func Minutes(n int64) Delta { return Seconds(n * 60) }

// Hours returns a Delta of n hours.
func Hours(n int64) Delta { return Seconds(n * 3600) }

// Milliseconds returns a Delta of n milliseconds.
func Milliseconds(n int64) Delta {
	return mustDelta(deltaOf(n/1000, n%1000*1_000_000))
}

// Microseconds returns a Delta of n microseconds.
func Microseconds(n int64) Delta {
	return mustDelta(deltaOf(n/1_000_000, n%1_000_000*1000))
}

// Nanoseconds returns a Delta of n nanoseconds.
func Nanoseconds(n int64) Delta {
	return mustDelta(deltaOf(n/1_000_000_000, n%1_000_000_000))
}

// FromStd converts a time.Duration to a Delta. The conversion is total: every
// time.Duration value fits in a Delta.
func FromStd(d time.Duration) Delta {
	return Nanoseconds(int64(d))
}

// Std converts the Delta to a time.Duration. It reports an error if the value
// does not fit in time.Duration's int64-nanosecond range.
func (d Delta) Std() (time.Duration, error) {
	ns, ok := d.totalNanos()
	if !ok {
		return 0, fmt.Errorf("civil: delta overflows time.Duration")
	}
	return time.Duration(ns), nil
}

// Secs returns the number of whole seconds in d, truncated towards zero.
func (d Delta) Secs() int64 {
	if d.secs < 0 && d.nanos > 0 {
		return d.secs + 1
	}
	return d.secs
}

// SubsecNanos returns the sub-second component of d, in nanoseconds, with the
// same sign as d.
func (d Delta) SubsecNanos() int32 {
	if d.secs < 0 && d.nanos > 0 {
		return d.nanos - 1_000_000_000
	}
	return d.nanos
}

// split returns the normalized components: seconds that may be negative, and
// nanoseconds in [0, 1e9).
func (d Delta) split() (int64, int64) { return d.secs, int64(d.nanos) }

func (d Delta) totalNanos() (int64, bool) {
	const q = 9223372036 // MaxInt64 / 1e9
	if d.secs > q || d.secs < -q-1 {
		return 0, false
	}
	if d.secs >= 0 {
		if d.secs == q && d.nanos > 854775807 {
			return 0, false
		}
		return d.secs*1_000_000_000 + int64(d.nanos), true
	}
	if d.secs == -q-1 && d.nanos < 145224192 {
		return 0, false
	}
	return (d.secs+1)*1_000_000_000 + (int64(d.nanos) - 1_000_000_000), true
}

// Add returns the sum d+u, reporting an error on overflow.
func (d Delta) Add(u Delta) (Delta, error) {
	return deltaOf(d.secs+u.secs, int64(d.nanos)+int64(u.nanos))
}

// Neg returns -d.
func (d Delta) Neg() Delta {
	return mustDelta(deltaOf(-d.secs, -int64(d.nanos)))
}

// IsZero reports whether d is the zero Delta.
func (d Delta) IsZero() bool { return d.secs == 0 && d.nanos == 0 }

// Compare returns -1, 0, or +1 depending on whether d is shorter than, equal
// to, or longer than u.
func (d Delta) Compare(u Delta) int {
	switch {
	case d.secs != u.secs:
		if d.secs < u.secs {
			return -1
		}
		return 1
	case d.nanos != u.nanos:
		if d.nanos < u.nanos {
			return -1
		}
		return 1
	}
	return 0
}

// String renders the delta in time.Duration notation when it fits, and as
// "<n>s<fraction>" seconds notation otherwise.
func (d Delta) String() string {
	if std, err := d.Std(); err == nil {
		return std.String()
	}
	secs := d.Secs()
	if ns := d.SubsecNanos(); ns != 0 {
		if ns < 0 {
			ns = -ns
		}
		return fmt.Sprintf("%d.%09ds", secs, ns)
	}
	return fmt.Sprintf("%ds", secs)
}

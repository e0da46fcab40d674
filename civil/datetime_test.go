// Copyright 2023 The Zoned Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package civil

import (
	"math"
	"testing"
	"time"
)

func TestUnixRoundTrip(t *testing.T) {
	for _, secs := range []int64{0, 1, -1, 86399, 86400, -86400, 1431648000, -2208988800, 253402300799} {
		for _, nanos := range []int64{0, 1, 999_999_999} {
			dt, err := FromUnix(secs, nanos)
			if err != nil {
				t.Errorf("FromUnix(%d, %d): %v", secs, nanos, err)
				continue
			}
			if got := dt.Unix(); got != secs {
				t.Errorf("FromUnix(%d, %d).Unix() = %d", secs, nanos, got)
			}
			if got := dt.SubsecNanos(); int64(got) != nanos {
				t.Errorf("FromUnix(%d, %d).SubsecNanos() = %d", secs, nanos, got)
			}
		}
	}
}

func TestFromUnixLeapValidation(t *testing.T) {
	// 2015-06-30T23:59:59 is second 59 of its minute; a leap nanosecond
	// payload is allowed there and nowhere else.
	const leapEve = 1435708799
	if _, err := FromUnix(leapEve, 1_500_000_000); err != nil {
		t.Errorf("FromUnix(%d, 1.5e9): %v", leapEve, err)
	}
	if _, err := FromUnix(leapEve-1, 1_500_000_000); err == nil {
		t.Errorf("FromUnix(%d, 1.5e9) succeeded on second 58, want error", leapEve-1)
	}
	if _, err := FromUnix(leapEve, 2_000_000_000); err == nil {
		t.Error("FromUnix with nanos = 2e9 succeeded, want error")
	}
	if _, err := FromUnix(leapEve, -1); err == nil {
		t.Error("FromUnix with negative nanos succeeded, want error")
	}
}

func TestUnixMilliMicro(t *testing.T) {
	dt := MustDateTimeOf(2000, January, 12, 1, 2, 3, 4_000_000)
	if got := dt.UnixMilli(); got != 947638923004 {
		t.Errorf("UnixMilli = %d, want 947638923004", got)
	}
	back, err := FromUnixMilli(947638923004)
	if err != nil || back != dt {
		t.Errorf("FromUnixMilli round trip = %v, %v", back, err)
	}

	dt = MustDateTimeOf(2001, September, 9, 1, 46, 40, 555_000)
	if got := dt.UnixMicro(); got != 1_000_000_000_000_555 {
		t.Errorf("UnixMicro = %d, want 1000000000000555", got)
	}
	back, err = FromUnixMicro(1_000_000_000_000_555)
	if err != nil || back != dt {
		t.Errorf("FromUnixMicro round trip = %v, %v", back, err)
	}

	// Negative timestamps floor-divide.
	dt = MustDateTimeOf(1969, December, 31, 23, 59, 59, 900_000_000)
	if got := dt.UnixMilli(); got != -100 {
		t.Errorf("UnixMilli = %d, want -100", got)
	}
}

func TestUnixNanoBounds(t *testing.T) {
	min := MustDateTimeOf(1677, September, 21, 0, 12, 43, 145224192)
	max := MustDateTimeOf(2262, April, 11, 23, 47, 16, 854775807)

	if got, err := min.UnixNano(); err != nil || got != math.MinInt64 {
		t.Errorf("min.UnixNano() = %d, %v; want MinInt64", got, err)
	}
	if got, err := max.UnixNano(); err != nil || got != math.MaxInt64 {
		t.Errorf("max.UnixNano() = %d, %v; want MaxInt64", got, err)
	}

	under, _ := MustDateTimeOf(1677, September, 21, 0, 12, 43, 145224191), error(nil)
	if _, err := under.UnixNano(); err == nil {
		t.Error("UnixNano one nanosecond below the range succeeded, want error")
	}
	over := MustDateTimeOf(2262, April, 11, 23, 47, 16, 854775808)
	if _, err := over.UnixNano(); err == nil {
		t.Error("UnixNano one nanosecond above the range succeeded, want error")
	}

	for _, ns := range []int64{0, 1_000_000_444, math.MinInt64, math.MaxInt64} {
		dt, err := FromUnixNano(ns)
		if err != nil {
			t.Errorf("FromUnixNano(%d): %v", ns, err)
			continue
		}
		got, err := dt.UnixNano()
		if err != nil || got != ns {
			t.Errorf("FromUnixNano(%d).UnixNano() = %d, %v", ns, got, err)
		}
	}
}

func TestCheckedAdd(t *testing.T) {
	base := MustDateTimeOf(2014, May, 6, 7, 8, 9, 0)
	for _, test := range []struct {
		d    Delta
		want DateTime
	}{
		{Seconds(3600 + 60 + 1), MustDateTimeOf(2014, May, 6, 8, 9, 10, 0)},
		{Seconds(-(3600 + 60 + 1)), MustDateTimeOf(2014, May, 6, 6, 7, 8, 0)},
		{Seconds(86399), MustDateTimeOf(2014, May, 7, 7, 8, 8, 0)},
		{Seconds(86_400 * 10), MustDateTimeOf(2014, May, 16, 7, 8, 9, 0)},
		{Seconds(-86_400 * 10), MustDateTimeOf(2014, April, 26, 7, 8, 9, 0)},
		{Nanoseconds(123_456_789), MustDateTimeOf(2014, May, 6, 7, 8, 9, 123_456_789)},
		{Nanoseconds(-123_456_789), MustDateTimeOf(2014, May, 6, 7, 8, 8, 876_543_211)},
	} {
		got, err := base.CheckedAdd(test.d)
		if err != nil {
			t.Errorf("%v.CheckedAdd(%v): %v", base, test.d, err)
			continue
		}
		if got != test.want {
			t.Errorf("%v.CheckedAdd(%v) = %v, want %v", base, test.d, got, test.want)
		}
		back, err := got.CheckedSub(test.d)
		if err != nil || back != base {
			t.Errorf("CheckedSub did not invert CheckedAdd: %v, %v", back, err)
		}
	}
}

func TestCheckedAddRange(t *testing.T) {
	if _, err := MaxDateTime.CheckedAdd(Nanoseconds(1)); err == nil {
		t.Error("MaxDateTime + 1ns succeeded, want error")
	}
	if _, err := MinDateTime.CheckedAdd(Nanoseconds(-1)); err == nil {
		t.Error("MinDateTime - 1ns succeeded, want error")
	}
	if got, err := MaxDateTime.CheckedAdd(Delta{}); err != nil || got != MaxDateTime {
		t.Errorf("MaxDateTime + 0 = %v, %v", got, err)
	}
}

func TestLeapSecondArithmetic(t *testing.T) {
	// 23:59:60.5 on a leap-second day.
	leap := MustDateTimeOf(2015, June, 30, 23, 59, 59, 1_500_000_000)

	// Small forward step inside the inserted second.
	got, err := leap.CheckedAdd(Nanoseconds(200_000_000))
	if err != nil || got != MustDateTimeOf(2015, June, 30, 23, 59, 59, 1_700_000_000) {
		t.Errorf("leap + 0.2s = %v, %v", got, err)
	}

	// Escaping forward: the remaining half second of the inserted second
	// elapses, then one more half second of ordinary time.
	got, err = leap.CheckedAdd(Seconds(1))
	if err != nil || got != MustDateTimeOf(2015, July, 1, 0, 0, 0, 500_000_000) {
		t.Errorf("leap + 1s = %v, %v", got, err)
	}

	// Escaping backward past the start of second 59.
	got, err = leap.CheckedAdd(Seconds(-2))
	if err != nil || got != MustDateTimeOf(2015, June, 30, 23, 59, 58, 500_000_000) {
		t.Errorf("leap - 2s = %v, %v", got, err)
	}
}

func TestSubLeapAsymmetry(t *testing.T) {
	// Subtraction assumes no elapsed leap seconds, even across the real
	// 2015-06-30 leap-second boundary.
	a := MustDateTimeOf(2015, July, 1, 0, 0, 1, 0)
	b := MustDateTimeOf(2015, June, 30, 23, 59, 58, 0)
	if got := a.Sub(b); got.Compare(Seconds(3)) != 0 {
		t.Errorf("across leap date: Sub = %v, want 3s", got)
	}

	// A leap second endpoint within the same minute contributes its extra
	// nanoseconds directly.
	leap := MustDateTimeOf(2015, June, 30, 23, 59, 59, 1_100_000_000)
	before := MustDateTimeOf(2015, June, 30, 23, 59, 59, 100_000_000)
	if got := leap.Sub(before); got.Compare(Seconds(1)) != 0 {
		t.Errorf("leap - before = %v, want 1s", got)
	}

	// Crossing out of a leap-second endpoint counts exactly one inserted
	// second: the extended second shares its timestamp with second 59.
	after := MustDateTimeOf(2015, July, 1, 0, 0, 1, 0)
	if got := after.Sub(leap); got.Compare(Nanoseconds(900_000_000)) != 0 {
		t.Errorf("after - leap = %v, want 0.9s", got)
	}
}

func TestAddOffset(t *testing.T) {
	dt := MustDateTimeOf(2015, May, 15, 2, 0, 0, 0)
	got, err := dt.AddOffset(-3 * 3600)
	if err != nil || got != MustDateTimeOf(2015, May, 14, 23, 0, 0, 0) {
		t.Errorf("AddOffset(-3h) = %v, %v", got, err)
	}
	if _, err := MaxDateTime.AddOffset(3600); err == nil {
		t.Error("MaxDateTime.AddOffset(+1h) succeeded, want error")
	}
	spill := MaxDateTime.OverflowingAddOffset(3600)
	if spill.InRange() {
		t.Errorf("OverflowingAddOffset result %v unexpectedly in range", spill)
	}
}

func TestDeltaStd(t *testing.T) {
	d := FromStd(90*time.Minute + 30*time.Second)
	if d.Compare(Seconds(5430)) != 0 {
		t.Errorf("FromStd = %v, want 5430s", d)
	}
	std, err := d.Std()
	if err != nil || std != 90*time.Minute+30*time.Second {
		t.Errorf("Std round trip = %v, %v", std, err)
	}
	if _, err := Seconds(maxDeltaSecs).Std(); err == nil {
		t.Error("Std of a huge delta succeeded, want error")
	}

	neg := FromStd(-time.Second - 500*time.Millisecond)
	if neg.Secs() != -1 || neg.SubsecNanos() != -500_000_000 {
		t.Errorf("negative delta components = %d, %d", neg.Secs(), neg.SubsecNanos())
	}
}

func TestDeltaBounds(t *testing.T) {
	// The extreme values are exactly ±(1<<63 - 1) milliseconds, so every
	// valid Delta negates to another valid Delta.
	max, err := DeltaOf(maxDeltaSecs, maxDeltaNanos)
	if err != nil {
		t.Fatalf("DeltaOf(max): %v", err)
	}
	min := max.Neg()
	if min.Neg() != max {
		t.Errorf("Neg(Neg(max)) = %v, want %v", min.Neg(), max)
	}
	if got, err := min.Add(Nanoseconds(-1)); err == nil {
		t.Errorf("min - 1ns = %v, want error", got)
	}
	if got, err := DeltaOf(maxDeltaSecs, maxDeltaNanos+1); err == nil {
		t.Errorf("DeltaOf beyond max = %v, want error", got)
	}
	if got, err := Milliseconds(1<<63 - 1).Add(Milliseconds(1)); err == nil {
		t.Errorf("max ms + 1ms = %v, want error", got)
	}

	// A nanosecond carry out of Add stays normalized.
	sum, err := Nanoseconds(600_000_000).Add(Nanoseconds(600_000_000))
	if err != nil || sum.Secs() != 1 || sum.SubsecNanos() != 200_000_000 {
		t.Errorf("0.6s + 0.6s = %v (%v), want 1.2s", sum, err)
	}
}

func TestDateTimeString(t *testing.T) {
	dt := MustDateTimeOf(2015, May, 15, 1, 0, 0, 0)
	if got := dt.String(); got != "2015-05-15 01:00:00" {
		t.Errorf("String = %q", got)
	}
	leap := MustDateTimeOf(2015, June, 30, 23, 59, 59, 1_250_000_000)
	if got := leap.String(); got != "2015-06-30 23:59:60.250" {
		t.Errorf("leap String = %q", got)
	}
}

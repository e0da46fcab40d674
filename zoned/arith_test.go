// Copyright 2023 The Zoned Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zoned_test

import (
	"testing"
	_ "time/tzdata"

	"go.zoned.dev/civil"
	"go.zoned.dev/tz"
	"go.zoned.dev/zoned"
)

func TestAddDelta(t *testing.T) {
	ny := tz.MustLoadLocation("America/New_York")

	// One exact hour across the spring-forward transition: the clock
	// jumps from 01:30 EST to 03:30 EDT.
	before, err := zoned.FromLocal(civil.MustDateTimeOf(2016, civil.March, 13, 1, 30, 0, 0), ny)
	if err != nil {
		t.Fatal(err)
	}
	after, err := before.Add(civil.Hours(1))
	if err != nil {
		t.Fatal(err)
	}
	if after.Hour() != 3 || after.Minute() != 30 {
		t.Errorf("after = %v, want 03:30 local", after)
	}
	if after.Offset().Seconds() != -4*3600 {
		t.Errorf("offset = %v, want EDT", after.Offset())
	}
	if d := after.Since(before); d.Compare(civil.Hours(1)) != 0 {
		t.Errorf("Since = %v, want 1h", d)
	}

	back, err := after.Sub(civil.Hours(1))
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(before) {
		t.Errorf("Sub did not invert Add")
	}
}

func TestAddDeltaRange(t *testing.T) {
	if _, err := zoned.Max.Add(civil.Seconds(1)); err != zoned.ErrOutOfRange {
		t.Errorf("Max + 1s: err = %v", err)
	}
	if _, err := zoned.Min.Sub(civil.Nanoseconds(1)); err != zoned.ErrOutOfRange {
		t.Errorf("Min - 1ns: err = %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustAdd did not panic")
		}
	}()
	zoned.Max.MustAdd(civil.Seconds(1))
}

func TestAddMonthsClamp(t *testing.T) {
	for _, test := range []struct {
		start civil.DateTime
		want  civil.DateTime
	}{
		{
			civil.MustDateTimeOf(2024, civil.January, 31, 12, 0, 0, 0),
			civil.MustDateTimeOf(2024, civil.February, 29, 12, 0, 0, 0),
		},
		{
			civil.MustDateTimeOf(2023, civil.January, 31, 12, 0, 0, 0),
			civil.MustDateTimeOf(2023, civil.February, 28, 12, 0, 0, 0),
		},
	} {
		zt, err := zoned.New(test.start, tz.UTC).AddMonths(1)
		if err != nil {
			t.Fatal(err)
		}
		if got := zt.NaiveUTC(); got != test.want {
			t.Errorf("%v + 1mo = %v, want %v", test.start, got, test.want)
		}
	}
}

func TestAddDaysAcrossTransition(t *testing.T) {
	ny := tz.MustLoadLocation("America/New_York")

	// Keeping the 02:30 reading one day forward lands in the gap.
	sat, err := zoned.FromLocal(civil.MustDateTimeOf(2016, civil.March, 12, 2, 30, 0, 0), ny)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sat.AddDays(1); err != zoned.ErrNonexistentTime {
		t.Errorf("AddDays into gap: err = %v", err)
	}

	// A 12:00 reading crosses the same transition cleanly, and the
	// elapsed time is 23 real hours.
	noon, err := zoned.FromLocal(civil.MustDateTimeOf(2016, civil.March, 12, 12, 0, 0, 0), ny)
	if err != nil {
		t.Fatal(err)
	}
	next, err := noon.AddDays(1)
	if err != nil {
		t.Fatal(err)
	}
	if next.Hour() != 12 {
		t.Errorf("next day reads %d:00", next.Hour())
	}
	if d := next.Since(noon); d.Compare(civil.Hours(23)) != 0 {
		t.Errorf("elapsed = %v, want 23h", d)
	}
}

func TestWithHourGap(t *testing.T) {
	ny := tz.MustLoadLocation("America/New_York")
	zt, err := zoned.FromLocal(civil.MustDateTimeOf(2016, civil.March, 13, 1, 30, 0, 0), ny)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := zt.WithHour(2); err != zoned.ErrNonexistentTime {
		t.Errorf("WithHour into gap: err = %v", err)
	}
	moved, err := zt.WithHour(8)
	if err != nil {
		t.Fatal(err)
	}
	if moved.Hour() != 8 || moved.Offset().Seconds() != -4*3600 {
		t.Errorf("moved = %v offset %v", moved, moved.Offset())
	}
}

func TestWithFieldAmbiguous(t *testing.T) {
	ny := tz.MustLoadLocation("America/New_York")
	zt, err := zoned.FromLocal(civil.MustDateTimeOf(2016, civil.November, 6, 0, 30, 0, 0), ny)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := zt.WithHour(1); err != zoned.ErrAmbiguousTime {
		t.Errorf("WithHour into fold: err = %v", err)
	}
}

func TestWithFieldInvalid(t *testing.T) {
	zt := utcAt(2015, civil.February, 10, 12, 0, 0, 0)
	if _, err := zt.WithDay(30); err == nil {
		t.Error("February 30 accepted")
	}
	if _, err := zt.WithMonth(civil.Month(13)); err == nil {
		t.Error("month 13 accepted")
	}
	if _, err := zt.WithHour(24); err == nil {
		t.Error("hour 24 accepted")
	}
	moved, err := zt.WithYear(2016)
	if err != nil {
		t.Fatal(err)
	}
	if moved.Year() != 2016 {
		t.Errorf("year = %d", moved.Year())
	}
}

func TestYearsSince(t *testing.T) {
	base := utcAt(2000, civil.February, 29, 12, 0, 0, 0)

	for _, test := range []struct {
		at   zoned.Time
		want int
		ok   bool
	}{
		{utcAt(2001, civil.February, 28, 12, 0, 0, 0), 0, true},
		{utcAt(2001, civil.March, 1, 12, 0, 0, 0), 1, true},
		{utcAt(2004, civil.February, 29, 12, 0, 0, 0), 4, true},
		{utcAt(2004, civil.February, 29, 11, 0, 0, 0), 3, true},
		{utcAt(2000, civil.February, 29, 12, 0, 0, 0), 0, true},
		{utcAt(1999, civil.December, 31, 12, 0, 0, 0), 0, false},
	} {
		got, ok := test.at.YearsSince(base)
		if got != test.want || ok != test.ok {
			t.Errorf("YearsSince at %v = %d, %v; want %d, %v",
				test.at, got, ok, test.want, test.ok)
		}
	}
}

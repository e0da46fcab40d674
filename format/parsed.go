// Copyright 2023 The Zoned Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"go.zoned.dev/civil"
)

// field indexes the slots of a Parsed.
type field int

const (
	fYear field = iota
	fYearDiv100
	fYearMod100
	fIsoYear
	fIsoYearMod100
	fMonth
	fDay
	fWeekFromSun
	fWeekFromMon
	fIsoWeek
	fWeekday // 0=Sunday..6=Saturday
	fOrdinal
	fHourDiv12 // 0 or 1
	fHourMod12 // 0..11
	fMinute
	fSecond // 0..60, 60 is a leap second
	fNanosecond
	fTimestamp
	fOffset // seconds east of UTC
	numFields
)

// A Parsed accumulates date-time fields scattered through an input.
// Every setter cross-checks against fields already recorded, so an
// input that mentions the same quantity twice must agree with itself.
// Resolution into concrete values happens only on request, and only
// then are missing fields or irreconcilable combinations reported.
type Parsed struct {
	set  uint32
	vals [numFields]int64
}

func (p *Parsed) has(f field) bool { return p.set&(1<<uint(f)) != 0 }

func (p *Parsed) get(f field) (int64, bool) {
	return p.vals[f], p.has(f)
}

// setField records one field value.  A conflicting earlier value for
// the same field yields ErrImpossible.
func (p *Parsed) setField(f field, v int64) error {
	if p.has(f) {
		if p.vals[f] != v {
			return ErrImpossible
		}
		return nil
	}
	p.set |= 1 << uint(f)
	p.vals[f] = v
	return nil
}

// setHour records a 24-hour reading as its 12-hour halves.
func (p *Parsed) setHour(v int64) error {
	if err := p.setField(fHourDiv12, v/12); err != nil {
		return err
	}
	return p.setField(fHourMod12, v%12)
}

// OffsetSeconds reports the recorded UTC offset, if any.
func (p *Parsed) OffsetSeconds() (int, bool) {
	v, ok := p.get(fOffset)
	return int(v), ok
}

// HasLeapSecond reports whether the input spelled out second sixty.
func (p *Parsed) HasLeapSecond() bool {
	v, ok := p.get(fSecond)
	return ok && v == 60
}

// year combines the full, century, and two-digit year fields into one
// value, or reports that no year was given.
func (p *Parsed) year(full, div, mod field) (int64, bool, error) {
	y, hasY := p.get(full)
	var q int64
	hasQ := false
	if div >= 0 {
		q, hasQ = p.get(div)
	}
	r, hasR := p.get(mod)

	switch {
	case hasY:
		if hasQ && floorDiv64(y, 100) != q {
			return 0, false, ErrImpossible
		}
		if hasR && floorMod64(y, 100) != r {
			return 0, false, ErrImpossible
		}
		return y, true, nil
	case hasQ && hasR:
		if q < 0 || r < 0 || r >= 100 {
			return 0, false, ErrOutOfRange
		}
		return q*100 + r, true, nil
	case hasR:
		// A bare two-digit year follows the POSIX convention.
		if r < 0 || r >= 100 {
			return 0, false, ErrOutOfRange
		}
		if r < 70 {
			return 2000 + r, true, nil
		}
		return 1900 + r, true, nil
	case hasQ:
		return 0, false, ErrNotEnough
	}
	return 0, false, nil
}

// Date resolves the recorded fields to a calendar date.
//
// A date is determined, in order of preference, by year-month-day,
// year and ordinal day, ISO week-date, or year, week number, and
// weekday.  Whatever strategy wins, every other recorded field must
// agree with the result.
func (p *Parsed) Date() (civil.Date, error) {
	year, hasYear, err := p.year(fYear, fYearDiv100, fYearMod100)
	if err != nil {
		return civil.Date{}, err
	}
	isoYear, hasIsoYear, err := p.year(fIsoYear, -1, fIsoYearMod100)
	if err != nil {
		return civil.Date{}, err
	}

	month, hasMonth := p.get(fMonth)
	day, hasDay := p.get(fDay)
	ordinal, hasOrdinal := p.get(fOrdinal)
	isoWeek, hasIsoWeek := p.get(fIsoWeek)
	weekday, hasWeekday := p.get(fWeekday)
	weekSun, hasWeekSun := p.get(fWeekFromSun)
	weekMon, hasWeekMon := p.get(fWeekFromMon)

	var d civil.Date
	switch {
	case hasYear && hasMonth && hasDay:
		d, err = civil.DateOf(int(year), civil.Month(month), int(day))
	case hasYear && hasOrdinal:
		d, err = civil.DateOfOrdinal(int(year), int(ordinal))
	case hasIsoYear && hasIsoWeek && hasWeekday:
		d, err = civil.DateOfISOWeek(int(isoYear), int(isoWeek), civil.Weekday(weekday))
	case hasYear && hasWeekSun && hasWeekday:
		d, err = dateOfWeekNumber(int(year), int(weekSun), civil.Weekday(weekday), false)
	case hasYear && hasWeekMon && hasWeekday:
		d, err = dateOfWeekNumber(int(year), int(weekMon), civil.Weekday(weekday), true)
	default:
		return civil.Date{}, ErrNotEnough
	}
	if err != nil {
		return civil.Date{}, ErrOutOfRange
	}

	// Cross-check everything the input mentioned.
	iso := d.ISOWeek()
	ok := true
	ok = ok && (!hasYear || d.Year() == int(year))
	ok = ok && (!hasMonth || d.Month() == civil.Month(month))
	ok = ok && (!hasDay || d.Day() == int(day))
	ok = ok && (!hasOrdinal || d.Ordinal() == int(ordinal))
	ok = ok && (!hasWeekday || d.Weekday() == civil.Weekday(weekday))
	ok = ok && (!hasIsoYear || iso.Year == int(isoYear))
	ok = ok && (!hasIsoWeek || iso.Week == int(isoWeek))
	ok = ok && (!hasWeekSun || weekNumber(d, false) == int(weekSun))
	ok = ok && (!hasWeekMon || weekNumber(d, true) == int(weekMon))
	if !ok {
		return civil.Date{}, ErrImpossible
	}
	return d, nil
}

// TimeOfDay resolves the recorded fields to a time of day.  The hour
// and minute are required; seconds and nanoseconds default to zero,
// though a fraction without a whole second is rejected.
func (p *Parsed) TimeOfDay() (civil.TimeOfDay, error) {
	hd, hasHd := p.get(fHourDiv12)
	hm, hasHm := p.get(fHourMod12)
	if !hasHd || !hasHm {
		return civil.TimeOfDay{}, ErrNotEnough
	}
	if hd < 0 || hd > 1 || hm < 0 || hm > 11 {
		return civil.TimeOfDay{}, ErrOutOfRange
	}
	hour := int(hd*12 + hm)

	minute, hasMinute := p.get(fMinute)
	if !hasMinute {
		return civil.TimeOfDay{}, ErrNotEnough
	}

	nano, hasNano := p.get(fNanosecond)
	sec, hasSec := p.get(fSecond)
	if !hasSec {
		if hasNano {
			return civil.TimeOfDay{}, ErrNotEnough
		}
		sec = 0
	}
	if sec == 60 {
		// Leap seconds ride on the 59th second.
		sec, nano = 59, nano+1_000_000_000
	}

	t, err := civil.TimeOfDayOf(hour, int(minute), int(sec), int(nano))
	if err != nil {
		return civil.TimeOfDay{}, ErrOutOfRange
	}
	return t, nil
}

// DateTime resolves the recorded fields to a local civil date-time
// paired with its UTC offset.  The offset must have been recorded.
//
// When both clock fields and an epoch timestamp appear, they must
// describe the same instant.  A timestamp alone also suffices, as long
// as any other recorded fields agree with the instant it names.
func (p *Parsed) DateTime() (civil.DateTime, int, error) {
	off, hasOff := p.OffsetSeconds()
	if !hasOff {
		return civil.DateTime{}, 0, ErrNotEnough
	}
	dt, err := p.resolveLocal(off)
	if err != nil {
		return civil.DateTime{}, 0, err
	}
	return dt, off, nil
}

func (p *Parsed) resolveLocal(off int) (civil.DateTime, error) {
	ts, hasTs := p.get(fTimestamp)

	d, derr := p.Date()
	t, terr := p.TimeOfDay()
	if derr == nil && terr == nil {
		dt := d.At(t)
		if hasTs && dt.Unix()-int64(off) != ts {
			return civil.DateTime{}, ErrImpossible
		}
		return dt, nil
	}

	if hasTs {
		return p.localFromTimestamp(ts, off)
	}
	if derr != nil && derr != ErrNotEnough {
		return civil.DateTime{}, derr
	}
	if terr != nil && terr != ErrNotEnough {
		return civil.DateTime{}, terr
	}
	return civil.DateTime{}, ErrNotEnough
}

// localFromTimestamp reconstructs the local clock reading from an
// epoch second count, then checks it against every recorded field.
func (p *Parsed) localFromTimestamp(ts int64, off int) (civil.DateTime, error) {
	nano, _ := p.get(fNanosecond)
	if p.HasLeapSecond() {
		nano += 1_000_000_000
	}
	dt, err := civil.FromUnix(ts+int64(off), nano)
	if err != nil {
		return civil.DateTime{}, ErrOutOfRange
	}

	check := Parsed{}
	check.recordDate(dt.Date())
	check.recordTime(dt.TimeOfDay())
	for f := fYear; f < fTimestamp; f++ {
		if v, ok := p.get(f); ok && check.vals[f] != v {
			// The text spelled second sixty; the rebuilt clock says 59.
			if f == fSecond && v == 60 && check.vals[f] == 59 {
				continue
			}
			if f == fNanosecond && dt.IsLeapSecond() &&
				check.vals[f] == v+1_000_000_000 {
				continue
			}
			return civil.DateTime{}, ErrImpossible
		}
	}
	return dt, nil
}

func (p *Parsed) recordDate(d civil.Date) {
	iso := d.ISOWeek()
	p.setField(fYear, int64(d.Year()))
	p.setField(fYearDiv100, int64(floorDiv64(int64(d.Year()), 100)))
	p.setField(fYearMod100, int64(floorMod64(int64(d.Year()), 100)))
	p.setField(fIsoYear, int64(iso.Year))
	p.setField(fIsoYearMod100, int64(floorMod64(int64(iso.Year), 100)))
	p.setField(fMonth, int64(d.Month()))
	p.setField(fDay, int64(d.Day()))
	p.setField(fOrdinal, int64(d.Ordinal()))
	p.setField(fWeekday, int64(d.Weekday()))
	p.setField(fIsoWeek, int64(iso.Week))
	p.setField(fWeekFromSun, int64(weekNumber(d, false)))
	p.setField(fWeekFromMon, int64(weekNumber(d, true)))
}

func (p *Parsed) recordTime(t civil.TimeOfDay) {
	p.setHour(int64(t.Hour()))
	p.setField(fMinute, int64(t.Minute()))
	p.setField(fSecond, int64(t.Second()))
	p.setField(fNanosecond, int64(t.Nanosecond()))
}

// weekNumber is the strftime %U or %W week of the year, where week one
// begins at the year's first Sunday or Monday.
func weekNumber(d civil.Date, fromMonday bool) int {
	wd := int(d.Weekday())
	if fromMonday {
		wd = (wd + 6) % 7
	}
	return (d.Ordinal() + 6 - wd) / 7
}

// dateOfWeekNumber inverts weekNumber for a given year and weekday.
func dateOfWeekNumber(year, week int, weekday civil.Weekday, fromMonday bool) (civil.Date, error) {
	jan1, err := civil.DateOf(year, civil.January, 1)
	if err != nil {
		return civil.Date{}, err
	}
	firstWd := int(jan1.Weekday())
	target := int(weekday)
	if fromMonday {
		firstWd = (firstWd + 6) % 7
		target = (int(weekday) + 6) % 7
	}
	// Ordinal of the day starting week one.
	firstStart := 1 + (7-firstWd)%7
	ordinal := firstStart + (week-1)*7 + target
	return civil.DateOfOrdinal(year, ordinal)
}

func floorDiv64(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod64(a, b int64) int64 {
	return a - floorDiv64(a, b)*b
}

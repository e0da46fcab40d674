// Copyright 2023 The Zoned Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package civil

import "fmt"

// A DateTime is a Date and a TimeOfDay with no associated timezone.
//
// The zero DateTime is 1970-01-01 00:00:00, the Unix epoch origin.
type DateTime struct {
	date Date
	tod  TimeOfDay
}

// MinDateTime and MaxDateTime bound the representable DateTime range.
// MaxDateTime does not encode a leap second.
var (
	MinDateTime = DateTime{date: MinDate, tod: Midnight}
	MaxDateTime = DateTime{date: MaxDate, tod: EndOfDay}
)

// UnixEpoch is 1970-01-01 00:00:00, the zero DateTime.
var UnixEpoch = DateTime{}

// DateTimeOf returns the DateTime with the given field values.
func DateTimeOf(year int, month Month, day, hour, min, sec, nanos int) (DateTime, error) {
	d, err := DateOf(year, month, day)
	if err != nil {
		return DateTime{}, err
	}
	t, err := TimeOfDayOf(hour, min, sec, nanos)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{date: d, tod: t}, nil
}

// MustDateTimeOf is like DateTimeOf but panics on error.
func MustDateTimeOf(year int, month Month, day, hour, min, sec, nanos int) DateTime {
	dt, err := DateTimeOf(year, month, day, hour, min, sec, nanos)
	if err != nil {
		panic(err)
	}
	return dt
}

// FromUnix returns the DateTime for the given Unix time: secs non-leap
// seconds and nanos nanoseconds since 1970-01-01 00:00:00.
//
// nanos may reach 1,999,999,999 to encode a leap second, but only when secs
// lands on the 59th second of a minute; a Unix timestamp cannot name a leap
// second on its own. Out-of-range secs or an inconsistent nanos value is an
// error.
func FromUnix(secs int64, nanos int64) (DateTime, error) {
	if nanos < 0 || nanos >= 2_000_000_000 {
		return DateTime{}, fmt.Errorf("civil: nanosecond %d out of range", nanos)
	}
	if nanos >= 1_000_000_000 && floorMod(secs, 60) != 59 {
		return DateTime{}, fmt.Errorf("civil: leap second nanosecond on second %d of minute", floorMod(secs, 60))
	}
	days := floorDiv(secs, 86400)
	if days < minDays || days > maxDays {
		return DateTime{}, fmt.Errorf("civil: timestamp %d out of range", secs)
	}
	sod := secs - days*86400
	return DateTime{
		date: Date{int32(days)},
		tod:  TimeOfDay{secs: uint32(sod), nanos: uint32(nanos)},
	}, nil
}

// FromUnixMilli returns the DateTime for a Unix time in milliseconds.
func FromUnixMilli(ms int64) (DateTime, error) {
	return FromUnix(floorDiv(ms, 1000), floorMod(ms, 1000)*1_000_000)
}

// FromUnixMicro returns the DateTime for a Unix time in microseconds.
func FromUnixMicro(us int64) (DateTime, error) {
	return FromUnix(floorDiv(us, 1_000_000), floorMod(us, 1_000_000)*1000)
}

// FromUnixNano returns the DateTime for a Unix time in nanoseconds.
func FromUnixNano(ns int64) (DateTime, error) {
	return FromUnix(floorDiv(ns, 1_000_000_000), floorMod(ns, 1_000_000_000))
}

// Date returns the calendar date.
func (dt DateTime) Date() Date { return dt.date }

// TimeOfDay returns the clock reading.
func (dt DateTime) TimeOfDay() TimeOfDay { return dt.tod }

// Field accessors, delegating to Date and TimeOfDay.

func (dt DateTime) Year() int          { return dt.date.Year() }
func (dt DateTime) Month() Month       { return dt.date.Month() }
func (dt DateTime) Day() int           { return dt.date.Day() }
func (dt DateTime) Ordinal() int       { return dt.date.Ordinal() }
func (dt DateTime) Weekday() Weekday   { return dt.date.Weekday() }
func (dt DateTime) ISOWeek() ISOWeek   { return dt.date.ISOWeek() }
func (dt DateTime) Hour() int          { return dt.tod.Hour() }
func (dt DateTime) Minute() int        { return dt.tod.Minute() }
func (dt DateTime) Second() int        { return dt.tod.Second() }
func (dt DateTime) Nanosecond() int    { return dt.tod.Nanosecond() }
func (dt DateTime) IsLeapSecond() bool { return dt.tod.IsLeapSecond() }

// WithYear returns the DateTime with the year changed.
func (dt DateTime) WithYear(year int) (DateTime, error) {
	d, err := dt.date.WithYear(year)
	return DateTime{d, dt.tod}, err
}

// WithMonth returns the DateTime with the month changed.
func (dt DateTime) WithMonth(month Month) (DateTime, error) {
	d, err := dt.date.WithMonth(month)
	return DateTime{d, dt.tod}, err
}

// WithDay returns the DateTime with the day of month changed.
func (dt DateTime) WithDay(day int) (DateTime, error) {
	d, err := dt.date.WithDay(day)
	return DateTime{d, dt.tod}, err
}

// WithOrdinal returns the DateTime with the day of year changed.
func (dt DateTime) WithOrdinal(ordinal int) (DateTime, error) {
	d, err := dt.date.WithOrdinal(ordinal)
	return DateTime{d, dt.tod}, err
}

// WithHour returns the DateTime with the hour changed.
func (dt DateTime) WithHour(hour int) (DateTime, error) {
	t, err := dt.tod.WithHour(hour)
	return DateTime{dt.date, t}, err
}

// WithMinute returns the DateTime with the minute changed.
func (dt DateTime) WithMinute(min int) (DateTime, error) {
	t, err := dt.tod.WithMinute(min)
	return DateTime{dt.date, t}, err
}

// WithSecond returns the DateTime with the second changed.
func (dt DateTime) WithSecond(sec int) (DateTime, error) {
	t, err := dt.tod.WithSecond(sec)
	return DateTime{dt.date, t}, err
}

// WithNanosecond returns the DateTime with the nanosecond offset changed.
func (dt DateTime) WithNanosecond(nanos int) (DateTime, error) {
	t, err := dt.tod.WithNanosecond(nanos)
	return DateTime{dt.date, t}, err
}

// Unix returns the number of non-leap seconds since the Unix epoch. A leap
// second reports the same value as the second it extends.
func (dt DateTime) Unix() int64 {
	return int64(dt.date.days)*86400 + int64(dt.tod.secs)
}

// UnixMilli returns the Unix time in milliseconds. During a leap second the
// sub-second part may exceed 999 milliseconds.
func (dt DateTime) UnixMilli() int64 {
	return dt.Unix()*1000 + int64(dt.tod.nanos)/1_000_000
}

// UnixMicro returns the Unix time in microseconds.
func (dt DateTime) UnixMicro() int64 {
	return dt.Unix()*1_000_000 + int64(dt.tod.nanos)/1000
}

// UnixNano returns the Unix time in nanoseconds. Unlike the coarser
// accessors it reports an error when the value does not fit in an int64,
// which limits it to instants between 1677-09-21T00:12:43.145224192 and
// 2262-04-11T23:47:16.854775807.
func (dt DateTime) UnixNano() (int64, error) {
	d, err := DeltaOf(dt.Unix(), int64(dt.tod.nanos))
	if err != nil {
		return 0, err
	}
	ns, ok := d.totalNanos()
	if !ok {
		return 0, fmt.Errorf("civil: %v out of range for a 64-bit Unix nanosecond count", dt)
	}
	return ns, nil
}

// SubsecMillis returns the milliseconds since the last second boundary.
// During a leap second the value may exceed 999.
func (dt DateTime) SubsecMillis() int { return int(dt.tod.nanos) / 1_000_000 }

// SubsecMicros returns the microseconds since the last second boundary.
func (dt DateTime) SubsecMicros() int { return int(dt.tod.nanos) / 1000 }

// SubsecNanos returns the nanoseconds since the last second boundary.
func (dt DateTime) SubsecNanos() int { return int(dt.tod.nanos) }

// CheckedAdd returns dt shifted forward by d, reporting an error when the
// result falls outside the representable range. A leap second encoded in dt
// counts as exactly one elapsed second when the addition crosses it.
func (dt DateTime) CheckedAdd(d Delta) (DateTime, error) {
	dsecs, dnanos := d.split()
	tod, carry := dt.tod.overflowingAdd(dsecs, dnanos)
	days := int64(dt.date.days) + carry
	if days < minDays || days > maxDays {
		return DateTime{}, fmt.Errorf("civil: datetime out of range")
	}
	return DateTime{Date{int32(days)}, tod}, nil
}

// CheckedSub returns dt shifted backward by d.
func (dt DateTime) CheckedSub(d Delta) (DateTime, error) {
	return dt.CheckedAdd(d.Neg())
}

// Sub returns the span from u until dt, assuming no leap seconds elapsed
// between them except those the two endpoints themselves encode. The result
// is always representable.
func (dt DateTime) Sub(u DateTime) Delta {
	days := Seconds(dt.date.Sub(u.date) * 86400)
	return mustDelta(days.Add(dt.tod.Sub(u.tod)))
}

// AddOffset shifts the civil reading by a UTC offset of off seconds,
// reporting an error when the result leaves the representable range. The
// nanosecond field, including a leap-second encoding, is preserved.
func (dt DateTime) AddOffset(off int) (DateTime, error) {
	shifted := dt.overflowingAddOffset(off)
	if int64(shifted.date.days) < minDays || int64(shifted.date.days) > maxDays {
		return DateTime{}, fmt.Errorf("civil: datetime out of range")
	}
	return shifted, nil
}

// overflowingAddOffset is AddOffset without the range check. The result may
// lie up to a day outside the public range; it exists for intermediate
// projections only and must not escape the package's callers.
func (dt DateTime) overflowingAddOffset(off int) DateTime {
	sod := int64(dt.tod.secs) + int64(off)
	carry := floorDiv(sod, 86400)
	sod -= carry * 86400
	return DateTime{
		date: Date{dt.date.days + int32(carry)},
		tod:  TimeOfDay{secs: uint32(sod), nanos: dt.tod.nanos},
	}
}

// OverflowingAddOffset is the permissive offset shift used by the zoned
// package to project local fields near the range limits. The result may not
// satisfy the package range invariant.
func (dt DateTime) OverflowingAddOffset(off int) DateTime {
	return dt.overflowingAddOffset(off)
}

// InRange reports whether dt lies within [MinDateTime, MaxDateTime].
func (dt DateTime) InRange() bool {
	return dt.Compare(MinDateTime) >= 0 && dt.Compare(MaxDateTime) <= 0
}

// Compare orders DateTimes chronologically under the leap-second rules of
// TimeOfDay.Compare.
func (dt DateTime) Compare(u DateTime) int {
	if c := dt.date.Compare(u.date); c != 0 {
		return c
	}
	return dt.tod.Compare(u.tod)
}

// String returns a readable representation such as "2015-05-15 01:00:00".
func (dt DateTime) String() string {
	return dt.date.String() + " " + dt.tod.String()
}

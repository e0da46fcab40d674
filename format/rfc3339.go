// Copyright 2023 The Zoned Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"go.zoned.dev/civil"
)

// SecondsFormat selects how many sub-second digits an RFC 3339 writer
// emits.
type SecondsFormat int

const (
	// SecondsFormatAuto trims trailing zeros, stepping between
	// whole seconds and milli-, micro-, or nanosecond precision.
	SecondsFormatAuto SecondsFormat = iota

	// SecondsFormatSecs emits no fraction at all.
	SecondsFormatSecs

	// SecondsFormatMillis emits exactly three fractional digits.
	SecondsFormatMillis

	// SecondsFormatMicros emits exactly six fractional digits.
	SecondsFormatMicros

	// SecondsFormatNanos emits exactly nine fractional digits.
	SecondsFormatNanos
)

// ParseRFC3339 reads a complete RFC 3339 date-time, such as
// "1996-12-19T16:39:57-08:00".  The separator may be "T", "t", or a
// space, and the offset "Z", "z", or a signed hour and minute.
func ParseRFC3339(input string) (*Parsed, error) {
	p := new(Parsed)
	rest, err := scanRFC3339(p, input)
	if err != nil {
		return nil, err
	}
	if rest != "" {
		return nil, ErrTooLong
	}
	return p, nil
}

var relaxedItems = []Item{
	num(NumYear), sp(""), lit("-"), num(NumMonth), sp(""), lit("-"), num(NumDay),
	sp(""), lit("T"),
	num(NumHour), sp(""), lit(":"), num(NumMinute), sp(""), lit(":"), num(NumSecond),
	fix(FixNanosecond),
	sp(""), fix(fixTimezoneOffsetLenient), sp(""),
}

// ParseRelaxed reads the combined date-time form with the usual
// shortcuts tolerated: single-digit date fields, whitespace around the
// punctuation, and an offset written as "Z", a bare signed hour, or
// hours and minutes with or without a colon.
func ParseRelaxed(input string) (*Parsed, error) {
	return Parse(relaxedItems, input)
}

func scanRFC3339(p *Parsed, s string) (string, error) {
	// date-fullyear is exactly four digits.
	if len(s) < 4 {
		return "", ErrTooShort
	}
	var year int64
	for i := 0; i < 4; i++ {
		if !isDigit(s[i]) {
			return "", ErrInvalid
		}
		year = year*10 + int64(s[i]-'0')
	}
	s = s[4:]
	if err := p.setField(fYear, year); err != nil {
		return "", err
	}
	var err error
	s, err = expect(s, '-')
	if err != nil {
		return "", err
	}
	month, s, err := scanTwoDigits(s)
	if err != nil {
		return "", err
	}
	if month < 1 || month > 12 {
		return "", ErrOutOfRange
	}
	if err := p.setField(fMonth, int64(month)); err != nil {
		return "", err
	}
	s, err = expect(s, '-')
	if err != nil {
		return "", err
	}
	day, s, err := scanTwoDigits(s)
	if err != nil {
		return "", err
	}
	if day < 1 || day > 31 {
		return "", ErrOutOfRange
	}
	if err := p.setField(fDay, int64(day)); err != nil {
		return "", err
	}

	if s == "" {
		return "", ErrTooShort
	}
	if c := s[0]; c != 'T' && c != 't' && c != ' ' {
		return "", ErrInvalid
	}
	s = s[1:]

	hour, s, err := scanTwoDigits(s)
	if err != nil {
		return "", err
	}
	if hour > 23 {
		return "", ErrOutOfRange
	}
	if err := p.setHour(int64(hour)); err != nil {
		return "", err
	}
	s, err = expect(s, ':')
	if err != nil {
		return "", err
	}
	minute, s, err := scanTwoDigits(s)
	if err != nil {
		return "", err
	}
	if minute > 59 {
		return "", ErrOutOfRange
	}
	if err := p.setField(fMinute, int64(minute)); err != nil {
		return "", err
	}
	s, err = expect(s, ':')
	if err != nil {
		return "", err
	}
	sec, s, err := scanTwoDigits(s)
	if err != nil {
		return "", err
	}
	if sec > 60 {
		return "", ErrOutOfRange
	}
	if err := p.setField(fSecond, int64(sec)); err != nil {
		return "", err
	}

	if len(s) > 0 && s[0] == '.' {
		nanos, rest, err := scanFraction(s[1:], 1, 9)
		if err != nil {
			return "", err
		}
		if err := p.setField(fNanosecond, nanos); err != nil {
			return "", err
		}
		s = rest
	}

	off, s, err := scanOffset(s, true, false)
	if err != nil {
		return "", err
	}
	return s, p.setField(fOffset, int64(off))
}

func expect(s string, c byte) (string, error) {
	if s == "" {
		return "", ErrTooShort
	}
	if s[0] != c {
		return "", ErrInvalid
	}
	return s[1:], nil
}

// RFC3339 renders dt with the given offset in seconds east.
func RFC3339(dt civil.DateTime, offsetSecs int, sf SecondsFormat, useZ bool) string {
	return string(AppendRFC3339(nil, dt, offsetSecs, sf, useZ))
}

// AppendRFC3339 renders dt in the combined date-time form, appending
// to dst.  With useZ a zero offset is written as "Z"; otherwise it is
// written as "+00:00".
func AppendRFC3339(dst []byte, dt civil.DateTime, offsetSecs int, sf SecondsFormat, useZ bool) []byte {
	year := dt.Year()
	if year < 0 || year > 9999 {
		// Out-of-era years carry an explicit sign.
		if year >= 0 {
			dst = append(dst, '+')
		}
		dst = appendPadded(dst, int64(year), 4, PadZero)
	} else {
		dst = append(dst,
			byte('0'+year/1000), byte('0'+year/100%10),
			byte('0'+year/10%10), byte('0'+year%10))
	}
	dst = append(dst, '-')
	dst = append2(dst, int(dt.Month()))
	dst = append(dst, '-')
	dst = append2(dst, dt.Day())
	dst = append(dst, 'T')
	t := dt.TimeOfDay()
	dst = append2(dst, t.Hour())
	dst = append(dst, ':')
	dst = append2(dst, t.Minute())
	dst = append(dst, ':')
	dst = append2(dst, t.Second()+t.Nanosecond()/1_000_000_000)

	nanos := t.Nanosecond() % 1_000_000_000
	switch sf {
	case SecondsFormatAuto:
		dst = appendAutoNanos(dst, nanos)
	case SecondsFormatMillis:
		dst = appendFracNanos(append(dst, '.'), nanos, 3)
	case SecondsFormatMicros:
		dst = appendFracNanos(append(dst, '.'), nanos, 6)
	case SecondsFormatNanos:
		dst = appendFracNanos(append(dst, '.'), nanos, 9)
	}

	if useZ && offsetSecs == 0 {
		return append(dst, 'Z')
	}
	return appendOffset(dst, offsetSecs-offsetSecs%60, offColon)
}

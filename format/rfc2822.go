// Copyright 2023 The Zoned Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"strings"

	"go.zoned.dev/civil"
)

// RFC 2822 message timestamps, including the obsolete corners of the
// grammar that still occur in mail on the wire: folding whitespace,
// nested parenthesized comments, two- and three-digit years, and
// alphabetic zone designators.

// ParseRFC2822 reads a complete RFC 2822 date-time, such as
// "Tue, 20 Jan 2015 17:35:20 -0800".
func ParseRFC2822(input string) (*Parsed, error) {
	p := new(Parsed)
	rest, err := scanRFC2822(p, input)
	if err != nil {
		return nil, err
	}
	if rest != "" {
		return nil, ErrTooLong
	}
	return p, nil
}

func scanRFC2822(p *Parsed, s string) (string, error) {
	s, err := skipCFWS(s)
	if err != nil {
		return "", err
	}

	// day-of-week is optional.
	for i, name := range shortWeekdayNames {
		if !hasPrefixFold(s, name) {
			continue
		}
		if err := p.setField(fWeekday, int64(i)); err != nil {
			return "", err
		}
		s = s[len(name):]
		if s, err = skipCFWS(s); err != nil {
			return "", err
		}
		if len(s) == 0 || s[0] != ',' {
			return "", ErrInvalid
		}
		if s, err = skipCFWS(s[1:]); err != nil {
			return "", err
		}
		break
	}

	day, s, err := scanInt(s, 2, false)
	if err != nil {
		return "", err
	}
	if day < 1 || day > 31 {
		return "", ErrOutOfRange
	}
	if err := p.setField(fDay, day); err != nil {
		return "", err
	}
	if s, err = skipCFWS(s); err != nil {
		return "", err
	}

	month := -1
	for i, name := range shortMonthNames {
		if hasPrefixFold(s, name) {
			month = i + 1
			s = s[len(name):]
			break
		}
	}
	if month < 0 {
		return "", ErrInvalid
	}
	if err := p.setField(fMonth, int64(month)); err != nil {
		return "", err
	}
	if s, err = skipCFWS(s); err != nil {
		return "", err
	}

	// Two-digit years window into 1950-2049 and three-digit years
	// count from 1900, as the obsolete grammar demands.
	before := len(s)
	year, s, err := scanInt(s, 4, false)
	if err != nil {
		return "", err
	}
	switch before - len(s) {
	case 1:
		return "", ErrInvalid
	case 2:
		if year < 50 {
			year += 2000
		} else {
			year += 1900
		}
	case 3:
		year += 1900
	}
	if err := p.setField(fYear, year); err != nil {
		return "", err
	}
	if s, err = skipCFWS(s); err != nil {
		return "", err
	}

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
	if s, err = skipCFWS(s); err != nil {
		return "", err
	}
	if len(s) == 0 || s[0] != ':' {
		return "", ErrInvalid
	}
	if s, err = skipCFWS(s[1:]); err != nil {
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

	// Seconds are optional.
	rest, err := skipCFWS(s)
	if err != nil {
		return "", err
	}
	if len(rest) > 0 && rest[0] == ':' {
		if s, err = skipCFWS(rest[1:]); err != nil {
			return "", err
		}
		sec, rest, err := scanTwoDigits(s)
		if err != nil {
			return "", err
		}
		if sec > 60 {
			return "", ErrOutOfRange
		}
		if err := p.setField(fSecond, int64(sec)); err != nil {
			return "", err
		}
		s = rest
	}
	if s, err = skipCFWS(s); err != nil {
		return "", err
	}

	off, s, err := scanZone2822(s)
	if err != nil {
		return "", err
	}
	if err := p.setField(fOffset, int64(off)); err != nil {
		return "", err
	}

	if s, err = skipCFWS(s); err != nil {
		return "", err
	}
	return s, nil
}

// obsZones maps the named zones of the obsolete grammar to offsets.
var obsZones = map[string]int{
	"UT": 0, "GMT": 0, "UTC": 0,
	"EST": -5 * 3600, "EDT": -4 * 3600,
	"CST": -6 * 3600, "CDT": -5 * 3600,
	"MST": -7 * 3600, "MDT": -6 * 3600,
	"PST": -8 * 3600, "PDT": -7 * 3600,
}

// scanZone2822 reads a zone designator: a signed four-digit offset, a
// named zone, or an alphabetic token.  Unknown alphabetic designators,
// including the single-letter military zones, carry no real offset
// information and read as zero; only "Z" means a genuine UTC.
func scanZone2822(s string) (int, string, error) {
	if s == "" {
		return 0, "", ErrTooShort
	}
	if s[0] == '+' || s[0] == '-' {
		neg := s[0] == '-'
		h, rest, err := scanTwoDigits(s[1:])
		if err != nil {
			return 0, "", err
		}
		m, rest, err := scanTwoDigits(rest)
		if err != nil {
			return 0, "", err
		}
		if m > 59 {
			return 0, "", ErrOutOfRange
		}
		off := h*3600 + m*60
		if neg {
			off = -off
		}
		return off, rest, nil
	}

	i := 0
	for i < len(s) && isAlpha(s[i]) {
		i++
	}
	if i == 0 {
		return 0, "", ErrInvalid
	}
	name := strings.ToUpper(s[:i])
	if off, ok := obsZones[name]; ok {
		return off, s[i:], nil
	}
	return 0, s[i:], nil
}

// skipCFWS consumes folding whitespace and parenthesized comments,
// which nest and may contain backslash-quoted pairs.
func skipCFWS(s string) (string, error) {
	for {
		s = skipSpace(s)
		if len(s) == 0 || s[0] != '(' {
			return s, nil
		}
		depth := 0
		i := 0
		for i < len(s) {
			switch s[i] {
			case '\\':
				i++
			case '(':
				depth++
			case ')':
				depth--
			}
			i++
			if depth == 0 {
				break
			}
		}
		if depth != 0 {
			return "", ErrTooShort
		}
		s = s[i:]
	}
}

func isAlpha(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z'
}

// RFC2822 renders dt with the given offset in seconds east.
func RFC2822(dt civil.DateTime, offsetSecs int) (string, error) {
	b, err := AppendRFC2822(nil, dt, offsetSecs)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// AppendRFC2822 renders dt in the message timestamp form, appending to
// dst.  The grammar has no room for negative or five-digit years, so
// those return ErrWriteFailed.
func AppendRFC2822(dst []byte, dt civil.DateTime, offsetSecs int) ([]byte, error) {
	year := dt.Year()
	if year < 0 || year > 9999 {
		return nil, ErrWriteFailed
	}

	d := dt.Date()
	t := dt.TimeOfDay()
	dst = append(dst, shortWeekdayNames[int(d.Weekday())]...)
	dst = append(dst, ", "...)
	dst = append2(dst, d.Day())
	dst = append(dst, ' ')
	dst = append(dst, shortMonthNames[int(d.Month())-1]...)
	dst = append(dst, ' ')
	dst = append(dst,
		byte('0'+year/1000), byte('0'+year/100%10),
		byte('0'+year/10%10), byte('0'+year%10), ' ')
	dst = append2(dst, t.Hour())
	dst = append(dst, ':')
	dst = append2(dst, t.Minute())
	dst = append(dst, ':')
	dst = append2(dst, t.Second()+t.Nanosecond()/1_000_000_000)
	dst = append(dst, ' ')

	sign := byte('+')
	if offsetSecs < 0 {
		sign = '-'
		offsetSecs = -offsetSecs
	}
	// Sub-minute offsets do not fit the grammar; round to the
	// nearest minute.
	mins := (offsetSecs + 30) / 60
	dst = append(dst, sign)
	dst = append2(dst, mins/60)
	dst = append2(dst, mins%60)
	return dst, nil
}

func append2(dst []byte, v int) []byte {
	return append(dst, byte('0'+v/10), byte('0'+v%10))
}

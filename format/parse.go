// Copyright 2023 The Zoned Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"strings"
)

// Parse matches input against the token sequence and demands that the
// whole input be consumed; leftover text yields ErrTooLong.
func Parse(items []Item, input string) (*Parsed, error) {
	p, rest, err := ParseAndRemainder(items, input)
	if err != nil {
		return nil, err
	}
	if rest != "" {
		return nil, ErrTooLong
	}
	return p, nil
}

// ParseAndRemainder matches input against the token sequence and
// returns whatever input follows the match, without error.
func ParseAndRemainder(items []Item, input string) (*Parsed, string, error) {
	p := new(Parsed)
	rest, err := parseItems(p, input, items)
	if err != nil {
		return nil, "", err
	}
	return p, rest, nil
}

func parseItems(p *Parsed, s string, items []Item) (string, error) {
	var err error
	for _, it := range items {
		switch it.Kind {
		case ItemLiteral:
			if len(s) < len(it.Lit) {
				return "", ErrTooShort
			}
			if s[:len(it.Lit)] != it.Lit {
				return "", ErrInvalid
			}
			s = s[len(it.Lit):]
		case ItemSpace:
			s = skipSpace(s)
		case ItemNumeric:
			s, err = parseNumeric(p, s, it.Num)
		case ItemFixed:
			s, err = parseFixed(p, s, it.Fix)
		}
		if err != nil {
			return "", err
		}
	}
	return s, nil
}

// parseNumeric scans one integer field.  Fields have a maximum digit
// count matching what they can sensibly hold; a leading sign, where
// permitted, lifts the limit so large years remain parseable.
func parseNumeric(p *Parsed, s string, n Numeric) (string, error) {
	maxDigits, signed := 2, false
	switch n {
	case NumYear, NumIsoYear:
		maxDigits, signed = 4, true
	case NumOrdinal:
		maxDigits = 3
	case NumWeekdayFromSun, NumWeekdayFromMon:
		maxDigits = 1
	case NumNanosecond:
		maxDigits = 9
	case NumTimestamp:
		maxDigits, signed = 18, true
	}

	s = skipSpace(s)
	v, rest, err := scanInt(s, maxDigits, signed)
	if err != nil {
		return "", err
	}

	var f field
	switch n {
	case NumYear:
		f = fYear
	case NumYearDiv100:
		f = fYearDiv100
	case NumYearMod100:
		f = fYearMod100
	case NumIsoYear:
		f = fIsoYear
	case NumIsoYearMod100:
		f = fIsoYearMod100
	case NumMonth:
		if v < 1 || v > 12 {
			return "", ErrOutOfRange
		}
		f = fMonth
	case NumDay:
		if v < 1 || v > 31 {
			return "", ErrOutOfRange
		}
		f = fDay
	case NumWeekFromSun:
		f = fWeekFromSun
	case NumWeekFromMon:
		f = fWeekFromMon
	case NumIsoWeek:
		if v < 1 || v > 53 {
			return "", ErrOutOfRange
		}
		f = fIsoWeek
	case NumWeekdayFromSun:
		if v > 6 {
			return "", ErrOutOfRange
		}
		f = fWeekday
	case NumWeekdayFromMon:
		if v < 1 || v > 7 {
			return "", ErrOutOfRange
		}
		v %= 7
		f = fWeekday
	case NumOrdinal:
		if v < 1 || v > 366 {
			return "", ErrOutOfRange
		}
		f = fOrdinal
	case NumHour:
		if v > 23 {
			return "", ErrOutOfRange
		}
		return rest, p.setHour(v)
	case NumHour12:
		if v < 1 || v > 12 {
			return "", ErrOutOfRange
		}
		return rest, p.setField(fHourMod12, v%12)
	case NumMinute:
		if v > 59 {
			return "", ErrOutOfRange
		}
		f = fMinute
	case NumSecond:
		if v > 60 {
			return "", ErrOutOfRange
		}
		f = fSecond
	case NumNanosecond:
		f = fNanosecond
	case NumTimestamp:
		f = fTimestamp
	default:
		return "", ErrBadLayout
	}
	return rest, p.setField(f, v)
}

func parseFixed(p *Parsed, s string, f Fixed) (string, error) {
	switch f {
	case FixShortMonthName:
		for i, name := range shortMonthNames {
			if hasPrefixFold(s, name) {
				return s[len(name):], p.setField(fMonth, int64(i+1))
			}
		}
		return "", ErrInvalid
	case FixLongMonthName:
		for i, name := range longMonthNames {
			if hasPrefixFold(s, name) {
				return s[len(name):], p.setField(fMonth, int64(i+1))
			}
		}
		// A short name also satisfies the long form.
		return parseFixed(p, s, FixShortMonthName)
	case FixShortWeekdayName:
		for i, name := range shortWeekdayNames {
			if hasPrefixFold(s, name) {
				return s[len(name):], p.setField(fWeekday, int64(i))
			}
		}
		return "", ErrInvalid
	case FixLongWeekdayName:
		for i, name := range longWeekdayNames {
			if hasPrefixFold(s, name) {
				return s[len(name):], p.setField(fWeekday, int64(i))
			}
		}
		return parseFixed(p, s, FixShortWeekdayName)
	case FixLowerAmPm, FixUpperAmPm:
		if len(s) < 2 {
			return "", ErrTooShort
		}
		var div int64
		switch {
		case hasPrefixFold(s, "am"):
			div = 0
		case hasPrefixFold(s, "pm"):
			div = 1
		default:
			return "", ErrInvalid
		}
		return s[2:], p.setField(fHourDiv12, div)
	case FixNanosecond:
		// The whole fraction is optional.
		if len(s) == 0 || s[0] != '.' {
			return s, nil
		}
		nanos, rest, err := scanFraction(s[1:], 1, 9)
		if err != nil {
			return "", err
		}
		return rest, p.setField(fNanosecond, nanos)
	case FixNanosecond3, FixNanosecond6, FixNanosecond9,
		FixBareNanosecond3, FixBareNanosecond6, FixBareNanosecond9:
		digits := 3
		switch f {
		case FixNanosecond6, FixBareNanosecond6:
			digits = 6
		case FixNanosecond9, FixBareNanosecond9:
			digits = 9
		}
		switch f {
		case FixNanosecond3, FixNanosecond6, FixNanosecond9:
			if len(s) == 0 || s[0] != '.' {
				return "", ErrInvalid
			}
			s = s[1:]
		}
		nanos, rest, err := scanFraction(s, digits, digits)
		if err != nil {
			return "", err
		}
		return rest, p.setField(fNanosecond, nanos)
	case FixTimezoneName:
		i := 0
		for i < len(s) && isZoneNameByte(s[i]) {
			i++
		}
		if i == 0 {
			return "", ErrInvalid
		}
		// The designator alone pins down no offset.
		return s[i:], nil
	case FixTimezoneOffset, FixTimezoneOffsetColon, FixTimezoneOffsetDouble,
		FixTimezoneOffsetTriple:
		off, rest, err := scanOffset(s, false, f == FixTimezoneOffsetTriple)
		if err != nil {
			return "", err
		}
		return rest, p.setField(fOffset, int64(off))
	case FixTimezoneOffsetZ, FixTimezoneOffsetColonZ:
		off, rest, err := scanOffset(s, true, false)
		if err != nil {
			return "", err
		}
		return rest, p.setField(fOffset, int64(off))
	case fixTimezoneOffsetLenient:
		off, rest, err := scanOffset(s, true, true)
		if err != nil {
			return "", err
		}
		return rest, p.setField(fOffset, int64(off))
	case FixRFC2822:
		return scanRFC2822(p, s)
	case FixRFC3339:
		return scanRFC3339(p, s)
	}
	return "", ErrBadLayout
}

// scanInt reads between one and maxDigits decimal digits, or, when
// signed and a sign is present, up to eighteen.
func scanInt(s string, maxDigits int, signed bool) (int64, string, error) {
	if s == "" {
		return 0, "", ErrTooShort
	}
	neg := false
	if signed && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
		maxDigits = 18
	}

	i := 0
	var v int64
	for i < len(s) && i < maxDigits && s[i] >= '0' && s[i] <= '9' {
		v = v*10 + int64(s[i]-'0')
		i++
	}
	if i == 0 {
		if s == "" {
			return 0, "", ErrTooShort
		}
		return 0, "", ErrInvalid
	}
	if neg {
		v = -v
	}
	return v, s[i:], nil
}

// scanFraction reads minDigits to maxDigits digits after a decimal
// point and scales them to nanoseconds.
func scanFraction(s string, minDigits, maxDigits int) (int64, string, error) {
	i := 0
	var v int64
	for i < len(s) && i < maxDigits && s[i] >= '0' && s[i] <= '9' {
		v = v*10 + int64(s[i]-'0')
		i++
	}
	if i < minDigits {
		if len(s) < minDigits {
			return 0, "", ErrTooShort
		}
		return 0, "", ErrInvalid
	}
	for n := i; n < 9; n++ {
		v *= 10
	}
	return v, s[i:], nil
}

// scanOffset reads a numeric UTC offset: a sign, two hour digits, and
// optionally a colon and two minute digits, then optionally seconds in
// the same manner.  allowZ additionally accepts the Zulu marker, and
// lenient permits a bare signed hour.
func scanOffset(s string, allowZ, lenient bool) (int, string, error) {
	s = skipSpace(s)
	if s == "" {
		return 0, "", ErrTooShort
	}
	if allowZ && (s[0] == 'Z' || s[0] == 'z') {
		return 0, s[1:], nil
	}
	if s[0] != '+' && s[0] != '-' {
		return 0, "", ErrInvalid
	}
	neg := s[0] == '-'
	s = s[1:]

	h, s, err := scanTwoDigits(s)
	if err != nil {
		return 0, "", err
	}
	secs := h * 3600

	m, rest, err := scanOffsetPart(s)
	if err == nil {
		secs += m * 60
		s = rest
		if ss, rest, err := scanOffsetPart(s); err == nil {
			secs += ss
			s = rest
		}
	} else if !lenient {
		return 0, "", err
	}

	if secs >= 86_400 {
		return 0, "", ErrOutOfRange
	}
	if neg {
		secs = -secs
	}
	return secs, s, nil
}

// scanOffsetPart reads an optional colon followed by two digits below
// sixty.
func scanOffsetPart(s string) (int, string, error) {
	if len(s) > 0 && s[0] == ':' {
		s = s[1:]
	}
	v, rest, err := scanTwoDigits(s)
	if err != nil {
		return 0, "", err
	}
	if v >= 60 {
		return 0, "", ErrOutOfRange
	}
	return v, rest, nil
}

func scanTwoDigits(s string) (int, string, error) {
	if len(s) < 2 {
		return 0, "", ErrTooShort
	}
	if !isDigit(s[0]) || !isDigit(s[1]) {
		return 0, "", ErrInvalid
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), s[2:], nil
}

func skipSpace(s string) string {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return s[i:]
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isZoneNameByte(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' ||
		c == '/' || c == '_' || c == '-' || c == '+'
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

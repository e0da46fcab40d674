// Copyright 2023 The Zoned Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"strconv"

	"go.zoned.dev/civil"
)

// A Source supplies the values a format draws on.  Fields left nil are
// simply unavailable: a token that needs one fails with ErrWriteFailed.
type Source struct {
	Date   *civil.Date
	Time   *civil.TimeOfDay
	Offset *int   // seconds east of UTC
	Name   string // zone designator for %Z, Offset's spelling if empty
}

// Format renders the token sequence from src.
func Format(items []Item, src Source) (string, error) {
	b, err := AppendFormat(nil, items, src)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// AppendFormat renders the token sequence from src, appending to dst.
func AppendFormat(dst []byte, items []Item, src Source) ([]byte, error) {
	var err error
	for _, it := range items {
		switch it.Kind {
		case ItemLiteral, ItemSpace:
			dst = append(dst, it.Lit...)
		case ItemNumeric:
			dst, err = appendNumeric(dst, it, src)
		case ItemFixed:
			dst, err = appendFixed(dst, it.Fix, src)
		}
		if err != nil {
			return nil, err
		}
	}
	return dst, nil
}

func appendNumeric(dst []byte, it Item, src Source) ([]byte, error) {
	d, t := src.Date, src.Time

	var v int64
	width := 2
	switch it.Num {
	case NumYear, NumIsoYear:
		width = 4
	case NumWeekdayFromSun, NumWeekdayFromMon, NumTimestamp:
		width = 1
	case NumOrdinal:
		width = 3
	case NumNanosecond:
		width = 9
	}

	switch it.Num {
	case NumYear:
		if d == nil {
			return nil, ErrWriteFailed
		}
		v = int64(d.Year())
	case NumYearDiv100:
		if d == nil {
			return nil, ErrWriteFailed
		}
		v = int64(floorDiv(d.Year(), 100))
	case NumYearMod100:
		if d == nil {
			return nil, ErrWriteFailed
		}
		v = int64(floorMod(d.Year(), 100))
	case NumIsoYear:
		if d == nil {
			return nil, ErrWriteFailed
		}
		v = int64(d.ISOWeek().Year)
	case NumIsoYearMod100:
		if d == nil {
			return nil, ErrWriteFailed
		}
		v = int64(floorMod(d.ISOWeek().Year, 100))
	case NumMonth:
		if d == nil {
			return nil, ErrWriteFailed
		}
		v = int64(d.Month())
	case NumDay:
		if d == nil {
			return nil, ErrWriteFailed
		}
		v = int64(d.Day())
	case NumWeekFromSun:
		if d == nil {
			return nil, ErrWriteFailed
		}
		v = int64((d.Ordinal() + 6 - int(d.Weekday())) / 7)
	case NumWeekFromMon:
		if d == nil {
			return nil, ErrWriteFailed
		}
		v = int64((d.Ordinal() + 6 - (int(d.Weekday())+6)%7) / 7)
	case NumIsoWeek:
		if d == nil {
			return nil, ErrWriteFailed
		}
		v = int64(d.ISOWeek().Week)
	case NumWeekdayFromSun:
		if d == nil {
			return nil, ErrWriteFailed
		}
		v = int64(d.Weekday())
	case NumWeekdayFromMon:
		if d == nil {
			return nil, ErrWriteFailed
		}
		v = int64(d.Weekday().NumberFromMonday())
	case NumOrdinal:
		if d == nil {
			return nil, ErrWriteFailed
		}
		v = int64(d.Ordinal())
	case NumHour:
		if t == nil {
			return nil, ErrWriteFailed
		}
		v = int64(t.Hour())
	case NumHour12:
		if t == nil {
			return nil, ErrWriteFailed
		}
		h := t.Hour() % 12
		if h == 0 {
			h = 12
		}
		v = int64(h)
	case NumMinute:
		if t == nil {
			return nil, ErrWriteFailed
		}
		v = int64(t.Minute())
	case NumSecond:
		if t == nil {
			return nil, ErrWriteFailed
		}
		// A leap second prints as 60.
		v = int64(t.Second() + t.Nanosecond()/1_000_000_000)
	case NumNanosecond:
		if t == nil {
			return nil, ErrWriteFailed
		}
		v = int64(t.Nanosecond() % 1_000_000_000)
	case NumTimestamp:
		if d == nil || t == nil {
			return nil, ErrWriteFailed
		}
		dt := d.At(*t)
		off := 0
		if src.Offset != nil {
			off = *src.Offset
		}
		v = dt.Unix() - int64(off)
	default:
		return nil, ErrBadLayout
	}

	// Out-of-era years carry an explicit sign so the extra digits
	// survive a reparse, which caps unsigned years at four digits.
	if (it.Num == NumYear || it.Num == NumIsoYear) && v > 9999 {
		dst = append(dst, '+')
	}
	return appendPadded(dst, v, width, it.Pad), nil
}

func appendPadded(dst []byte, v int64, width int, pad Pad) []byte {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatInt(v, 10)
	if neg {
		dst = append(dst, '-')
	}
	if pad != PadNone {
		fill := byte('0')
		if pad == PadSpace {
			fill = ' '
		}
		for n := width - len(s); n > 0; n-- {
			dst = append(dst, fill)
		}
	}
	return append(dst, s...)
}

func appendFixed(dst []byte, f Fixed, src Source) ([]byte, error) {
	d, t := src.Date, src.Time

	needDate := func() error {
		if d == nil {
			return ErrWriteFailed
		}
		return nil
	}
	needTime := func() error {
		if t == nil {
			return ErrWriteFailed
		}
		return nil
	}
	needOffset := func() (int, error) {
		if src.Offset == nil {
			return 0, ErrWriteFailed
		}
		return *src.Offset, nil
	}

	switch f {
	case FixShortMonthName:
		if err := needDate(); err != nil {
			return nil, err
		}
		return append(dst, shortMonthNames[int(d.Month())-1]...), nil
	case FixLongMonthName:
		if err := needDate(); err != nil {
			return nil, err
		}
		return append(dst, longMonthNames[int(d.Month())-1]...), nil
	case FixShortWeekdayName:
		if err := needDate(); err != nil {
			return nil, err
		}
		return append(dst, shortWeekdayNames[int(d.Weekday())]...), nil
	case FixLongWeekdayName:
		if err := needDate(); err != nil {
			return nil, err
		}
		return append(dst, longWeekdayNames[int(d.Weekday())]...), nil
	case FixLowerAmPm, FixUpperAmPm:
		if err := needTime(); err != nil {
			return nil, err
		}
		s := "am"
		if t.Hour() >= 12 {
			s = "pm"
		}
		if f == FixUpperAmPm {
			if s == "am" {
				s = "AM"
			} else {
				s = "PM"
			}
		}
		return append(dst, s...), nil
	case FixNanosecond:
		if err := needTime(); err != nil {
			return nil, err
		}
		return appendAutoNanos(dst, t.Nanosecond()%1_000_000_000), nil
	case FixNanosecond3, FixNanosecond6, FixNanosecond9,
		FixBareNanosecond3, FixBareNanosecond6, FixBareNanosecond9:
		if err := needTime(); err != nil {
			return nil, err
		}
		digits := 3
		switch f {
		case FixNanosecond6, FixBareNanosecond6:
			digits = 6
		case FixNanosecond9, FixBareNanosecond9:
			digits = 9
		}
		if f == FixNanosecond3 || f == FixNanosecond6 || f == FixNanosecond9 {
			dst = append(dst, '.')
		}
		return appendFracNanos(dst, t.Nanosecond()%1_000_000_000, digits), nil
	case FixTimezoneName:
		off, err := needOffset()
		if err != nil {
			return nil, err
		}
		if src.Name != "" {
			return append(dst, src.Name...), nil
		}
		return appendOffset(dst, off, offColon), nil
	case FixTimezoneOffset, FixTimezoneOffsetZ:
		off, err := needOffset()
		if err != nil {
			return nil, err
		}
		if f == FixTimezoneOffsetZ && off == 0 {
			return append(dst, 'Z'), nil
		}
		return appendOffset(dst, off, offPlain), nil
	case FixTimezoneOffsetColon, FixTimezoneOffsetColonZ:
		off, err := needOffset()
		if err != nil {
			return nil, err
		}
		if f == FixTimezoneOffsetColonZ && off == 0 {
			return append(dst, 'Z'), nil
		}
		return appendOffset(dst, off, offColon), nil
	case FixTimezoneOffsetDouble:
		off, err := needOffset()
		if err != nil {
			return nil, err
		}
		return appendOffset(dst, off, offSeconds), nil
	case FixTimezoneOffsetTriple:
		off, err := needOffset()
		if err != nil {
			return nil, err
		}
		return appendOffset(dst, off, offHourOnly), nil
	case FixRFC2822:
		if d == nil || t == nil {
			return nil, ErrWriteFailed
		}
		off, err := needOffset()
		if err != nil {
			return nil, err
		}
		return AppendRFC2822(dst, d.At(*t), off)
	case FixRFC3339:
		if d == nil || t == nil {
			return nil, ErrWriteFailed
		}
		off, err := needOffset()
		if err != nil {
			return nil, err
		}
		return AppendRFC3339(dst, d.At(*t), off, SecondsFormatAuto, false), nil
	}
	return nil, ErrBadLayout
}

// appendAutoNanos writes a dotted fraction trimmed to the shortest of
// millisecond, microsecond, or nanosecond precision, or nothing at all
// for a whole second.
func appendAutoNanos(dst []byte, nanos int) []byte {
	switch {
	case nanos == 0:
		return dst
	case nanos%1_000_000 == 0:
		return appendFracNanos(append(dst, '.'), nanos, 3)
	case nanos%1_000 == 0:
		return appendFracNanos(append(dst, '.'), nanos, 6)
	default:
		return appendFracNanos(append(dst, '.'), nanos, 9)
	}
}

// appendFracNanos writes the leading digits of the fraction; the caller
// supplies the dot when one is wanted.
func appendFracNanos(dst []byte, nanos, digits int) []byte {
	div := 100_000_000
	for i := 0; i < digits; i++ {
		dst = append(dst, byte('0'+nanos/div%10))
		div /= 10
	}
	return dst
}

type offsetStyle int

const (
	offPlain    offsetStyle = iota // +0930
	offColon                       // +09:30
	offSeconds                     // +09:30:00
	offHourOnly                    // +09, +09:30 when minutes nonzero
)

func appendOffset(dst []byte, secs int, style offsetStyle) []byte {
	sign := byte('+')
	if secs < 0 {
		sign = '-'
		secs = -secs
	}
	h, m, s := secs/3600, secs/60%60, secs%60
	dst = append(dst, sign, byte('0'+h/10), byte('0'+h%10))
	if style == offHourOnly && m == 0 {
		return dst
	}
	if style != offPlain {
		dst = append(dst, ':')
	}
	dst = append(dst, byte('0'+m/10), byte('0'+m%10))
	if style == offSeconds {
		dst = append(dst, ':', byte('0'+s/10), byte('0'+s%10))
	}
	return dst
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}

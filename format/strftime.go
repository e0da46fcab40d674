// Copyright 2023 The Zoned Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"strings"
)

// AppendLayoutItems compiles a strftime-style layout string and
// appends the resulting tokens to items.
//
// The directives follow the C strftime tradition.  Date fields:
// %Y %C %y (year, century, two-digit year), %G %g (ISO week year),
// %m %b %h %B (month), %d %e (day), %a %A %w %u (weekday),
// %U %W %V (week number), %j (ordinal day), and the composites
// %D %x %F %v.  Time fields: %H %k %I %l (hour), %P %p (am/pm),
// %M %S, %f and %.f %.3f %.6f %.9f %3f %6f %9f (subseconds), and the
// composites %R %T %X %r.  Zone fields: %Z %z %:z %::z %:::z.  Whole
// stamps: %c %+ %s.  %n and %t emit whitespace and %% a percent sign.
// A directive may carry a padding override: %-d suppresses padding,
// %0e forces zeros, %_m forces spaces.
//
// An unknown or truncated directive yields ErrBadLayout.
func AppendLayoutItems(items []Item, layout string) ([]Item, error) {
	for len(layout) > 0 {
		if c := layout[0]; c != '%' {
			n := strings.IndexByte(layout, '%')
			if n < 0 {
				n = len(layout)
			}
			run := layout[:n]
			if isSpaceRun(run) {
				items = append(items, sp(run))
			} else {
				items = append(items, splitSpaceRuns(run)...)
			}
			layout = layout[n:]
			continue
		}

		spec, rest, err := cutDirective(layout)
		if err != nil {
			return nil, err
		}
		layout = rest

		its, err := directiveItems(spec)
		if err != nil {
			return nil, err
		}
		items = append(items, its...)
	}
	return items, nil
}

// LayoutItems compiles a layout string into a fresh token slice.
func LayoutItems(layout string) ([]Item, error) {
	return AppendLayoutItems(nil, layout)
}

// cutDirective splits one %-directive off the front of layout.
// The returned spec excludes the leading percent sign.
func cutDirective(layout string) (spec, rest string, err error) {
	s := layout[1:] // skip '%'
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '0' || s[i] == '_') {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
	}
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i < len(s) && s[i] == ':' {
		for i < len(s) && s[i] == ':' {
			i++
		}
	}
	if i >= len(s) {
		return "", "", ErrBadLayout
	}
	i++
	return s[:i], layout[1+i:], nil
}

func directiveItems(spec string) ([]Item, error) {
	pad := Pad(-1)
	switch spec[0] {
	case '-':
		pad, spec = PadNone, spec[1:]
	case '0':
		pad, spec = PadZero, spec[1:]
	case '_':
		pad, spec = PadSpace, spec[1:]
	}
	if spec == "" {
		return nil, ErrBadLayout
	}

	one := func(it Item) []Item { return []Item{it} }
	numeric := func(n Numeric, def Pad) []Item {
		it := numPad(n, def)
		if pad >= 0 {
			it.Pad = pad
		}
		return one(it)
	}

	switch spec {
	case "Y":
		return numeric(NumYear, PadZero), nil
	case "C":
		return numeric(NumYearDiv100, PadZero), nil
	case "y":
		return numeric(NumYearMod100, PadZero), nil
	case "G":
		return numeric(NumIsoYear, PadZero), nil
	case "g":
		return numeric(NumIsoYearMod100, PadZero), nil
	case "m":
		return numeric(NumMonth, PadZero), nil
	case "b", "h":
		return one(fix(FixShortMonthName)), nil
	case "B":
		return one(fix(FixLongMonthName)), nil
	case "d":
		return numeric(NumDay, PadZero), nil
	case "e":
		return numeric(NumDay, PadSpace), nil
	case "a":
		return one(fix(FixShortWeekdayName)), nil
	case "A":
		return one(fix(FixLongWeekdayName)), nil
	case "w":
		return numeric(NumWeekdayFromSun, PadNone), nil
	case "u":
		return numeric(NumWeekdayFromMon, PadNone), nil
	case "U":
		return numeric(NumWeekFromSun, PadZero), nil
	case "W":
		return numeric(NumWeekFromMon, PadZero), nil
	case "V":
		return numeric(NumIsoWeek, PadZero), nil
	case "j":
		return numeric(NumOrdinal, PadZero), nil
	case "D", "x":
		return expand("%m/%d/%y")
	case "F":
		return expand("%Y-%m-%d")
	case "v":
		return expand("%e-%b-%Y")
	case "H":
		return numeric(NumHour, PadZero), nil
	case "k":
		return numeric(NumHour, PadSpace), nil
	case "I":
		return numeric(NumHour12, PadZero), nil
	case "l":
		return numeric(NumHour12, PadSpace), nil
	case "P":
		return one(fix(FixLowerAmPm)), nil
	case "p":
		return one(fix(FixUpperAmPm)), nil
	case "M":
		return numeric(NumMinute, PadZero), nil
	case "S":
		return numeric(NumSecond, PadZero), nil
	case "f":
		return numeric(NumNanosecond, PadZero), nil
	case ".f":
		return one(fix(FixNanosecond)), nil
	case ".3f":
		return one(fix(FixNanosecond3)), nil
	case ".6f":
		return one(fix(FixNanosecond6)), nil
	case ".9f":
		return one(fix(FixNanosecond9)), nil
	case "3f":
		return one(fix(FixBareNanosecond3)), nil
	case "6f":
		return one(fix(FixBareNanosecond6)), nil
	case "9f":
		return one(fix(FixBareNanosecond9)), nil
	case "R":
		return expand("%H:%M")
	case "T", "X":
		return expand("%H:%M:%S")
	case "r":
		return expand("%I:%M:%S %p")
	case "c":
		return expand("%a %b %e %H:%M:%S %Y")
	case "s":
		return numeric(NumTimestamp, PadNone), nil
	case "Z":
		return one(fix(FixTimezoneName)), nil
	case "z":
		return one(fix(FixTimezoneOffset)), nil
	case ":z":
		return one(fix(FixTimezoneOffsetColon)), nil
	case "::z":
		return one(fix(FixTimezoneOffsetDouble)), nil
	case ":::z":
		return one(fix(FixTimezoneOffsetTriple)), nil
	case "+":
		return one(fix(FixRFC3339)), nil
	case "n":
		return one(sp("\n")), nil
	case "t":
		return one(sp("\t")), nil
	case "%":
		return one(lit("%")), nil
	}
	return nil, ErrBadLayout
}

func expand(layout string) ([]Item, error) {
	return AppendLayoutItems(nil, layout)
}

func isSpaceRun(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isSpace(s[i]) {
			return false
		}
	}
	return len(s) > 0
}

// splitSpaceRuns breaks a literal into alternating literal and
// whitespace tokens so that parsing treats embedded spaces loosely.
func splitSpaceRuns(s string) []Item {
	var items []Item
	for len(s) > 0 {
		i := 0
		if isSpace(s[0]) {
			for i < len(s) && isSpace(s[i]) {
				i++
			}
			items = append(items, sp(s[:i]))
		} else {
			for i < len(s) && !isSpace(s[i]) {
				i++
			}
			items = append(items, lit(s[:i]))
		}
		s = s[i:]
	}
	return items
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

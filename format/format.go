// Copyright 2023 The Zoned Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package format converts date-time values to and from text.
//
// The central abstraction is the Item, one token of a format: a
// literal, a run of whitespace, a padded numeric field, or a fixed
// pattern such as a month name or a UTC offset.  Layout strings in
// strftime style compile to Item sequences, which drive both the
// writer and the strict parser.  The two internet grammars, RFC 2822
// message timestamps and RFC 3339 combined date-times, have dedicated
// readers and writers.
//
// Parsing accumulates field values into a Parsed, which checks each
// new piece against what is already known and only then resolves to a
// calendar date, a time of day, or a full instant.
package format

import (
	"github.com/pkg/errors"
)

// Parsing and formatting failures.  Parse errors are sentinel values
// so callers can distinguish a malformed input from an input that is
// merely incomplete.
var (
	// ErrOutOfRange means a field value was outside its permitted
	// range, or the resolved value cannot be represented.
	ErrOutOfRange = errors.New("format: input is out of range")

	// ErrImpossible means the input contradicts itself, such as a
	// weekday that does not belong to the given date.
	ErrImpossible = errors.New("format: no possible date and time matching input")

	// ErrNotEnough means the input does not determine the requested
	// value, such as a date without a year.
	ErrNotEnough = errors.New("format: input is not enough for unique date and time")

	// ErrInvalid means a field contains characters it cannot contain.
	ErrInvalid = errors.New("format: input contains invalid characters")

	// ErrTooShort means the input ended before the format did.
	ErrTooShort = errors.New("format: premature end of input")

	// ErrTooLong means trailing input remained after the format was
	// fully consumed.
	ErrTooLong = errors.New("format: trailing input")

	// ErrBadLayout means the layout string itself is malformed and
	// cannot format or parse anything.
	ErrBadLayout = errors.New("format: bad or unsupported layout")

	// ErrWriteFailed means a value cannot be rendered by the
	// requested grammar, such as a five-digit year in RFC 2822.
	ErrWriteFailed = errors.New("format: value cannot be formatted")
)

// ItemKind discriminates the variants of an Item.
type ItemKind int

const (
	// ItemLiteral matches or emits Lit byte for byte.
	ItemLiteral ItemKind = iota

	// ItemSpace emits Lit and matches any run of whitespace,
	// including none.
	ItemSpace

	// ItemNumeric is an integer field with a padding policy.
	ItemNumeric

	// ItemFixed is a pattern with its own spelling rules.
	ItemFixed
)

// An Item is a single token of a compiled layout.
type Item struct {
	Kind ItemKind
	Lit  string  // ItemLiteral, ItemSpace
	Num  Numeric // ItemNumeric
	Pad  Pad     // ItemNumeric
	Fix  Fixed   // ItemFixed
}

// Pad is the padding policy of a numeric field.
type Pad int

const (
	PadZero Pad = iota
	PadSpace
	PadNone
)

// Numeric identifies an integer field of a date-time.
type Numeric int

const (
	NumYear           Numeric = iota // full proleptic Gregorian year
	NumYearDiv100                    // century number
	NumYearMod100                    // two-digit year
	NumIsoYear                       // ISO week-numbering year
	NumIsoYearMod100                 // two-digit ISO week year
	NumMonth                         // 1..12
	NumDay                           // 1..31
	NumWeekFromSun                   // 0..53, week 1 starts at first Sunday
	NumWeekFromMon                   // 0..53, week 1 starts at first Monday
	NumIsoWeek                       // 1..53
	NumWeekdayFromSun                // 0=Sunday..6=Saturday
	NumWeekdayFromMon                // 1=Monday..7=Sunday
	NumOrdinal                       // day of year, 1..366
	NumHour                          // 0..23
	NumHour12                        // 1..12
	NumMinute                        // 0..59
	NumSecond                        // 0..60, 60 encodes a leap second
	NumNanosecond                    // bare nanosecond count, no dot
	NumTimestamp                     // seconds since the Unix epoch
)

// Fixed identifies a pattern with fixed spelling.
type Fixed int

const (
	FixShortMonthName Fixed = iota
	FixLongMonthName
	FixShortWeekdayName
	FixLongWeekdayName
	FixLowerAmPm
	FixUpperAmPm
	FixNanosecond      // optional dot and fraction, trailing zeros trimmed
	FixNanosecond3     // exactly ".mmm"
	FixNanosecond6     // exactly ".uuuuuu"
	FixNanosecond9     // exactly ".nnnnnnnnn"
	FixBareNanosecond3 // exactly "mmm", no dot
	FixBareNanosecond6 // exactly "uuuuuu", no dot
	FixBareNanosecond9 // exactly "nnnnnnnnn", no dot
	FixTimezoneName
	FixTimezoneOffset        // "+0930"
	FixTimezoneOffsetZ       // "+0930", "Z" for UTC
	FixTimezoneOffsetColon   // "+09:30"
	FixTimezoneOffsetColonZ  // "+09:30", "Z" for UTC
	FixTimezoneOffsetDouble  // "+09:30:00"
	FixTimezoneOffsetTriple  // "+09", minutes only when nonzero
	fixTimezoneOffsetLenient // parse only: "+09", "+0930" or "+09:30"
	FixRFC2822
	FixRFC3339
)

func lit(s string) Item  { return Item{Kind: ItemLiteral, Lit: s} }
func sp(s string) Item   { return Item{Kind: ItemSpace, Lit: s} }
func num(n Numeric) Item { return Item{Kind: ItemNumeric, Num: n, Pad: PadZero} }
func numPad(n Numeric, p Pad) Item {
	return Item{Kind: ItemNumeric, Num: n, Pad: p}
}
func fix(f Fixed) Item { return Item{Kind: ItemFixed, Fix: f} }

var shortMonthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

var longMonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var shortWeekdayNames = [7]string{
	"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat",
}

var longWeekdayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

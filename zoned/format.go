// Copyright 2023 The Zoned Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zoned

import (
	"go.zoned.dev/format"
	"go.zoned.dev/tz"
)

// String renders the local reading followed by the zone: an offset
// such as "+09:00", or "UTC" when the value is viewed through UTC
// proper.  Two equal Times in different zones print differently; the
// text shows the view, the identity lives in the instant.
func (t Time) String() string {
	local := t.overflowingLocal()
	if t.Zone() == tz.UTC {
		return local.String() + " UTC"
	}
	return local.String() + " " + t.off.String()
}

// RFC3339 renders the local reading with its offset, as in
// "2002-10-02T15:00:00.05+02:00".
func (t Time) RFC3339() string {
	return t.RFC3339Opts(format.SecondsFormatAuto, false)
}

// RFC3339Opts renders like RFC3339 with a chosen sub-second precision.
// With useZ a zero offset is written "Z" instead of "+00:00".
func (t Time) RFC3339Opts(sf format.SecondsFormat, useZ bool) string {
	return format.RFC3339(t.overflowingLocal(), t.off.Seconds(), sf, useZ)
}

// RFC2822 renders the local reading as a message timestamp, as in
// "Tue, 20 Jan 2015 17:35:20 -0800".  Years outside 0000-9999 cannot
// be written in that grammar.
func (t Time) RFC2822() (string, error) {
	return format.RFC2822(t.overflowingLocal(), t.off.Seconds())
}

// Format renders the local reading by a strftime-style layout.
func (t Time) Format(layout string) (string, error) {
	items, err := format.LayoutItems(layout)
	if err != nil {
		return "", err
	}
	s, err := format.Format(items, t.source())
	if err != nil {
		return "", err
	}
	return s, nil
}

// AppendFormat renders like Format, appending to b.
func (t Time) AppendFormat(b []byte, layout string) ([]byte, error) {
	items, err := format.LayoutItems(layout)
	if err != nil {
		return nil, err
	}
	return format.AppendFormat(b, items, t.source())
}

func (t Time) source() format.Source {
	local := t.overflowingLocal()
	d, tod := local.Date(), local.TimeOfDay()
	off := t.off.Seconds()

	name := ""
	switch z := t.Zone().(type) {
	case tz.Location:
		name = z.ZoneName(t.utc)
	default:
		if z == tz.UTC {
			name = "UTC"
		}
	}
	return format.Source{Date: &d, Time: &tod, Offset: &off, Name: name}
}

// ParseRFC3339 reads an RFC 3339 date-time such as
// "1996-12-19T16:39:57-08:00" into a Time pinned to the offset the
// text carried.
func ParseRFC3339(input string) (Time, error) {
	p, err := format.ParseRFC3339(input)
	if err != nil {
		return Time{}, err
	}
	return fromParsed(p)
}

// ParseRFC2822 reads an RFC 2822 message timestamp such as
// "Tue, 20 Jan 2015 17:35:20 -0800".
func ParseRFC2822(input string) (Time, error) {
	p, err := format.ParseRFC2822(input)
	if err != nil {
		return Time{}, err
	}
	return fromParsed(p)
}

// Parse reads the combined date-time form leniently: single-digit
// fields, whitespace around the punctuation, and offsets written "Z",
// "+09", "+0930", or "+09:30" are all accepted.
func Parse(input string) (Time, error) {
	p, err := format.ParseRelaxed(input)
	if err != nil {
		return Time{}, err
	}
	return fromParsed(p)
}

// ParseUTC is Parse viewed through UTC.
func ParseUTC(input string) (Time, error) {
	t, err := Parse(input)
	if err != nil {
		return Time{}, err
	}
	return t.UTC(), nil
}

// ParseLayout reads input against a strftime-style layout.  The layout
// must capture an offset, or the text cannot name an instant.  Input
// beyond the layout is ErrTooLong.
func ParseLayout(layout, input string) (Time, error) {
	items, err := format.LayoutItems(layout)
	if err != nil {
		return Time{}, err
	}
	p, err := format.Parse(items, input)
	if err != nil {
		return Time{}, err
	}
	return fromParsed(p)
}

// ParseLayoutAndRemainder reads like ParseLayout but hands back the
// input following the match instead of treating it as an error.
func ParseLayoutAndRemainder(layout, input string) (Time, string, error) {
	items, err := format.LayoutItems(layout)
	if err != nil {
		return Time{}, "", err
	}
	p, rest, err := format.ParseAndRemainder(items, input)
	if err != nil {
		return Time{}, "", err
	}
	t, err := fromParsed(p)
	if err != nil {
		return Time{}, "", err
	}
	return t, rest, nil
}

func fromParsed(p *format.Parsed) (Time, error) {
	local, offSecs, err := p.DateTime()
	if err != nil {
		return Time{}, err
	}
	off, err := tz.East(offSecs)
	if err != nil {
		return Time{}, ErrOutOfRange
	}
	return fromLocalOffset(local, off, off)
}

// MarshalText renders the RFC 3339 form.  Together with UnmarshalText
// this makes Time usable wherever textual encodings are expected,
// including as a JSON string.
func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.RFC3339()), nil
}

// UnmarshalText reads the RFC 3339 form.
func (t *Time) UnmarshalText(text []byte) error {
	nt, err := ParseRFC3339(string(text))
	if err != nil {
		return err
	}
	*t = nt
	return nil
}

// MarshalJSON renders the RFC 3339 form as a JSON string.
func (t Time) MarshalJSON() ([]byte, error) {
	b := make([]byte, 0, 40)
	b = append(b, '"')
	b = format.AppendRFC3339(b, t.overflowingLocal(), t.off.Seconds(),
		format.SecondsFormatAuto, false)
	return append(b, '"'), nil
}

// UnmarshalJSON reads a JSON string in the RFC 3339 form.
func (t *Time) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return format.ErrInvalid
	}
	return t.UnmarshalText(data[1 : len(data)-1])
}

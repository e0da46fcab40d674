// Copyright 2023 The Zoned Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.zoned.dev/civil"
	"go.zoned.dev/format"
)

func source(dt civil.DateTime, off int) format.Source {
	d, t := dt.Date(), dt.TimeOfDay()
	return format.Source{Date: &d, Time: &t, Offset: &off}
}

func TestFormatLayout(t *testing.T) {
	dt := civil.MustDateTimeOf(2001, civil.July, 8, 0, 34, 59, 26_490_708)

	for _, test := range []struct {
		layout string
		want   string
	}{
		{"%Y-%m-%d", "2001-07-08"},
		{"%Y-%m-%dT%H:%M:%S%.f", "2001-07-08T00:34:59.026490708"},
		{"%C%y", "2001"},
		{"%e-%b-%Y", " 8-Jul-2001"},
		{"%A, %B %-d", "Sunday, July 8"},
		{"%a %b %e %H:%M:%S %Y", "Sun Jul  8 00:34:59 2001"},
		{"%I:%M:%S %p", "12:34:59 AM"},
		{"%l:%M %P", "12:34 am"},
		{"%j", "189"},
		{"%U %W %V %G", "27 27 27 2001"},
		{"%w %u", "0 7"},
		{"%H:%M:%S%.3f", "00:34:59.026"},
		{"%S%.6f", "59.026490"},
		{"%S %3f %6f %9f", "59 026 026490 026490708"},
		{"%f", "026490708"},
		{"%z %:z %::z", "+0930 +09:30 +09:30:00"},
		{"%s", "994518299"},
		{"100%% sure", "100% sure"},
	} {
		items, err := format.LayoutItems(test.layout)
		require.NoError(t, err, test.layout)
		got, err := format.Format(items, source(dt, 9*3600+30*60))
		require.NoError(t, err, test.layout)
		assert.Equal(t, test.want, got, test.layout)
	}
}

func TestFormatWideYearRoundTrip(t *testing.T) {
	const layout = "%Y-%m-%dT%H:%M:%S%:z"
	items, err := format.LayoutItems(layout)
	require.NoError(t, err)

	dt := civil.MustDateTimeOf(12345, civil.June, 7, 1, 2, 3, 0)
	got, err := format.Format(items, source(dt, 0))
	require.NoError(t, err)
	assert.Equal(t, "+12345-06-07T01:02:03+00:00", got)

	p, err := format.Parse(items, got)
	require.NoError(t, err)
	back, off, err := p.DateTime()
	require.NoError(t, err)
	assert.Equal(t, dt, back)
	assert.Equal(t, 0, off)
}

func TestBadLayout(t *testing.T) {
	for _, layout := range []string{"%", "%q", "%.2f", "%-", "%:q"} {
		_, err := format.LayoutItems(layout)
		assert.ErrorIs(t, err, format.ErrBadLayout, layout)
	}
}

func TestFormatMissingSource(t *testing.T) {
	d := civil.MustDateOf(2001, civil.July, 8)
	items, err := format.LayoutItems("%Y %H")
	require.NoError(t, err)
	_, err = format.Format(items, format.Source{Date: &d})
	assert.ErrorIs(t, err, format.ErrWriteFailed)
}

func TestParseLayout(t *testing.T) {
	items, err := format.LayoutItems("%Y-%m-%d %H:%M:%S %z")
	require.NoError(t, err)

	p, err := format.Parse(items, "2015-05-15 01:02:03 +0900")
	require.NoError(t, err)
	dt, off, err := p.DateTime()
	require.NoError(t, err)
	assert.Equal(t, civil.MustDateTimeOf(2015, civil.May, 15, 1, 2, 3, 0), dt)
	assert.Equal(t, 9*3600, off)

	_, err = format.Parse(items, "2015-05-15 01:02:03 +0900 extra")
	assert.ErrorIs(t, err, format.ErrTooLong)

	_, rest, err := format.ParseAndRemainder(items, "2015-05-15 01:02:03 +0900 extra")
	require.NoError(t, err)
	assert.Equal(t, " extra", rest)
}

func TestParseConflicts(t *testing.T) {
	items, err := format.LayoutItems("%Y-%m-%d %a")
	require.NoError(t, err)

	// 2015-05-15 was a Friday.
	p, err := format.Parse(items, "2015-05-15 Fri")
	require.NoError(t, err)
	_, err = p.Date()
	assert.NoError(t, err)

	p, err = format.Parse(items, "2015-05-15 Sat")
	require.NoError(t, err)
	_, err = p.Date()
	assert.ErrorIs(t, err, format.ErrImpossible)
}

func TestParseWeekNumber(t *testing.T) {
	items, err := format.LayoutItems("%Y %U %w")
	require.NoError(t, err)
	p, err := format.Parse(items, "2001 01 1")
	require.NoError(t, err)
	d, err := p.Date()
	require.NoError(t, err)
	assert.Equal(t, civil.MustDateOf(2001, civil.January, 8), d)
}

func TestParseNotEnough(t *testing.T) {
	items, err := format.LayoutItems("%m-%d")
	require.NoError(t, err)
	p, err := format.Parse(items, "05-15")
	require.NoError(t, err)
	_, err = p.Date()
	assert.ErrorIs(t, err, format.ErrNotEnough)
}

func TestParseTwoDigitYear(t *testing.T) {
	items, err := format.LayoutItems("%y-%m-%d")
	require.NoError(t, err)

	p, err := format.Parse(items, "69-01-01")
	require.NoError(t, err)
	d, err := p.Date()
	require.NoError(t, err)
	assert.Equal(t, 2069, d.Year())

	p, err = format.Parse(items, "70-01-01")
	require.NoError(t, err)
	d, err = p.Date()
	require.NoError(t, err)
	assert.Equal(t, 1970, d.Year())
}

func TestParseTimestamp(t *testing.T) {
	items, err := format.LayoutItems("%s%z")
	require.NoError(t, err)
	p, err := format.Parse(items, "994518299+0000")
	require.NoError(t, err)
	dt, off, err := p.DateTime()
	require.NoError(t, err)
	assert.Equal(t, 0, off)
	assert.Equal(t, civil.MustDateTimeOf(2001, civil.July, 7, 15, 4, 59, 0), dt)
}

func TestRFC2822Parse(t *testing.T) {
	for _, test := range []struct {
		in   string
		want civil.DateTime
		off  int
	}{
		{
			"Tue, 20 Jan 2015 17:35:20 -0800",
			civil.MustDateTimeOf(2015, civil.January, 20, 17, 35, 20, 0),
			-8 * 3600,
		},
		{
			"20 Jan 2015 17:35 +0000",
			civil.MustDateTimeOf(2015, civil.January, 20, 17, 35, 0, 0),
			0,
		},
		{
			// Two-digit years window into 1950-2049.
			"20 Jan 15 17:35:20 GMT",
			civil.MustDateTimeOf(2015, civil.January, 20, 17, 35, 20, 0),
			0,
		},
		{
			"20 Jan 55 17:35:20 GMT",
			civil.MustDateTimeOf(1955, civil.January, 20, 17, 35, 20, 0),
			0,
		},
		{
			"20 Jan 1915 17:35:20 EST",
			civil.MustDateTimeOf(1915, civil.January, 20, 17, 35, 20, 0),
			-5 * 3600,
		},
		{
			// A military zone designator reads as zero.
			"20 Jan 2015 17:35:20 K",
			civil.MustDateTimeOf(2015, civil.January, 20, 17, 35, 20, 0),
			0,
		},
		{
			"Tue, 20 Jan 2015(comment) 17:35:20 (nested (fold)\n\tcomment) -0800",
			civil.MustDateTimeOf(2015, civil.January, 20, 17, 35, 20, 0),
			-8 * 3600,
		},
	} {
		p, err := format.ParseRFC2822(test.in)
		require.NoError(t, err, test.in)
		dt, off, err := p.DateTime()
		require.NoError(t, err, test.in)
		assert.Equal(t, test.want, dt, test.in)
		assert.Equal(t, test.off, off, test.in)
	}
}

func TestRFC2822ParseErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"Tue 20 Jan 2015 17:35:20 -0800", // missing comma
		"32 Jan 2015 17:35:20 -0800",
		"20 Jan 2015 17:35:20",
		"20 Jan 2015 17:35:20 -0800 trailing",
		"20 Jan 2015 (unterminated 17:35:20 -0800",
	} {
		_, err := format.ParseRFC2822(in)
		assert.Error(t, err, "%q", in)
	}

	// A wrong weekday is detected at resolution.
	p, err := format.ParseRFC2822("Wed, 20 Jan 2015 17:35:20 -0800")
	require.NoError(t, err)
	_, _, err = p.DateTime()
	assert.ErrorIs(t, err, format.ErrImpossible)
}

func TestRFC2822Write(t *testing.T) {
	dt := civil.MustDateTimeOf(2015, civil.January, 20, 17, 35, 20, 0)
	s, err := format.RFC2822(dt, -8*3600)
	require.NoError(t, err)
	assert.Equal(t, "Tue, 20 Jan 2015 17:35:20 -0800", s)

	// Round trip.
	p, err := format.ParseRFC2822(s)
	require.NoError(t, err)
	got, off, err := p.DateTime()
	require.NoError(t, err)
	assert.Equal(t, dt, got)
	assert.Equal(t, -8*3600, off)

	_, err = format.RFC2822(civil.MustDateTimeOf(10000, civil.January, 1, 0, 0, 0, 0), 0)
	assert.ErrorIs(t, err, format.ErrWriteFailed)
	_, err = format.RFC2822(civil.MustDateTimeOf(-5, civil.January, 1, 0, 0, 0, 0), 0)
	assert.ErrorIs(t, err, format.ErrWriteFailed)
}

func TestRFC3339Parse(t *testing.T) {
	for _, test := range []struct {
		in   string
		want civil.DateTime
		off  int
	}{
		{
			"2015-02-18T23:16:09Z",
			civil.MustDateTimeOf(2015, civil.February, 18, 23, 16, 9, 0),
			0,
		},
		{
			"2015-02-18t23:16:09z",
			civil.MustDateTimeOf(2015, civil.February, 18, 23, 16, 9, 0),
			0,
		},
		{
			"2015-02-18 23:16:09+05:00",
			civil.MustDateTimeOf(2015, civil.February, 18, 23, 16, 9, 0),
			5 * 3600,
		},
		{
			"2015-02-18T23:16:09.153-04:30",
			civil.MustDateTimeOf(2015, civil.February, 18, 23, 16, 9, 153_000_000),
			-(4*3600 + 30*60),
		},
		{
			// A leap second rides on second 59.
			"2015-06-30T23:59:60.5Z",
			civil.MustDateTimeOf(2015, civil.June, 30, 23, 59, 59, 1_500_000_000),
			0,
		},
	} {
		p, err := format.ParseRFC3339(test.in)
		require.NoError(t, err, test.in)
		dt, off, err := p.DateTime()
		require.NoError(t, err, test.in)
		assert.Equal(t, test.want, dt, test.in)
		assert.Equal(t, test.off, off, test.in)
	}
}

func TestRFC3339ParseErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"2014-07-32T12:34:06Z", // day out of range
		"2014-13-01T12:34:06Z",
		"2015-02-18X23:16:09Z",
		"2015-02-18T24:16:09Z",
		"2015-02-18T23:16:61Z",
		"2015-02-18T23:16:09",
		"2015-02-18T23:16:09Ztrailing",
		"996-12-19T16:39:57Z", // date-fullyear is exactly four digits
		"96-12-19T16:39:57Z",
	} {
		_, err := format.ParseRFC3339(in)
		assert.Error(t, err, "%q", in)
	}

	// The relaxed reader still accepts short years.
	p, err := format.ParseRelaxed("996-12-19T16:39:57Z")
	require.NoError(t, err)
	dt, off, err := p.DateTime()
	require.NoError(t, err)
	assert.Equal(t, civil.MustDateTimeOf(996, civil.December, 19, 16, 39, 57, 0), dt)
	assert.Equal(t, 0, off)
}

func TestRFC3339Write(t *testing.T) {
	dt := civil.MustDateTimeOf(2015, civil.February, 18, 23, 16, 9, 150_000_000)

	for _, test := range []struct {
		sf   format.SecondsFormat
		useZ bool
		off  int
		want string
	}{
		{format.SecondsFormatAuto, true, 0, "2015-02-18T23:16:09.150Z"},
		{format.SecondsFormatSecs, true, 0, "2015-02-18T23:16:09Z"},
		{format.SecondsFormatMillis, false, 0, "2015-02-18T23:16:09.150+00:00"},
		{format.SecondsFormatMicros, true, 0, "2015-02-18T23:16:09.150000Z"},
		{format.SecondsFormatNanos, true, -8 * 3600, "2015-02-18T23:16:09.150000000-08:00"},
	} {
		got := format.RFC3339(dt, test.off, test.sf, test.useZ)
		assert.Equal(t, test.want, got)
	}

	whole := civil.MustDateTimeOf(2015, civil.February, 18, 23, 16, 9, 0)
	assert.Equal(t, "2015-02-18T23:16:09Z",
		format.RFC3339(whole, 0, format.SecondsFormatAuto, true))
}

func TestParseRelaxed(t *testing.T) {
	want := civil.MustDateTimeOf(2015, civil.February, 18, 23, 16, 9, 0)
	for _, test := range []struct {
		in  string
		off int
	}{
		{"2015-2-18T23:16:09Z", 0},
		{"2015-02-18T23:16:09 +09", 9 * 3600},
		{"2015-02-18T23:16:09+0930", 9*3600 + 30*60},
		{"2015-02-18T23:16:09 -08:00  ", -8 * 3600},
	} {
		p, err := format.ParseRelaxed(test.in)
		require.NoError(t, err, test.in)
		dt, off, err := p.DateTime()
		require.NoError(t, err, test.in)
		assert.Equal(t, want, dt, test.in)
		assert.Equal(t, test.off, off, test.in)
	}
}

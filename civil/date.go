// Copyright 2023 The Zoned Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package civil implements timezone-less calendar dates, times of day, and
// their combination, together with an exact signed duration type.
//
// A civil value records "what the clock reads" with no notion of where the
// clock is. The zoned package combines a civil.DateTime known to be in UTC
// with a tz.Zone capability to form an absolute instant.
//
// Times of day may encode a positive leap second: a Nanosecond value of
// 1,000,000,000 or more represents the inserted 61st second of a UTC minute.
// See the TimeOfDay documentation for the exact rules.
package civil

import (
	"fmt"
)

// A Date is a calendar date in the proleptic Gregorian calendar.
//
// The zero Date is January 1, 1970. The representable range of years is
// MinYear through MaxYear; constructors report an error outside it.
type Date struct {
	days int32 // days since 1970-01-01
}

// Year bounds of the representable Date range. The span is wide enough that
// the difference between any two representable DateTimes fits in a Delta.
const (
	MinYear = -262144
	MaxYear = 262143
)

const (
	minDays = -96465658 // MinYear-01-01
	maxDays = 95026601  // MaxYear-12-31
)

// MinDate and MaxDate are the bounds of the representable Date range.
var (
	MinDate = Date{minDays}
	MaxDate = Date{maxDays}
)

// A Month specifies a month of the year (January = 1, ...).
type Month int

const (
	January Month = 1 + iota
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

var longMonthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

func (m Month) String() string {
	if January <= m && m <= December {
		return longMonthNames[m-1]
	}
	return fmt.Sprintf("%%!Month(%d)", int(m))
}

// A Weekday specifies a day of the week (Sunday = 0, ...).
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var longWeekdayNames = [...]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

func (w Weekday) String() string {
	if Sunday <= w && w <= Saturday {
		return longWeekdayNames[w]
	}
	return fmt.Sprintf("%%!Weekday(%d)", int(w))
}

// NumberFromMonday returns the ISO 8601 weekday number (Monday = 1 ... Sunday = 7).
func (w Weekday) NumberFromMonday() int {
	if w == Sunday {
		return 7
	}
	return int(w)
}

// An ISOWeek identifies an ISO 8601 week: week 1 is the week containing the
// first Thursday of the year.
type ISOWeek struct {
	Year int
	Week int
}

// DateOf returns the Date with the given year, month, and day.
// It reports an error if the field values do not name a real calendar day
// or the year is outside the representable range.
func DateOf(year int, month Month, day int) (Date, error) {
	if year < MinYear || year > MaxYear {
		return Date{}, fmt.Errorf("civil: year %d out of range", year)
	}
	if month < January || month > December {
		return Date{}, fmt.Errorf("civil: month %d out of range", int(month))
	}
	if day < 1 || day > daysInMonth(year, month) {
		return Date{}, fmt.Errorf("civil: day %d out of range for %v %d", day, month, year)
	}
	return Date{int32(daysFromCivil(year, month, day))}, nil
}

// MustDateOf is like DateOf but panics on error. Intended for constants in
// tests and initialization.
func MustDateOf(year int, month Month, day int) Date {
	d, err := DateOf(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOfOrdinal returns the Date with the given year and day of year
// (1 = January 1).
func DateOfOrdinal(year, ordinal int) (Date, error) {
	if year < MinYear || year > MaxYear {
		return Date{}, fmt.Errorf("civil: year %d out of range", year)
	}
	if ordinal < 1 || ordinal > daysInYear(year) {
		return Date{}, fmt.Errorf("civil: ordinal day %d out of range for year %d", ordinal, year)
	}
	return Date{int32(daysFromCivil(year, January, 1) + int64(ordinal) - 1)}, nil
}

// DateOfISOWeek returns the Date with the given ISO 8601 week-based year,
// week number, and weekday.
func DateOfISOWeek(isoYear, week int, weekday Weekday) (Date, error) {
	if isoYear < MinYear || isoYear > MaxYear {
		return Date{}, fmt.Errorf("civil: ISO year %d out of range", isoYear)
	}
	if week < 1 || week > isoWeeksInYear(isoYear) {
		return Date{}, fmt.Errorf("civil: ISO week %d out of range for year %d", week, isoYear)
	}
	// January 4 is always in week 1.
	jan4 := daysFromCivil(isoYear, January, 4)
	jan4wd := weekdayOfDays(jan4).NumberFromMonday()
	days := jan4 - int64(jan4wd-1) + int64(week-1)*7 + int64(weekday.NumberFromMonday()-1)
	if days < minDays || days > maxDays {
		return Date{}, fmt.Errorf("civil: date out of range")
	}
	return Date{int32(days)}, nil
}

// Year returns the year of the date.
func (d Date) Year() int {
	y, _, _ := d.ymd()
	return y
}

// Month returns the month of the date.
func (d Date) Month() Month {
	_, m, _ := d.ymd()
	return m
}

// Day returns the day of the month, in the range 1 through 31.
func (d Date) Day() int {
	_, _, day := d.ymd()
	return day
}

// YMD returns the year, month, and day fields of the date.
func (d Date) YMD() (year int, month Month, day int) {
	return d.ymd()
}

// Ordinal returns the day of the year, in the range 1 through 366.
func (d Date) Ordinal() int {
	y, _, _ := d.ymd()
	return int(int64(d.days)-daysFromCivil(y, January, 1)) + 1
}

// Weekday returns the day of the week.
func (d Date) Weekday() Weekday {
	return weekdayOfDays(int64(d.days))
}

// ISOWeek returns the ISO 8601 week-based year and week number.
func (d Date) ISOWeek() ISOWeek {
	year := d.Year()
	week := (d.Ordinal() - d.Weekday().NumberFromMonday() + 10) / 7
	if week < 1 {
		year--
		week = isoWeeksInYear(year)
	} else if week > isoWeeksInYear(year) {
		year++
		week = 1
	}
	return ISOWeek{Year: year, Week: week}
}

// AddDays returns the date n calendar days after d (or before, for negative
// n). It reports an error if the result is out of range.
func (d Date) AddDays(n int64) (Date, error) {
	days := int64(d.days) + n
	if days < minDays || days > maxDays {
		return Date{}, fmt.Errorf("civil: date out of range")
	}
	return Date{int32(days)}, nil
}

// AddMonths returns the date n calendar months after d (or before, for
// negative n). If the day of the month does not exist in the target month,
// the result is clamped to the last day of that month.
func (d Date) AddMonths(n int64) (Date, error) {
	y, m, day := d.ymd()
	months := int64(y)*12 + int64(m) - 1 + n
	ny := floorDiv(months, 12)
	nm := Month(months - ny*12 + 1)
	if ny < MinYear || ny > MaxYear {
		return Date{}, fmt.Errorf("civil: date out of range")
	}
	if last := daysInMonth(int(ny), nm); day > last {
		day = last
	}
	return DateOf(int(ny), nm, day)
}

// WithYear returns the date with the year changed. Changing the year of
// February 29 to a common year reports an error rather than shifting the day.
func (d Date) WithYear(year int) (Date, error) {
	_, m, day := d.ymd()
	return DateOf(year, m, day)
}

// WithMonth returns the date with the month changed.
func (d Date) WithMonth(month Month) (Date, error) {
	y, _, day := d.ymd()
	return DateOf(y, month, day)
}

// WithDay returns the date with the day of month changed.
func (d Date) WithDay(day int) (Date, error) {
	y, m, _ := d.ymd()
	return DateOf(y, m, day)
}

// WithOrdinal returns the date with the day of year changed.
func (d Date) WithOrdinal(ordinal int) (Date, error) {
	return DateOfOrdinal(d.Year(), ordinal)
}

// Sub returns the number of calendar days from u until d.
func (d Date) Sub(u Date) int64 {
	return int64(d.days) - int64(u.days)
}

// Compare returns -1, 0, or +1 depending on whether d is before, equal to,
// or after u.
func (d Date) Compare(u Date) int {
	switch {
	case d.days < u.days:
		return -1
	case d.days > u.days:
		return 1
	}
	return 0
}

// At combines a date and a time of day into a DateTime.
func (d Date) At(t TimeOfDay) DateTime {
	return DateTime{date: d, tod: t}
}

// String returns an ISO 8601 representation such as "2006-01-02".
// Years outside 0000 through 9999 carry an explicit sign, as in "+12345-06-07".
func (d Date) String() string {
	y, m, day := d.ymd()
	if 0 <= y && y <= 9999 {
		return fmt.Sprintf("%04d-%02d-%02d", y, int(m), day)
	}
	return fmt.Sprintf("%+05d-%02d-%02d", y, int(m), day)
}

func (d Date) ymd() (int, Month, int) {
	y, m, day := civilFromDays(int64(d.days))
	return int(y), m, day
}

// IsLeapYear reports whether year is a leap year in the proleptic Gregorian
// calendar.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

var monthDays = [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func daysInMonth(year int, month Month) int {
	if month == February && IsLeapYear(year) {
		return 29
	}
	return monthDays[month-1]
}

func isoWeeksInYear(year int) int {
	// A year has 53 ISO weeks iff it starts or ends on a Thursday.
	p := func(y int) int {
		return int(floorMod(int64(y)+floorDiv(int64(y), 4)-floorDiv(int64(y), 100)+floorDiv(int64(y), 400), 7))
	}
	if p(year) == 4 || p(year-1) == 3 {
		return 53
	}
	return 52
}

func weekdayOfDays(days int64) Weekday {
	// 1970-01-01 was a Thursday.
	return Weekday(floorMod(days+4, 7))
}

// daysFromCivil converts a calendar day to a count of days since 1970-01-01,
// using Howard Hinnant's era-based algorithm.
func daysFromCivil(year int, month Month, day int) int64 {
	y := int64(year)
	if month <= February {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	var mp int64
	if month > February {
		mp = int64(month) - 3
	} else {
		mp = int64(month) + 9
	}
	doy := (153*mp+2)/5 + int64(day) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}

// civilFromDays is the inverse of daysFromCivil.
func civilFromDays(days int64) (int64, Month, int) {
	z := days + 719468
	era := floorDiv(z, 146097)
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	day := int(doy - (153*mp+2)/5 + 1)
	var m Month
	if mp < 10 {
		m = Month(mp + 3)
	} else {
		m = Month(mp - 9)
	}
	if m <= February {
		y++
	}
	return y, m, day
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}

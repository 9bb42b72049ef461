package civil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func unixToAbs(unixSec int64) uint64 {
	return uint64(unixSec + UnixToAbsolute)
}

func TestIsLeap(t *testing.T) {
	cases := []struct {
		year int
		want bool
	}{
		{2000, true},
		{1900, false},
		{2004, true},
		{2023, false},
		{2024, true},
		{-400, true}, // divisible by 400
		{-100, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, IsLeap(c.year), "year %d", c.year)
		// property 3: isLeap(y) holds iff (y%4==0 && (y%100!=0 || y%400==0))
		expected := c.year%4 == 0 && (c.year%100 != 0 || c.year%400 == 0)
		assert.Equal(t, expected, IsLeap(c.year))
	}
}

func TestAbsDateScenarios(t *testing.T) {
	cases := []struct {
		name          string
		unixSec       int64
		year          int
		month         Month
		day           int
		weekday       Weekday
	}{
		{"unix epoch", 0, 1970, January, 1, Thursday},
		{"scenario 2", 1221681866, 2008, September, 17, Wednesday},
		{"scenario 3", -1221681866, 1931, April, 16, Thursday},
		{"scenario 4", -11644473600, 1601, January, 1, Monday},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			abs := unixToAbs(c.unixSec)
			d := AbsDate(abs, true)
			assert.Equal(t, c.year, d.Year)
			assert.Equal(t, c.month, d.Month)
			assert.Equal(t, c.day, d.Day)
			assert.Equal(t, c.weekday, AbsWeekday(abs))
		})
	}
}

func TestAbsClock(t *testing.T) {
	abs := unixToAbs(1221681866)
	c := AbsClock(abs)
	assert.Equal(t, Clock{Hour: 20, Min: 4, Sec: 26}, c)
}

func TestISOWeekBounds(t *testing.T) {
	for year := 1900; year < 2100; year++ {
		for yday := 0; yday < 365+boolInt(IsLeap(year)); yday++ {
			abs := uint64(int64(daysSinceAbsoluteZero(year))+int64(yday)) * SecondsPerDay
			d := AbsDate(abs, true)
			wd := AbsWeekday(abs)
			w := ISOWeekFor(d.Year, d.Month, d.Day, d.YDay, wd)
			assert.GreaterOrEqual(t, w.Week, 1)
			assert.LessOrEqual(t, w.Week, 53)
		}
	}
}

func TestISOWeek53Property(t *testing.T) {
	// property 4: week 53 occurs iff Jan 1 is Thursday, or (Jan 1 is
	// Wednesday and the year is a leap year).
	for year := 1901; year < 2100; year++ {
		has53 := false
		yday := 365 + boolInt(IsLeap(year)) - 1 // Dec 31
		abs := uint64(int64(daysSinceAbsoluteZero(year))+int64(yday)) * SecondsPerDay
		d := AbsDate(abs, true)
		wd := AbsWeekday(abs)
		w := ISOWeekFor(d.Year, d.Month, d.Day, d.YDay, wd)
		if w.Year == year && w.Week == 53 {
			has53 = true
		}
		jan1 := jan1Weekday(year)
		want := jan1 == Thursday || (jan1 == Wednesday && IsLeap(year))
		assert.Equal(t, want, has53, "year %d", year)
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func TestMonthString(t *testing.T) {
	assert.Equal(t, "January", January.String())
	assert.Equal(t, "December", December.String())
}

func TestWeekdayString(t *testing.T) {
	assert.Equal(t, "Sunday", Sunday.String())
	assert.Equal(t, "Saturday", Saturday.String())
}

// Package tzrule expands a tzsrc.Rule's recurring ON/AT fields into the
// concrete Unix second at which it falls in a given calendar year.
//
// It resolves the "lastSun", "Sun>=8" and "Sun<=25" day forms tzdata
// source uses by searching for the matching weekday within the
// relevant window, built on top of the civil package's calendar engine
// rather than reimplementing weekday arithmetic separately.
package tzrule

import (
	"fmt"

	"github.com/nanotime/chron/civil"
	"github.com/nanotime/chron/tzsrc"
)

// ResolveDay returns the day of month (1-indexed) that a tzsrc.Day
// selects within the given year and month.
func ResolveDay(year, month int, day tzsrc.Day) (int, error) {
	m := civil.Month(month)
	daysInMonth := civil.DaysBeforeMonth(year, m+1) - civil.DaysBeforeMonth(year, m)

	weekdayOf := func(d int) civil.Weekday {
		abs := civil.DaysSinceAbsoluteZero(year) + uint64(civil.DaysBeforeMonth(year, m)) + uint64(d-1)
		return civil.AbsWeekday(abs * civil.SecondsPerDay)
	}

	switch day.Form {
	case tzsrc.DayNum:
		if day.Num < 1 || day.Num > daysInMonth {
			return 0, fmt.Errorf("tzrule: day %d out of range for %d-%02d", day.Num, year, month)
		}
		return day.Num, nil

	case tzsrc.DayLast:
		for d := daysInMonth; d >= 1; d-- {
			if int(weekdayOf(d)) == day.Weekday {
				return d, nil
			}
		}

	case tzsrc.DayAfter:
		for d := day.Num; d <= daysInMonth; d++ {
			if int(weekdayOf(d)) == day.Weekday {
				return d, nil
			}
		}

	case tzsrc.DayBefore:
		for d := day.Num; d >= 1; d-- {
			if int(weekdayOf(d)) == day.Weekday {
				return d, nil
			}
		}
	}

	return 0, fmt.Errorf("tzrule: no matching day in %d-%02d for %+v", year, month, day)
}

// Occurrence is one resolved instant a Rule transitions at, expressed
// as the Unix second once the rule's AT reading has been converted to
// UTC using stdOffset (the zone's standard offset) and prevSave (the
// save in effect immediately before this rule fires, needed to
// interpret an AT field expressed in wall-clock/daylight terms),
// together with the rule's SAVE and LETTER.
type Occurrence struct {
	UnixUTC int64
	Save    int
	Letter  string
}

// Expand resolves rule for the single calendar year, returning the Unix
// second (UTC) at which it takes effect, given the zone's standard
// offset (seconds east of UT) and the save in effect just before this
// rule fires (used only when the rule's AT field is in wall-clock
// terms).
func Expand(rule tzsrc.Rule, year int, stdOffset int, prevSave int) (Occurrence, error) {
	day, err := ResolveDay(year, rule.Month, rule.On)
	if err != nil {
		return Occurrence{}, err
	}

	localSec := int64(civil.DaysSinceAbsoluteZero(year))+int64(civil.DaysBeforeMonth(year, civil.Month(rule.Month)))+int64(day-1)
	localSec *= civil.SecondsPerDay
	localSec += int64(rule.At.Seconds)
	localSec += civil.AbsoluteToInternal + civil.InternalToUnix

	var utcSec int64
	switch rule.At.Suffix {
	case tzsrc.ClockUTC:
		utcSec = localSec
	case tzsrc.ClockStandard:
		utcSec = localSec - int64(stdOffset)
	default: // wall clock: includes whatever save was in effect beforehand
		utcSec = localSec - int64(stdOffset) - int64(prevSave)
	}

	return Occurrence{UnixUTC: utcSec, Save: rule.Save, Letter: rule.Letter}, nil
}

// InForce reports whether rule applies to year, honoring the FROM/TO
// (open-ended MinYear/MaxYear) bounds.
func InForce(rule tzsrc.Rule, year int) bool {
	return year >= rule.From && year <= rule.To
}

// YearsFor returns every year in [loYear, hiYear] rule applies to,
// clamped to the rule's own FROM/TO bounds.
func YearsFor(rule tzsrc.Rule, loYear, hiYear int) []int {
	from, to := rule.From, rule.To
	if from < loYear {
		from = loYear
	}
	if to > hiYear {
		to = hiYear
	}
	if from > to {
		return nil
	}
	years := make([]int, 0, to-from+1)
	for y := from; y <= to; y++ {
		years = append(years, y)
	}
	return years
}

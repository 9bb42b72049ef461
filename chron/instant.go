// Package chron implements the dual wall/monotonic instant and its
// associated Duration arithmetic, generalizing the encoding used by the
// Go standard library's time.Time (and mirrored, stripped of zone
// support, by the retrieval pack's zerjioang/time32) to carry an
// optional time zone Location.
package chron

import (
	"github.com/nanotime/chron/civil"
	"github.com/nanotime/chron/tzlookup"
	"github.com/nanotime/chron/tzzone"
)

// Instant represents a point in time with nanosecond precision.
//
// An Instant is encoded as two fields, wall and ext, so that the common
// case of a reading taken from Now fits in a compact form that still
// carries a monotonic reading alongside the wall clock:
//
//   - The high bit of wall is the "has monotonic reading" flag.
//   - The low 30 bits of wall always hold the nanosecond-within-second.
//   - If the flag is set, bits 1..33 of wall hold seconds since
//     1885-01-01 UTC, and ext holds an opaque monotonic reading.
//   - If the flag is clear, wall holds only the nanoseconds and ext
//     holds seconds since year 1 (the internal epoch).
//
// An Instant outside the 1885-2157 window is always stored with the
// flag clear. An Instant may also carry a reference to an immutable
// *tzzone.Location; a nil Location means UTC.
type Instant struct {
	wall uint64
	ext  int64
	loc  *tzzone.Location
}

const (
	nsecMask     = 1<<30 - 1
	nsecShift    = 30
	hasMonotonic = 1 << 63

	minWall = civil.WallToInternal               // year 1885
	maxWall = civil.WallToInternal + (1<<33 - 1) // year 2157
)

// nsec returns the instant's nanosecond-within-second.
func (t *Instant) nsec() int32 {
	return int32(t.wall & nsecMask)
}

// sec returns the instant's seconds since the internal epoch (year 1).
func (t *Instant) sec() int64 {
	if t.wall&hasMonotonic != 0 {
		return civil.WallToInternal + int64(t.wall<<1>>(nsecShift+1))
	}
	return t.ext
}

// unixSec returns the instant's seconds since the Unix epoch.
func (t *Instant) unixSec() int64 { return t.sec() + civil.InternalToUnix }

// addSec adds d seconds to the instant, dropping the monotonic flag if
// the resulting wall second no longer fits the compact 33-bit window.
func (t *Instant) addSec(d int64) {
	if t.wall&hasMonotonic != 0 {
		sec := int64(t.wall << 1 >> (nsecShift + 1))
		dsec := sec + d
		if 0 <= dsec && dsec <= 1<<33-1 {
			t.wall = t.wall&nsecMask | uint64(dsec)<<nsecShift | hasMonotonic
			return
		}
		t.stripMono()
	}
	t.ext += d
}

// stripMono drops the monotonic reading, if present.
func (t *Instant) stripMono() {
	if t.wall&hasMonotonic != 0 {
		t.ext = t.sec()
		t.wall &= nsecMask
	}
}

// In returns t with its presentation Location changed to loc. It does
// not change the instant denoted; a nil loc means UTC.
func (t Instant) In(loc *tzzone.Location) Instant {
	t.loc = loc
	return t
}

// Location returns the Location t presents in, or nil for UTC.
func (t Instant) Location() *tzzone.Location { return t.loc }

// unixFromDate converts civil fields, read as UTC, to a Unix second
// count, via the absolute-time bridge in package civil.
func unixFromDate(year int, month civil.Month, day, hour, min, sec int) int64 {
	d := int64(civil.DaysSinceAbsoluteZero(year)) + int64(civil.DaysBeforeMonth(year, month)) + int64(day-1)
	abs := uint64(d)*civil.SecondsPerDay + uint64(hour)*civil.SecondsPerHour + uint64(min)*civil.SecondsPerMinute + uint64(sec)
	return int64(abs) + civil.AbsoluteToInternal + civil.InternalToUnix
}

// Unix returns the Instant corresponding to sec seconds and nsec
// nanoseconds since the Unix epoch. nsec is normalized into [0, 1e9);
// it is valid to pass an nsec outside that range.
func Unix(sec, nsec int64, loc *tzzone.Location) Instant {
	if nsec < 0 || nsec >= 1e9 {
		n := nsec / 1e9
		sec += n
		nsec -= n * 1e9
		if nsec < 0 {
			nsec += 1e9
			sec--
		}
	}
	return Instant{wall: uint64(nsec), ext: sec + civil.UnixToInternal, loc: loc}
}

// Date returns the Instant corresponding to the given civil date and
// time in loc (nil meaning UTC). It does not carry a monotonic reading.
func Date(year int, month civil.Month, day, hour, min, sec, nsec int, loc *tzzone.Location) Instant {
	unix := unixFromDate(year, month, day, hour, min, sec)
	if loc != nil {
		_, offset, _, _, _ := tzlookup.Lookup(loc, unix)
		unix -= int64(offset)
	}
	return Unix(unix, int64(nsec), loc)
}

// Now returns the Instant representing the current point in time as
// read from clock, presented in loc.
func Now(loc *tzzone.Location, clock Clock) Instant {
	r := clock.Read()
	mono := r.Mono
	sec := r.WallSec + civil.UnixToInternal - minWall
	var t Instant
	t.loc = loc
	if uint64(sec)>>33 != 0 {
		t.wall = uint64(r.WallNsec)
		t.ext = sec + minWall
		return t
	}
	t.wall = hasMonotonic | uint64(sec)<<nsecShift | uint64(r.WallNsec)
	t.ext = int64(mono)
	return t
}

// UnixSeconds returns the instant's wall seconds since the Unix epoch.
func (t Instant) UnixSeconds() int64 { return t.unixSec() }

// UnixNano returns the instant's wall nanoseconds since the Unix epoch.
func (t Instant) UnixNano() int64 { return t.unixSec()*1e9 + int64(t.nsec()) }

// Nanosecond returns the nanosecond offset within the second, in
// [0, 999999999].
func (t Instant) Nanosecond() int { return int(t.nsec()) }

// IsZero reports whether t is the zero Instant, January 1 year 1,
// 00:00:00 UTC.
func (t Instant) IsZero() bool {
	var z Instant
	return t.sec() == z.sec() && t.nsec() == 0 && t.wall&hasMonotonic == 0
}

// Before reports whether t occurs before u. If both carry a monotonic
// reading, the comparison is decided by the monotonic values alone.
func (t Instant) Before(u Instant) bool {
	if t.wall&u.wall&hasMonotonic != 0 {
		return t.ext < u.ext
	}
	return t.sec() < u.sec() || t.sec() == u.sec() && t.nsec() < u.nsec()
}

// After reports whether t occurs after u. If both carry a monotonic
// reading, the comparison is decided by the monotonic values alone.
func (t Instant) After(u Instant) bool {
	if t.wall&u.wall&hasMonotonic != 0 {
		return t.ext > u.ext
	}
	return t.sec() > u.sec() || t.sec() == u.sec() && t.nsec() > u.nsec()
}

// Equal reports whether t and u denote the same instant. Unlike Before
// and After, Equal always uses wall-clock semantics, even when both
// operands carry a monotonic reading: two readings a monotonic
// comparison would consider distinct but whose wall clocks agree are
// still Equal.
func (t Instant) Equal(u Instant) bool {
	return t.sec() == u.sec() && t.nsec() == u.nsec()
}

// Add returns t+d.
func (t Instant) Add(d Duration) Instant {
	dsec := int64(d / 1e9)
	nsec := t.nsec() + int32(d%1e9)
	if nsec >= 1e9 {
		dsec++
		nsec -= 1e9
	} else if nsec < 0 {
		dsec--
		nsec += 1e9
	}
	t.wall = t.wall&^uint64(nsecMask) | uint64(nsec)
	t.addSec(dsec)
	if t.wall&hasMonotonic != 0 {
		te := t.ext + int64(d)
		if d < 0 && te > t.ext || d > 0 && te < t.ext {
			t.stripMono()
		} else {
			t.ext = te
		}
	}
	return t
}

// Sub returns the Duration t-u. If both carry a monotonic reading, the
// monotonic difference is used; otherwise the wall-clock difference is
// used. The result saturates at the minimum or maximum Duration on
// overflow.
func (t Instant) Sub(u Instant) Duration {
	if t.wall&u.wall&hasMonotonic != 0 {
		te, ue := t.ext, u.ext
		d := Duration(te - ue)
		if d < 0 && te > ue {
			return maxDuration
		}
		if d > 0 && te < ue {
			return minDuration
		}
		return d
	}
	d := Duration(t.sec()-u.sec())*Second + Duration(t.nsec()-u.nsec())
	switch {
	case u.Add(d).Equal(t):
		return d
	case t.Before(u):
		return minDuration
	default:
		return maxDuration
	}
}

// zoneOffset returns the zone name and offset (seconds east of UTC)
// presented at this instant.
func (t Instant) zoneOffset() (name string, offset int32, isDST bool) {
	if t.loc == nil {
		return "UTC", 0, false
	}
	name, offset, isDST, _, _ = tzlookup.Lookup(t.loc, t.unixSec())
	return
}

// abs returns the zone-adjusted absolute second count used by the
// calendar engine: unix seconds, plus the zone offset, translated into
// the absolute epoch.
func (t Instant) abs() uint64 {
	_, offset, _ := t.zoneOffset()
	sec := t.unixSec() + int64(offset)
	return uint64(sec + civil.UnixToInternal + civil.InternalToAbsolute)
}

// Date returns the year, month and day in t's Location.
func (t Instant) Date() (year int, month civil.Month, day int) {
	d := civil.AbsDate(t.abs(), true)
	return d.Year, d.Month, d.Day
}

// Year returns the year in t's Location.
func (t Instant) Year() int {
	d := civil.AbsDate(t.abs(), false)
	return d.Year
}

// Month returns the month in t's Location.
func (t Instant) Month() civil.Month {
	d := civil.AbsDate(t.abs(), true)
	return d.Month
}

// Day returns the day of month in t's Location.
func (t Instant) Day() int {
	d := civil.AbsDate(t.abs(), true)
	return d.Day
}

// YearDay returns the day of the year in t's Location, in [1, 366].
func (t Instant) YearDay() int {
	d := civil.AbsDate(t.abs(), false)
	return d.YDay + 1
}

// Weekday returns the day of the week in t's Location.
func (t Instant) Weekday() civil.Weekday {
	return civil.AbsWeekday(t.abs())
}

// Clock returns the hour, minute and second in t's Location.
func (t Instant) Clock() (hour, min, sec int) {
	c := civil.AbsClock(t.abs())
	return c.Hour, c.Min, c.Sec
}

// Hour returns the hour in t's Location, in [0, 23].
func (t Instant) Hour() int { h, _, _ := t.Clock(); return h }

// Minute returns the minute in t's Location, in [0, 59].
func (t Instant) Minute() int { _, m, _ := t.Clock(); return m }

// Second returns the second in t's Location, in [0, 59].
func (t Instant) Second() int { _, _, s := t.Clock(); return s }

// ISOWeek returns the ISO 8601 year and week number in t's Location.
func (t Instant) ISOWeek() civil.ISOWeek {
	abs := t.abs()
	d := civil.AbsDate(abs, true)
	wd := civil.AbsWeekday(abs)
	return civil.ISOWeekFor(d.Year, d.Month, d.Day, d.YDay, wd)
}

// ZoneInfo describes the zone presented at an instant.
type ZoneInfo struct {
	Name   string
	Offset int32 // seconds east of UTC
	IsDST  bool
}

// Zone returns the zone abbreviation and offset presented at t.
func (t Instant) Zone() ZoneInfo {
	name, offset, isDST := t.zoneOffset()
	return ZoneInfo{Name: name, Offset: offset, IsDST: isDST}
}

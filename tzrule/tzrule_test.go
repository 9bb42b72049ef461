package tzrule

import (
	"testing"
	"time"

	"github.com/nanotime/chron/tzsrc"
)

func TestResolveDayLastSun(t *testing.T) {
	// Sunday, October 28, 2007 is the last Sunday of that month.
	day, err := ResolveDay(2007, 10, tzsrc.Day{Form: tzsrc.DayLast, Weekday: 0})
	if err != nil {
		t.Fatalf("ResolveDay() error = %v", err)
	}
	if day != 28 {
		t.Errorf("ResolveDay(lastSun, 2007-10) = %d, want 28", day)
	}
}

func TestResolveDaySunAfter(t *testing.T) {
	// Sunday, March 11, 2007 is the US DST rule's "second Sunday of March".
	day, err := ResolveDay(2007, 3, tzsrc.Day{Form: tzsrc.DayAfter, Weekday: 0, Num: 8})
	if err != nil {
		t.Fatalf("ResolveDay() error = %v", err)
	}
	if day != 11 {
		t.Errorf("ResolveDay(Sun>=8, 2007-03) = %d, want 11", day)
	}
}

func TestResolveDaySunBefore(t *testing.T) {
	// Sunday on or before the 25th of March 2007: March 25 is itself a Sunday.
	day, err := ResolveDay(2007, 3, tzsrc.Day{Form: tzsrc.DayBefore, Weekday: 0, Num: 25})
	if err != nil {
		t.Fatalf("ResolveDay() error = %v", err)
	}
	if day != 25 {
		t.Errorf("ResolveDay(Sun<=25, 2007-03) = %d, want 25", day)
	}
}

func TestResolveDayNum(t *testing.T) {
	day, err := ResolveDay(2007, 3, tzsrc.Day{Form: tzsrc.DayNum, Num: 15})
	if err != nil {
		t.Fatalf("ResolveDay() error = %v", err)
	}
	if day != 15 {
		t.Errorf("ResolveDay(15) = %d, want 15", day)
	}
}

func TestResolveDayNumOutOfRange(t *testing.T) {
	_, err := ResolveDay(2007, 2, tzsrc.Day{Form: tzsrc.DayNum, Num: 30})
	if err == nil {
		t.Error("ResolveDay(30, Feb) error = nil, want out-of-range error")
	}
}

func TestExpandUTCClock(t *testing.T) {
	rule := tzsrc.Rule{
		Month: 3,
		On:    tzsrc.Day{Form: tzsrc.DayAfter, Weekday: 0, Num: 8},
		At:    tzsrc.ClockTime{Seconds: 2 * 3600, Suffix: tzsrc.ClockUTC},
		Save:  3600,
		Letter: "D",
	}
	occ, err := Expand(rule, 2007, -8*3600, 0)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	want := time.Date(2007, 3, 11, 2, 0, 0, 0, time.UTC).Unix()
	if occ.UnixUTC != want {
		t.Errorf("Expand() UnixUTC = %d, want %d (2007-03-11 02:00 UTC)", occ.UnixUTC, want)
	}
	if occ.Save != 3600 || occ.Letter != "D" {
		t.Errorf("Expand() Save/Letter = %d/%q, want 3600/D", occ.Save, occ.Letter)
	}
}

func TestExpandWallClock(t *testing.T) {
	// 2:00 wall clock with a standard offset of -8h and a prior save of 0
	// means the wall reading equals standard time here, so this should
	// match the UTC-clock case computed the long way: 02:00 local
	// standard == 10:00 UTC.
	rule := tzsrc.Rule{
		Month: 3,
		On:    tzsrc.Day{Form: tzsrc.DayAfter, Weekday: 0, Num: 8},
		At:    tzsrc.ClockTime{Seconds: 2 * 3600, Suffix: tzsrc.ClockWall},
	}
	occ, err := Expand(rule, 2007, -8*3600, 0)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	want := time.Date(2007, 3, 11, 10, 0, 0, 0, time.UTC).Unix()
	if occ.UnixUTC != want {
		t.Errorf("Expand() UnixUTC = %d, want %d", occ.UnixUTC, want)
	}
}

func TestExpandWallClockWithPriorSave(t *testing.T) {
	rule := tzsrc.Rule{
		Month: 11,
		On:    tzsrc.Day{Form: tzsrc.DayAfter, Weekday: 0, Num: 1},
		At:    tzsrc.ClockTime{Seconds: 2 * 3600, Suffix: tzsrc.ClockWall},
	}
	occ, err := Expand(rule, 2007, -8*3600, 3600)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	// 02:00 wall (still daylight, save=3600 in effect) == 01:00 standard
	// == 09:00 UTC.
	want := time.Date(2007, 11, 4, 9, 0, 0, 0, time.UTC).Unix()
	if occ.UnixUTC != want {
		t.Errorf("Expand() UnixUTC = %d, want %d", occ.UnixUTC, want)
	}
}

func TestInForce(t *testing.T) {
	rule := tzsrc.Rule{From: 2007, To: tzsrc.MaxYear}
	if !InForce(rule, 2007) || !InForce(rule, 2030) {
		t.Error("InForce() = false, want true within/after From with MaxYear To")
	}
	if InForce(rule, 2006) {
		t.Error("InForce(2006) = true, want false (before From)")
	}
}

func TestYearsFor(t *testing.T) {
	rule := tzsrc.Rule{From: 1967, To: 2006}
	years := YearsFor(rule, 2000, 2010)
	if len(years) != 7 || years[0] != 2000 || years[len(years)-1] != 2006 {
		t.Errorf("YearsFor() = %v, want 2000..2006", years)
	}

	rule2 := tzsrc.Rule{From: 2020, To: tzsrc.MaxYear}
	years2 := YearsFor(rule2, 1900, 2010)
	if years2 != nil {
		t.Errorf("YearsFor() = %v, want nil (no overlap)", years2)
	}
}

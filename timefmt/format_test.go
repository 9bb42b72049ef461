package timefmt

import (
	"testing"

	"github.com/nanotime/chron/chron"
	"github.com/nanotime/chron/tzzone"
)

// referencePST is a fixed, transition-free -0800 zone so tests exercise
// formatting without touching any on-disk zoneinfo database.
var referencePST = &tzzone.Location{
	Name:  "PST",
	Zones: []tzzone.ZoneRecord{{Name: "PST", Offset: -8 * 3600, IsDST: false}},
}

// referenceInstant is the formatting fixture Wed Feb 4 21:00:57 PST 2009
// (unix second 1233810057), with a nonzero fractional second for the
// precision-trimming format verbs.
func referenceInstant() chron.Instant {
	return chron.Unix(1233810057, 123456789, referencePST)
}

func TestAppendFormatNamedLayouts(t *testing.T) {
	now := referenceInstant()
	cases := map[string]string{
		ANSIC:       "Wed Feb  4 21:00:57 2009",
		UnixDate:    "Wed Feb  4 21:00:57 PST 2009",
		RubyDate:    "Wed Feb 04 21:00:57 -0800 2009",
		RFC822:      "04 Feb 09 21:00 PST",
		RFC822Z:     "04 Feb 09 21:00 -0800",
		RFC850:      "Wednesday, 04-Feb-09 21:00:57 PST",
		RFC1123:     "Wed, 04 Feb 2009 21:00:57 PST",
		RFC1123Z:    "Wed, 04 Feb 2009 21:00:57 -0800",
		RFC3339:     "2009-02-04T21:00:57-08:00",
		RFC3339Nano: "2009-02-04T21:00:57.123456789-08:00",
		Kitchen:     "9:00PM",
		Stamp:       "Feb  4 21:00:57",
		StampMilli:  "Feb  4 21:00:57.123",
		StampMicro:  "Feb  4 21:00:57.123456",
		StampNano:   "Feb  4 21:00:57.123456789",
	}

	for layout, want := range cases {
		if got := FormatString(now, layout); got != want {
			t.Errorf("FormatString(_, %q) = %q, want %q", layout, got, want)
		}
	}
}

func TestAppendFormatLiteralPreservation(t *testing.T) {
	now := referenceInstant()
	layout := "[[2006]] <<Jan>> {02}"
	want := "[[2009]] <<Feb>> {04}"
	if got := FormatString(now, layout); got != want {
		t.Errorf("FormatString() = %q, want %q", got, want)
	}
}

func TestAppendFormatZuluWhenZeroOffset(t *testing.T) {
	utc := chron.Unix(1233810057, 0, tzzone.UTC)
	if got := FormatString(utc, RFC3339); got != "2009-02-05T05:00:57Z" {
		t.Errorf("FormatString(UTC, RFC3339) = %q, want Z suffix", got)
	}
}

func TestAppendFormatFracSecondTrimming(t *testing.T) {
	// .000 always renders the full width including trailing zeros; .999
	// trims trailing zeros and drops the point entirely if nothing
	// remains.
	t1 := chron.Unix(1233810057, 500000000, referencePST)
	if got := FormatString(t1, "15:04:05.000"); got != "21:00:57.500" {
		t.Errorf("FormatString(.000) = %q, want 21:00:57.500", got)
	}
	if got := FormatString(t1, "15:04:05.999"); got != "21:00:57.5" {
		t.Errorf("FormatString(.999) = %q, want 21:00:57.5", got)
	}

	t2 := chron.Unix(1233810057, 0, referencePST)
	if got := FormatString(t2, "15:04:05.999"); got != "21:00:57" {
		t.Errorf("FormatString(.999) with zero nsec = %q, want no fractional part", got)
	}
}

func TestAppendFormatHourVariants(t *testing.T) {
	morning := chron.Unix(1233781257, 0, referencePST) // 13:00:57 PST
	if got := FormatString(morning, "3:04PM"); got != "1:00PM" {
		t.Errorf("FormatString(3:04PM) = %q, want 1:00PM", got)
	}
	if got := FormatString(morning, "15:04"); got != "13:00" {
		t.Errorf("FormatString(15:04) = %q, want 13:00", got)
	}
}

func TestAppendInt(t *testing.T) {
	cases := []struct {
		v, width int
		want     string
	}{
		{5, 2, "05"},
		{123, 2, "123"},
		{0, 0, "0"},
		{-7, 2, "-07"},
	}
	for _, c := range cases {
		got := string(appendInt(nil, c.v, c.width))
		if got != c.want {
			t.Errorf("appendInt(%d, %d) = %q, want %q", c.v, c.width, got, c.want)
		}
	}
}

func TestAppendOffsetVariants(t *testing.T) {
	cases := []struct {
		offset              int32
		hoursOnly, colon, seconds bool
		want                string
	}{
		{-8 * 3600, false, false, false, "-0800"},
		{-8 * 3600, false, true, false, "-08:00"},
		{-8 * 3600, true, false, false, "-08"},
		{19800, false, true, false, "+05:30"}, // India Standard Time, half-hour offset
	}
	for _, c := range cases {
		got := string(appendOffset(nil, c.offset, c.hoursOnly, c.colon, c.seconds))
		if got != c.want {
			t.Errorf("appendOffset(%d, %v, %v, %v) = %q, want %q",
				c.offset, c.hoursOnly, c.colon, c.seconds, got, c.want)
		}
	}
}

// Package timefmt implements the layout-driven formatter: a tokenizer
// that walks a layout string written in terms of the reference time Mon
// Jan 2 15:04:05 MST 2006, and a formatter that renders each recognized
// chunk against an Instant.
//
// This package is grounded on the Go standard library's time/format.go,
// whose reference-time design and internal chunk vocabulary
// (stdLongMonth, stdLongYear, stdNumTZ, stdFracSecond0/9, and the rest)
// it reimplements against this module's own Instant type instead of
// time.Time. Parsing a layout back into an Instant is out of scope; only
// the formatting direction is implemented.
package timefmt

// std identifies one recognized chunk of a layout, or stdNone for a
// literal run with no recognized chunk.
type std int

const (
	stdNone std = iota
	stdLongMonth
	stdMonth
	stdNumMonth
	stdZeroMonth
	stdLongWeekDay
	stdWeekDay
	stdDay
	stdUnderDay
	stdZeroDay
	stdHour
	stdHour12
	stdZeroHour12
	stdMinute
	stdZeroMinute
	stdSecond
	stdZeroSecond
	stdLongYear
	stdYear
	stdPM
	stdpm
	stdTZ
	stdISO8601TZ
	stdISO8601ColonTZ
	stdISO8601SecondsTZ
	stdISO8601ColonSecondsTZ
	stdNumTZ
	stdNumColonTZ
	stdNumSecondsTz
	stdNumColonSecondsTZ
	stdFracSecond0
	stdFracSecond9
)

// stdFracSecond packs run-length into the upper bits of the returned std
// value. fracDigits extracts that payload; fracBase returns the low
// byte, which for a fractional-second chunk is stdFracSecond0 or
// stdFracSecond9.
func stdFracSecond(fracKind std, n int) std {
	return fracKind | std(n)<<8
}

func fracBase(s std) std  { return s & 0xff }
func fracDigits(s std) int { return int(s >> 8) }

// ReferenceTime is the layout reference: Mon Jan 2 15:04:05 MST 2006,
// anchored at Unix second 1136239445, zone abbreviation MST (UTC-7).
const ReferenceTime = "Mon Jan 2 15:04:05 MST 2006"

// Named layout constants, verbatim from the reference time vocabulary.
const (
	ANSIC       = "Mon Jan _2 15:04:05 2006"
	UnixDate    = "Mon Jan _2 15:04:05 MST 2006"
	RubyDate    = "Mon Jan 02 15:04:05 -0700 2006"
	RFC822      = "02 Jan 06 15:04 MST"
	RFC822Z     = "02 Jan 06 15:04 -0700"
	RFC850      = "Monday, 02-Jan-06 15:04:05 MST"
	RFC1123     = "Mon, 02 Jan 2006 15:04:05 MST"
	RFC1123Z    = "Mon, 02 Jan 2006 15:04:05 -0700"
	RFC3339     = "2006-01-02T15:04:05Z07:00"
	RFC3339Nano = "2006-01-02T15:04:05.999999999Z07:00"
	Kitchen     = "3:04PM"
	Stamp       = "Jan _2 15:04:05"
	StampMilli  = "Jan _2 15:04:05.000"
	StampMicro  = "Jan _2 15:04:05.000000"
	StampNano   = "Jan _2 15:04:05.000000000"
)

func isLower(c byte) bool { return 'a' <= c && c <= 'z' }

func match(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	return s[:len(prefix)] == prefix
}

// nextChunk scans layout left to right for the first recognized chunk.
// It returns the literal prefix preceding the chunk, the chunk's std
// identifier (stdNone if none was found), and the remaining suffix of
// the layout after the matched chunk.
//
// The three-letter month/weekday detectors ("Jan", "Mon") require that
// the byte immediately following the match not be an ASCII lowercase
// letter, so "January" is not mistakenly split into "Jan" + "uary".
func nextChunk(layout string) (prefix string, chunk std, suffix string) {
	for i := 0; i < len(layout); i++ {
		c := layout[i]
		switch {
		case c == 'J': // January, Jan
			if match(layout[i:], "January") {
				return layout[:i], stdLongMonth, layout[i+len("January"):]
			}
			if match(layout[i:], "Jan") {
				if len(layout) >= i+4 && isLower(layout[i+3]) {
					continue
				}
				return layout[:i], stdMonth, layout[i+len("Jan"):]
			}
		case c == 'M': // Monday, Mon, MST
			if match(layout[i:], "Monday") {
				return layout[:i], stdLongWeekDay, layout[i+len("Monday"):]
			}
			if match(layout[i:], "Mon") {
				if len(layout) >= i+4 && isLower(layout[i+3]) {
					continue
				}
				return layout[:i], stdWeekDay, layout[i+len("Mon"):]
			}
			if match(layout[i:], "MST") {
				return layout[:i], stdTZ, layout[i+len("MST"):]
			}
		case c == '0': // 01, 02, 03, 04, 05, 06
			if match(layout[i:], "01") {
				return layout[:i], stdZeroMonth, layout[i+len("01"):]
			}
			if match(layout[i:], "02") {
				return layout[:i], stdZeroDay, layout[i+len("02"):]
			}
			if match(layout[i:], "03") {
				return layout[:i], stdZeroHour12, layout[i+len("03"):]
			}
			if match(layout[i:], "04") {
				return layout[:i], stdZeroMinute, layout[i+len("04"):]
			}
			if match(layout[i:], "05") {
				return layout[:i], stdZeroSecond, layout[i+len("05"):]
			}
			if match(layout[i:], "06") {
				return layout[:i], stdYear, layout[i+len("06"):]
			}
		case c == '1': // 15, 1
			if match(layout[i:], "15") {
				return layout[:i], stdHour, layout[i+len("15"):]
			}
			return layout[:i], stdNumMonth, layout[i+1:]
		case c == '2': // 2006, 2
			if match(layout[i:], "2006") {
				return layout[:i], stdLongYear, layout[i+len("2006"):]
			}
			return layout[:i], stdDay, layout[i+1:]
		case c == '_': // _2
			if match(layout[i:], "_2") {
				return layout[:i], stdUnderDay, layout[i+len("_2"):]
			}
		case c == '3':
			return layout[:i], stdHour12, layout[i+1:]
		case c == '4':
			return layout[:i], stdMinute, layout[i+1:]
		case c == '5':
			return layout[:i], stdSecond, layout[i+1:]
		case c == 'P': // PM
			if match(layout[i:], "PM") {
				return layout[:i], stdPM, layout[i+len("PM"):]
			}
		case c == 'p': // pm
			if match(layout[i:], "pm") {
				return layout[:i], stdpm, layout[i+len("pm"):]
			}
		case c == '-': // -0700, -07:00, -07, -070000, -07:00:00
			if match(layout[i:], "-070000") {
				return layout[:i], stdNumSecondsTz, layout[i+len("-070000"):]
			}
			if match(layout[i:], "-07:00:00") {
				return layout[:i], stdNumColonSecondsTZ, layout[i+len("-07:00:00"):]
			}
			if match(layout[i:], "-0700") {
				return layout[:i], stdNumTZ, layout[i+len("-0700"):]
			}
			if match(layout[i:], "-07:00") {
				return layout[:i], stdNumColonTZ, layout[i+len("-07:00"):]
			}
			if match(layout[i:], "-07") {
				return layout[:i], stdNumTZHoursOnly, layout[i+len("-07"):]
			}
		case c == 'Z': // Z0700, Z07:00, Z07, Z070000, Z07:00:00
			if match(layout[i:], "Z070000") {
				return layout[:i], stdISO8601SecondsTZ, layout[i+len("Z070000"):]
			}
			if match(layout[i:], "Z07:00:00") {
				return layout[:i], stdISO8601ColonSecondsTZ, layout[i+len("Z07:00:00"):]
			}
			if match(layout[i:], "Z0700") {
				return layout[:i], stdISO8601TZ, layout[i+len("Z0700"):]
			}
			if match(layout[i:], "Z07:00") {
				return layout[:i], stdISO8601ColonTZ, layout[i+len("Z07:00"):]
			}
			if match(layout[i:], "Z07") {
				return layout[:i], stdISO8601TZHoursOnly, layout[i+len("Z07"):]
			}
		case c == '.': // .000, .999 fractional second runs
			if n := fracDigitRun(layout[i:], '0'); n > 0 {
				return layout[:i], stdFracSecond(stdFracSecond0, n), layout[i+1+n:]
			}
			if n := fracDigitRun(layout[i:], '9'); n > 0 {
				return layout[:i], stdFracSecond(stdFracSecond9, n), layout[i+1+n:]
			}
		}
	}
	return layout, stdNone, ""
}

// stdNumTZHoursOnly and stdISO8601TZHoursOnly are the "-07"/"Z07"
// hours-only offset chunks. They're declared separately (rather than
// reusing the colon/no-colon variants) since they emit neither a colon
// nor minutes.
const (
	stdNumTZHoursOnly std = iota + 10000
	stdISO8601TZHoursOnly
)

// fracDigitRun reports the length of a run of digit starting at
// layout[1:] (layout[0] is the leading '.'), provided every digit in the
// run equals digit. It returns 0 if layout doesn't start with '.' or the
// run is empty.
func fracDigitRun(layout string, digit byte) int {
	if len(layout) < 2 || layout[0] != '.' {
		return 0
	}
	n := 0
	for n+1 < len(layout) && layout[1+n] == digit {
		n++
	}
	return n
}

package timefmt

import (
	"fmt"
	"io"

	"github.com/nanotime/chron/chron"
)

var longDayNames = [...]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

var shortDayNames = [...]string{
	"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat",
}

var longMonthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var shortMonthNames = [...]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// appendInt appends the decimal digits of v to buf. The digits are
// produced LSB-first into the tail of a scratch buffer, so they come out
// in order without a separate reversal pass; a sign and a minimum field
// width (via leading zeros) are handled.
func appendInt(buf []byte, v int, width int) []byte {
	neg := v < 0
	if neg {
		v = -v
	}

	var tmp [20]byte
	i := len(tmp)
	if v == 0 {
		i--
		tmp[i] = '0'
	}
	for v > 0 {
		i--
		tmp[i] = byte(v%10) + '0'
		v /= 10
	}
	for len(tmp)-i < width {
		i--
		tmp[i] = '0'
	}

	if neg {
		buf = append(buf, '-')
	}
	return append(buf, tmp[i:]...)
}

// Format renders t according to layout, writing the result to w. The
// layout's reference-time chunks are replaced with t's fields (see
// package doc); every other byte is copied verbatim.
func Format(t chron.Instant, layout string, w io.Writer) error {
	buf := make([]byte, 0, len(layout)+10)
	buf = AppendFormat(buf, t, layout)
	_, err := w.Write(buf)
	return err
}

// FormatString is a convenience wrapper over Format that returns the
// rendered string directly.
func FormatString(t chron.Instant, layout string) string {
	return string(AppendFormat(make([]byte, 0, len(layout)+10), t, layout))
}

// AppendFormat appends the rendering of t per layout to b and returns
// the extended buffer.
func AppendFormat(b []byte, t chron.Instant, layout string) []byte {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()
	weekday := t.Weekday()
	zone := t.Zone()

	for {
		prefix, chunk, suffix := nextChunk(layout)
		b = append(b, prefix...)
		if chunk == stdNone {
			break
		}
		layout = suffix

		base := chunk
		if fb := fracBase(chunk); fb == stdFracSecond0 || fb == stdFracSecond9 {
			base = fb
		}
		switch base {
		case stdLongMonth:
			b = append(b, longMonthNames[month-1]...)
		case stdMonth:
			b = append(b, shortMonthNames[month-1]...)
		case stdNumMonth:
			b = appendInt(b, int(month), 0)
		case stdZeroMonth:
			b = appendInt(b, int(month), 2)
		case stdLongWeekDay:
			b = append(b, longDayNames[weekday]...)
		case stdWeekDay:
			b = append(b, shortDayNames[weekday]...)
		case stdDay:
			b = appendInt(b, day, 0)
		case stdUnderDay:
			if day < 10 {
				b = append(b, ' ')
			}
			b = appendInt(b, day, 0)
		case stdZeroDay:
			b = appendInt(b, day, 2)
		case stdHour:
			b = appendInt(b, hour, 2)
		case stdHour12:
			b = appendInt(b, hour12(hour), 0)
		case stdZeroHour12:
			b = appendInt(b, hour12(hour), 2)
		case stdMinute:
			b = appendInt(b, min, 0)
		case stdZeroMinute:
			b = appendInt(b, min, 2)
		case stdSecond:
			b = appendInt(b, sec, 0)
		case stdZeroSecond:
			b = appendInt(b, sec, 2)
		case stdLongYear:
			b = appendInt(b, year, 4)
		case stdYear:
			y := year % 100
			if y < 0 {
				y = -y
			}
			b = appendInt(b, y, 2)
		case stdPM:
			if hour >= 12 {
				b = append(b, "PM"...)
			} else {
				b = append(b, "AM"...)
			}
		case stdpm:
			if hour >= 12 {
				b = append(b, "pm"...)
			} else {
				b = append(b, "am"...)
			}
		case stdTZ:
			if zone.Name != "" {
				b = append(b, zone.Name...)
			} else {
				b = appendOffset(b, zone.Offset, false, false, false)
			}
		case stdISO8601TZ, stdISO8601ColonTZ, stdISO8601SecondsTZ, stdISO8601ColonSecondsTZ, stdISO8601TZHoursOnly:
			if zone.Offset == 0 {
				b = append(b, 'Z')
				continue
			}
			fallthrough
		case stdNumTZ, stdNumColonTZ, stdNumSecondsTz, stdNumColonSecondsTZ, stdNumTZHoursOnly:
			colon := chunk == stdNumColonTZ || chunk == stdNumColonSecondsTZ ||
				chunk == stdISO8601ColonTZ || chunk == stdISO8601ColonSecondsTZ
			seconds := chunk == stdNumSecondsTz || chunk == stdNumColonSecondsTZ ||
				chunk == stdISO8601SecondsTZ || chunk == stdISO8601ColonSecondsTZ
			hoursOnly := chunk == stdNumTZHoursOnly || chunk == stdISO8601TZHoursOnly
			b = appendOffset(b, zone.Offset, hoursOnly, colon, seconds)
		case stdFracSecond0, stdFracSecond9:
			b = appendFracSecond(b, t.Nanosecond(), fracDigits(chunk), fracBase(chunk) == stdFracSecond9)
		default:
			b = append(b, fmt.Sprintf("%%!fmt(%d)", chunk)...)
		}
	}
	return b
}

func hour12(hour int) int {
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return h
}

// appendOffset writes a signed zone offset. hoursOnly suppresses minutes
// (and seconds); colon inserts ':' between fields; seconds additionally
// appends the offset's second component.
func appendOffset(b []byte, offsetSec int32, hoursOnly, colon, seconds bool) []byte {
	off := int(offsetSec)
	sign := byte('+')
	if off < 0 {
		sign = '-'
		off = -off
	}
	b = append(b, sign)

	h := off / 3600
	m := (off / 60) % 60
	s := off % 60

	b = appendInt(b, h, 2)
	if hoursOnly {
		return b
	}
	if colon {
		b = append(b, ':')
	}
	b = appendInt(b, m, 2)
	if seconds {
		if colon {
			b = append(b, ':')
		}
		b = appendInt(b, s, 2)
	}
	return b
}

// appendFracSecond renders nsec as a fractional-second run of exactly
// digits characters (the "0" variant) or as that run with trailing zeros
// stripped, and the decimal point suppressed entirely if nothing
// remains (the "9" variant).
func appendFracSecond(b []byte, nsec, digits int, trim bool) []byte {
	var buf [9]byte
	for i := 8; i >= 0; i-- {
		buf[i] = byte(nsec%10) + '0'
		nsec /= 10
	}

	n := digits
	if n > 9 {
		n = 9
	}
	frac := buf[:n]

	if trim {
		for len(frac) > 0 && frac[len(frac)-1] == '0' {
			frac = frac[:len(frac)-1]
		}
		if len(frac) == 0 {
			return b
		}
	}

	b = append(b, '.')
	return append(b, frac...)
}

// Package tzsrc parses the IANA tzdata source text format: the Zone,
// Rule and Link lines of files like "northamerica" or "europe" in the
// tz database distribution. It is the first stage of this module's
// supplemental tzdata compiler, which exists to exercise the TZif
// encoder with zone data built from readable source rather than only
// decoding pre-built binaries.
//
// Only the subset the compiler actually uses is parsed: Zone, Rule and
// Link lines. Leap and Expires lines are not parsed; this module never
// does leap-second-aware arithmetic (see the tzif package), so there is
// nothing downstream that would consume them.
package tzsrc

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DayForm identifies how a Day selects a day of a month.
type DayForm int

const (
	DayNum DayForm = iota // a literal day number
	DayLast               // "lastSun" etc: the last occurrence of a weekday
	DayAfter              // "Sun>=8": the first occurrence of a weekday on or after a day
	DayBefore             // "Sun<=25": the last occurrence of a weekday on or before a day
)

// Day is the parsed ON field of a Rule line.
type Day struct {
	Form    DayForm
	Num     int // for DayNum, DayAfter, DayBefore
	Weekday int // 0=Sunday..6=Saturday, for DayLast, DayAfter, DayBefore
}

// ClockSuffix names the reference frame a ClockTime is expressed in.
type ClockSuffix int

const (
	ClockWall ClockSuffix = iota // 'w' or no suffix
	ClockStandard                // 's'
	ClockUTC                     // 'u', 'g', 'z'
)

// ClockTime is a time-of-day offset from midnight, in seconds, together
// with the reference frame it's expressed in.
type ClockTime struct {
	Seconds int
	Suffix  ClockSuffix
}

// Rule is one Rule line: a named recurring transition rule.
type Rule struct {
	Name   string
	From   int // MinYear/MaxYear for "min"/"max"
	To     int
	Month  int // 1..12
	On     Day
	At     ClockTime
	Save   int // seconds added to standard time
	Letter string
}

const (
	MinYear = -1 << 31
	MaxYear = 1<<31 - 1
)

// Zone is one Zone line or continuation line.
type Zone struct {
	Name       string // empty for a continuation line
	StdOffset  int    // STDOFF, seconds east of UT
	RuleName   string // "-" means RuleSave applies with no named rule set
	RuleSave   int    // used when the RULES column is itself a SAVE time, not a name
	Format     string // FORMAT column, e.g. "P%sT" or "-00"
	UntilYear  int    // MaxYear if UNTIL is absent (this is the last line of the zone)
	UntilMonth int
	UntilDay   Day
	UntilTime  ClockTime
	HasUntil   bool
}

// Link is one Link line: Target is an existing zone or link name, Alias
// is the new name introduced for it.
type Link struct {
	Target string
	Alias  string
}

// File is the parsed content of one tzdata source file.
type File struct {
	Zones []ZoneSeries
	Rules map[string][]Rule
	Links []Link
}

// ZoneSeries is one Zone name together with all of its lines (the
// initial Zone line plus every continuation line), in file order.
type ZoneSeries struct {
	Name  string
	Lines []Zone
}

// ParseError reports the source line number and text where parsing
// failed.
type ParseError struct {
	Line   int
	Text   string
	Reason error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("tzsrc: line %d: %q: %v", e.Line, e.Text, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Reason }

// Parse reads a tzdata source file from r.
func Parse(r io.Reader) (File, error) {
	var f File
	f.Rules = make(map[string][]Rule)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	var current *ZoneSeries

	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		fields := splitFields(raw)
		if fields == nil {
			continue
		}

		switch fields[0] {
		case "Zone":
			z, name, err := parseZoneLine(fields, true)
			if err != nil {
				return f, &ParseError{lineNo, raw, err}
			}
			f.Zones = append(f.Zones, ZoneSeries{Name: name, Lines: []Zone{z}})
			current = &f.Zones[len(f.Zones)-1]
			if !z.HasUntil {
				current = nil
			}
		case "Rule":
			rule, err := parseRuleLine(fields)
			if err != nil {
				return f, &ParseError{lineNo, raw, err}
			}
			f.Rules[rule.Name] = append(f.Rules[rule.Name], rule)
		case "Link":
			if len(fields) != 3 {
				return f, &ParseError{lineNo, raw, fmt.Errorf("expected 2 fields, got %d", len(fields)-1)}
			}
			f.Links = append(f.Links, Link{Target: fields[1], Alias: fields[2]})
		default:
			if current == nil {
				return f, &ParseError{lineNo, raw, fmt.Errorf("continuation line with no open zone")}
			}
			z, _, err := parseZoneLine(fields, false)
			if err != nil {
				return f, &ParseError{lineNo, raw, err}
			}
			current.Lines = append(current.Lines, z)
			if !z.HasUntil {
				current = nil
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return f, fmt.Errorf("tzsrc: %w", err)
	}
	return f, nil
}

// splitFields tokenizes a tzdata source line, stripping a comment (from
// the first '#' to the end of the line) and blank lines. It returns nil
// for a line with nothing to parse.
func splitFields(line string) []string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func parseZoneLine(fields []string, named bool) (Zone, string, error) {
	var z Zone
	i := 0
	name := ""
	if named {
		if len(fields) < 5 {
			return z, "", fmt.Errorf("zone line: expected at least 4 fields after Zone")
		}
		name = fields[1]
		i = 2
	} else {
		if len(fields) < 3 {
			return z, "", fmt.Errorf("continuation line: expected at least 3 fields")
		}
	}

	off, err := parseClockSeconds(fields[i])
	if err != nil {
		return z, "", fmt.Errorf("STDOFF: %w", err)
	}
	z.StdOffset = off

	rules := fields[i+1]
	if rules == "-" {
		z.RuleName = "-"
	} else if save, err := parseClockSeconds(rules); err == nil {
		z.RuleSave = save
		z.RuleName = ""
	} else {
		z.RuleName = rules
	}

	z.Format = fields[i+2]

	if len(fields) > i+3 {
		if err := parseUntil(&z, fields[i+3:]); err != nil {
			return z, "", fmt.Errorf("UNTIL: %w", err)
		}
		z.HasUntil = true
	} else {
		z.UntilYear = MaxYear
		z.HasUntil = false
	}

	return z, name, nil
}

func parseUntil(z *Zone, fields []string) error {
	year, err := strconv.Atoi(fields[0])
	if err != nil {
		return fmt.Errorf("year: %w", err)
	}
	z.UntilYear = year
	z.UntilMonth = 1
	z.UntilDay = Day{Form: DayNum, Num: 1}
	z.UntilTime = ClockTime{}

	if len(fields) > 1 {
		m, err := parseMonthName(fields[1])
		if err != nil {
			return fmt.Errorf("month: %w", err)
		}
		z.UntilMonth = m
	}
	if len(fields) > 2 {
		d, err := parseDay(fields[2])
		if err != nil {
			return fmt.Errorf("day: %w", err)
		}
		z.UntilDay = d
	}
	if len(fields) > 3 {
		t, err := parseClockTime(fields[3])
		if err != nil {
			return fmt.Errorf("time: %w", err)
		}
		z.UntilTime = t
	}
	return nil
}

func parseRuleLine(fields []string) (Rule, error) {
	if len(fields) != 10 {
		return Rule{}, fmt.Errorf("rule line: expected 9 fields, got %d", len(fields)-1)
	}
	var r Rule
	r.Name = fields[1]

	from, err := parseYearField(fields[2])
	if err != nil {
		return r, fmt.Errorf("FROM: %w", err)
	}
	r.From = from

	to, err := parseToField(fields[3], from)
	if err != nil {
		return r, fmt.Errorf("TO: %w", err)
	}
	r.To = to

	// fields[4] is the deprecated "type" column, always "-".

	month, err := parseMonthName(fields[5])
	if err != nil {
		return r, fmt.Errorf("IN: %w", err)
	}
	r.Month = month

	day, err := parseDay(fields[6])
	if err != nil {
		return r, fmt.Errorf("ON: %w", err)
	}
	r.On = day

	at, err := parseClockTime(fields[7])
	if err != nil {
		return r, fmt.Errorf("AT: %w", err)
	}
	r.At = at

	save, err := parseClockSeconds(fields[8])
	if err != nil {
		return r, fmt.Errorf("SAVE: %w", err)
	}
	r.Save = save

	r.Letter = fields[9]
	if r.Letter == "-" {
		r.Letter = ""
	}

	return r, nil
}

func parseYearField(s string) (int, error) {
	switch strings.ToLower(s) {
	case "min", "minimum":
		return MinYear, nil
	case "max", "maximum":
		return MaxYear, nil
	}
	return strconv.Atoi(s)
}

func parseToField(s string, from int) (int, error) {
	if strings.ToLower(s) == "only" {
		return from, nil
	}
	return parseYearField(s)
}

var monthNames = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

func parseMonthName(s string) (int, error) {
	low := strings.ToLower(s)
	for i, name := range monthNames {
		if strings.HasPrefix(strings.ToLower(name), low) || strings.EqualFold(name, s) {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("unrecognized month %q", s)
}

var weekdayNames = []string{
	"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat",
}

func parseWeekdayName(s string) (int, error) {
	for i, name := range weekdayNames {
		if strings.EqualFold(name, s) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unrecognized weekday %q", s)
}

// parseDay parses a Rule ON field or Zone UNTIL day field: a bare day
// number, "lastSun", "Sun>=8", or "Sun<=25".
func parseDay(s string) (Day, error) {
	if strings.HasPrefix(s, "last") {
		wd, err := parseWeekdayName(s[len("last"):])
		if err != nil {
			return Day{}, err
		}
		return Day{Form: DayLast, Weekday: wd}, nil
	}
	if i := strings.Index(s, ">="); i >= 0 {
		wd, err := parseWeekdayName(s[:i])
		if err != nil {
			return Day{}, err
		}
		n, err := strconv.Atoi(s[i+2:])
		if err != nil {
			return Day{}, err
		}
		return Day{Form: DayAfter, Weekday: wd, Num: n}, nil
	}
	if i := strings.Index(s, "<="); i >= 0 {
		wd, err := parseWeekdayName(s[:i])
		if err != nil {
			return Day{}, err
		}
		n, err := strconv.Atoi(s[i+2:])
		if err != nil {
			return Day{}, err
		}
		return Day{Form: DayBefore, Weekday: wd, Num: n}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Day{}, fmt.Errorf("unrecognized day %q", s)
	}
	return Day{Form: DayNum, Num: n}, nil
}

// parseClockTime parses an AT/UNTIL-time field: [-]H[H][:MM[:SS]], with
// an optional trailing reference-frame suffix (w, s, u, g, z).
func parseClockTime(s string) (ClockTime, error) {
	suffix := ClockWall
	if len(s) > 0 {
		switch s[len(s)-1] {
		case 'w':
			s = s[:len(s)-1]
		case 's':
			suffix = ClockStandard
			s = s[:len(s)-1]
		case 'u', 'g', 'z':
			suffix = ClockUTC
			s = s[:len(s)-1]
		}
	}
	sec, err := parseClockSeconds(s)
	if err != nil {
		return ClockTime{}, err
	}
	return ClockTime{Seconds: sec, Suffix: suffix}, nil
}

// parseClockSeconds parses an [-]H[H][:MM[:SS]] duration field, used for
// STDOFF, SAVE, and the numeric part of AT/UNTIL-time, into seconds.
func parseClockSeconds(s string) (int, error) {
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	parts := strings.Split(s, ":")
	if len(parts) == 0 || len(parts) > 3 {
		return 0, fmt.Errorf("unrecognized time %q", s)
	}
	var hh, mm, ss int
	var err error
	if hh, err = strconv.Atoi(parts[0]); err != nil {
		return 0, fmt.Errorf("hours: %w", err)
	}
	if len(parts) > 1 {
		if mm, err = strconv.Atoi(parts[1]); err != nil {
			return 0, fmt.Errorf("minutes: %w", err)
		}
	}
	if len(parts) > 2 {
		if ss, err = strconv.Atoi(parts[2]); err != nil {
			return 0, fmt.Errorf("seconds: %w", err)
		}
	}
	total := hh*3600 + mm*60 + ss
	if neg {
		total = -total
	}
	return total, nil
}

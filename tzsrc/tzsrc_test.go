package tzsrc

import (
	"strings"
	"testing"
)

const sampleSource = `# Sample, condensed from the tz database's northamerica file.
Rule	US	1967	2006	-	Oct	lastSun	2:00	0	S
Rule	US	2007	max	-	Nov	Sun>=1	2:00	0	S
Rule	US	1967	2006	-	Apr	lastSun	2:00	1:00	D
Rule	US	2007	max	-	Mar	Sun>=8	2:00	1:00	D

Zone America/Los_Angeles	-8:00	US	P%sT	1948 Mar 14 2:00
			-8:00	US	P%sT
Link	America/Los_Angeles	US/Pacific
`

func TestParseBasic(t *testing.T) {
	f, err := Parse(strings.NewReader(sampleSource))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(f.Zones) != 1 {
		t.Fatalf("Zones count = %d, want 1", len(f.Zones))
	}
	series := f.Zones[0]
	if series.Name != "America/Los_Angeles" {
		t.Errorf("series.Name = %q, want America/Los_Angeles", series.Name)
	}
	if len(series.Lines) != 2 {
		t.Fatalf("series.Lines count = %d, want 2", len(series.Lines))
	}
	if series.Lines[0].StdOffset != -8*3600 {
		t.Errorf("first line StdOffset = %d, want -28800", series.Lines[0].StdOffset)
	}
	if !series.Lines[0].HasUntil || series.Lines[0].UntilYear != 1948 {
		t.Errorf("first line UNTIL = %+v, want 1948-03-14 02:00", series.Lines[0])
	}
	if series.Lines[1].HasUntil {
		t.Error("second (final) line should have no UNTIL")
	}

	if rules := f.Rules["US"]; len(rules) != 4 {
		t.Fatalf("Rules[US] count = %d, want 4", len(rules))
	}

	if len(f.Links) != 1 || f.Links[0].Target != "America/Los_Angeles" || f.Links[0].Alias != "US/Pacific" {
		t.Errorf("Links = %+v, want one America/Los_Angeles -> US/Pacific", f.Links)
	}
}

func TestParseRuleFields(t *testing.T) {
	f, err := Parse(strings.NewReader(sampleSource))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	rules := f.Rules["US"]

	r := rules[0]
	if r.From != 1967 || r.To != 2006 || r.Month != 10 {
		t.Errorf("rule[0] = %+v, want From=1967 To=2006 Month=10", r)
	}
	if r.On.Form != DayLast || r.On.Weekday != 0 {
		t.Errorf("rule[0].On = %+v, want lastSun", r.On)
	}
	if r.Save != 0 || r.Letter != "S" {
		t.Errorf("rule[0] Save/Letter = %d/%q, want 0/S", r.Save, r.Letter)
	}

	r = rules[1]
	if r.To != MaxYear {
		t.Errorf("rule[1].To = %d, want MaxYear", r.To)
	}
	if r.On.Form != DayAfter || r.On.Weekday != 0 || r.On.Num != 1 {
		t.Errorf("rule[1].On = %+v, want Sun>=1", r.On)
	}

	r = rules[3]
	if r.On.Form != DayAfter || r.On.Num != 8 {
		t.Errorf("rule[3].On = %+v, want Sun>=8", r.On)
	}
	if r.Save != 3600 || r.Letter != "D" {
		t.Errorf("rule[3] Save/Letter = %d/%q, want 3600/D", r.Save, r.Letter)
	}
}

func TestParseDay(t *testing.T) {
	cases := []struct {
		in   string
		want Day
	}{
		{"lastSun", Day{Form: DayLast, Weekday: 0}},
		{"Sun>=8", Day{Form: DayAfter, Weekday: 0, Num: 8}},
		{"Sun<=25", Day{Form: DayBefore, Weekday: 0, Num: 25}},
		{"15", Day{Form: DayNum, Num: 15}},
	}
	for _, c := range cases {
		got, err := parseDay(c.in)
		if err != nil {
			t.Fatalf("parseDay(%q) error = %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("parseDay(%q) = %+v, want %+v", c.in, got, c.want)
		}
	}
}

func TestParseClockTime(t *testing.T) {
	cases := []struct {
		in   string
		want ClockTime
	}{
		{"2:00", ClockTime{Seconds: 2 * 3600, Suffix: ClockWall}},
		{"2:00s", ClockTime{Seconds: 2 * 3600, Suffix: ClockStandard}},
		{"0:00u", ClockTime{Seconds: 0, Suffix: ClockUTC}},
		{"-1:00", ClockTime{Seconds: -3600, Suffix: ClockWall}},
	}
	for _, c := range cases {
		got, err := parseClockTime(c.in)
		if err != nil {
			t.Fatalf("parseClockTime(%q) error = %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("parseClockTime(%q) = %+v, want %+v", c.in, got, c.want)
		}
	}
}

func TestParseYearField(t *testing.T) {
	if y, _ := parseYearField("min"); y != MinYear {
		t.Errorf("parseYearField(min) = %d, want MinYear", y)
	}
	if y, _ := parseYearField("max"); y != MaxYear {
		t.Errorf("parseYearField(max) = %d, want MaxYear", y)
	}
	if y, _ := parseYearField("1987"); y != 1987 {
		t.Errorf("parseYearField(1987) = %d, want 1987", y)
	}
}

func TestParseRuleLineWrongFieldCount(t *testing.T) {
	_, err := parseRuleLine([]string{"Rule", "US"})
	if err == nil {
		t.Error("parseRuleLine() error = nil, want error for too few fields")
	}
}

func TestParseContinuationWithoutOpenZone(t *testing.T) {
	_, err := Parse(strings.NewReader("\t-8:00\tUS\tP%sT\n"))
	if err == nil {
		t.Error("Parse() error = nil, want error for continuation line with no open zone")
	}
}

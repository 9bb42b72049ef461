// Package tzbuild compiles a parsed tzsrc.File into tzif.Data values,
// one per named zone, ready to be encoded to the binary TZif wire
// format by the tzif package. It is the final stage of this module's
// supplemental tzdata compiler.
//
// A Zone entry's continuation lines are followed rather than just its
// first line, and the result is assembled directly into the single
// tzif.Block shape the decoder round-trips, instead of building
// separate version-specific block types and copying one into the
// other afterward.
package tzbuild

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nanotime/chron/civil"
	"github.com/nanotime/chron/tzif"
	"github.com/nanotime/chron/tzrule"
	"github.com/nanotime/chron/tzsrc"
)

// abbrevFor renders a Zone FORMAT field against a rule's LETTER,
// handling the three forms tzdata source uses: "%s" substitution (with
// an empty letter dropping the "%s" entirely, per zic convention),
// "STD/DST" slash alternation picking the half that matches whether a
// letter was given, and a literal abbreviation with no placeholder.
func abbrevFor(format, letter string) string {
	if strings.Contains(format, "/") && !strings.Contains(format, "%s") {
		parts := strings.SplitN(format, "/", 2)
		if letter == "" {
			return parts[0]
		}
		return parts[1]
	}
	if strings.Contains(format, "%s") {
		return strings.Replace(format, "%s", letter, 1)
	}
	return format
}

// Window bounds the calendar years a compiled zone's transitions are
// generated for. Rule recurrences outside [LoYear, HiYear] are not
// expanded; this mirrors the real zic compiler's own practice of
// expanding only a bounded horizon of future transitions rather than
// literally forever.
type Window struct {
	LoYear, HiYear int
}

// DefaultWindow covers a broad, practically useful span without forcing
// the caller to pick one.
var DefaultWindow = Window{LoYear: 1900, HiYear: 2100}

type zoneType struct {
	offset int32
	dst    bool
	abbrev string
}

// Compile compiles every zone declared in f into a tzif.Data, keyed by
// zone name.
func Compile(f tzsrc.File, w Window) (map[string]tzif.Data, error) {
	result := make(map[string]tzif.Data, len(f.Zones))
	for _, series := range f.Zones {
		data, err := compileZone(f, series, w)
		if err != nil {
			return nil, fmt.Errorf("tzbuild: zone %s: %w", series.Name, err)
		}
		result[series.Name] = data
	}
	return result, nil
}

type transition struct {
	when    int64
	typeIdx int
}

func compileZone(f tzsrc.File, series tzsrc.ZoneSeries, w Window) (tzif.Data, error) {
	var types []zoneType
	typeIndex := make(map[zoneType]int)
	internType := func(t zoneType) int {
		if i, ok := typeIndex[t]; ok {
			return i
		}
		i := len(types)
		types = append(types, t)
		typeIndex[t] = i
		return i
	}

	var trans []transition
	prevSave := 0

	for li, line := range series.Lines {
		hiYear := w.HiYear
		if line.HasUntil && line.UntilYear < hiYear {
			hiYear = line.UntilYear
		}

		switch {
		case line.RuleName == "-" || line.RuleName == "":
			t := zoneType{offset: int32(line.StdOffset + line.RuleSave), dst: line.RuleSave != 0, abbrev: abbrevFor(line.Format, "")}
			idx := internType(t)
			if li == 0 {
				trans = append(trans, transition{when: minInt64, typeIdx: idx})
			} else {
				trans = append(trans, transition{when: lineStart(f, series, li), typeIdx: idx})
			}
			prevSave = line.RuleSave

		default:
			rules := f.Rules[line.RuleName]
			if len(rules) == 0 {
				return tzif.Data{}, fmt.Errorf("no rules named %q", line.RuleName)
			}

			occs, err := expandRules(rules, line.StdOffset, w.LoYear, hiYear, prevSave)
			if err != nil {
				return tzif.Data{}, err
			}

			if li == 0 {
				// Seed the timeline before the first rule fires with
				// standard time (no save) and the letter of the earliest
				// zero-save occurrence, as a best-effort standard-time
				// guess matching zic's initial-type heuristic for an
				// open-ended first zone line.
				initSave, initLetter := 0, ""
				for _, o := range occs {
					if o.occ.Save == 0 {
						initLetter = o.occ.Letter
						break
					}
				}
				t := zoneType{offset: int32(line.StdOffset + initSave), dst: initSave != 0, abbrev: abbrevFor(line.Format, initLetter)}
				trans = append(trans, transition{when: minInt64, typeIdx: internType(t)})
			}

			for _, o := range occs {
				t := zoneType{
					offset: int32(line.StdOffset + o.occ.Save),
					dst:    o.occ.Save != 0,
					abbrev: abbrevFor(line.Format, o.occ.Letter),
				}
				trans = append(trans, transition{when: o.occ.UnixUTC, typeIdx: internType(t)})
				prevSave = o.occ.Save
			}
		}
	}

	sort.Slice(trans, func(i, j int) bool { return trans[i].when < trans[j].when })

	var block tzif.Block
	designations := []byte{0}
	desigIndex := map[string]uint8{"": 0}

	internDesig := func(s string) uint8 {
		if i, ok := desigIndex[s]; ok {
			return i
		}
		i := uint8(len(designations))
		designations = append(designations, append([]byte(s), 0)...)
		desigIndex[s] = i
		return i
	}

	for _, t := range types {
		block.LocalTimeTypeRecord = append(block.LocalTimeTypeRecord, tzif.LocalTimeTypeRecord{
			Utoff: t.offset,
			Dst:   t.dst,
			Idx:   internDesig(t.abbrev),
		})
	}
	block.Designations = designations

	for _, t := range trans {
		if t.when == minInt64 {
			continue // the pre-first-transition type is carried structurally, not as a transition record
		}
		block.TransitionTimes = append(block.TransitionTimes, t.when)
		block.TransitionTypes = append(block.TransitionTypes, uint8(t.typeIdx))
	}

	data := tzif.Data{Version: tzif.V2, V1: block, V2: block}
	if err := tzif.Validate(data); err != nil {
		return tzif.Data{}, fmt.Errorf("compiled zone %s is inconsistent: %w", series.Name, err)
	}
	return data, nil
}

type ruleOccurrence struct {
	occ tzrule.Occurrence
}

func expandRules(rules []tzsrc.Rule, stdOffset, loYear, hiYear, initialSave int) ([]ruleOccurrence, error) {
	type yearRule struct {
		year int
		rule tzsrc.Rule
	}
	var pairs []yearRule
	for _, r := range rules {
		for _, y := range tzrule.YearsFor(r, loYear, hiYear) {
			pairs = append(pairs, yearRule{year: y, rule: r})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].year != pairs[j].year {
			return pairs[i].year < pairs[j].year
		}
		return pairs[i].rule.Month < pairs[j].rule.Month
	})

	var occs []ruleOccurrence
	prevSave := initialSave
	for _, p := range pairs {
		occ, err := tzrule.Expand(p.rule, p.year, stdOffset, prevSave)
		if err != nil {
			return nil, err
		}
		occs = append(occs, ruleOccurrence{occ: occ})
		prevSave = occ.Save
	}
	return occs, nil
}

const minInt64 = -1 << 63

// lineStart approximates the Unix second a Zone continuation line takes
// effect at: the UNTIL of the previous line, treated as UTC regardless
// of the suffix it actually carries. A precise implementation would
// reinterpret that UNTIL in the previous line's own standard/wall/UT
// frame and iterate until the offset it implies is self-consistent;
// this compiler only needs a reasonable boundary between
// locally-declared zone eras, not a byte-exact reproduction of the
// zone file.
func lineStart(_ tzsrc.File, series tzsrc.ZoneSeries, idx int) int64 {
	return untilUnixSeconds(series.Lines[idx-1])
}

func untilUnixSeconds(z tzsrc.Zone) int64 {
	day, err := resolveUntilDay(z)
	if err != nil {
		day = 1
	}
	d := int64(civil.DaysSinceAbsoluteZero(z.UntilYear)) +
		int64(civil.DaysBeforeMonth(z.UntilYear, civil.Month(z.UntilMonth))) +
		int64(day-1)
	sec := d*civil.SecondsPerDay + int64(z.UntilTime.Seconds)
	return sec + civil.AbsoluteToInternal + civil.InternalToUnix
}

func resolveUntilDay(z tzsrc.Zone) (int, error) {
	return tzrule.ResolveDay(z.UntilYear, z.UntilMonth, z.UntilDay)
}

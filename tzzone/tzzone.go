// Package tzzone holds the in-memory zone model: a Location is an
// ordered list of UTC transitions plus the local time types they switch
// between, assembled from a decoded tzif.Data.
//
// This is the structural counterpart of the Go standard library's
// unexported time.Location / time.zone / time.zoneTrans, generalized so
// it can be built from this module's own tzif decoder rather than from
// the runtime's embedded copy.
package tzzone

import (
	"fmt"

	"github.com/nanotime/chron/tzif"
)

// ZoneRecord describes one local time type in effect for some span of a
// Location's timeline: a UTC offset, a daylight-saving flag, and the
// abbreviation presented to users (e.g. "PST", "PDT").
type ZoneRecord struct {
	Name   string
	Offset int32 // seconds east of UTC
	IsDST  bool
}

// Transition marks the Unix second at which a Location's presentation
// switches to a new ZoneRecord, identified by index into Location.Zones.
type Transition struct {
	When  int64
	Index int
}

// Location is an immutable, parsed time zone: a name and the ordered
// sequence of UTC transitions describing how wall-clock presentation
// changes over time.
//
// Transitions is sorted ascending by When. A second before the first
// transition presents using the FirstZoneIndex, chosen by the
// zic/localtime.c rule documented on the FirstZoneIndex function.
type Location struct {
	Name           string
	Zones          []ZoneRecord
	Transitions    []Transition
	FirstZoneIndex int
}

// UTC is the fixed UTC Location: no transitions, a single zero-offset
// zone record.
var UTC = &Location{
	Name:           "UTC",
	Zones:          []ZoneRecord{{Name: "UTC", Offset: 0, IsDST: false}},
	Transitions:    nil,
	FirstZoneIndex: 0,
}

// FromTZif assembles a Location named name from decoded TZif data. It
// prefers the version 2+ block (64-bit transition times) when present,
// falling back to the version 1 block otherwise.
func FromTZif(name string, data tzif.Data) (*Location, error) {
	block := data.V1
	if data.Version != tzif.V1 {
		block = data.V2
	}

	if len(block.LocalTimeTypeRecord) == 0 {
		return nil, fmt.Errorf("tzzone: %s: no local time type records", name)
	}

	zones := make([]ZoneRecord, len(block.LocalTimeTypeRecord))
	for i, r := range block.LocalTimeTypeRecord {
		zones[i] = ZoneRecord{
			Name:   tzif.Designation(block.Designations, r.Idx),
			Offset: r.Utoff,
			IsDST:  r.Dst,
		}
	}

	loc := &Location{
		Name:  name,
		Zones: zones,
	}

	if len(block.TransitionTimes) == 0 {
		// No transitions at all: the zone never changes. Present using
		// zone index 0, mirroring zic's behavior for a constant-offset
		// zone file.
		loc.FirstZoneIndex = 0
		return loc, nil
	}

	loc.Transitions = make([]Transition, len(block.TransitionTimes))
	for i, t := range block.TransitionTimes {
		loc.Transitions[i] = Transition{When: t, Index: int(block.TransitionTypes[i])}
	}

	loc.FirstZoneIndex = FirstZoneIndex(zones, loc.Transitions)

	return loc, nil
}

// FirstZoneIndex picks the zone presented before a Location's first
// recorded transition, following zic/localtime.c's rule:
//
//  1. If zone index 0 is never referenced by any transition, use it.
//  2. Else if the first transition points at a DST zone, walk backward
//     through the zone array from just before that index looking for
//     the first non-DST zone.
//  3. Else (or if that walk finds nothing) scan the zone array forward
//     for the first non-DST zone.
//  4. Else fall back to index 0.
func FirstZoneIndex(zones []ZoneRecord, transitions []Transition) int {
	if len(zones) == 0 {
		return 0
	}
	if !zoneReferenced(transitions, 0) {
		return 0
	}

	if len(transitions) > 0 {
		first := transitions[0].Index
		if first >= 0 && first < len(zones) && zones[first].IsDST {
			for i := first - 1; i >= 0; i-- {
				if !zones[i].IsDST {
					return i
				}
			}
		}
	}

	for i, z := range zones {
		if !z.IsDST {
			return i
		}
	}
	return 0
}

// zoneReferenced reports whether any transition targets zone index idx.
func zoneReferenced(transitions []Transition, idx int) bool {
	for _, t := range transitions {
		if t.Index == idx {
			return true
		}
	}
	return false
}

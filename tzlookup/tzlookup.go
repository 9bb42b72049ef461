// Package tzlookup implements zone lookup: finding which ZoneRecord of a
// tzzone.Location is in effect at a given Unix second, by binary search
// over the Location's sorted transitions.
//
// Grounded on the Go standard library's unexported time.Location.lookup,
// adapted to the tzzone.Location/tzzone.Transition shapes this module
// builds from its own tzif decoder.
package tzlookup

import (
	"sort"

	"github.com/nanotime/chron/tzzone"
)

// Lookup returns the zone abbreviation, UTC offset (seconds east), and
// daylight-saving flag presented by loc at unixSec, along with the
// half-open validity window [start, end) of that presentation. start is
// math.MinInt64 and end is math.MaxInt64 when the corresponding boundary
// does not exist (the lookup falls before the first transition, or loc
// has no transitions at all).
//
// A nil loc is treated as UTC.
func Lookup(loc *tzzone.Location, unixSec int64) (name string, offset int32, isDST bool, start, end int64) {
	if loc == nil {
		loc = tzzone.UTC
	}

	const (
		minInt64 = -1 << 63
		maxInt64 = 1<<63 - 1
	)

	if len(loc.Zones) == 0 {
		return "UTC", 0, false, minInt64, maxInt64
	}

	if len(loc.Transitions) == 0 {
		z := loc.Zones[loc.FirstZoneIndex]
		return z.Name, z.Offset, z.IsDST, minInt64, maxInt64
	}

	trans := loc.Transitions

	if unixSec < trans[0].When {
		z := loc.Zones[loc.FirstZoneIndex]
		return z.Name, z.Offset, z.IsDST, minInt64, trans[0].When
	}

	// sort.Search finds the first index i for which trans[i].When > unixSec;
	// the transition in effect is therefore i-1.
	i := sort.Search(len(trans), func(i int) bool {
		return trans[i].When > unixSec
	})

	idx := i - 1
	z := loc.Zones[trans[idx].Index]

	start = trans[idx].When
	if i < len(trans) {
		end = trans[i].When
	} else {
		end = maxInt64
	}

	return z.Name, z.Offset, z.IsDST, start, end
}

// LookupName returns the UTC offset loc was presenting under
// abbreviation name at unixSec, and whether such a zone record exists.
//
// The first pass checks every zone record sharing name for
// self-consistency: a zone record z is the right one if looking up
// unixSec-z.Offset (i.e. reinterpreting unixSec as the local time that
// offset would have produced) resolves back to a zone named name. This
// disambiguates an abbreviation reused by the Location at a different
// historical offset (e.g. "CST" before and after a UTC offset change)
// from whichever zone happens to be in effect at unixSec itself. The
// second pass, used only if no zone record passes the first, returns
// the first zone record with a matching name regardless of offset.
func LookupName(loc *tzzone.Location, name string, unixSec int64) (offset int32, ok bool) {
	if loc == nil {
		loc = tzzone.UTC
	}

	for _, z := range loc.Zones {
		if z.Name != name {
			continue
		}
		if curName, _, _, _, _ := Lookup(loc, unixSec-int64(z.Offset)); curName == name {
			return z.Offset, true
		}
	}

	for _, z := range loc.Zones {
		if z.Name == name {
			return z.Offset, true
		}
	}
	return 0, false
}

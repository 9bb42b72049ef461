package chron

import "time"

// Reading is a single sample from a Clock: a wall-clock reading plus an
// opaque, process-local monotonic reading. It is the seam between the
// operating system's clock and monotonic syscalls and the rest of the
// package, so that arithmetic on Instant values never calls the OS
// directly.
type Reading struct {
	WallSec  int64
	WallNsec int32 // in [0, 1e9)
	Mono     uint64
}

// Clock yields the current time as a Reading. Mono must be
// non-decreasing across calls within a process.
type Clock interface {
	Read() Reading
}

// processStart anchors the monotonic reading returned by SystemClock.
// time.Time carries its own monotonic reading once constructed by
// time.Now, so subtracting two time.Now results yields a genuine
// monotonic duration without reaching for OS-specific syscalls.
var processStart = time.Now()

type systemClock struct{}

func (systemClock) Read() Reading {
	now := time.Now()
	return Reading{
		WallSec:  now.Unix(),
		WallNsec: int32(now.Nanosecond()),
		Mono:     uint64(now.Sub(processStart)),
	}
}

// SystemClock is the default Clock, backed by the host's wall and
// monotonic clocks.
var SystemClock Clock = systemClock{}

// Command tzinspect loads a named IANA zone from the host's zoneinfo
// database and reports what it presents at a given Unix second: zone
// abbreviation, UTC offset, DST flag, and the half-open validity window
// of that presentation.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/nanotime/chron/tzload"
	"github.com/nanotime/chron/tzlookup"
)

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(os.Stderr, "usage: tzinspect <zone name> [unix seconds, default now]")
		os.Exit(2)
	}

	unixSec := time.Now().Unix()
	if len(args) == 2 {
		v, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			fmt.Fprintln(os.Stderr, "parsing unix seconds:", err)
			os.Exit(2)
		}
		unixSec = v
	}

	loc, err := tzload.LoadLocation(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "loading zone:", err)
		os.Exit(1)
	}

	name, offset, isDST, start, end := tzlookup.Lookup(loc, unixSec)
	fmt.Printf("zone: %s\n", loc.Name)
	fmt.Printf("at %d: name=%s offset=%ds dst=%v\n", unixSec, name, offset, isDST)
	fmt.Printf("valid from %s\n", windowBound(start))
	fmt.Printf("valid until %s\n", windowBound(end))
}

func windowBound(sec int64) string {
	const (
		minInt64 = -1 << 63
		maxInt64 = 1<<63 - 1
	)
	switch sec {
	case minInt64:
		return "-inf"
	case maxInt64:
		return "+inf"
	default:
		return time.Unix(sec, 0).UTC().Format(time.RFC1123)
	}
}

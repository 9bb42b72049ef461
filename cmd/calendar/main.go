// Command calendar prints the current instant in a chosen zone, in the
// style of the Unix `date` command, exercising the full stack: zone
// loading, lookup, civil decomposition and layout-driven formatting.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nanotime/chron/chron"
	"github.com/nanotime/chron/timefmt"
	"github.com/nanotime/chron/tzload"
)

var (
	zoneName = flag.String("zone", "Local", "IANA zone name, or \"UTC\"")
	layout   = flag.String("layout", timefmt.RFC1123, "format layout, default RFC1123")
)

func main() {
	flag.Parse()

	loc, err := tzload.LoadLocation(*zoneName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "loading zone:", err)
		os.Exit(1)
	}

	now := chron.Now(loc, chron.SystemClock)
	fmt.Println(timefmt.FormatString(now, *layout))
}

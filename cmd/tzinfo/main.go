// Command tzinfo dumps the decoded contents of a binary TZif zoneinfo
// file, for inspecting files produced either by zic or by this module's
// own tzc compiler.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nanotime/chron/tzif"
)

var printTransitionsFlag = flag.Bool("t", false, "print each transition in human readable form")

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: tzinfo <tzif file>")
		os.Exit(2)
	}

	f, err := os.Open(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, "opening file:", err)
		os.Exit(1)
	}
	defer f.Close()

	data, err := tzif.Decode(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, "decoding:", err)
		os.Exit(1)
	}

	printData(data)
}

func printData(d tzif.Data) {
	fmt.Println("version =", d.Version)

	block := d.V1
	if d.Version != tzif.V1 {
		block = d.V2
		fmt.Println("tz string =", string(d.TZStr))
	}

	fmt.Printf("local time types (%d):\n", len(block.LocalTimeTypeRecord))
	for i, r := range block.LocalTimeTypeRecord {
		desig := tzif.Designation(block.Designations, r.Idx)
		fmt.Printf("  [%d] %-8s offset=%s (%d) dst=%v\n", i, desig, time.Duration(r.Utoff)*time.Second, r.Utoff, r.Dst)
	}

	fmt.Printf("transitions (%d):\n", len(block.TransitionTimes))
	if *printTransitionsFlag {
		for i, tt := range block.TransitionTimes {
			r := block.LocalTimeTypeRecord[block.TransitionTypes[i]]
			desig := tzif.Designation(block.Designations, r.Idx)
			fmt.Printf("  %s (%d) => %s\n", time.Unix(tt, 0).UTC().Format(time.RFC1123), tt, desig)
		}
	}

	fmt.Println("designations =", strings.Split(string(block.Designations), "\x00"))
}

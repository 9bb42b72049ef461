// Command tzdiff structurally compares two binary TZif zoneinfo files
// and reports whether their decoded contents are identical.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/go-cmp/cmp"
	"github.com/nanotime/chron/tzif"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()
	args := flag.Args()
	if len(args) != 2 {
		return fmt.Errorf("usage: tzdiff <tzif file A> <tzif file B>")
	}

	af, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer af.Close()

	bf, err := os.Open(args[1])
	if err != nil {
		return err
	}
	defer bf.Close()

	adata, err := tzif.Decode(af)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", args[0], err)
	}

	bdata, err := tzif.Decode(bf)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", args[1], err)
	}

	if diff := cmp.Diff(adata, bdata); diff != "" {
		fmt.Println("files differ: -A +B")
		fmt.Println(diff)
	} else {
		fmt.Println("files are identical")
	}

	return nil
}

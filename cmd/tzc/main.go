// Command tzc compiles an IANA tzdata source file (e.g. "northamerica")
// into one binary TZif file per named zone, writing each to
// <outdir>/<zone name>.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nanotime/chron/tzbuild"
	"github.com/nanotime/chron/tzsrc"
)

var outDir = flag.String("o", ".", "output directory")

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		return fmt.Errorf("usage: tzc [-o outdir] <tzdata source file>")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	src, err := tzsrc.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	compiled, err := tzbuild.Compile(src, tzbuild.DefaultWindow)
	if err != nil {
		return fmt.Errorf("compiling: %w", err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	for name, data := range compiled {
		path := filepath.Join(*outDir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", name, err)
		}
		out, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		err = data.Encode(out)
		closeErr := out.Close()
		if err != nil {
			return fmt.Errorf("encoding %s: %w", name, err)
		}
		if closeErr != nil {
			return closeErr
		}
	}

	for _, link := range src.Links {
		target := filepath.Join(*outDir, link.Target)
		alias := filepath.Join(*outDir, link.Alias)
		if err := os.MkdirAll(filepath.Dir(alias), 0o755); err != nil {
			return fmt.Errorf("creating directory for link %s: %w", link.Alias, err)
		}
		data, err := os.ReadFile(target)
		if err != nil {
			// The target may itself be a link whose real target
			// compiles later; this simple implementation doesn't
			// topologically sort links, so report and keep going.
			fmt.Fprintf(os.Stderr, "warning: link %s -> %s: %v\n", link.Alias, link.Target, err)
			continue
		}
		if err := os.WriteFile(alias, data, 0o644); err != nil {
			return fmt.Errorf("writing link %s: %w", link.Alias, err)
		}
	}

	return nil
}

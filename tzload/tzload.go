// Package tzload resolves an IANA zone name (e.g. "America/New_York")
// to a tzzone.Location by locating and decoding its TZif file from the
// host's zoneinfo database.
//
// Grounded on the Go standard library's unexported time.loadLocation and
// its search path list, adapted to read through this module's own tzif
// decoder and tzzone assembler rather than the runtime's embedded
// loader.
package tzload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nanotime/chron/tzif"
	"github.com/nanotime/chron/tzzone"
)

// MaxFileSize caps how much of a candidate zoneinfo file this package
// will read, guarding against a misidentified huge file (e.g. pointing
// ZONEINFO at an unrelated directory) consuming unbounded memory.
const MaxFileSize = 10 << 20 // 10 MiB

// searchPaths are the directories probed, in order, for a zoneinfo file
// after the ZONEINFO directory (when that environment variable is set)
// has failed to yield it, mirroring the candidates the Go runtime itself
// tries on Unix-like systems.
var searchPaths = []string{
	"/usr/share/zoneinfo/",
	"/usr/share/lib/zoneinfo/",
	"/usr/lib/locale/TZ/",
}

// ErrNotFound is returned when no candidate path yields a readable
// zoneinfo file for the requested name.
var ErrNotFound = errors.New("tzload: zone not found")

// LoadLocation loads and parses the named zone. "" and "UTC" are
// special-cased to the built-in tzzone.UTC without touching the
// filesystem. "Local" defers to the TZ environment variable (see
// loadLocal). A name that is an absolute path, or that contains ".."
// or is otherwise not a clean relative "Area/Location" name, is read
// directly as a file rather than searched for under a zoneinfo root.
func LoadLocation(name string) (*tzzone.Location, error) {
	if name == "" || name == "UTC" {
		return tzzone.UTC, nil
	}
	if name == "Local" {
		return loadLocal()
	}

	if containsPathSeparator(name) && !isRelativeZoneName(name) {
		return loadFile(name, name)
	}

	if zoneinfo := os.Getenv("ZONEINFO"); zoneinfo != "" {
		if loc, err := loadFile(filepath.Join(zoneinfo, name), name); err == nil {
			return loc, nil
		}
	}

	for _, base := range searchPaths {
		loc, err := loadFile(filepath.Join(base, name), name)
		if err == nil {
			return loc, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// loadLocal resolves the "Local" pseudo-zone. If TZ is set, its value
// alone decides the outcome: empty (or "UTC") means UTC, and any other
// value is resolved against the search path, falling back to UTC if
// that fails — TZ naming an unresolvable zone is not a reason to go
// looking at /etc/localtime instead. Only when TZ is unset at all does
// /etc/localtime get tried, with UTC as the final fallback.
func loadLocal() (*tzzone.Location, error) {
	if tz, ok := os.LookupEnv("TZ"); ok {
		if tz == "" {
			return tzzone.UTC, nil
		}
		if loc, err := LoadLocation(tz); err == nil {
			return loc, nil
		}
		return tzzone.UTC, nil
	}

	if loc, err := loadFile("/etc/localtime", "local"); err == nil {
		return loc, nil
	}

	return tzzone.UTC, nil
}

func containsPathSeparator(name string) bool {
	for i := 0; i < len(name); i++ {
		if name[i] == '/' {
			return true
		}
	}
	return false
}

// isRelativeZoneName reports whether name looks like an ordinary
// "Area/Location" zone name (no leading slash, no "..") rather than an
// absolute or traversal-prone filesystem path.
func isRelativeZoneName(name string) bool {
	if len(name) > 0 && name[0] == '/' {
		return false
	}
	clean := filepath.Clean(name)
	return clean == name && clean != ".." && !hasDotDotElement(clean)
}

func hasDotDotElement(name string) bool {
	for _, part := range filepathSplitAll(name) {
		if part == ".." {
			return true
		}
	}
	return false
}

func filepathSplitAll(name string) []string {
	var parts []string
	for name != "" {
		dir, file := filepath.Split(filepath.Clean(name))
		parts = append(parts, file)
		if dir == "" || dir == name {
			break
		}
		name = filepath.Clean(dir)
		if name == "." || name == "/" {
			break
		}
	}
	return parts
}

func loadFile(path, name string) (*tzzone.Location, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	limited := io.LimitReader(f, MaxFileSize+1)
	data, err := tzif.Decode(limited)
	if err != nil {
		return nil, fmt.Errorf("tzload: %s: %w", path, err)
	}

	loc, err := tzzone.FromTZif(displayName(name), data)
	if err != nil {
		return nil, err
	}
	return loc, nil
}

// displayName renders "localtime" as "local" in the resulting
// Location's Name, matching time.Location's convention of never naming
// a zone after the file it happened to be loaded from.
func displayName(name string) string {
	if name == "/etc/localtime" {
		return "local"
	}
	return name
}

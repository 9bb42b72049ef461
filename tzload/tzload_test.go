package tzload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nanotime/chron/tzif"
	"github.com/nanotime/chron/tzzone"
)

func TestLoadLocationUTC(t *testing.T) {
	for _, name := range []string{"UTC", ""} {
		loc, err := LoadLocation(name)
		if err != nil {
			t.Fatalf("LoadLocation(%q) error = %v", name, err)
		}
		if loc != tzzone.UTC {
			t.Errorf("LoadLocation(%q) = %v, want the shared tzzone.UTC value", name, loc)
		}
	}
}

func TestLoadLocationAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Custom")

	data := tzif.Data{
		Version: tzif.V1,
		V1: tzif.Block{
			LocalTimeTypeRecord: []tzif.LocalTimeTypeRecord{{Utoff: 3600, Dst: false, Idx: 0}},
			Designations:        []byte("CET\x00"),
		},
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := data.Encode(f); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	loc, err := LoadLocation(path)
	if err != nil {
		t.Fatalf("LoadLocation(%q) error = %v", path, err)
	}
	if len(loc.Zones) != 1 || loc.Zones[0].Name != "CET" || loc.Zones[0].Offset != 3600 {
		t.Errorf("Zones = %+v, want single CET +3600", loc.Zones)
	}
}

func TestLoadLocationNotFound(t *testing.T) {
	t.Setenv("ZONEINFO", t.TempDir())
	_, err := LoadLocation("Nowhere/Imaginary")
	if err == nil {
		t.Fatal("LoadLocation() error = nil, want ErrNotFound")
	}
}

func TestLoadLocal(t *testing.T) {
	t.Setenv("TZ", "")
	loc, err := LoadLocation("Local")
	if err != nil {
		t.Fatalf("LoadLocation(Local) error = %v", err)
	}
	if loc != tzzone.UTC {
		t.Errorf("LoadLocation(Local) with empty TZ = %v, want UTC", loc)
	}
}

func TestLoadLocalUnresolvableTZFallsBackToUTCNotEtcLocaltime(t *testing.T) {
	t.Setenv("ZONEINFO", t.TempDir())
	t.Setenv("TZ", "Nowhere/Imaginary")
	loc, err := LoadLocation("Local")
	if err != nil {
		t.Fatalf("LoadLocation(Local) error = %v", err)
	}
	if loc != tzzone.UTC {
		t.Errorf("LoadLocation(Local) with unresolvable TZ = %v, want UTC (must not fall back to /etc/localtime)", loc)
	}
}

func TestContainsPathSeparator(t *testing.T) {
	cases := map[string]bool{
		"America/New_York": true,
		"UTC":               false,
		"/etc/localtime":    true,
	}
	for name, want := range cases {
		if got := containsPathSeparator(name); got != want {
			t.Errorf("containsPathSeparator(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestIsRelativeZoneName(t *testing.T) {
	cases := map[string]bool{
		"America/New_York": true,
		"/etc/localtime":    false,
		"../../etc/passwd":  false,
		"Foo/../../../bar":  false,
	}
	for name, want := range cases {
		if got := isRelativeZoneName(name); got != want {
			t.Errorf("isRelativeZoneName(%q) = %v, want %v", name, got, want)
		}
	}
}

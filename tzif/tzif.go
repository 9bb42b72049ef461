// Package tzif decodes and encodes the binary TZif zoneinfo format
// produced by zic, as specified by RFC 8536 and the tzfile(5) man page.
// It supports versions 1, 2 and 3.
//
// Leap-second records are read only far enough to be skipped: this
// package does not do leap-second-aware arithmetic. The V1 and V2/V3
// data blocks share one time-width-parameterized reader and writer,
// since they are identical in shape apart from the transition-time
// field width.
package tzif

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrMalformed is the sentinel wrapped by every parse failure: magic
// mismatch, bad version byte, an out-of-range designation or zone
// index, or a short read at any step.
var ErrMalformed = errors.New("malformed zoneinfo file")

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrMalformed}, args...)...)
}

var order = binary.BigEndian

// Version is the single version byte at offset 4 of a TZif header.
type Version byte

const (
	V1 Version = 0
	V2 Version = '2'
	V3 Version = '3'
)

func (v Version) String() string {
	switch v {
	case V1:
		return "1"
	case V2:
		return "2"
	case V3:
		return "3"
	default:
		return fmt.Sprintf("<invalid version %#x>", byte(v))
	}
}

var magic = [4]byte{'T', 'Z', 'i', 'f'}

// header is the fixed-size portion of a TZif header, following the
// 4-byte magic and 1-byte version (and 15 reserved bytes), holding the
// six big-endian uint32 counts described by tzfile(5).
type header struct {
	Isutcnt uint32
	Isstdcnt uint32
	Leapcnt  uint32
	Timecnt  uint32
	Typecnt  uint32
	Charcnt  uint32
}

// LocalTimeTypeRecord is one entry of the ttinfo array: an offset from
// UT, a daylight-saving flag, and an index into the designation bytes.
type LocalTimeTypeRecord struct {
	Utoff int32
	Dst   bool
	Idx   uint8
}

// Block is the decoded content of one TZif data block (the version 1
// block uses 4-byte transition times; version 2/3 use 8-byte times, but
// are otherwise identical in shape).
type Block struct {
	TransitionTimes     []int64
	TransitionTypes     []uint8
	LocalTimeTypeRecord []LocalTimeTypeRecord
	Designations        []byte // NUL-terminated abbreviation strings, concatenated
}

// Data is a fully decoded TZif file. V1 is always present (a TZif file
// always contains a valid version 1 block, even when the overall
// version is higher). V2 is populated only for version 2 and 3 files,
// which re-encode the same content with 64-bit transition times and a
// trailing POSIX TZ footer (the footer's rule string is not evaluated by
// this library: see spec Non-goals).
type Data struct {
	Version Version
	V1      Block
	V2      Block // zero value if Version == V1
	TZStr   []byte
}

// Decode reads a complete TZif file (v1 header+block, and if present the
// v2+ header+block+footer) from r.
func Decode(r io.Reader) (Data, error) {
	var d Data

	h, v, err := readHeader(r)
	if err != nil {
		return d, err
	}
	d.Version = v

	d.V1, err = readBlock(r, h, 4)
	if err != nil {
		return d, fmt.Errorf("reading v1 data block: %w", err)
	}

	if v == V1 {
		return d, nil
	}

	h2, v2, err := readHeader(r)
	if err != nil {
		return d, fmt.Errorf("reading v2+ header: %w", err)
	}
	if v2 != V2 && v2 != V3 {
		return d, malformed("unsupported v2+ version %v", v2)
	}
	d.Version = v2

	d.V2, err = readBlock(r, h2, 8)
	if err != nil {
		return d, fmt.Errorf("reading v2+ data block: %w", err)
	}

	tzStr, err := readFooter(r)
	if err != nil {
		return d, fmt.Errorf("reading footer: %w", err)
	}
	d.TZStr = tzStr

	return d, nil
}

func readHeader(r io.Reader) (header, Version, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return header{}, 0, malformed("reading magic: %v", err)
	}
	if buf != magic {
		return header{}, 0, malformed("bad magic %q", buf)
	}

	var verByte [1]byte
	if _, err := io.ReadFull(r, verByte[:]); err != nil {
		return header{}, 0, malformed("reading version: %v", err)
	}
	v := Version(verByte[0])
	if v != V1 && v != V2 && v != V3 {
		return header{}, 0, malformed("unsupported version byte %#x", verByte[0])
	}

	if _, err := io.CopyN(io.Discard, r, 15); err != nil {
		return header{}, 0, malformed("reading reserved bytes: %v", err)
	}

	var h header
	if err := binary.Read(r, order, &h); err != nil {
		return header{}, 0, malformed("reading counts: %v", err)
	}
	if h.Typecnt == 0 {
		return header{}, 0, malformed("typecnt must not be zero")
	}
	if h.Charcnt == 0 {
		return header{}, 0, malformed("charcnt must not be zero")
	}
	if h.Isutcnt != 0 && h.Isutcnt != h.Typecnt {
		return header{}, 0, malformed("isutcnt must be 0 or typecnt")
	}
	if h.Isstdcnt != 0 && h.Isstdcnt != h.Typecnt {
		return header{}, 0, malformed("isstdcnt must be 0 or typecnt")
	}

	return h, v, nil
}

// readBlock reads one data block. timeSize is 4 for the version 1 block
// and 8 for version 2/3. Leap-second records are skipped: their byte
// length is computed from the header's leapcnt but their content is
// never retained, since nothing downstream does leap-second-aware
// arithmetic.
func readBlock(r io.Reader, h header, timeSize int) (Block, error) {
	var b Block

	times := make([]int64, h.Timecnt)
	for i := range times {
		switch timeSize {
		case 4:
			var v int32
			if err := binary.Read(r, order, &v); err != nil {
				return b, malformed("reading transition time %d: %v", i, err)
			}
			times[i] = int64(v)
		case 8:
			if err := binary.Read(r, order, &times[i]); err != nil {
				return b, malformed("reading transition time %d: %v", i, err)
			}
		default:
			panic("tzif: unsupported time size")
		}
	}
	b.TransitionTimes = times

	types := make([]uint8, h.Timecnt)
	if h.Timecnt > 0 {
		if _, err := io.ReadFull(r, types); err != nil {
			return b, malformed("reading transition types: %v", err)
		}
	}
	for _, idx := range types {
		if uint32(idx) >= h.Typecnt {
			return b, malformed("transition type index %d out of range", idx)
		}
	}
	b.TransitionTypes = types

	records := make([]LocalTimeTypeRecord, h.Typecnt)
	for i := range records {
		var raw struct {
			Utoff int32
			Dst   uint8
			Idx   uint8
		}
		if err := binary.Read(r, order, &raw); err != nil {
			return b, malformed("reading local time type record %d: %v", i, err)
		}
		if raw.Dst != 0 && raw.Dst != 1 {
			return b, malformed("invalid dst flag %d", raw.Dst)
		}
		if uint32(raw.Idx) >= h.Charcnt {
			return b, malformed("designation index %d out of range", raw.Idx)
		}
		records[i] = LocalTimeTypeRecord{Utoff: raw.Utoff, Dst: raw.Dst == 1, Idx: raw.Idx}
	}
	b.LocalTimeTypeRecord = records

	designations := make([]byte, h.Charcnt)
	if _, err := io.ReadFull(r, designations); err != nil {
		return b, malformed("reading designations: %v", err)
	}
	if designations[len(designations)-1] != 0 {
		return b, malformed("designations missing trailing NUL")
	}
	b.Designations = designations

	// Leap-second records: (timeSize + 4) bytes each. Skipped entirely.
	if h.Leapcnt > 0 {
		if _, err := io.CopyN(io.Discard, r, int64(h.Leapcnt)*int64(timeSize+4)); err != nil {
			return b, malformed("skipping leap-second records: %v", err)
		}
	}

	if _, err := io.CopyN(io.Discard, r, int64(h.Isstdcnt)); err != nil {
		return b, malformed("reading standard/wall indicators: %v", err)
	}
	if _, err := io.CopyN(io.Discard, r, int64(h.Isutcnt)); err != nil {
		return b, malformed("reading UT/local indicators: %v", err)
	}

	return b, nil
}

func readFooter(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, malformed("reading footer: %v", err)
	}
	// The footer is \n<TZ string>\n; tolerate a missing trailing
	// newline since we don't evaluate the TZ string anyway.
	data = bytes.Trim(data, "\n")
	return data, nil
}

// Designation returns the NUL-terminated abbreviation string starting at
// idx within designations.
func Designation(designations []byte, idx uint8) string {
	end := bytes.IndexByte(designations[idx:], 0)
	if end < 0 {
		return string(designations[idx:])
	}
	return string(designations[idx : int(idx)+end])
}

// Validate checks d for structural consistency: every transition type
// index must reference a real local time type record, every
// designation index must fall within the designation bytes, and the
// designation block must be properly NUL-terminated. Unlike Decode,
// which must stop at the first malformed byte it reads, Validate
// inspects an already-assembled Data value (such as one a compiler
// built by hand before encoding it) and reports every defect it finds,
// not just the first.
func Validate(d Data) error {
	errs := validateBlock("v1", d.V1)
	if d.Version != V1 {
		errs = append(errs, validateBlock("v2+", d.V2)...)
	}
	return errors.Join(errs...)
}

func validateBlock(label string, b Block) []error {
	var errs []error

	if len(b.LocalTimeTypeRecord) == 0 {
		errs = append(errs, fmt.Errorf("%s: no local time type records", label))
	}
	if len(b.Designations) == 0 {
		errs = append(errs, fmt.Errorf("%s: no designation bytes", label))
	} else if b.Designations[len(b.Designations)-1] != 0 {
		errs = append(errs, fmt.Errorf("%s: designations missing trailing NUL", label))
	}
	if len(b.TransitionTimes) != len(b.TransitionTypes) {
		errs = append(errs, fmt.Errorf("%s: %d transition times but %d transition types", label, len(b.TransitionTimes), len(b.TransitionTypes)))
	}

	for i, idx := range b.TransitionTypes {
		if int(idx) >= len(b.LocalTimeTypeRecord) {
			errs = append(errs, fmt.Errorf("%s: transition %d: type index %d out of range (typecnt %d)", label, i, idx, len(b.LocalTimeTypeRecord)))
		}
	}
	for i, rec := range b.LocalTimeTypeRecord {
		if int(rec.Idx) >= len(b.Designations) {
			errs = append(errs, fmt.Errorf("%s: local time type %d: designation index %d out of range (charcnt %d)", label, i, rec.Idx, len(b.Designations)))
		}
	}

	return errs
}

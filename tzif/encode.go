package tzif

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Encode writes d as a binary TZif file. A V1 Data is always written
// first (zero-valued if not meaningful); for V2/V3 data, the 64-bit
// block and its POSIX-rule footer follow, per RFC 8536.
func (d Data) Encode(w io.Writer) error {
	if err := writeHeader(w, V1, d.V1, 4); err != nil {
		return fmt.Errorf("writing v1 header: %w", err)
	}
	if err := writeBlock(w, d.V1, 4); err != nil {
		return fmt.Errorf("writing v1 data block: %w", err)
	}

	if d.Version == V1 {
		return nil
	}

	if err := writeHeader(w, d.Version, d.V2, 8); err != nil {
		return fmt.Errorf("writing v2+ header: %w", err)
	}
	if err := writeBlock(w, d.V2, 8); err != nil {
		return fmt.Errorf("writing v2+ data block: %w", err)
	}

	if _, err := w.Write([]byte{'\n'}); err != nil {
		return fmt.Errorf("writing footer: %w", err)
	}
	if _, err := w.Write(d.TZStr); err != nil {
		return fmt.Errorf("writing footer: %w", err)
	}
	if _, err := w.Write([]byte{'\n'}); err != nil {
		return fmt.Errorf("writing footer: %w", err)
	}
	return nil
}

func writeHeader(w io.Writer, v Version, b Block, timeSize int) error {
	if _, err := w.Write(magic[:]); err != nil {
		return err
	}
	if _, err := w.Write([]byte{byte(v)}); err != nil {
		return err
	}
	var reserved [15]byte
	if _, err := w.Write(reserved[:]); err != nil {
		return err
	}

	h := header{
		Isutcnt:  0,
		Isstdcnt: 0,
		Leapcnt:  0,
		Timecnt:  uint32(len(b.TransitionTimes)),
		Typecnt:  uint32(len(b.LocalTimeTypeRecord)),
		Charcnt:  uint32(len(b.Designations)),
	}
	return binary.Write(w, order, &h)
}

func writeBlock(w io.Writer, b Block, timeSize int) error {
	for _, t := range b.TransitionTimes {
		switch timeSize {
		case 4:
			if err := binary.Write(w, order, int32(t)); err != nil {
				return err
			}
		case 8:
			if err := binary.Write(w, order, t); err != nil {
				return err
			}
		}
	}
	if _, err := w.Write(b.TransitionTypes); err != nil {
		return err
	}
	for _, r := range b.LocalTimeTypeRecord {
		dst := uint8(0)
		if r.Dst {
			dst = 1
		}
		raw := struct {
			Utoff int32
			Dst   uint8
			Idx   uint8
		}{r.Utoff, dst, r.Idx}
		if err := binary.Write(w, order, &raw); err != nil {
			return err
		}
	}
	_, err := w.Write(b.Designations)
	return err
}

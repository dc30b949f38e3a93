// variant.go defines the four SWORD verse-index record layouts.
//
// Every layout is little-endian and fixed-size:
//   - rawtext:  verse start[4] + verse length[2]             (6 bytes)
//   - rawtext4: verse start[4] + verse length[4]             (8 bytes)
//   - ztext:    block number[4] + block offset[4] + length[2] (10 bytes)
//   - ztext4:   block number[4] + block offset[4] + length[4] (12 bytes)
package modfile

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Variant identifies the on-disk module layout. It is fixed at module-open
// time and never re-dispatched per lookup.
type Variant int

// The four supported module layouts.
const (
	RawText Variant = iota
	RawText4
	ZText
	ZText4
)

// ParseVariant maps a module-type name (the conf ModDrv spelling) to its
// Variant. The empty string defaults to ztext, the most common layout.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rawtext":
		return RawText, nil
	case "rawtext4":
		return RawText4, nil
	case "ztext", "":
		return ZText, nil
	case "ztext4":
		return ZText4, nil
	default:
		return 0, fmt.Errorf("module type %q is not supported", s)
	}
}

// String returns the conf ModDrv spelling of the variant.
func (v Variant) String() string {
	switch v {
	case RawText:
		return "rawtext"
	case RawText4:
		return "rawtext4"
	case ZText:
		return "ztext"
	case ZText4:
		return "ztext4"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// Compressed reports whether the variant stores text in compressed blocks.
func (v Variant) Compressed() bool {
	return v == ZText || v == ZText4
}

// recordSize returns the verse-index record size in bytes.
func (v Variant) recordSize() int64 {
	switch v {
	case RawText:
		return 6
	case RawText4:
		return 8
	case ZText:
		return 10
	default:
		return 12
	}
}

// verseRecord is one decoded verse-index entry. For raw variants Block is
// unused and Start addresses the text file directly; for compressed
// variants Start addresses the decompressed block.
type verseRecord struct {
	Block  uint32
	Start  uint32
	Length uint32
}

// decodeRecord decodes one verse-index record per the variant layout.
func (v Variant) decodeRecord(raw []byte) verseRecord {
	switch v {
	case RawText:
		return verseRecord{
			Start:  binary.LittleEndian.Uint32(raw[0:4]),
			Length: uint32(binary.LittleEndian.Uint16(raw[4:6])),
		}
	case RawText4:
		return verseRecord{
			Start:  binary.LittleEndian.Uint32(raw[0:4]),
			Length: binary.LittleEndian.Uint32(raw[4:8]),
		}
	case ZText:
		return verseRecord{
			Block:  binary.LittleEndian.Uint32(raw[0:4]),
			Start:  binary.LittleEndian.Uint32(raw[4:8]),
			Length: uint32(binary.LittleEndian.Uint16(raw[8:10])),
		}
	default:
		return verseRecord{
			Block:  binary.LittleEndian.Uint32(raw[0:4]),
			Start:  binary.LittleEndian.Uint32(raw[4:8]),
			Length: binary.LittleEndian.Uint32(raw[8:12]),
		}
	}
}

package subtitle

import (
	"strconv"
	"strings"
)

// Type identifies which payload a subtitle rectangle carries.
type Type int

const (
	TypeNone   Type = iota // No payload, only flags are meaningful
	TypeBitmap             // Palette-indexed bitmap
	TypeText               // Plain text
	TypeAss                // ASS/SSA event line
)

func (t Type) String() string {
	switch t {
	case TypeNone:
		return "None"
	case TypeBitmap:
		return "Bitmap"
	case TypeText:
		return "Text"
	case TypeAss:
		return "Ass"
	default:
		return "Unknown"
	}
}

// typeFromRaw classifies a raw AVSubtitleType value. Tags the producer
// never emits are classified as TypeNone so no variant field is read.
func typeFromRaw(v int32) Type {
	switch v {
	case avSubtitleBitmap:
		return TypeBitmap
	case avSubtitleText:
		return TypeText
	case avSubtitleAss:
		return TypeAss
	default:
		return TypeNone
	}
}

// Flags is the bitmask stored in AVSubtitleRect.flags.
type Flags uint32

const (
	FlagForced Flags = avSubtitleFlagForced // Display even when subtitles are disabled
)

// FlagsFromBits converts the raw flags field. Unknown bits are kept so the
// value always equals the field it was read from.
func FlagsFromBits(bits int32) Flags { return Flags(uint32(bits)) }

// Bits returns the raw field value.
func (f Flags) Bits() int32 { return int32(uint32(f)) }

// Has returns true if all specified flags are set.
func (f Flags) Has(flag Flags) bool { return f&flag == flag }

func (f Flags) String() string {
	if f == 0 {
		return "0"
	}
	var parts []string
	if f.Has(FlagForced) {
		parts = append(parts, "Forced")
	}
	if rest := f &^ FlagForced; rest != 0 {
		parts = append(parts, "0x"+strconv.FormatUint(uint64(rest), 16))
	}
	return strings.Join(parts, "|")
}

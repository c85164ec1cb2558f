// Package saturn detects SEGA Saturn disc images inside the container formats
// used by common ripping tools and extracts the header fields RMENU lists.
package saturn

import (
	"strings"

	"github.com/hansbonini/rmenutools/pkg/common"
)

// Family is the container layout an image file uses.
type Family int

const (
	FamilyUnclassified Family = iota
	FamilyA                   // track image (DiscJuggler .cdi)
	FamilyB                   // raw sectors (CloneCD .img)
	FamilyC                   // flat image (Alcohol .mdf, plain .iso)
)

func (f Family) String() string {
	switch f {
	case FamilyA:
		return "track-image"
	case FamilyB:
		return "raw-sector"
	case FamilyC:
		return "flat-image"
	default:
		return "unclassified"
	}
}

// Format is a recognised image file kind. Each format belongs to exactly one
// family; the two flat-image formats differ only by header length.
type Format int

const (
	FormatUnknown Format = iota
	FormatCDI
	FormatCCD
	FormatMDF
	FormatISO
)

// formatPriority is the order in which filename patterns are tested.
var formatPriority = [...]Format{FormatCDI, FormatCCD, FormatMDF, FormatISO}

// Formats returns the recognised formats in classification priority order.
func Formats() []Format {
	out := make([]Format, len(formatPriority))
	copy(out, formatPriority[:])
	return out
}

// ParseFormat maps a config key ("cdi", "img", "mdf", "iso") to a Format.
func ParseFormat(key string) (Format, bool) {
	for _, f := range formatPriority {
		if f.Key() == strings.ToLower(key) {
			return f, true
		}
	}
	return FormatUnknown, false
}

// Key is the short name used in configuration files.
func (f Format) Key() string {
	switch f {
	case FormatCDI:
		return "cdi"
	case FormatCCD:
		return "img"
	case FormatMDF:
		return "mdf"
	case FormatISO:
		return "iso"
	default:
		return ""
	}
}

func (f Format) String() string {
	switch f {
	case FormatCDI:
		return "CDI"
	case FormatCCD:
		return "CCD"
	case FormatMDF:
		return "MDF"
	case FormatISO:
		return "ISO"
	default:
		return "unknown"
	}
}

// Family returns the container family of the format.
func (f Format) Family() Family {
	switch f {
	case FormatCDI:
		return FamilyA
	case FormatCCD:
		return FamilyB
	case FormatMDF, FormatISO:
		return FamilyC
	default:
		return FamilyUnclassified
	}
}

// Pattern is the filename substring that selects this format.
func (f Format) Pattern() string {
	if k := f.Key(); k != "" {
		return "." + k
	}
	return ""
}

// SectorSize is the sector size used when describing offsets in verbose
// output, or 0 when the container has no fixed sector grid.
func (f Format) SectorSize() int64 {
	switch f {
	case FormatCCD, FormatMDF:
		return common.RawSectorSize
	case FormatISO:
		return common.UserSectorSize
	default:
		return 0
	}
}

// Classify returns the format selected by a filename. Matching is a
// case-insensitive substring test, so "game.isobackup" is an ISO.
func Classify(filename string) Format {
	lower := strings.ToLower(filename)
	for _, f := range formatPriority {
		if strings.Contains(lower, f.Pattern()) {
			return f
		}
	}
	return FormatUnknown
}

// Field identifies one of the five metadata fields, in list file order.
type Field int

const (
	FieldTitle Field = iota
	FieldDisc
	FieldRegion
	FieldVersion
	FieldDate

	FieldCount = int(FieldDate) + 1
)

var fieldNames = [FieldCount]string{"title", "disc", "region", "version", "date"}

// Fields returns every field in list file order.
func Fields() []Field {
	return []Field{FieldTitle, FieldDisc, FieldRegion, FieldVersion, FieldDate}
}

// ParseField maps a config key to a Field.
func ParseField(key string) (Field, bool) {
	for i, name := range fieldNames {
		if name == strings.ToLower(key) {
			return Field(i), true
		}
	}
	return 0, false
}

func (f Field) String() string {
	if f < 0 || int(f) >= FieldCount {
		return "unknown"
	}
	return fieldNames[f]
}

// FieldSpec locates a field relative to the signature. A zero width means
// the variant does not carry the field.
type FieldSpec struct {
	Offset int64
	Width  int
}

// Supported reports whether the field is read for the variant.
func (s FieldSpec) Supported() bool {
	return s.Width > 0
}

// Variant is one sub-layout of a format: where the signature sits and where
// each field sits relative to it.
type Variant struct {
	Format Format
	ID     int
	Offset int64
	Fields [FieldCount]FieldSpec
}

// FieldOffset returns the absolute byte offset of a field.
func (v Variant) FieldOffset(f Field) int64 {
	return v.Offset + v.Fields[f].Offset
}

// ValueKind tells how a field value was obtained.
type ValueKind int

const (
	ValueAbsent ValueKind = iota // variant does not define the field
	ValueText                    // decoded text
	ValueRaw                     // bytes kept verbatim because decoding failed
	ValueEmpty                   // decoding failed, left empty
)

// FieldValue is the result of reading one field.
type FieldValue struct {
	Kind ValueKind
	Text string
	Raw  []byte
}

// String returns the text written to the list file.
func (v FieldValue) String() string {
	switch v.Kind {
	case ValueText:
		return v.Text
	case ValueRaw:
		return string(v.Raw)
	default:
		return ""
	}
}

// Record is the metadata extracted from one recognised image.
type Record struct {
	DirID    string
	Filename string
	Format   Format
	Variant  int
	Fields   [FieldCount]FieldValue

	// HeaderSum is the xxhash of the system area header, 0 if unread.
	HeaderSum uint64
}

// Text returns the list file text of a field; always defined.
func (r *Record) Text(f Field) string {
	if f < 0 || int(f) >= FieldCount {
		return ""
	}
	return r.Fields[f].String()
}

// Candidate is the one image chosen for a game directory.
type Candidate struct {
	Path     string
	DirID    string
	Filename string
	Format   Format
}

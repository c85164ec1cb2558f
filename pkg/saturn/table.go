package saturn

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// DiscMarker is the string every Saturn system area starts with.
const DiscMarker = "SEGA SEGASATURN"

// Default field widths in bytes
const (
	TitleSize   = 32
	RegionSize  = 10
	VersionSize = 6
	NumberSize  = 3
	DateSize    = 8
)

var (
	ErrEmptyMarker      = errors.New("signature marker is empty")
	ErrUnknownFormat    = errors.New("unknown image format")
	ErrUnknownField     = errors.New("unknown metadata field")
	ErrNegativeWidth    = errors.New("field width must not be negative")
	ErrDuplicateVariant = errors.New("duplicate variant id")
)

// Table is the immutable signature configuration: the marker, field widths
// and, per format, the ordered list of variants to probe.
type Table struct {
	marker   string
	widths   [FieldCount]int
	variants map[Format][]Variant
}

// Marker returns the signature string.
func (t *Table) Marker() string {
	return t.marker
}

// Width returns the configured byte width of a field.
func (t *Table) Width(f Field) int {
	return t.widths[f]
}

// Variants returns the variants of a format in probe order.
func (t *Table) Variants(f Format) []Variant {
	vs := t.variants[f]
	out := make([]Variant, len(vs))
	copy(out, vs)
	return out
}

// layout lists relative offsets for the fields a variant carries.
type layout map[Field]int64

// cdiFull is the header layout of complete DiscJuggler rips.
var cdiFull = layout{FieldTitle: 96, FieldRegion: 64, FieldVersion: 42, FieldDate: 48, FieldDisc: 59}

// cdiShort is the layout of DiscJuggler images converted from bin/cue.
var cdiShort = layout{FieldTitle: 32, FieldDisc: -5}

// DefaultTable returns the stock signature table.
func DefaultTable() *Table {
	widths := [FieldCount]int{
		FieldTitle:   TitleSize,
		FieldDisc:    NumberSize,
		FieldRegion:  RegionSize,
		FieldVersion: VersionSize,
		FieldDate:    DateSize,
	}

	b := newTableBuilder(DiscMarker, widths)

	// DiscJuggler: 0 is a full rip, 1 a converted bin/cue, 2 and 3 were
	// reported by users, 4 came from a single Virtua Fighter Kids image.
	b.add(FormatCDI, 0, 352816, cdiFull)
	b.add(FormatCDI, 1, 339976, cdiShort)
	b.add(FormatCDI, 2, 367216, cdiShort)
	b.add(FormatCDI, 3, 307200, cdiShort)
	b.add(FormatCDI, 4, 339968, cdiShort)

	// CloneCD: 0 is what sbitools produces, 2 is the Shining Force III
	// patcher output.
	b.add(FormatCCD, 0, 16, layout{FieldTitle: 96, FieldRegion: 64, FieldVersion: 42, FieldDisc: 59})
	b.add(FormatCCD, 1, 112, layout{FieldTitle: 32})
	b.add(FormatCCD, 2, 0, layout{FieldTitle: 96, FieldRegion: 80, FieldVersion: 42})

	b.add(FormatMDF, 0, 16, cdiFull)
	b.add(FormatISO, 0, 0, cdiFull)

	return b.table
}

type tableBuilder struct {
	table *Table
}

func newTableBuilder(marker string, widths [FieldCount]int) *tableBuilder {
	return &tableBuilder{table: &Table{
		marker:   marker,
		widths:   widths,
		variants: make(map[Format][]Variant),
	}}
}

func (b *tableBuilder) add(format Format, id int, offset int64, fields layout) {
	v := Variant{Format: format, ID: id, Offset: offset}
	for f, rel := range fields {
		v.Fields[f] = FieldSpec{Offset: rel, Width: b.table.widths[f]}
	}
	b.table.variants[format] = append(b.table.variants[format], v)
}

// tableFile is the YAML shape of a signature table.
type tableFile struct {
	Marker  string                    `yaml:"marker"`
	Widths  map[string]int            `yaml:"widths"`
	Formats map[string][]variantEntry `yaml:"formats"`
}

type variantEntry struct {
	ID     int              `yaml:"id"`
	Offset int64            `yaml:"offset"`
	Fields map[string]int64 `yaml:"fields"`
}

// LoadTable decodes a YAML signature table. Widths missing from the file
// keep their default values; formats missing from the file are not probed.
func LoadTable(r io.Reader) (*Table, error) {
	var file tableFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if file.Marker == "" {
		return nil, ErrEmptyMarker
	}

	widths := DefaultTable().widths
	for key, w := range file.Widths {
		f, ok := ParseField(key)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, key)
		}
		if w < 0 {
			return nil, fmt.Errorf("%w: %s=%d", ErrNegativeWidth, key, w)
		}
		widths[f] = w
	}

	b := newTableBuilder(file.Marker, widths)

	// Map iteration order is random; formats are independent so only the
	// order inside each list matters.
	keys := make([]string, 0, len(file.Formats))
	for key := range file.Formats {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		format, ok := ParseFormat(key)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, key)
		}
		seen := make(map[int]bool)
		for _, entry := range file.Formats[key] {
			if seen[entry.ID] {
				return nil, fmt.Errorf("%w: %s type %d", ErrDuplicateVariant, key, entry.ID)
			}
			seen[entry.ID] = true

			fields := make(layout, len(entry.Fields))
			for name, rel := range entry.Fields {
				f, ok := ParseField(name)
				if !ok {
					return nil, fmt.Errorf("%w: %q in %s type %d", ErrUnknownField, name, key, entry.ID)
				}
				fields[f] = rel
			}
			b.add(format, entry.ID, entry.Offset, fields)
		}
	}

	return b.table, nil
}

// MarshalYAML renders the table in the same shape LoadTable reads.
func (t *Table) MarshalYAML() (interface{}, error) {
	file := tableFile{
		Marker:  t.marker,
		Widths:  make(map[string]int, FieldCount),
		Formats: make(map[string][]variantEntry),
	}
	for _, f := range Fields() {
		file.Widths[f.String()] = t.widths[f]
	}
	for _, format := range formatPriority {
		for _, v := range t.variants[format] {
			entry := variantEntry{ID: v.ID, Offset: v.Offset, Fields: make(map[string]int64)}
			for _, f := range Fields() {
				if v.Fields[f].Supported() {
					entry.Fields[f.String()] = v.Fields[f].Offset
				}
			}
			file.Formats[format.Key()] = append(file.Formats[format.Key()], entry)
		}
	}
	return file, nil
}

package saturn

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultTable_Offsets(t *testing.T) {
	table := DefaultTable()

	if table.Marker() != "SEGA SEGASATURN" {
		t.Errorf("Marker() = %q", table.Marker())
	}

	testCases := []struct {
		format  Format
		offsets []int64
	}{
		{FormatCDI, []int64{352816, 339976, 367216, 307200, 339968}},
		{FormatCCD, []int64{16, 112, 0}},
		{FormatMDF, []int64{16}},
		{FormatISO, []int64{0}},
	}

	for _, tc := range testCases {
		t.Run(tc.format.String(), func(t *testing.T) {
			variants := table.Variants(tc.format)
			if len(variants) != len(tc.offsets) {
				t.Fatalf("Variants(%v) length = %d, want %d", tc.format, len(variants), len(tc.offsets))
			}
			for i, v := range variants {
				if v.ID != i {
					t.Errorf("variant %d ID = %d", i, v.ID)
				}
				if v.Offset != tc.offsets[i] {
					t.Errorf("variant %d Offset = %d, want %d", i, v.Offset, tc.offsets[i])
				}
				if v.Format != tc.format {
					t.Errorf("variant %d Format = %v, want %v", i, v.Format, tc.format)
				}
			}
		})
	}
}

func TestDefaultTable_FieldLayouts(t *testing.T) {
	testCases := []struct {
		name   string
		format Format
		id     int
		fields map[Field]int64
	}{
		{"cdi full rip", FormatCDI, 0, map[Field]int64{FieldTitle: 96, FieldRegion: 64, FieldVersion: 42, FieldDate: 48, FieldDisc: 59}},
		{"cdi converted", FormatCDI, 1, map[Field]int64{FieldTitle: 32, FieldDisc: -5}},
		{"cdi one-off", FormatCDI, 4, map[Field]int64{FieldTitle: 32, FieldDisc: -5}},
		{"ccd sbitools", FormatCCD, 0, map[Field]int64{FieldTitle: 96, FieldRegion: 64, FieldVersion: 42, FieldDisc: 59}},
		{"ccd unknown", FormatCCD, 1, map[Field]int64{FieldTitle: 32}},
		{"ccd patcher", FormatCCD, 2, map[Field]int64{FieldTitle: 96, FieldRegion: 80, FieldVersion: 42}},
		{"iso", FormatISO, 0, map[Field]int64{FieldTitle: 96, FieldRegion: 64, FieldVersion: 42, FieldDate: 48, FieldDisc: 59}},
	}

	widths := map[Field]int{FieldTitle: 32, FieldRegion: 10, FieldVersion: 6, FieldDisc: 3, FieldDate: 8}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := variant(t, tc.format, tc.id)
			for _, f := range Fields() {
				spec := v.Fields[f]
				rel, want := tc.fields[f]
				if spec.Supported() != want {
					t.Errorf("%s supported = %v, want %v", f, spec.Supported(), want)
					continue
				}
				if !want {
					continue
				}
				if spec.Offset != rel {
					t.Errorf("%s offset = %d, want %d", f, spec.Offset, rel)
				}
				if spec.Width != widths[f] {
					t.Errorf("%s width = %d, want %d", f, spec.Width, widths[f])
				}
			}
		})
	}
}

func TestTable_VariantsIsCopy(t *testing.T) {
	table := DefaultTable()

	variants := table.Variants(FormatCDI)
	variants[0].Offset = 1
	variants[0].Fields[FieldTitle].Width = 0

	again := table.Variants(FormatCDI)
	if again[0].Offset != 352816 || again[0].Fields[FieldTitle].Width != TitleSize {
		t.Error("Variants() should not expose the table's storage")
	}
}

func TestLoadTable_Valid(t *testing.T) {
	input := `
marker: SEGA SEGASATURN
widths:
  title: 16
formats:
  img:
    - id: 7
      offset: 2352
      fields:
        title: 96
        region: 64
  cdi:
    - id: 0
      offset: 100
      fields:
        title: 32
        disc: -5
`
	table, err := LoadTable(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadTable() failed: %v", err)
	}

	if table.Width(FieldTitle) != 16 {
		t.Errorf("Width(title) = %d, want 16", table.Width(FieldTitle))
	}
	if table.Width(FieldRegion) != RegionSize {
		t.Errorf("Width(region) = %d, want default %d", table.Width(FieldRegion), RegionSize)
	}

	ccd := table.Variants(FormatCCD)
	if len(ccd) != 1 || ccd[0].ID != 7 || ccd[0].Offset != 2352 {
		t.Fatalf("Variants(CCD) = %+v", ccd)
	}
	if ccd[0].Fields[FieldTitle].Width != 16 || ccd[0].Fields[FieldTitle].Offset != 96 {
		t.Errorf("title spec = %+v", ccd[0].Fields[FieldTitle])
	}
	if ccd[0].Fields[FieldVersion].Supported() {
		t.Error("version should not be supported")
	}
	if len(table.Variants(FormatISO)) != 0 {
		t.Error("formats missing from the file should not be probed")
	}

	cdi := table.Variants(FormatCDI)
	if len(cdi) != 1 || cdi[0].Fields[FieldDisc].Offset != -5 {
		t.Errorf("Variants(CDI) = %+v", cdi)
	}
}

func TestLoadTable_Invalid(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  error
	}{
		{"empty marker", "formats: {}\n", ErrEmptyMarker},
		{"unknown format", "marker: X\nformats:\n  nrg: [{id: 0, offset: 0}]\n", ErrUnknownFormat},
		{"unknown field", "marker: X\nformats:\n  iso: [{id: 0, offset: 0, fields: {maker: 1}}]\n", ErrUnknownField},
		{"unknown width", "marker: X\nwidths: {maker: 3}\n", ErrUnknownField},
		{"negative width", "marker: X\nwidths: {title: -1}\n", ErrNegativeWidth},
		{"duplicate id", "marker: X\nformats:\n  iso: [{id: 0, offset: 0}, {id: 0, offset: 16}]\n", ErrDuplicateVariant},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadTable(strings.NewReader(tc.input))
			if !errors.Is(err, tc.want) {
				t.Errorf("LoadTable() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestLoadTable_RejectsUnknownKeys(t *testing.T) {
	_, err := LoadTable(strings.NewReader("marker: X\nsignature: Y\n"))
	if err == nil {
		t.Error("LoadTable() should reject unknown top-level keys")
	}
}

func TestTable_MarshalRoundTrip(t *testing.T) {
	var buffer bytes.Buffer
	encoder := yaml.NewEncoder(&buffer)
	if err := encoder.Encode(DefaultTable()); err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	encoder.Close()

	loaded, err := LoadTable(&buffer)
	if err != nil {
		t.Fatalf("LoadTable() of marshalled default failed: %v", err)
	}

	original := DefaultTable()
	for _, format := range Formats() {
		want := original.Variants(format)
		got := loaded.Variants(format)
		if len(got) != len(want) {
			t.Fatalf("%v: %d variants, want %d", format, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%v variant %d = %+v, want %+v", format, i, got[i], want[i])
			}
		}
	}
}

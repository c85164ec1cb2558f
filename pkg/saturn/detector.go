package saturn

import (
	"io"

	"github.com/hansbonini/rmenutools/pkg/common"
)

// Detector finds which variant of a format an image uses by probing the
// configured signature offsets.
type Detector struct {
	table *Table
}

// NewDetector creates a detector over a signature table.
func NewDetector(table *Table) *Detector {
	return &Detector{table: table}
}

// Detect walks the variants of format in configured order and returns the
// first one whose offset holds the marker. Short reads and undecodable probe
// bytes count as a mismatch; Detect never fails.
func (d *Detector) Detect(r io.ReaderAt, format Format, label string) (Variant, bool) {
	marker := d.table.Marker()

	for _, v := range d.table.variants[format] {
		common.LogDebug(common.DebugProbeOffset, label, format, v.Offset, v.Offset)

		probe, ok := common.ReadExactlyAt(r, v.Offset, len(marker))
		if !ok {
			continue
		}
		text, ok := decodeStrict(probe)
		if !ok || text != marker {
			continue
		}

		common.LogDebug(common.DebugSignatureFound, label, format, v.ID, text,
			common.DescribeOffset(v.Offset, format.SectorSize()))
		return v, true
	}

	common.LogDebug(common.DebugSignatureMissing, label, format)
	return Variant{}, false
}

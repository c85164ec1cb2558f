package saturn

import (
	"io"

	"github.com/cespare/xxhash/v2"

	"github.com/hansbonini/rmenutools/pkg/common"
)

// HeaderSize is the length of the system area header that starts with the
// disc marker.
const HeaderSize = 256

// HeaderSum fingerprints the system area header of a detected variant. Two
// images of the same disc hash equal whatever container they are stored in.
// ok is false when the image ends inside the header.
func HeaderSum(r io.ReaderAt, v Variant) (sum uint64, ok bool) {
	header, ok := common.ReadExactlyAt(r, v.Offset, HeaderSize)
	if !ok {
		return 0, false
	}
	return xxhash.Sum64(header), true
}

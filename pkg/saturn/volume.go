package saturn

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hansbonini/rmenutools/pkg/common"
)

// Primary Volume Descriptor location and layout
const (
	pvdSector     = 16
	pvdSize       = 2048
	rawDataOffset = 16 // sync(12) + header(4) of a Mode 1 raw sector
)

var (
	ErrNoSectorLayout = errors.New("format has no fixed sector layout")
	ErrInvalidPVD     = errors.New("invalid ISO9660 signature")
)

// VolumeDescriptor holds the Primary Volume Descriptor fields shown by inspect.
type VolumeDescriptor struct {
	SystemID string
	VolumeID string
	Blocks   uint32
}

// ReadVolumeDescriptor reads the ISO9660 Primary Volume Descriptor from an
// image whose format has a fixed sector grid.
func ReadVolumeDescriptor(r io.ReaderAt, format Format) (*VolumeDescriptor, error) {
	sectorSize := format.SectorSize()
	if sectorSize == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSectorLayout, format)
	}

	offset := pvdSector * sectorSize
	if sectorSize == common.RawSectorSize {
		offset += rawDataOffset
	}

	data, ok := common.ReadExactlyAt(r, offset, pvdSize)
	if !ok {
		return nil, fmt.Errorf("%w: short read at %d", ErrInvalidPVD, offset)
	}

	// Check for ISO9660 signature: 0x01 + "CD001" + 0x01
	if data[0] != 0x01 || string(data[1:6]) != "CD001" || data[6] != 0x01 {
		return nil, fmt.Errorf("%w at %s", ErrInvalidPVD, common.DescribeOffset(offset, sectorSize))
	}

	return &VolumeDescriptor{
		SystemID: strings.TrimRight(string(data[8:40]), " \x00"),
		VolumeID: strings.TrimRight(string(data[40:72]), " \x00"),
		Blocks:   binary.LittleEndian.Uint32(data[80:84]),
	}, nil
}

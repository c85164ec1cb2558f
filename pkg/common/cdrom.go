// Package common provides common utilities for CD-ROM operations.
// This file contains functions for MSF conversion and sector arithmetic used
// when reporting byte offsets inside disc images.
package common

import "fmt"

// Sector sizes found in Saturn disc images
const (
	RawSectorSize  = 2352 // Full CD sector size (CloneCD .img, Alcohol .mdf)
	UserSectorSize = 2048 // Mode 1 user data (.iso)
)

// LBAToMSF converts LBA (Logical Block Address) to MSF (Minutes:Seconds:Frames) format
// LBA to MSF conversion: LBA + 150 (pregap)
func LBAToMSF(lba int64) string {
	totalFrames := lba + 150
	minutes := totalFrames / (60 * 75)
	seconds := (totalFrames % (60 * 75)) / 75
	frames := totalFrames % 75

	return fmt.Sprintf("%02d:%02d:%02d", minutes, seconds, frames)
}

// SectorPosition splits a byte offset into a sector number and the offset
// within that sector.
func SectorPosition(offset int64, sectorSize int64) (lba int64, within int64) {
	if sectorSize <= 0 || offset < 0 {
		return 0, offset
	}
	return offset / sectorSize, offset % sectorSize
}

// DescribeOffset renders a byte offset as "offset (LBA n+m, MSF mm:ss:ff)"
// for verbose diagnostics.
func DescribeOffset(offset int64, sectorSize int64) string {
	if sectorSize <= 0 || offset < 0 {
		return fmt.Sprintf("%d", offset)
	}
	lba, within := SectorPosition(offset, sectorSize)
	return fmt.Sprintf("%d (LBA %d+%d, MSF %s)", offset, lba, within, LBAToMSF(lba))
}

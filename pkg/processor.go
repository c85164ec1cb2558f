// Package pkg ties the Saturn image engine to the RMENU directory layout.
// MenuProcessor runs the scan, rename, list and image pipelines.
package pkg

import (
	"context"
	"fmt"
	"os"

	"github.com/hansbonini/rmenutools/pkg/common"
	"github.com/hansbonini/rmenutools/pkg/rmenu"
	"github.com/hansbonini/rmenutools/pkg/saturn"
)

// MenuProcessor handles RMENU operations for one data directory
type MenuProcessor struct {
	Table  *saturn.Table
	Layout rmenu.Layout
}

// NewMenuProcessor creates a processor for the data directory root.
// A nil table selects the built-in signature table.
func NewMenuProcessor(root string, table *saturn.Table) *MenuProcessor {
	if table == nil {
		table = saturn.DefaultTable()
	}
	return &MenuProcessor{
		Table:  table,
		Layout: rmenu.NewLayout(root),
	}
}

// Preflight verifies the menu installation before anything is changed.
func (p *MenuProcessor) Preflight() error {
	return p.Layout.Check()
}

// ScanReport summarises a scan.
type ScanReport struct {
	Scan       *rmenu.ScanResult
	Records    []*saturn.Record
	Catalog    *rmenu.Catalog
	Duplicates []Duplicate
}

// Duplicate is a game directory whose disc header matches an earlier one.
type Duplicate struct {
	DirID     string
	SameAs    string
	HeaderSum uint64
}

// Scan classifies the game directories, extracts metadata from each
// candidate and builds the catalog. Images without a signature are skipped.
func (p *MenuProcessor) Scan() (*ScanReport, error) {
	scan, err := rmenu.Scan(p.Layout.Root, p.Layout.Reserved)
	if err != nil {
		return nil, err
	}

	var records []*saturn.Record
	for _, c := range scan.Candidates {
		record, err := saturn.ScrapeFile(p.Table, c)
		if err != nil {
			common.LogError("%s/%s: %v", c.DirID, c.Filename, err)
			continue
		}
		if record == nil {
			continue
		}
		records = append(records, record)
	}
	common.LogInfo(common.InfoRecordsExtracted, len(records))

	return &ScanReport{
		Scan:       scan,
		Records:    records,
		Catalog:    rmenu.BuildCatalog(rmenu.MenuEntry, records),
		Duplicates: findDuplicates(records),
	}, nil
}

// findDuplicates reports records sharing a header hash, in scan order.
func findDuplicates(records []*saturn.Record) []Duplicate {
	seen := make(map[uint64]string)
	var dups []Duplicate
	for _, r := range records {
		if r.HeaderSum == 0 {
			continue
		}
		if first, ok := seen[r.HeaderSum]; ok {
			common.LogWarn(common.WarnDuplicateImage, r.DirID, first, r.HeaderSum)
			dups = append(dups, Duplicate{DirID: r.DirID, SameAs: first, HeaderSum: r.HeaderSum})
			continue
		}
		seen[r.HeaderSum] = r.DirID
	}
	return dups
}

// WriteList writes the catalog to the menu's list file.
func (p *MenuProcessor) WriteList(catalog *rmenu.Catalog) error {
	return catalog.WriteFile(p.Layout.ListPath())
}

// Rename moves non-canonical game directories onto canonical ids.
func (p *MenuProcessor) Rename(dryRun bool) ([]rmenu.Assignment, error) {
	return rmenu.Canonicalize(p.Layout.Root, p.Layout.Reserved, dryRun)
}

// BuildImage builds the bootable menu image from the current list file.
func (p *MenuProcessor) BuildImage(ctx context.Context, kind rmenu.MenuKind, tool string) error {
	return rmenu.BuildImage(ctx, p.Layout, kind, tool)
}

// Inspection is the detection report for a single image file.
type Inspection struct {
	Format  saturn.Format
	Variant *saturn.Variant
	Record  *saturn.Record
	Volume  *saturn.VolumeDescriptor
	Issues  []*saturn.FieldError
}

// Inspect classifies, detects and extracts one image file without touching
// any menu directory.
func (p *MenuProcessor) Inspect(path string) (*Inspection, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToOpenImage, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToOpenImage, err)
	}

	result := &Inspection{Format: saturn.Classify(info.Name())}
	if result.Format == saturn.FormatUnknown {
		return result, fmt.Errorf("%s: %w", info.Name(), saturn.ErrUnknownFormat)
	}

	if vd, err := saturn.ReadVolumeDescriptor(file, result.Format); err == nil {
		result.Volume = vd
	} else {
		common.LogDebug("%s: %v", info.Name(), err)
	}

	v, ok := saturn.NewDetector(p.Table).Detect(file, result.Format, info.Name())
	if !ok {
		return result, nil
	}
	result.Variant = &v
	result.Record, result.Issues = saturn.NewExtractor(p.Table).Extract(file, v, "", info.Name())
	result.Record.Filename = info.Name()
	result.Record.HeaderSum, _ = saturn.HeaderSum(file, v)
	return result, nil
}

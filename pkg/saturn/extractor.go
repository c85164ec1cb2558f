package saturn

import (
	"fmt"
	"io"
	"os"

	"github.com/hansbonini/rmenutools/pkg/common"
)

// FieldError describes a field that could not be decoded.
type FieldError struct {
	Label string
	Field Field
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Label, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Extractor reads the metadata fields of a detected variant.
type Extractor struct {
	table *Table
}

// NewExtractor creates an extractor over a signature table.
func NewExtractor(table *Table) *Extractor {
	return &Extractor{table: table}
}

// Extract reads all five fields of variant v. It always returns a complete
// record: unsupported fields are absent, undecodable fields are empty (the
// title keeps its raw bytes instead) and reads past either end of the source
// yield short buffers. Decode problems are logged and collected in the
// returned error slice, never raised.
func (e *Extractor) Extract(r io.ReaderAt, v Variant, dirID, label string) (*Record, []*FieldError) {
	record := &Record{
		DirID:   dirID,
		Format:  v.Format,
		Variant: v.ID,
	}

	var problems []*FieldError
	for _, f := range Fields() {
		value, problem := e.readField(r, v, f, label)
		record.Fields[f] = value
		if problem != nil {
			problems = append(problems, problem)
		}
	}

	return record, problems
}

func (e *Extractor) readField(r io.ReaderAt, v Variant, f Field, label string) (FieldValue, *FieldError) {
	spec := v.Fields[f]
	if !spec.Supported() {
		common.LogDebug(common.DebugFieldAbsent, label, f)
		return FieldValue{Kind: ValueAbsent}, nil
	}

	offset := v.FieldOffset(f)
	raw, err := common.ReadBytesAt(r, offset, spec.Width)
	if err != nil {
		common.LogDebug("[%s] %s: read error at %d: %v", label, f, offset, err)
	}
	common.LogDebug(common.DebugFieldRead, label, f,
		common.DescribeOffset(offset, v.Format.SectorSize()), len(raw), raw)

	if f == FieldTitle {
		value := decodeTitle(raw)
		if value.Kind == ValueRaw {
			common.LogWarn(common.WarnTitleKeptRaw, label, f)
			return value, &FieldError{Label: label, Field: f, Err: fmt.Errorf("title kept as %d raw bytes", len(raw))}
		}
		return value, nil
	}

	value := decodeField(raw)
	if value.Kind == ValueEmpty {
		common.LogWarn(common.WarnFieldUndecodable, label, f)
		return value, &FieldError{Label: label, Field: f, Err: fmt.Errorf("non-ASCII bytes % X", raw)}
	}
	return value, nil
}

// ScrapeFile opens an image, detects its variant and extracts its fields.
// A file without a recognised signature yields a nil record and no error;
// only failing to open the file is an error. The file is closed before
// ScrapeFile returns.
func ScrapeFile(table *Table, c Candidate) (*Record, error) {
	file, err := os.Open(c.Path)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToOpenImage, err)
	}
	defer file.Close()

	label := c.DirID + "/" + c.Filename

	v, ok := NewDetector(table).Detect(file, c.Format, label)
	if !ok {
		common.LogWarn(common.WarnNoSignature, c.DirID, c.Filename)
		return nil, nil
	}

	record, _ := NewExtractor(table).Extract(file, v, c.DirID, label)
	record.Filename = c.Filename
	record.HeaderSum, _ = HeaderSum(file, v)
	return record, nil
}

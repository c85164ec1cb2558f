package rmenu

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/hansbonini/rmenutools/pkg/common"
	"github.com/hansbonini/rmenutools/pkg/saturn"
)

// lineEnding terminates every list file line.
const lineEnding = "\r\n"

// Entry is one game in the list file.
type Entry struct {
	ID      string
	Title   string
	Disc    string
	Region  string
	Version string
	Date    string
}

// MenuEntry is the placeholder describing the menu itself, always listed first.
var MenuEntry = Entry{
	ID:      ReservedDir,
	Title:   "RMENU",
	Disc:    "1/1",
	Region:  "JTUE",
	Version: "V0.2.0",
	Date:    "20170103",
}

// Catalog is the ordered content of a list file.
type Catalog struct {
	Entries []Entry
	// Unreliable is set when some id is outside the canonical id space,
	// which the menu cannot address by number.
	Unreliable bool
}

// EntryFromRecord converts extracted metadata into a list entry.
func EntryFromRecord(r *saturn.Record) Entry {
	return Entry{
		ID:      r.DirID,
		Title:   r.Text(saturn.FieldTitle),
		Disc:    r.Text(saturn.FieldDisc),
		Region:  r.Text(saturn.FieldRegion),
		Version: r.Text(saturn.FieldVersion),
		Date:    r.Text(saturn.FieldDate),
	}
}

// BuildCatalog orders records by numeric directory id behind the menu entry.
// Ids that are not numbers sort after the numeric ones. Records with a
// non-canonical id are still listed but flag the catalog as unreliable.
func BuildCatalog(menu Entry, records []*saturn.Record) *Catalog {
	entries := make([]Entry, 0, len(records))
	unreliable := false
	for _, r := range records {
		if r == nil {
			continue
		}
		if !IsCanonical(r.DirID) {
			unreliable = true
		}
		entries = append(entries, EntryFromRecord(r))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return lessID(entries[i].ID, entries[j].ID)
	})

	if unreliable {
		common.LogWarn(common.WarnListUnreliable)
	}
	return &Catalog{
		Entries:    append([]Entry{menu}, entries...),
		Unreliable: unreliable,
	}
}

func lessID(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil && na != nb:
		return na < nb
	case errA == nil && errB != nil:
		return true
	case errA != nil && errB == nil:
		return false
	default:
		return a < b
	}
}

// Lines returns the list file lines without terminators.
func (c *Catalog) Lines() []string {
	lines := make([]string, 0, len(c.Entries)*saturn.FieldCount)
	for _, e := range c.Entries {
		lines = append(lines,
			e.ID+".title="+e.Title,
			e.ID+".disc="+e.Disc,
			e.ID+".region="+e.Region,
			e.ID+".version="+e.Version,
			e.ID+".date="+e.Date,
		)
	}
	return lines
}

// WriteTo writes the list file, one CRLF-terminated line per field.
func (c *Catalog) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	for _, line := range c.Lines() {
		n, err := bw.WriteString(line + lineEnding)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, bw.Flush()
}

// WriteFile replaces path with the list file. The content is written to a
// temporary file in the same directory first so a failure leaves the old
// list in place.
func (c *Catalog) WriteFile(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".list-*.tmp")
	if err != nil {
		return common.FormatError(common.ErrFailedToWriteList, err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return common.FormatError(common.ErrFailedToWriteList, err)
	}
	if _, err := c.WriteTo(tmp); err != nil {
		tmp.Close()
		return common.FormatError(common.ErrFailedToWriteList, err)
	}
	if err := tmp.Close(); err != nil {
		return common.FormatError(common.ErrFailedToWriteList, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return common.FormatError(common.ErrFailedToWriteList, fmt.Errorf("%s: %w", path, err))
	}

	common.LogInfo(common.InfoListWritten, path, len(c.Entries))
	return nil
}

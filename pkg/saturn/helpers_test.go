package saturn

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// imageBuilder assembles a synthetic disc image in memory.
type imageBuilder struct {
	data []byte
}

func newImage(size int) *imageBuilder {
	return &imageBuilder{data: make([]byte, size)}
}

// put writes b at offset, growing the image when needed.
func (b *imageBuilder) put(offset int64, content []byte) *imageBuilder {
	end := int(offset) + len(content)
	if end > len(b.data) {
		grown := make([]byte, end)
		copy(grown, b.data)
		b.data = grown
	}
	copy(b.data[offset:], content)
	return b
}

// field writes text padded with spaces to width, relative to the signature.
func (b *imageBuilder) field(v Variant, f Field, text string) *imageBuilder {
	padded := bytes.Repeat([]byte(" "), v.Fields[f].Width)
	copy(padded, text)
	return b.put(v.FieldOffset(f), padded)
}

func (b *imageBuilder) marker(offset int64) *imageBuilder {
	return b.put(offset, []byte(DiscMarker))
}

func (b *imageBuilder) reader() *bytes.Reader {
	return bytes.NewReader(b.data)
}

func (b *imageBuilder) writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, b.data, 0644); err != nil {
		t.Fatalf("Failed to write image: %v", err)
	}
	return path
}

// variant returns the default table's variant of format with the given id.
func variant(t *testing.T, format Format, id int) Variant {
	t.Helper()
	for _, v := range DefaultTable().Variants(format) {
		if v.ID == id {
			return v
		}
	}
	t.Fatalf("no %s variant %d in default table", format, id)
	return Variant{}
}

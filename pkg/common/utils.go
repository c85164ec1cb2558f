package common

import (
	"errors"
	"io"
)

// ReadBytesAt reads up to count bytes at offset. Reads that start before the
// beginning of the source or run past its end return whatever bytes were
// available (possibly none) instead of an error; any other read error is
// returned together with the partial buffer.
func ReadBytesAt(reader io.ReaderAt, offset int64, count int) ([]byte, error) {
	if count <= 0 || offset < 0 {
		return []byte{}, nil
	}

	buffer := make([]byte, count)
	n, err := reader.ReadAt(buffer, offset)
	if err != nil && !errors.Is(err, io.EOF) {
		return buffer[:n], err
	}
	return buffer[:n], nil
}

// ReadExactlyAt reads exactly count bytes at offset and reports whether the
// full range was available.
func ReadExactlyAt(reader io.ReaderAt, offset int64, count int) ([]byte, bool) {
	buffer, err := ReadBytesAt(reader, offset, count)
	if err != nil || len(buffer) != count {
		return buffer, false
	}
	return buffer, true
}

// IsDigits reports whether s is a non-empty run of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

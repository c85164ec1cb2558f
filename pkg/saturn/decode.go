package saturn

import (
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// trailingSpace matches the characters a header field is padded with.
const trailingSpace = " \t\n\v\f\r\x1c\x1d\x1e\x1f"

// newASCIIDecoder maps every byte to its Latin-1 rune and then drops the
// ones outside 7-bit ASCII. Transformers keep state, so one is built per use.
func newASCIIDecoder() transform.Transformer {
	return transform.Chain(
		charmap.ISO8859_1.NewDecoder(),
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)
}

// decodeLossy decodes raw as ASCII, discarding bytes that are not ASCII.
func decodeLossy(raw []byte) (string, error) {
	out, _, err := transform.Bytes(newASCIIDecoder(), raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// decodeStrict decodes raw as ASCII and fails if any byte is not ASCII.
func decodeStrict(raw []byte) (string, bool) {
	out, err := decodeLossy(raw)
	if err != nil || len(out) != len(raw) {
		return "", false
	}
	return out, true
}

// decodeTitle applies the title policy: lossy decode with the padding
// trimmed, or the raw bytes when the decoder itself fails.
func decodeTitle(raw []byte) FieldValue {
	text, err := decodeLossy(raw)
	if err != nil {
		kept := make([]byte, len(raw))
		copy(kept, raw)
		return FieldValue{Kind: ValueRaw, Raw: kept}
	}
	return FieldValue{Kind: ValueText, Text: strings.TrimRight(text, trailingSpace)}
}

// decodeField applies the policy shared by every field except the title.
func decodeField(raw []byte) FieldValue {
	text, ok := decodeStrict(raw)
	if !ok {
		return FieldValue{Kind: ValueEmpty}
	}
	return FieldValue{Kind: ValueText, Text: text}
}

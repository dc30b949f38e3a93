// encoding.go turns raw verse bytes into strings.
//
// Most modules declare UTF-8 but plenty of older ones ship undeclared
// Western single-byte text. With no declared encoding the first decode
// settles the question: strict UTF-8 if the bytes validate, otherwise the
// module is pinned to a cp1252 fallback (a superset of latin-1) for its
// whole lifetime. The state is per Bible instance and never re-detected
// per verse.
package bible

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// encodingState tracks the resolved character encoding of a module.
type encodingState int

const (
	encodingUndetermined encodingState = iota
	encodingUTF8
	encodingFallback // cp1252, replacement semantics
)

// declaredEncoding maps a conf Encoding value to an initial state. Empty
// means auto-detect. Unrecognized declared encodings decode as UTF-8 with
// replacement rather than failing the whole module.
func declaredEncoding(s string) encodingState {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return encodingUndetermined
	case "utf-8", "utf8":
		return encodingUTF8
	case "latin1", "latin-1", "iso-8859-1", "cp1252", "windows-1252":
		return encodingFallback
	default:
		return encodingUTF8
	}
}

// decode converts verse bytes per the module's resolved encoding,
// resolving it on first use when it was not declared.
func (b *Bible) decode(raw []byte) string {
	switch b.encoding {
	case encodingUndetermined:
		if utf8.Valid(raw) {
			b.encoding = encodingUTF8
			return string(raw)
		}
		b.encoding = encodingFallback
		return decodeCP1252(raw)
	case encodingUTF8:
		return strings.ToValidUTF8(string(raw), "�")
	default:
		return decodeCP1252(raw)
	}
}

// decodeCP1252 decodes Western single-byte text, replacing the few bytes
// cp1252 leaves undefined.
func decodeCP1252(raw []byte) string {
	out, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), "�")
	}
	return string(out)
}

package decode

import (
	"golang.org/x/text/encoding/unicode"
)

// utf16LEEncoding is shared read-only across every decoder instance;
// toUnicode takes a fresh Encoder from it on every call, so concurrent
// decoders never share transformer state.
var utf16LEEncoding = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// toUnicode transcodes an accepted run (already known-printable text) to
// UTF-16LE, for the "unicode" output target.
func toUnicode(s string) string {
	b, err := utf16LEEncoding.NewEncoder().String(s)
	if err != nil {
		// Every accepted run already decoded cleanly from the source
		// encoding, so re-encoding to UTF-16LE cannot fail in practice.
		return s
	}
	return b
}

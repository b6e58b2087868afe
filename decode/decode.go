// Package decode implements the three streaming byte-to-text state
// machines: ASCII, UTF-8, and UTF-16 (LE/BE). Each walks a buffer from a
// per-decoder cursor and returns the longest printable run compatible with
// a caller-selected set of Unicode blocks.
package decode

import (
	"github.com/Urethramancer/strs/charset"
	"github.com/Urethramancer/strs/model"
)

// TargetEncoding selects whether accepted bytes are emitted as-is or
// transcoded to UTF-16LE ("unicode" output).
type TargetEncoding uint8

const (
	TargetRaw TargetEncoding = iota
	TargetUnicode
)

// DecodeInformation is the per-decoder state that persists across buffers
// for one source.
type DecodeInformation struct {
	MinLength        int
	BufOffset        int   // current offset within the buffer being processed
	BaseOffset       int64 // source-relative offset of the start of the current buffer
	ExcludeControlCP bool
	Target           TargetEncoding
	Enc              model.Encoding
	Live             bool // false once this decoder has exhausted the current buffer
}

// AbsoluteOffset returns the source-relative offset corresponding to the
// decoder's current buffer position.
func (di *DecodeInformation) AbsoluteOffset() int64 {
	return di.BaseOffset + int64(di.BufOffset)
}

// Decoder is the shared interface implemented by AsciiDecoder, Utf8Decoder,
// and Utf16Decoder.
//
// TryDecode attempts to extract the next accepted run starting at
// st.BufOffset. On return, st.BufOffset has advanced by however far the
// probe went, even when no run is emitted. A call that cannot advance
// (nothing left to probe, or a multi-byte character cut off by the end of
// the buffer) sets st.Live to false instead. The
// second return value is false when no run met st.MinLength; it is true
// when a Result was produced.
type Decoder interface {
	TryDecode(buf []byte, st *DecodeInformation, blocks charset.BlockSet) (model.Result, bool)
}

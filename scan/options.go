// Package scan implements the scan orchestrator: it drives the three
// decoders from package decode across a Source's buffers, applies the
// optional filter, and hands accepted results to a sink.
package scan

import (
	"fmt"
	"math"

	"github.com/Urethramancer/strs/charset"
	"github.com/Urethramancer/strs/decode"
	"github.com/Urethramancer/strs/errkind"
	"github.com/Urethramancer/strs/filter"
)

// EncodingSet is a flag set over {ASCII, UTF-8, UTF-16}; selecting UTF-16
// drives both the little-endian and big-endian decoders.
type EncodingSet struct {
	ASCII bool
	UTF8  bool
	UTF16 bool
}

// DefaultEncodingSet is UTF-8 ∪ UTF-16.
func DefaultEncodingSet() EncodingSet {
	return EncodingSet{UTF8: true, UTF16: true}
}

// normalized drops ASCII whenever UTF-8 is also selected: ASCII is a strict
// subset of UTF-8's single-byte range, so running both decoders over the
// same bytes would only ever duplicate UTF-8's output.
func (e EncodingSet) normalized() EncodingSet {
	if e.UTF8 {
		e.ASCII = false
	}
	return e
}

func (e EncodingSet) any() bool {
	return e.ASCII || e.UTF8 || e.UTF16
}

const defaultBufferSize = 1 << 16 // 64 KiB

// Options configures a single Scan call.
type Options struct {
	Encodings        EncodingSet
	Blocks           charset.BlockSet
	StartOffset      int64
	BytesToScan      int64 // 0 means "scan to the end"
	MinLength        int
	BufferSize       int
	ExcludeControlCP bool
	Sync             bool // force the sequential driver even with multiple encodings selected
	Target           decode.TargetEncoding
	Filter           filter.Filter // nil disables filtering
	ProgressFunc     func(bytesProcessed int64)
}

// Validate checks Options against a source of the given length and fills in
// defaults. A short final read is tolerated by Scanner itself, not here.
func (o *Options) Validate(length int64) error {
	if o.StartOffset < 0 {
		return fmt.Errorf("%w: start_offset %d is negative", errkind.ErrConfig, o.StartOffset)
	}
	if length > 0 && o.StartOffset >= length {
		return fmt.Errorf("%w: start_offset %d >= source length %d", errkind.ErrOutOfRange, o.StartOffset, length)
	}
	if length == 0 && o.StartOffset != 0 {
		return fmt.Errorf("%w: start_offset %d on an empty source", errkind.ErrOutOfRange, o.StartOffset)
	}

	remaining := length - o.StartOffset
	if o.BytesToScan < 0 {
		return fmt.Errorf("%w: bytes_to_scan %d is negative", errkind.ErrConfig, o.BytesToScan)
	}
	if o.BytesToScan > remaining {
		return fmt.Errorf("%w: bytes_to_scan %d exceeds remaining %d", errkind.ErrOutOfRange, o.BytesToScan, remaining)
	}

	if o.MinLength < 1 {
		return fmt.Errorf("%w: min_length must be >= 1, got %d", errkind.ErrConfig, o.MinLength)
	}

	if o.BufferSize == 0 {
		o.BufferSize = defaultBufferSize
	}
	if o.BufferSize < 0 || o.BufferSize > math.MaxInt32 {
		return fmt.Errorf("%w: invalid buffer_size %d", errkind.ErrConfig, o.BufferSize)
	}
	if length > 0 && int64(o.BufferSize) > length {
		o.BufferSize = int(length)
	}

	if !o.Encodings.any() {
		o.Encodings = DefaultEncodingSet()
	}
	o.Encodings = o.Encodings.normalized()

	return nil
}

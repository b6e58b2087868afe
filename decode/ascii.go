package decode

import (
	"github.com/Urethramancer/strs/charset"
	"github.com/Urethramancer/strs/model"
)

// AsciiDecoder extracts runs of printable ASCII bytes.
type AsciiDecoder struct{}

func (AsciiDecoder) TryDecode(buf []byte, st *DecodeInformation, _ charset.BlockSet) (model.Result, bool) {
	start := st.BufOffset
	if start >= len(buf) {
		st.Live = false
		return model.Result{}, false
	}

	i := start
	for i < len(buf) && charset.IsPrintableASCII(buf[i], st.ExcludeControlCP) {
		i++
	}

	// The breaking byte (if any) is consumed too, even though it's excluded
	// from the reported run: this guarantees forward progress on
	// pathological buffers and must not be "fixed" away.
	consumedEnd := i
	if i < len(buf) {
		consumedEnd = i + 1
	}
	st.BufOffset = consumedEnd
	if st.BufOffset >= len(buf) {
		st.Live = false
	}

	length := i - start
	if length < st.MinLength {
		return model.Result{}, false
	}

	text := string(buf[start:i])
	if st.Target == TargetUnicode {
		text = toUnicode(text)
	}
	return model.Result{
		Offset:   st.BaseOffset + int64(start),
		Encoding: st.Enc,
		Length:   length,
		Text:     text,
	}, true
}

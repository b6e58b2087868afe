package decode_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Urethramancer/strs/charset"
	"github.com/Urethramancer/strs/decode"
	"github.com/Urethramancer/strs/model"
)

func basicLatinBlocks(t *testing.T) charset.BlockSet {
	bs, err := charset.NewBlockSet()
	require.NoError(t, err)
	return bs
}

// deterministic ASCII run followed by a null terminator
func TestAsciiDecoderHelloWorld(t *testing.T) {
	buf := []byte{0x48, 0x65, 0x6C, 0x6C, 0x6F, 0x00, 0x57, 0x6F, 0x72, 0x6C, 0x64}
	st := &decode.DecodeInformation{MinLength: 3, ExcludeControlCP: true, Enc: model.EncodingASCII, Live: true}
	blocks := basicLatinBlocks(t)
	var d decode.AsciiDecoder

	res, ok := d.TryDecode(buf, st, blocks)
	require.True(t, ok)
	require.Equal(t, "Hello", res.Text)
	require.Equal(t, int64(0), res.Offset)
	require.Equal(t, 5, res.Length)
	require.True(t, st.Live)

	res, ok = d.TryDecode(buf, st, blocks)
	require.True(t, ok)
	require.Equal(t, "World", res.Text)
	require.Equal(t, int64(6), res.Offset)
	require.Equal(t, 5, res.Length)
	require.False(t, st.Live)
}

// UTF-16LE run terminated by U+FFFF, a code unit outside every tracked block
func TestUtf16LeDecoderHi(t *testing.T) {
	buf := []byte{0x48, 0x00, 0x69, 0x00, 0x2E, 0x00, 0xFF, 0xFF}
	st := &decode.DecodeInformation{MinLength: 3, ExcludeControlCP: true, Enc: model.EncodingUTF16LE, Live: true}
	blocks := basicLatinBlocks(t)
	d := decode.Utf16Decoder{BigEndian: false}

	res, ok := d.TryDecode(buf, st, blocks)
	require.True(t, ok)
	require.Equal(t, "Hi.", res.Text)
	require.Equal(t, int64(0), res.Offset)
	require.Equal(t, 6, res.Length)
	require.False(t, st.Live)
}

// three repeated snowman characters, selected block matches
func TestUtf8DecoderSnowmenBlockMatch(t *testing.T) {
	buf := []byte{0xE2, 0x98, 0x83, 0xE2, 0x98, 0x83, 0xE2, 0x98, 0x83, 0x00}
	blocks, err := charset.NewBlockSet("Miscellaneous Symbols")
	require.NoError(t, err)
	st := &decode.DecodeInformation{MinLength: 3, ExcludeControlCP: true, Enc: model.EncodingUTF8, Live: true}
	var d decode.Utf8Decoder

	res, ok := d.TryDecode(buf, st, blocks)
	require.True(t, ok)
	require.Equal(t, "☃☃☃", res.Text)
	require.Equal(t, int64(0), res.Offset)
	require.Equal(t, 9, res.Length)
}

func TestUtf8DecoderSnowmenBlockMismatch(t *testing.T) {
	buf := []byte{0xE2, 0x98, 0x83, 0xE2, 0x98, 0x83, 0xE2, 0x98, 0x83, 0x00}
	blocks := basicLatinBlocks(t)
	st := &decode.DecodeInformation{MinLength: 3, ExcludeControlCP: true, Enc: model.EncodingUTF8, Live: true}
	var d decode.Utf8Decoder

	for st.Live {
		_, ok := d.TryDecode(buf, st, blocks)
		require.False(t, ok)
	}
	require.Equal(t, len(buf), st.BufOffset)
}

// a four-byte sequence always breaks the run regardless of validity
func TestUtf8DecoderFourByteAlwaysBreaks(t *testing.T) {
	buf := []byte{0x41, 0x42, 0x43, 0xF0, 0x9F, 0x98, 0x80, 0x44, 0x45, 0x46}
	blocks := basicLatinBlocks(t)
	st := &decode.DecodeInformation{MinLength: 3, ExcludeControlCP: true, Enc: model.EncodingUTF8, Live: true}
	var d decode.Utf8Decoder

	res, ok := d.TryDecode(buf, st, blocks)
	require.True(t, ok)
	require.Equal(t, "ABC", res.Text)
	require.Equal(t, int64(0), res.Offset)
	require.Equal(t, 3, res.Length)
	require.Equal(t, 7, st.BufOffset)

	res, ok = d.TryDecode(buf, st, blocks)
	require.True(t, ok)
	require.Equal(t, "DEF", res.Text)
	require.Equal(t, int64(7), res.Offset)
	require.Equal(t, 3, res.Length)
	require.False(t, st.Live)
}

func TestUtf8SurrogateBreaksRun(t *testing.T) {
	// U+D800 would encode as ED A0 80 in a naive encoder; a conformant
	// UTF-8 decoder must reject it.
	buf := []byte{0x41, 0x42, 0x43, 0xED, 0xA0, 0x80, 0x44, 0x45, 0x46}
	blocks := basicLatinBlocks(t)
	st := &decode.DecodeInformation{MinLength: 3, ExcludeControlCP: true, Enc: model.EncodingUTF8, Live: true}
	var d decode.Utf8Decoder

	res, ok := d.TryDecode(buf, st, blocks)
	require.True(t, ok)
	require.Equal(t, "ABC", res.Text)
}

func TestUtf8OverlongEncodingRejected(t *testing.T) {
	// C0 80 is an overlong encoding of NUL; two-byte leading bytes 0xC0
	// and 0xC1 are already rejected at the leading-byte stage.
	buf := []byte{0x41, 0x42, 0x43, 0xC0, 0x80, 0x44, 0x45, 0x46}
	blocks := basicLatinBlocks(t)
	st := &decode.DecodeInformation{MinLength: 3, ExcludeControlCP: true, Enc: model.EncodingUTF8, Live: true}
	var d decode.Utf8Decoder

	res, ok := d.TryDecode(buf, st, blocks)
	require.True(t, ok)
	require.Equal(t, "ABC", res.Text)
}

func TestAsciiMinLengthStillAdvancesOffset(t *testing.T) {
	buf := []byte{0x41, 0x42, 0x00, 0x43, 0x44, 0x45, 0x46}
	st := &decode.DecodeInformation{MinLength: 3, ExcludeControlCP: true, Enc: model.EncodingASCII, Live: true}
	blocks := basicLatinBlocks(t)
	var d decode.AsciiDecoder

	_, ok := d.TryDecode(buf, st, blocks)
	require.False(t, ok) // "AB" is only 2 chars, short of min_length 3
	require.Equal(t, 3, st.BufOffset)
	require.True(t, st.Live)

	res, ok := d.TryDecode(buf, st, blocks)
	require.True(t, ok)
	require.Equal(t, "CDEF", res.Text)
}

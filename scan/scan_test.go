package scan_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Urethramancer/strs/charset"
	"github.com/Urethramancer/strs/scan"
	"github.com/Urethramancer/strs/sink"
)

type memSource struct {
	*bytes.Reader
}

func newMemSource(b []byte) *memSource   { return &memSource{bytes.NewReader(b)} }
func (m *memSource) Len() (int64, error) { return m.Reader.Size(), nil }
func (m *memSource) Close() error        { return nil }

func TestScanASCIIAndUTF16Mixed(t *testing.T) {
	// "Hello\0" in ASCII followed by UTF-16LE "Hi.". UTF-16 is read in
	// two-byte units from offset 0, so "o\0" at offsets 4-5 is itself a
	// UTF-16LE 'o' and the UTF-16LE run reads "oHi.".
	buf := append([]byte("Hello\x00"), []byte{0x48, 0x00, 0x69, 0x00, 0x2E, 0x00, 0xFF, 0xFF}...)
	src := newMemSource(buf)

	blocks, err := charset.NewBlockSet()
	require.NoError(t, err)

	opts := scan.Options{
		Encodings: scan.DefaultEncodingSet(),
		Blocks:    blocks,
		MinLength: 3,
	}
	snk := sink.NewCollectingSink()

	require.NoError(t, scan.NewScanner().Scan(context.Background(), src, opts, snk))

	var texts []string
	for _, r := range snk.Results {
		texts = append(texts, r.Text)
	}
	require.Contains(t, texts, "Hello")
	require.Contains(t, texts, "oHi.")
}

func TestScanRespectsMinLength(t *testing.T) {
	src := newMemSource([]byte("ab\x00cdefgh"))
	blocks, err := charset.NewBlockSet()
	require.NoError(t, err)

	opts := scan.Options{Encodings: scan.EncodingSet{ASCII: true}, Blocks: blocks, MinLength: 5}
	snk := sink.NewCollectingSink()
	require.NoError(t, scan.NewScanner().Scan(context.Background(), src, opts, snk))

	require.Len(t, snk.Results, 1)
	require.Equal(t, "cdefgh", snk.Results[0].Text)
}

func TestScanStartOffsetAndBytesToScan(t *testing.T) {
	src := newMemSource([]byte("XXXXXHello\x00YYYYY"))
	blocks, err := charset.NewBlockSet()
	require.NoError(t, err)

	opts := scan.Options{
		Encodings:   scan.EncodingSet{ASCII: true},
		Blocks:      blocks,
		MinLength:   3,
		StartOffset: 5,
		BytesToScan: 6,
	}
	snk := sink.NewCollectingSink()
	require.NoError(t, scan.NewScanner().Scan(context.Background(), src, opts, snk))
	require.Len(t, snk.Results, 1)
	require.Equal(t, "Hello", snk.Results[0].Text)
	require.Equal(t, int64(5), snk.Results[0].Offset)
}

func TestOptionsValidateRejectsOutOfRangeOffset(t *testing.T) {
	opts := scan.Options{MinLength: 1, StartOffset: 100}
	require.Error(t, opts.Validate(10))
}

func TestOptionsValidateDefaultsEncodings(t *testing.T) {
	opts := scan.Options{MinLength: 3}
	require.NoError(t, opts.Validate(100))
	require.True(t, opts.Encodings.UTF8)
	require.True(t, opts.Encodings.UTF16)
}

func TestOptionsValidateDropsAsciiWhenUtf8Selected(t *testing.T) {
	opts := scan.Options{MinLength: 3, Encodings: scan.EncodingSet{ASCII: true, UTF8: true}}
	require.NoError(t, opts.Validate(100))
	require.False(t, opts.Encodings.ASCII)
	require.True(t, opts.Encodings.UTF8)
}

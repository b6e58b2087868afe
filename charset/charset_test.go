package charset_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Urethramancer/strs/charset"
)

func TestIsPrintableASCII(t *testing.T) {
	require.True(t, charset.IsPrintableASCII('A', false))
	require.True(t, charset.IsPrintableASCII(' ', false))
	require.True(t, charset.IsPrintableASCII('~', false))
	require.False(t, charset.IsPrintableASCII(0x1F, false))

	require.True(t, charset.IsPrintableASCII('\t', false))
	require.False(t, charset.IsPrintableASCII('\t', true))
	require.False(t, charset.IsPrintableASCII('\n', true))
	require.False(t, charset.IsPrintableASCII('\r', true))
}

func TestBlockOf(t *testing.T) {
	tag, ok := charset.BlockOf('A')
	require.True(t, ok)
	require.Equal(t, charset.BasicLatin, tag)

	tag, ok = charset.BlockOf(0x2603) // snowman
	require.True(t, ok)
	require.Equal(t, charset.MiscellaneousSymbols, tag)

	_, ok = charset.BlockOf(0xD800) // surrogate
	require.False(t, ok)
}

func TestCompatibleBasicLatinFamily(t *testing.T) {
	require.True(t, charset.Compatible(charset.BasicLatin, charset.Latin1Supplement))
	require.True(t, charset.Compatible(charset.LatinExtendedA, charset.BasicLatin))
	require.True(t, charset.Compatible(charset.Cyrillic, charset.Cyrillic))
	require.False(t, charset.Compatible(charset.Cyrillic, charset.Hebrew))
	require.False(t, charset.Compatible(charset.BasicLatin, charset.Cyrillic))
}

func TestNewBlockSetAlwaysHasBasicLatin(t *testing.T) {
	bs, err := charset.NewBlockSet("Cyrillic")
	require.NoError(t, err)
	require.True(t, bs.Contains(charset.BasicLatin))
	require.True(t, bs.Contains(charset.Cyrillic))
	require.False(t, bs.Contains(charset.Hebrew))
}

func TestNewBlockSetAllAlias(t *testing.T) {
	bs, err := charset.NewBlockSet("All")
	require.NoError(t, err)
	require.True(t, bs.Contains(charset.CJKUnifiedIdeographs))
	require.True(t, bs.Contains(charset.Hebrew))
}

func TestNewBlockSetUnknownName(t *testing.T) {
	_, err := charset.NewBlockSet("NotARealBlock")
	require.Error(t, err)
}

func TestAcceptsContinuation(t *testing.T) {
	bs, err := charset.NewBlockSet("Miscellaneous Symbols")
	require.NoError(t, err)
	bsName, _ := charset.TagByName("Miscellaneous Symbols")
	require.True(t, bs.Contains(bsName))
	require.True(t, bs.AcceptsContinuation(bsName, bsName))
	require.False(t, bs.AcceptsContinuation(charset.BasicLatin, charset.Cyrillic))
}

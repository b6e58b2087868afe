package decode

import (
	"unicode/utf16"

	"github.com/Urethramancer/strs/charset"
	"github.com/Urethramancer/strs/model"
)

// Utf16Decoder extracts runs of block-compatible UTF-16 text in either
// byte order.
type Utf16Decoder struct {
	BigEndian bool
}

func (d Utf16Decoder) codeUnit(b0, b1 byte) uint16 {
	if d.BigEndian {
		return uint16(b0)<<8 | uint16(b1)
	}
	return uint16(b1)<<8 | uint16(b0)
}

// highLowBytes returns the most- and least-significant byte of a two-byte
// unit, independent of wire order, for the ASCII fast-path check.
func (d Utf16Decoder) highLowBytes(b0, b1 byte) (hi, lo byte) {
	if d.BigEndian {
		return b0, b1
	}
	return b1, b0
}

func (d Utf16Decoder) TryDecode(buf []byte, st *DecodeInformation, blocks charset.BlockSet) (model.Result, bool) {
	start := st.BufOffset
	i := start
	acceptEnd := start
	haveRunBlock := false
	var runBlock charset.Tag
	var units []uint16

	for {
		if i+2 > len(buf) {
			break // out-of-buffer at the two-byte boundary: run ends, nothing extra consumed
		}

		b0, b1 := buf[i], buf[i+1]
		hi, lo := d.highLowBytes(b0, b1)
		cp := d.codeUnit(b0, b1)

		accept := false
		asciiLike := hi == 0x00 && charset.IsPrintableASCII(lo, st.ExcludeControlCP)
		switch {
		case asciiLike:
			accept = true
		case cp < 0x80:
			accept = false // BasicLatin code unit that failed the printable check
		case cp >= 0xD800 && cp <= 0xDFFF:
			accept = false // surrogate: "no block", ends run
		default:
			if tag, ok := charset.BlockOf(cp); ok {
				if !haveRunBlock {
					accept = blocks.Contains(tag)
					if accept {
						runBlock = tag
						haveRunBlock = true
					}
				} else {
					accept = blocks.AcceptsContinuation(runBlock, tag)
				}
			}
		}

		if !accept {
			i += 2 // consume the breaking code unit too, guaranteeing forward progress
			break
		}
		units = append(units, cp)
		i += 2
		acceptEnd = i
	}

	st.BufOffset = i
	if len(buf)-st.BufOffset < 2 {
		st.Live = false
	}

	length := acceptEnd - start
	if (length / 2) < st.MinLength {
		return model.Result{}, false
	}

	text := string(utf16.Decode(units))
	return model.Result{
		Offset:   st.BaseOffset + int64(start),
		Encoding: st.Enc,
		Length:   length,
		Text:     text,
	}, true
}

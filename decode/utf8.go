package decode

import (
	"strings"

	"github.com/Urethramancer/strs/charset"
	"github.com/Urethramancer/strs/model"
)

// Utf8Decoder extracts runs of well-formed, block-compatible UTF-8 text.
type Utf8Decoder struct{}

// utf8Candidate inspects the byte sequence starting at buf[i] and classifies
// it as one candidate character, by the leading byte's UTF-8 form.
//
// boundary is true when the buffer doesn't hold enough bytes to decide —
// the caller must stop cleanly without consuming anything; a run always
// ends at the buffer boundary rather than guessing across it. Otherwise
// length is how many
// bytes this candidate occupies (its "last_char_byte_count"), and ok is
// whether it's a valid, in-range, non-surrogate BMP character (printable,
// for the single-byte case).
func utf8Candidate(buf []byte, i int, excludeControlCP bool) (cp uint16, length int, ok bool, boundary bool) {
	lead := buf[i]

	switch {
	case lead < 0x80:
		return uint16(lead), 1, charset.IsPrintableASCII(lead, excludeControlCP), false

	case lead >= 0x80 && lead <= 0xBF, lead == 0xC0, lead == 0xC1, lead >= 0xF5:
		return 0, 1, false, false // invalid leading byte: immediate break

	case lead >= 0xC2 && lead <= 0xDF: // two-byte form
		if i+1 >= len(buf) {
			return 0, 0, false, true
		}
		b2 := buf[i+1]
		if b2 < 0x80 || b2 > 0xBF {
			return 0, 2, false, false
		}
		cp = (uint16(lead-0xC0) << 6) | uint16(b2-0x80)
		return cp, 2, true, false

	case lead >= 0xE0 && lead <= 0xEF: // three-byte form
		if i+1 >= len(buf) {
			return 0, 0, false, true
		}
		b2 := buf[i+1]
		if b2 < 0x80 || b2 > 0xBF {
			return 0, 2, false, false
		}
		if i+2 >= len(buf) {
			return 0, 0, false, true
		}
		b3 := buf[i+2]
		if b3 < 0x80 || b3 > 0xBF {
			return 0, 3, false, false
		}
		cp = (uint16(lead&0x0F) << 12) | (uint16(b2&0x3F) << 6) | uint16(b3&0x3F)
		if cp < 0x0800 || (cp >= 0xD800 && cp <= 0xDFFF) {
			return 0, 3, false, false // overlong or surrogate
		}
		return cp, 3, true, false

	case lead >= 0xF0 && lead <= 0xF4: // four-byte form: non-BMP, always breaks
		length = 4
		if i+4 > len(buf) {
			length = len(buf) - i
		}
		return 0, length, false, false

	default:
		return 0, 1, false, false
	}
}

// acceptBlock applies the block-run policy: the first accepted character
// fixes runBlock; later characters must be selected and compatible with it.
func acceptBlock(haveRunBlock *bool, runBlock *charset.Tag, blocks charset.BlockSet, tag charset.Tag) bool {
	if !*haveRunBlock {
		if !blocks.Contains(tag) {
			return false
		}
		*runBlock = tag
		*haveRunBlock = true
		return true
	}
	return blocks.AcceptsContinuation(*runBlock, tag)
}

func (Utf8Decoder) TryDecode(buf []byte, st *DecodeInformation, blocks charset.BlockSet) (model.Result, bool) {
	start := st.BufOffset
	i := start
	acceptEnd := start
	haveRunBlock := false
	var runBlock charset.Tag
	var charsAccepted int
	var text strings.Builder
	hitBoundary := false

	for {
		if i >= len(buf) {
			break // clean end of buffer, nothing left to probe
		}

		cp, length, validChar, boundary := utf8Candidate(buf, i, st.ExcludeControlCP)
		if boundary {
			hitBoundary = true
			break // not enough bytes to decide; run ends at the buffer boundary
		}
		if !validChar {
			i += length
			break
		}

		tag, hasBlock := charset.BlockOf(cp)
		if !hasBlock || !acceptBlock(&haveRunBlock, &runBlock, blocks, tag) {
			i += length
			break
		}

		text.WriteRune(rune(cp))
		i += length
		acceptEnd = i
		charsAccepted++
	}

	st.BufOffset = i
	if hitBoundary || st.BufOffset >= len(buf) {
		st.Live = false
	}

	if charsAccepted < st.MinLength {
		return model.Result{}, false
	}

	out := text.String()
	if st.Target == TargetUnicode {
		out = toUnicode(out)
	}
	return model.Result{
		Offset:   st.BaseOffset + int64(start),
		Encoding: st.Enc,
		Length:   acceptEnd - start,
		Text:     out,
	}, true
}

package scan

import (
	"github.com/Urethramancer/strs/decode"
	"github.com/Urethramancer/strs/model"
)

type decoderSlot struct {
	info *decode.DecodeInformation
	dec  decode.Decoder
}

func buildDecoders(encs EncodingSet, opts Options) []decoderSlot {
	var slots []decoderSlot

	newInfo := func(enc model.Encoding) *decode.DecodeInformation {
		return &decode.DecodeInformation{
			MinLength:        opts.MinLength,
			ExcludeControlCP: opts.ExcludeControlCP,
			Target:           opts.Target,
			Enc:              enc,
		}
	}

	if encs.ASCII {
		slots = append(slots, decoderSlot{newInfo(model.EncodingASCII), decode.AsciiDecoder{}})
	}
	if encs.UTF8 {
		slots = append(slots, decoderSlot{newInfo(model.EncodingUTF8), decode.Utf8Decoder{}})
	}
	if encs.UTF16 {
		slots = append(slots, decoderSlot{newInfo(model.EncodingUTF16LE), decode.Utf16Decoder{BigEndian: false}})
		slots = append(slots, decoderSlot{newInfo(model.EncodingUTF16BE), decode.Utf16Decoder{BigEndian: true}})
	}
	return slots
}

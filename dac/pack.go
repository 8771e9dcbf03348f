package dac

import "fmt"

// PackWord combines two raw codes into one word, channel 0 in the low half.
func PackWord(raw0, raw1 int16) uint32 {
	return uint32(uint16(raw1))<<16 | uint32(uint16(raw0))
}

// UnpackWord splits a word into its channel 0 and channel 1 codes.
func UnpackWord(w uint32) (raw0, raw1 int16) {
	return int16(uint16(w)), int16(uint16(w >> 16))
}

// Pack converts ch0 and ch1 through conv and stores the interleaved words in
// dst.Words[:len(ch0)]. Both channels must have the same length and dst must
// hold at least that many words.
func Pack(dst *Buffer, ch0, ch1 []float64, conv Converter) error {
	if len(ch0) != len(ch1) {
		return fmt.Errorf("%w: %d != %d", ErrChannelLength, len(ch0), len(ch1))
	}
	if dst.Len() < len(ch0) {
		return fmt.Errorf("%w: have %d, need %d", ErrBufferSize, dst.Len(), len(ch0))
	}

	for i := range ch0 {
		dst.Words[i] = PackWord(conv.VoltsToRaw(ch0[i], 0), conv.VoltsToRaw(ch1[i], 1))
	}

	return nil
}

// PackInto allocates words for the channels and packs them without a device.
func PackInto(ch0, ch1 []float64, conv Converter) ([]uint32, error) {
	buf := &Buffer{Words: make([]uint32, len(ch0))}
	if err := Pack(buf, ch0, ch1, conv); err != nil {
		return nil, err
	}
	return buf.Words, nil
}

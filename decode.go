package wavsample

import (
	"encoding/binary"
	"fmt"
)

// sampleDecodeFunc returns a function that converts the leading bytes of
// a buffer into an int value based on the sample width in bytes.
// Note that 8bit samples are unsigned, all other values are signed.
func sampleDecodeFunc(bytesPerSample int) (func([]byte) int, error) {
	// NOTE: WAV PCM data is stored using little-endian
	switch bytesPerSample {
	case 1:
		// 8bit values are unsigned
		return func(b []byte) int {
			return int(b[0])
		}, nil
	case 2:
		return func(b []byte) int {
			return int(int16(binary.LittleEndian.Uint16(b[:2])))
		}, nil
	case 4:
		return func(b []byte) int {
			return int(int32(binary.LittleEndian.Uint32(b[:4])))
		}, nil
	default:
		return nil, fmt.Errorf("%w: %d byte(s) per sample", ErrUnsupportedBitDepth, bytesPerSample)
	}
}

// DecodeFrame converts one frame of raw interleaved PCM bytes into
// per-channel integer values, channel 0 first. The frame must hold
// exactly numChans*bytesPerSample bytes.
func DecodeFrame(frame []byte, numChans, bytesPerSample int) ([]int, error) {
	decodeF, err := sampleDecodeFunc(bytesPerSample)
	if err != nil {
		return nil, err
	}

	if numChans < 1 {
		return nil, fmt.Errorf("%w: %d", errInvalidNumChannels, numChans)
	}

	if want := numChans * bytesPerSample; len(frame) != want {
		return nil, fmt.Errorf("%w: frame is %d byte(s), want %d", ErrTruncatedData, len(frame), want)
	}

	values := make([]int, numChans)
	for ch := range values {
		values[ch] = decodeF(frame[ch*bytesPerSample:])
	}

	return values, nil
}

func bytesPerSample(bitDepth int) int {
	if bitDepth < 1 {
		return 0
	}

	return (bitDepth-1)/8 + 1
}

package wavsample

import "encoding/binary"

const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

// FmtChunk stores the parsed WAV fmt chunk, including any extension data.
type FmtChunk struct {
	FormatTag      uint16
	NumChannels    uint16
	SampleRate     uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16
	ExtraData      []byte
}

// EffectiveFormatTag resolves WAVE_FORMAT_EXTENSIBLE headers to the
// sub-format tag carried in the extension GUID.
func (f *FmtChunk) EffectiveFormatTag() uint16 {
	if f == nil {
		return 0
	}

	// extension layout: valid bits (2), channel mask (4), sub-format GUID (16)
	if f.FormatTag == wavFormatExtensible && len(f.ExtraData) >= 22 {
		return binary.LittleEndian.Uint16(f.ExtraData[6:8])
	}

	return f.FormatTag
}

package wavsample

import (
	"bytes"
	"encoding/binary"
)

// wavSpec describes a synthetic WAV container for tests. The zero value
// of declaredDataSize means the data chunk declares its actual length.
type wavSpec struct {
	formatTag        uint16
	numChans         uint16
	sampleRate       uint32
	bitDepth         uint16
	extra            []byte // fmt extension payload, cbSize gets prepended
	data             []byte
	declaredDataSize int
	trailing         []byte // raw chunk bytes appended after the data payload
}

func buildWav(s wavSpec) []byte {
	le := binary.LittleEndian

	var fmtBody bytes.Buffer

	binary.Write(&fmtBody, le, s.formatTag)
	binary.Write(&fmtBody, le, s.numChans)
	binary.Write(&fmtBody, le, s.sampleRate)

	width := bytesPerSample(int(s.bitDepth))
	binary.Write(&fmtBody, le, s.sampleRate*uint32(s.numChans)*uint32(width))
	binary.Write(&fmtBody, le, s.numChans*uint16(width))
	binary.Write(&fmtBody, le, s.bitDepth)

	if s.extra != nil {
		binary.Write(&fmtBody, le, uint16(len(s.extra)))
		fmtBody.Write(s.extra)
	}

	declared := uint32(len(s.data))
	if s.declaredDataSize > 0 {
		declared = uint32(s.declaredDataSize)
	}

	var body bytes.Buffer

	body.WriteString("WAVE")
	writeChunk(&body, "fmt ", fmtBody.Bytes())
	body.WriteString("data")
	binary.Write(&body, le, declared)
	body.Write(s.data)

	if len(s.data)%2 == 1 && s.declaredDataSize == 0 {
		body.WriteByte(0)
	}

	body.Write(s.trailing)

	var out bytes.Buffer

	out.WriteString("RIFF")
	binary.Write(&out, le, uint32(body.Len()))
	out.Write(body.Bytes())

	return out.Bytes()
}

func writeChunk(w *bytes.Buffer, id string, payload []byte) {
	w.WriteString(id)
	binary.Write(w, binary.LittleEndian, uint32(len(payload)))
	w.Write(payload)

	if len(payload)%2 == 1 {
		w.WriteByte(0)
	}
}

// extensibleExtra builds a WAVE_FORMAT_EXTENSIBLE extension block with
// the given sub-format tag in the GUID head.
func extensibleExtra(validBits uint16, subFormatTag uint16) []byte {
	extra := make([]byte, 22)
	binary.LittleEndian.PutUint16(extra[0:2], validBits)
	binary.LittleEndian.PutUint32(extra[2:6], 0x3) // front left | front right
	binary.LittleEndian.PutUint16(extra[6:8], subFormatTag)
	copy(extra[10:22], []byte{0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71})

	return extra
}

func pcm16Bytes(values ...int16) []byte {
	out := make([]byte, 2*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(v))
	}

	return out
}

func pcm32Bytes(values ...int32) []byte {
	out := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[4*i:], uint32(v))
	}

	return out
}

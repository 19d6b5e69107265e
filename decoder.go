package wavsample

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
)

var waveFormatID = [4]byte{'W', 'A', 'V', 'E'}

// Decoder reads a PCM WAV container and provides random access to its
// sample frames. The read cursor only moves via explicit SeekToFrame and
// ReadFrame calls.
type Decoder struct {
	r      io.ReadSeeker
	parser *riff.Parser

	NumChans   uint16
	BitDepth   uint16
	SampleRate uint32

	AvgBytesPerSec uint32
	BlockAlign     uint16
	WavAudioFormat uint16
	FmtChunk       *FmtChunk

	err           error
	headersParsed bool
	dataStart     int64
	dataSize      int64
	dataFound     bool
	pos           int64
}

// NewDecoder creates a decoder for the passed wav reader.
// Note that the reader doesn't get rewinded as the container is processed.
func NewDecoder(r io.ReadSeeker) *Decoder {
	return &Decoder{
		r:      r,
		parser: riff.New(r),
	}
}

// ReadInfo reads the underlying reader until the container headers are
// parsed. This method is safe to call multiple times.
func (d *Decoder) ReadInfo() {
	d.err = d.readHeaders()
}

// Err returns the first error that was encountered by the Decoder.
func (d *Decoder) Err() error {
	if errors.Is(d.err, io.EOF) {
		return nil
	}

	return d.err
}

// FwdToPCM parses the container headers if needed and positions the read
// cursor at the start of the PCM data.
func (d *Decoder) FwdToPCM() error {
	if d == nil {
		return ErrPCMDataNotFound
	}

	d.err = d.readHeaders()
	if d.err != nil {
		return d.err
	}

	return d.SeekToFrame(0)
}

// NumFrames returns the number of complete frames in the data chunk.
// A trailing partial frame, if any, is not addressable.
func (d *Decoder) NumFrames() int {
	if err := d.readHeaders(); err != nil {
		return 0
	}

	fs := d.frameSize()
	if fs == 0 {
		return 0
	}

	return int(d.dataSize / int64(fs))
}

// SeekToFrame repositions the read cursor at the byte offset of the given
// frame index within the data chunk. This is pure positioning; bounds are
// not validated here.
func (d *Decoder) SeekToFrame(index int) error {
	if err := d.readHeaders(); err != nil {
		return err
	}

	offset := d.dataStart + int64(index)*int64(d.frameSize())

	_, err := d.r.Seek(offset, io.SeekStart)
	if err != nil {
		return fmt.Errorf("failed to seek to frame %d: %w", index, err)
	}

	d.pos = offset

	return nil
}

// ReadFrame reads the raw bytes of one frame at the current cursor
// position. Fewer than a full frame's bytes remaining before the end of
// the data chunk is a truncation error, never a short result.
func (d *Decoder) ReadFrame() ([]byte, error) {
	if err := d.readHeaders(); err != nil {
		return nil, err
	}

	fs := d.frameSize()
	if fs == 0 {
		return nil, fmt.Errorf("%w: %d bit", ErrUnsupportedBitDepth, d.BitDepth)
	}

	end := d.dataStart + d.dataSize
	if d.pos+int64(fs) > end {
		return nil, fmt.Errorf("%w: %d byte(s) left in data chunk, frame needs %d",
			ErrTruncatedData, end-d.pos, fs)
	}

	buf := make([]byte, fs)

	_, err := io.ReadFull(d.r, buf)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: %s", ErrTruncatedData, err)
		}

		return nil, fmt.Errorf("failed to read frame: %w", err)
	}

	d.pos += int64(fs)

	return buf, nil
}

// FrameAt decodes the frame at the given index into per-channel values.
// This is the bounds-validated entry point: the index is checked against
// the frame count once, before any positioning happens.
func (d *Decoder) FrameAt(index int) (*audio.IntBuffer, error) {
	if err := d.readHeaders(); err != nil {
		return nil, err
	}

	numFrames := d.NumFrames()
	if index < 0 || index >= numFrames {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrFrameOutOfRange, index, numFrames)
	}

	width := bytesPerSample(int(d.BitDepth))
	if _, err := sampleDecodeFunc(width); err != nil {
		return nil, err
	}

	if err := d.SeekToFrame(index); err != nil {
		return nil, err
	}

	frame, err := d.ReadFrame()
	if err != nil {
		return nil, err
	}

	values, err := DecodeFrame(frame, int(d.NumChans), width)
	if err != nil {
		return nil, err
	}

	return &audio.IntBuffer{
		Format:         d.Format(),
		Data:           values,
		SourceBitDepth: int(d.BitDepth),
	}, nil
}

// Format returns the audio format of the decoded content.
func (d *Decoder) Format() *audio.Format {
	if d == nil {
		return nil
	}

	return &audio.Format{
		NumChannels: int(d.NumChans),
		SampleRate:  int(d.SampleRate),
	}
}

// Duration returns the time duration for the current audio container.
func (d *Decoder) Duration() (time.Duration, error) {
	if d == nil || d.parser == nil {
		return 0, ErrPCMDataNotFound
	}

	dur, err := d.parser.Duration()
	if err != nil {
		return 0, fmt.Errorf("failed to get duration: %w", err)
	}

	return dur, nil
}

// String implements the Stringer interface.
func (d *Decoder) String() string {
	return d.parser.String()
}

func (d *Decoder) frameSize() int {
	return int(d.NumChans) * bytesPerSample(int(d.BitDepth))
}

// readHeaders parses the RIFF header and walks the chunk list until both
// the fmt and data descriptors are known. Chunks in between are skipped
// without loading them. Safe to call multiple times.
func (d *Decoder) readHeaders() error {
	if d == nil {
		return ErrPCMDataNotFound
	}

	if d.headersParsed {
		return d.err
	}

	d.headersParsed = true
	d.err = d.walkChunks()

	return d.err
}

func (d *Decoder) walkChunks() error {
	id, size, err := d.parser.IDnSize()
	if err != nil {
		return fmt.Errorf("failed to read riff header: %w", err)
	}

	d.parser.ID = id
	if d.parser.ID != riff.RiffID {
		return fmt.Errorf("%s - %w", string(id[:]), riff.ErrFmtNotSupported)
	}

	d.parser.Size = size

	err = binary.Read(d.r, binary.BigEndian, &d.parser.Format)
	if err != nil {
		return fmt.Errorf("failed to read format: %w", err)
	}

	if d.parser.Format != waveFormatID {
		return fmt.Errorf("%s - %w", string(d.parser.Format[:]), riff.ErrFmtNotSupported)
	}

	for d.FmtChunk == nil || !d.dataFound {
		id, size, err := d.parser.IDnSize()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}

			return fmt.Errorf("error reading chunk header: %w", err)
		}

		declared := int64(size)

		// chunks are word aligned, the pad byte is not part of the size
		padded := declared
		if size%2 == 1 {
			padded++
		}

		switch id {
		case riff.FmtID:
			chunk := &riff.Chunk{
				ID:   id,
				Size: int(size),
				R:    io.LimitReader(d.r, declared),
			}

			if err := d.decodeFmtChunk(chunk); err != nil {
				return err
			}

			if padded > declared {
				if _, err := d.r.Seek(1, io.SeekCurrent); err != nil {
					return fmt.Errorf("failed to skip chunk padding: %w", err)
				}
			}
		case riff.DataFormatID:
			start, err := d.r.Seek(0, io.SeekCurrent)
			if err != nil {
				return fmt.Errorf("failed to locate data chunk: %w", err)
			}

			d.dataStart = start
			d.dataSize = declared
			d.dataFound = true

			// skip the payload so trailing chunks stay reachable
			if _, err := d.r.Seek(padded, io.SeekCurrent); err != nil {
				return fmt.Errorf("failed to skip data chunk: %w", err)
			}
		default:
			if _, err := d.r.Seek(padded, io.SeekCurrent); err != nil {
				return fmt.Errorf("failed to skip chunk %s: %w", string(id[:]), err)
			}
		}
	}

	if d.FmtChunk == nil {
		return errFmtChunkNotFound
	}

	if !d.dataFound {
		return ErrPCMDataNotFound
	}

	// leave the cursor at the first frame
	if _, err := d.r.Seek(d.dataStart, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to the PCM data: %w", err)
	}

	d.pos = d.dataStart

	return nil
}

func (d *Decoder) decodeFmtChunk(chunk *riff.Chunk) error {
	fc := &FmtChunk{}

	err := chunk.ReadLE(&fc.FormatTag)
	if err != nil {
		return fmt.Errorf("failed to read wav format: %w", err)
	}

	err = chunk.ReadLE(&fc.NumChannels)
	if err != nil {
		return fmt.Errorf("failed to read channels: %w", err)
	}

	err = chunk.ReadLE(&fc.SampleRate)
	if err != nil {
		return fmt.Errorf("failed to read sample rate: %w", err)
	}

	err = chunk.ReadLE(&fc.AvgBytesPerSec)
	if err != nil {
		return fmt.Errorf("failed to read avg bytes/sec: %w", err)
	}

	err = chunk.ReadLE(&fc.BlockAlign)
	if err != nil {
		return fmt.Errorf("failed to read block align: %w", err)
	}

	err = chunk.ReadLE(&fc.BitsPerSample)
	if err != nil {
		return fmt.Errorf("failed to read bit depth: %w", err)
	}

	if chunk.Size > 16 {
		var extraSize uint16

		err = chunk.ReadLE(&extraSize)
		if err != nil {
			return fmt.Errorf("failed to read fmt extension size: %w", err)
		}

		fc.ExtraData = make([]byte, extraSize)
		if extraSize > 0 {
			err := chunk.ReadLE(&fc.ExtraData)
			if err != nil {
				return fmt.Errorf("failed to read fmt extension data: %w", err)
			}
		}
	}

	chunk.Drain()

	if fc.NumChannels < 1 {
		return fmt.Errorf("%w: %d", errInvalidNumChannels, fc.NumChannels)
	}

	if tag := fc.EffectiveFormatTag(); tag != wavFormatPCM {
		return fmt.Errorf("%w (format tag %d)", ErrNotPCM, tag)
	}

	d.FmtChunk = fc
	d.NumChans = fc.NumChannels
	d.BitDepth = fc.BitsPerSample
	d.SampleRate = fc.SampleRate
	d.AvgBytesPerSec = fc.AvgBytesPerSec
	d.BlockAlign = fc.BlockAlign
	d.WavAudioFormat = fc.EffectiveFormatTag()

	d.parser.NumChannels = fc.NumChannels
	d.parser.SampleRate = fc.SampleRate
	d.parser.AvgBytesPerSec = fc.AvgBytesPerSec
	d.parser.BlockAlign = fc.BlockAlign
	d.parser.BitsPerSample = fc.BitsPerSample
	d.parser.WavAudioFormat = fc.FormatTag

	return nil
}

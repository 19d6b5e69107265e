package wavsample

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrPCMDataNotFound is returned when no data chunk is present.
	ErrPCMDataNotFound = errors.New("PCM data not found")
	// ErrNotPCM is returned when the format chunk declares an encoding
	// other than uncompressed integer PCM.
	ErrNotPCM = errors.New("unsupported encoding: not uncompressed PCM")
	// ErrUnsupportedBitDepth is returned for sample widths other than
	// 1, 2 or 4 bytes. 24-bit PCM is deliberately not supported.
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
	// ErrFrameOutOfRange is returned when a frame index falls outside
	// [0, NumFrames).
	ErrFrameOutOfRange = errors.New("frame index out of range")
	// ErrTruncatedData is returned when the data chunk ends before a
	// full frame could be read.
	ErrTruncatedData = errors.New("truncated PCM data")

	errFmtChunkNotFound   = errors.New("fmt chunk not found")
	errInvalidNumChannels = errors.New("invalid channel count")
)

// File couples a Decoder with the os.File backing it. The handle is
// owned by the File and must be released with Close on every path.
type File struct {
	*Decoder
	f *os.File
}

// Open opens the WAV file at path and parses its container headers.
// A path that does not resolve to a readable file surfaces the os error,
// matchable with errors.Is(err, fs.ErrNotExist).
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	d := NewDecoder(f)
	if err := d.FwdToPCM(); err != nil {
		f.Close()
		return nil, err
	}

	return &File{Decoder: d, f: f}, nil
}

// Close releases the underlying file handle.
func (w *File) Close() error {
	return w.f.Close()
}

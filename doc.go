// Package wavsample extracts individual sample frames from uncompressed
// PCM WAV files.
//
// The decoder walks the RIFF chunk structure to locate the fmt and data
// chunks, then seeks straight to the byte offset of a requested frame;
// the audio payload is never loaded as a whole. Supported sample widths
// are 8-bit unsigned and 16/32-bit signed little-endian integers. 24-bit
// PCM is rejected as unsupported.
package wavsample

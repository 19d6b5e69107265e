// This tool prints the metadata of a PCM WAV file and the decoded value
// of the sample frame at the requested index.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/o-kos/wavsample"
)

const usageMessage = "Usage: wavsample <path-to-wav-file> <frame-index>"

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	if errors.Is(err, errUsage) {
		fmt.Println(usageMessage)
		os.Exit(1)
	}

	log.Fatal(err)
}

var (
	errUsage        = errors.New("expected exactly two arguments")
	errInvalidIndex = errors.New("frame index must be an integer")
)

func run(args []string, out io.Writer) error {
	if len(args) != 2 {
		return errUsage
	}

	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: %q", errInvalidIndex, args[1])
	}

	file, err := wavsample.Open(args[0])
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintf(out, "Sample rate: %d Hz\n", file.SampleRate)
	fmt.Fprintf(out, "Channels: %d\n", file.NumChans)
	fmt.Fprintf(out, "Bit depth: %d bit\n", file.BitDepth)
	fmt.Fprintf(out, "Total frames: %d\n", file.NumFrames())

	buf, err := file.FrameAt(index)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nSample #%d: %s\n", index, formatValues(buf.Data))

	return nil
}

// formatValues renders mono frames as a bare scalar and multi-channel
// frames as a tuple in channel order.
func formatValues(values []int) string {
	if len(values) == 1 {
		return strconv.Itoa(values[0])
	}

	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}

	return "(" + strings.Join(parts, ", ") + ")"
}

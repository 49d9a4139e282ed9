package node

import (
	"errors"
	"io"
	"io/fs"
)

const (
	StdoutPrefix = "stdout: "

	relayBufferSize = 32 * 1024
)

// Relay copies src to dst chunk by chunk. Every read becomes exactly one
// write of prefix + chunk + "\n"; chunks are not split on line
// boundaries. onChunk, if set, sees the payload size of each chunk.
// Relay returns the payload bytes copied once src is exhausted.
func Relay(dst io.Writer, src io.Reader, prefix string, onChunk func(n int)) (int64, error) {
	buf := make([]byte, relayBufferSize)
	line := make([]byte, 0, len(prefix)+relayBufferSize+1)

	var total int64
	for {
		n, err := src.Read(buf)
		if n > 0 {
			line = append(line[:0], prefix...)
			line = append(line, buf[:n]...)
			line = append(line, '\n')
			if _, werr := dst.Write(line); werr != nil {
				return total, werr
			}
			total += int64(n)
			if onChunk != nil {
				onChunk(n)
			}
		}
		if err != nil {
			// a killed child closes the pipe under us
			if errors.Is(err, io.EOF) || errors.Is(err, fs.ErrClosed) {
				return total, nil
			}
			return total, err
		}
	}
}

package stream

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// NewSink wraps w with the compressor named by ext (".gz", ".zst", or
// anything else for plain buffered output).
func NewSink(w io.Writer, ext string) (io.WriteCloser, error) {
	switch ext {
	case ".gz":
		return gzip.NewWriter(w), nil
	case ".zst":
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("open zstd sink: %w", err)
		}
		return enc, nil
	default:
		return &flushCloser{bw: bufio.NewWriter(w)}, nil
	}
}

// Create creates path and returns a sink whose compression is chosen
// by the file extension. Closing the sink flushes and closes the file.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	ext := ""
	if i := strings.LastIndex(path, "."); i >= 0 {
		ext = path[i:]
	}
	sink, err := NewSink(f, ext)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &chainedWriteCloser{WriteCloser: sink, under: f}, nil
}

type flushCloser struct {
	bw *bufio.Writer
}

func (f *flushCloser) Write(p []byte) (int, error) {
	return f.bw.Write(p)
}

func (f *flushCloser) Close() error {
	return f.bw.Flush()
}

type chainedWriteCloser struct {
	io.WriteCloser
	under io.Closer
}

func (c *chainedWriteCloser) Close() error {
	err := c.WriteCloser.Close()
	if uerr := c.under.Close(); err == nil {
		err = uerr
	}
	return err
}

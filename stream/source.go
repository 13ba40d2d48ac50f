// Package stream provides the buffered byte source/sink collaborators
// used around the vcd codec: transparent decompression of gzip- and
// zstd-compressed traces, compressing sinks selected by file extension,
// and byte accounting for progress reporting.
package stream

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

const sourceBufSize = 1 << 16

// NewSource wraps r with transparent decompression, sniffing the gzip
// and zstd magic bytes. Plain input passes through buffered.
func NewSource(r io.Reader) (io.ReadCloser, error) {
	br := bufio.NewReaderSize(r, sourceBufSize)
	magic, err := br.Peek(4)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("sniff source: %w", err)
	}
	switch {
	case bytes.HasPrefix(magic, gzipMagic):
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("open gzip source: %w", err)
		}
		return gz, nil
	case bytes.HasPrefix(magic, zstdMagic):
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("open zstd source: %w", err)
		}
		return &zstdReadCloser{dec: dec}, nil
	default:
		return io.NopCloser(br), nil
	}
}

// Open opens path and wraps it with NewSource. Closing the returned
// reader closes the file.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	src, err := NewSource(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &chainedCloser{ReadCloser: src, under: f}, nil
}

type zstdReadCloser struct {
	dec *zstd.Decoder
}

func (z *zstdReadCloser) Read(p []byte) (int, error) {
	return z.dec.Read(p)
}

func (z *zstdReadCloser) Close() error {
	z.dec.Close()
	return nil
}

// chainedCloser closes the wrapper first, then the underlying file.
type chainedCloser struct {
	io.ReadCloser
	under io.Closer
}

func (c *chainedCloser) Close() error {
	err := c.ReadCloser.Close()
	if uerr := c.under.Close(); err == nil {
		err = uerr
	}
	return err
}

// CountingReader tracks the number of bytes read through it, for
// progress reporting against a known input size.
type CountingReader struct {
	r io.Reader
	n int64
}

// NewCountingReader wraps r.
func NewCountingReader(r io.Reader) *CountingReader {
	return &CountingReader{r: r}
}

func (c *CountingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// BytesRead returns the byte count so far.
func (c *CountingReader) BytesRead() int64 {
	return c.n
}

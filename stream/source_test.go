package stream

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"
)

const samplePayload = "$timescale 1ns $end\n$enddefinitions $end\n#0\n"

func TestSource_Plain(t *testing.T) {
	src, err := NewSource(strings.NewReader(samplePayload))
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()
	got, err := io.ReadAll(src)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != samplePayload {
		t.Errorf("got %q", got)
	}
}

func TestSource_Empty(t *testing.T) {
	src, err := NewSource(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()
	got, err := io.ReadAll(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %d bytes from empty input", len(got))
	}
}

func TestSource_CompressedRoundTrip(t *testing.T) {
	for _, ext := range []string{".gz", ".zst"} {
		t.Run(ext, func(t *testing.T) {
			var buf bytes.Buffer
			sink, err := NewSink(&buf, ext)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := io.WriteString(sink, samplePayload); err != nil {
				t.Fatal(err)
			}
			if err := sink.Close(); err != nil {
				t.Fatal(err)
			}

			src, err := NewSource(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatal(err)
			}
			defer src.Close()
			got, err := io.ReadAll(src)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != samplePayload {
				t.Errorf("got %q, want %q", got, samplePayload)
			}
		})
	}
}

func TestCreateOpen(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"trace.vcd", "trace.vcd.gz", "trace.vcd.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			sink, err := Create(path)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := io.WriteString(sink, samplePayload); err != nil {
				t.Fatal(err)
			}
			if err := sink.Close(); err != nil {
				t.Fatal(err)
			}

			src, err := Open(path)
			if err != nil {
				t.Fatal(err)
			}
			got, err := io.ReadAll(src)
			if err != nil {
				t.Fatal(err)
			}
			if err := src.Close(); err != nil {
				t.Fatal(err)
			}
			if string(got) != samplePayload {
				t.Errorf("got %q, want %q", got, samplePayload)
			}
		})
	}
}

func TestCountingReader(t *testing.T) {
	cr := NewCountingReader(strings.NewReader(samplePayload))
	if cr.BytesRead() != 0 {
		t.Errorf("initial count = %d", cr.BytesRead())
	}
	if _, err := io.ReadAll(cr); err != nil {
		t.Fatal(err)
	}
	if cr.BytesRead() != int64(len(samplePayload)) {
		t.Errorf("count = %d, want %d", cr.BytesRead(), len(samplePayload))
	}
}

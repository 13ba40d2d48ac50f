package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Neumenon/vcdflow/stream"
	"github.com/Neumenon/vcdflow/vcd"
)

func newReformatCmd(configPath *string) *cobra.Command {
	var outPath string
	var fallback bool
	var legacyIn bool
	var legacyOut bool

	cmd := &cobra.Command{
		Use:   "reformat [file]",
		Short: "Parse a trace and re-emit it in canonical form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(*configPath)
			if err != nil {
				return err
			}
			if fallback {
				cfg.Mode = vcd.ModeFallback
			}
			if legacyIn {
				cfg.Order = vcd.OrderLegacy
			}

			src, name, err := openInput(args)
			if err != nil {
				return err
			}
			defer src.Close()

			var out io.WriteCloser
			if outPath == "" {
				out, err = stream.NewSink(os.Stdout, "")
			} else {
				out, err = stream.Create(outPath)
			}
			if err != nil {
				return err
			}

			order := vcd.OrderNatural
			if legacyOut {
				order = vcd.OrderLegacy
			}

			start := time.Now()
			events, err := reformat(src, out, cfg, order)
			if cerr := out.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			log.Info().
				Str("input", name).
				Int64("events", events).
				Dur("elapsed", time.Since(start)).
				Msg("reformat done")
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout; .gz/.zst compress)")
	cmd.Flags().BoolVar(&fallback, "fallback", false, "use the tolerant scanner only")
	cmd.Flags().BoolVar(&legacyIn, "legacy-ids", false, "decode identifier tokens least-significant-first")
	cmd.Flags().BoolVar(&legacyOut, "out-legacy-ids", false, "emit identifier tokens least-significant-first")
	return cmd
}

func reformat(src io.Reader, out io.Writer, cfg settings, order vcd.IDOrder) (int64, error) {
	r := vcd.NewReader(src, cfg.readerOptions()...)
	hdr, err := r.Header()
	if err != nil {
		return 0, err
	}

	w := vcd.NewWriter(out, vcd.WithWriterIDOrder(order))
	if err := w.WriteHeader(hdr); err != nil {
		return 0, err
	}

	var events int64
	for {
		ev, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return events, err
		}
		if err := w.WriteEvent(ev); err != nil {
			return events, err
		}
		events++
	}
	return events, w.Flush()
}

// openInput resolves the optional file argument, defaulting to stdin,
// with transparent decompression either way.
func openInput(args []string) (io.ReadCloser, string, error) {
	if len(args) == 0 || args[0] == "-" {
		src, err := stream.NewSource(os.Stdin)
		return src, "stdin", err
	}
	src, err := stream.Open(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", args[0], err)
	}
	return src, args[0], nil
}

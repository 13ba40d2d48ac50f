package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Neumenon/vcdflow/vcd"
)

type traceStats struct {
	Scopes     int
	Vars       int
	Timestamps int64
	Scalars    int64
	Vectors    int64
	Reals      int64
	Strings    int64
	Comments   int64
	FirstTime  uint64
	LastTime   uint64
	HasTime    bool
}

func newStatsCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "Summarize a trace's header and value-change section",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(*configPath)
			if err != nil {
				return err
			}
			src, name, err := openInput(args)
			if err != nil {
				return err
			}
			defer src.Close()

			r := vcd.NewReader(src, cfg.readerOptions()...)
			hdr, err := r.Header()
			if err != nil {
				return err
			}

			st, err := collectStats(r, hdr)
			if err != nil {
				log.Warn().Err(err).Msg("stream ended with error; stats are partial")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "input:      %s\n", name)
			if hdr.Date != "" {
				fmt.Fprintf(out, "date:       %s\n", hdr.Date)
			}
			if hdr.Version != "" {
				fmt.Fprintf(out, "version:    %s\n", hdr.Version)
			}
			if hdr.Timescale != nil {
				fmt.Fprintf(out, "timescale:  %s\n", hdr.Timescale)
			}
			fmt.Fprintf(out, "scopes:     %d\n", st.Scopes)
			fmt.Fprintf(out, "variables:  %d\n", st.Vars)
			fmt.Fprintf(out, "timestamps: %d\n", st.Timestamps)
			fmt.Fprintf(out, "changes:    %d scalar, %d vector, %d real, %d string\n",
				st.Scalars, st.Vectors, st.Reals, st.Strings)
			if st.HasTime {
				fmt.Fprintf(out, "time span:  #%d .. #%d\n", st.FirstTime, st.LastTime)
			}
			return nil
		},
	}
	return cmd
}

func collectStats(r *vcd.Reader, hdr *vcd.Header) (traceStats, error) {
	var st traceStats
	st.Vars = len(hdr.Vars())
	st.Scopes = countScopes(hdr.Items)

	for {
		ev, err := r.Next()
		if err == io.EOF {
			return st, nil
		}
		if err != nil {
			return st, err
		}
		switch ev.Kind {
		case vcd.EventTimestamp:
			if !st.HasTime {
				st.FirstTime = ev.Time
				st.HasTime = true
			}
			st.LastTime = ev.Time
			st.Timestamps++
		case vcd.EventScalar:
			st.Scalars++
		case vcd.EventVector:
			st.Vectors++
		case vcd.EventReal:
			st.Reals++
		case vcd.EventString:
			st.Strings++
		case vcd.EventComment:
			st.Comments++
		}
	}
}

func countScopes(items []vcd.ScopeItem) int {
	n := 0
	for i := range items {
		if sc := items[i].Scope; sc != nil {
			n += 1 + countScopes(sc.Children)
		}
	}
	return n
}

// vcdflow - VCD trace codec toolkit
//
// Usage:
//
//	vcdflow reformat [file]   Re-emit a trace in canonical form
//	vcdflow stats [file]      Summarize header and value-change section
//	vcdflow version           Print version info
//
// Input may be plain, gzip-, or zstd-compressed; compression is
// detected from the stream. If no file is given, reads from stdin.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var configPath string
	var verbose bool

	root := &cobra.Command{
		Use:   "vcdflow",
		Short: "Streaming codec toolkit for VCD traces",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogger(verbose)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "TOML config file with default settings")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newReformatCmd(&configPath))
	root.AddCommand(newStatsCmd(&configPath))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("vcdflow 0.1.0-dev")
		},
	}
}

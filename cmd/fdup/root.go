package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fdup/fdup/internal/dupes"
	"github.com/fdup/fdup/internal/report"
)

// Version is the release version (set via -ldflags).
var Version = "dev"

var (
	flagSort    bool
	flagThreads int
	flagFormat  string
	flagVerbose bool
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "fdup [flags] ROOT",
	Short: "Find duplicate files recursively and in parallel",
	Long: `Find groups of byte-identical files under a directory tree.

fdup finds duplicates quickly by partitioning files on cheap keys first:
files are grouped by size, and only files whose size collides with at
least one other file are read and checksummed. Groups of two or more
files with matching checksums are reported, one group per duplicate set.

fdup never modifies the filesystem. It reports; you decide.

Examples:
  fdup ~/photos                      # Report duplicate groups
  fdup --sort ~/photos               # Sort paths within each group
  fdup --threads=8 ~/photos          # Use exactly 8 workers
  fdup --format=json ~/photos        # Machine-readable output`,
	Args:    cobra.ExactArgs(1),
	Version: Version,
	Run: func(cmd *cobra.Command, args []string) {
		if err := run(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.Flags().BoolVar(&flagSort, "sort", false, "sort each group of duplicate files lexicographically")
	rootCmd.Flags().IntVar(&flagThreads, "threads", 0, "number of workers to use (0 = available parallelism)")
	rootCmd.Flags().StringVar(&flagFormat, "format", "text", "output format: text, json, or yaml")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "log scan progress to stderr")
	rootCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress the summary line on stderr")
}

func run(root string) error {
	format, err := report.ParseFormat(flagFormat)
	if err != nil {
		return err
	}

	logger := log.New(io.Discard)
	if flagVerbose {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Level:           log.DebugLevel,
			Prefix:          "fdup",
		})
	}

	finder := dupes.NewFinder(dupes.Options{
		Workers: flagThreads,
		Sort:    flagSort,
		Logger:  logger,
	})

	groups, err := finder.Find(context.Background(), root)
	if err != nil {
		return err
	}

	if err := report.Write(os.Stdout, format, groups); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}

	// The summary goes to stderr so piped consumers only see groups.
	if !flagQuiet {
		green := color.New(color.FgGreen).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()
		if len(groups) == 0 {
			fmt.Fprintf(os.Stderr, "%s no duplicates found\n", gray("✓"))
		} else {
			fmt.Fprintf(os.Stderr, "%s %d duplicate group(s)\n", green("✓"), len(groups))
		}
	}
	return nil
}

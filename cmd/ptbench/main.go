package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/oligo/piecetable"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var logger *slog.Logger

func init() {
	logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).WithGroup("ptbench")
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var profilePath string
	var corpusPaths []string

	cmd := &cobra.Command{
		Use:   "ptbench",
		Short: "Drive a piece table through a scripted insert/remove workload",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := LoadProfile(profilePath)
			if err != nil {
				logger.Warn("using default profile", "reason", err)
			}

			seed := profile.Seed
			if len(corpusPaths) > 0 {
				text, err := loadCorpus(corpusPaths)
				if err != nil {
					return err
				}
				seed = text
			}

			return run(profile, seed)
		},
	}

	cmd.Flags().StringVar(&profilePath, "profile", "", "path to a TOML benchmark profile (defaults to the XDG config location)")
	cmd.Flags().StringSliceVar(&corpusPaths, "corpus", nil, "one or more seed text files to concatenate in place of the profile's seed string")

	return cmd
}

// loadCorpus reads every path and concatenates their contents, aggregating
// per-file read failures into a single error instead of stopping at the
// first one, the way the migrate drivers collect independent per-resource
// failures with go-multierror.
func loadCorpus(paths []string) (string, error) {
	var merr error
	var text string
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			merr = multierror.Append(merr, errors.Wrapf(err, "reading corpus file %q", p))
			continue
		}
		text += string(b)
	}
	if merr != nil {
		return "", merr
	}
	return text, nil
}

func run(profile Profile, seed string) error {
	var opts []piecetable.Option
	if profile.Lines {
		opts = append(opts, piecetable.WithLines())
	}
	if profile.UnicodeLineBreaks {
		opts = append(opts, piecetable.WithUnicodeLineBreaks())
	}
	if profile.ContiguousInserts {
		opts = append(opts, piecetable.WithContiguousInserts())
	}

	logger.Info("starting run",
		"insertCount", profile.InsertCount,
		"lines", profile.Lines,
		"unicodeLineBreaks", profile.UnicodeLineBreaks,
		"contiguousInserts", profile.ContiguousInserts,
	)

	start := time.Now()
	pt := piecetable.New(seed, opts...)

	const ch = "a"
	for i := profile.InsertAt; i < profile.InsertCount; i++ {
		pt.Insert(i, ch)
	}

	if profile.RemoveEnd > profile.RemoveStart {
		pt.Remove(piecetable.Chars(profile.RemoveStart, profile.RemoveEnd))
	}

	for i := 3; i < profile.InsertCount/2; i++ {
		pt.Insert(i, ch)
	}

	elapsed := time.Since(start)
	logger.Info("run complete",
		"elapsed", elapsed,
		"lenChars", pt.LenChars(),
		"lenBytes", pt.LenBytes(),
	)
	return nil
}

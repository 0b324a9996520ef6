package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/twinfer/gorex/internal/logging"
	"github.com/twinfer/gorex/internal/search"
)

type matchOptions struct {
	recursive    bool
	fold         bool
	invert       bool
	count        bool
	withFilename bool
	color        bool
	stats        bool
	jobs         int
	include      []string
	exclude      []string
}

func newMatchCmd(a *app) *cobra.Command {
	o := &matchOptions{}

	cmd := &cobra.Command{
		Use:   "match PATTERN [PATH...]",
		Short: "Print the lines that the pattern matches in full",
		Long: `Reads each PATH, or standard input when none is given, and prints the
lines that PATTERN matches from the first character to the last.

Examples:
  gorex match 'ERROR .*' app.log
  gorex match -r --include '*.go' 'func .+(.*)' ./internal
  gorex match -c -i '@semver' CHANGELOG.md
  cat words.txt | gorex match 'colou?r'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMatch(cmd, o, args[0], args[1:])
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&o.recursive, "recursive", "r", false, "search directories recursively")
	f.BoolVarP(&o.fold, "ignore-case", "i", false, "compare letters case-insensitively")
	f.BoolVarP(&o.invert, "invert-match", "v", false, "select lines that do not match")
	f.BoolVarP(&o.count, "count", "c", false, "print the number of selected lines per input")
	f.BoolVarP(&o.withFilename, "with-filename", "H", false, "prefix every line with its file name")
	f.BoolVar(&o.color, "color", false, "highlight file names and counts")
	f.BoolVar(&o.stats, "stats", false, "print a summary to stderr when done")
	f.IntVar(&o.jobs, "jobs", 0, "files searched at once (default from config)")
	f.StringSliceVar(&o.include, "include", nil, "only search files whose name matches this glob")
	f.StringSliceVar(&o.exclude, "exclude", nil, "skip files whose name matches this glob")
	return cmd
}

// options merges the configuration file with the flags the user set.
func (o *matchOptions) options(cmd *cobra.Command, a *app) search.Options {
	def := a.cfg.Search
	opts := search.Options{
		Fold:         def.Fold,
		Recursive:    def.Recursive,
		Color:        def.Color,
		Jobs:         def.Jobs,
		Include:      def.Include,
		Exclude:      def.Exclude,
		Invert:       o.invert,
		Count:        o.count,
		WithFilename: o.withFilename,
	}

	f := cmd.Flags()
	if f.Changed("ignore-case") {
		opts.Fold = o.fold
	}
	if f.Changed("recursive") {
		opts.Recursive = o.recursive
	}
	if f.Changed("color") {
		opts.Color = o.color
	}
	if f.Changed("jobs") {
		opts.Jobs = o.jobs
	}
	if f.Changed("include") {
		opts.Include = o.include
	}
	if f.Changed("exclude") {
		opts.Exclude = o.exclude
	}
	return opts
}

func (a *app) runMatch(cmd *cobra.Command, o *matchOptions, arg string, paths []string) error {
	p, err := a.compile(arg)
	if err != nil {
		return err
	}

	opts := o.options(cmd, a)
	log := logging.Component(a.log, "search")
	log.Debug("starting search", "pattern", p.String(), "inputs", len(paths), "jobs", opts.Jobs)

	s, err := search.New(p, opts, cmd.OutOrStdout(), log)
	if err != nil {
		return err
	}
	s.WithStdin(cmd.InOrStdin())

	sum, err := s.Run(cmd.Context(), paths)
	if err != nil {
		return err
	}

	if o.stats {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s files, %s lines (%s), %s selected\n",
			humanize.Comma(int64(sum.Files)),
			humanize.Comma(sum.Lines),
			humanize.Bytes(uint64(sum.Bytes)),
			humanize.Comma(sum.Selected))
	}

	if sum.Selected == 0 {
		return errNoMatch
	}
	return nil
}

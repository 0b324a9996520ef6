// Package search runs a compiled pattern over lines of text read from files
// or standard input. A line is selected when the pattern matches all of it;
// there is no substring search.
package search

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/twinfer/gorex"
)

// StdinName labels lines read from standard input.
const StdinName = "(standard input)"

// maxLineSize bounds a single line; longer lines fail the file.
const maxLineSize = 1024 * 1024

// Options controls a search.
type Options struct {
	Fold         bool // compare literal characters case-insensitively
	Invert       bool // select lines that do not match
	Count        bool // print a count of selected lines per input instead of the lines
	Recursive    bool // descend into directories
	WithFilename bool // prefix output with the input name even for a single input
	Color        bool
	Jobs         int // files scanned at once; values below 1 mean 1
	Include      []string
	Exclude      []string
}

// Summary totals a search across all inputs.
type Summary struct {
	Files    int
	Lines    int64
	Bytes    int64
	Selected int64
}

// Searcher applies one pattern to many inputs. The pattern is shared by all
// workers.
type Searcher struct {
	pattern *gorex.Pattern
	opts    Options
	filter  *Filter
	out     io.Writer
	stdin   io.Reader
	log     *slog.Logger
}

// New returns a Searcher writing selected lines to out.
func New(p *gorex.Pattern, opts Options, out io.Writer, log *slog.Logger) (*Searcher, error) {
	filter, err := NewFilter(opts.Include, opts.Exclude)
	if err != nil {
		return nil, err
	}
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}
	return &Searcher{
		pattern: p,
		opts:    opts,
		filter:  filter,
		out:     out,
		stdin:   os.Stdin,
		log:     log,
	}, nil
}

// WithStdin replaces the reader used when no paths are given.
func (s *Searcher) WithStdin(r io.Reader) *Searcher {
	s.stdin = r
	return s
}

// fileResult is the buffered output of one input, flushed in input order.
type fileResult struct {
	out      bytes.Buffer
	lines    int64
	bytes    int64
	selected int64
}

// Run searches paths, or standard input when paths is empty, and writes the
// selected lines in the order the inputs were named.
func (s *Searcher) Run(ctx context.Context, paths []string) (Summary, error) {
	if len(paths) == 0 {
		pr := newPrinter(s.opts.WithFilename, s.opts.Color)
		res, err := s.scan(ctx, StdinName, s.stdin, pr)
		if err != nil {
			return Summary{}, err
		}
		if _, err := res.out.WriteTo(s.out); err != nil {
			return Summary{}, errors.Wrap(err, "write output")
		}
		return Summary{Files: 1, Lines: res.lines, Bytes: res.bytes, Selected: res.selected}, nil
	}

	files, err := s.expand(paths)
	if err != nil {
		return Summary{}, err
	}
	s.log.Debug("expanded inputs", "paths", len(paths), "files", len(files))

	pr := newPrinter(s.opts.WithFilename || s.opts.Recursive || len(files) > 1, s.opts.Color)
	results := make([]*fileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Jobs)
	for i, name := range files {
		g.Go(func() error {
			f, err := os.Open(name)
			if err != nil {
				return errors.Wrap(err, "open")
			}
			defer f.Close()

			res, err := s.scan(gctx, name, f, pr)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	var sum Summary
	for _, res := range results {
		sum.Files++
		sum.Lines += res.lines
		sum.Bytes += res.bytes
		sum.Selected += res.selected
		if _, err := res.out.WriteTo(s.out); err != nil {
			return sum, errors.Wrap(err, "write output")
		}
	}
	return sum, nil
}

// expand turns the command-line paths into the list of files to scan.
// Directories are walked when searching recursively and skipped otherwise;
// the filter applies to files found by walking, not to files named
// explicitly.
func (s *Searcher) expand(paths []string) ([]string, error) {
	var files []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, errors.Wrap(err, "stat")
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}
		if !s.opts.Recursive {
			s.log.Warn("skipping directory", "path", root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}
			if !s.filter.Allow(path) {
				s.log.Debug("filtered", "path", path)
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "walk %s", root)
		}
	}
	return files, nil
}

// scan reads r line by line and records the selected lines.
func (s *Searcher) scan(ctx context.Context, name string, r io.Reader, pr printer) (*fileResult, error) {
	res := &fileResult{}
	var read byteCounter
	sc := bufio.NewScanner(io.TeeReader(r, &read))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := sc.Text()
		res.lines++

		if s.matches(line) == s.opts.Invert {
			continue
		}
		res.selected++
		if !s.opts.Count {
			pr.line(&res.out, name, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}
	res.bytes = read.n

	if s.opts.Count {
		pr.total(&res.out, name, res.selected)
	}
	s.log.Debug("scanned", "input", name, "lines", res.lines, "selected", res.selected)
	return res, nil
}

func (s *Searcher) matches(line string) bool {
	if s.opts.Fold {
		return s.pattern.IsFullMatchFold(line)
	}
	return s.pattern.IsFullMatch(line)
}

// byteCounter counts what the scanner reads, line terminators included.
type byteCounter struct {
	n int64
}

func (c *byteCounter) Write(p []byte) (int, error) {
	c.n += int64(len(p))
	return len(p), nil
}

package search

import (
	"path/filepath"

	"github.com/IGLOU-EU/go-wildcard/v2"
	"github.com/pkg/errors"
	"github.com/zyedidia/glob"
)

// Filter decides which files a recursive search visits. Both lists are
// matched against the base name of a path.
//
// Include patterns use wildcard syntax: `*` any run of characters, `?` zero
// or one character and `.` exactly one character. Exclude patterns are shell
// globs and also accept classes such as `[0-9]` and alternatives such as
// `{gz,zip}`.
type Filter struct {
	include []string
	exclude []*glob.Glob
}

// NewFilter compiles the exclude globs. An empty include list admits every
// name.
func NewFilter(include, exclude []string) (*Filter, error) {
	f := &Filter{include: include}
	for _, pattern := range exclude {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "can't compile exclude glob %q", pattern)
		}
		f.exclude = append(f.exclude, g)
	}
	return f, nil
}

// Allow reports whether the file at path should be searched.
func (f *Filter) Allow(path string) bool {
	name := filepath.Base(path)

	if len(f.include) > 0 {
		included := false
		for _, pattern := range f.include {
			if wildcard.Match(pattern, name) {
				included = true
				break
			}
		}
		if !included {
			return false
		}
	}

	for _, g := range f.exclude {
		if g.MatchString(name) {
			return false
		}
	}
	return true
}

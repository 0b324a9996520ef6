// Package gorex compiles a small pattern language and decides whether a
// string is fully matched by a compiled pattern. Matching is anchored at both
// ends; there is no substring search.
//
// # Syntax:
//
//   - `.`: Matches any single character.
//   - `x*`: Matches zero or more of the preceding token.
//   - `x+`: Matches one or more of the preceding token.
//   - `x?`: Matches zero or one of the preceding token.
//   - `(...)`: Groups a sub-pattern so a quantifier applies to all of it.
//   - `\x`: Matches the character x literally.
//
// A quantifier with nothing quantifiable in front of it is an ordinary
// character, so "*a" matches the two-character string "*a".
//
// Matching is a recursive backtracking search over runes. Patterns with
// several overlapping stars can take exponential time on adversarial input;
// callers that need bounded latency should cap the input size.
package gorex

import (
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/twinfer/gorex/internal/pattern"
)

// SyntaxError reports an unclosed group together with the index, in
// characters, of the offending '('.
type SyntaxError = pattern.SyntaxError

// ErrBadPattern is wrapped by every error Compile returns.
var ErrBadPattern = pattern.ErrBadPattern

// Pattern is a compiled pattern. It is immutable and safe for concurrent use
// by multiple goroutines.
type Pattern struct {
	expr string
	tree *pattern.Tree
}

// Compile parses expr into a Pattern. The only failure is a '(' without a
// matching ')', reported as a *SyntaxError.
func Compile(expr string) (*Pattern, error) {
	tree, err := pattern.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &Pattern{expr: expr, tree: tree}, nil
}

// MustCompile is like Compile but panics if the pattern cannot be parsed.
// It simplifies safe initialization of global variables holding patterns.
func MustCompile(expr string) *Pattern {
	p, err := Compile(expr)
	if err != nil {
		panic(`gorex: Compile(` + strconv.Quote(expr) + `): ` + err.Error())
	}
	return p
}

// IsFullMatch compiles expr and reports whether it matches all of s.
func IsFullMatch(expr, s string) (bool, error) {
	p, err := Compile(expr)
	if err != nil {
		return false, err
	}
	return p.IsFullMatch(s), nil
}

// String returns the source text used to compile the pattern.
func (p *Pattern) String() string {
	return p.expr
}

// Canonical returns source text equivalent to the compiled pattern, with
// every metacharacter that stands for itself escaped and each `x+` written
// out as `xx*`.
func (p *Pattern) Canonical() string {
	return p.tree.String()
}

// Explain writes an outline of the compiled pattern, one token per line.
func (p *Pattern) Explain(w io.Writer) error {
	return p.tree.Dump(w)
}

// IsFullMatch reports whether the pattern matches the whole of s, character
// by character.
func (p *Pattern) IsFullMatch(s string) bool {
	return pattern.IsFullMatch(p.tree, []rune(s), false)
}

// IsFullMatchFold is like IsFullMatch but compares literal characters under
// Unicode simple case folding.
func (p *Pattern) IsFullMatchFold(s string) bool {
	return pattern.IsFullMatch(p.tree, []rune(s), true)
}

// Match reports whether the pattern matches the whole of b, which is decoded
// as UTF-8. Invalid bytes each count as one utf8.RuneError character.
func (p *Pattern) Match(b []byte) bool {
	return pattern.IsFullMatch(p.tree, bytesToRunes(b), false)
}

// MatchPrefix reports how many characters of s were matched before matching
// stopped, and whether that was a full match of s.
func (p *Pattern) MatchPrefix(s string) (n int, full bool) {
	o := pattern.Attempt(p.tree, []rune(s), false)
	return o.Consumed, o.Full
}

// MatchPrefixFold is like MatchPrefix with case-insensitive literals.
func (p *Pattern) MatchPrefixFold(s string) (n int, full bool) {
	o := pattern.Attempt(p.tree, []rune(s), true)
	return o.Consumed, o.Full
}

func bytesToRunes(b []byte) []rune {
	runes := make([]rune, 0, utf8.RuneCount(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		runes = append(runes, r)
		b = b[size:]
	}
	return runes
}

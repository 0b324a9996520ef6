/*
Copyright (c) 2025 twinfer.com contact@twinfer.com Copyright (c) 2025 Khalid Daoud mohamed.khalid@gmail.com

Redistribution and use in source and binary forms, with or without modification, are permitted provided that the following conditions are met:

Redistributions of source code must retain the above copyright notice, this list of conditions and the following disclaimer.
Redistributions in binary form must reproduce the above copyright notice, this list of conditions and the following disclaimer in the documentation and/or other materials provided with the distribution.
Neither the name of the copyright holder nor the names of its contributors may be used to endorse or promote products derived from this software without specific prior written permission.
*/

package pattern

import "unicode"

// Outcome is the result of walking a token sequence from some input offset.
// Full means the walk satisfied every token and reached the end of the input.
// Otherwise Consumed is how many characters were matched before the walk
// could go no further.
type Outcome struct {
	Consumed int
	Full     bool

	// complete is set when every token was satisfied, whether or not the
	// input was used up. Groups rely on it to tell a finished sub-walk from
	// one that stopped early.
	complete bool
}

// IsFullMatch reports whether t matches the whole of input. Matching is
// anchored at both ends; there is no search mode.
func IsFullMatch(t *Tree, input []rune, fold bool) bool {
	return Attempt(t, input, fold).Full
}

// Attempt walks t against input from offset 0 and reports how far it got.
func Attempt(t *Tree, input []rune, fold bool) Outcome {
	m := matcher{input: input, fold: fold}
	return m.attempt(t.Tokens, 0)
}

// matcher holds the shared, read-only input. Recursive calls pass views of
// the token slice and an offset into input instead of copying either.
type matcher struct {
	input []rune
	fold  bool
}

func (m *matcher) full(start int) Outcome {
	return Outcome{Consumed: len(m.input) - start, Full: true, complete: true}
}

// attempt walks tokens against m.input[start:]. Star and Optional try the
// tokens that follow them before consuming more input, so fewer repetitions
// are always preferred. The search is exponential in the worst case and is
// neither memoized nor depth limited.
func (m *matcher) attempt(tokens []Token, start int) Outcome {
	end := len(m.input)
	consumed := 0

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		at := start + consumed
		last := i == len(tokens)-1

		switch tok.Quantifier {
		case Exact:
			if at == end {
				return Outcome{Consumed: consumed}
			}
			width, ok := m.measure(tok.Atom, at)
			if !ok {
				return Outcome{Consumed: consumed}
			}
			consumed += width

		case Star:
			if at == end {
				if last {
					return m.full(start)
				}
				return Outcome{Consumed: consumed}
			}

			rest := tokens[i+1:]
			for at < end {
				if m.attempt(rest, at).Full {
					return m.full(start)
				}
				width, ok := m.measure(tok.Atom, at)
				if !ok || width == 0 {
					break
				}
				at += width
			}
			// Every offset up to at has been tried for the rest; the walk goes
			// on from there with the repetitions taken so far.
			consumed = at - start

		case Optional:
			if at == end {
				if last {
					return m.full(start)
				}
				return Outcome{Consumed: consumed}
			}
			if m.attempt(tokens[i+1:], at).Full {
				return m.full(start)
			}
			if width, ok := m.measure(tok.Atom, at); ok {
				consumed += width
			}
		}
	}

	return Outcome{
		Consumed: consumed,
		Full:     start+consumed == end,
		complete: true,
	}
}

// measure reports how many characters atom matches at m.input[at:] and
// whether it matched at all. A group matches when its own walk satisfies all
// of its tokens; its width is whatever that walk consumed, possibly zero.
func (m *matcher) measure(atom Atom, at int) (int, bool) {
	switch atom.Kind {
	case AtomWildcard:
		return 1, at < len(m.input)
	case AtomChar:
		if at < len(m.input) && m.equal(atom.Char, m.input[at]) {
			return 1, true
		}
		return 0, false
	case AtomGroup:
		o := m.attempt(atom.Group.Tokens, at)
		if !o.complete {
			return 0, false
		}
		return o.Consumed, true
	}
	return 0, false
}

func (m *matcher) equal(want, got rune) bool {
	if m.fold {
		return equalFoldRune(want, got)
	}
	return want == got
}

// equalFoldRune performs case-insensitive rune comparison using Unicode simple folding.
func equalFoldRune(r1, r2 rune) bool {
	if r1 == r2 {
		return true
	}
	if r1 < r2 {
		r1, r2 = r2, r1
	}
	// SimpleFold cycles through case variants
	for f := unicode.SimpleFold(r2); f != r2; f = unicode.SimpleFold(f) {
		if f == r1 {
			return true
		}
	}
	return false
}

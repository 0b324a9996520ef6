/*
Copyright (c) 2025 twinfer.com contact@twinfer.com Copyright (c) 2025 Khalid Daoud mohamed.khalid@gmail.com

Redistribution and use in source and binary forms, with or without modification, are permitted provided that the following conditions are met:

Redistributions of source code must retain the above copyright notice, this list of conditions and the following disclaimer.
Redistributions in binary form must reproduce the above copyright notice, this list of conditions and the following disclaimer in the documentation and/or other materials provided with the distribution.
Neither the name of the copyright holder nor the names of its contributors may be used to endorse or promote products derived from this software without specific prior written permission.
*/

package pattern

const (
	patternDot    = '.'
	patternStar   = '*'
	patternPlus   = '+'
	patternQuery  = '?'
	patternOpen   = '('
	patternClose  = ')'
	patternEscape = '\\'
)

// Compile turns a pattern into a Tree. The only failure is a group whose
// closing parenthesis is missing, reported as a *SyntaxError.
//
// Syntax:
//   - `.` matches any single character.
//   - `*` after a token: zero or more of it.
//   - `+` after a token: one or more of it, stored as the token followed by a
//     starred copy.
//   - `?` after a token: zero or one of it.
//   - `(...)` groups a sub-pattern into one atom.
//   - `\x` is the literal character x. Any character that follows a
//     backslash in the source is literal, including a second backslash, so
//     `\\.` is a literal dot.
//
// A quantifier that follows nothing, or follows an already quantified token,
// is a literal character.
func Compile(expr string) (*Tree, error) {
	return compile([]rune(expr), 0)
}

// compile scans src left to right. base is the index of src[0] in the
// top-level pattern so that errors inside groups report absolute positions.
func compile(src []rune, base int) (*Tree, error) {
	tokens := make([]Token, 0, len(src))

	for i := 0; i < len(src); i++ {
		c := src[i]
		lastExact := len(tokens) > 0 && tokens[len(tokens)-1].Quantifier == Exact

		switch {
		case escapedAt(src, i):
			// The backslash was pushed as a literal; the escaped character takes its place.
			tokens[len(tokens)-1] = Token{Atom: charAtom(c)}

		case c == patternDot:
			tokens = append(tokens, Token{Atom: wildcardAtom()})

		case c == patternOpen:
			end := closingParen(src, i)
			if end < 0 {
				return nil, &SyntaxError{Index: base + i, Msg: msgUnclosedParen}
			}
			sub, err := compile(src[i+1:end], base+i+1)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, Token{Atom: groupAtom(sub)})
			i = end

		case c == patternStar && lastExact:
			tokens[len(tokens)-1].Quantifier = Star

		case c == patternQuery && lastExact:
			tokens[len(tokens)-1].Quantifier = Optional

		case c == patternPlus && lastExact:
			tokens = append(tokens, Token{Atom: tokens[len(tokens)-1].Atom, Quantifier: Star})

		default:
			tokens = append(tokens, Token{Atom: charAtom(c)})
		}
	}

	return &Tree{Tokens: tokens}, nil
}

// escapedAt reports whether src[i] directly follows a backslash.
func escapedAt(src []rune, i int) bool {
	return i > 0 && src[i-1] == patternEscape
}

// closingParen returns the index of the parenthesis closing the group opened
// at src[open], or -1. Nested groups are counted; a parenthesis right after a
// backslash is literal.
func closingParen(src []rune, open int) int {
	depth := 0
	for j := open + 1; j < len(src); j++ {
		if escapedAt(src, j) {
			continue
		}
		switch src[j] {
		case patternOpen:
			depth++
		case patternClose:
			if depth == 0 {
				return j
			}
			depth--
		}
	}
	return -1
}

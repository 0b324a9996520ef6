/*
Copyright (c) 2025 twinfer.com contact@twinfer.com Copyright (c) 2025 Khalid Daoud mohamed.khalid@gmail.com

Redistribution and use in source and binary forms, with or without modification, are permitted provided that the following conditions are met:

Redistributions of source code must retain the above copyright notice, this list of conditions and the following disclaimer.
Redistributions in binary form must reproduce the above copyright notice, this list of conditions and the following disclaimer in the documentation and/or other materials provided with the distribution.
Neither the name of the copyright holder nor the names of its contributors may be used to endorse or promote products derived from this software without specific prior written permission.
*/

// Package pattern contains the compiler and the backtracking matcher behind
// the gorex package. A pattern is compiled once into a Tree, an ordered
// sequence of (atom, quantifier) tokens, and the Tree is then walked against
// each input.
package pattern

import (
	"fmt"
	"io"
	"strings"
)

// Quantifier says how many times an atom must match.
type Quantifier uint8

const (
	Exact    Quantifier = iota // exactly once
	Star                       // *
	Optional                   // ?
)

func (q Quantifier) String() string {
	switch q {
	case Exact:
		return "exact"
	case Star:
		return "star"
	case Optional:
		return "optional"
	}
	return fmt.Sprintf("Quantifier(%d)", uint8(q))
}

type AtomKind uint8

const (
	AtomWildcard AtomKind = iota // .
	AtomChar                     // literal character
	AtomGroup                    // (...)
)

// Atom is the smallest matchable unit of a Tree. Char is only meaningful for
// AtomChar and Group only for AtomGroup.
type Atom struct {
	Kind  AtomKind
	Char  rune
	Group *Tree
}

// Token pairs an atom with its quantifier.
type Token struct {
	Atom       Atom
	Quantifier Quantifier
}

// Tree is a compiled pattern. Its tokens are matched in order and never
// change after compilation, so a Tree may be shared between goroutines.
type Tree struct {
	Tokens []Token
}

func wildcardAtom() Atom       { return Atom{Kind: AtomWildcard} }
func charAtom(c rune) Atom     { return Atom{Kind: AtomChar, Char: c} }
func groupAtom(sub *Tree) Atom { return Atom{Kind: AtomGroup, Group: sub} }

// metaChars are the characters that must be escaped to be read literally.
const metaChars = `.*+?()\`

// String renders the tree as pattern source that compiles back to an equal
// tree. A one-or-more token pair is rendered expanded, so "a+" becomes "aa*".
// A compiled tree holds a literal backslash only as its last top-level token,
// the one place where "\\" reads back as a single backslash.
func (t *Tree) String() string {
	var sb strings.Builder
	t.writeSource(&sb)
	return sb.String()
}

func (t *Tree) writeSource(sb *strings.Builder) {
	for _, tok := range t.Tokens {
		switch tok.Atom.Kind {
		case AtomWildcard:
			sb.WriteByte('.')
		case AtomChar:
			if strings.ContainsRune(metaChars, tok.Atom.Char) {
				sb.WriteByte('\\')
			}
			sb.WriteRune(tok.Atom.Char)
		case AtomGroup:
			sb.WriteByte('(')
			tok.Atom.Group.writeSource(sb)
			sb.WriteByte(')')
		}

		switch tok.Quantifier {
		case Star:
			sb.WriteByte('*')
		case Optional:
			sb.WriteByte('?')
		}
	}
}

// Depth reports how deeply groups are nested; a tree without groups has
// depth 0.
func (t *Tree) Depth() int {
	depth := 0
	for _, tok := range t.Tokens {
		if tok.Atom.Kind == AtomGroup {
			depth = max(depth, tok.Atom.Group.Depth()+1)
		}
	}
	return depth
}

// Dump writes an indented outline of the tree, one token per line.
func (t *Tree) Dump(w io.Writer) error {
	return t.dump(w, 0)
}

func (t *Tree) dump(w io.Writer, indent int) error {
	pad := strings.Repeat("  ", indent)
	if len(t.Tokens) == 0 {
		_, err := fmt.Fprintf(w, "%s(empty)\n", pad)
		return err
	}

	for i, tok := range t.Tokens {
		var err error
		switch tok.Atom.Kind {
		case AtomWildcard:
			_, err = fmt.Fprintf(w, "%s%d: any %s\n", pad, i, tok.Quantifier)
		case AtomChar:
			_, err = fmt.Fprintf(w, "%s%d: char %q %s\n", pad, i, tok.Atom.Char, tok.Quantifier)
		case AtomGroup:
			if _, err = fmt.Fprintf(w, "%s%d: group %s\n", pad, i, tok.Quantifier); err == nil {
				err = tok.Atom.Group.dump(w, indent+1)
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

/*
Copyright (c) 2025 twinfer.com contact@twinfer.com Copyright (c) 2025 Khalid Daoud mohamed.khalid@gmail.com

Redistribution and use in source and binary forms, with or without modification, are permitted provided that the following conditions are met:

Redistributions of source code must retain the above copyright notice, this list of conditions and the following disclaimer.
Redistributions in binary form must reproduce the above copyright notice, this list of conditions and the following disclaimer in the documentation and/or other materials provided with the distribution.
Neither the name of the copyright holder nor the names of its contributors may be used to endorse or promote products derived from this software without specific prior written permission.
*/

package pattern

import (
	"errors"
	"fmt"
)

// ErrBadPattern indicates a pattern was malformed.
var ErrBadPattern = errors.New("syntax error in pattern")

const msgUnclosedParen = "unclosed parenthesis"

// SyntaxError reports where compilation of a pattern failed. Index counts
// characters (runes) from the start of the whole pattern.
type SyntaxError struct {
	Index int
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at index %d", e.Msg, e.Index)
}

// Unwrap lets errors.Is(err, ErrBadPattern) hold for every SyntaxError.
func (e *SyntaxError) Unwrap() error { return ErrBadPattern }

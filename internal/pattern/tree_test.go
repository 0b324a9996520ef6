/*
Copyright (c) 2025 twinfer.com contact@twinfer.com Copyright (c) 2025 Khalid Daoud mohamed.khalid@gmail.com

Redistribution and use in source and binary forms, with or without modification, are permitted provided that the following conditions are met:

Redistributions of source code must retain the above copyright notice, this list of conditions and the following disclaimer.
Redistributions in binary form must reproduce the above copyright notice, this list of conditions and the following disclaimer in the documentation and/or other materials provided with the distribution.
Neither the name of the copyright holder nor the names of its contributors may be used to endorse or promote products derived from this software without specific prior written permission.
*/
package pattern

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTreeString(t *testing.T) {
	cases := []struct {
		pattern string
		want    string
	}{
		{"", ""},
		{"abc", "abc"},
		{"a.c", "a.c"},
		{"a+", "aa*"},
		{"ab.?c", "ab.?c"},
		{`a\.b`, `a\.b`},
		{"*", `\*`},
		{"a**", `a*\*`},
		{`\n`, "n"},
		{`a\\b`, "ab"},
		{`a\`, `a\\`},
		{`\\`, `\\`},
		{`\\(`, `\(`},
		{"(ab)*c", "(ab)*c"},
		{"(a\\))", `(a\))`},
		{")", `\)`},
		{"((a)b)?", "((a)b)?"},
	}

	for _, tc := range cases {
		t.Run(tc.pattern, func(t *testing.T) {
			tree := mustCompile(t, tc.pattern)
			if got := tree.String(); got != tc.want {
				t.Errorf("String() = %q, expected %q", got, tc.want)
			}

			again := mustCompile(t, tree.String())
			if diff := cmp.Diff(tree.String(), again.String()); diff != "" {
				t.Errorf("Canonical form does not round trip (-first +second):\n%s", diff)
			}
		})
	}
}

func TestTreeDepth(t *testing.T) {
	cases := []struct {
		pattern string
		depth   int
	}{
		{"", 0},
		{"abc", 0},
		{"(a)", 1},
		{"(a)(b)", 1},
		{"((a)b)c", 2},
		{"(((x)))", 3},
	}

	for _, tc := range cases {
		if got := mustCompile(t, tc.pattern).Depth(); got != tc.depth {
			t.Errorf("Depth(%q) = %d, expected %d", tc.pattern, got, tc.depth)
		}
	}
}

func TestTreeDump(t *testing.T) {
	tree := mustCompile(t, "a.(b?)*")

	var sb strings.Builder
	if err := tree.Dump(&sb); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}

	want := strings.Join([]string{
		"0: char 'a' exact",
		"1: any exact",
		"2: group star",
		"  0: char 'b' optional",
		"",
	}, "\n")
	if diff := cmp.Diff(want, sb.String()); diff != "" {
		t.Errorf("Dump mismatch (-want +got):\n%s", diff)
	}
}

func TestTreeDumpEmpty(t *testing.T) {
	var sb strings.Builder
	if err := mustCompile(t, "()").Dump(&sb); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	want := "0: group exact\n  (empty)\n"
	if got := sb.String(); got != want {
		t.Errorf("Dump = %q, expected %q", got, want)
	}
}

func TestQuantifierString(t *testing.T) {
	for q, want := range map[Quantifier]string{
		Exact:          "exact",
		Star:           "star",
		Optional:       "optional",
		Quantifier(42): "Quantifier(42)",
	} {
		if got := q.String(); got != want {
			t.Errorf("%d.String() = %q, expected %q", uint8(q), got, want)
		}
	}
}

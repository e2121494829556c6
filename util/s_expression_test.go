// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

package util

import (
	"strings"
	"testing"
)

func TestParseSExp(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"foo", "foo"},
		{"123", "123"},
		{"0x80", "0x80"},
		{`"a \"b\""`, `"a \"b\""`},
		{"()", "()"},
		{"(a (b c) () 0x1F)", "(a (b c) () 0x1F)"},
		{"  (a ; comment (\n  b)  ; more\n", "(a b)"},
		{"(a:=b $x <= !y)", "(a:=b $x <= !y)"},
	}
	for _, tt := range tests {
		sexp, err := ParseSExp(tt.input)
		if err != nil {
			t.Errorf("ParseSExp(%q) failed: %v", tt.input, err)
			continue
		}
		if got := sexp.String(); got != tt.want {
			t.Errorf("ParseSExp(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParseSExpKindsAndLines(t *testing.T) {
	sexp, err := ParseSExp("(object\n  12\n  \"s\"\n  name)")
	if err != nil {
		t.Fatal(err)
	}
	if sexp.Kind != SExpList || len(sexp.List) != 4 {
		t.Fatalf("expected a list of four, got %s", sexp)
	}
	tests := []struct {
		kind SExpKindT
		text string
		line int
	}{
		{SExpSymbol, "object", 1},
		{SExpInt, "12", 2},
		{SExpString, "s", 3},
		{SExpSymbol, "name", 4},
	}
	for i, tt := range tests {
		elt := sexp.List[i]
		if elt.Kind != tt.kind || elt.Text != tt.text || elt.Line != tt.line {
			t.Errorf("element %d: got kind %d text %q line %d, want %d %q %d",
				i, elt.Kind, elt.Text, elt.Line, tt.kind, tt.text, tt.line)
		}
	}
	if !sexp.List[0].IsSymbol("object") || sexp.List[1].IsSymbol("12") {
		t.Error("IsSymbol gave the wrong answer")
	}
}

func TestParseSExpErrors(t *testing.T) {
	tests := []struct {
		input string
		error string
	}{
		{"", "empty"},
		{"   ; only a comment", "empty"},
		{")", "unexpected ')'"},
		{"(a (b)", "unterminated list"},
		{"(a) b", "unexpected text"},
		{"\"abc", "unterminated string"},
		{"(a #b)", "unrecognized"},
	}
	for _, tt := range tests {
		_, err := ParseSExp(tt.input)
		if err == nil {
			t.Errorf("ParseSExp(%q) succeeded", tt.input)
			continue
		}
		if !strings.Contains(err.Error(), tt.error) {
			t.Errorf("ParseSExp(%q) error %q does not mention %q", tt.input, err, tt.error)
		}
	}
}

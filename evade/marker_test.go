// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

package evade

import (
	"testing"

	"github.com/s48/stackevade/front"
	"github.com/s48/stackevade/ir"
)

func readObject(t *testing.T, text string) *ir.ObjectT {
	t.Helper()
	object, err := front.ReadObject(text)
	if err != nil {
		t.Fatalf("reading object: %v", err)
	}
	return object
}

func TestFindMemoryInit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // printed literal, or "" for none
		count int
	}{
		{"none", `(object main (pop 1))`, "", 0},
		{"one", `(object main (memoryinit 0x80))`, "0x80", 1},
		{"decimal", `(object main (memoryinit 128))`, "128", 1},
		{"in a function", `(object main (function f () () (if 1 (memoryinit 0x40))))`, "0x40", 1},
		{"two", `(object main (memoryinit 0x80) (function f () () (memoryinit 0x80)))`, "", 2},
		{"not a literal", `(object main (let (x) 1) (memoryinit x))`, "", 1},
		{"string", `(object main (memoryinit "x"))`, "", 1},
		{"no argument", `(object main (memoryinit))`, "", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			literal, count := findMemoryInit(readObject(t, tt.input).Code)
			if count != tt.count {
				t.Errorf("count is %d, want %d", count, tt.count)
			}
			switch {
			case tt.want == "" && literal != nil:
				t.Errorf("found %s", literal)
			case tt.want != "" && literal == nil:
				t.Error("no literal found")
			case literal != nil && literal.String() != tt.want:
				t.Errorf("found %s, want %s", literal, tt.want)
			}
		})
	}
}

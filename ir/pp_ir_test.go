// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

package ir_test

import (
	"bytes"
	"testing"

	"github.com/s48/stackevade/ir"
)

func TestObjectString(t *testing.T) {
	object := readObject(t, `
(object main
  (function f (a b) (r)
    (let (x) (add a 1))
    (if (lt x b)
      (assign (r) x)
      (leave))
    (for ((let (i) 0)) (lt i 10) ((assign (i) (add i 1)))
      (break)
      (continue))
    (for () 1 ())
    (block)
    (let (s))
    (pop "hi"))
  (memoryinit 0x80)
  (let (y) (f 1 2)))`)
	want := `object "main" {
    function f(a, b) -> r {
        let x := add(a, 1)
        if lt(x, b) {
            r := x
            leave
        }
        for {
            let i := 0
        } lt(i, 10) {
            i := add(i, 1)
        } {
            break
            continue
        }
        for { } 1 { } { }
        { }
        let s
        pop("hi")
    }
    memoryinit(0x80)
    let y := f(1, 2)
}
`
	if got := ir.ObjectString(object); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestPrintEmptyObject(t *testing.T) {
	object := &ir.ObjectT{Name: "empty", Code: ir.MakeBlock()}
	if got := ir.ObjectString(object); got != "object \"empty\" { }\n" {
		t.Errorf("got %q", got)
	}
}

func TestPpWriterColumns(t *testing.T) {
	buf := new(bytes.Buffer)
	writer := ir.MakePpWriter(buf)
	writer.Write([]byte("abc"))
	writer.IndentTo(6)
	writer.Write([]byte("d"))
	writer.IndentTo(2)
	writer.Write([]byte("e\nf"))
	if writer.Column != 1 {
		t.Errorf("column is %d, want 1", writer.Column)
	}
	if got := buf.String(); got != "abc   d\n  e\nf" {
		t.Errorf("got %q", got)
	}
}

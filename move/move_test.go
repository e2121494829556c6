// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

package move

import (
	"math/big"
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

func slotsIn(function ir.FunctionNameT, slots map[string]uint64) SlotAllocationT {
	result := map[ir.VariableNameT]uint64{}
	for name, slot := range slots {
		result[ir.VariableName(name)] = slot
	}
	return SlotAllocationT{function: result}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		reserved int64
		slots    SlotAllocationT
		want     string
	}{
		{
			name: "reads and writes",
			input: `
(object main
  (function f (a) (r)
    (let (x) (add a 1))
    (assign (x) (mul x 2))
    (assign (r) x))
  (memoryinit 0x80))`,
			reserved: 0x80,
			slots:    slotsIn(ir.FunctionName("f"), map[string]uint64{"x": 1}),
			want: `object "main" {
    function f(a) -> r {
        mstore(0xa0, add(a, 1))
        mstore(0xa0, mul(mload(0xa0), 2))
        r := mload(0xa0)
    }
    memoryinit(0x80)
}
`,
		},
		{
			name: "parameters and returns",
			input: `
(object main
  (function f (a b) (r s)
    (if (lt a b)
      (assign (r) a)
      (leave))
    (assign (s) b)))`,
			reserved: 0,
			slots:    slotsIn(ir.FunctionName("f"), map[string]uint64{"a": 0, "r": 1}),
			want: `object "main" {
    function f(a_1, b) -> r_1, s {
        mstore(0x0, a_1)
        mstore(0x20, 0)
        if lt(mload(0x0), b) {
            mstore(0x20, mload(0x0))
            r_1 := mload(0x20)
            leave
        }
        s := b
        r_1 := mload(0x20)
    }
}
`,
		},
		{
			name: "several variables",
			input: `
(object main
  (function g () (p q)
    (assign (p) 1)
    (assign (q) 2))
  (function f () ()
    (let (x y) (g))
    (let (u v))
    (assign (x y) (g))
    (sstore x y)))`,
			reserved: 0x80,
			slots:    slotsIn(ir.FunctionName("f"), map[string]uint64{"x": 0, "u": 1}),
			want: `object "main" {
    function g() -> p, q {
        p := 1
        q := 2
    }
    function f() {
        let x_1, y := g()
        mstore(0x80, x_1)
        let v
        mstore(0xa0, 0)
        let x_2, y_1 := g()
        mstore(0x80, x_2)
        y := y_1
        sstore(mload(0x80), y)
    }
}
`,
		},
		{
			name: "top-level loop",
			input: `
(object main
  (let (i) 0)
  (for () (lt i 3) ((assign (i) (add i 1)))
    (pop i)))`,
			reserved: 0x40,
			slots: SlotAllocationT{ir.ProgramRoot: {
				ir.VariableName("i"): 0,
				ir.UnnamedOverflow:   5}},
			want: `object "main" {
    mstore(0x40, 0)
    for { } lt(mload(0x40), 3) {
        mstore(0x40, add(mload(0x40), 1))
    } {
        pop(mload(0x40))
    }
}
`,
		},
		{
			name: "nothing moved",
			input: `
(object main
  (function f (a) () (let (x y))
    (pop a)))`,
			reserved: 0x80,
			slots:    SlotAllocationT{},
			want: `object "main" {
    function f(a) {
        let x, y
        pop(a)
    }
}
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			object := readObject(t, tt.input)
			Run(MakeNameDispenser(object.Code), ir.MemoryDialect, big.NewInt(tt.reserved), tt.slots, object.Code)
			if got := ir.ObjectString(object); got != tt.want {
				t.Errorf("got\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestMoveWideOffsets(t *testing.T) {
	object := readObject(t, `(object main (let (x) 1))`)
	reserved, _ := new(big.Int).SetString("ffffffffffffffffffffffffffffffff", 16)
	slots := slotsIn(ir.ProgramRoot, map[string]uint64{"x": 2})
	Run(MakeNameDispenser(object.Code), ir.MemoryDialect, reserved, slots, object.Code)
	want := "object \"main\" {\n    mstore(0x10000000000000000000000000000003f, 1)\n}\n"
	if got := ir.ObjectString(object); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMoveRejectsBadSlots(t *testing.T) {
	const input = `
(object main
  (function f (a) ()
    (let (x) a)
    (pop x)))`
	tests := []struct {
		name  string
		slots SlotAllocationT
	}{
		{"undefined function", slotsIn(ir.FunctionName("g"), map[string]uint64{"x": 0})},
		{"undeclared variable", slotsIn(ir.FunctionName("f"), map[string]uint64{"x": 0, "y": 1})},
		{"variable of another function", slotsIn(ir.ProgramRoot, map[string]uint64{"x": 0})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			object := readObject(t, input)
			before := ir.ObjectString(object)
			defer func() {
				if recover() == nil {
					t.Error("expected a panic")
				}
				if after := ir.ObjectString(object); after != before {
					t.Errorf("object changed before the panic:\n%s", after)
				}
			}()
			Run(MakeNameDispenser(object.Code), ir.MemoryDialect, big.NewInt(0x80), tt.slots, object.Code)
		})
	}
}

// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

package ir

import (
	"go/constant"
	"go/token"
	"testing"
)

func TestIntValue(t *testing.T) {
	big := constant.MakeFromLiteral("0x10000000000000000000000000000000000000000", token.INT, 0)
	tests := []struct {
		name    string
		literal *LiteralT
		want    string
		ok      bool
	}{
		{"small", MakeNumber(constant.MakeInt64(128)), "128", true},
		{"wide", MakeHexNumber(big), big.ExactString(), true},
		{"negative", MakeNumber(constant.MakeInt64(-1)), "", false},
		{"string", MakeString("128"), "", false},
		{"float", MakeNumber(constant.MakeFloat64(1.5)), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, ok := tt.literal.IntValue()
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && value.String() != tt.want {
				t.Errorf("got %s, want %s", value, tt.want)
			}
		})
	}
}

func TestLiteralString(t *testing.T) {
	tests := []struct {
		literal *LiteralT
		want    string
	}{
		{MakeNumber(constant.MakeInt64(192)), "192"},
		{MakeHexNumber(constant.MakeInt64(192)), "0xc0"},
		{MakeHexNumber(constant.MakeInt64(0)), "0x0"},
		{MakeString("hi"), `"hi"`},
	}
	for _, tt := range tests {
		if got := tt.literal.String(); got != tt.want {
			t.Errorf("got %s, want %s", got, tt.want)
		}
	}
	call := MakeCall("mstore", MakeHexNumber(constant.MakeInt64(128)), MakeIdentifier("x"))
	if got := call.String(); got != "mstore(0x80, x)" {
		t.Errorf("call printed as %s", got)
	}
}

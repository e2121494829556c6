// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

package ir

import (
	"slices"
	"testing"
)

func TestFunctionNames(t *testing.T) {
	names := []FunctionNameT{FunctionName("b"), ProgramRoot, FunctionName("a")}
	slices.SortFunc(names, CompareFunctionNames)
	want := []FunctionNameT{ProgramRoot, FunctionName("a"), FunctionName("b")}
	if !slices.Equal(names, want) {
		t.Errorf("sorted to %v, want %v", names, want)
	}
	if !ProgramRoot.IsRoot() || FunctionName("a").IsRoot() {
		t.Error("IsRoot is wrong")
	}
	if ProgramRoot.String() != "<root>" || FunctionName("f").String() != "f" {
		t.Errorf("bad printed names %s %s", ProgramRoot, FunctionName("f"))
	}
	if FunctionName("f") != FunctionName("f") {
		t.Error("equal names compare unequal")
	}
}

func TestVariableNames(t *testing.T) {
	if !UnnamedOverflow.IsUnnamed() || VariableName("x").IsUnnamed() {
		t.Error("IsUnnamed is wrong")
	}
	if UnnamedOverflow.String() != "<unnamed>" || VariableName("x").Name() != "x" {
		t.Errorf("bad names %s %s", UnnamedOverflow, VariableName("x"))
	}
}

func TestEmptyNamesPanic(t *testing.T) {
	for name, f := range map[string]func(){
		"function": func() { FunctionName("") },
		"variable": func() { VariableName("") },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected a panic")
				}
			}()
			f()
		})
	}
}

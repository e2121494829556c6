// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

// Names used as map keys by the analyses.  The program's top-level
// code and the unnamed overflow source are separate variants rather
// than empty strings, so the two cannot be mistaken for each other or
// for a real name.

package ir

import (
	"strings"
)

//----------------------------------------------------------------
// Functions

type FunctionNameT struct {
	name   string
	isRoot bool
}

// The program's top-level code, treated as a function in the call
// graph.  It is never called.
var ProgramRoot = FunctionNameT{isRoot: true}

func FunctionName(name string) FunctionNameT {
	if name == "" {
		panic("empty function name")
	}
	return FunctionNameT{name: name}
}

func (function FunctionNameT) IsRoot() bool { return function.isRoot }
func (function FunctionNameT) Name() string { return function.name }

func (function FunctionNameT) String() string {
	if function.isRoot {
		return "<root>"
	}
	return function.name
}

// The root sorts before every named function.
func CompareFunctionNames(x FunctionNameT, y FunctionNameT) int {
	switch {
	case x.isRoot && y.isRoot:
		return 0
	case x.isRoot:
		return -1
	case y.isRoot:
		return 1
	}
	return strings.Compare(x.name, y.name)
}

//----------------------------------------------------------------
// Variables

type VariableNameT struct {
	name      string
	isUnnamed bool
}

// Stands for stack overflow caused by something that has no variable
// of its own, such as a function with too many parameters and return
// values.  No slot is ever allocated for it.
var UnnamedOverflow = VariableNameT{isUnnamed: true}

func VariableName(name string) VariableNameT {
	if name == "" {
		panic("empty variable name")
	}
	return VariableNameT{name: name}
}

func (variable VariableNameT) IsUnnamed() bool { return variable.isUnnamed }
func (variable VariableNameT) Name() string    { return variable.name }

func (variable VariableNameT) String() string {
	if variable.isUnnamed {
		return "<unnamed>"
	}
	return variable.name
}

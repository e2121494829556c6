// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

package ir

import (
	"fmt"
)

// Every call is either to a function defined in the object or to one
// of the dialect's builtins.  Builtins never appear in the call graph.

type BuiltinT struct {
	Name        string
	Inputs      int
	Outputs     int
	SideEffects bool
}

type DialectT struct {
	Name     string
	WordSize int64 // bytes per memory slot
	// Whether variables can be given fixed addresses in the object's
	// memory.
	ObjectAccess bool
	builtins     map[string]*BuiltinT
}

func (dialect *DialectT) ProvidesObjectAccess() bool {
	return dialect != nil && dialect.ObjectAccess
}

func (dialect *DialectT) Builtin(name string) *BuiltinT {
	return dialect.builtins[name]
}

func (dialect *DialectT) IsBuiltin(name string) bool {
	return dialect.Builtin(name) != nil
}

func (dialect *DialectT) addBuiltin(builtin *BuiltinT) {
	if dialect.builtins[builtin.Name] != nil {
		panic(fmt.Sprintf("builtin '%s' defined twice", builtin.Name))
	}
	dialect.builtins[builtin.Name] = builtin
}

// Builtin names used by the stack-to-memory code.
const (
	MemoryInitName  = "memoryinit"
	MemoryLoadName  = "mload"
	MemoryStoreName = "mstore"
)

func makeDialect(name string, objectAccess bool) *DialectT {
	dialect := &DialectT{
		Name:         name,
		WordSize:     32,
		ObjectAccess: objectAccess,
		builtins:     map[string]*BuiltinT{}}
	for _, binop := range []string{"add", "sub", "mul", "div", "mod",
		"lt", "gt", "eq", "and", "or", "xor", "shl", "shr"} {
		dialect.addBuiltin(&BuiltinT{Name: binop, Inputs: 2, Outputs: 1})
	}
	dialect.addBuiltin(&BuiltinT{Name: "iszero", Inputs: 1, Outputs: 1})
	dialect.addBuiltin(&BuiltinT{Name: "not", Inputs: 1, Outputs: 1})
	dialect.addBuiltin(&BuiltinT{Name: MemoryLoadName, Inputs: 1, Outputs: 1})
	dialect.addBuiltin(&BuiltinT{Name: MemoryStoreName, Inputs: 2, SideEffects: true})
	dialect.addBuiltin(&BuiltinT{Name: "sload", Inputs: 1, Outputs: 1})
	dialect.addBuiltin(&BuiltinT{Name: "sstore", Inputs: 2, SideEffects: true})
	dialect.addBuiltin(&BuiltinT{Name: "pop", Inputs: 1, SideEffects: true})
	dialect.addBuiltin(&BuiltinT{Name: "return", Inputs: 2, SideEffects: true})
	dialect.addBuiltin(&BuiltinT{Name: "revert", Inputs: 2, SideEffects: true})
	if objectAccess {
		dialect.addBuiltin(&BuiltinT{Name: MemoryInitName, Inputs: 1, SideEffects: true})
	}
	return dialect
}

var MemoryDialect = makeDialect("memory", true)
var PlainDialect = makeDialect("plain", false)

var dialects = map[string]*DialectT{
	MemoryDialect.Name: MemoryDialect,
	PlainDialect.Name:  PlainDialect,
}

func LookupDialect(name string) *DialectT {
	return dialects[name]
}

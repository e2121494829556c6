// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

// Walking the IR tree.

package ir

import (
	"fmt"
)

// Inspect calls f(node) for 'node' and then, if f returns true, for
// each of its children in source order.  Nodes are blocks, the other
// statements, and expressions.

func Inspect(node any, f func(node any) bool) {
	if !f(node) {
		return
	}
	switch node := node.(type) {
	case *BlockT:
		for _, statement := range node.Statements {
			Inspect(statement, f)
		}
	case *FunctionDefinitionT:
		Inspect(node.Body, f)
	case *VariableDeclarationT:
		if node.Value != nil {
			Inspect(node.Value, f)
		}
	case *AssignmentT:
		Inspect(node.Value, f)
	case *ExpressionStatementT:
		Inspect(node.Expression, f)
	case *IfT:
		Inspect(node.Condition, f)
		Inspect(node.Body, f)
	case *ForLoopT:
		Inspect(node.Pre, f)
		Inspect(node.Condition, f)
		Inspect(node.Post, f)
		Inspect(node.Body, f)
	case *FunctionCallT:
		for _, arg := range node.Arguments {
			Inspect(arg, f)
		}
	case *BreakT, *ContinueT, *LeaveT, *LiteralT, *IdentifierT:
	default:
		panic(fmt.Sprintf("Inspect got unknown node %T", node))
	}
}

// All calls to 'name' in 'block', including those inside function
// definitions.

func FindCalls(block *BlockT, name string) []*FunctionCallT {
	calls := []*FunctionCallT{}
	Inspect(block, func(node any) bool {
		if call, ok := node.(*FunctionCallT); ok && call.Name == name {
			calls = append(calls, call)
		}
		return true
	})
	return calls
}

// Every name that appears in 'block': functions, parameters, return
// variables, declared variables and references.

func CollectNames(block *BlockT) map[string]struct{} {
	names := map[string]struct{}{}
	add := func(list []string) {
		for _, name := range list {
			names[name] = struct{}{}
		}
	}
	Inspect(block, func(node any) bool {
		switch node := node.(type) {
		case *FunctionDefinitionT:
			add([]string{node.Name})
			add(node.Parameters)
			add(node.Returns)
		case *VariableDeclarationT:
			add(node.Variables)
		case *AssignmentT:
			add(node.Variables)
		case *IdentifierT:
			add([]string{node.Name})
		case *FunctionCallT:
			add([]string{node.Name})
		}
		return true
	})
	return names
}

// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

package ir

import (
	"github.com/s48/stackevade/util"
)

// Maps each function to the functions it calls.  Calls made by
// top-level code belong to ProgramRoot.  The root and every defined
// function have an entry, even if they call nothing.

type CallGraphT map[FunctionNameT]util.SetT[FunctionNameT]

func BuildCallGraph(block *BlockT, dialect *DialectT) CallGraphT {
	graph := CallGraphT{ProgramRoot: util.NewSet[FunctionNameT]()}
	var walk func(body *BlockT, current FunctionNameT)
	walk = func(body *BlockT, current FunctionNameT) {
		Inspect(body, func(node any) bool {
			switch node := node.(type) {
			case *FunctionDefinitionT:
				name := FunctionName(node.Name)
				if graph[name] == nil {
					graph[name] = util.NewSet[FunctionNameT]()
				}
				walk(node.Body, name)
				return false
			case *FunctionCallT:
				if !dialect.IsBuiltin(node.Name) {
					graph[current].Add(FunctionName(node.Name))
				}
			}
			return true
		})
	}
	walk(block, ProgramRoot)
	return graph
}

// The callees of 'function' in a fixed order.

func (graph CallGraphT) Callees(function FunctionNameT) []FunctionNameT {
	callees, found := graph[function]
	if !found {
		return nil
	}
	return util.SortedMembers(callees, CompareFunctionNames)
}

// All functions in the graph in a fixed order, root first.

func (graph CallGraphT) Functions() []FunctionNameT {
	functions := util.NewSet[FunctionNameT]()
	for function, callees := range graph {
		functions.Add(function)
		for callee := range callees {
			functions.Add(callee)
		}
	}
	return util.SortedMembers(functions, CompareFunctionNames)
}

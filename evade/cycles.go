// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

package evade

import (
	"github.com/s48/stackevade/ir"
	"github.com/s48/stackevade/util"
)

// Returns the functions that are on some cycle reachable from 'root'.
//
// This is a depth-first walk that keeps the current path on a stack.
// Reaching a function that is already on the path closes a cycle
// made of everything from that function to the top of the stack.
// Functions are not marked as finished, so a function reachable by
// several paths is walked once per path.

func findCycles(graph ir.CallGraphT, root ir.FunctionNameT) util.SetT[ir.FunctionNameT] {
	inCycle := util.NewSet[ir.FunctionNameT]()
	path := &util.StackT[ir.FunctionNameT]{}
	var recur func(function ir.FunctionNameT)
	recur = func(function ir.FunctionNameT) {
		if i := util.StackIndex(path, function); 0 <= i {
			inCycle.Add(path.From(i)...)
			return
		}
		path.Push(function)
		for _, callee := range graph.Callees(function) {
			recur(callee)
		}
		path.Pop()
	}
	recur(root)
	return inCycle
}

// The strongly connected components that contain one of 'functions',
// for reporting.

func cyclicComponents(graph ir.CallGraphT, functions util.SetT[ir.FunctionNameT]) [][]ir.FunctionNameT {
	all := graph.Functions()
	components := util.StronglyConnectedComponents(all, graph.Callees)
	result := [][]ir.FunctionNameT{}
	for _, component := range components {
		if !util.IsCyclicComponent(component, graph.Callees) {
			continue
		}
		for _, function := range component {
			if functions.Contains(function) {
				result = append(result, util.SortedMembers(util.NewSet(component...), ir.CompareFunctionNames))
				break
			}
		}
	}
	return result
}

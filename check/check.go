// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

// Finding functions that need more stack than the machine can reach.
//
// The model is simple.  A function's stack demand is its parameters,
// return variables and declared locals, plus the deepest pile of
// temporaries needed to evaluate any one expression in its body.
// Top-level code is treated as a function without parameters.  If
// the demand exceeds the limit, locals are moved out of the stack in
// the order they are declared until the demand fits.  When the
// locals are not enough the function gets UnnamedOverflow as well.

package check

import (
	"github.com/s48/stackevade/ir"
	"github.com/s48/stackevade/util"
)

// The deepest stack slot an instruction can reach.
const DefaultStackLimit = 16

// The variables of each function that have to be moved to memory, in
// the order in which they are to get memory slots.  Functions that fit
// on the stack are not present.

type ReportT map[ir.FunctionNameT][]ir.VariableNameT

type CheckerT struct {
	Limit int
}

func Run(dialect *ir.DialectT, object *ir.ObjectT, optimizeStackAllocation bool) ReportT {
	checker := CheckerT{Limit: DefaultStackLimit}
	return checker.Run(dialect, object, optimizeStackAllocation)
}

// When optimizing, locals that are never read are not counted, as
// they will be removed.

func (checker *CheckerT) Run(dialect *ir.DialectT, object *ir.ObjectT, optimizeStackAllocation bool) ReportT {
	limit := checker.Limit
	if limit <= 0 {
		limit = DefaultStackLimit
	}
	returnCounts := map[string]int{}
	ir.Inspect(object.Code, func(node any) bool {
		if definition, ok := node.(*ir.FunctionDefinitionT); ok {
			returnCounts[definition.Name] = len(definition.Returns)
		}
		return true
	})

	report := ReportT{}
	addScope := func(scope *scopeT) {
		locals := scope.locals
		if optimizeStackAllocation {
			locals = []string{}
			for _, local := range scope.locals {
				if scope.reads.Contains(local) {
					locals = append(locals, local)
				}
			}
		}
		demand := scope.fixed + len(locals) + scope.temporaries
		excess := demand - limit
		if excess <= 0 {
			return
		}
		variables := []ir.VariableNameT{}
		for _, local := range locals {
			if excess == 0 {
				break
			}
			variables = append(variables, ir.VariableName(local))
			excess -= 1
		}
		if 0 < excess {
			variables = append(variables, ir.UnnamedOverflow)
		}
		report[scope.function] = variables
	}

	var walk func(function ir.FunctionNameT, fixed int, body *ir.BlockT)
	walk = func(function ir.FunctionNameT, fixed int, body *ir.BlockT) {
		scope := &scopeT{function: function, fixed: fixed, reads: util.NewSet[string]()}
		ir.Inspect(body, func(node any) bool {
			switch node := node.(type) {
			case *ir.FunctionDefinitionT:
				walk(ir.FunctionName(node.Name),
					len(node.Parameters)+len(node.Returns),
					node.Body)
				return false
			case *ir.VariableDeclarationT:
				scope.locals = append(scope.locals, node.Variables...)
			case ir.ExpressionT:
				depth := expressionDepth(node, dialect, returnCounts)
				if scope.temporaries < depth {
					scope.temporaries = depth
				}
				// Sub-expressions are no deeper, so only the
				// identifiers inside are of interest.
				ir.Inspect(node, func(sub any) bool {
					if identifier, ok := sub.(*ir.IdentifierT); ok {
						scope.reads.Add(identifier.Name)
					}
					return true
				})
				return false
			}
			return true
		})
		addScope(scope)
	}
	walk(ir.ProgramRoot, 0, object.Code)
	return report
}

type scopeT struct {
	function    ir.FunctionNameT
	fixed       int      // parameters and returns
	locals      []string // in declaration order
	reads       util.SetT[string]
	temporaries int
}

// The number of stack slots needed to evaluate 'expression'.  Each
// argument is evaluated on top of the ones before it.

func expressionDepth(expression ir.ExpressionT, dialect *ir.DialectT, returnCounts map[string]int) int {
	call, ok := expression.(*ir.FunctionCallT)
	if !ok {
		return 1
	}
	depth := 1
	if builtin := dialect.Builtin(call.Name); builtin != nil {
		depth = builtin.Outputs
	} else if count, found := returnCounts[call.Name]; found {
		depth = count
	}
	for i, arg := range call.Arguments {
		argDepth := i + expressionDepth(arg, dialect, returnCounts)
		if depth < argDepth {
			depth = argDepth
		}
	}
	return depth
}

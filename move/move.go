// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

// Moving variables from the stack to fixed memory locations.  Each
// moved variable has a slot, and lives at
//     reservedMemory + wordSize * slot
// Reads become loads from that address, and declarations and
// assignments become stores.
//
//     let x := add(y, 1)      =>   mstore(0xa0, add(y, 1))
//     x := mul(x, 2)          =>   mstore(0xa0, mul(mload(0xa0), 2))
//
// A declaration or assignment of several variables binds fresh names
// which are then stored.  Moved parameters are stored on entry.
// Moved return variables are cleared on entry and loaded back into
// fresh return variables before each 'leave' and at the end of the
// body.

package move

import (
	"fmt"
	"go/constant"
	"math/big"

	"github.com/s48/stackevade/ir"
	"github.com/s48/stackevade/util"
)

// The slot of each moved variable in each function.  Slot numbers
// are unique within a function.

type SlotAllocationT map[ir.FunctionNameT]map[ir.VariableNameT]uint64

type moverT struct {
	dialect        *ir.DialectT
	dispenser      *NameDispenserT
	reservedMemory *big.Int
	slots          SlotAllocationT
	declared       map[ir.FunctionNameT]util.SetT[string]
}

// Rewrites 'block' in place.  Every variable in 'slots' must be
// declared by the function it is listed under; this is checked before
// anything is changed.  UnnamedOverflow entries are skipped.

func Run(dispenser *NameDispenserT,
	dialect *ir.DialectT,
	reservedMemory *big.Int,
	slots SlotAllocationT,
	block *ir.BlockT) {

	mover := &moverT{
		dialect:        dialect,
		dispenser:      dispenser,
		reservedMemory: reservedMemory,
		slots:          slots,
		declared:       collectDeclarations(block)}
	for function, variables := range slots {
		declared, found := mover.declared[function]
		if !found {
			panic(fmt.Sprintf("moving variables of undefined function %s", function))
		}
		for variable := range variables {
			if !variable.IsUnnamed() && !declared.Contains(variable.Name()) {
				panic(fmt.Sprintf("moving variable '%s' which is not declared in %s", variable, function))
			}
		}
	}
	mover.rewriteBlock(block, mover.makeScope(ir.ProgramRoot))
}

// The variables that each function, and top-level code, declares
// itself, including parameters and return variables.

func collectDeclarations(block *ir.BlockT) map[ir.FunctionNameT]util.SetT[string] {
	result := map[ir.FunctionNameT]util.SetT[string]{}
	var walk func(function ir.FunctionNameT, body *ir.BlockT, lists ...[]string)
	walk = func(function ir.FunctionNameT, body *ir.BlockT, lists ...[]string) {
		declared := util.NewSet[string]()
		for _, list := range lists {
			declared.Add(list...)
		}
		ir.Inspect(body, func(node any) bool {
			switch node := node.(type) {
			case *ir.FunctionDefinitionT:
				walk(ir.FunctionName(node.Name), node.Body, node.Parameters, node.Returns)
				return false
			case *ir.VariableDeclarationT:
				declared.Add(node.Variables...)
			}
			return true
		})
		result[function] = declared
	}
	walk(ir.ProgramRoot, block)
	return result
}

//----------------------------------------------------------------
// Scopes

type movedReturnT struct {
	name  string // the original name, which now lives in memory
	fresh string // the function's new return variable
}

type scopeT struct {
	function ir.FunctionNameT
	offsets  map[string]*big.Int
	returns  []movedReturnT
}

func (mover *moverT) makeScope(function ir.FunctionNameT) *scopeT {
	scope := &scopeT{function: function, offsets: map[string]*big.Int{}}
	wordSize := big.NewInt(mover.dialect.WordSize)
	for variable, slot := range mover.slots[function] {
		if variable.IsUnnamed() {
			continue
		}
		offset := new(big.Int).Mul(wordSize, new(big.Int).SetUint64(slot))
		scope.offsets[variable.Name()] = offset.Add(offset, mover.reservedMemory)
	}
	return scope
}

func (scope *scopeT) isMoved(name string) bool {
	_, found := scope.offsets[name]
	return found
}

func (scope *scopeT) offset(name string) *ir.LiteralT {
	return ir.MakeHexNumber(constant.Make(new(big.Int).Set(scope.offsets[name])))
}

func (scope *scopeT) load(name string) ir.ExpressionT {
	return ir.MakeCall(ir.MemoryLoadName, scope.offset(name))
}

func (scope *scopeT) store(name string, value ir.ExpressionT) ir.StatementT {
	return ir.MakeExpressionStatement(ir.MakeCall(ir.MemoryStoreName, scope.offset(name), value))
}

func zero() ir.ExpressionT {
	return ir.MakeNumber(constant.MakeInt64(0))
}

//----------------------------------------------------------------
// Statements

func (mover *moverT) rewriteFunction(definition *ir.FunctionDefinitionT) {
	function := ir.FunctionName(definition.Name)
	scope := mover.makeScope(function)
	prologue := []ir.StatementT{}
	for i, parameter := range definition.Parameters {
		if scope.isMoved(parameter) {
			fresh := mover.dispenser.NewName(parameter)
			definition.Parameters[i] = fresh
			prologue = append(prologue, scope.store(parameter, ir.MakeIdentifier(fresh)))
		}
	}
	for i, result := range definition.Returns {
		if scope.isMoved(result) {
			fresh := mover.dispenser.NewName(result)
			definition.Returns[i] = fresh
			prologue = append(prologue, scope.store(result, zero()))
			scope.returns = append(scope.returns, movedReturnT{name: result, fresh: fresh})
		}
	}
	mover.rewriteBlock(definition.Body, scope)
	statements := append(prologue, definition.Body.Statements...)
	definition.Body.Statements = append(statements, scope.loadReturns()...)
}

func (scope *scopeT) loadReturns() []ir.StatementT {
	statements := []ir.StatementT{}
	for _, result := range scope.returns {
		statements = append(statements,
			&ir.AssignmentT{Variables: []string{result.fresh}, Value: scope.load(result.name)})
	}
	return statements
}

func (mover *moverT) rewriteBlock(block *ir.BlockT, scope *scopeT) {
	statements := []ir.StatementT{}
	for _, statement := range block.Statements {
		statements = append(statements, mover.rewriteStatement(statement, scope)...)
	}
	block.Statements = statements
}

func (mover *moverT) rewriteStatement(rawStatement ir.StatementT, scope *scopeT) []ir.StatementT {
	switch statement := rawStatement.(type) {
	case *ir.BlockT:
		mover.rewriteBlock(statement, scope)
	case *ir.FunctionDefinitionT:
		mover.rewriteFunction(statement)
	case *ir.VariableDeclarationT:
		return mover.rewriteDeclaration(statement, scope)
	case *ir.AssignmentT:
		return mover.rewriteAssignment(statement, scope)
	case *ir.ExpressionStatementT:
		statement.Expression = rewriteExpression(statement.Expression, scope)
	case *ir.IfT:
		statement.Condition = rewriteExpression(statement.Condition, scope)
		mover.rewriteBlock(statement.Body, scope)
	case *ir.ForLoopT:
		mover.rewriteBlock(statement.Pre, scope)
		statement.Condition = rewriteExpression(statement.Condition, scope)
		mover.rewriteBlock(statement.Post, scope)
		mover.rewriteBlock(statement.Body, scope)
	case *ir.LeaveT:
		return append(scope.loadReturns(), statement)
	case *ir.BreakT, *ir.ContinueT:
	default:
		panic(fmt.Sprintf("rewriteStatement got funny statement %+v", statement))
	}
	return []ir.StatementT{rawStatement}
}

func (mover *moverT) rewriteDeclaration(declaration *ir.VariableDeclarationT, scope *scopeT) []ir.StatementT {
	if declaration.Value != nil {
		declaration.Value = rewriteExpression(declaration.Value, scope)
	}
	moved := 0
	for _, variable := range declaration.Variables {
		if scope.isMoved(variable) {
			moved += 1
		}
	}
	switch {
	case moved == 0:
		return []ir.StatementT{declaration}
	case len(declaration.Variables) == 1:
		value := declaration.Value
		if value == nil {
			value = zero()
		}
		return []ir.StatementT{scope.store(declaration.Variables[0], value)}
	case declaration.Value == nil:
		// Nothing to evaluate, so the moved variables are cleared and
		// the rest stay declared.
		stores := []ir.StatementT{}
		kept := []string{}
		for _, variable := range declaration.Variables {
			if scope.isMoved(variable) {
				stores = append(stores, scope.store(variable, zero()))
			} else {
				kept = append(kept, variable)
			}
		}
		if 0 < len(kept) {
			declaration.Variables = kept
			return append([]ir.StatementT{declaration}, stores...)
		}
		return stores
	}
	result := []ir.StatementT{declaration}
	for i, variable := range declaration.Variables {
		if scope.isMoved(variable) {
			fresh := mover.dispenser.NewName(variable)
			declaration.Variables[i] = fresh
			result = append(result, scope.store(variable, ir.MakeIdentifier(fresh)))
		}
	}
	return result
}

// Assigning to several variables, some of them moved, goes through a
// declaration of fresh variables:
//     a, b := f()   =>   let a_1, b_1 := f()
//                        mstore(0x80, a_1)
//                        b := b_1

func (mover *moverT) rewriteAssignment(assignment *ir.AssignmentT, scope *scopeT) []ir.StatementT {
	assignment.Value = rewriteExpression(assignment.Value, scope)
	moved := 0
	for _, variable := range assignment.Variables {
		if scope.isMoved(variable) {
			moved += 1
		}
	}
	if moved == 0 {
		return []ir.StatementT{assignment}
	}
	if len(assignment.Variables) == 1 {
		return []ir.StatementT{scope.store(assignment.Variables[0], assignment.Value)}
	}
	temps := make([]string, len(assignment.Variables))
	stores := []ir.StatementT{}
	for i, variable := range assignment.Variables {
		temps[i] = mover.dispenser.NewName(variable)
		if scope.isMoved(variable) {
			stores = append(stores, scope.store(variable, ir.MakeIdentifier(temps[i])))
		} else {
			stores = append(stores,
				&ir.AssignmentT{Variables: []string{variable}, Value: ir.MakeIdentifier(temps[i])})
		}
	}
	declaration := &ir.VariableDeclarationT{Variables: temps, Value: assignment.Value}
	return append([]ir.StatementT{declaration}, stores...)
}

//----------------------------------------------------------------
// Expressions

func rewriteExpression(rawExpression ir.ExpressionT, scope *scopeT) ir.ExpressionT {
	switch expression := rawExpression.(type) {
	case *ir.IdentifierT:
		if scope.isMoved(expression.Name) {
			return scope.load(expression.Name)
		}
	case *ir.FunctionCallT:
		for i, arg := range expression.Arguments {
			expression.Arguments[i] = rewriteExpression(arg, scope)
		}
	case *ir.LiteralT:
	default:
		panic(fmt.Sprintf("rewriteExpression got funny expression %+v", expression))
	}
	return rawExpression
}

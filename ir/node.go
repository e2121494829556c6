// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

// A block-structured IR.  An object's code is a block of statements
// that may contain function definitions.  Functions are only called
// by name; there are no function values.
//
// Variable names are assumed to be unique across the whole object,
// so a name alone identifies a variable.

package ir

import (
	"fmt"
	"go/constant"
	"math/big"
)

type ObjectT struct {
	Name string
	Code *BlockT
}

//----------------------------------------------------------------
// Expressions

type ExpressionT interface {
	expressionNode()
	String() string
}

type LiteralKindT int

const (
	NumberLiteral LiteralKindT = iota
	StringLiteral
)

// Number values are arbitrary precision.  'Hex' records how the
// literal is printed.

type LiteralT struct {
	Kind  LiteralKindT
	Value constant.Value
	Hex   bool
}

type IdentifierT struct {
	Name string
}

type FunctionCallT struct {
	Name      string
	Arguments []ExpressionT
}

func (*LiteralT) expressionNode()      {}
func (*IdentifierT) expressionNode()   {}
func (*FunctionCallT) expressionNode() {}

func (literal *LiteralT) String() string {
	if literal.Kind == StringLiteral {
		return literal.Value.ExactString()
	}
	if literal.Hex {
		return HexString(literal.Value)
	}
	return literal.Value.ExactString()
}

func (identifier *IdentifierT) String() string { return identifier.Name }

func (call *FunctionCallT) String() string {
	result := call.Name + "("
	for i, arg := range call.Arguments {
		if 0 < i {
			result += ", "
		}
		result += arg.String()
	}
	return result + ")"
}

func MakeNumber(value constant.Value) *LiteralT {
	return &LiteralT{Kind: NumberLiteral, Value: value}
}

func MakeHexNumber(value constant.Value) *LiteralT {
	return &LiteralT{Kind: NumberLiteral, Value: value, Hex: true}
}

func MakeString(value string) *LiteralT {
	return &LiteralT{Kind: StringLiteral, Value: constant.MakeString(value)}
}

func MakeIdentifier(name string) *IdentifierT {
	return &IdentifierT{Name: name}
}

func MakeCall(name string, args ...ExpressionT) *FunctionCallT {
	return &FunctionCallT{Name: name, Arguments: args}
}

// Returns the non-negative integer value of a number literal.

func (literal *LiteralT) IntValue() (*big.Int, bool) {
	if literal.Kind != NumberLiteral || literal.Value.Kind() != constant.Int {
		return nil, false
	}
	value, ok := new(big.Int).SetString(literal.Value.ExactString(), 10)
	if !ok || value.Sign() < 0 {
		return nil, false
	}
	return value, true
}

// Compact hex with a '0x' prefix.

func HexString(value constant.Value) string {
	n, ok := new(big.Int).SetString(value.ExactString(), 10)
	if !ok {
		panic(fmt.Sprintf("not an integer: %s", value.ExactString()))
	}
	return fmt.Sprintf("%#x", n)
}

//----------------------------------------------------------------
// Statements

type StatementT interface {
	statementNode()
}

type BlockT struct {
	Statements []StatementT
}

type FunctionDefinitionT struct {
	Name       string
	Parameters []string
	Returns    []string
	Body       *BlockT
}

// Value may be nil, in which case the variables start as zero.
type VariableDeclarationT struct {
	Variables []string
	Value     ExpressionT
}

type AssignmentT struct {
	Variables []string
	Value     ExpressionT
}

type ExpressionStatementT struct {
	Expression ExpressionT
}

type IfT struct {
	Condition ExpressionT
	Body      *BlockT
}

// The variables declared in Pre are visible in the rest of the loop.
type ForLoopT struct {
	Pre       *BlockT
	Condition ExpressionT
	Post      *BlockT
	Body      *BlockT
}

type BreakT struct{}
type ContinueT struct{}
type LeaveT struct{}

func (*BlockT) statementNode()               {}
func (*FunctionDefinitionT) statementNode()  {}
func (*VariableDeclarationT) statementNode() {}
func (*AssignmentT) statementNode()          {}
func (*ExpressionStatementT) statementNode() {}
func (*IfT) statementNode()                  {}
func (*ForLoopT) statementNode()             {}
func (*BreakT) statementNode()               {}
func (*ContinueT) statementNode()            {}
func (*LeaveT) statementNode()               {}

func MakeBlock(statements ...StatementT) *BlockT {
	return &BlockT{Statements: statements}
}

func MakeExpressionStatement(expression ExpressionT) *ExpressionStatementT {
	return &ExpressionStatementT{Expression: expression}
}

// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

// Reading IR objects written as S-expressions.
//
//  (object <name> <statement> ...)
//
//  (function <name> (<parameter> ...) (<return> ...) <statement> ...)
//  (let (<variable> ...) [<expression>])
//  (assign (<variable> ...) <expression>)
//  (if <expression> <statement> ...)
//  (for (<statement> ...) <expression> (<statement> ...) <statement> ...)
//  (block <statement> ...)
//  (break) (continue) (leave)
//  (<callee> <expression> ...)          ; call used as a statement
//
// Expressions are integers (decimal or 0x hex), strings, identifiers
// and calls.

package front

import (
	"go/constant"
	"go/token"
	"strings"

	"github.com/pkg/errors"

	"github.com/s48/stackevade/ir"
	"github.com/s48/stackevade/util"
)

func ReadObject(text string) (*ir.ObjectT, error) {
	sexp, err := util.ParseSExp(text)
	if err != nil {
		return nil, errors.Wrap(err, "parse object")
	}
	if sexp.Kind != util.SExpList || len(sexp.List) < 2 || !sexp.List[0].IsSymbol("object") {
		return nil, errors.Errorf("line %d: expected (object <name> ...)", sexp.Line)
	}
	name, err := readName(sexp.List[1])
	if err != nil {
		return nil, errors.Wrap(err, "object name")
	}
	code, err := readStatements(sexp.List[2:])
	if err != nil {
		return nil, errors.Wrapf(err, "object %s", name)
	}
	return &ir.ObjectT{Name: name, Code: code}, nil
}

func readStatements(sexps []*util.SExpT) (*ir.BlockT, error) {
	block := ir.MakeBlock()
	for _, sexp := range sexps {
		statement, err := readStatement(sexp)
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, statement)
	}
	return block, nil
}

// The keywords are reserved; no function may be called 'let', etc.

var statementReaders map[string]func(sexp *util.SExpT) (ir.StatementT, error)

func init() {
	statementReaders = map[string]func(sexp *util.SExpT) (ir.StatementT, error){
		"function": readFunction,
		"let":      readLet,
		"assign":   readAssign,
		"if":       readIf,
		"for":      readFor,
		"block": func(sexp *util.SExpT) (ir.StatementT, error) {
			return readStatements(sexp.List[1:])
		},
		"break":    readEmpty(func() ir.StatementT { return &ir.BreakT{} }),
		"continue": readEmpty(func() ir.StatementT { return &ir.ContinueT{} }),
		"leave":    readEmpty(func() ir.StatementT { return &ir.LeaveT{} }),
	}
}

func readStatement(sexp *util.SExpT) (ir.StatementT, error) {
	if sexp.Kind != util.SExpList || len(sexp.List) == 0 {
		return nil, errors.Errorf("line %d: expected a statement, got %s", sexp.Line, sexp)
	}
	head := sexp.List[0]
	if head.Kind == util.SExpSymbol {
		if reader := statementReaders[head.Text]; reader != nil {
			return reader(sexp)
		}
	}
	call, err := readCall(sexp)
	if err != nil {
		return nil, err
	}
	return ir.MakeExpressionStatement(call), nil
}

func readEmpty(makeStatement func() ir.StatementT) func(sexp *util.SExpT) (ir.StatementT, error) {
	return func(sexp *util.SExpT) (ir.StatementT, error) {
		if len(sexp.List) != 1 {
			return nil, errors.Errorf("line %d: %s takes no arguments", sexp.Line, sexp.List[0])
		}
		return makeStatement(), nil
	}
}

func readFunction(sexp *util.SExpT) (ir.StatementT, error) {
	if len(sexp.List) < 4 {
		return nil, errors.Errorf("line %d: expected (function <name> (<parameter> ...) (<return> ...) ...)",
			sexp.Line)
	}
	name, err := readName(sexp.List[1])
	if err != nil {
		return nil, errors.Wrap(err, "function name")
	}
	parameters, err := readNames(sexp.List[2])
	if err != nil {
		return nil, errors.Wrapf(err, "function %s parameters", name)
	}
	returns, err := readNames(sexp.List[3])
	if err != nil {
		return nil, errors.Wrapf(err, "function %s returns", name)
	}
	body, err := readStatements(sexp.List[4:])
	if err != nil {
		return nil, errors.Wrapf(err, "function %s", name)
	}
	return &ir.FunctionDefinitionT{Name: name, Parameters: parameters, Returns: returns, Body: body}, nil
}

func readLet(sexp *util.SExpT) (ir.StatementT, error) {
	if len(sexp.List) < 2 || 3 < len(sexp.List) {
		return nil, errors.Errorf("line %d: expected (let (<variable> ...) [<expression>])", sexp.Line)
	}
	variables, err := readNames(sexp.List[1])
	if err != nil {
		return nil, errors.Wrap(err, "let")
	}
	if len(variables) == 0 {
		return nil, errors.Errorf("line %d: let declares no variables", sexp.Line)
	}
	declaration := &ir.VariableDeclarationT{Variables: variables}
	if len(sexp.List) == 3 {
		declaration.Value, err = readExpression(sexp.List[2])
		if err != nil {
			return nil, errors.Wrap(err, "let")
		}
	}
	return declaration, nil
}

func readAssign(sexp *util.SExpT) (ir.StatementT, error) {
	if len(sexp.List) != 3 {
		return nil, errors.Errorf("line %d: expected (assign (<variable> ...) <expression>)", sexp.Line)
	}
	variables, err := readNames(sexp.List[1])
	if err != nil {
		return nil, errors.Wrap(err, "assign")
	}
	if len(variables) == 0 {
		return nil, errors.Errorf("line %d: assign has no variables", sexp.Line)
	}
	value, err := readExpression(sexp.List[2])
	if err != nil {
		return nil, errors.Wrap(err, "assign")
	}
	return &ir.AssignmentT{Variables: variables, Value: value}, nil
}

func readIf(sexp *util.SExpT) (ir.StatementT, error) {
	if len(sexp.List) < 2 {
		return nil, errors.Errorf("line %d: expected (if <expression> ...)", sexp.Line)
	}
	condition, err := readExpression(sexp.List[1])
	if err != nil {
		return nil, errors.Wrap(err, "if")
	}
	body, err := readStatements(sexp.List[2:])
	if err != nil {
		return nil, err
	}
	return &ir.IfT{Condition: condition, Body: body}, nil
}

func readFor(sexp *util.SExpT) (ir.StatementT, error) {
	if len(sexp.List) < 4 || sexp.List[1].Kind != util.SExpList || sexp.List[3].Kind != util.SExpList {
		return nil, errors.Errorf("line %d: expected (for (<statement> ...) <expression> (<statement> ...) ...)",
			sexp.Line)
	}
	pre, err := readStatements(sexp.List[1].List)
	if err != nil {
		return nil, errors.Wrap(err, "for initializer")
	}
	condition, err := readExpression(sexp.List[2])
	if err != nil {
		return nil, errors.Wrap(err, "for condition")
	}
	post, err := readStatements(sexp.List[3].List)
	if err != nil {
		return nil, errors.Wrap(err, "for post")
	}
	body, err := readStatements(sexp.List[4:])
	if err != nil {
		return nil, err
	}
	return &ir.ForLoopT{Pre: pre, Condition: condition, Post: post, Body: body}, nil
}

//----------------------------------------------------------------
// Expressions

func readExpression(sexp *util.SExpT) (ir.ExpressionT, error) {
	switch sexp.Kind {
	case util.SExpInt:
		value := constant.MakeFromLiteral(sexp.Text, token.INT, 0)
		if value.Kind() != constant.Int {
			return nil, errors.Errorf("line %d: bad number '%s'", sexp.Line, sexp.Text)
		}
		if strings.HasPrefix(sexp.Text, "0x") || strings.HasPrefix(sexp.Text, "0X") {
			return ir.MakeHexNumber(value), nil
		}
		return ir.MakeNumber(value), nil
	case util.SExpString:
		return ir.MakeString(sexp.Text), nil
	case util.SExpSymbol:
		if _, reserved := statementReaders[sexp.Text]; reserved {
			return nil, errors.Errorf("line %d: '%s' is a keyword", sexp.Line, sexp.Text)
		}
		return ir.MakeIdentifier(sexp.Text), nil
	}
	return readCall(sexp)
}

func readCall(sexp *util.SExpT) (*ir.FunctionCallT, error) {
	if len(sexp.List) == 0 {
		return nil, errors.Errorf("line %d: empty call", sexp.Line)
	}
	name, err := readName(sexp.List[0])
	if err != nil {
		return nil, errors.Wrap(err, "callee")
	}
	call := ir.MakeCall(name)
	for _, arg := range sexp.List[1:] {
		value, err := readExpression(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "call to %s", name)
		}
		call.Arguments = append(call.Arguments, value)
	}
	return call, nil
}

func readName(sexp *util.SExpT) (string, error) {
	if sexp.Kind != util.SExpSymbol {
		return "", errors.Errorf("line %d: expected a name, got %s", sexp.Line, sexp)
	}
	if _, reserved := statementReaders[sexp.Text]; reserved {
		return "", errors.Errorf("line %d: '%s' is a keyword", sexp.Line, sexp.Text)
	}
	return sexp.Text, nil
}

func readNames(sexp *util.SExpT) ([]string, error) {
	if sexp.Kind != util.SExpList {
		return nil, errors.Errorf("line %d: expected a list of names, got %s", sexp.Line, sexp)
	}
	names := []string{}
	for _, elt := range sexp.List {
		name, err := readName(elt)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

// Pretty-printer for the IR.  The output is brace-and-indent text
// with one statement per line.

package ir

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

const ppIndent = 4

func PpObject(object *ObjectT) {
	FprintObject(os.Stdout, object)
}

func FprintObject(out io.Writer, object *ObjectT) {
	writer := MakePpWriter(out)
	fmt.Fprintf(writer, "object %q ", object.Name)
	ppBlock(object.Code, 0, writer)
	writer.Newline()
}

func ObjectString(object *ObjectT) string {
	buf := new(bytes.Buffer)
	FprintObject(buf, object)
	return buf.String()
}

func ppBlock(block *BlockT, indentTo int, writer *PpWriterT) {
	if len(block.Statements) == 0 {
		fmt.Fprintf(writer, "{ }")
		return
	}
	fmt.Fprintf(writer, "{")
	for _, statement := range block.Statements {
		writer.Newline()
		writer.IndentTo(indentTo + ppIndent)
		ppStatement(statement, indentTo+ppIndent, writer)
	}
	writer.Newline()
	writer.IndentTo(indentTo)
	fmt.Fprintf(writer, "}")
}

func ppStatement(rawStatement StatementT, indentTo int, writer *PpWriterT) {
	switch statement := rawStatement.(type) {
	case *BlockT:
		ppBlock(statement, indentTo, writer)
	case *FunctionDefinitionT:
		fmt.Fprintf(writer, "function %s(%s)", statement.Name, strings.Join(statement.Parameters, ", "))
		if 0 < len(statement.Returns) {
			fmt.Fprintf(writer, " -> %s", strings.Join(statement.Returns, ", "))
		}
		fmt.Fprintf(writer, " ")
		ppBlock(statement.Body, indentTo, writer)
	case *VariableDeclarationT:
		fmt.Fprintf(writer, "let %s", strings.Join(statement.Variables, ", "))
		if statement.Value != nil {
			fmt.Fprintf(writer, " := %s", statement.Value)
		}
	case *AssignmentT:
		fmt.Fprintf(writer, "%s := %s", strings.Join(statement.Variables, ", "), statement.Value)
	case *ExpressionStatementT:
		fmt.Fprintf(writer, "%s", statement.Expression)
	case *IfT:
		fmt.Fprintf(writer, "if %s ", statement.Condition)
		ppBlock(statement.Body, indentTo, writer)
	case *ForLoopT:
		fmt.Fprintf(writer, "for ")
		ppBlock(statement.Pre, indentTo, writer)
		fmt.Fprintf(writer, " %s ", statement.Condition)
		ppBlock(statement.Post, indentTo, writer)
		fmt.Fprintf(writer, " ")
		ppBlock(statement.Body, indentTo, writer)
	case *BreakT:
		fmt.Fprintf(writer, "break")
	case *ContinueT:
		fmt.Fprintf(writer, "continue")
	case *LeaveT:
		fmt.Fprintf(writer, "leave")
	default:
		panic(fmt.Sprintf("ppStatement got funny statement %+v", statement))
	}
}

//----------------------------------------------------------------
// An io.Writer that keeps track of the current column.

type PpWriterT struct {
	writer io.Writer
	Column int
}

func MakePpWriter(writer io.Writer) *PpWriterT {
	return &PpWriterT{writer: writer, Column: 0}
}

func (writer *PpWriterT) Write(p []byte) (n int, err error) {
	for _, b := range p {
		if b == '\n' {
			writer.Column = 0
		} else {
			writer.Column += 1
		}
	}
	return writer.writer.Write(p)
}

func (writer *PpWriterT) Newline() {
	writer.Column = 0
	writer.writer.Write([]byte("\n"))
}

func (writer *PpWriterT) IndentTo(column int) {
	if writer.Column == column {
		return
	}
	count := column
	if writer.Column < column {
		count -= writer.Column
	} else {
		writer.Newline()
	}
	writer.writer.Write([]byte(strings.Repeat(" ", count)))
	writer.Column += count
}

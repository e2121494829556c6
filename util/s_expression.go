// Copyright 2024 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

// Very basic S-expression parser.  Integers are kept as text so that
// the caller can decide how wide they are.  A ';' starts a comment
// that runs to the end of the line.

package util

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

type SExpKindT int

const (
	SExpInt SExpKindT = iota
	SExpSymbol
	SExpString
	SExpList
)

type SExpT struct {
	Kind SExpKindT
	Text string // integer digits, symbol name, or unquoted string
	List []*SExpT
	Line int
}

func (sexp *SExpT) String() string {
	switch sexp.Kind {
	case SExpInt, SExpSymbol:
		return sexp.Text
	case SExpString:
		return strconv.Quote(sexp.Text)
	case SExpList:
		if len(sexp.List) == 0 {
			return "()"
		}
		result := "(" + sexp.List[0].String()
		for _, s := range sexp.List[1:] {
			result += " " + s.String()
		}
		return result + ")"
	}
	panic("bad S-expression")
}

func (sexp *SExpT) IsSymbol(name string) bool {
	return sexp.Kind == SExpSymbol && sexp.Text == name
}

// Parses the one S-expression in 'data'.  Anything other than
// whitespace and comments after it is an error.

func ParseSExp(data string) (*SExpT, error) {
	tokens := &tokenizerT{reader: bufio.NewReader(strings.NewReader(data)), line: 1}
	result, err := parseSExp(tokens)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, errors.New("empty S-expression")
	}
	next, err := tokens.next()
	if err != nil {
		return nil, err
	}
	if next.kind != tokenEOF {
		return nil, errors.Errorf("line %d: unexpected text after S-expression", next.line)
	}
	return result, nil
}

func parseSExp(tokens *tokenizerT) (*SExpT, error) {
	tok, err := tokens.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenEOF:
		return nil, nil
	case tokenClose:
		return nil, errors.Errorf("line %d: unexpected ')'", tok.line)
	case tokenOpen:
		list := &SExpT{Kind: SExpList, Line: tok.line}
		for {
			tok, err := tokens.peek()
			if err != nil {
				return nil, err
			}
			switch tok.kind {
			case tokenEOF:
				return nil, errors.Errorf("line %d: unterminated list", list.Line)
			case tokenClose:
				tokens.next()
				return list, nil
			}
			elt, err := parseSExp(tokens)
			if err != nil {
				return nil, err
			}
			list.List = append(list.List, elt)
		}
	case tokenInt:
		return &SExpT{Kind: SExpInt, Text: tok.text, Line: tok.line}, nil
	case tokenString:
		return &SExpT{Kind: SExpString, Text: tok.text, Line: tok.line}, nil
	}
	return &SExpT{Kind: SExpSymbol, Text: tok.text, Line: tok.line}, nil
}

//----------------------------------------------------------------
// Tokens

type tokenKindT int

const (
	tokenEOF tokenKindT = iota
	tokenOpen
	tokenClose
	tokenInt
	tokenSymbol
	tokenString
)

type tokenT struct {
	kind tokenKindT
	text string
	line int
}

type tokenizerT struct {
	reader *bufio.Reader
	line   int
	peeked *tokenT
}

func (tokens *tokenizerT) peek() (*tokenT, error) {
	if tokens.peeked == nil {
		tok, err := tokens.read()
		if err != nil {
			return nil, err
		}
		tokens.peeked = tok
	}
	return tokens.peeked, nil
}

func (tokens *tokenizerT) next() (*tokenT, error) {
	if tokens.peeked != nil {
		tok := tokens.peeked
		tokens.peeked = nil
		return tok, nil
	}
	return tokens.read()
}

func (tokens *tokenizerT) read() (*tokenT, error) {
	reader := tokens.reader
	for {
		c, _, err := reader.ReadRune()
		if err == io.EOF {
			return &tokenT{kind: tokenEOF, line: tokens.line}, nil
		} else if err != nil {
			return nil, errors.Wrap(err, "read S-expression")
		}
		switch {
		case c == '\n':
			tokens.line += 1
		case unicode.IsSpace(c):
		case c == ';':
			if _, err := reader.ReadString('\n'); err != nil && err != io.EOF {
				return nil, errors.Wrap(err, "read S-expression comment")
			}
			tokens.line += 1
		case c == '(':
			return &tokenT{kind: tokenOpen, line: tokens.line}, nil
		case c == ')':
			return &tokenT{kind: tokenClose, line: tokens.line}, nil
		case c == '"':
			return tokens.readString()
		case unicode.IsDigit(c):
			return tokens.readWhile(c, tokenInt, isIntConstituent)
		case isSymbolConstituent(c):
			return tokens.readWhile(c, tokenSymbol, isSymbolConstituent)
		default:
			return nil, errors.Errorf("line %d: unrecognized S-expression character %s",
				tokens.line, strconv.QuoteRune(c))
		}
	}
}

func (tokens *tokenizerT) readWhile(first rune, kind tokenKindT, constituent func(rune) bool) (*tokenT, error) {
	var contents strings.Builder
	contents.WriteRune(first)
	for {
		c, _, err := tokens.reader.ReadRune()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Wrap(err, "read S-expression")
		}
		if !constituent(c) {
			tokens.reader.UnreadRune()
			break
		}
		contents.WriteRune(c)
	}
	return &tokenT{kind: kind, text: contents.String(), line: tokens.line}, nil
}

func (tokens *tokenizerT) readString() (*tokenT, error) {
	var contents strings.Builder
	line := tokens.line
	for {
		c, _, err := tokens.reader.ReadRune()
		if err == io.EOF {
			return nil, errors.Errorf("line %d: unterminated string", line)
		} else if err != nil {
			return nil, errors.Wrap(err, "read S-expression string")
		}
		switch c {
		case '"':
			return &tokenT{kind: tokenString, text: contents.String(), line: line}, nil
		case '\\':
			escaped, _, err := tokens.reader.ReadRune()
			if err != nil {
				return nil, errors.Errorf("line %d: unterminated string", line)
			}
			contents.WriteRune(escaped)
		case '\n':
			tokens.line += 1
			contents.WriteRune(c)
		default:
			contents.WriteRune(c)
		}
	}
}

// Hex digits and the 'x' of '0x' are accepted here; the reader
// checks the actual syntax.

func isIntConstituent(r rune) bool {
	return unicode.IsDigit(r) || r == 'x' || r == 'X' ||
		('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}

func isSymbolConstituent(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) ||
		strings.ContainsRune(":_*&.$-<>=!+", r)
}

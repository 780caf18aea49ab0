// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hdl implements the lexer and parser for pin specifications
// ("a, b, out[4]") and connection strings ("in=d, out=q[0..3]").
//
package hdl

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Type is a token type.
//
type Type int

// Tokens
const (
	EOF Type = iota
	Raw
	Ident
	BracketOpen
	BracketClose
	Comma
	Int
	Range
	Equal
)

var typeNames = [...]string{
	EOF:          "end of input",
	Raw:          "character",
	Ident:        "identifier",
	BracketOpen:  "'['",
	BracketClose: "']'",
	Comma:        "','",
	Int:          "integer",
	Range:        "'..'",
	Equal:        "'='",
}

// Item is a lexed token.
//
type Item struct {
	Type  Type
	Pos   int
	Value interface{}
}

func (i Item) String() string {
	switch i.Type {
	case Ident:
		return "identifier " + strconv.Quote(i.Value.(string))
	case Int:
		return "integer " + strconv.Itoa(i.Value.(int))
	case Raw:
		return "character " + strconv.QuoteRune(i.Value.(rune))
	}
	return typeNames[i.Type]
}

// Lexer splits its input into Items.
//
type Lexer struct {
	in  string
	pos int
	eof bool
}

// NewLexer returns a new lexer for i/o specs and connection descriptions.
//
func NewLexer(input string) *Lexer {
	return &Lexer{in: input}
}

func (l *Lexer) next() (rune, int) {
	if l.pos >= len(l.in) {
		return -1, 0
	}
	return utf8.DecodeRuneInString(l.in[l.pos:])
}

// Lex returns the next item. Once EOF or a Raw item has been returned, Lex
// only returns EOF.
//
func (l *Lexer) Lex() Item {
	if l.eof {
		return Item{Type: EOF, Pos: len(l.in)}
	}
	r, sz := l.next()
	for r >= 0 && unicode.IsSpace(r) {
		l.pos += sz
		r, sz = l.next()
	}
	start := l.pos
	switch {
	case r < 0:
		l.eof = true
		return Item{Type: EOF, Pos: start}
	case unicode.IsLetter(r) || r == '_':
		for r >= 0 && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			l.pos += sz
			r, sz = l.next()
		}
		return Item{Ident, start, l.in[start:l.pos]}
	case '0' <= r && r <= '9':
		n := 0
		for '0' <= r && r <= '9' {
			n = n*10 + int(r-'0')
			l.pos += sz
			r, sz = l.next()
		}
		return Item{Int, start, n}
	}
	l.pos += sz
	switch r {
	case '[':
		return Item{BracketOpen, start, "["}
	case ']':
		return Item{BracketClose, start, "]"}
	case ',':
		return Item{Comma, start, ","}
	case '=':
		return Item{Equal, start, "="}
	case '.':
		if n, nsz := l.next(); n == '.' {
			l.pos += nsz
			return Item{Range, start, ".."}
		}
	}
	l.eof = true
	return Item{Raw, start, r}
}

// Pin is a simple pin name
//
type Pin struct {
	Name string
	Pos  int
}

// PinIndex is an indexed pin p[index]
//
type PinIndex struct {
	Pin
	Index int
}

// PinRange is a pin range p[start..end]
//
type PinRange struct {
	Pin
	Start int
	End   int
}

// PinAssignment is a part pin to chip pin assignment. pp=pc
//
type PinAssignment struct {
	LHS interface{}
	RHS interface{}
}

// Parser is a simplistic parser
//
type Parser struct {
	Input string
	l     *Lexer
	i     Item
	state int
}

const (
	stateInit = iota
	stateStarted
	stateDone = -1
)

// Next returns the next item in the input stream, or nil at the end of input.
// It only recognizes pin names followed by an index or range and separated by
// commas. allowConns specifies if connection config strings are supported.
//
func (p *Parser) Next(allowConns bool) (interface{}, error) {
	if p.state == stateDone {
		return nil, nil
	}
	if p.l == nil {
		p.l = NewLexer(p.Input)
	}

	p.i = p.l.Lex()
	if p.state == stateInit && p.i.Type == EOF {
		p.state = stateDone
		return nil, nil
	}
	p.state = stateStarted

	pin, err := p.getPin()
	if err != nil {
		p.state = stateDone
		return nil, err
	}
	switch p.i.Type {
	case EOF:
		p.state = stateDone
		fallthrough
	case Comma:
		return pin, nil
	case Equal:
		if allowConns {
			break
		}
		fallthrough
	default:
		p.state = stateDone
		return nil, parseError(p.Input, p.i.Pos, "unexpected "+p.i.String())
	}

	p.i = p.l.Lex()
	pin2, err := p.getPin()
	if err != nil {
		p.state = stateDone
		return nil, err
	}
	switch p.i.Type {
	case EOF:
		p.state = stateDone
		fallthrough
	case Comma:
		return PinAssignment{pin, pin2}, nil
	}

	p.state = stateDone
	return nil, parseError(p.Input, p.i.Pos, "unexpected "+p.i.String())
}

func (p *Parser) getPin() (interface{}, error) {
	if p.i.Type != Ident {
		return nil, parseError(p.Input, p.i.Pos, "expected pin name")
	}
	pin := Pin{p.i.Value.(string), p.i.Pos}
	// after ident, expect ',', '[', '=' or EOF
	p.i = p.l.Lex()
	if p.i.Type != BracketOpen {
		return pin, nil
	}
	p.i = p.l.Lex()
	if p.i.Type != Int {
		return nil, parseError(p.Input, p.i.Pos, "integer value expected after '['")
	}
	start := p.i.Value.(int)
	end := -1
	p.i = p.l.Lex()
	if p.i.Type == Range {
		p.i = p.l.Lex()
		if p.i.Type != Int {
			return nil, parseError(p.Input, p.i.Pos, "integer value expected after '..'")
		}
		end = p.i.Value.(int)
		p.i = p.l.Lex()
	}
	if p.i.Type != BracketClose {
		return nil, parseError(p.Input, p.i.Pos, "closing ']' expected after index or range")
	}
	p.i = p.l.Lex()
	if end >= 0 {
		return PinRange{pin, start, end}, nil
	}
	return PinIndex{pin, start}, nil
}

func parseError(in string, pos int, msg string) error {
	return errors.Errorf("in %q at pos %d: %s", in, pos+1, msg)
}

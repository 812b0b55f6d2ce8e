// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inspect

import (
	"errors"
	"strconv"
)

var errExprParse = errors.New("expression syntax error")

type tokenType byte

const (
	tokenNil tokenType = iota
	tokenIdentifier
	tokenNumber
	tokenOp
	tokenLParen
	tokenRParen
)

type token struct {
	Type  tokenType
	Value any // nil, string, int64 or *op, depending on Type
}

type opType byte

const (
	opNil opType = iota
	opMultiply
	opDivide
	opModulo
	opAdd
	opSubtract
	opUnaryMinus
	opUnaryPlus
)

type op struct {
	Type       opType
	Precedence byte
	Args       byte
	UnaryOp    opType
	Eval       func(a, b int64) int64
}

var ops = []op{
	{opNil, 0, 2, opNil, nil},
	{opMultiply, 3, 2, opNil, func(a, b int64) int64 { return a * b }},
	{opDivide, 3, 2, opNil, func(a, b int64) int64 { return a / b }},
	{opModulo, 3, 2, opNil, func(a, b int64) int64 { return a % b }},
	{opAdd, 2, 2, opUnaryPlus, func(a, b int64) int64 { return a + b }},
	{opSubtract, 2, 2, opUnaryMinus, func(a, b int64) int64 { return a - b }},
	{opUnaryMinus, 4, 1, opNil, func(a, b int64) int64 { return -a }},
	{opUnaryPlus, 4, 1, opNil, func(a, b int64) int64 { return a }},
}

// resolver resolves a bare identifier (a symbol name) to its address.
type resolver interface {
	resolveIdentifier(s string) (int64, error)
}

// exprParser evaluates small integer expressions over decimal literals,
// +, -, *, /, %, parentheses, and symbol names, using the shunting-yard
// algorithm.
type exprParser struct {
	output        tokenStack
	operatorStack tokenStack
	prevTokenType tokenType
}

func newExprParser() *exprParser {
	return &exprParser{}
}

func (p *exprParser) reset() {
	p.output.reset()
	p.operatorStack.reset()
	p.prevTokenType = tokenNil
}

func (p *exprParser) Parse(expr string, r resolver) (int64, error) {
	defer p.reset()

	t := tstring(expr)
	for {
		tok, remain, err := p.parseToken(t)
		if err != nil {
			return 0, err
		}
		if tok.Type == tokenNil {
			break
		}
		t = remain

		switch tok.Type {
		case tokenNumber:
			p.output.push(tok)

		case tokenIdentifier:
			v, err := r.resolveIdentifier(tok.Value.(string))
			if err != nil {
				return 0, err
			}
			tok.Type, tok.Value = tokenNumber, v
			p.output.push(tok)

		case tokenLParen:
			p.operatorStack.push(tok)

		case tokenRParen:
			foundLParen := false
			for !p.operatorStack.isEmpty() {
				tmp := p.operatorStack.pop()
				if tmp.Type == tokenLParen {
					foundLParen = true
					break
				}
				p.output.push(tmp)
			}
			if !foundLParen {
				return 0, errExprParse
			}

		case tokenOp:
			p.checkForUnaryOp(&tok)
			for p.isCollapsible(&tok) {
				p.output.push(p.operatorStack.pop())
			}
			p.operatorStack.push(tok)
		}

		p.prevTokenType = tok.Type
	}

	for !p.operatorStack.isEmpty() {
		tok := p.operatorStack.pop()
		if tok.Type == tokenLParen {
			return 0, errExprParse
		}
		p.output.push(tok)
	}

	result, err := p.evalOutput()
	if err != nil {
		return 0, err
	}
	if !p.output.isEmpty() {
		return 0, errExprParse
	}
	return result.Value.(int64), nil
}

func (p *exprParser) parseToken(t tstring) (tok token, remain tstring, err error) {
	t = t.consumeWhitespace()
	if len(t) == 0 {
		return token{}, t, nil
	}

	switch c := t[0]; {
	case c >= '0' && c <= '9':
		return p.parseNumber(t)
	case isIdentStart(c):
		return p.parseIdentifier(t)
	case c == '(':
		return token{tokenLParen, nil}, t.consume(1), nil
	case c == ')':
		return token{tokenRParen, nil}, t.consume(1), nil
	case c == '+':
		return token{tokenOp, &ops[opAdd]}, t.consume(1), nil
	case c == '-':
		return token{tokenOp, &ops[opSubtract]}, t.consume(1), nil
	case c == '*':
		return token{tokenOp, &ops[opMultiply]}, t.consume(1), nil
	case c == '/':
		return token{tokenOp, &ops[opDivide]}, t.consume(1), nil
	case c == '%':
		return token{tokenOp, &ops[opModulo]}, t.consume(1), nil
	default:
		return token{}, t, errExprParse
	}
}

func (p *exprParser) parseNumber(t tstring) (tok token, remain tstring, err error) {
	num, remain := t.consumeWhile(decimal)
	v, err := strconv.ParseInt(string(num), 10, 64)
	if err != nil {
		return token{}, t, errExprParse
	}
	return token{tokenNumber, v}, remain, nil
}

func (p *exprParser) parseIdentifier(t tstring) (tok token, remain tstring, err error) {
	id, remain := t.consumeWhile(identChar)
	return token{tokenIdentifier, string(id)}, remain, nil
}

func (p *exprParser) evalOutput() (token, error) {
	if p.output.isEmpty() {
		return token{}, errExprParse
	}
	tok := p.output.pop()
	if tok.Type == tokenNumber {
		return tok, nil
	}
	if tok.Type != tokenOp {
		return token{}, errExprParse
	}

	o := tok.Value.(*op)
	if o.Args == 1 {
		child, err := p.evalOutput()
		if err != nil {
			return token{}, err
		}
		tok.Type, tok.Value = tokenNumber, o.Eval(child.Value.(int64), 0)
		return tok, nil
	}

	child2, err := p.evalOutput()
	if err != nil {
		return token{}, err
	}
	child1, err := p.evalOutput()
	if err != nil {
		return token{}, err
	}
	tok.Type, tok.Value = tokenNumber, o.Eval(child1.Value.(int64), child2.Value.(int64))
	return tok, nil
}

func (p *exprParser) checkForUnaryOp(tok *token) {
	o := tok.Value.(*op)
	if o.UnaryOp == opNil {
		return
	}
	if p.prevTokenType == tokenOp || p.prevTokenType == tokenLParen || p.prevTokenType == tokenNil {
		tok.Value = &ops[o.UnaryOp]
	}
}

func (p *exprParser) isCollapsible(opToken *token) bool {
	if p.operatorStack.isEmpty() {
		return false
	}
	top := p.operatorStack.peek()
	if top.Type != tokenOp {
		return false
	}
	return top.Value.(*op).Precedence >= opToken.Value.(*op).Precedence
}

type tokenStack struct {
	stack []token
}

func (s *tokenStack) reset()         { s.stack = s.stack[:0] }
func (s *tokenStack) isEmpty() bool  { return len(s.stack) == 0 }
func (s *tokenStack) peek() *token   { return &s.stack[len(s.stack)-1] }
func (s *tokenStack) push(t token)   { s.stack = append(s.stack, t) }
func (s *tokenStack) pop() token {
	top := len(s.stack) - 1
	t := s.stack[top]
	s.stack = s.stack[:top]
	return t
}

type tstring string

func (t tstring) consume(n int) tstring { return t[n:] }

func (t tstring) consumeWhitespace() tstring {
	i := 0
	for i < len(t) && (t[i] == ' ' || t[i] == '\t') {
		i++
	}
	return t[i:]
}

func (t tstring) consumeWhile(fn func(c byte) bool) (consumed, remain tstring) {
	i := 0
	for i < len(t) && fn(t[i]) {
		i++
	}
	return t[:i], t[i:]
}

func decimal(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func identChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

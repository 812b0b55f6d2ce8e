// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "strings"

// splitOperands splits a comma-separated operand list, diagnosing
// leading, trailing, or doubled commas. It returns the trimmed operand
// texts in order.
func splitOperands(lineNum int, rest fstring, a *Assembler, what string) ([]string, bool) {
	s := strings.TrimSpace(rest.String())
	if s == "" {
		a.addDiag(lineNum, "error! "+what+" requires at least one value")
		return nil, false
	}
	if s[0] == ',' || s[len(s)-1] == ',' || strings.Contains(s, ",,") {
		a.addDiag(lineNum, "error! invalid "+what+" list")
		return nil, false
	}
	parts := strings.Split(s, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
		if out[i] == "" {
			a.addDiag(lineNum, "error! invalid "+what+" list")
			return nil, false
		}
	}
	return out, true
}

func (a *Assembler) handleData(lineNum int, rest fstring) {
	vals, ok := splitOperands(lineNum, rest, a, "data directive")
	if !ok {
		return
	}
	for _, v := range vals {
		n, err := parseInt(v)
		if err != nil {
			a.addDiag(lineNum, "error! invalid data value: "+v)
			return
		}
		a.data = append(a.data, DataWord{Value: n})
		a.dc++
	}
}

func (a *Assembler) handleString(lineNum int, rest fstring) {
	s := strings.TrimSpace(rest.String())
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		a.addDiag(lineNum, "error! string must start and end with quotes")
		return
	}
	body := s[1 : len(s)-1]
	for i := 0; i < len(body); i++ {
		if body[i] < ' ' || body[i] > '~' {
			a.addDiag(lineNum, "error! illegal character in string")
			return
		}
	}
	for i := 0; i < len(body); i++ {
		a.data = append(a.data, DataWord{Value: int(body[i])})
		a.dc++
	}
	a.data = append(a.data, DataWord{Value: 0})
	a.dc++
}

// parseMatrixHeader parses the leading "[rows][cols]" of a .mat
// directive (optional whitespace around the integers permitted) and
// returns the remaining text.
func parseMatrixHeader(rest fstring) (rows, cols int, tail fstring, ok bool) {
	rows, rest, ok = consumeBracketedInt(rest)
	if !ok {
		return 0, 0, rest, false
	}
	cols, rest, ok = consumeBracketedInt(rest)
	if !ok {
		return 0, 0, rest, false
	}
	return rows, cols, rest, true
}

func consumeBracketedInt(l fstring) (int, fstring, bool) {
	_, l = l.consumeWhile(whitespace)
	if !l.startsWithChar('[') {
		return 0, l, false
	}
	l = l.consume(1)
	_, l = l.consumeWhile(whitespace)
	digits, l := l.consumeWhile(decimal)
	if digits.isEmpty() {
		return 0, l, false
	}
	_, l = l.consumeWhile(whitespace)
	if !l.startsWithChar(']') {
		return 0, l, false
	}
	l = l.consume(1)
	n, err := parseInt(digits.String())
	if err != nil {
		return 0, l, false
	}
	return n, l, true
}

func (a *Assembler) handleMat(lineNum int, rest fstring) {
	rows, cols, tail, ok := parseMatrixHeader(rest)
	if !ok {
		a.addDiag(lineNum, "error! ill-defined matrix")
		return
	}
	if rows <= 0 || cols <= 0 {
		a.addDiag(lineNum, "error! ill-defined matrix")
		return
	}
	size := rows * cols

	initText := strings.TrimSpace(tail.String())
	if initText == "" {
		for i := 0; i < size; i++ {
			a.data = append(a.data, DataWord{Value: 0})
			a.dc++
		}
		return
	}

	vals, ok := splitOperands(lineNum, tail, a, "matrix initializer")
	if !ok {
		return
	}
	if len(vals) > size {
		a.addDiag(lineNum, "error! more values than specified")
		return
	}
	for _, v := range vals {
		n, err := parseInt(v)
		if err != nil {
			a.addDiag(lineNum, "error! invalid matrix value: "+v)
			return
		}
		a.data = append(a.data, DataWord{Value: n})
		a.dc++
	}
	// Redesign flag: zero-pad strictly below rows*cols, never filling
	// one cell beyond the matrix (the original overshoots by one).
	for i := len(vals); i < size; i++ {
		a.data = append(a.data, DataWord{Value: 0})
		a.dc++
	}
}

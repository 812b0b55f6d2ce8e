// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "strconv"

const (
	minWordValue = -512
	maxWordValue = 511
)

// trim strips leading and trailing whitespace from line and discards
// everything from the first unquoted ';' onward.
func trim(line string) fstring {
	l := newFstring(0, line).stripTrailingComment()
	_, l = l.consumeWhitespace2()
	return l
}

// consumeWhitespace2 trims both leading and trailing whitespace, returning
// the trimmed-off prefix and the remaining trimmed fstring.
func (l fstring) consumeWhitespace2() (prefix, remain fstring) {
	prefix, remain = l.consumeWhile(whitespace)
	for len(remain.str) > 0 && whitespace(remain.str[len(remain.str)-1]) {
		remain.str = remain.str[:len(remain.str)-1]
	}
	return
}

// nextToken consumes leading whitespace and returns the next run of
// non-whitespace, non-comma, non-colon characters. A ':' directly after
// the token is consumed (it is not included in tok) and reported via
// isLabel.
func nextToken(l fstring) (tok fstring, isLabel bool, remain fstring) {
	_, l = l.consumeWhile(whitespace)
	tok, remain = l.consumeWhile(wordChar)
	if remain.startsWithChar(':') {
		remain = remain.consume(1)
		isLabel = true
	}
	return tok, isLabel, remain
}

// isLabelToken reports whether tok ends with ':'. Tokens returned by
// nextToken never do; nextToken reports a label colon through isLabel.
func isLabelToken(tok string) bool {
	return len(tok) > 0 && tok[len(tok)-1] == ':'
}

// parseInt strictly parses tok as a decimal integer and checks that it
// fits in the machine's signed 10-bit word range.
func parseInt(tok string) (int, error) {
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, errInvalidNumber
	}
	if n < minWordValue || n > maxWordValue {
		return 0, errValueOutOfRange
	}
	return n, nil
}

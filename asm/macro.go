// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"bufio"
	"io"
	"strings"
)

const maxLineLength = 80

// A macroDef is a name plus an ordered sequence of verbatim body lines,
// collected by sub-pass A of expandMacros.
type macroDef struct {
	name string
	body []string
}

// expandMacros performs macro definition collection and substitution in
// two sub-passes. It returns the expanded source as a slice of lines
// (original formatting preserved for lines that aren't macro
// invocations) along with any diagnostics. Expansion (sub-pass B) only
// runs if sub-pass A recorded zero diagnostics.
func expandMacros(r io.Reader) (expanded []string, macroNames map[string]bool, diags []Diagnostic) {
	var rawLines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		rawLines = append(rawLines, scanner.Text())
	}

	macros := make(map[string]*macroDef)
	var order []string

	// Sub-pass A: collect macro definitions.
	inMacro := false
	var cur *macroDef
	for i, raw := range rawLines {
		if len(raw) > maxLineLength {
			diags = append(diags, Diagnostic{i, "error! line too long"})
			continue
		}
		line := trim(raw)
		if line.isEmpty() {
			continue
		}

		if inMacro {
			tok, _, rest := nextToken(line)
			if tok.String() == "mcroend" {
				if rem := rest.consumeWhitespace(); !rem.isEmpty() {
					diags = append(diags, Diagnostic{i, "error! unexpected text after mcroend"})
				}
				inMacro = false
				cur = nil
				continue
			}
			cur.body = append(cur.body, raw)
			continue
		}

		tok, isLabel, remain := nextToken(line)
		head := tok
		if isLabel {
			head, _, remain = nextToken(remain)
		}
		if head.String() != "mcro" {
			continue
		}

		nameTok, _, rest := nextToken(remain)
		name := nameTok.String()
		switch {
		case name == "":
			diags = append(diags, Diagnostic{i, "error! missing macro name"})
		case !validMacroName(name):
			diags = append(diags, Diagnostic{i, "error! invalid macro name"})
		case reservedWords[name]:
			diags = append(diags, Diagnostic{i, "error! macro name is a reserved word"})
		case macros[name] != nil:
			diags = append(diags, Diagnostic{i, "error! macro already defined"})
		case !rest.isEmpty():
			diags = append(diags, Diagnostic{i, "error! unexpected text after macro name"})
		default:
			cur = &macroDef{name: name}
			macros[name] = cur
			order = append(order, name)
			inMacro = true
		}
	}
	if inMacro {
		diags = append(diags, Diagnostic{len(rawLines) - 1, "error! unterminated macro definition"})
	}
	if len(diags) > 0 {
		return nil, nil, diags
	}

	// Sub-pass B: re-emit, substituting invocations.
	inMacro = false
	for i, raw := range rawLines {
		line := trim(raw)
		if line.isEmpty() {
			expanded = append(expanded, raw)
			continue
		}

		tok, isLabel, remain := nextToken(line)
		var label string
		head := tok
		if isLabel {
			label = tok.String()
			head, _, remain = nextToken(remain)
		}

		if inMacro {
			if head.String() == "mcroend" {
				inMacro = false
			}
			continue
		}
		if head.String() == "mcro" {
			inMacro = true
			continue
		}

		if m, ok := macros[head.String()]; ok {
			if rem := remain.consumeWhitespace(); !rem.isEmpty() {
				diags = append(diags, Diagnostic{i, "error! macro invocation takes no operands"})
				continue
			}
			for j, bodyLine := range m.body {
				if j == 0 && label != "" {
					expanded = append(expanded, label+":\t"+strings.TrimLeft(bodyLine, " \t"))
				} else {
					expanded = append(expanded, bodyLine)
				}
			}
			continue
		}

		expanded = append(expanded, raw)
	}
	if len(diags) > 0 {
		return nil, nil, diags
	}

	macroNames = make(map[string]bool, len(order))
	for _, name := range order {
		macroNames[name] = true
	}
	return expanded, macroNames, nil
}

func validMacroName(name string) bool {
	if name == "" || len(name) > 30 || !labelStartChar(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !labelChar(name[i]) {
			return false
		}
	}
	return true
}

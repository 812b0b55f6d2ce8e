// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "strings"

// firstPass walks every expanded-source line once, classifying it,
// validating its syntax, and appending to the instruction/data image
// and symbol table.
func (a *Assembler) firstPass() {
	for lineNum, raw := range a.lines {
		line := trim(raw)
		if line.isEmpty() {
			continue
		}
		a.processLine(lineNum, line)
	}
}

func (a *Assembler) processLine(lineNum int, line fstring) {
	tok, isLabel, remain := nextToken(line)

	var label string
	head := tok
	if isLabel {
		if remain.isEmpty() {
			a.addDiag(lineNum, "error! missing command after label")
			return
		}
		if !remain.startsWith(whitespace) {
			a.addDiag(lineNum, "error! space or tab required after label")
			return
		}
		label = strings.TrimSuffix(tok.String(), ":")
		head, _, remain = nextToken(remain)
	}

	cmd := head.String()
	if cmd == "" {
		a.addDiag(lineNum, "error! missing command")
		return
	}

	var kind Kind
	switch cmd {
	case ".data", ".string", ".mat":
		kind = KindData
	case ".entry", ".extern":
		kind = KindNone
	default:
		if _, ok := opcodes[cmd]; ok {
			kind = KindCode
		} else {
			a.addDiag(lineNum, "error! unrecognized command "+cmd)
			return
		}
	}

	if label != "" && cmd != ".entry" && cmd != ".extern" {
		if !a.defineLabel(lineNum, label, kind) {
			return
		}
	} else if label != "" {
		// .entry/.extern lines may carry a label syntactically but the
		// original attaches no meaning to it; validate it like any
		// other label so garbage still gets diagnosed, but don't
		// register it.
		a.validateLabelSyntax(lineNum, label)
	}

	switch cmd {
	case ".data":
		a.handleData(lineNum, remain)
	case ".string":
		a.handleString(lineNum, remain)
	case ".mat":
		a.handleMat(lineNum, remain)
	case ".entry":
		a.handleEntry(lineNum, remain)
	case ".extern":
		a.handleExtern(lineNum, remain)
	default:
		a.handleInstruction(lineNum, cmd, remain)
	}
}

// validateLabelSyntax checks the lexical rules of a label name without
// registering it in the symbol table.
func (a *Assembler) validateLabelSyntax(lineNum int, name string) bool {
	if name == "" {
		return true
	}
	if !alpha(name[0]) {
		a.addDiag(lineNum, "error! label must start with a letter")
		return false
	}
	if len(name) > 30 {
		a.addDiag(lineNum, "error! label name too long")
		return false
	}
	for i := 0; i < len(name); i++ {
		if !labelChar(name[i]) {
			a.addDiag(lineNum, "error! invalid character in label")
			return false
		}
	}
	if reservedWords[name] {
		a.addDiag(lineNum, "error! label is a reserved word")
		return false
	}
	if a.macroNames[name] {
		a.addDiag(lineNum, "error! label has the same name as a macro")
		return false
	}
	return true
}

// defineLabel validates name and, if valid, registers it in the symbol
// table with the given kind at the image's current counter. A bare
// entry placeholder for this name may be adopted rather than
// conflicting; any other existing definition is an error.
func (a *Assembler) defineLabel(lineNum int, name string, kind Kind) bool {
	if !a.validateLabelSyntax(lineNum, name) {
		return false
	}

	addr := a.ic
	if kind == KindData {
		addr = a.dc
	}

	if existing := a.syms.lookup(name); existing != nil {
		if existing.Attr == AttrEntry && existing.Kind == KindNone {
			existing.Kind = kind
			existing.Address = addr
			return true
		}
		a.addDiag(lineNum, "error! label already defined: "+name)
		return false
	}

	a.syms.add(&Symbol{Name: name, Kind: kind, Attr: AttrNone, Address: addr})
	return true
}

func (a *Assembler) handleEntry(lineNum int, rest fstring) {
	nameTok, _, tail := nextToken(rest)
	name := nameTok.String()
	if name == "" {
		a.addDiag(lineNum, "error! entry directive requires a label name")
		return
	}
	rem := tail.consumeWhitespace()
	if !rem.isEmpty() {
		a.addDiag(lineNum, "error! unexpected text after entry label")
		return
	}

	existing := a.syms.lookup(name)
	switch {
	case existing == nil:
		a.syms.add(&Symbol{Name: name, Kind: KindNone, Attr: AttrEntry, Address: 0})
	case existing.Attr == AttrExtern:
		a.addDiag(lineNum, "error! label already declared extern: "+name)
	case existing.Attr == AttrEntry:
		a.addDiag(lineNum, "error! label already declared entry: "+name)
	default:
		existing.Attr = AttrEntry
	}
}

func (a *Assembler) handleExtern(lineNum int, rest fstring) {
	nameTok, _, tail := nextToken(rest)
	name := nameTok.String()
	if name == "" {
		a.addDiag(lineNum, "error! extern directive requires a label name")
		return
	}
	rem := tail.consumeWhitespace()
	if !rem.isEmpty() {
		a.addDiag(lineNum, "error! unexpected text after extern label")
		return
	}
	if !a.validateLabelSyntax(lineNum, name) {
		return
	}

	existing := a.syms.lookup(name)
	if existing != nil {
		a.addDiag(lineNum, "error! label already defined: "+name)
		return
	}
	a.syms.add(&Symbol{Name: name, Kind: KindNone, Attr: AttrExtern, Address: 0})
}

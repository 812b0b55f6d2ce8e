// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

// MemoryStart is the absolute address of the first instruction word.
const MemoryStart = 100

// MaxImageWords is the hard cap on IC+DC; exceeding it is itself a
// diagnostic (see original_source/assembler.c).
const MaxImageWords = 156

// A Kind classifies what a Symbol's address refers to.
type Kind int

const (
	KindNone Kind = iota // no body: an Extern symbol, or an Entry-only placeholder
	KindCode
	KindData
)

// An Attr refines a Symbol beyond its Kind.
type Attr int

const (
	AttrNone Attr = iota
	AttrEntry
	AttrExtern
)

// A Symbol is a named label in the source, with its kind, attribute, and
// (pre- or post-fixup) address index.
type Symbol struct {
	Name    string
	Kind    Kind
	Attr    Attr
	Address int
}

// A SymbolTable owns every Symbol seen in a file, preserving definition
// order so the .ent/.ext writers and diagnostics stay stable.
type SymbolTable struct {
	order []string
	byName map[string]*Symbol
}

func newSymbolTable() *SymbolTable {
	return &SymbolTable{byName: make(map[string]*Symbol)}
}

func (t *SymbolTable) lookup(name string) *Symbol {
	return t.byName[name]
}

func (t *SymbolTable) add(s *Symbol) {
	t.byName[s.Name] = s
	t.order = append(t.order, s.Name)
}

func (t *SymbolTable) symbols() []*Symbol {
	syms := make([]*Symbol, len(t.order))
	for i, name := range t.order {
		syms[i] = t.byName[name]
	}
	return syms
}

// reservedWords names every token that can never be used as a label or
// macro name, per original_source/pre_assembler.c's RESERVED_WORDS.
var reservedWords = map[string]bool{
	"mov": true, "cmp": true, "add": true, "sub": true, "not": true,
	"clr": true, "lea": true, "inc": true, "dec": true, "jmp": true,
	"bne": true, "red": true, "prn": true, "jsr": true, "rts": true,
	"stop": true,
	"data": true, "string": true, "mat": true, "entry": true, "extern": true,
	".data": true, ".string": true, ".mat": true, ".entry": true, ".extern": true,
	"mcro": true, "mcroend": true,
	"r0": true, "r1": true, "r2": true, "r3": true, "r4": true, "r5": true,
	"r6": true, "r7": true,
}

// An AddrMode is the addressing mode of an instruction operand, encoded
// exactly as specified (DESIGN NOTES: do not rely on the original
// source's internal sentinel values).
type AddrMode int

const (
	ModeImmediate AddrMode = 0
	ModeDirect    AddrMode = 1
	ModeMatrix    AddrMode = 2
	ModeRegister  AddrMode = 3
	modeNone      AddrMode = -1
)

// opcodes maps mnemonic to opcode number, per original_source/instruction.h's
// enum command.
var opcodes = map[string]int{
	"mov": 0, "cmp": 1, "add": 2, "sub": 3, "lea": 4, "clr": 5, "not": 6,
	"inc": 7, "dec": 8, "jmp": 9, "bne": 10, "jsr": 11, "red": 12,
	"prn": 13, "rts": 14, "stop": 15,
}

// opcodeLegality records the allowed source/destination addressing
// modes per opcode, per spec Table 1. A nil set means the operand must
// be absent.
type legality struct {
	src, dst map[AddrMode]bool
}

func modeSet(modes ...AddrMode) map[AddrMode]bool {
	s := make(map[AddrMode]bool, len(modes))
	for _, m := range modes {
		s[m] = true
	}
	return s
}

var allModes = modeSet(ModeImmediate, ModeDirect, ModeMatrix, ModeRegister)
var dirMatReg = modeSet(ModeDirect, ModeMatrix, ModeRegister)
var dirMat = modeSet(ModeDirect, ModeMatrix)

var opcodeLegality = map[string]legality{
	"mov": {allModes, dirMatReg},
	"add": {allModes, dirMatReg},
	"sub": {allModes, dirMatReg},
	"cmp": {allModes, allModes},
	"lea": {dirMat, dirMatReg},
	"not": {nil, dirMatReg},
	"clr": {nil, dirMatReg},
	"inc": {nil, dirMatReg},
	"dec": {nil, dirMatReg},
	"jmp": {nil, dirMatReg},
	"bne": {nil, dirMatReg},
	"red": {nil, dirMatReg},
	"jsr": {nil, dirMatReg},
	"prn": {nil, allModes},
	"rts": {nil, nil},
	"stop": {nil, nil},
}

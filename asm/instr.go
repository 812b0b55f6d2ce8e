// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "strings"

// operand is one parsed instruction operand prior to word emission.
type operand struct {
	mode   AddrMode
	text   string // register token, label name, or immediate literal text
	reg1   int    // for Register and Matrix (first bracket register)
	reg2   int    // for Matrix (second bracket register)
	label  string // for Direct and Matrix
}

func classifyOperand(text string) operand {
	text = strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(text, "#"):
		return operand{mode: ModeImmediate, text: strings.TrimSpace(text[1:])}
	case isRegisterToken(text):
		return operand{mode: ModeRegister, text: text, reg1: registerNumber(text)}
	case strings.Contains(text, "[") && strings.Contains(text, "]"):
		label, r1, r2, ok := parseMatrixOperand(text)
		if !ok {
			return operand{mode: ModeMatrix, text: text, label: text}
		}
		return operand{mode: ModeMatrix, text: text, label: label, reg1: r1, reg2: r2}
	default:
		return operand{mode: ModeDirect, text: text, label: text}
	}
}

func isRegisterToken(tok string) bool {
	return len(tok) == 2 && tok[0] == 'r' && tok[1] >= '0' && tok[1] <= '7'
}

func registerNumber(tok string) int {
	return int(tok[1] - '0')
}

// parseMatrixOperand splits "LABEL[rX][rY]" into its label and two
// register indices.
func parseMatrixOperand(text string) (label string, reg1, reg2 int, ok bool) {
	i := strings.IndexByte(text, '[')
	if i < 0 {
		return "", 0, 0, false
	}
	label = text[:i]
	rest := text[i:]

	j := strings.IndexByte(rest, ']')
	if j < 0 || !isRegisterToken(rest[1:j]) {
		return "", 0, 0, false
	}
	reg1 = registerNumber(rest[1:j])
	rest = rest[j+1:]

	if len(rest) < 2 || rest[0] != '[' {
		return "", 0, 0, false
	}
	k := strings.IndexByte(rest, ']')
	if k < 0 || !isRegisterToken(rest[1:k]) {
		return "", 0, 0, false
	}
	reg2 = registerNumber(rest[1:k])
	return label, reg1, reg2, true
}

func (a *Assembler) handleInstruction(lineNum int, opcodeName string, rest fstring) {
	leg := opcodeLegality[opcodeName]
	expected := 0
	if leg.src != nil {
		expected++
	}
	if leg.dst != nil {
		expected++
	}

	text := strings.TrimSpace(rest.String())
	var ops []operand
	if expected == 0 {
		if text != "" {
			a.addDiag(lineNum, "error! "+opcodeName+" takes no operands")
			return
		}
	} else {
		parts, ok := splitOperands(lineNum, rest, a, opcodeName+" operand")
		if !ok {
			return
		}
		if len(parts) != expected {
			a.addDiag(lineNum, "error! wrong number of operands for "+opcodeName)
			return
		}
		for _, p := range parts {
			ops = append(ops, classifyOperand(p))
		}
	}

	var src, dst *operand
	switch {
	case expected == 2:
		src, dst = &ops[0], &ops[1]
	case expected == 1:
		dst = &ops[0]
	}

	if src != nil && !leg.src[src.mode] {
		a.addDiag(lineNum, "error! illegal source addressing mode for "+opcodeName)
		return
	}
	if dst != nil && !leg.dst[dst.mode] {
		a.addDiag(lineNum, "error! illegal destination addressing mode for "+opcodeName)
		return
	}

	cmd := CommandWord{Opcode: opcodes[opcodeName]}
	if src != nil {
		cmd.SrcMode = src.mode
	}
	if dst != nil {
		cmd.DstMode = dst.mode
	}
	a.instrs = append(a.instrs, cmd)
	a.ic++

	if src != nil && dst != nil && src.mode == ModeRegister && dst.mode == ModeRegister {
		a.instrs = append(a.instrs, RegisterWord{SrcReg: src.reg1, DstReg: dst.reg1})
		a.ic++
		return
	}

	if src != nil {
		a.emitOperandWords(lineNum, *src, true)
	}
	if dst != nil {
		a.emitOperandWords(lineNum, *dst, false)
	}
}

func (a *Assembler) emitOperandWords(lineNum int, op operand, isSrc bool) {
	switch op.mode {
	case ModeImmediate:
		n, err := parseInt(op.text)
		if err != nil {
			a.addDiag(lineNum, "error! invalid immediate value: "+op.text)
			return
		}
		a.instrs = append(a.instrs, AddressWord{Payload: n, ARE: AREAbsolute})
		a.ic++
	case ModeDirect:
		idx := len(a.instrs)
		a.instrs = append(a.instrs, AddressWord{})
		a.ic++
		a.pending = append(a.pending, pendingRef{wordIndex: idx, label: op.label, lineNum: lineNum})
	case ModeMatrix:
		idx := len(a.instrs)
		a.instrs = append(a.instrs, AddressWord{})
		a.ic++
		a.pending = append(a.pending, pendingRef{wordIndex: idx, label: op.label, lineNum: lineNum})
		a.instrs = append(a.instrs, RegisterWord{SrcReg: op.reg1, DstReg: op.reg2})
		a.ic++
	case ModeRegister:
		if isSrc {
			a.instrs = append(a.instrs, RegisterWord{SrcReg: op.reg1})
		} else {
			a.instrs = append(a.instrs, RegisterWord{DstReg: op.reg1})
		}
		a.ic++
	}
}

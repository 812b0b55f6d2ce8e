// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package decode reconstructs approximate mnemonic text from the base-4
// encoded instruction words produced by an assembled object file. It is
// the inverse of the encoder: given a Command word and the operand
// words that follow it, it recovers the opcode name and an
// addressing-mode-shaped rendering of each operand.
//
// Symbol names are not recoverable from the object file alone, so
// Direct and Matrix operands are rendered by resolved address rather
// than original label text.
package decode

import (
	"fmt"
	"strings"
)

const base4Alphabet = "abcd"

func digitValue(c byte) (int, bool) {
	i := strings.IndexByte(base4Alphabet, c)
	if i < 0 {
		return 0, false
	}
	return i, true
}

// Unsigned decodes s as an unsigned base-4 value, most significant
// digit first.
func Unsigned(s string) (int, error) {
	n := 0
	for i := 0; i < len(s); i++ {
		d, ok := digitValue(s[i])
		if !ok {
			return 0, fmt.Errorf("decode: invalid base-4 digit %q", s[i])
		}
		n = n*4 + d
	}
	return n, nil
}

// Signed decodes s as a two's-complement base-4 value at its own
// width, the inverse of the encoder's toBase4Signed.
func Signed(s string) (int, error) {
	n, err := Unsigned(s)
	if err != nil {
		return 0, err
	}
	half := 1
	for i := 0; i < len(s); i++ {
		half *= 4
	}
	if n >= half/2 {
		n -= half
	}
	return n, nil
}

var opcodeNames = [16]string{
	"mov", "cmp", "add", "sub", "lea", "clr", "not", "inc", "dec",
	"jmp", "bne", "jsr", "red", "prn", "rts", "stop",
}

// hasSrc and hasDst report whether opcode n's Command word carries a
// meaningful source/destination addressing-mode field.
var hasSrc = [16]bool{true, true, true, true, true, false, false, false, false, false, false, false, false, false, false, false}
var hasDst = [16]bool{true, true, true, true, true, true, true, true, true, true, true, true, true, true, false, false}

const modeRegister = 3

// Instruction is a best-effort decode of one instruction's words back
// to approximate mnemonic text.
type Instruction struct {
	Text      string
	WordCount int // words consumed, including the Command word
}

// Disassemble decodes the instruction beginning at words[0], which
// must hold a Command word's 5-character base-4 text, consuming as
// many further words as that instruction's addressing modes require.
func Disassemble(words []string) (Instruction, error) {
	if len(words) == 0 || len(words[0]) != 5 {
		return Instruction{}, fmt.Errorf("decode: malformed command word")
	}
	cmd := words[0]
	opcode, err := Unsigned(cmd[0:2])
	if err != nil || opcode > 15 {
		return Instruction{}, fmt.Errorf("decode: invalid opcode field %q", cmd[0:2])
	}
	name := opcodeNames[opcode]
	if !hasSrc[opcode] && !hasDst[opcode] {
		return Instruction{Text: name, WordCount: 1}, nil
	}

	srcMode, err := Unsigned(cmd[2:3])
	if err != nil {
		return Instruction{}, err
	}
	dstMode, err := Unsigned(cmd[3:4])
	if err != nil {
		return Instruction{}, err
	}

	idx := 1
	var srcText, dstText string

	switch {
	case hasSrc[opcode] && hasDst[opcode] && srcMode == modeRegister && dstMode == modeRegister:
		if idx >= len(words) {
			return Instruction{}, fmt.Errorf("decode: truncated instruction")
		}
		srcReg, dstReg, err := decodeRegisterWord(words[idx])
		if err != nil {
			return Instruction{}, err
		}
		srcText, dstText = fmt.Sprintf("r%d", srcReg), fmt.Sprintf("r%d", dstReg)
		idx++

	default:
		if hasSrc[opcode] {
			srcText, idx, err = decodeOperand(srcMode, words, idx, true)
			if err != nil {
				return Instruction{}, err
			}
		}
		if hasDst[opcode] {
			dstText, idx, err = decodeOperand(dstMode, words, idx, false)
			if err != nil {
				return Instruction{}, err
			}
		}
	}

	var text string
	switch {
	case hasSrc[opcode] && hasDst[opcode]:
		text = fmt.Sprintf("%s %s, %s", name, srcText, dstText)
	case hasDst[opcode]:
		text = fmt.Sprintf("%s %s", name, dstText)
	default:
		text = name
	}
	return Instruction{Text: text, WordCount: idx}, nil
}

func decodeOperand(mode int, words []string, idx int, isSrc bool) (text string, newIdx int, err error) {
	switch mode {
	case 0: // Immediate
		if idx >= len(words) {
			return "", idx, fmt.Errorf("decode: truncated operand")
		}
		v, err := Signed(words[idx][:4])
		if err != nil {
			return "", idx, err
		}
		return fmt.Sprintf("#%d", v), idx + 1, nil

	case 1: // Direct
		if idx >= len(words) {
			return "", idx, fmt.Errorf("decode: truncated operand")
		}
		addr, err := Unsigned(words[idx][:4])
		if err != nil {
			return "", idx, err
		}
		return fmt.Sprintf("@%d", addr), idx + 1, nil

	case 2: // Matrix
		if idx+1 >= len(words) {
			return "", idx, fmt.Errorf("decode: truncated matrix operand")
		}
		addr, err := Unsigned(words[idx][:4])
		if err != nil {
			return "", idx, err
		}
		r1, r2, err := decodeRegisterWord(words[idx+1])
		if err != nil {
			return "", idx, err
		}
		return fmt.Sprintf("@%d[r%d][r%d]", addr, r1, r2), idx + 2, nil

	case 3: // Register, not shared with the other operand
		if idx >= len(words) {
			return "", idx, fmt.Errorf("decode: truncated operand")
		}
		srcReg, dstReg, err := decodeRegisterWord(words[idx])
		if err != nil {
			return "", idx, err
		}
		if isSrc {
			return fmt.Sprintf("r%d", srcReg), idx + 1, nil
		}
		return fmt.Sprintf("r%d", dstReg), idx + 1, nil

	default:
		return "", idx, fmt.Errorf("decode: invalid addressing mode %d", mode)
	}
}

func decodeRegisterWord(w string) (srcReg, dstReg int, err error) {
	if len(w) != 5 {
		return 0, 0, fmt.Errorf("decode: malformed register word %q", w)
	}
	srcReg, err = Unsigned(w[0:2])
	if err != nil {
		return 0, 0, err
	}
	dstReg, err = Unsigned(w[2:4])
	return srcReg, dstReg, err
}

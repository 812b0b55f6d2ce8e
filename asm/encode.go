// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"
	"strings"
)

const base4Alphabet = "abcd"

// digitsBase4 returns the base-4 digits of the non-negative value n,
// most-significant first, zero-padded to width digits. Digits beyond
// width are discarded (matching the original's fixed-width behavior).
func digitsBase4(n, width int) []int {
	d := make([]int, width)
	for i := width - 1; i >= 0; i-- {
		d[i] = n % 4
		n /= 4
	}
	return d
}

func digitsToChars(d []int) string {
	b := make([]byte, len(d))
	for i, v := range d {
		b[i] = base4Alphabet[v&3]
	}
	return string(b)
}

// toBase4Unsigned encodes a non-negative value as width base-4 digits.
func toBase4Unsigned(n, width int) string {
	return digitsToChars(digitsBase4(n, width))
}

// toBase4Signed encodes value, positive or negative, as width base-4
// digits using two's complement at that width: the absolute value's
// base-4 digits are complemented (3-d) and one is added with carry
// across the full padded width. See
// original_source/second_pass.c:int_to_special_base4.
func toBase4Signed(value, width int) string {
	if value >= 0 {
		return toBase4Unsigned(value, width)
	}
	d := digitsBase4(-value, width)
	for i := range d {
		d[i] = 3 - d[i]
	}
	carry := 1
	for i := width - 1; i >= 0 && carry > 0; i-- {
		d[i] += carry
		carry = d[i] / 4
		d[i] = d[i] % 4
	}
	return digitsToChars(d)
}

// encodeHeaderCount encodes n as 8 base-4 digits with every leading
// 'a' stripped — no minimum length is retained, so a zero count
// serializes to the empty string.
func encodeHeaderCount(n int) string {
	return strings.TrimLeft(toBase4Unsigned(n, 8), "a")
}

// encodeListingAddress encodes an absolute address as the 4-digit
// field used in listing columns across all three artifacts.
func encodeListingAddress(addr int) string {
	return toBase4Unsigned(addr, 4)
}

// encodeWord renders one instruction-image word as its 5-character
// base-4 encoding, dispatching on the concrete Word type.
func encodeWord(w Word) string {
	switch v := w.(type) {
	case CommandWord:
		return toBase4Unsigned(v.Opcode, 2) +
			toBase4Unsigned(int(v.SrcMode), 1) +
			toBase4Unsigned(int(v.DstMode), 1) +
			toBase4Unsigned(int(AREAbsolute), 1)
	case RegisterWord:
		return toBase4Unsigned(v.SrcReg, 2) +
			toBase4Unsigned(v.DstReg, 2) +
			toBase4Unsigned(int(AREAbsolute), 1)
	case AddressWord:
		return toBase4Signed(v.Payload, 4) + toBase4Unsigned(int(v.ARE), 1)
	default:
		panic(fmt.Sprintf("asm: unknown word type %T", w))
	}
}

func encodeDataWord(d DataWord) string {
	return toBase4Signed(d.Value, 5)
}

// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"io"
	"strings"
	"testing"
)

func assembleString(t *testing.T, src string) *Result {
	t.Helper()
	res, err := Assemble(strings.NewReader(src), false, io.Discard)
	if err != nil {
		t.Fatalf("Assemble returned fatal error: %v", err)
	}
	return res
}

func checkNoDiagnostics(t *testing.T, res *Result) {
	t.Helper()
	if len(res.Diagnostics) > 0 {
		for _, d := range res.Diagnostics {
			t.Errorf("unexpected diagnostic at line %d: %s", d.LineNum+1, d.Message)
		}
		t.FailNow()
	}
}

func TestMinimalStop(t *testing.T) {
	res := assembleString(t, "MAIN: stop\n")
	checkNoDiagnostics(t, res)

	wantLine := encodeListingAddress(MemoryStart) + "\t" + "ddaaa"
	if !strings.Contains(res.Object, wantLine) {
		t.Errorf("object file missing expected stop line %q, got:\n%s", wantLine, res.Object)
	}
	if res.Entries != "" {
		t.Errorf("expected no entries, got %q", res.Entries)
	}
	if res.Externs != "" {
		t.Errorf("expected no externs, got %q", res.Externs)
	}
}

func TestImmediateAndRegister(t *testing.T) {
	res := assembleString(t, "mov #-1, r3\nstop\n")
	checkNoDiagnostics(t, res)

	lines := strings.Split(strings.TrimRight(res.Object, "\n"), "\n")
	if len(lines) < 4 {
		t.Fatalf("expected at least 4 lines in object file, got %d:\n%s", len(lines), res.Object)
	}
	// Command word for mov: opcode=0, src=Immediate(0), dst=Register(3), ARE=Absolute.
	wantCmd := "aa" + "a" + "d" + "a"
	if !strings.HasSuffix(lines[1], wantCmd) {
		t.Errorf("mov command word = %q, want suffix %q", lines[1], wantCmd)
	}
	// Immediate operand -1 at 8-bit width: two's complement "dddd", ARE=Absolute 'a'.
	wantImm := "dddd" + "a"
	if !strings.HasSuffix(lines[2], wantImm) {
		t.Errorf("immediate operand word = %q, want suffix %q", lines[2], wantImm)
	}
	// Register operand r3 in the destination nibble: src="aa", dst="ad", ARE='a'.
	wantReg := "aa" + "ad" + "a"
	if !strings.HasSuffix(lines[3], wantReg) {
		t.Errorf("register operand word = %q, want suffix %q", lines[3], wantReg)
	}
}

func TestLabelAndExtern(t *testing.T) {
	res := assembleString(t, ".extern FOO\nSTART: jmp FOO\n")
	checkNoDiagnostics(t, res)

	if res.Externs == "" {
		t.Fatal("expected a non-empty extern file")
	}
	if !strings.HasPrefix(res.Externs, "FOO\t") {
		t.Errorf("extern file = %q, want it to start with FOO", res.Externs)
	}

	lines := strings.Split(strings.TrimRight(res.Object, "\n"), "\n")
	if len(lines) < 3 {
		t.Fatalf("expected at least 3 lines (header + 2 instruction words), got %d:\n%s", len(lines), res.Object)
	}
	// lines[0] is the header; lines[1] is jmp's Command word; lines[2] is
	// the Address word for the unresolved FOO operand: payload 0, ARE=External('b').
	wantOperand := "aaaa" + "b"
	if !strings.HasSuffix(lines[2], wantOperand) {
		t.Errorf("jmp operand word = %q, want suffix %q", lines[2], wantOperand)
	}
}

func TestMatrixDirectiveAndOperand(t *testing.T) {
	res := assembleString(t, "M: .mat [2][2] 1, 2, 3, 4\n lea M[r1][r2], r3\nstop\n")
	checkNoDiagnostics(t, res)

	// lea emits Command + Address(placeholder) + Register(bracket regs) +
	// Register(dst reg) = 4 words; stop emits 1 word. 5 instruction words
	// total, plus the header line and 4 data words from the matrix.
	// lea's legality requires src in {Direct,Matrix}; dst in {Direct,Matrix,Register}.
	lines := strings.Split(strings.TrimRight(res.Object, "\n"), "\n")
	wantCount := 1 + 5 + 4 // header + 5 instruction words + 4 data words
	if len(lines) != wantCount {
		t.Fatalf("expected %d lines, got %d:\n%s", wantCount, len(lines), res.Object)
	}

	// lines[0]=header, [1]=lea Command, [2]=Address placeholder for M,
	// [3]=Register word for the matrix operand holding (r1, r2): src="ab" dst="ac".
	wantMatReg := "ab" + "ac" + "a"
	if !strings.HasSuffix(lines[3], wantMatReg) {
		t.Errorf("matrix register word = %q, want suffix %q", lines[3], wantMatReg)
	}

	// Exactly 4 initializers were supplied for a 2x2 matrix: no extra
	// zero-padded cell (redesign flag fixing the off-by-one). Data words
	// start after the header and the 5 instruction words.
	dataLines := lines[6:]
	if len(dataLines) != 4 {
		t.Fatalf("expected exactly 4 data words, got %d", len(dataLines))
	}
}

func TestEntryForwardReference(t *testing.T) {
	res := assembleString(t, ".entry L\nL: .data 7\n")
	checkNoDiagnostics(t, res)

	wantAddr := encodeListingAddress(MemoryStart)
	if res.Entries != "L\t"+wantAddr+"\n" {
		t.Errorf("entries = %q, want %q", res.Entries, "L\t"+wantAddr+"\n")
	}

	lines := strings.Split(strings.TrimRight(res.Object, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected exactly 2 lines (header + 1 data line), got %d:\n%s", len(lines), res.Object)
	}
	if !strings.HasPrefix(lines[1], wantAddr+"\t") {
		t.Errorf("data line = %q, want address prefix %q", lines[1], wantAddr)
	}
}

func TestMacroExpansion(t *testing.T) {
	src := "mcro INC_X\n add #1, r0\nmcroend\nSTART: INC_X\n stop\n"
	res := assembleString(t, src)
	checkNoDiagnostics(t, res)

	lines := strings.Split(strings.TrimRight(res.Object, "\n"), "\n")
	// add #1,r0 -> Command+Address+Register = 3 words; stop -> 1 word;
	// plus the header line.
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines (header + 4 instruction words), got %d:\n%s", len(lines), res.Object)
	}
}

func TestWordCountInvariant(t *testing.T) {
	cases := []struct {
		src       string
		wantWords int
	}{
		{"stop\n", 1},
		{"rts\n", 1},
		{"clr r0\n", 2},
		{"not DEST\nDEST: .data 1\n", 2},
		{"mov #1, r0\n", 3},
		{"mov A, B\nA: .data 1\nB: .data 2\n", 3},
		{"cmp r0, r1\n", 2},
		{"lea M[r1][r2], r3\nM: .mat [1][1] 1\n", 4},
	}
	for _, c := range cases {
		res := assembleString(t, c.src)
		checkNoDiagnostics(t, res)
		lines := strings.Split(strings.TrimRight(res.Object, "\n"), "\n")
		got := 0
		for _, l := range lines {
			if strings.Contains(l, "\t") {
				got++
			}
		}
		if got < c.wantWords {
			t.Errorf("src %q: got %d object lines, want at least %d", c.src, got, c.wantWords)
		}
	}
}

func TestNoEmissionOnError(t *testing.T) {
	res := assembleString(t, "BAD LABEL WITH SPACES stop\n")
	if len(res.Diagnostics) == 0 {
		t.Fatal("expected at least one diagnostic")
	}
	if res.Object != "" || res.Entries != "" || res.Externs != "" {
		t.Errorf("expected no artifacts on error, got Object=%q Entries=%q Externs=%q",
			res.Object, res.Entries, res.Externs)
	}
}

func TestUndefinedLabelDiagnostic(t *testing.T) {
	res := assembleString(t, "jmp NOWHERE\n")
	if len(res.Diagnostics) == 0 {
		t.Fatal("expected a diagnostic for an undefined label")
	}
}

func TestDuplicateLabelDiagnostic(t *testing.T) {
	res := assembleString(t, "A: .data 1\nA: .data 2\n")
	if len(res.Diagnostics) == 0 {
		t.Fatal("expected a diagnostic for a duplicate label")
	}
}

func TestEntryPlaceholderAdoption(t *testing.T) {
	// .entry before the label is defined creates a placeholder; the
	// later .data definition must adopt it rather than erroring.
	res := assembleString(t, ".entry L\nL: .data 1\n")
	checkNoDiagnostics(t, res)
}

func TestBase4RoundTrip(t *testing.T) {
	for _, width := range []int{1, 2, 4, 5, 8} {
		max := 1
		for i := 0; i < width; i++ {
			max *= 4
		}
		for _, v := range []int{0, 1, max/2 - 1, -1, -(max / 2)} {
			enc := toBase4Signed(v, width)
			if len(enc) != width {
				t.Fatalf("width %d: encoding of %d has length %d", width, v, len(enc))
			}
			got := decodeBase4Signed(enc)
			if got != v {
				t.Errorf("width %d: round-trip of %d produced %d (encoded %q)", width, v, got, enc)
			}
		}
	}
}

// decodeBase4Signed is the test-only inverse of toBase4Signed, used to
// verify that encoding and decoding a signed value round-trips.
func decodeBase4Signed(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*4 + strings.IndexByte(base4Alphabet, s[i])
	}
	width := len(s)
	half := 1
	for i := 0; i < width; i++ {
		half *= 4
	}
	if n >= half/2 {
		n -= half
	}
	return n
}

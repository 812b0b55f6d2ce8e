// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decode

import "testing"

func TestUnsignedSigned(t *testing.T) {
	cases := []struct {
		s    string
		want int
	}{
		{"aaaa", 0},
		{"aaab", 1},
		{"dddd", 255},
	}
	for _, c := range cases {
		got, err := Unsigned(c.s)
		if err != nil {
			t.Fatalf("Unsigned(%q): %v", c.s, err)
		}
		if got != c.want {
			t.Errorf("Unsigned(%q) = %d, want %d", c.s, got, c.want)
		}
	}

	v, err := Signed("dddd")
	if err != nil {
		t.Fatalf("Signed(%q): %v", "dddd", err)
	}
	if v != -1 {
		t.Errorf("Signed(%q) = %d, want -1", "dddd", v)
	}
}

func TestDisassembleNoOperand(t *testing.T) {
	// stop: opcode=15 -> "ddaaa"
	ins, err := Disassemble([]string{"ddaaa"})
	if err != nil {
		t.Fatal(err)
	}
	if ins.Text != "stop" || ins.WordCount != 1 {
		t.Errorf("got %+v, want {stop 1}", ins)
	}
}

func TestDisassembleImmediateRegister(t *testing.T) {
	// mov #-1, r3: command "aaada", immediate "dddda", register "aaada"
	words := []string{"aaada", "dddda", "aaada"}
	ins, err := Disassemble(words)
	if err != nil {
		t.Fatal(err)
	}
	if ins.WordCount != 3 {
		t.Errorf("word count = %d, want 3", ins.WordCount)
	}
	want := "mov #-1, r3"
	if ins.Text != want {
		t.Errorf("text = %q, want %q", ins.Text, want)
	}
}

func TestDisassembleSharedRegisterWord(t *testing.T) {
	// cmp r0, r1: opcode=1 src=Register(3) dst=Register(3) -> "abdda"? Compute manually.
	// opcode=1 -> "ab"; src mode 3 -> "d"; dst mode 3 -> "d"; ARE absolute -> "a" => "abdda"
	// shared register word: src=0 dst=1 -> "aaaba"... but width is 2+2+1, src="aa" dst="ab" are="a" => "aaaba"
	words := []string{"abdda", "aaaba"}
	ins, err := Disassemble(words)
	if err != nil {
		t.Fatal(err)
	}
	if ins.WordCount != 2 {
		t.Errorf("word count = %d, want 2", ins.WordCount)
	}
	want := "cmp r0, r1"
	if ins.Text != want {
		t.Errorf("text = %q, want %q", ins.Text, want)
	}
}

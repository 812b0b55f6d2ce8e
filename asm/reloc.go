// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

// relocate fixes up every symbol's address to its final absolute
// location. Entry-only placeholders (Kind == KindNone) are left
// untouched; they are diagnosed later only if something actually
// references them unresolved.
func (a *Assembler) relocate() {
	for _, sym := range a.syms.symbols() {
		switch sym.Kind {
		case KindCode:
			sym.Address += MemoryStart
		case KindData:
			sym.Address += a.ic + MemoryStart
		}
	}
}

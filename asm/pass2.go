// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

// secondPass resolves every reference recorded during the first pass
// against the now-fixed-up symbol table.
func (a *Assembler) secondPass() {
	for _, ref := range a.pending {
		sym := a.syms.lookup(ref.label)
		if sym == nil || (sym.Kind == KindNone && sym.Attr != AttrExtern) {
			a.addDiag(ref.lineNum, "error! label not defined: "+ref.label)
			continue
		}

		word := a.instrs[ref.wordIndex].(AddressWord)
		if sym.Attr == AttrExtern {
			word.Payload = 0
			word.ARE = AREExternal
			a.externUses = append(a.externUses, ExternalUse{
				Name:    ref.label,
				Address: MemoryStart + ref.wordIndex,
			})
		} else {
			word.Payload = sym.Address
			word.ARE = ARERelocatable
		}
		a.instrs[ref.wordIndex] = word
	}
}

// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "strings"

// renderObject builds the .ob artifact text: a header line of the
// trimmed IC/DC counts, then one tab-separated ADDRESS/CONTENT line
// per instruction word, continuing into the data words on the same
// address counter.
func (a *Assembler) renderObject() string {
	var b strings.Builder
	fmtHeader(&b, a.ic, a.dc)

	addr := MemoryStart
	for _, w := range a.instrs {
		b.WriteString(encodeListingAddress(addr))
		b.WriteByte('\t')
		b.WriteString(encodeWord(w))
		b.WriteByte('\n')
		addr++
	}
	for _, d := range a.data {
		b.WriteString(encodeListingAddress(addr))
		b.WriteByte('\t')
		b.WriteString(encodeDataWord(d))
		b.WriteByte('\n')
		addr++
	}
	return b.String()
}

func fmtHeader(b *strings.Builder, ic, dc int) {
	b.WriteByte(' ')
	b.WriteString(encodeHeaderCount(ic))
	b.WriteByte(' ')
	b.WriteString(encodeHeaderCount(dc))
	b.WriteByte('\n')
}

// renderEntries builds the .ent artifact: one NAME\tADDRESS line per
// Entry symbol, in definition order. Empty if there are none.
func (a *Assembler) renderEntries() string {
	var b strings.Builder
	for _, sym := range a.syms.symbols() {
		if sym.Attr != AttrEntry {
			continue
		}
		b.WriteString(sym.Name)
		b.WriteByte('\t')
		b.WriteString(encodeListingAddress(sym.Address))
		b.WriteByte('\n')
	}
	return b.String()
}

// renderExterns builds the .ext artifact: one NAME\tADDRESS line per
// ExternalUse, in the order they were encountered during the second
// pass. Empty if there are none.
func (a *Assembler) renderExterns() string {
	var b strings.Builder
	for _, use := range a.externUses {
		b.WriteString(use.Name)
		b.WriteByte('\t')
		b.WriteString(encodeListingAddress(use.Address))
		b.WriteByte('\n')
	}
	return b.String()
}

// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package asm implements a two-pass assembler for a 10-bit-word,
// 16-opcode educational machine, producing base-4-encoded object,
// entry, and extern artifacts.
package asm

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// A Result holds everything produced by a successful or failed
// assembly: the rendered artifact text (empty if diagnostics were
// recorded) and the diagnostics themselves, in recorded order.
type Result struct {
	Object      string
	Entries     string
	Externs     string
	Expanded    string
	Diagnostics []Diagnostic
}

// HasEntries and HasExterns report whether the corresponding artifact
// would be non-empty (used by callers deciding whether to write the
// .ent/.ext files at all).
func (r *Result) HasEntries() bool { return r.Entries != "" }
func (r *Result) HasExterns() bool { return r.Externs != "" }

// Assembler holds the mutable state of a single file's assembly. It is
// never reused across files and shares no state with any other
// Assembler, so nothing carries over between files.
type Assembler struct {
	verbose bool
	log     io.Writer
	src     io.Reader

	lines      []string
	macroNames map[string]bool

	syms       *SymbolTable
	instrs     []Word
	data       []DataWord
	pending    []pendingRef
	externUses []ExternalUse
	diags      []Diagnostic

	ic, dc int
}

// steps is the ordered pipeline every assembly runs through. A step
// appending diagnostics does not end the loop, but every later step
// returns without doing anything once a diagnostic is recorded. Only a
// genuinely fatal error ends the loop, and none of these steps can
// produce one.
var steps = []func(a *Assembler) error{
	(*Assembler).stepExpandMacros,
	(*Assembler).stepFirstPass,
	(*Assembler).stepSizeCap,
	(*Assembler).stepRelocate,
	(*Assembler).stepSecondPass,
}

func (a *Assembler) stepExpandMacros() error {
	a.logSection("macro expansion")
	expanded, macroNames, diags := expandMacros(a.src)
	if len(diags) > 0 {
		a.diags = append(a.diags, diags...)
		return nil
	}
	a.lines = expanded
	a.macroNames = macroNames
	return nil
}

func (a *Assembler) stepFirstPass() error {
	if len(a.diags) > 0 {
		return nil
	}
	a.logSection("first pass")
	a.firstPass()
	return nil
}

func (a *Assembler) stepSizeCap() error {
	if len(a.diags) > 0 {
		return nil
	}
	if a.ic+a.dc > MaxImageWords {
		a.addDiag(len(a.lines)-1, "error! program exceeds maximum memory image size")
	}
	return nil
}

func (a *Assembler) stepRelocate() error {
	if len(a.diags) > 0 {
		return nil
	}
	a.logSection("relocation fix-up")
	a.relocate()
	return nil
}

func (a *Assembler) stepSecondPass() error {
	if len(a.diags) > 0 {
		return nil
	}
	a.logSection("second pass")
	a.secondPass()
	return nil
}

func newAssembler(verbose bool, logw io.Writer) *Assembler {
	return &Assembler{
		verbose: verbose,
		log:     logw,
		syms:    newSymbolTable(),
	}
}

func (a *Assembler) addDiag(lineNum int, msg string) {
	a.diags = append(a.diags, Diagnostic{lineNum, msg})
	a.logLine("  %d: %s", lineNum+1, msg)
}

func (a *Assembler) logLine(format string, args ...interface{}) {
	if a.verbose {
		fmt.Fprintf(a.log, format+"\n", args...)
	}
}

func (a *Assembler) logSection(name string) {
	if a.verbose {
		fmt.Fprintf(a.log, "== %s ==\n", name)
	}
}

// Assemble runs the full pipeline over r's contents and returns the
// resulting Result. It never itself performs file I/O; AssembleFile
// wraps it for the common file-based case.
func Assemble(r io.Reader, verbose bool, logw io.Writer) (*Result, error) {
	if logw == nil {
		logw = os.Stdout
	}
	a := newAssembler(verbose, logw)
	a.src = r

	for _, step := range steps {
		if err := step(a); err != nil {
			return nil, err
		}
	}

	res := &Result{Diagnostics: a.diags}
	if len(a.diags) > 0 {
		return res, nil
	}

	res.Expanded = strings.Join(a.lines, "\n")
	res.Object = a.renderObject()
	res.Entries = a.renderEntries()
	res.Externs = a.renderExterns()
	return res, nil
}

// AssembleFile reads baseName+".as", assembles it, and on success
// writes baseName+".ob" (always), baseName+".ent" and baseName+".ext"
// (if non-empty). It also writes and, on any diagnostic, removes the
// baseName+".am" expanded-source intermediate.
func AssembleFile(baseName string, verbose bool, out io.Writer) error {
	src, err := os.Open(baseName + ".as")
	if err != nil {
		return err
	}
	defer src.Close()

	res, err := Assemble(src, verbose, out)
	if err != nil {
		return err
	}

	amPath := baseName + ".am"
	if len(res.Diagnostics) > 0 {
		for _, d := range res.Diagnostics {
			fmt.Fprintf(out, "%d: %s\n", d.LineNum+1, d.Message)
		}
		os.Remove(amPath)
		return nil
	}

	if err := os.WriteFile(amPath, []byte(res.Expanded+"\n"), 0644); err != nil {
		return err
	}
	if err := os.WriteFile(baseName+".ob", []byte(res.Object), 0644); err != nil {
		return err
	}
	if res.HasEntries() {
		if err := os.WriteFile(baseName+".ent", []byte(res.Entries), 0644); err != nil {
			return err
		}
	}
	if res.HasExterns() {
		if err := os.WriteFile(baseName+".ext", []byte(res.Externs), 0644); err != nil {
			return err
		}
	}
	return nil
}

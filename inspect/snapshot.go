// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package inspect implements an interactive REPL for browsing a
// previously assembled object/entry/extern file set: listing symbols,
// dumping raw encoded words, disassembling them back to approximate
// mnemonic text, and evaluating small address expressions.
package inspect

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beevik/asm10/internal/decode"
)

// A Word is one decoded line of the object file's body: its absolute
// address and the raw base-4 text of its content.
type Word struct {
	Addr int
	Text string
}

// A Snapshot holds everything parsed back out of a FILE.ob / FILE.ent /
// FILE.ext triple.
type Snapshot struct {
	IC, DC  int
	Words   []Word
	Entries map[string]int
	Externs []ExternUse
}

// An ExternUse is one recorded external reference site, read back from
// the .ext file.
type ExternUse struct {
	Name string
	Addr int
}

// LoadSnapshot reads baseName+".ob" (required) and baseName+".ent" /
// baseName+".ext" (both optional) into a Snapshot.
func LoadSnapshot(baseName string) (*Snapshot, error) {
	ob, err := os.Open(baseName + ".ob")
	if err != nil {
		return nil, err
	}
	defer ob.Close()

	snap, err := parseObject(ob)
	if err != nil {
		return nil, fmt.Errorf("parsing %s.ob: %w", baseName, err)
	}

	if ent, err := os.Open(baseName + ".ent"); err == nil {
		defer ent.Close()
		if err := parseEntries(ent, snap); err != nil {
			return nil, fmt.Errorf("parsing %s.ent: %w", baseName, err)
		}
	}

	if ext, err := os.Open(baseName + ".ext"); err == nil {
		defer ext.Close()
		if err := parseExterns(ext, snap); err != nil {
			return nil, fmt.Errorf("parsing %s.ext: %w", baseName, err)
		}
	}

	return snap, nil
}

func parseObject(r io.Reader) (*Snapshot, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return nil, fmt.Errorf("empty object file")
	}
	header := strings.Fields(scanner.Text())
	snap := &Snapshot{Entries: make(map[string]int)}
	if len(header) >= 1 {
		ic, err := decode.Unsigned(header[0])
		if err != nil {
			return nil, fmt.Errorf("header IC field: %w", err)
		}
		snap.IC = ic
	}
	if len(header) >= 2 {
		dc, err := decode.Unsigned(header[1])
		if err != nil {
			return nil, fmt.Errorf("header DC field: %w", err)
		}
		snap.DC = dc
	}

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed listing line %q", line)
		}
		addr, err := decode.Unsigned(fields[0])
		if err != nil {
			return nil, fmt.Errorf("listing address %q: %w", fields[0], err)
		}
		snap.Words = append(snap.Words, Word{Addr: addr, Text: fields[1]})
	}
	return snap, scanner.Err()
}

func parseEntries(r io.Reader, snap *Snapshot) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			return fmt.Errorf("malformed entry line %q", line)
		}
		addr, err := decode.Unsigned(fields[1])
		if err != nil {
			return err
		}
		snap.Entries[fields[0]] = addr
	}
	return scanner.Err()
}

func parseExterns(r io.Reader, snap *Snapshot) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			return fmt.Errorf("malformed extern line %q", line)
		}
		addr, err := decode.Unsigned(fields[1])
		if err != nil {
			return err
		}
		snap.Externs = append(snap.Externs, ExternUse{Name: fields[0], Addr: addr})
	}
	return scanner.Err()
}

// wordAt returns the index into Words whose Addr matches addr, or -1.
func (s *Snapshot) wordAt(addr int) int {
	for i, w := range s.Words {
		if w.Addr == addr {
			return i
		}
	}
	return -1
}

// resolveIdentifier implements the resolver interface for exprParser,
// letting expressions reference entry-symbol names by address.
func (s *Snapshot) resolveIdentifier(name string) (int64, error) {
	if addr, ok := s.Entries[name]; ok {
		return int64(addr), nil
	}
	return 0, fmt.Errorf("symbol %q not found", name)
}

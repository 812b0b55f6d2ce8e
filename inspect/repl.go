// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inspect

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/beevik/asm10/internal/decode"
	"github.com/beevik/cmd"
	"github.com/beevik/term"
)

var errQuit = errors.New("exiting inspector")

// A REPL browses a loaded Snapshot interactively, accepting commands
// from a reader and printing results to a writer.
type REPL struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	lastCmd     *cmd.Selection

	snap     *Snapshot
	settings *settings
	expr     *exprParser
}

// NewREPL creates an inspector REPL bound to the given snapshot.
func NewREPL(snap *Snapshot) *REPL {
	return &REPL{
		snap:     snap,
		settings: newSettings(),
		expr:     newExprParser(),
	}
}

// Run accepts commands from r and writes results to w until the user
// quits or r reaches EOF. When interactive is true, a prompt is
// displayed and, if r is a terminal, it is put into raw input mode
// until Run returns. No command pages its output or waits for a
// keypress.
func (p *REPL) Run(r io.Reader, w io.Writer, interactive bool) {
	p.input = bufio.NewScanner(r)
	p.output = bufio.NewWriter(w)
	p.interactive = interactive

	var oldState *term.State
	if interactive {
		if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			if s, err := term.MakeRawInput(int(f.Fd())); err == nil {
				oldState = s
				defer term.Restore(int(f.Fd()), oldState)
			}
		}
		p.println("asm10 inspect -- type 'help' for a command list")
	}

	for {
		p.prompt()

		line, err := p.getLine()
		if err != nil {
			break
		}

		if err := p.processCommand(line); err != nil {
			break
		}
	}
}

func (p *REPL) processCommand(line string) error {
	var c cmd.Selection
	if line != "" {
		var err error
		c, err = cmds.Lookup(line)
		switch {
		case err == cmd.ErrNotFound:
			p.println("Command not found.")
			return nil
		case err == cmd.ErrAmbiguous:
			p.println("Command is ambiguous.")
			return nil
		case err != nil:
			p.printf("ERROR: %v.\n", err)
			return nil
		}
	} else if p.lastCmd != nil {
		c = *p.lastCmd
	}

	if c.Command == nil {
		return nil
	}
	if c.Command.Data == nil && c.Command.Subtree != nil {
		p.displayCommands(c.Command.Subtree, nil)
		return nil
	}

	p.lastCmd = &c

	handler := c.Command.Data.(func(*REPL, cmd.Selection) error)
	return handler(p, c)
}

func (p *REPL) cmdHelp(c cmd.Selection) error {
	if len(c.Args) == 0 {
		p.displayCommands(cmds, nil)
		return nil
	}

	s, err := cmds.Lookup(strings.Join(c.Args, " "))
	if err != nil {
		p.printf("%v\n", err)
		return nil
	}
	if s.Command.Subtree != nil {
		p.displayCommands(s.Command.Subtree, s.Command)
		return nil
	}
	if s.Command.Usage != "" {
		p.printf("Usage: %s\n\n", s.Command.Usage)
	}
	switch {
	case s.Command.Description != "":
		p.printf("%s\n\n", s.Command.Description)
	case s.Command.Brief != "":
		p.printf("%s.\n\n", s.Command.Brief)
	}
	return nil
}

func (p *REPL) cmdSymbols(c cmd.Selection) error {
	if len(p.snap.Entries) == 0 && len(p.snap.Externs) == 0 {
		p.println("No symbols recorded.")
		return nil
	}
	if len(p.snap.Entries) > 0 {
		p.println("Entries:")
		for name, addr := range p.snap.Entries {
			p.printf("    %-16s %d\n", name, addr)
		}
	}
	if len(p.snap.Externs) > 0 {
		p.println("Externs:")
		for _, use := range p.snap.Externs {
			p.printf("    %-16s %d\n", use.Name, use.Addr)
		}
	}
	return nil
}

func (p *REPL) cmdWords(c cmd.Selection) error {
	addr := p.settings.NextWordsAddr
	count := p.settings.WordsPerPage

	if len(c.Args) >= 1 {
		v, err := p.parseExpr(c.Args[0])
		if err != nil {
			p.printf("%v\n", err)
			return nil
		}
		addr = int(v)
	}
	if len(c.Args) >= 2 {
		n, err := strconv.Atoi(c.Args[1])
		if err != nil {
			p.printf("%v\n", err)
			return nil
		}
		count = n
	}

	start := p.snap.wordAt(addr)
	if start < 0 {
		p.printf("No word at address %d.\n", addr)
		return nil
	}

	end := start + count
	if end > len(p.snap.Words) {
		end = len(p.snap.Words)
	}
	for _, w := range p.snap.Words[start:end] {
		p.printf("%-4d  %s\n", w.Addr, w.Text)
	}

	if end < len(p.snap.Words) {
		p.settings.NextWordsAddr = p.snap.Words[end].Addr
	}
	return nil
}

func (p *REPL) cmdDisasm(c cmd.Selection) error {
	addr := p.settings.NextDisasmAddr
	count := p.settings.DisasmCount

	if len(c.Args) >= 1 {
		v, err := p.parseExpr(c.Args[0])
		if err != nil {
			p.printf("%v\n", err)
			return nil
		}
		addr = int(v)
	}
	if len(c.Args) >= 2 {
		n, err := strconv.Atoi(c.Args[1])
		if err != nil {
			p.printf("%v\n", err)
			return nil
		}
		count = n
	}

	idx := p.snap.wordAt(addr)
	if idx < 0 {
		p.printf("No word at address %d.\n", addr)
		return nil
	}

	for i := 0; i < count && idx < len(p.snap.Words); i++ {
		words := make([]string, 0, 4)
		for j := idx; j < len(p.snap.Words) && j < idx+4; j++ {
			words = append(words, p.snap.Words[j].Text)
		}
		ins, err := decode.Disassemble(words)
		if err != nil {
			p.printf("%-4d  %v\n", p.snap.Words[idx].Addr, err)
			idx++
			continue
		}
		p.printf("%-4d  %s\n", p.snap.Words[idx].Addr, ins.Text)
		idx += ins.WordCount
	}

	if idx < len(p.snap.Words) {
		p.settings.NextDisasmAddr = p.snap.Words[idx].Addr
	}
	return nil
}

func (p *REPL) cmdEval(c cmd.Selection) error {
	if len(c.Args) == 0 {
		p.displayUsage(c.Command)
		return nil
	}
	v, err := p.parseExpr(strings.Join(c.Args, " "))
	if err != nil {
		p.printf("%v\n", err)
		return nil
	}
	p.printf("%d\n", v)
	return nil
}

func (p *REPL) cmdSet(c cmd.Selection) error {
	if len(c.Args) == 0 {
		p.settings.Display(p.output)
		p.flush()
		return nil
	}
	if len(c.Args) != 2 {
		p.displayUsage(c.Command)
		return nil
	}

	key, val := c.Args[0], c.Args[1]
	switch p.settings.Kind(key) {
	case reflect.Invalid:
		p.printf("Unknown setting %q.\n", key)
	default:
		if err := p.setValue(key, val); err != nil {
			p.printf("%v\n", err)
		}
	}
	return nil
}

func (p *REPL) setValue(key, val string) error {
	switch p.settings.Kind(key) {
	case reflect.Bool:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return err
		}
		return p.settings.Set(key, b)
	default:
		n, err := strconv.Atoi(val)
		if err != nil {
			return err
		}
		return p.settings.Set(key, n)
	}
}

func (p *REPL) cmdQuit(c cmd.Selection) error {
	return errQuit
}

func (p *REPL) parseExpr(s string) (int64, error) {
	return p.expr.Parse(s, p.snap)
}

func (p *REPL) printf(format string, args ...any) {
	fmt.Fprintf(p.output, format, args...)
	p.flush()
}

func (p *REPL) println(args ...any) {
	fmt.Fprintln(p.output, args...)
	p.flush()
}

func (p *REPL) flush() {
	p.output.Flush()
}

func (p *REPL) prompt() {
	if p.interactive {
		p.printf("> ")
	}
}

func (p *REPL) getLine() (string, error) {
	if p.input.Scan() {
		return p.input.Text(), nil
	}
	if p.input.Err() != nil {
		return "", p.input.Err()
	}
	return "", io.EOF
}

func (p *REPL) displayUsage(c *cmd.Command) {
	if c.Usage != "" {
		p.printf("Usage: %s\n", c.Usage)
	}
}

func (p *REPL) displayCommands(commands *cmd.Tree, c *cmd.Command) {
	p.printf("%s commands:\n", commands.Title)
	for _, cc := range commands.Commands {
		if cc.Brief != "" {
			p.printf("    %-10s  %s\n", cc.Name, cc.Brief)
		}
	}
	p.println()
}

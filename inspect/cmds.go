// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inspect

import "github.com/beevik/cmd"

var cmds *cmd.Tree

func init() {
	root := cmd.NewTree("asm10 inspect")

	root.AddCommand(cmd.Command{
		Name:        "help",
		Brief:       "Display help for a command",
		Description: "Display help for a command, or list all commands.",
		Usage:       "help [<command>]",
		Data:        (*REPL).cmdHelp,
	})
	root.AddCommand(cmd.Command{
		Name:  "symbols",
		Brief: "List entry and extern symbols",
		Description: "List every symbol recorded in the .ent and .ext" +
			" files accompanying the loaded object file.",
		Usage: "symbols",
		Data:  (*REPL).cmdSymbols,
	})
	root.AddCommand(cmd.Command{
		Name:  "words",
		Brief: "Dump raw encoded words",
		Description: "Print raw base-4 words from the object file," +
			" starting at the given address, each with its address." +
			" The words' fields are not decoded (see disasm). If no" +
			" address is given, continues from the last page.",
		Usage: "words [<address>] [<count>]",
		Data:  (*REPL).cmdWords,
	})
	root.AddCommand(cmd.Command{
		Name:  "disasm",
		Brief: "Disassemble words back to mnemonic text",
		Description: "Decode words from the object file back into" +
			" approximate mnemonic form, starting at the given address." +
			" Direct and Matrix operands are shown by resolved address" +
			" rather than original label, since labels are not present" +
			" in the object file.",
		Usage: "disasm [<address>] [<count>]",
		Data:  (*REPL).cmdDisasm,
	})
	root.AddCommand(cmd.Command{
		Name:  "eval",
		Brief: "Evaluate an expression",
		Description: "Evaluate an integer expression. Entry symbol" +
			" names may be used as identifiers, resolving to their" +
			" address.",
		Usage: "eval <expression>",
		Data:  (*REPL).cmdEval,
	})
	root.AddCommand(cmd.Command{
		Name:  "set",
		Brief: "Set a display setting",
		Description: "Set the value of a display setting. With no" +
			" arguments, list all current settings.",
		Usage: "set [<var> <value>]",
		Data:  (*REPL).cmdSet,
	})
	root.AddCommand(cmd.Command{
		Name:        "quit",
		Brief:       "Quit the inspector",
		Description: "Quit the inspector.",
		Usage:       "quit",
		Data:        (*REPL).cmdQuit,
	})

	root.AddShortcut("?", "help")
	root.AddShortcut("s", "symbols")
	root.AddShortcut("w", "words")
	root.AddShortcut("d", "disasm")
	root.AddShortcut("e", "eval")
	root.AddShortcut("q", "quit")

	cmds = root
}

// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/beevik/asm10/asm"
	"github.com/beevik/asm10/inspect"
	"github.com/spf13/cobra"
)

var verbose bool

func main() {
	root := &cobra.Command{
		Use:   "asm10",
		Short: "Assembler and inspector for the 10-bit word machine",
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log each assembly step")
	root.AddCommand(buildCmd())
	root.AddCommand(inspectCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build FILE...",
		Short: "Assemble one or more source files",
		Long: "Assemble each FILE.as and, on success, write FILE.ob (always)," +
			" FILE.ent (if any entries) and FILE.ext (if any externs) into" +
			" the same directory. A diagnostic in one file does not stop" +
			" assembly of the rest.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(args)
		},
	}
}

func runBuild(args []string) error {
	failed := false
	for _, arg := range args {
		baseName := strings.TrimSuffix(arg, ".as")
		if err := buildFile(baseName); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", baseName, err)
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("one or more files failed to assemble")
	}
	return nil
}

func buildFile(baseName string) error {
	return asm.AssembleFile(baseName, verbose, os.Stdout)
}

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE.ob",
		Short: "Browse a previously assembled object file interactively",
		Long: "Load FILE.ob (and FILE.ent / FILE.ext, if present alongside" +
			" it) and open an interactive REPL for listing symbols, dumping" +
			" raw words, disassembling them back to mnemonic text, and" +
			" evaluating address expressions.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args[0])
		},
	}
}

func runInspect(path string) error {
	baseName := strings.TrimSuffix(strings.TrimSuffix(path, ".ob"), ".ent")
	baseName = strings.TrimSuffix(baseName, ".ext")

	snap, err := inspect.LoadSnapshot(baseName)
	if err != nil {
		return err
	}

	repl := inspect.NewREPL(snap)
	repl.Run(os.Stdin, os.Stdout, true)
	return nil
}

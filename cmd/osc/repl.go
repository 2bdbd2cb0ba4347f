package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/oscript-lang/oscript/pkg/diagnostics"
	"github.com/oscript-lang/oscript/pkg/evaluator"
	"github.com/oscript-lang/oscript/pkg/parser"
)

const (
	historyFile = ".oscript_history"
	promptMain  = ">> "
)

func cmdRepl(args []string) int {
	pretty := true
	for _, a := range args {
		if a == "--json" {
			pretty = false
		}
	}

	fmt.Println("OScript REPL. Ctrl+D or :quit to exit.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	// One interpreter for the whole session so bindings persist.
	in := evaluator.New(func(line string) { fmt.Println(line) })

	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			return 1
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if trimmed == ":quit" {
			return 0
		}

		ln.AppendHistory(line)

		program, diags := parser.Parse(line, "<repl>")
		if len(diags) > 0 {
			fmt.Fprintln(os.Stderr, diagnostics.FormatDiagnostics(diags, pretty))
			continue
		}

		last, execErr := in.ExecStatements(program.Statements)
		if execErr != nil {
			var rtErr *evaluator.RuntimeError
			if errors.As(execErr, &rtErr) {
				diag := diagnostics.MakeDiag(rtErr.Code, rtErr.Message, rtErr.Span, "")
				fmt.Fprintln(os.Stderr, diagnostics.FormatDiagnostics([]diagnostics.Diagnostic{diag}, pretty))
			} else {
				fmt.Fprintln(os.Stderr, execErr.Error())
			}
			continue
		}

		if last != nil {
			if _, isNull := last.(evaluator.Null); !isNull {
				fmt.Println(evaluator.Stringify(last))
			}
		}
	}
}

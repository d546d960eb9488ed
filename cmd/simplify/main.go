// cmd/simplify/main.go: simplify an expression from the command line
//
// Usage:
//
//	simplify [-latex] [-debug] [-json] [-raw] '<expression>'
//	simplify            # interactive REPL
//
// The simplified expression is printed as typesetter text, ready to hand to
// a Typst-style renderer.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/peterh/liner"

	goalgebra "github.com/njchilds90/goalgebra"
)

const (
	historyFile = ".goalgebra_history"
	prompt      = "==> "
)

const helpText = `REPL commands:
  :help    Show this help
  :quit    Exit the REPL
Anything else is parsed as an expression and simplified.`

type options struct {
	latex bool
	debug bool
	json  bool
	raw   bool
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("simplify: ")

	var opts options
	flag.BoolVar(&opts.latex, "latex", false, "also print LaTeX")
	flag.BoolVar(&opts.debug, "debug", false, "print the structural dump of the parsed and simplified trees")
	flag.BoolVar(&opts.json, "json", false, "print the simplified tree as JSON")
	flag.BoolVar(&opts.raw, "raw", false, "dump the simplified Go value")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] '<expression>'\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	os.Exit(dispatch(flag.Args(), opts, os.Stdout, os.Stderr, repl, flag.Usage))
}

// dispatch picks the mode from the positional arguments and returns the
// exit code: no argument starts the REPL, one is run, more print usage.
func dispatch(args []string, opts options, stdout, stderr io.Writer, startREPL func(options) int, usage func()) int {
	switch len(args) {
	case 0:
		return startREPL(opts)
	case 1:
		if err := run(stdout, args[0], opts); err != nil {
			reportError(stderr, err)
			return 1
		}
		return 0
	default:
		usage()
		return 2
	}
}

func reportError(w io.Writer, err error) {
	var se *goalgebra.SyntaxError
	if errors.As(err, &se) {
		fmt.Fprintln(w, se.Snippet())
		return
	}
	log.New(w, log.Prefix(), log.Flags()).Print(err)
}

// run parses, simplifies and prints one expression.
func run(w io.Writer, src string, opts options) error {
	expr, err := goalgebra.Parse(src)
	if err != nil {
		return err
	}
	simplified := expr.Simplify()

	fmt.Fprintf(w, "Simplified Expression: %s\n", simplified)
	if opts.latex {
		fmt.Fprintf(w, "LaTeX: %s\n", simplified.LaTeX())
	}
	if opts.debug {
		fmt.Fprintf(w, "Parsed:\n%s", goalgebra.Debug(expr))
		fmt.Fprintf(w, "Simplified:\n%s", goalgebra.Debug(simplified))
	}
	if opts.json {
		j, err := goalgebra.ToJSON(simplified)
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		fmt.Fprintln(w, j)
	}
	if opts.raw {
		spew.Fdump(w, simplified)
	}
	return nil
}

func repl(opts options) int {
	fmt.Println("goalgebra REPL. Ctrl+D exits, :help for commands.")

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

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Println()
			return 0
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case ":quit":
			return 0
		case ":help":
			fmt.Println(helpText)
			continue
		}

		ln.AppendHistory(line)
		if err := run(os.Stdout, line, opts); err != nil {
			reportError(os.Stderr, err)
		}
	}
}

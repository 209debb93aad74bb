package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/zephyrtronium/xexpr"
)

const replHelp = `Enter an expression in x to evaluate it.
:x v1 v2 ...   set the values of x
:docs          list names and operators
:quit          exit`

// repl reads and evaluates expressions from the terminal until EOF or
// :quit. History is loaded from and saved to histfile if it is not empty.
func (ev *evaluator) repl(histfile string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(complete)

	if histfile != "" {
		if f, err := os.Open(histfile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histfile); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	fmt.Fprintln(ev.w, replHelp)
	for {
		line, err := ln.Prompt("x> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(ev.w)
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)
		if strings.HasPrefix(line, ":") {
			if ev.command(line) {
				return nil
			}
			continue
		}
		ev.run(source{text: line})
	}
}

// command runs a REPL command and reports whether the REPL should exit.
func (ev *evaluator) command(line string) bool {
	f := strings.Fields(line)
	switch f[0] {
	case ":quit", ":q":
		return true
	case ":docs":
		printDocs(ev.w)
	case ":x":
		xs := make([]float64, 0, len(f)-1)
		for _, s := range f[1:] {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				fmt.Fprintf(ev.w, "bad value for x: %v\n", err)
				return false
			}
			xs = append(xs, v)
		}
		if len(xs) == 0 {
			fmt.Fprintf(ev.w, "x = %v\n", ev.xs)
			return false
		}
		ev.xs = xs
	default:
		fmt.Fprintln(ev.w, replHelp)
	}
	return false
}

// complete completes the symbol name at the end of line.
func complete(line string) []string {
	k := len(line)
	for k > 0 && isword(line[k-1]) {
		k--
	}
	head, word := line[:k], line[k:]
	if word == "" {
		return nil
	}
	var r []string
	for _, s := range xexpr.Symbols() {
		switch s.Category {
		case xexpr.Function:
			if strings.HasPrefix(s.Name, word) {
				r = append(r, head+s.Name+"(")
			}
		case xexpr.Variable, xexpr.Constant:
			if strings.HasPrefix(s.Name, word) {
				r = append(r, head+s.Name)
			}
		}
	}
	return r
}

func isword(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

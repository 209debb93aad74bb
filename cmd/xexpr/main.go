package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xyproto/env/v2"

	"github.com/zephyrtronium/xexpr"
	"github.com/zephyrtronium/xexpr/internal/curve"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb     string
		presetfile, use  string
		imgin, imgout    string
		rsrc, gsrc, bsrc string
		histfile         string
		xs               []float64
		samples          int
		echo, list, docs bool
		repl             bool
	)
	addx := func(s string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("bad value for x: %w", err)
		}
		xs = append(xs, v)
		return nil
	}
	home, _ := os.UserHomeDir()
	flag.StringVar(&inname, "in", "", "input file, one expression per line (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", env.Str("XEXPR_FMT", "%g"), "result formatting string")
	flag.Func("x", "value of x (any number of times, default 0.5)", addx)
	flag.IntVar(&samples, "samples", env.Int("XEXPR_SAMPLES", 0), "print each curve sampled at `n` points from 0 to 1")
	flag.BoolVar(&echo, "echo", false, "print compiled programs")
	flag.StringVar(&presetfile, "presets", "", "YAML `file` of named expressions")
	flag.StringVar(&use, "use", "", "evaluate the preset with this `name`")
	flag.BoolVar(&list, "list", false, "list presets and exit")
	flag.BoolVar(&docs, "docs", false, "list the names and operators expressions may use and exit")
	flag.BoolVar(&repl, "repl", false, "read expressions interactively")
	flag.StringVar(&histfile, "history", env.Str("XEXPR_HISTORY", filepath.Join(home, ".xexpr_history")), "REPL history `file`")
	flag.StringVar(&imgin, "image", "", "PNG `file` to apply a tone curve to")
	flag.StringVar(&imgout, "out", "", "PNG `file` to write the curved image to")
	flag.StringVar(&rsrc, "r", "", "red channel expression for -image")
	flag.StringVar(&gsrc, "g", "", "green channel expression for -image")
	flag.StringVar(&bsrc, "b", "", "blue channel expression for -image")
	flag.Parse()
	if samples < 0 {
		log.Fatalf("sample count (%d) must not be negative", samples)
	}
	if len(xs) == 0 {
		xs = []float64{0.5}
	}

	if docs {
		printDocs(os.Stdout)
		return
	}

	var ps presets
	if presetfile != "" {
		var err error
		ps, err = loadPresets(presetfile)
		if err != nil {
			log.Fatal(err)
		}
	}
	if list {
		ps.print(os.Stdout)
		return
	}
	var sel *preset
	if use != "" {
		p, ok := ps[use]
		if !ok {
			log.Fatalf("no preset named %q", use)
		}
		sel = &p
	}

	// Diagnostics name the expression they came from.
	xexpr.SetErrorHandler(logDiag, "input")

	if imgin != "" {
		if imgout == "" {
			log.Fatal("-image requires -out")
		}
		if sel != nil {
			rsrc, gsrc, bsrc = sel.channels(rsrc, gsrc, bsrc)
		}
		if err := curveImage(context.Background(), imgin, imgout, rsrc, gsrc, bsrc); err != nil {
			log.Fatal(err)
		}
		return
	}

	ev := evaluator{w: os.Stdout, verb: verb + "\n", xs: xs, samples: samples, echo: echo}
	if repl {
		if err := ev.repl(histfile); err != nil {
			log.Fatal(err)
		}
		return
	}

	var srcs []source
	if sel != nil {
		srcs = append(srcs, source{name: "preset " + use, text: sel.Expr})
	}
	f, err := infile(inname, flag.NArg() == 0 && sel == nil)
	if err != nil {
		log.Fatal(err)
	}
	if f != nil {
		b, err := io.ReadAll(f)
		if err != nil {
			log.Fatal(err)
		}
		for i, line := range curve.SplitLines(string(b)) {
			srcs = append(srcs, source{name: "line " + strconv.Itoa(i+1), text: line})
		}
	}
	for i, arg := range flag.Args() {
		srcs = append(srcs, source{name: "arg " + strconv.Itoa(i+1), text: arg})
	}

	failed := false
	for _, s := range srcs {
		if !ev.run(s) {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// source is one expression and a description of where it came from.
type source struct {
	name string
	text string
}

// evaluator compiles and prints expressions.
type evaluator struct {
	w       io.Writer
	verb    string
	xs      []float64
	samples int
	echo    bool
}

// run compiles and prints one expression. It returns false if the expression
// is invalid, after the error handler has reported it. Sources without names
// report to the process handler.
func (ev *evaluator) run(s source) bool {
	var opts []xexpr.CompileOption
	if s.name != "" {
		opts = append(opts, withName(s.name))
	}
	p, err := xexpr.Compile(s.text, opts...)
	if err != nil {
		if errors.Is(err, xexpr.ErrTooLong) {
			log.Printf("%s: %v", s.name, err)
		}
		return false
	}
	defer p.Release()
	if ev.echo {
		fmt.Fprintf(ev.w, "%v : ", p)
	}
	for _, x := range ev.xs {
		fmt.Fprintf(ev.w, ev.verb, p.Eval(x))
	}
	if ev.samples > 0 {
		d := float64(ev.samples - 1)
		if d == 0 {
			d = 1
		}
		for i, y := range curve.Sample(p, ev.samples) {
			fmt.Fprintf(ev.w, "%g\t%g\n", float64(i)/d, y)
		}
	}
	return true
}

// logDiag logs a compile diagnostic prefixed by the name of its source.
func logDiag(msg string, ctx interface{}) {
	log.Printf("%v: %s", ctx, msg)
}

func withName(name string) xexpr.CompileOption {
	return xexpr.HandleErrors(logDiag, name)
}

func infile(inname string, std bool) (io.Reader, error) {
	var f *os.File
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		f = in
	case inname == "-", std:
		f = os.Stdin
	}
	if f == nil {
		return nil, nil
	}
	return bufio.NewReader(f), nil
}

// printDocs lists every recognized symbol, grouped by category.
func printDocs(w io.Writer) {
	var last xexpr.Category = -1
	for _, s := range xexpr.Symbols() {
		if s.Category != last {
			if last >= 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%s:\n", s.Category)
			last = s.Category
		}
		switch s.Category {
		case xexpr.Function:
			fmt.Fprintf(w, "\t%s/%d\t%s\n", s.Name, s.Arity, s.Doc)
		case xexpr.Operator:
			if s.Arity == 1 {
				fmt.Fprintf(w, "\t%s\tunary\t%s\n", s.Name, s.Doc)
			} else {
				fmt.Fprintf(w, "\t%s\tprec %d\t%s\n", s.Name, s.Prec, s.Doc)
			}
		case xexpr.Punctuation:
			fmt.Fprintf(w, "\t%s\n", s.Name)
		default:
			fmt.Fprintf(w, "\t%s\t%s\n", s.Name, s.Doc)
		}
	}
}

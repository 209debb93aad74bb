package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// preset is a named expression. The channel expressions override Expr when
// curving images.
type preset struct {
	Doc  string `yaml:"doc"`
	Expr string `yaml:"expr"`
	R    string `yaml:"r"`
	G    string `yaml:"g"`
	B    string `yaml:"b"`
}

// channels returns the red, green, and blue expressions of the preset. Each
// explicit argument takes precedence over the preset.
func (p *preset) channels(r, g, b string) (string, string, string) {
	pick := func(flag, ch string) string {
		switch {
		case flag != "":
			return flag
		case ch != "":
			return ch
		default:
			return p.Expr
		}
	}
	return pick(r, p.R), pick(g, p.G), pick(b, p.B)
}

// presets maps names to presets.
type presets map[string]preset

func loadPresets(name string) (presets, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return parsePresets(b)
}

func parsePresets(b []byte) (presets, error) {
	var ps presets
	if err := yaml.Unmarshal(b, &ps); err != nil {
		return nil, fmt.Errorf("reading presets: %w", err)
	}
	for name, p := range ps {
		if p.Expr == "" && p.R == "" && p.G == "" && p.B == "" {
			return nil, fmt.Errorf("preset %q has no expressions", name)
		}
	}
	return ps, nil
}

// print lists presets in name order.
func (ps presets) print(w io.Writer) {
	names := make([]string, 0, len(ps))
	for name := range ps {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p := ps[name]
		fmt.Fprintf(w, "%s\t%s", name, p.Expr)
		if p.R != "" || p.G != "" || p.B != "" {
			r, g, b := p.channels("", "", "")
			fmt.Fprintf(w, "\t[r: %s; g: %s; b: %s]", r, g, b)
		}
		if p.Doc != "" {
			fmt.Fprintf(w, "\t# %s", p.Doc)
		}
		fmt.Fprintln(w)
	}
}

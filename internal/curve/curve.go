// Package curve builds 8-bit tone curves from expressions.
package curve

import (
	"context"
	"fmt"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/zephyrtronium/xexpr"
)

// Sample evaluates p at n evenly spaced points from 0 to 1 inclusive. Results
// are clamped to [0, 1], and NaN becomes 0. If n is 1, the only sample is at
// 0.
func Sample(p *xexpr.Program, n int) []float64 {
	if n <= 0 {
		return nil
	}
	r := make([]float64, n)
	d := float64(n - 1)
	if n == 1 {
		d = 1
	}
	for i := range r {
		r[i] = clamp(p.Eval(float64(i) / d))
	}
	return r
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Bytes samples p at the 256 levels of an 8-bit channel.
func Bytes(p *xexpr.Program) [256]byte {
	var r [256]byte
	for i, v := range Sample(p, len(r)) {
		r[i] = byte(v * 255)
	}
	return r
}

var identity = Bytes(xexpr.MustCompile("x"))

// Identity returns the map of the expression x.
func Identity() [256]byte {
	return identity
}

// Map is a lookup table for each of the red, green, and blue channels.
type Map struct {
	R, G, B [256]byte
}

// Build compiles the three channel expressions and samples them
// concurrently. A channel whose expression fails to compile keeps the
// identity map. The first failure cancels the channels not yet sampled,
// which also keep the identity map, and is returned wrapped with the
// channel name. opts are passed to each compile.
func Build(ctx context.Context, r, g, b string, opts ...xexpr.CompileOption) (*Map, error) {
	m := &Map{R: identity, G: identity, B: identity}
	chans := []struct {
		name string
		src  string
		dst  *[256]byte
	}{
		{"red", r, &m.R},
		{"green", g, &m.G},
		{"blue", b, &m.B},
	}
	eg, ctx := errgroup.WithContext(ctx)
	for _, c := range chans {
		c := c
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := xexpr.Compile(c.src, opts...)
			if err != nil {
				return fmt.Errorf("%s channel: %w", c.name, err)
			}
			defer p.Release()
			if err := ctx.Err(); err != nil {
				return err
			}
			*c.dst = Bytes(p)
			return nil
		})
	}
	return m, eg.Wait()
}

// Apply remaps interleaved 8-bit pixels in place. bpp is the number of bytes
// per pixel. Pixels of at least three channels have their first three
// remapped as red, green, and blue; smaller pixels have only their first
// channel remapped, using the red map. A trailing partial pixel is left
// alone.
func (m *Map) Apply(pix []byte, bpp int) {
	if bpp <= 0 {
		return
	}
	for len(pix) >= bpp {
		if bpp >= 3 {
			pix[0] = m.R[pix[0]]
			pix[1] = m.G[pix[1]]
			pix[2] = m.B[pix[2]]
		} else {
			pix[0] = m.R[pix[0]]
		}
		pix = pix[bpp:]
	}
}

// SplitLines splits stored expression text into one expression per line.
// Leading and trailing whitespace is removed, each run of whitespace
// containing a line break becomes a single line break, and every other run
// of whitespace and control characters becomes a single space. Blank lines
// disappear. Empty or all-whitespace text has no lines.
func SplitLines(s string) []string {
	var b strings.Builder
	i := 0
	for i < len(s) && s[i] <= ' ' {
		i++
	}
	for i < len(s) {
		if s[i] > ' ' {
			b.WriteByte(s[i])
			i++
			continue
		}
		nl := false
		for i < len(s) && s[i] <= ' ' {
			nl = nl || s[i] == '\n' || s[i] == '\r'
			i++
		}
		if i == len(s) {
			break
		}
		if nl {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}
	if b.Len() == 0 {
		return nil
	}
	return strings.Split(b.String(), "\n")
}

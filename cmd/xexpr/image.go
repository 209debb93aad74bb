package main

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	"github.com/zephyrtronium/xexpr/internal/curve"
)

// curveImage applies a tone curve to the PNG file in and writes the result
// to the PNG file out. Empty channel expressions are the identity.
func curveImage(ctx context.Context, in, out, r, g, b string) error {
	src, err := readPNG(in)
	if err != nil {
		return err
	}
	m, err := curve.Build(ctx, r, g, b, withName(in))
	if err != nil {
		return err
	}
	dst := toNRGBA(src)
	m.Apply(dst.Pix, 4)
	return writePNG(out, dst)
}

func readPNG(name string) (image.Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return img, nil
}

// toNRGBA copies img into a non-premultiplied RGBA image so that curves
// apply to the stored channel values.
func toNRGBA(img image.Image) *image.NRGBA {
	if m, ok := img.(*image.NRGBA); ok {
		return m
	}
	b := img.Bounds()
	m := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(m, m.Bounds(), img, b.Min, draw.Src)
	return m
}

func writePNG(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	return f.Close()
}

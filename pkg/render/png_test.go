package render

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/matzehuels/tompkins/pkg/fonts"
	"github.com/matzehuels/tompkins/pkg/triangle"
)

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode PNG: %v", err)
	}
	return img
}

func TestRenderPNG(t *testing.T) {
	tri := mustGenerate(t, 4, 8)
	opts := DefaultOptions()

	data, err := RenderPNG(context.Background(), tri, ValueSelection{Value: 25, Color: opts.HighlightColor}, opts)
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img := decodePNG(t, data)

	fs := fonts.NewSet()
	defer fs.Close()
	l, err := ComputeLayout(tri, nil, opts, fs)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != int(l.Width) || b.Dy() != int(l.Height) {
		t.Errorf("image is %dx%d, layout is %vx%v", b.Dx(), b.Dy(), l.Width, l.Height)
	}

	// corner pixel is background
	r, g, b, _ := img.At(0, 0).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("corner pixel = %v, want white", img.At(0, 0))
	}
}

func TestRenderPNGHighlightAbsent(t *testing.T) {
	// 25 does not occur in the first five rows of T_4
	tri := mustGenerate(t, 4, 5)
	if tri.Contains(25) {
		t.Fatal("fixture should not contain 25")
	}
	opts := DefaultOptions()
	sel := ValueSelection{Value: 25, Color: opts.HighlightColor}

	data, err := RenderPNG(context.Background(), tri, sel, opts)
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	decodePNG(t, data)

	plain, err := RenderPNG(context.Background(), tri, nil, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, plain) {
		t.Error("a selection matching nothing should draw the same image as no selection")
	}
}

func TestRenderPNGHighlightColorVisible(t *testing.T) {
	tri := mustGenerate(t, 4, 3)
	opts := DefaultOptions()
	opts.HighlightColor = Color{0, 0, 255, 255}

	data, err := RenderPNG(context.Background(), tri, DiagonalSelection{Diagonal: 0, Color: opts.HighlightColor}, opts)
	if err != nil {
		t.Fatal(err)
	}
	img := decodePNG(t, data)
	if !containsColor(img, color.NRGBA{0, 0, 255, 255}) {
		t.Error("highlight color not found in image")
	}

	data, err = RenderPNG(context.Background(), tri, nil, opts)
	if err != nil {
		t.Fatal(err)
	}
	if containsColor(decodePNG(t, data), color.NRGBA{0, 0, 255, 255}) {
		t.Error("highlight color drawn without a selection")
	}
}

func TestRenderPNGSingleRow(t *testing.T) {
	data, err := RenderPNG(context.Background(), mustGenerate(t, 3, 1), ValueSelection{Value: 7}, DefaultOptions())
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	decodePNG(t, data)
}

func TestRenderPNGCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RenderPNG(ctx, mustGenerate(t, 4, 8), nil, DefaultOptions())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RenderPNG(canceled) error = %v, want context.Canceled", err)
	}

	fs := fonts.NewSet()
	defer fs.Close()
	l, err := ComputeLayout(mustGenerate(t, 4, 8), nil, DefaultOptions(), fs)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DrawPNG(ctx, l, DefaultOptions(), fs); !errors.Is(err, context.Canceled) {
		t.Errorf("DrawPNG(canceled) error = %v, want context.Canceled", err)
	}
}

func TestRenderPNGMaxRowsWithinBudget(t *testing.T) {
	if testing.Short() {
		t.Skip("rasterizes a large triangle")
	}
	tri := mustGenerate(t, 3, triangle.MaxRows)
	opts := DefaultOptions()
	opts.MaxPixels = 4_000_000

	data, err := RenderPNG(context.Background(), tri, ValueSelection{Value: 1, Color: opts.HighlightColor}, opts)
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	b := decodePNG(t, data).Bounds()
	if area := float64(b.Dx() * b.Dy()); area > opts.MaxPixels {
		t.Errorf("image is %dx%d (%v pixels), budget %v", b.Dx(), b.Dy(), area, opts.MaxPixels)
	}
}

func containsColor(img image.Image, want color.NRGBA) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA) == want {
				return true
			}
		}
	}
	return false
}

package utils

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ClintFlames/mctools"
)

var (
	black = mctools.NewColor(0, 0, 0, 0xff)
	white = mctools.NewColor(0xff, 0xff, 0xff, 0xff)
	red   = mctools.NewColor(0xff, 0, 0, 0xff)
)

func gradient(n int) *mctools.Canvas {
	c := mctools.NewCanvas(n, n)
	for y := range n {
		for x := range n {
			c.SetPixel(x, y, mctools.NewColor(uint8(x*255/n), uint8(y*255/n), 0x40, 0xff))
		}
	}
	return c
}

func TestSortPaletteByBrightness(t *testing.T) {
	p := []mctools.Color{white, red, black}
	SortPaletteByBrightness(p)
	want := []mctools.Color{black, red, white}
	for i := range want {
		if p[i] != want[i] {
			t.Fatalf("sorted = %v, want %v", p, want)
		}
	}
}

func TestSelectDiverseWeightedColors(t *testing.T) {
	cands := []weightedColor{
		{Col: colorful.Color{R: 1, G: 0, B: 0}, Weight: 10},
		{Col: colorful.Color{R: 0.98, G: 0, B: 0}, Weight: 9},
		{Col: colorful.Color{R: 0, G: 0, B: 1}, Weight: 1},
	}
	got := SelectDiverseWeightedColors(cands, 2)
	want := []mctools.Color{red, mctools.NewColor(0, 0, 0xff, 0xff)}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("SelectDiverseWeightedColors = %v, want %v", got, want)
	}
	if got := SelectDiverseWeightedColors(cands, 10); len(got) != 3 {
		t.Errorf("k larger than candidates: got %d colors, want 3", len(got))
	}
	if got := SelectDiverseWeightedColors(nil, 3); got != nil {
		t.Errorf("no candidates: got %v", got)
	}
}

func TestHistogramSkipsTransparent(t *testing.T) {
	c := mctools.NewCanvas(4, 1)
	c.SetPixel(0, 0, red)
	c.SetPixel(1, 0, red)
	c.SetPixel(2, 0, mctools.NewColor(0, 0xff, 0, 0x80))
	h := histogram(c)
	if len(h) != 1 || h[0].Weight != 2 {
		t.Errorf("histogram = %+v, want one color of weight 2", h)
	}
}

func TestExtractPalette(t *testing.T) {
	c := gradient(16)
	for _, m := range []PaletteMethod{PaletteMethodDominantColor, PaletteMethodKMeans} {
		t.Run(m.String(), func(t *testing.T) {
			p := ExtractPalette(c, 3, m)
			if len(p) == 0 || len(p) > 3 {
				t.Fatalf("got %d colors, want 1..3", len(p))
			}
			for _, col := range p {
				if !col.Opaque() {
					t.Errorf("palette color %v is not opaque", col)
				}
			}
		})
	}
}

func TestExtractPaletteEmptyCanvas(t *testing.T) {
	c := mctools.NewCanvas(8, 8)
	if p := ExtractKMeansPalette(c, 3); p != nil {
		t.Errorf("kmeans palette of a transparent canvas = %v", p)
	}
	if p := ExtractPalette(c, 0, PaletteMethodDominantColor); p != nil {
		t.Errorf("k=0 palette = %v", p)
	}
}

func TestParsePaletteMethod(t *testing.T) {
	for _, m := range []PaletteMethod{PaletteMethodDominantColor, PaletteMethodKMeans} {
		got, ok := ParsePaletteMethod(m.String())
		if !ok || got != m {
			t.Errorf("ParsePaletteMethod(%q) = %v, %v", m.String(), got, ok)
		}
	}
	if _, ok := ParsePaletteMethod("median-cut"); ok {
		t.Errorf("unknown method accepted")
	}
}

func TestSwatch(t *testing.T) {
	s := Swatch([]mctools.Color{black, red}, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Fatalf("swatch is %dx%d, want 8x4", s.Width(), s.Height())
	}
	if s.Pixel(3, 3) != black || s.Pixel(4, 0) != red || s.Pixel(7, 3) != red {
		t.Errorf("swatch tiles are misplaced")
	}
}

func TestHex(t *testing.T) {
	if got := Hex(mctools.NewColor(0xaa, 0x10, 0x01, 0x20)); got != "#aa1001" {
		t.Errorf("Hex = %q, want #aa1001", got)
	}
}

func TestComputeStats(t *testing.T) {
	c := mctools.NewCanvas(4, 4)
	c.SetPixel(0, 0, mctools.NewColor(100, 0, 0, 0xff))
	c.SetPixel(1, 0, mctools.NewColor(200, 0, 0, 0xff))
	c.SetPixel(2, 0, mctools.NewColor(50, 50, 50, 0x80))
	c.SetPixel(3, 0, mctools.NewColor(9, 9, 9, 0)) // drawn, but weightless

	s := ComputeStats(c)
	if s.Pixels != 16 || s.Drawn != 4 || s.Opaque != 2 {
		t.Fatalf("counts = %+v", s)
	}
	if s.Coverage != 0.25 {
		t.Errorf("Coverage = %v, want 0.25", s.Coverage)
	}
	w := 128.0 / 255
	wantRed := (100 + 200 + 50*w) / (2 + w)
	if math.Abs(s.Mean[0]-wantRed) > 1e-9 {
		t.Errorf("Mean[0] = %v, want %v", s.Mean[0], wantRed)
	}
	if s.StdDev[0] <= 0 {
		t.Errorf("StdDev[0] = %v, want > 0", s.StdDev[0])
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	s := ComputeStats(mctools.NewCanvas(16, 16))
	if s.Drawn != 0 || s.Coverage != 0 || s.Mean != [3]float64{} {
		t.Errorf("stats of an empty canvas = %+v", s)
	}
}

func TestUpscale(t *testing.T) {
	c := mctools.NewCanvas(2, 2)
	c.SetPixel(0, 0, red)
	c.SetPixel(1, 1, white)
	up := Upscale(c, 3)
	if up.Width() != 6 || up.Height() != 6 {
		t.Fatalf("upscaled to %dx%d, want 6x6", up.Width(), up.Height())
	}
	for y := range 6 {
		for x := range 6 {
			if got, want := up.Pixel(x, y), c.Pixel(x/3, y/3); got != want {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestThumbnail(t *testing.T) {
	c := gradient(64)
	th := Thumbnail(c, 16)
	if th.Width() != 16 || th.Height() != 16 {
		t.Errorf("thumbnail is %dx%d, want 16x16", th.Width(), th.Height())
	}
	small := Thumbnail(gradient(8), 16)
	if !small.Equal(gradient(8)) {
		t.Errorf("thumbnail of a small canvas should be a copy")
	}
}

func TestThumbnailUniform(t *testing.T) {
	col := mctools.NewColor(0x33, 0x66, 0x99, 0xff)
	c := mctools.NewCanvas(64, 64)
	c.Fill(col)
	th := Thumbnail(c, 16)
	for y := range th.Height() {
		for x := range th.Width() {
			if got := th.Pixel(x, y); got != col {
				t.Fatalf("thumbnail (%d,%d) = %v, want %v", x, y, got, col)
			}
		}
	}
}

func TestFlatten(t *testing.T) {
	c := mctools.NewCanvas(3, 1)
	c.SetPixel(0, 0, red)
	c.SetPixel(1, 0, mctools.NewColor(0, 0, 0xff, 0x80))
	f := Flatten(c, white)
	if got := f.Pixel(0, 0); got != red {
		t.Errorf("opaque pixel = %v, want %v", got, red)
	}
	if got, want := f.Pixel(1, 0), mctools.Composite(white, c.Pixel(1, 0)); got != want {
		t.Errorf("translucent pixel = %v, want %v", got, want)
	}
	if got := f.Pixel(2, 0); got != white {
		t.Errorf("transparent pixel = %v, want background %v", got, white)
	}
	if c.Pixel(2, 0) != mctools.Transparent {
		t.Errorf("Flatten modified its input")
	}
}

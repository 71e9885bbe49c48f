package mctools

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

var red = NewColor(0xaa, 0, 0, 0xff)

func checker(w, h int) *Canvas {
	c := NewCanvas(w, h)
	for y := range h {
		for x := range w {
			c.SetPixel(x, y, NewColor(uint8(x*16), uint8(y*16), uint8(x^y), uint8(0x40+x+y)))
		}
	}
	return c
}

func TestNewCanvasTransparent(t *testing.T) {
	c := NewCanvas(16, 16)
	if c.Width() != 16 || c.Height() != 16 {
		t.Fatalf("size = %dx%d, want 16x16", c.Width(), c.Height())
	}
	for y := range 16 {
		for x := range 16 {
			if p := c.Pixel(x, y); p != Transparent {
				t.Fatalf("pixel (%d,%d) = %v, want transparent", x, y, p)
			}
		}
	}
}

func TestPixelOutOfBounds(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Fill(red)
	before := c.Clone()
	for _, p := range []struct{ x, y int }{{-1, 0}, {4, 0}, {0, -1}, {0, 4}, {100, 100}} {
		c.SetPixel(p.x, p.y, Transparent)
		if got := c.Pixel(p.x, p.y); got != Transparent {
			t.Errorf("Pixel(%d,%d) = %v, want transparent", p.x, p.y, got)
		}
	}
	if !c.Equal(before) {
		t.Errorf("out-of-bounds SetPixel modified the canvas")
	}
}

func TestClearRect(t *testing.T) {
	c := checker(16, 16)
	before := c.Clone()
	if err := c.ClearRect(Pt(3, 4), Pt(5, 2)); err != nil {
		t.Fatalf("ClearRect: %v", err)
	}
	for y := range 16 {
		for x := range 16 {
			inside := x >= 3 && x < 8 && y >= 4 && y < 6
			got := c.Pixel(x, y)
			switch {
			case inside && got != Transparent:
				t.Errorf("pixel (%d,%d) = %v, want transparent", x, y, got)
			case !inside && got != before.Pixel(x, y):
				t.Errorf("pixel (%d,%d) = %v, want unchanged %v", x, y, got, before.Pixel(x, y))
			}
		}
	}
}

func TestClearRectErrors(t *testing.T) {
	tests := []struct {
		name      string
		pos, size Point
		want      error
	}{
		{"zero width", Pt(0, 0), Pt(0, 3), ErrZeroSize},
		{"zero height", Pt(0, 0), Pt(3, 0), ErrZeroSize},
		{"zero both", Pt(1, 1), Pt(0, 0), ErrZeroSize},
		{"overflow x", Pt(250, 0), Pt(10, 1), ErrOverflow},
		{"overflow y", Pt(0, 255), Pt(1, 1), ErrOverflow},
		{"out of bounds", Pt(14, 14), Pt(3, 1), ErrOutOfBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := checker(16, 16)
			before := c.Clone()
			err := c.ClearRect(tt.pos, tt.size)
			if !errors.Is(err, tt.want) {
				t.Fatalf("ClearRect error = %v, want %v", err, tt.want)
			}
			var re *RangeError
			if !errors.As(err, &re) || re.Op != "clear" {
				t.Errorf("error %v is not a clear RangeError", err)
			}
			if !c.Equal(before) {
				t.Errorf("failed ClearRect modified the canvas")
			}
		})
	}
}

func TestClearRectZeroSizeAnyN(t *testing.T) {
	c := NewCanvas(16, 16)
	for n := range 256 {
		if err := c.ClearRect(Pt(0, 0), Pt(0, uint8(n))); !errors.Is(err, ErrZeroSize) {
			t.Fatalf("size (0,%d): error = %v, want ErrZeroSize", n, err)
		}
		if err := c.ClearRect(Pt(0, 0), Pt(uint8(n), 0)); !errors.Is(err, ErrZeroSize) {
			t.Fatalf("size (%d,0): error = %v, want ErrZeroSize", n, err)
		}
	}
}

func TestBlitOpaqueUniform(t *testing.T) {
	src := NewCanvas(8, 8)
	src.Fill(red)
	dst := checker(16, 16)
	before := dst.Clone()
	if err := dst.Blit(src, R(2, 2, 4, 3), Pt(10, 12)); err != nil {
		t.Fatalf("Blit: %v", err)
	}
	for y := range 16 {
		for x := range 16 {
			inside := x >= 10 && x < 14 && y >= 12 && y < 15
			got := dst.Pixel(x, y)
			switch {
			case inside && got != red:
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, red)
			case !inside && got != before.Pixel(x, y):
				t.Errorf("pixel (%d,%d) = %v, want unchanged", x, y, got)
			}
		}
	}
}

func TestBlitComposites(t *testing.T) {
	src := checker(8, 8)
	src.SetPixel(1, 1, Transparent)
	dst := NewCanvas(4, 4)
	dst.Fill(red)
	if err := dst.Blit(src, R(0, 0, 4, 4), Pt(0, 0)); err != nil {
		t.Fatalf("Blit: %v", err)
	}
	for y := range 4 {
		for x := range 4 {
			want := Composite(red, src.Pixel(x, y))
			if got := dst.Pixel(x, y); got != want {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
	if got := dst.Pixel(1, 1); got != red {
		t.Errorf("transparent source replaced destination: got %v", got)
	}
}

func TestBlitErrors(t *testing.T) {
	src := checker(8, 8)
	tests := []struct {
		name string
		r    Rect
		dst  Point
		want error
	}{
		{"zero size", R(0, 0, 0, 2), Pt(0, 0), ErrZeroSize},
		{"source overflow", R(250, 0, 8, 1), Pt(0, 0), ErrOverflow},
		{"dest overflow", R(0, 0, 2, 2), Pt(0, 254), ErrOverflow},
		{"source out of bounds", R(6, 6, 4, 1), Pt(0, 0), ErrOutOfBounds},
		{"dest out of bounds", R(0, 0, 4, 4), Pt(14, 0), ErrOutOfBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := checker(16, 16)
			before := dst.Clone()
			err := dst.Blit(src, tt.r, tt.dst)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Blit error = %v, want %v", err, tt.want)
			}
			var re *RangeError
			if !errors.As(err, &re) || re.Op != "blit" {
				t.Errorf("error %v is not a blit RangeError", err)
			}
			if !dst.Equal(before) {
				t.Errorf("failed Blit modified the canvas")
			}
		})
	}
}

func TestCanvasImage(t *testing.T) {
	c := checker(5, 3)
	var img image.Image = c
	if b := img.Bounds(); b != image.Rect(0, 0, 5, 3) {
		t.Errorf("Bounds() = %v", b)
	}
	nrgba := image.NewNRGBA(img.Bounds())
	for y := range 3 {
		for x := range 5 {
			nrgba.SetNRGBA(x, y, c.Pixel(x, y).NRGBA())
		}
	}
	back := FromImage(nrgba)
	if !back.Equal(c) {
		t.Errorf("FromImage(NRGBA copy) differs from the original canvas")
	}
	if got := c.ColorModel().Convert(color.Transparent); got != Transparent {
		t.Errorf("ColorModel().Convert(color.Transparent) = %v", got)
	}
}

func TestCanvasRGBA64At(t *testing.T) {
	c := checker(4, 4)
	var img image.RGBA64Image = c
	for y := range 4 {
		for x := range 4 {
			got := img.RGBA64At(x, y)
			if !equal(got, c.At(x, y)) {
				t.Errorf("RGBA64At(%d, %d) = %v, want %v", x, y, got, c.At(x, y))
			}
		}
	}
	if got := c.RGBA64At(-1, 9); got != (color.RGBA64{}) {
		t.Errorf("RGBA64At outside = %v, want zero", got)
	}
}

func TestCheckSpanEmpty(t *testing.T) {
	for _, r := range []Rect{R(0, 0, 0, 4), R(3, 3, 4, 0)} {
		if !r.Empty() {
			t.Errorf("%v.Empty() = false", r)
		}
		if err := checkSpan(r.Min, r.Size); !errors.Is(err, ErrZeroSize) {
			t.Errorf("checkSpan(%v) = %v, want ErrZeroSize", r, err)
		}
	}
	if R(0, 0, 1, 1).Empty() {
		t.Errorf("1x1 rect reported empty")
	}
}

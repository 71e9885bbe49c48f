package mctools

import (
	"image"
	"image/color"
)

// Canvas is a fixed-size grid of Colors stored row-major.
// A Canvas is not safe for concurrent mutation.
type Canvas struct {
	width  int
	height int
	pix    []Color
}

// NewCanvas returns a width×height canvas with every pixel Transparent.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		width:  width,
		height: height,
		pix:    make([]Color, width*height),
	}
}

// FromImage copies img into a new canvas, converting each pixel to
// non-premultiplied 8-bit RGBA.
func FromImage(img image.Image) *Canvas {
	b := img.Bounds()
	c := NewCanvas(b.Dx(), b.Dy())
	for y := range c.height {
		for x := range c.width {
			c.pix[y*c.width+x] = colorModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(Color)
		}
	}
	return c
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.height
}

// Pixel returns the color at (x, y), or Transparent outside the canvas.
func (c *Canvas) Pixel(x, y int) Color {
	if !c.inside(x, y) {
		return Transparent
	}
	return c.pix[y*c.width+x]
}

// SetPixel overwrites the color at (x, y). Writes outside the canvas are ignored.
func (c *Canvas) SetPixel(x, y int, col Color) {
	if !c.inside(x, y) {
		return
	}
	c.pix[y*c.width+x] = col
}

// Fill overwrites every pixel with col.
func (c *Canvas) Fill(col Color) {
	for i := range c.pix {
		c.pix[i] = col
	}
}

// Clone returns an independent copy of c.
func (c *Canvas) Clone() *Canvas {
	d := NewCanvas(c.width, c.height)
	copy(d.pix, c.pix)
	return d
}

// Equal reports whether both canvases have the same size and pixels.
func (c *Canvas) Equal(o *Canvas) bool {
	if c.width != o.width || c.height != o.height {
		return false
	}
	for i, p := range c.pix {
		if o.pix[i] != p {
			return false
		}
	}
	return true
}

// Bounds implements image.Image.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}

// ColorModel implements image.Image.
func (c *Canvas) ColorModel() color.Model {
	return colorModel
}

// At implements image.Image.
func (c *Canvas) At(x, y int) color.Color {
	return c.Pixel(x, y)
}

// RGBA64At implements image.RGBA64Image. x/image/draw only scales into
// RGBA64Image destinations from sources that implement it too.
func (c *Canvas) RGBA64At(x, y int) color.RGBA64 {
	r, g, b, a := c.Pixel(x, y).RGBA()
	return color.RGBA64{R: uint16(r), G: uint16(g), B: uint16(b), A: uint16(a)}
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// contains reports whether the rectangle pos+size lies within the canvas.
// Callers have already ruled out byte overflow.
func (c *Canvas) contains(pos, size Point) bool {
	return int(pos.X)+int(size.X) <= c.width && int(pos.Y)+int(size.Y) <= c.height
}

// ClearRect sets every pixel of the size-sized rectangle at pos to Transparent.
// Nothing is modified when the rectangle is rejected.
func (c *Canvas) ClearRect(pos, size Point) error {
	if err := checkSpan(pos, size); err != nil {
		return &RangeError{Op: "clear", Pos: pos, Size: size, Err: err}
	}
	if !c.contains(pos, size) {
		return &RangeError{Op: "clear", Pos: pos, Size: size, Err: ErrOutOfBounds}
	}
	for y := int(pos.Y); y < int(pos.Y)+int(size.Y); y++ {
		row := c.pix[y*c.width : (y+1)*c.width]
		for x := int(pos.X); x < int(pos.X)+int(size.X); x++ {
			row[x] = Transparent
		}
	}
	return nil
}

// Blit composites the src window r of src onto c with its top-left corner at dst.
// Each destination pixel becomes Composite(existing, source); content is layered,
// never replaced. Nothing is modified when the rectangle is rejected.
func (c *Canvas) Blit(src *Canvas, r Rect, dst Point) error {
	if err := checkSpan(r.Min, r.Size); err != nil {
		return &RangeError{Op: "blit", Pos: r.Min, Size: r.Size, Err: err}
	}
	if err := checkSpan(dst, r.Size); err != nil {
		return &RangeError{Op: "blit", Pos: dst, Size: r.Size, Err: err}
	}
	if !src.contains(r.Min, r.Size) {
		return &RangeError{Op: "blit", Pos: r.Min, Size: r.Size, Err: ErrOutOfBounds}
	}
	if !c.contains(dst, r.Size) {
		return &RangeError{Op: "blit", Pos: dst, Size: r.Size, Err: ErrOutOfBounds}
	}

	w, h := int(r.Size.X), int(r.Size.Y)
	for y := range h {
		srow := src.pix[(int(r.Min.Y)+y)*src.width+int(r.Min.X):][:w]
		drow := c.pix[(int(dst.Y)+y)*c.width+int(dst.X):][:w]
		for x, s := range srow {
			drow[x] = Composite(drow[x], s)
		}
	}
	return nil
}

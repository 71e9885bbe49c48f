package utils

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/ClintFlames/mctools"
)

// Upscale enlarges c by factor with nearest-neighbour sampling, keeping the
// pixel-art look of a 16×16 totem.
func Upscale(c *mctools.Canvas, factor int) *mctools.Canvas {
	factor = max(factor, 1)
	dst := image.NewNRGBA(image.Rect(0, 0, c.Width()*factor, c.Height()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), c, c.Bounds(), draw.Src, nil)
	return mctools.FromImage(dst)
}

// Thumbnail shrinks c to fit within size×size, averaging pixels.
func Thumbnail(c *mctools.Canvas, size int) *mctools.Canvas {
	w, h := c.Width(), c.Height()
	if w <= size && h <= size {
		return c.Clone()
	}
	if w >= h {
		w, h = size, max(1, h*size/w)
	} else {
		w, h = max(1, w*size/h), size
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), c, c.Bounds(), draw.Src, nil)
	return mctools.FromImage(dst)
}

// Flatten composites c over a solid background color.
func Flatten(c *mctools.Canvas, bg mctools.Color) *mctools.Canvas {
	out := mctools.NewCanvas(c.Width(), c.Height())
	for y := range c.Height() {
		for x := range c.Width() {
			out.SetPixel(x, y, mctools.Composite(bg, c.Pixel(x, y)))
		}
	}
	return out
}

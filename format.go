package mctools

// Format is the pixel layout of a raw image buffer.
type Format uint8

const (
	Grayscale Format = iota
	GrayscaleAlpha
	Indexed
	RGB
	RGBA
)

var formatNames = [...]string{
	Grayscale:      "grayscale",
	GrayscaleAlpha: "grayscale+alpha",
	Indexed:        "indexed",
	RGB:            "rgb",
	RGBA:           "rgba",
}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return "unknown"
}

// BytesPerPixel returns how many bytes one pixel occupies at 8 bits per channel,
// or 0 for an unknown format.
func (f Format) BytesPerPixel() int {
	switch f {
	case Grayscale, Indexed:
		return 1
	case GrayscaleAlpha:
		return 2
	case RGB:
		return 3
	case RGBA:
		return 4
	}
	return 0
}

// Decode builds a width×height canvas from a tightly packed pixel buffer.
// depth must be 8. palette holds RGB triples and is only used, and required,
// for Indexed.
//
// Opaque formats treat near-black as transparent: an RGB pixel of exactly
// (0,0,0), a gray value <= 1 and a palette entry whose channels are all <= 1
// all decode to Transparent. Alpha formats pass through unchanged.
func Decode(pix []byte, width, height int, format Format, depth uint8, palette []byte) (*Canvas, error) {
	if depth != 8 {
		return nil, &DecodeError{Err: ErrUnsupportedBitDepth}
	}
	bpp := format.BytesPerPixel()
	if bpp == 0 {
		return nil, &DecodeError{Err: ErrUnsupportedFormat}
	}
	if format == Indexed && palette == nil {
		return nil, &DecodeError{Err: ErrMissingPalette}
	}
	if len(pix) < width*height*bpp {
		return nil, &DecodeError{Err: ErrShortBuffer}
	}

	c := NewCanvas(width, height)
	for y := range height {
		for x := range width {
			i := (y*width + x) * bpp
			var col Color
			switch format {
			case Grayscale:
				if v := pix[i]; v > 1 {
					col = NewColor(v, v, v, 0xff)
				}
			case GrayscaleAlpha:
				v := pix[i]
				col = NewColor(v, v, v, pix[i+1])
			case Indexed:
				pi := int(pix[i]) * 3
				if pi+2 >= len(palette) {
					return nil, &DecodeError{Err: ErrPaletteIndex}
				}
				r, g, b := palette[pi], palette[pi+1], palette[pi+2]
				if r > 1 || g > 1 || b > 1 {
					col = NewColor(r, g, b, 0xff)
				}
			case RGB:
				r, g, b := pix[i], pix[i+1], pix[i+2]
				if r != 0 || g != 0 || b != 0 {
					col = NewColor(r, g, b, 0xff)
				}
			case RGBA:
				col = NewColor(pix[i], pix[i+1], pix[i+2], pix[i+3])
			}
			c.pix[y*width+x] = col
		}
	}
	return c, nil
}

// Encode returns the canvas as tightly packed 8-bit RGBA, row-major.
func (c *Canvas) Encode() []byte {
	out := make([]byte, 0, len(c.pix)*4)
	for _, p := range c.pix {
		r, g, b, a := p.Bytes()
		out = append(out, r, g, b, a)
	}
	return out
}

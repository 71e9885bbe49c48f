package mctools

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is a straight-alpha RGBA value packed as 0xRRGGBBAA.
// The zero value is the transparent sentinel.
type Color uint32

// Transparent is the "nothing drawn here" sentinel.
const Transparent Color = 0

// NewColor packs four channel bytes into a Color.
func NewColor(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// Bytes unpacks c into its red, green, blue and alpha bytes.
func (c Color) Bytes() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Alpha returns the alpha byte.
func (c Color) Alpha() uint8 {
	return uint8(c)
}

// Opaque reports whether the alpha byte is 0xFF.
func (c Color) Opaque() bool {
	return c.Alpha() == 0xff
}

// NRGBA converts c to the standard library's non-premultiplied color.
func (c Color) NRGBA() color.NRGBA {
	r, g, b, a := c.Bytes()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

func (c Color) String() string {
	return fmt.Sprintf("#%08x", uint32(c))
}

// ParseColor parses "#rrggbb" or "#rrggbbaa". A missing alpha means opaque.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 6:
		hex += "ff"
	case 8:
	default:
		return Transparent, fmt.Errorf("mctools: invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Transparent, fmt.Errorf("mctools: invalid color %q: %w", s, err)
	}
	return Color(v), nil
}

// colorModel converts arbitrary colors to Color.
var colorModel = color.ModelFunc(func(c color.Color) color.Color {
	if c, ok := c.(Color); ok {
		return c
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return NewColor(n.R, n.G, n.B, n.A)
})

// Composite paints overlay on top of base (alpha-over, straight alpha).
// It is not symmetric.
func Composite(base, overlay Color) Color {
	if base == Transparent || overlay.Opaque() {
		return overlay
	}
	if overlay == Transparent {
		return base
	}

	br, bg, bb, ba := base.Bytes()
	or, og, ob, oa := overlay.Bytes()

	// With alphas normalized to [0,1] and both sides scaled by 255*255:
	//   alpha_out = (ab*255 + ao*(255-ab)) / 255
	//   channel   = (cb*ab*255 + co*ao*(255-ab)) / (ab*255 + ao*(255-ab))
	// Integer division keeps the truncation exact.
	wb := uint32(ba) * 255
	wo := uint32(oa) * (255 - uint32(ba))
	den := wb + wo
	if den == 0 {
		return Transparent
	}

	channel := func(b, o uint8) uint8 {
		return uint8((uint32(b)*wb + uint32(o)*wo) / den)
	}
	return NewColor(
		channel(br, or),
		channel(bg, og),
		channel(bb, ob),
		uint8(den/255),
	)
}

package utils

import (
	"image/color"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"go.uber.org/zap"

	"github.com/ClintFlames/mctools"
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

// ParsePaletteMethod maps a method name back to its PaletteMethod.
func ParsePaletteMethod(s string) (PaletteMethod, bool) {
	switch s {
	case "kmeans":
		return PaletteMethodKMeans, true
	case "dominantcolor", "":
		return PaletteMethodDominantColor, true
	}
	return PaletteMethodDominantColor, false
}

type weightedColor struct {
	Col    colorful.Color
	Weight float64
}

// SortPaletteByBrightness orders colors from darkest to brightest.
func SortPaletteByBrightness(palette []mctools.Color) {
	slices.SortStableFunc(palette, func(a, b mctools.Color) int {
		yi, yj := luminance(a), luminance(b)
		if yi < yj {
			return -1
		}
		if yi > yj {
			return 1
		}
		return 0
	})
}

func luminance(c mctools.Color) float64 {
	r, g, b := toColorful(c).LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func toColorful(c mctools.Color) colorful.Color {
	r, g, b, _ := c.Bytes()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func fromColorful(c colorful.Color) mctools.Color {
	r, g, b := c.Clamped().RGB255()
	return mctools.NewColor(r, g, b, 0xff)
}

// opaqueOnly hides everything but fully opaque pixels, so the transparent
// background of a totem does not dominate its palette.
type opaqueOnly struct {
	*mctools.Canvas
}

func (o opaqueOnly) At(x, y int) color.Color {
	if c := o.Pixel(x, y); c.Opaque() {
		return c
	}
	return mctools.Transparent
}

// ExtractDominantPalette picks k visually distinct colors among the most
// common opaque colors of c.
func ExtractDominantPalette(c *mctools.Canvas, k int) []mctools.Color {
	if k <= 0 {
		return nil
	}

	nCandidates := max(24, k*8)
	candidates := dominantcolor.FindWeight(opaqueOnly{c}, nCandidates)
	weighted := make([]weightedColor, 0, len(candidates))
	for _, cand := range candidates {
		col, ok := colorful.MakeColor(cand.RGBA)
		if !ok {
			continue
		}
		w := cand.Weight
		if w <= 0 {
			w = 1e-6
		}
		weighted = append(weighted, weightedColor{Col: col.Clamped(), Weight: w})
	}
	if len(weighted) == 0 {
		weighted = histogram(c)
	}
	return SelectDiverseWeightedColors(weighted, k)
}

// histogram counts exact opaque colors of c.
func histogram(c *mctools.Canvas) []weightedColor {
	counts := map[mctools.Color]int{}
	var order []mctools.Color
	for y := range c.Height() {
		for x := range c.Width() {
			p := c.Pixel(x, y)
			if !p.Opaque() {
				continue
			}
			if counts[p] == 0 {
				order = append(order, p)
			}
			counts[p]++
		}
	}
	out := make([]weightedColor, 0, len(order))
	for _, p := range order {
		out = append(out, weightedColor{Col: toColorful(p), Weight: float64(counts[p])})
	}
	return out
}

// SelectDiverseWeightedColors greedily picks k colors, starting from the
// heaviest and then favouring colors far (in Lab) from those already picked.
func SelectDiverseWeightedColors(cands []weightedColor, k int) []mctools.Color {
	if k <= 0 || len(cands) == 0 {
		return nil
	}
	type item struct {
		col colorful.Color
		lab [3]float64
		w   float64
	}
	items := make([]item, 0, len(cands))
	maxW := 0.0
	for _, c := range cands {
		col := c.Col.Clamped()
		l, a, b := col.Lab()
		w := max(c.Weight, 1e-6)
		maxW = max(maxW, w)
		items = append(items, item{col: col, lab: [3]float64{l, a, b}, w: w})
	}
	k = min(k, len(items))

	selectedIdx := make([]int, 0, k)
	selected := make([]bool, len(items))

	bestSeed := 0
	for i := 1; i < len(items); i++ {
		if items[i].w > items[bestSeed].w {
			bestSeed = i
		}
	}
	selectedIdx = append(selectedIdx, bestSeed)
	selected[bestSeed] = true

	for len(selectedIdx) < k {
		bestIdx := -1
		bestScore := -1.0
		for i := range items {
			if selected[i] {
				continue
			}
			minD2 := math.MaxFloat64
			for _, s := range selectedIdx {
				d0 := items[i].lab[0] - items[s].lab[0]
				d1 := items[i].lab[1] - items[s].lab[1]
				d2 := items[i].lab[2] - items[s].lab[2]
				minD2 = min(minD2, d0*d0+d1*d1+d2*d2)
			}
			normW := items[i].w / maxW
			score := math.Sqrt(minD2) * (0.55 + 0.45*math.Sqrt(normW))
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}
		selected[bestIdx] = true
		selectedIdx = append(selectedIdx, bestIdx)
	}

	out := make([]mctools.Color, 0, len(selectedIdx))
	for _, idx := range selectedIdx {
		out = append(out, fromColorful(items[idx].col))
	}
	return out
}

// ExtractKMeansPalette clusters the opaque pixels of c in RGB space.
func ExtractKMeansPalette(c *mctools.Canvas, k int) []mctools.Color {
	if k <= 0 {
		return nil
	}

	var dataset clusters.Observations
	for y := range c.Height() {
		for x := range c.Width() {
			p := c.Pixel(x, y)
			if !p.Opaque() {
				continue
			}
			col := toColorful(p)
			dataset = append(dataset, clusters.Coordinates{col.R, col.G, col.B})
		}
	}
	if len(dataset) == 0 {
		return nil
	}

	workK := min(max(k*4, k+2), len(dataset))
	cc, err := kmeans.New().Partition(dataset, workK)
	if err != nil || len(cc) == 0 {
		return nil
	}

	// Most populated clusters first.
	slices.SortFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	weighted := make([]weightedColor, 0, len(cc))
	for _, cl := range cc {
		if len(cl.Center) < 3 || len(cl.Observations) == 0 {
			continue
		}
		col := colorful.Color{R: cl.Center[0], G: cl.Center[1], B: cl.Center[2]}.Clamped()
		weighted = append(weighted, weightedColor{Col: col, Weight: float64(len(cl.Observations))})
	}
	return SelectDiverseWeightedColors(weighted, k)
}

// ExtractPalette returns up to k representative opaque colors of c.
func ExtractPalette(c *mctools.Canvas, k int, method PaletteMethod) []mctools.Color {
	switch method {
	case PaletteMethodKMeans:
		p := ExtractKMeansPalette(c, k)
		if len(p) != 0 {
			return p
		}
		zap.L().Warn("kmeans returned empty palette, falling back to dominantcolor", zap.Int("k", k))
		return ExtractDominantPalette(c, k)
	default:
		return ExtractDominantPalette(c, k)
	}
}

// Swatch lays palette out as a row of tileSize×tileSize squares.
func Swatch(palette []mctools.Color, tileSize int) *mctools.Canvas {
	if tileSize <= 0 {
		tileSize = 16
	}
	img := mctools.NewCanvas(tileSize*len(palette), tileSize)
	for i, c := range palette {
		x0 := i * tileSize
		for y := range tileSize {
			for x := x0; x < x0+tileSize; x++ {
				img.SetPixel(x, y, c)
			}
		}
	}
	return img
}

// Hex renders c as "#rrggbb", dropping alpha.
func Hex(c mctools.Color) string {
	return toColorful(c).Hex()
}

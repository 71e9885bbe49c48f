package utils

import (
	"gonum.org/v1/gonum/stat"

	"github.com/ClintFlames/mctools"
)

// Stats summarises the drawn pixels of a canvas.
type Stats struct {
	Pixels   int     // width*height
	Drawn    int     // pixels that are not the transparent sentinel
	Opaque   int     // pixels with alpha 0xFF
	Coverage float64 // Drawn / Pixels

	// Alpha-weighted channel means and standard deviations in [0,255].
	Mean   [3]float64
	StdDev [3]float64
}

// ComputeStats measures c. Transparent pixels carry no weight.
func ComputeStats(c *mctools.Canvas) Stats {
	s := Stats{Pixels: c.Width() * c.Height()}
	if s.Pixels == 0 {
		return s
	}

	var channels [3][]float64
	var weights []float64
	for y := range c.Height() {
		for x := range c.Width() {
			p := c.Pixel(x, y)
			if p == mctools.Transparent {
				continue
			}
			s.Drawn++
			if p.Opaque() {
				s.Opaque++
			}
			r, g, b, a := p.Bytes()
			if a == 0 {
				continue
			}
			channels[0] = append(channels[0], float64(r))
			channels[1] = append(channels[1], float64(g))
			channels[2] = append(channels[2], float64(b))
			weights = append(weights, float64(a)/255)
		}
	}
	s.Coverage = float64(s.Drawn) / float64(s.Pixels)
	if len(weights) == 0 {
		return s
	}
	for i, ch := range channels {
		s.Mean[i], s.StdDev[i] = stat.PopMeanStdDev(ch, weights)
	}
	return s
}

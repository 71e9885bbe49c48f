package mctools

import (
	"fmt"
	"math"
)

// Point is a position or a size in canvas coordinates.
// Coordinates are bytes: every canvas this package deals with is at most 255 wide.
type Point struct {
	X, Y uint8
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y uint8) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rect is a Size-sized window whose top-left corner is Min.
type Rect struct {
	Min  Point
	Size Point
}

// R is shorthand for Rect{Min: Pt(x, y), Size: Pt(w, h)}.
func R(x, y, w, h uint8) Rect {
	return Rect{Min: Pt(x, y), Size: Pt(w, h)}
}

func (r Rect) String() string {
	return fmt.Sprintf("%v+%v", r.Min, r.Size)
}

// Empty reports whether either dimension is zero.
func (r Rect) Empty() bool {
	return r.Size.X == 0 || r.Size.Y == 0
}

// checkSpan rejects zero sizes and positions whose end does not fit in a byte.
func checkSpan(pos, size Point) error {
	if (Rect{Size: size}).Empty() {
		return ErrZeroSize
	}
	if int(pos.X)+int(size.X) > math.MaxUint8 || int(pos.Y)+int(size.Y) > math.MaxUint8 {
		return ErrOverflow
	}
	return nil
}

package totem

import (
	"fmt"

	"github.com/ClintFlames/mctools"
)

// OpKind selects what an Op does to the totem.
type OpKind uint8

const (
	// Blit composites Src from the skin onto the totem at Dst.
	Blit OpKind = iota
	// Clear resets the Src.Size rectangle at Dst to transparent.
	Clear
)

func (k OpKind) String() string {
	switch k {
	case Blit:
		return "blit"
	case Clear:
		return "clear"
	}
	return fmt.Sprintf("OpKind(%d)", uint8(k))
}

// Op is one step of a layout.
type Op struct {
	Kind OpKind
	Src  mctools.Rect  // skin window; only Size is used by Clear
	Dst  mctools.Point // top-left corner on the totem
}

func (o Op) String() string {
	if o.Kind == Clear {
		return fmt.Sprintf("clear %v+%v", o.Dst, o.Src.Size)
	}
	return fmt.Sprintf("blit %v -> %v", o.Src, o.Dst)
}

func copyOp(sx, sy, w, h, dx, dy uint8) Op {
	return Op{Kind: Blit, Src: mctools.R(sx, sy, w, h), Dst: mctools.Pt(dx, dy)}
}

func clearOp(dx, dy, w, h uint8) Op {
	return Op{Kind: Clear, Src: mctools.R(0, 0, w, h), Dst: mctools.Pt(dx, dy)}
}

// Layout maps skin regions onto the totem. Ops are applied in order and each
// one composites over what the previous ones drew.
type Layout struct {
	Base        []Op
	SecondLayer []Op // applied after Base when the second layer is requested
}

// DefaultLayout is the classic 16×16 totem drawn from a 64×64 skin.
var DefaultLayout = Layout{
	Base: []Op{
		// head front; the two top corners are cut to round it off
		copyOp(8, 8, 8, 8, 4, 1),
		clearOp(4, 1, 1, 1),
		clearOp(11, 1, 1, 1),

		// body, one row every other skin row
		copyOp(20, 21, 8, 1, 4, 9),
		copyOp(20, 23, 8, 1, 4, 10),
		copyOp(20, 29, 8, 1, 4, 11),
		copyOp(20, 31, 8, 1, 4, 12),

		// right leg, then left leg
		copyOp(5, 20, 3, 2, 5, 13),
		copyOp(6, 31, 2, 1, 6, 15),
		copyOp(20, 52, 3, 2, 8, 13),
		copyOp(20, 63, 2, 1, 8, 15),

		// right arm
		copyOp(44, 20, 1, 1, 3, 8),
		copyOp(45, 20, 1, 1, 3, 9),
		copyOp(46, 20, 1, 1, 3, 10),
		copyOp(44, 21, 1, 1, 2, 8),
		copyOp(45, 21, 1, 1, 2, 9),
		copyOp(46, 21, 1, 1, 2, 10),
		copyOp(44, 31, 1, 1, 1, 8),
		copyOp(45, 31, 1, 1, 1, 9),

		// left arm, mirrored
		copyOp(39, 52, 1, 1, 12, 8),
		copyOp(38, 52, 1, 1, 12, 9),
		copyOp(37, 52, 1, 1, 12, 10),
		copyOp(39, 53, 1, 1, 13, 8),
		copyOp(38, 53, 1, 1, 13, 9),
		copyOp(37, 53, 1, 1, 13, 10),
		copyOp(37, 63, 1, 1, 14, 8),
		copyOp(38, 63, 1, 1, 14, 9),
	},
	SecondLayer: []Op{
		// hat
		copyOp(40, 8, 8, 8, 4, 1),

		// right sleeve
		copyOp(44, 36, 1, 1, 3, 8),
		copyOp(45, 36, 1, 1, 3, 9),
		copyOp(46, 36, 1, 1, 3, 10),
		copyOp(44, 37, 1, 1, 2, 8),
		copyOp(45, 37, 1, 1, 2, 9),
		copyOp(46, 37, 1, 1, 2, 10),
		copyOp(44, 47, 1, 1, 1, 8),
		copyOp(45, 47, 1, 1, 1, 9),

		// left sleeve
		copyOp(55, 52, 1, 1, 12, 8),
		copyOp(54, 52, 1, 1, 12, 9),
		copyOp(53, 52, 1, 1, 12, 10),
		copyOp(55, 53, 1, 1, 13, 8),
		copyOp(54, 53, 1, 1, 13, 9),
		copyOp(53, 53, 1, 1, 13, 10),
		copyOp(53, 63, 1, 1, 14, 8),
		copyOp(54, 63, 1, 1, 14, 9),

		// jacket
		copyOp(20, 37, 8, 1, 4, 9),
		copyOp(20, 39, 8, 1, 4, 10),
		copyOp(20, 45, 8, 1, 4, 11),
		copyOp(20, 47, 8, 1, 4, 12),

		// trousers
		copyOp(5, 36, 3, 2, 5, 13),
		copyOp(6, 47, 2, 1, 6, 15),
		copyOp(4, 52, 3, 2, 8, 13),
		copyOp(4, 63, 2, 1, 8, 15),
	},
}

// Ops returns the ops to apply, in order.
func (l Layout) Ops(secondLayer bool) []Op {
	ops := make([]Op, 0, len(l.Base)+len(l.SecondLayer))
	ops = append(ops, l.Base...)
	if secondLayer {
		ops = append(ops, l.SecondLayer...)
	}
	return ops
}

// Validate dry-runs every op against a skinW×skinH skin and a totemW×totemH
// totem and reports the first one Apply would reject.
func (l Layout) Validate(skinW, skinH, totemW, totemH int) error {
	skin := mctools.NewCanvas(skinW, skinH)
	dst := mctools.NewCanvas(totemW, totemH)
	for i, op := range l.Ops(true) {
		if err := op.apply(dst, skin); err != nil {
			return fmt.Errorf("totem: op %d (%v): %w", i, op, err)
		}
	}
	return nil
}

func (o Op) apply(dst, skin *mctools.Canvas) error {
	switch o.Kind {
	case Blit:
		return dst.Blit(skin, o.Src, o.Dst)
	case Clear:
		return dst.ClearRect(o.Dst, o.Src.Size)
	}
	return fmt.Errorf("totem: unknown op kind %v", o.Kind)
}

// Apply runs ops against dst in order, reading blit sources from skin.
// It stops at the first failing op and returns its error unchanged.
func Apply(dst, skin *mctools.Canvas, ops []Op) error {
	for _, op := range ops {
		if err := op.apply(dst, skin); err != nil {
			return err
		}
	}
	return nil
}

// Package totem turns a 64×64 skin into a 16×16 totem texture.
package totem

import (
	"errors"
	"fmt"

	"github.com/ClintFlames/mctools"
)

const (
	SkinSize = 64 // skin width and height
	Size     = 16 // totem width and height
)

// ErrInvalidSkinDimensions is returned when the skin is not SkinSize×SkinSize.
var ErrInvalidSkinDimensions = errors.New("skin must be 64x64")

type Options struct {
	// Draw the hat, sleeves, jacket and trousers over the base layer.
	SecondLayer bool
	// Layout to apply. Nil means DefaultLayout.
	Layout *Layout
}

func DefaultOptions() Options {
	return Options{
		SecondLayer: true,
	}
}

func (o Options) layout() Layout {
	if o.Layout == nil {
		return DefaultLayout
	}
	return *o.Layout
}

// Build draws a totem from skin using DefaultLayout.
func Build(skin *mctools.Canvas, secondLayer bool) (*mctools.Canvas, error) {
	return DefaultLayout.Build(skin, secondLayer)
}

// Build draws a totem from skin. The skin is only read.
// Any failing op aborts the build; no partial totem is returned.
func (l Layout) Build(skin *mctools.Canvas, secondLayer bool) (*mctools.Canvas, error) {
	if err := checkSkinSize(skin.Width(), skin.Height()); err != nil {
		return nil, err
	}
	dst := mctools.NewCanvas(Size, Size)
	if err := Apply(dst, skin, l.Ops(secondLayer)); err != nil {
		return nil, err
	}
	return dst, nil
}

func checkSkinSize(width, height int) error {
	if width != SkinSize || height != SkinSize {
		return fmt.Errorf("totem: %w, got %dx%d", ErrInvalidSkinDimensions, width, height)
	}
	return nil
}

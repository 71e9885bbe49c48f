package mctools

import (
	"errors"
	"fmt"
)

// Decode errors.
var (
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
	ErrUnsupportedFormat   = errors.New("unsupported color format")
	ErrMissingPalette      = errors.New("indexed image without palette")
	ErrShortBuffer         = errors.New("pixel buffer too short")
	ErrPaletteIndex        = errors.New("palette index out of range")
)

// Range errors.
var (
	ErrZeroSize    = errors.New("size can't be 0")
	ErrOverflow    = errors.New("position + size overflows")
	ErrOutOfBounds = errors.New("rectangle exceeds canvas bounds")
)

// DecodeError is returned by Decode.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "mctools: decode: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RangeError is returned by ClearRect and Blit when a rectangle is rejected.
// The canvas is left untouched.
type RangeError struct {
	Op   string // "clear" or "blit"
	Pos  Point
	Size Point
	Err  error
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("mctools: %s %v+%v: %v", e.Op, e.Pos, e.Size, e.Err)
}

func (e *RangeError) Unwrap() error {
	return e.Err
}

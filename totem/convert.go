package totem

import (
	"bytes"
	"io"

	"github.com/ClintFlames/mctools"
	"github.com/ClintFlames/mctools/codec"
)

// Decode reads a skin PNG from r. Streams whose header is not SkinSize×SkinSize
// are rejected before their pixels are decoded.
func Decode(r io.Reader) (*mctools.Canvas, error) {
	raw, err := codec.ReadChecked(r, checkSkinSize)
	if err != nil {
		return nil, err
	}
	return raw.Canvas()
}

// Convert reads a skin PNG from r and writes the totem PNG to w.
// Nothing is written to w unless the whole conversion succeeds.
func Convert(r io.Reader, w io.Writer, opts Options) error {
	skin, err := Decode(r)
	if err != nil {
		return err
	}
	t, err := opts.layout().Build(skin, opts.SecondLayer)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := codec.WriteCanvas(&buf, t); err != nil {
		return err
	}
	if _, err := buf.WriteTo(w); err != nil {
		return &codec.IOError{Op: "write", Err: err}
	}
	return nil
}

// ConvertFile converts the skin at skinPath into a totem at totemPath and
// returns the totem. totemPath is only created once the totem is encoded.
func ConvertFile(skinPath, totemPath string, opts Options) (*mctools.Canvas, error) {
	raw, err := codec.LoadChecked(skinPath, checkSkinSize)
	if err != nil {
		return nil, err
	}
	skin, err := raw.Canvas()
	if err != nil {
		return nil, err
	}
	t, err := opts.layout().Build(skin, opts.SecondLayer)
	if err != nil {
		return nil, err
	}
	if err := codec.Save(totemPath, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Package codec reads and writes PNG files for the totem converter.
//
// Read reports the image the way it is stored (color type, bit depth, palette)
// and hands back a tightly packed pixel buffer; interpreting those pixels is
// left to mctools.Decode. Write only ever emits 8-bit RGBA.
package codec

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/ClintFlames/mctools"
)

var (
	ErrNotPNG        = errors.New("not a PNG stream")
	ErrUnknownFormat = errors.New("unknown PNG color type")
)

// IOError reports a failure to open, create, read or write a stream,
// including PNG parse failures.
type IOError struct {
	Op   string
	Path string // empty for plain streams
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return "codec: " + e.Op + ": " + e.Err.Error()
	}
	return "codec: " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error { return e.Err }

// EncodeError reports a failure of the PNG encoder.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string { return "codec: encode: " + e.Err.Error() }

func (e *EncodeError) Unwrap() error { return e.Err }

// Raw is a decoded image before color interpretation.
type Raw struct {
	Width, Height int
	Format        mctools.Format
	Depth         uint8
	Pix           []byte // tightly packed, row-major; nil unless Depth is 8
	Palette       []byte // RGB triples, Indexed only
}

// Canvas interprets r with mctools.Decode.
func (r *Raw) Canvas() (*mctools.Canvas, error) {
	return mctools.Decode(r.Pix, r.Width, r.Height, r.Format, r.Depth, r.Palette)
}

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// PNG color types from the IHDR chunk.
const (
	ctGrayscale      = 0
	ctTrueColor      = 2
	ctPaletted       = 3
	ctGrayscaleAlpha = 4
	ctTrueColorAlpha = 6
)

var formats = map[byte]mctools.Format{
	ctGrayscale:      mctools.Grayscale,
	ctTrueColor:      mctools.RGB,
	ctPaletted:       mctools.Indexed,
	ctGrayscaleAlpha: mctools.GrayscaleAlpha,
	ctTrueColorAlpha: mctools.RGBA,
}

type header struct {
	width, height int
	depth         uint8
	colorType     byte
}

// readHeader parses the signature and the IHDR chunk that must follow it.
func readHeader(data []byte) (header, error) {
	// signature(8) length(4) "IHDR"(4) width(4) height(4) depth(1) color type(1)
	if len(data) < 26 || !bytes.Equal(data[:8], pngSignature) || string(data[12:16]) != "IHDR" {
		return header{}, ErrNotPNG
	}
	return header{
		width:     int(binary.BigEndian.Uint32(data[16:])),
		height:    int(binary.BigEndian.Uint32(data[20:])),
		depth:     data[24],
		colorType: data[25],
	}, nil
}

// SizeCheck inspects the dimensions from the PNG header before any pixel
// memory is allocated. Its error is returned from ReadChecked unchanged.
type SizeCheck func(width, height int) error

// Read decodes a PNG stream.
func Read(r io.Reader) (*Raw, error) {
	return ReadChecked(r, nil)
}

// ReadChecked is Read with the header dimensions passed through check first.
// A nil check accepts every size.
func ReadChecked(r io.Reader, check SizeCheck) (*Raw, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &IOError{Op: "read", Err: err}
	}
	h, err := readHeader(data)
	if err != nil {
		return nil, &IOError{Op: "read", Err: err}
	}
	if check != nil {
		if err := check(h.width, h.height); err != nil {
			return nil, err
		}
	}
	format, ok := formats[h.colorType]
	if !ok {
		return nil, &IOError{Op: "read", Err: fmt.Errorf("%w %d", ErrUnknownFormat, h.colorType)}
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &IOError{Op: "read", Err: err}
	}

	raw := &Raw{
		Width:  h.width,
		Height: h.height,
		Format: format,
		Depth:  h.depth,
	}
	if h.depth != 8 {
		// mctools.Decode rejects the depth; there is nothing to unpack.
		return raw, nil
	}
	if format == mctools.Indexed {
		p, ok := img.(*image.Paletted)
		if !ok {
			return nil, &IOError{Op: "read", Err: fmt.Errorf("paletted PNG decoded as %T", img)}
		}
		raw.Pix, raw.Palette = unpackPaletted(p)
		return raw, nil
	}
	raw.Pix = unpack(img, format)
	return raw, nil
}

func unpackPaletted(p *image.Paletted) (pix, palette []byte) {
	b := p.Bounds()
	pix = make([]byte, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := p.PixOffset(b.Min.X, y)
		pix = append(pix, p.Pix[i:i+b.Dx()]...)
	}
	palette = make([]byte, 0, len(p.Palette)*3)
	for _, c := range p.Palette {
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		palette = append(palette, n.R, n.G, n.B)
	}
	return pix, palette
}

// unpack flattens img into the byte layout of format. image/png widens some
// color types (gray+alpha and tRNS images come back as NRGBA), so the pixels
// are read back through the non-premultiplied model.
func unpack(img image.Image, format mctools.Format) []byte {
	b := img.Bounds()
	pix := make([]byte, 0, b.Dx()*b.Dy()*format.BytesPerPixel())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			n := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			switch format {
			case mctools.Grayscale:
				pix = append(pix, n.R)
			case mctools.GrayscaleAlpha:
				pix = append(pix, n.R, n.A)
			case mctools.RGB:
				pix = append(pix, n.R, n.G, n.B)
			case mctools.RGBA:
				pix = append(pix, n.R, n.G, n.B, n.A)
			}
		}
	}
	return pix
}

// Write encodes a tightly packed 8-bit RGBA buffer as a PNG of color type 6.
// Unlike image/png, opaque buffers are not narrowed to RGB: an opaque black
// pixel must stay RGBA or it would read back as transparent.
func Write(w io.Writer, width, height int, rgba []byte) error {
	if width <= 0 || height <= 0 || len(rgba) != width*height*4 {
		return &EncodeError{Err: fmt.Errorf("%dx%d image with %d bytes of RGBA", width, height, len(rgba))}
	}
	idat, err := compress(width, height, rgba)
	if err != nil {
		return &EncodeError{Err: err}
	}

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], uint32(width))
	binary.BigEndian.PutUint32(ihdr[4:], uint32(height))
	ihdr[8] = 8 // bit depth
	ihdr[9] = ctTrueColorAlpha

	cw := &chunkWriter{w: w}
	cw.write(pngSignature)
	cw.chunk("IHDR", ihdr)
	cw.chunk("IDAT", idat)
	cw.chunk("IEND", nil)
	if cw.err != nil {
		return &IOError{Op: "write", Err: cw.err}
	}
	return nil
}

// compress prefixes every row with filter type 0 and zlib-compresses the result.
func compress(width, height int, rgba []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	stride := width * 4
	for y := range height {
		if _, err := zw.Write([]byte{0}); err != nil {
			return nil, err
		}
		if _, err := zw.Write(rgba[y*stride : (y+1)*stride]); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// chunkWriter keeps the first write error and skips everything after it.
type chunkWriter struct {
	w   io.Writer
	err error
}

func (cw *chunkWriter) write(b []byte) {
	if cw.err != nil {
		return
	}
	_, cw.err = cw.w.Write(b)
}

func (cw *chunkWriter) chunk(name string, data []byte) {
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(data)))
	cw.write(n[:])
	cw.write([]byte(name))
	cw.write(data)
	crc := crc32.NewIEEE()
	crc.Write([]byte(name))
	crc.Write(data)
	binary.BigEndian.PutUint32(n[:], crc.Sum32())
	cw.write(n[:])
}

// WriteCanvas encodes c as an 8-bit RGBA PNG.
func WriteCanvas(w io.Writer, c *mctools.Canvas) error {
	return Write(w, c.Width(), c.Height(), c.Encode())
}

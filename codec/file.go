package codec

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/ClintFlames/mctools"
)

// Load reads the PNG at path.
func Load(path string) (*Raw, error) {
	return LoadChecked(path, nil)
}

// LoadChecked reads the PNG at path, rejecting it through check before the
// pixels are decoded.
func LoadChecked(path string, check SizeCheck) (*Raw, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	raw, err := ReadChecked(f, check)
	if err != nil {
		if ioErr, ok := err.(*IOError); ok {
			ioErr.Path = path
		}
		return nil, err
	}
	return raw, nil
}

// LoadCanvas reads the PNG at path and decodes it into a canvas.
func LoadCanvas(path string) (*mctools.Canvas, error) {
	raw, err := Load(path)
	if err != nil {
		return nil, err
	}
	return raw.Canvas()
}

// Save writes c to path as an RGBA PNG. The image is encoded in memory first,
// so path is not created or truncated when encoding fails.
func Save(path string, c *mctools.Canvas) error {
	var buf bytes.Buffer
	if err := WriteCanvas(&buf, c); err != nil {
		return err
	}
	return writeFile(path, buf.Bytes())
}

func writeFile(path string, data []byte) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOError{Op: "close", Path: path, Err: err}
	}
	return nil
}

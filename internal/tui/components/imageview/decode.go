package imageview

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrDecode wraps every failure to turn a path into an image.
var ErrDecode = errors.New("decode image")

// Decoded is an image together with facts about its source file.
type Decoded struct {
	Image  image.Image
	Format string
	Bytes  int64
}

// Decode reads path and decodes it with any registered image format.
func Decode(path string) (Decoded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Decoded{}, fmt.Errorf("%w %s: %w", ErrDecode, path, err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Decoded{}, fmt.Errorf("%w %s: %w", ErrDecode, path, err)
	}

	return Decoded{Image: img, Format: format, Bytes: int64(len(data))}, nil
}

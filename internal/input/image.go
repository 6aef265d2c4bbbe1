package input

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/gabriel-vasile/mimetype"
)

// MaxImageSize is the largest image the analysis service accepts.
const MaxImageSize = 20 << 20

var (
	ErrEmptyImage       = errors.New("image is empty")
	ErrImageTooLarge    = fmt.Errorf("image is larger than %d MB", MaxImageSize>>20)
	ErrUnsupportedImage = errors.New("unsupported image type")
)

// ImageTypes are the accepted image MIME types.
var ImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/bmp",
	"image/webp",
	"image/tiff",
}

// Image is validated image data.
type Image struct {
	Name string
	MIME string
	Data []byte
}

// LoadImage reads and validates the image at path.
func LoadImage(path string) (Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return Image{}, err
	}
	defer f.Close()
	return ReadImage(filepath.Base(path), f, MaxImageSize)
}

// ReadImage reads at most limit bytes from r and checks that the content is
// a supported image.
func ReadImage(name string, r io.Reader, limit int64) (Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return Image{}, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if len(data) == 0 {
		return Image{}, ErrEmptyImage
	}
	if int64(len(data)) > limit {
		return Image{}, ErrImageTooLarge
	}

	mtype := mimetype.Detect(data)
	if !slices.ContainsFunc(ImageTypes, mtype.Is) {
		return Image{}, fmt.Errorf("%w: %s", ErrUnsupportedImage, mtype.String())
	}

	return Image{Name: name, MIME: mtype.String(), Data: data}, nil
}

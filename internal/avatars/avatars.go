// Package avatars validates and processes uploaded avatar images.
package avatars

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"mime/multipart"
	"strings"

	"github.com/disintegration/imaging"
)

const MaxFileSize = 1 << 20 // 1 MiB

// Extension matching is a case-sensitive suffix check: "Photo.JPG" is
// rejected.
var acceptedExtensions = []string{"jpg", "png", "jpeg"}

var (
	ErrTooLarge     = fmt.Errorf("file must be smaller than %d bytes", MaxFileSize)
	ErrBadExtension = fmt.Errorf("only %s are allowed", strings.Join(acceptedExtensions, ", "))
	ErrNotImage     = errors.New("unable to decode image data")
)

// ValidateHeader is the pre-acceptance filter: it checks the declared
// size and the filename extension before any bytes are processed.
func ValidateHeader(h *multipart.FileHeader) error {
	if h.Size > MaxFileSize {
		return ErrTooLarge
	}
	for _, ext := range acceptedExtensions {
		if strings.HasSuffix(h.Filename, "."+ext) {
			return nil
		}
	}
	return ErrBadExtension
}

// Processor normalizes accepted avatars: decode, resize to a fixed
// width keeping aspect ratio, re-encode as PNG.
type Processor struct {
	width int
}

func NewProcessor(width int) *Processor {
	return &Processor{width: width}
}

func (p *Processor) Process(data []byte) ([]byte, string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", ErrNotImage
	}
	resized := imaging.Resize(img, p.width, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.PNG); err != nil {
		return nil, "", fmt.Errorf("failed to encode avatar: %w", err)
	}
	return buf.Bytes(), "image/png", nil
}

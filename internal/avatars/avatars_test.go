package avatars

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/require"
)

func header(name string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: size}
}

func TestValidateHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  *multipart.FileHeader
		wantErr error
	}{
		{"small jpg", header("pic.jpg", 10*1024), nil},
		{"small png", header("pic.png", 10*1024), nil},
		{"small jpeg", header("pic.jpeg", 10*1024), nil},
		{"at the limit", header("pic.jpg", MaxFileSize), nil},
		{"over the limit", header("pic.jpg", 2*1024*1024), ErrTooLarge},
		{"gif", header("pic.gif", 10*1024), ErrBadExtension},
		{"no extension", header("pic", 10*1024), ErrBadExtension},
		{"uppercase suffix", header("Photo.JPG", 10*1024), ErrBadExtension},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateHeader(tt.header)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func tinyPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcess_ResizesToFixedWidth(t *testing.T) {
	t.Parallel()

	p := NewProcessor(250)
	out, contentType, err := p.Process(tinyPNG(t, 500, 400))
	require.NoError(t, err)
	require.Equal(t, "image/png", contentType)

	resized, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, 250, resized.Bounds().Dx())
	require.Equal(t, 200, resized.Bounds().Dy())
}

func TestProcess_RejectsNonImage(t *testing.T) {
	t.Parallel()

	p := NewProcessor(250)
	_, _, err := p.Process([]byte("definitely not an image"))
	require.ErrorIs(t, err, ErrNotImage)
}

package imagefx

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 10 {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestProcessShrinksOversizedImage(t *testing.T) {
	main, thumb, err := Process(encodePNG(t, 4096, 2048))
	require.NoError(t, err)

	w, h := decodeSize(t, main)
	assert.Equal(t, 2048, w)
	assert.Equal(t, 1024, h)

	tw, _ := decodeSize(t, thumb)
	assert.Equal(t, 400, tw)
}

func TestProcessKeepsSmallImage(t *testing.T) {
	main, thumb, err := Process(encodePNG(t, 800, 600))
	require.NoError(t, err)

	w, h := decodeSize(t, main)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)

	tw, th := decodeSize(t, thumb)
	assert.Equal(t, 400, tw)
	assert.Equal(t, 300, th)
}

func TestProcessRejectsGarbage(t *testing.T) {
	_, _, err := Process([]byte("definitely not an image"))
	require.Error(t, err)
}

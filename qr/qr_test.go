package qr

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testURI = "ethereum:0xAbC0000000000000000000000000000000000000?value=1000000000000000000"

func TestRenderer_Render(t *testing.T) {
	r, err := NewRenderer(DefaultOptions())
	require.NoError(t, err)

	data, err := r.Render(testURI)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, DefaultSize, img.Bounds().Dx())
	assert.Equal(t, DefaultSize, img.Bounds().Dy())
}

func TestRenderer_CustomColors(t *testing.T) {
	r, err := NewRenderer(Options{
		Size:       256,
		Border:     true,
		Foreground: color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff},
		Background: color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff},
	})
	require.NoError(t, err)

	data, err := r.Render(testURI)
	require.NoError(t, err)

	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
}

func TestNewRenderer_SizeBounds(t *testing.T) {
	_, err := NewRenderer(Options{Size: 64})
	assert.Error(t, err)

	_, err = NewRenderer(Options{Size: 4096})
	assert.Error(t, err)

	r, err := NewRenderer(Options{Size: 0})
	require.NoError(t, err)
	assert.NotNil(t, r)
}

func TestRenderer_EmptyContent(t *testing.T) {
	r, err := NewRenderer(DefaultOptions())
	require.NoError(t, err)

	_, err = r.Render("")
	assert.ErrorIs(t, err, ErrRender)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}, c)

	c, err = ParseColor("000000")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{A: 0xff}, c)

	for _, bad := range []string{"", "#fff", "#gggggg", "#ff80001"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, "color %q", bad)
	}
}

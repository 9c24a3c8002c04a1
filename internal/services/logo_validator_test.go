package services

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func jpegBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestValidateLogoPNG(t *testing.T) {
	asset, err := ValidateLogo(pngBytes(t, 512, 512))
	require.NoError(t, err)
	assert.Equal(t, "image/png", asset.ContentType)
	assert.Equal(t, 512, asset.Width)
	assert.Equal(t, 512, asset.Height)
}

func TestValidateLogoJPEG(t *testing.T) {
	asset, err := ValidateLogo(jpegBytes(t, 512, 512))
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", asset.ContentType)
}

func TestValidateLogoWrongDimensions(t *testing.T) {
	_, err := ValidateLogo(pngBytes(t, 256, 256))
	assert.ErrorIs(t, err, ErrLogoInvalidDimensions)

	_, err = ValidateLogo(pngBytes(t, 512, 511))
	assert.ErrorIs(t, err, ErrLogoInvalidDimensions)
}

func TestValidateLogoWrongFormat(t *testing.T) {
	_, err := ValidateLogo([]byte("GIF89a not really an allowed format"))
	assert.ErrorIs(t, err, ErrLogoInvalidFormat)

	_, err = ValidateLogo([]byte("just some text"))
	assert.ErrorIs(t, err, ErrLogoInvalidFormat)
}

func TestValidateLogoTooLarge(t *testing.T) {
	data := make([]byte, MaxLogoSizeBytes+1)
	copy(data, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'})
	_, err := ValidateLogo(data)
	assert.ErrorIs(t, err, ErrLogoTooLarge)
}

func TestValidateLogoEmpty(t *testing.T) {
	_, err := ValidateLogo(nil)
	assert.ErrorIs(t, err, ErrLogoUnreadable)
}

func TestValidateLogoTruncated(t *testing.T) {
	data := pngBytes(t, 512, 512)
	_, err := ValidateLogo(data[:16])
	assert.ErrorIs(t, err, ErrLogoUnreadable)
}

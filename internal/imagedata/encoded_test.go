package imagedata_test

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"photo-studio-backend/internal/imagedata"
)

func samplePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoad_RejectsNonImage(t *testing.T) {
	_, err := imagedata.Load([]byte("%PDF-1.4"), "application/pdf")
	assert.ErrorIs(t, err, imagedata.ErrNotImage)

	_, err = imagedata.Load([]byte("hello"), "")
	assert.ErrorIs(t, err, imagedata.ErrNotImage)
}

func TestLoad_RejectsEmpty(t *testing.T) {
	_, err := imagedata.Load(nil, "image/png")
	assert.ErrorIs(t, err, imagedata.ErrEmptyImage)
}

func TestLoad_PNG(t *testing.T) {
	data := samplePNG(t, 4, 3)

	img, err := imagedata.Load(data, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, 4, img.Width)
	assert.Equal(t, 3, img.Height)
	assert.Equal(t, data, img.Data)
}

func TestLoad_SniffedTypeWins(t *testing.T) {
	img, err := imagedata.Load(samplePNG(t, 2, 2), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)
}

func TestLoad_UnknownBytesKeepDeclaredType(t *testing.T) {
	img, err := imagedata.Load([]byte{0x01, 0x02, 0x03}, "image/webp")
	require.NoError(t, err)
	assert.Equal(t, "image/webp", img.MIMEType)
	assert.Zero(t, img.Width)
}

func TestDataURL_RoundTrip(t *testing.T) {
	raw := []byte{0x89, 'P', 'N', 'G', 0x00, 0xff}
	img := imagedata.EncodedImage{MIMEType: imagedata.MIMEPNG, Data: raw}

	dataURL := img.DataURL()
	assert.True(t, len(dataURL) > len("data:image/png;base64,"))
	assert.Equal(t, "data:image/png;base64,", dataURL[:len("data:image/png;base64,")])

	payload, err := imagedata.Payload(dataURL)
	require.NoError(t, err)
	decoded, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)

	parsed, err := imagedata.ParseDataURL(dataURL)
	require.NoError(t, err)
	assert.Equal(t, imagedata.MIMEPNG, parsed.MIMEType)
	assert.Equal(t, raw, parsed.Data)
}

func TestPayload_RequiresHeader(t *testing.T) {
	_, err := imagedata.Payload("aGVsbG8=")
	assert.ErrorIs(t, err, imagedata.ErrNotDataURL)

	_, err = imagedata.Payload("data:image/png,aGVsbG8=")
	assert.ErrorIs(t, err, imagedata.ErrNotDataURL)
}

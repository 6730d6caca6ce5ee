// Package imagedata holds the encoded image value passed between the
// workspace, the prompt pipeline and the HTTP layer.
package imagedata

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"
)

const (
	MIMEPNG  = "image/png"
	MIMEJPEG = "image/jpeg"
	MIMEWEBP = "image/webp"

	dataURLScheme = "data:"
	base64Marker  = ";base64,"
)

var (
	ErrNotImage   = errors.New("please upload an image file (PNG, JPEG or WEBP)")
	ErrEmptyImage = errors.New("the uploaded image is empty")
	ErrNotDataURL = errors.New("not a base64 image data URL")
)

// EncodedImage is an image payload paired with its declared media type.
type EncodedImage struct {
	MIMEType string
	Data     []byte
	Width    int
	Height   int
}

// Load validates an uploaded payload and wraps it. Only the declared type's
// "image/" prefix is enforced; PNG, JPEG and WEBP are advisory.
func Load(data []byte, declaredType string) (EncodedImage, error) {
	declared := strings.ToLower(strings.TrimSpace(declaredType))
	if !strings.HasPrefix(declared, "image/") {
		return EncodedImage{}, ErrNotImage
	}
	if len(data) == 0 {
		return EncodedImage{}, ErrEmptyImage
	}

	// The tag must describe the bytes, so a recognised image type wins over
	// whatever the client declared.
	mimeType := declared
	if detected := mimetype.Detect(data); strings.HasPrefix(detected.String(), "image/") {
		mimeType = detected.String()
	}
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}

	img := EncodedImage{MIMEType: mimeType, Data: data}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		img.Width = cfg.Width
		img.Height = cfg.Height
	}
	return img, nil
}

// DataURL renders the image as a self-contained data URL.
func (e EncodedImage) DataURL() string {
	return dataURLScheme + e.MIMEType + base64Marker + base64.StdEncoding.EncodeToString(e.Data)
}

// Base64 returns the bare payload without the data URL header.
func (e EncodedImage) Base64() string {
	return base64.StdEncoding.EncodeToString(e.Data)
}

func (e EncodedImage) IsZero() bool {
	return len(e.Data) == 0
}

// Payload strips exactly the "data:<mime>;base64," header from a data URL.
func Payload(dataURL string) (string, error) {
	if !strings.HasPrefix(dataURL, dataURLScheme) {
		return "", ErrNotDataURL
	}
	i := strings.Index(dataURL, base64Marker)
	if i < 0 {
		return "", ErrNotDataURL
	}
	return dataURL[i+len(base64Marker):], nil
}

// ParseDataURL is the inverse of DataURL.
func ParseDataURL(dataURL string) (EncodedImage, error) {
	payload, err := Payload(dataURL)
	if err != nil {
		return EncodedImage{}, err
	}
	mimeType := dataURL[len(dataURLScheme):strings.Index(dataURL, base64Marker)]
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return EncodedImage{}, fmt.Errorf("failed to decode data URL payload: %w", err)
	}
	return EncodedImage{MIMEType: mimeType, Data: data}, nil
}

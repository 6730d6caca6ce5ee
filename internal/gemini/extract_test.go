package gemini_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
	"photo-studio-backend/internal/gemini"
	"photo-studio-backend/internal/imagedata"
)

func TestExtractImage_RoundTrip(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x42}

	img, err := gemini.ExtractImage(imageResponse(raw))
	require.NoError(t, err)

	payload, err := imagedata.Payload(img.DataURL())
	require.NoError(t, err)
	decoded, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)
}

func TestExtractImage_AlwaysPNG(t *testing.T) {
	img, err := gemini.ExtractImage(imageResponse([]byte{0xff, 0xd8}))
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Contains(t, img.DataURL(), "data:image/png;base64,")
}

func TestExtractImage_FirstMatchWins(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: nil},
			{Content: &genai.Content{Parts: []*genai.Part{
				genai.NewPartFromText("thinking"),
				{InlineData: &genai.Blob{MIMEType: "image/png"}},
				genai.NewPartFromBytes([]byte("first"), "image/png"),
				genai.NewPartFromBytes([]byte("second"), "image/png"),
			}}},
			{Content: &genai.Content{Parts: []*genai.Part{
				genai.NewPartFromBytes([]byte("third"), "image/png"),
			}}},
		},
	}

	img, err := gemini.ExtractImage(resp)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), img.Data)
}

func TestExtractImage_NoImage(t *testing.T) {
	_, err := gemini.ExtractImage(imageResponse())
	assert.ErrorIs(t, err, gemini.ErrNoImageProduced)

	_, err = gemini.ExtractImage(&genai.GenerateContentResponse{})
	assert.ErrorIs(t, err, gemini.ErrNoImageProduced)

	_, err = gemini.ExtractImage(nil)
	assert.ErrorIs(t, err, gemini.ErrNoImageProduced)
}

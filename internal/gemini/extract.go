package gemini

import (
	"google.golang.org/genai"

	"photo-studio-backend/internal/imagedata"
)

// ExtractImage returns the first inline image of the response, always tagged
// image/png whatever the model reports. Later images are ignored.
func ExtractImage(resp *genai.GenerateContentResponse) (imagedata.EncodedImage, error) {
	if resp == nil {
		return imagedata.EncodedImage{}, ErrNoImageProduced
	}

	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return imagedata.EncodedImage{
					MIMEType: imagedata.MIMEPNG,
					Data:     part.InlineData.Data,
				}, nil
			}
		}
	}

	return imagedata.EncodedImage{}, ErrNoImageProduced
}

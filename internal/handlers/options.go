package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"photo-studio-backend/internal/models"
)

// OptionsHandler godoc
// @Summary     Settings options
// @Description Lists the selectable values for every mode together with the default settings
// @Tags        options
// @Produce     json
// @Success     200 {object} models.OptionsResponse
// @Router      /options [get]
func OptionsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, buildOptions())
}

func buildOptions() models.OptionsResponse {
	resp := models.OptionsResponse{
		Defaults: models.DefaultsResponse{
			Enhance: models.DefaultEnhanceSettings(),
			IDPhoto: models.DefaultIDPhotoSettings(),
			Restore: models.DefaultRestoreSettings(),
		},
	}

	for _, q := range models.AllQualityTiers() {
		resp.QualityTiers = append(resp.QualityTiers, models.OptionResponse{
			Value: string(q),
			Label: q.Label(),
		})
	}
	for _, m := range models.AllEnhanceModes() {
		resp.EnhanceModes = append(resp.EnhanceModes, models.OptionResponse{
			Value: string(m),
			Label: m.Label(),
		})
	}
	for _, s := range models.AllIDPhotoSizes() {
		d := s.Descriptor()
		resp.IDSizes = append(resp.IDSizes, models.OptionResponse{
			Value:       string(s),
			Label:       d.Label,
			Description: d.Description,
			AspectRatio: d.AspectRatio,
		})
	}
	for _, b := range models.AllBackgroundColors() {
		d := b.Descriptor()
		resp.Backgrounds = append(resp.Backgrounds, models.OptionResponse{
			Value:       string(b),
			Label:       d.Label,
			Description: d.Description,
		})
	}
	return resp
}

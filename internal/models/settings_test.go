package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"photo-studio-backend/internal/models"
)

func TestIDPhotoSizes_AllMapped(t *testing.T) {
	sizes := models.AllIDPhotoSizes()
	assert.Len(t, sizes, 5)

	for _, size := range sizes {
		assert.NotPanics(t, func() { size.Descriptor() }, "size %s", size)
		d := size.Descriptor()
		assert.NotEmpty(t, d.Description, "size %s", size)
		assert.NotEmpty(t, d.Label, "size %s", size)
	}
}

func TestIDPhotoSizes_AspectRatio(t *testing.T) {
	for _, size := range models.AllIDPhotoSizes() {
		expected := models.AspectPortrait
		if size == models.IDSize5x5 {
			expected = models.AspectSquare
		}
		assert.Equal(t, expected, size.Descriptor().AspectRatio, "size %s", size)
	}
}

func TestBackgroundColors_AllMapped(t *testing.T) {
	colors := models.AllBackgroundColors()
	assert.Len(t, colors, 5)

	for _, color := range colors {
		assert.NotPanics(t, func() { color.Descriptor() }, "background %s", color)
		assert.NotEmpty(t, color.Descriptor().Description, "background %s", color)
	}
}

func TestUnmappedEnumeratorPanics(t *testing.T) {
	assert.Panics(t, func() { models.IDPhotoSize("9x9").Descriptor() })
	assert.Panics(t, func() { models.BackgroundColor("green").Descriptor() })
	assert.Panics(t, func() { models.QualityTier("16K").Label() })
	assert.Panics(t, func() { models.EnhanceMode("denoise").Label() })
	assert.Panics(t, func() { models.Mode("sketch").FileSuffix() })
}

func TestQualityTierLabels(t *testing.T) {
	assert.Equal(t, "2K (Fast)", models.Quality2K.Label())
	assert.Equal(t, "4K (Sharp)", models.Quality4K.Label())
	assert.Equal(t, "8K (Ultra)", models.Quality8K.Label())
}

func TestEnhanceModeLabels(t *testing.T) {
	assert.Equal(t, "Upscale only", models.EnhanceModeUpscale.Label())
	assert.Equal(t, "Enhance & restore", models.EnhanceModeEnhanceRestore.Label())

	for _, m := range models.AllEnhanceModes() {
		assert.NotPanics(t, func() { m.Label() }, string(m))
	}
}

func TestModeFileSuffix(t *testing.T) {
	assert.Equal(t, "Enhanced", models.ModeEnhance.FileSuffix())
	assert.Equal(t, "ID_Photo", models.ModeIDPhoto.FileSuffix())
	assert.Equal(t, "Restored_Gemini3Pro", models.ModeRestore.FileSuffix())
}

func TestDefaultEnhanceSettings(t *testing.T) {
	s := models.DefaultEnhanceSettings()

	assert.Equal(t, models.Quality4K, s.Quality)
	assert.Equal(t, models.EnhanceModeEnhanceRestore, s.Mode)
	assert.True(t, s.HyperRealism)
	assert.True(t, s.Colorize)
	assert.False(t, s.Makeup)
	assert.Equal(t, 30, s.Sharpen)
}

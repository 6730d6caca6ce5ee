package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"photo-studio-backend/internal/models"
)

func testBuilder() Builder {
	return NewBuilder("fast-model", "pro-model")
}

func TestNewBuilder_Defaults(t *testing.T) {
	b := NewBuilder("", "")
	assert.Equal(t, DefaultFastModel, b.FastModel)
	assert.Equal(t, DefaultProModel, b.ProModel)
}

func TestBuilder_Deterministic(t *testing.T) {
	b := testBuilder()

	assert.Equal(t, b.Enhance(models.DefaultEnhanceSettings()), b.Enhance(models.DefaultEnhanceSettings()))
	assert.Equal(t, b.IDPhoto(models.DefaultIDPhotoSettings()), b.IDPhoto(models.DefaultIDPhotoSettings()))
	assert.Equal(t, b.Restore(models.DefaultRestoreSettings()), b.Restore(models.DefaultRestoreSettings()))
}

func TestEnhance_DefaultScenario(t *testing.T) {
	plan := testBuilder().Enhance(models.DefaultEnhanceSettings())

	for _, want := range []string{"Restore facial details", "hyper-realism", "vibrant", "4K (Sharp)", "30%"} {
		assert.Contains(t, plan.Instruction, want)
	}
	assert.Equal(t, "fast-model", plan.Model)
	assert.Nil(t, plan.Config)
}

func TestEnhance_ModelSelectionByTier(t *testing.T) {
	b := testBuilder()
	s := models.DefaultEnhanceSettings()

	for _, tier := range models.AllQualityTiers() {
		s.Quality = tier
		plan := b.Enhance(s)
		if tier == models.Quality8K {
			assert.Equal(t, "pro-model", plan.Model)
			require.NotNil(t, plan.Config)
			assert.Equal(t, ImageSize4K, plan.Config.ImageSize)
			assert.Empty(t, plan.Config.AspectRatio)
		} else {
			assert.Equal(t, "fast-model", plan.Model, "tier %s", tier)
			assert.Nil(t, plan.Config, "tier %s", tier)
		}
		assert.Contains(t, plan.Instruction, tier.Label())
	}
}

func TestEnhance_HyperRealismAddsOneClause(t *testing.T) {
	b := testBuilder()
	s := models.DefaultEnhanceSettings()

	s.HyperRealism = false
	without := b.Enhance(s).Instruction
	s.HyperRealism = true
	with := b.Enhance(s).Instruction

	assert.NotContains(t, without, enhanceHyperRealism)
	assert.Equal(t, 1, strings.Count(with, enhanceHyperRealism))
	assert.Equal(t, without, strings.Replace(with, " "+enhanceHyperRealism, "", 1))
}

func TestEnhance_ClauseOrder(t *testing.T) {
	plan := testBuilder().Enhance(models.DefaultEnhanceSettings())

	order := []string{enhanceOpening, enhanceRestore, enhanceHyperRealism, enhanceColorize, "Target output quality", "Apply sharpening", enhanceClosing}
	last := -1
	for _, text := range order {
		idx := strings.Index(plan.Instruction, text)
		require.GreaterOrEqual(t, idx, 0, "missing %q", text)
		assert.Greater(t, idx, last, "%q out of order", text)
		last = idx
	}
}

func TestEnhance_UpscaleOnly(t *testing.T) {
	s := models.DefaultEnhanceSettings()
	s.Mode = models.EnhanceModeUpscale
	s.Sharpen = 150

	plan := testBuilder().Enhance(s)

	assert.Contains(t, plan.Instruction, enhanceUpscaleOnly)
	assert.Contains(t, plan.Instruction, "150%")
	assert.NotContains(t, plan.Instruction, enhanceRestore)
	assert.NotContains(t, plan.Instruction, enhanceHyperRealism)
	assert.NotContains(t, plan.Instruction, enhanceColorize)
}

func TestIDPhoto_AspectRatioBySize(t *testing.T) {
	b := testBuilder()

	for _, size := range models.AllIDPhotoSizes() {
		for _, bg := range models.AllBackgroundColors() {
			for _, flag := range []bool{false, true} {
				s := models.IDPhotoSettings{
					Size:            size,
					Background:      bg,
					Quality:         models.Quality8K,
					SkinSmoothing:   10,
					RemoveBlemishes: flag,
					FixLighting:     !flag,
				}
				plan := b.IDPhoto(s)

				require.NotNil(t, plan.Config)
				if size == models.IDSize5x5 {
					assert.Equal(t, "1:1", plan.Config.AspectRatio)
				} else {
					assert.Equal(t, "3:4", plan.Config.AspectRatio)
				}
				assert.Empty(t, plan.Config.ImageSize)
				assert.Equal(t, "fast-model", plan.Model)
				assert.Contains(t, plan.Instruction, size.Descriptor().Description)
				assert.Contains(t, plan.Instruction, bg.Descriptor().Description)
			}
		}
	}
}

func TestIDPhoto_Sections(t *testing.T) {
	s := models.DefaultIDPhotoSettings()
	s.SkinSmoothing = 45
	s.RemoveBlemishes = false
	s.FixLighting = true

	plan := testBuilder().IDPhoto(s)
	sections := strings.Split(plan.Instruction, "\n")

	require.Len(t, sections, 4)
	assert.True(t, strings.HasPrefix(sections[0], "1. COMPOSITION"))
	assert.Contains(t, sections[0], "70-80%")
	assert.True(t, strings.HasPrefix(sections[1], "2. BACKGROUND"))
	assert.True(t, strings.HasPrefix(sections[2], "3. ENHANCEMENT"))
	assert.NotContains(t, sections[2], idBlemishes)
	assert.Contains(t, sections[2], idLighting)
	assert.Contains(t, sections[2], "45%")
	assert.True(t, strings.HasPrefix(sections[3], "4. OUTPUT"))
}

func TestRestore_AlwaysProModel(t *testing.T) {
	b := testBuilder()
	s := models.DefaultRestoreSettings()

	for _, tier := range models.AllQualityTiers() {
		s.Quality = tier
		plan := b.Restore(s)
		assert.Equal(t, "pro-model", plan.Model)
		require.NotNil(t, plan.Config)
		assert.Equal(t, ImageSize4K, plan.Config.ImageSize)
	}
}

func TestRestore_ColorClausesMutuallyExclusive(t *testing.T) {
	b := testBuilder()
	s := models.DefaultRestoreSettings()

	s.Colorize = true
	colorized := b.Restore(s).Instruction
	s.Colorize = false
	kept := b.Restore(s).Instruction

	assert.Contains(t, colorized, restoreColorize)
	assert.NotContains(t, colorized, restoreContrast)
	assert.Contains(t, kept, restoreContrast)
	assert.NotContains(t, kept, restoreColorize)
	assert.Equal(t, 1, strings.Count(colorized, "3. COLOR"))
	assert.Equal(t, 1, strings.Count(kept, "3. COLOR"))
}

func TestRestore_Percentages(t *testing.T) {
	s := models.DefaultRestoreSettings()
	s.ScratchReduction = 83
	s.Denoise = 12
	s.FaceRestoration = false

	plan := testBuilder().Restore(s)
	sections := strings.Split(plan.Instruction, "\n")

	require.Len(t, sections, 4)
	assert.Contains(t, sections[0], "83%")
	assert.Equal(t, restoreDetail, sections[1])
	assert.Contains(t, sections[3], "12%")
}

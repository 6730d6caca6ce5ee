// Package prompt turns per-mode settings into the instruction text, model
// variant and generation hints sent to the image model.
package prompt

import (
	"fmt"
	"strings"

	"photo-studio-backend/internal/models"
)

const (
	DefaultFastModel = "gemini-2.5-flash-image"
	DefaultProModel  = "gemini-3-pro-image-preview"

	// ImageSize4K is the only resolution hint this service requests.
	ImageSize4K = "4K"
)

// GenerationConfig carries optional output-shape hints.
type GenerationConfig struct {
	ImageSize   string `json:"image_size,omitempty"`
	AspectRatio string `json:"aspect_ratio,omitempty"`
}

// Plan is everything the invoker needs besides the image itself.
type Plan struct {
	Instruction string
	Model       string
	Config      *GenerationConfig
}

// Builder is a pure mapping from settings to a Plan.
type Builder struct {
	FastModel string
	ProModel  string
}

func NewBuilder(fastModel, proModel string) Builder {
	if fastModel == "" {
		fastModel = DefaultFastModel
	}
	if proModel == "" {
		proModel = DefaultProModel
	}
	return Builder{FastModel: fastModel, ProModel: proModel}
}

type clause struct {
	when bool
	text string
}

func always(text string) clause {
	return clause{when: true, text: text}
}

func join(sep string, clauses ...clause) string {
	parts := make([]string, 0, len(clauses))
	for _, c := range clauses {
		if c.when {
			parts = append(parts, c.text)
		}
	}
	return strings.Join(parts, sep)
}

const (
	enhanceOpening      = "Enhance this photograph to a professional, high-end quality."
	enhanceRestore      = "Restore facial details, repair blur, noise and compression damage, and bring back natural clarity to every area of the image."
	enhanceHyperRealism = "Apply hyper-realism: render lifelike skin pores, individual hair strands and fine fabric texture with natural micro-detail."
	enhanceColorize     = "Correct the white balance and make the colors vibrant, rich and true to life."
	enhanceUpscaleOnly  = "Only upscale and sharpen the image: do not change the composition, lighting or colors, and preserve the facial features exactly as they are."
	enhanceClosing      = "Output the result at the highest possible resolution with crisp edges and no added artifacts."
)

// Enhance selects the pro model with a 4K hint only for the top tier.
func (b Builder) Enhance(s models.EnhanceSettings) Plan {
	restore := s.Mode == models.EnhanceModeEnhanceRestore

	instruction := join(" ",
		always(enhanceOpening),
		clause{when: restore, text: enhanceRestore},
		clause{when: restore && s.HyperRealism, text: enhanceHyperRealism},
		clause{when: restore && s.Colorize, text: enhanceColorize},
		clause{when: !restore, text: enhanceUpscaleOnly},
		always(fmt.Sprintf("Target output quality: %s.", s.Quality.Label())),
		always(fmt.Sprintf("Apply sharpening at %d%% intensity.", s.Sharpen)),
		always(enhanceClosing),
	)

	if s.Quality == models.Quality8K {
		return Plan{
			Instruction: instruction,
			Model:       b.ProModel,
			Config:      &GenerationConfig{ImageSize: ImageSize4K},
		}
	}
	return Plan{Instruction: instruction, Model: b.FastModel}
}

const (
	idComposition = "1. COMPOSITION: Crop this portrait into a standard ID photo. " +
		"The face, from chin to the top of the hair, must fill 70-80% of the image height. " +
		"Center the head horizontally, keep the eyes level and positioned in the upper third of the frame, " +
		"with the shoulders square to the camera and a neutral expression."
	idBlemishes = "Remove temporary blemishes such as acne, spots and redness while keeping moles and permanent features."
	idLighting  = "Fix uneven lighting and remove harsh shadows on the face for soft, even studio illumination."
)

// IDPhoto always uses the fast model; the aspect ratio is the authoritative
// shape constraint, independent of the size text in the instruction.
func (b Builder) IDPhoto(s models.IDPhotoSettings) Plan {
	size := s.Size.Descriptor()
	background := s.Background.Descriptor()

	enhancement := join(" ",
		always("3. ENHANCEMENT:"),
		clause{when: s.RemoveBlemishes, text: idBlemishes},
		clause{when: s.FixLighting, text: idLighting},
		always(fmt.Sprintf("Smooth the skin at %d%% intensity while keeping a natural texture.", s.SkinSmoothing)),
	)

	instruction := join("\n",
		always(idComposition),
		always(fmt.Sprintf("2. BACKGROUND: Remove the original background completely and replace it with a %s background. "+
			"No shadows, gradients or texture, with clean edges around the hair and shoulders.", background.Description)),
		always(enhancement),
		always(fmt.Sprintf("4. OUTPUT: Produce a sharp, print-ready, high-resolution photo formatted as %s.", size.Description)),
	)

	return Plan{
		Instruction: instruction,
		Model:       b.FastModel,
		Config:      &GenerationConfig{AspectRatio: size.AspectRatio},
	}
}

const (
	restoreDetail   = "2. DETAIL RECOVERY: Recover lost detail and sharpness in textures, clothing and background."
	restoreFaces    = "Restore faces with natural, realistic detail while strictly preserving each person's original identity, facial structure and expression. Do not invent a different face."
	restoreColorize = "3. COLOR: Colorize the photo with realistic, historically plausible colors and accurate, natural skin tones."
	restoreContrast = "3. COLOR: Keep the original color palette, improve contrast and tonal range, and remove yellowing, fading and stains."
)

// Restore always runs on the pro model with a 4K hint; the quality tier is
// ignored.
func (b Builder) Restore(s models.RestoreSettings) Plan {
	detail := join(" ",
		always(restoreDetail),
		clause{when: s.FaceRestoration, text: restoreFaces},
	)

	instruction := join("\n",
		always(fmt.Sprintf("1. DAMAGE REPAIR: Remove scratches, tears, dust, creases and spots at %d%% strength, "+
			"reconstructing missing areas seamlessly.", s.ScratchReduction)),
		always(detail),
		clause{when: s.Colorize, text: restoreColorize},
		clause{when: !s.Colorize, text: restoreContrast},
		always(fmt.Sprintf("4. FINAL QUALITY: Reduce film grain and noise at %d%% strength and deliver a clean, "+
			"high-resolution photograph.", s.Denoise)),
	)

	return Plan{
		Instruction: instruction,
		Model:       b.ProModel,
		Config:      &GenerationConfig{ImageSize: ImageSize4K},
	}
}

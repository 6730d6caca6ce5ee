package models

import "fmt"

// Mode identifies one of the three transformations a workspace can run.
type Mode string

const (
	ModeEnhance Mode = "enhance"
	ModeIDPhoto Mode = "id_photo"
	ModeRestore Mode = "restore"
)

var modeSuffixes = map[Mode]string{
	ModeEnhance: "Enhanced",
	ModeIDPhoto: "ID_Photo",
	ModeRestore: "Restored_Gemini3Pro",
}

func AllModes() []Mode {
	return []Mode{ModeEnhance, ModeIDPhoto, ModeRestore}
}

// FileSuffix is the mode-specific part of a download filename.
func (m Mode) FileSuffix() string {
	suffix, ok := modeSuffixes[m]
	if !ok {
		panic(fmt.Sprintf("models: no file suffix for mode %q", string(m)))
	}
	return suffix
}

// QualityTier is an output-fidelity preset.
type QualityTier string

const (
	Quality2K QualityTier = "2K"
	Quality4K QualityTier = "4K"
	Quality8K QualityTier = "8K"
)

var qualityLabels = map[QualityTier]string{
	Quality2K: "2K (Fast)",
	Quality4K: "4K (Sharp)",
	Quality8K: "8K (Ultra)",
}

func AllQualityTiers() []QualityTier {
	return []QualityTier{Quality2K, Quality4K, Quality8K}
}

// Label is the literal text interpolated into enhance instructions.
func (q QualityTier) Label() string {
	label, ok := qualityLabels[q]
	if !ok {
		panic(fmt.Sprintf("models: no label for quality tier %q", string(q)))
	}
	return label
}

// EnhanceMode selects between plain upscaling and full enhancement.
type EnhanceMode string

const (
	EnhanceModeUpscale        EnhanceMode = "upscale"
	EnhanceModeEnhanceRestore EnhanceMode = "enhance_restore"
)

var enhanceModeLabels = map[EnhanceMode]string{
	EnhanceModeUpscale:        "Upscale only",
	EnhanceModeEnhanceRestore: "Enhance & restore",
}

func AllEnhanceModes() []EnhanceMode {
	return []EnhanceMode{EnhanceModeUpscale, EnhanceModeEnhanceRestore}
}

func (m EnhanceMode) Label() string {
	label, ok := enhanceModeLabels[m]
	if !ok {
		panic(fmt.Sprintf("models: no label for enhance mode %q", string(m)))
	}
	return label
}

// IDPhotoSize is a standard print size for ID photos.
type IDPhotoSize string

const (
	IDSize2x3   IDPhotoSize = "2x3"
	IDSize3x4   IDPhotoSize = "3x4"
	IDSize4x6   IDPhotoSize = "4x6"
	IDSize35x45 IDPhotoSize = "3.5x4.5"
	IDSize5x5   IDPhotoSize = "5x5"
)

// Aspect ratio labels understood by the image model.
const (
	AspectSquare   = "1:1"
	AspectPortrait = "3:4"
)

// SizeDescriptor is the side data attached to every IDPhotoSize.
type SizeDescriptor struct {
	Label       string
	Description string
	AspectRatio string
}

var idSizes = map[IDPhotoSize]SizeDescriptor{
	IDSize2x3: {
		Label:       "2x3 cm",
		Description: "a 2x3 cm ID card photo (portrait orientation)",
		AspectRatio: AspectPortrait,
	},
	IDSize3x4: {
		Label:       "3x4 cm",
		Description: "a 3x4 cm ID photo (portrait orientation)",
		AspectRatio: AspectPortrait,
	},
	IDSize4x6: {
		Label:       "4x6 cm",
		Description: "a 4x6 cm document photo (portrait orientation)",
		AspectRatio: AspectPortrait,
	},
	IDSize35x45: {
		Label:       "3.5x4.5 cm (Passport)",
		Description: "a 3.5x4.5 cm international passport photo (portrait orientation)",
		AspectRatio: AspectPortrait,
	},
	IDSize5x5: {
		Label:       "5x5 cm (US Visa)",
		Description: "a 5x5 cm (2x2 inch) square US passport and visa photo",
		AspectRatio: AspectSquare,
	},
}

func AllIDPhotoSizes() []IDPhotoSize {
	return []IDPhotoSize{IDSize2x3, IDSize3x4, IDSize4x6, IDSize35x45, IDSize5x5}
}

// Descriptor panics for an unmapped size: every enumerator must have one.
func (s IDPhotoSize) Descriptor() SizeDescriptor {
	d, ok := idSizes[s]
	if !ok {
		panic(fmt.Sprintf("models: no descriptor for ID photo size %q", string(s)))
	}
	return d
}

// BackgroundColor is the replacement backdrop of an ID photo.
type BackgroundColor string

const (
	BackgroundWhite     BackgroundColor = "white"
	BackgroundBlue      BackgroundColor = "blue"
	BackgroundLightBlue BackgroundColor = "light_blue"
	BackgroundRed       BackgroundColor = "red"
	BackgroundGray      BackgroundColor = "gray"
)

// BackgroundDescriptor is the side data attached to every BackgroundColor.
type BackgroundDescriptor struct {
	Label       string
	Description string
}

var backgrounds = map[BackgroundColor]BackgroundDescriptor{
	BackgroundWhite:     {Label: "White", Description: "pure solid white (#FFFFFF)"},
	BackgroundBlue:      {Label: "Blue", Description: "solid standard ID blue (#1E5AA8)"},
	BackgroundLightBlue: {Label: "Light Blue", Description: "solid light sky blue (#A7C7E7)"},
	BackgroundRed:       {Label: "Red", Description: "solid ID red (#C8102E)"},
	BackgroundGray:      {Label: "Gray", Description: "solid neutral light gray (#D3D3D3)"},
}

func AllBackgroundColors() []BackgroundColor {
	return []BackgroundColor{BackgroundWhite, BackgroundBlue, BackgroundLightBlue, BackgroundRed, BackgroundGray}
}

// Descriptor panics for an unmapped color: every enumerator must have one.
func (b BackgroundColor) Descriptor() BackgroundDescriptor {
	d, ok := backgrounds[b]
	if !ok {
		panic(fmt.Sprintf("models: no descriptor for background %q", string(b)))
	}
	return d
}

// EnhanceSettings drive the general enhancement/upscaling mode.
type EnhanceSettings struct {
	Quality      QualityTier `json:"quality" binding:"required,oneof=2K 4K 8K"`
	Mode         EnhanceMode `json:"mode" binding:"required,oneof=upscale enhance_restore"`
	Retouch      int         `json:"retouch" binding:"min=0,max=100"`
	Sharpen      int         `json:"sharpen" binding:"min=0,max=200"`
	Upscale      int         `json:"upscale" binding:"min=0,max=100"`
	HyperRealism bool        `json:"hyper_realism"`
	Colorize     bool        `json:"colorize"`
	Makeup       bool        `json:"makeup"`
}

// IDPhotoSettings drive ID/passport photo generation. Quality does not
// influence model selection for this mode.
type IDPhotoSettings struct {
	Size            IDPhotoSize     `json:"size" binding:"required,oneof=2x3 3x4 4x6 3.5x4.5 5x5"`
	Background      BackgroundColor `json:"background" binding:"required,oneof=white blue light_blue red gray"`
	Quality         QualityTier     `json:"quality" binding:"required,oneof=2K 4K 8K"`
	SkinSmoothing   int             `json:"skin_smoothing" binding:"min=0,max=100"`
	RemoveBlemishes bool            `json:"remove_blemishes"`
	FixLighting     bool            `json:"fix_lighting"`
}

// RestoreSettings drive old-photo restoration. Quality is ignored: restoration
// always runs on the highest-capability model.
type RestoreSettings struct {
	ScratchReduction int         `json:"scratch_reduction" binding:"min=0,max=100"`
	Denoise          int         `json:"denoise" binding:"min=0,max=100"`
	Colorize         bool        `json:"colorize"`
	FaceRestoration  bool        `json:"face_restoration"`
	Sharpen          bool        `json:"sharpen"`
	Quality          QualityTier `json:"quality" binding:"required,oneof=2K 4K 8K"`
}

func DefaultEnhanceSettings() EnhanceSettings {
	return EnhanceSettings{
		Quality:      Quality4K,
		Mode:         EnhanceModeEnhanceRestore,
		Retouch:      40,
		Sharpen:      30,
		Upscale:      50,
		HyperRealism: true,
		Colorize:     true,
		Makeup:       false,
	}
}

func DefaultIDPhotoSettings() IDPhotoSettings {
	return IDPhotoSettings{
		Size:            IDSize3x4,
		Background:      BackgroundWhite,
		Quality:         Quality4K,
		SkinSmoothing:   30,
		RemoveBlemishes: true,
		FixLighting:     true,
	}
}

func DefaultRestoreSettings() RestoreSettings {
	return RestoreSettings{
		ScratchReduction: 70,
		Denoise:          50,
		Colorize:         true,
		FaceRestoration:  true,
		Sharpen:          true,
		Quality:          Quality8K,
	}
}

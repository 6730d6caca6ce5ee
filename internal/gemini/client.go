package gemini

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"photo-studio-backend/internal/imagedata"
	"photo-studio-backend/internal/models"
	"photo-studio-backend/internal/prompt"
)

// ContentGenerator is the single capability used from the genai SDK.
// *genai.Models satisfies it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeneratorFactory creates a ContentGenerator for an API key.
type GeneratorFactory func(ctx context.Context, apiKey, baseURL string) (ContentGenerator, error)

type Options struct {
	APIKey       string
	BaseURL      string
	Builder      prompt.Builder
	Logger       *zerolog.Logger
	NewGenerator GeneratorFactory
}

// Invoker performs exactly one model call per transformation: no retries,
// no streaming, no timeout beyond the caller's context.
type Invoker struct {
	apiKey       string
	baseURL      string
	builder      prompt.Builder
	logger       zerolog.Logger
	newGenerator GeneratorFactory

	mu        sync.Mutex
	generator ContentGenerator
}

func NewInvoker(opts Options) *Invoker {
	builder := opts.Builder
	if builder.FastModel == "" || builder.ProModel == "" {
		builder = prompt.NewBuilder(builder.FastModel, builder.ProModel)
	}

	logger := zerolog.New(io.Discard)
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	factory := opts.NewGenerator
	if factory == nil {
		factory = newGenAIGenerator
	}

	return &Invoker{
		apiKey:       strings.TrimSpace(opts.APIKey),
		baseURL:      opts.BaseURL,
		builder:      builder,
		logger:       logger.With().Str("component", "gemini").Logger(),
		newGenerator: factory,
	}
}

func newGenAIGenerator(ctx context.Context, apiKey, baseURL string) (ContentGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return client.Models, nil
}

// Builder exposes the prompt builder so callers can record the model used.
func (i *Invoker) Builder() prompt.Builder {
	return i.builder
}

func (i *Invoker) Enhance(ctx context.Context, img imagedata.EncodedImage, s models.EnhanceSettings) (imagedata.EncodedImage, error) {
	return i.invoke(ctx, models.ModeEnhance, img, i.builder.Enhance(s))
}

func (i *Invoker) IDPhoto(ctx context.Context, img imagedata.EncodedImage, s models.IDPhotoSettings) (imagedata.EncodedImage, error) {
	return i.invoke(ctx, models.ModeIDPhoto, img, i.builder.IDPhoto(s))
}

func (i *Invoker) Restore(ctx context.Context, img imagedata.EncodedImage, s models.RestoreSettings) (imagedata.EncodedImage, error) {
	return i.invoke(ctx, models.ModeRestore, img, i.builder.Restore(s))
}

func (i *Invoker) client(ctx context.Context) (ContentGenerator, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.generator != nil {
		return i.generator, nil
	}
	generator, err := i.newGenerator(ctx, i.apiKey, i.baseURL)
	if err != nil {
		return nil, err
	}
	i.generator = generator
	return generator, nil
}

func (i *Invoker) invoke(ctx context.Context, mode models.Mode, img imagedata.EncodedImage, plan prompt.Plan) (imagedata.EncodedImage, error) {
	if i.apiKey == "" {
		return imagedata.EncodedImage{}, ErrMissingCredential
	}

	generator, err := i.client(ctx)
	if err != nil {
		return imagedata.EncodedImage{}, newRemoteError(err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(img.Data, img.MIMEType),
			genai.NewPartFromText(plan.Instruction),
		}, genai.RoleUser),
	}

	var config *genai.GenerateContentConfig
	if plan.Config != nil {
		config = &genai.GenerateContentConfig{
			ImageConfig: &genai.ImageConfig{
				ImageSize:   plan.Config.ImageSize,
				AspectRatio: plan.Config.AspectRatio,
			},
		}
	}

	log := i.logger.With().
		Str("mode", string(mode)).
		Str("model", plan.Model).
		Str("mime_type", img.MIMEType).
		Int("input_bytes", len(img.Data)).
		Logger()
	log.Debug().Msg("calling image model")

	start := time.Now()
	resp, err := generator.GenerateContent(ctx, plan.Model, contents, config)
	if err != nil {
		remote := newRemoteError(err)
		log.Error().Err(err).Int("code", remote.Code).Dur("elapsed", time.Since(start)).Msg("image model rejected the request")
		return imagedata.EncodedImage{}, remote
	}

	out, err := ExtractImage(resp)
	if err != nil {
		log.Warn().Dur("elapsed", time.Since(start)).Msg("image model returned no image")
		return imagedata.EncodedImage{}, err
	}

	log.Info().Int("output_bytes", len(out.Data)).Dur("elapsed", time.Since(start)).Msg("image transformed")
	return out, nil
}

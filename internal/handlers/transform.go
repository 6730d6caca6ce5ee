package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"photo-studio-backend/internal/imagedata"
	"photo-studio-backend/internal/middleware"
	"photo-studio-backend/internal/models"
	"photo-studio-backend/internal/prompt"
	"photo-studio-backend/internal/services"
	"photo-studio-backend/internal/workspace"
)

// Transformer runs the three image transformations. *gemini.Invoker
// satisfies it.
type Transformer interface {
	Builder() prompt.Builder
	Enhance(ctx context.Context, img imagedata.EncodedImage, s models.EnhanceSettings) (imagedata.EncodedImage, error)
	IDPhoto(ctx context.Context, img imagedata.EncodedImage, s models.IDPhotoSettings) (imagedata.EncodedImage, error)
	Restore(ctx context.Context, img imagedata.EncodedImage, s models.RestoreSettings) (imagedata.EncodedImage, error)
}

type TransformHandler struct {
	manager        *workspace.Manager
	transformer    Transformer
	archive        *services.ArchiveService
	filenamePrefix string
	logger         zerolog.Logger
}

func NewTransformHandler(
	manager *workspace.Manager,
	transformer Transformer,
	archive *services.ArchiveService,
	filenamePrefix string,
	logger zerolog.Logger,
) *TransformHandler {
	return &TransformHandler{
		manager:        manager,
		transformer:    transformer,
		archive:        archive,
		filenamePrefix: filenamePrefix,
		logger:         logger.With().Str("component", "transform").Logger(),
	}
}

// Enhance godoc
// @Summary     Enhance or upscale the original
// @Description Omitted fields keep their default values. The 8K tier runs on the pro model.
// @Tags        transform
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       workspace_id path string true "Workspace ID (UUID)"
// @Param       request body models.EnhanceSettings false "Enhance settings"
// @Success     200 {object} models.TransformResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Failure     412 {object} models.ErrorResponse
// @Failure     422 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /workspaces/{workspace_id}/enhance [post]
func (h *TransformHandler) Enhance(c *gin.Context) {
	settings := models.DefaultEnhanceSettings()
	if !bindSettings(c, &settings) {
		return
	}
	h.run(c, models.ModeEnhance, h.transformer.Builder().Enhance(settings).Model,
		func(ctx context.Context, img imagedata.EncodedImage) (imagedata.EncodedImage, error) {
			return h.transformer.Enhance(ctx, img, settings)
		})
}

// IDPhoto godoc
// @Summary     Generate an ID photo
// @Description Recomposes the portrait for the selected print size and background color.
// @Tags        transform
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       workspace_id path string true "Workspace ID (UUID)"
// @Param       request body models.IDPhotoSettings false "ID photo settings"
// @Success     200 {object} models.TransformResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Failure     412 {object} models.ErrorResponse
// @Failure     422 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /workspaces/{workspace_id}/id-photo [post]
func (h *TransformHandler) IDPhoto(c *gin.Context) {
	settings := models.DefaultIDPhotoSettings()
	if !bindSettings(c, &settings) {
		return
	}
	h.run(c, models.ModeIDPhoto, h.transformer.Builder().IDPhoto(settings).Model,
		func(ctx context.Context, img imagedata.EncodedImage) (imagedata.EncodedImage, error) {
			return h.transformer.IDPhoto(ctx, img, settings)
		})
}

// Restore godoc
// @Summary     Restore an old photo
// @Description Always runs on the pro model; the quality setting is ignored.
// @Tags        transform
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       workspace_id path string true "Workspace ID (UUID)"
// @Param       request body models.RestoreSettings false "Restore settings"
// @Success     200 {object} models.TransformResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Failure     412 {object} models.ErrorResponse
// @Failure     422 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /workspaces/{workspace_id}/restore [post]
func (h *TransformHandler) Restore(c *gin.Context) {
	settings := models.DefaultRestoreSettings()
	if !bindSettings(c, &settings) {
		return
	}
	h.run(c, models.ModeRestore, h.transformer.Builder().Restore(settings).Model,
		func(ctx context.Context, img imagedata.EncodedImage) (imagedata.EncodedImage, error) {
			return h.transformer.Restore(ctx, img, settings)
		})
}

func (h *TransformHandler) run(c *gin.Context, mode models.Mode, model string, fn workspace.Transformation) {
	ws, ok := lookupWorkspace(c, h.manager)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	result, err := ws.Invoke(ctx, mode, fn)
	if err != nil {
		h.logger.Warn().Err(err).Str("workspace_id", ws.ID.String()).Str("mode", string(mode)).Msg("transformation failed")
		respondError(c, err)
		return
	}

	filename := resultFilename(h.filenamePrefix, mode, time.Now())
	response := models.TransformResponse{
		WorkspaceID: ws.ID.String(),
		Mode:        mode,
		Image:       *imageResponse(&result),
		Filename:    filename,
	}

	// A workspace deleted mid-run is not archived. Archive failures never
	// fail the request.
	if _, err := h.manager.Get(ws.ID, ws.Owner); err != nil {
		h.logger.Info().Str("workspace_id", ws.ID.String()).Msg("workspace removed during transformation, result not archived")
		c.JSON(http.StatusOK, response)
		return
	}
	record, err := h.archive.Archive(ctx, services.ArchiveRequest{
		WorkspaceID: ws.ID,
		Owner:       middleware.UserID(c),
		Mode:        mode,
		Model:       model,
		Filename:    filename,
		Image:       result,
	})
	if err != nil {
		h.logger.Warn().Err(err).Str("workspace_id", ws.ID.String()).Msg("result not archived")
	}
	if record != nil {
		response.StorageURL = record.StorageURL
	}

	c.JSON(http.StatusOK, response)
}

// bindSettings decodes the JSON body over the defaults already in dst. An
// empty body keeps the defaults.
func bindSettings(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid settings",
			Message: err.Error(),
		})
		return false
	}
	return true
}

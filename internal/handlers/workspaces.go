package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"photo-studio-backend/internal/imagedata"
	"photo-studio-backend/internal/middleware"
	"photo-studio-backend/internal/models"
	"photo-studio-backend/internal/realtime"
	"photo-studio-backend/internal/services"
	"photo-studio-backend/internal/workspace"
)

// uploadFields are tried in order when looking for the uploaded file.
var uploadFields = []string{"image", "file", "photo"}

const multipartMemory = 32 << 20

type WorkspacesHandler struct {
	manager        *workspace.Manager
	hub            *realtime.Hub
	archive        *services.ArchiveService
	maxUploadBytes int64
	filenamePrefix string
	logger         zerolog.Logger
}

func NewWorkspacesHandler(
	manager *workspace.Manager,
	hub *realtime.Hub,
	archive *services.ArchiveService,
	maxUploadBytes int64,
	filenamePrefix string,
	logger zerolog.Logger,
) *WorkspacesHandler {
	return &WorkspacesHandler{
		manager:        manager,
		hub:            hub,
		archive:        archive,
		maxUploadBytes: maxUploadBytes,
		filenamePrefix: filenamePrefix,
		logger:         logger.With().Str("component", "workspaces").Logger(),
	}
}

// CreateWorkspace godoc
// @Summary     Create a workspace
// @Description Creates an empty workspace that holds one original and one processed image
// @Tags        workspaces
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateWorkspaceRequest false "Workspace name"
// @Success     201 {object} models.WorkspaceCreatedResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /workspaces [post]
func (h *WorkspacesHandler) CreateWorkspace(c *gin.Context) {
	var req models.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request",
			Message: err.Error(),
		})
		return
	}

	ws := h.manager.Create(middleware.UserID(c), req.Name)
	c.JSON(http.StatusCreated, models.WorkspaceCreatedResponse{
		WorkspaceID: ws.ID.String(),
		Name:        ws.Name,
		CreatedAt:   ws.CreatedAt,
	})
}

// GetWorkspace godoc
// @Summary     Get workspace state
// @Tags        workspaces
// @Produce     json
// @Security    Bearer
// @Param       workspace_id path string true "Workspace ID (UUID)"
// @Success     200 {object} models.WorkspaceResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /workspaces/{workspace_id} [get]
func (h *WorkspacesHandler) GetWorkspace(c *gin.Context) {
	ws, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, workspaceResponse(ws))
}

// DeleteWorkspace godoc
// @Summary     Delete a workspace
// @Description Drops the workspace. With purge=true its archived results are deleted too.
// @Tags        workspaces
// @Security    Bearer
// @Param       workspace_id path string true "Workspace ID (UUID)"
// @Param       purge query bool false "Also delete archived results"
// @Success     204
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /workspaces/{workspace_id} [delete]
func (h *WorkspacesHandler) DeleteWorkspace(c *gin.Context) {
	ws, ok := h.lookup(c)
	if !ok {
		return
	}

	if err := h.manager.Delete(ws.ID, ws.Owner); err != nil {
		respondError(c, err)
		return
	}
	if h.hub != nil {
		h.hub.Close(ws.ID)
	}
	if c.Query("purge") == "true" {
		h.archive.Purge(c.Request.Context(), ws.Owner, ws.ID)
	}
	c.Status(http.StatusNoContent)
}

// ClearWorkspace godoc
// @Summary     Clear a workspace
// @Description Removes the original, the result and any error
// @Tags        workspaces
// @Produce     json
// @Security    Bearer
// @Param       workspace_id path string true "Workspace ID (UUID)"
// @Success     200 {object} models.WorkspaceResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /workspaces/{workspace_id}/clear [post]
func (h *WorkspacesHandler) ClearWorkspace(c *gin.Context) {
	ws, ok := h.lookup(c)
	if !ok {
		return
	}
	if err := ws.Clear(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workspaceResponse(ws))
}

// UploadImage godoc
// @Summary     Upload the original image
// @Description Loads an image into the workspace. Any previous result is discarded.
// @Tags        workspaces
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       workspace_id path string true "Workspace ID (UUID)"
// @Param       image formData file true "Image file (PNG, JPEG or WEBP)"
// @Success     200 {object} models.WorkspaceResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Failure     413 {object} models.ErrorResponse
// @Router      /workspaces/{workspace_id}/image [post]
func (h *WorkspacesHandler) UploadImage(c *gin.Context) {
	ws, ok := h.lookup(c)
	if !ok {
		return
	}

	if c.Request.ContentLength > h.maxUploadBytes {
		h.tooLarge(c)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			h.tooLarge(c)
			return
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse multipart form",
			Message: err.Error(),
		})
		return
	}

	fileHeader := uploadedFile(c.Request.MultipartForm)
	if fileHeader == nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "no file uploaded",
			Message: "send the image in the \"image\" form field",
		})
		return
	}

	data, err := readFile(fileHeader)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to read file",
			Message: err.Error(),
		})
		return
	}

	img, err := ws.LoadImage(data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info().
		Str("workspace_id", ws.ID.String()).
		Str("filename", fileHeader.Filename).
		Str("mime_type", img.MIMEType).
		Int("size", len(img.Data)).
		Msg("image loaded")
	c.JSON(http.StatusOK, workspaceResponse(ws))
}

// DiscardResult godoc
// @Summary     Discard the processed result
// @Tags        workspaces
// @Produce     json
// @Security    Bearer
// @Param       workspace_id path string true "Workspace ID (UUID)"
// @Success     200 {object} models.WorkspaceResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /workspaces/{workspace_id}/result [delete]
func (h *WorkspacesHandler) DiscardResult(c *gin.Context) {
	ws, ok := h.lookup(c)
	if !ok {
		return
	}
	if err := ws.DiscardResult(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workspaceResponse(ws))
}

// DownloadResult godoc
// @Summary     Download the processed result
// @Description Serves the processed image as an attachment named <prefix>_<mode>_<unix millis>.png
// @Tags        workspaces
// @Produce     png
// @Security    Bearer
// @Param       workspace_id path string true "Workspace ID (UUID)"
// @Success     200 {file} binary
// @Failure     404 {object} models.ErrorResponse
// @Router      /workspaces/{workspace_id}/result [get]
func (h *WorkspacesHandler) DownloadResult(c *gin.Context) {
	ws, ok := h.lookup(c)
	if !ok {
		return
	}

	state := ws.Snapshot()
	if state.Processed == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "no result",
			Message: "run a transformation before downloading",
		})
		return
	}

	filename := resultFilename(h.filenamePrefix, state.ProcessedMode, time.Now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, state.Processed.MIMEType, state.Processed.Data)
}

// Events godoc
// @Summary     Workspace events
// @Description Upgrades to a websocket that streams workspace lifecycle events
// @Tags        workspaces
// @Security    Bearer
// @Param       workspace_id path string true "Workspace ID (UUID)"
// @Param       access_token query string false "JWT for clients that cannot set headers"
// @Success     101
// @Failure     404 {object} models.ErrorResponse
// @Router      /workspaces/{workspace_id}/events [get]
func (h *WorkspacesHandler) Events(c *gin.Context) {
	ws, ok := h.lookup(c)
	if !ok {
		return
	}
	if h.hub == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "events unavailable"})
		return
	}
	if err := h.hub.Serve(c.Writer, c.Request, ws.ID); err != nil {
		h.logger.Warn().Err(err).Str("workspace_id", ws.ID.String()).Msg("websocket upgrade failed")
	}
}

func (h *WorkspacesHandler) tooLarge(c *gin.Context) {
	c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
		Error:   "file too large",
		Message: fmt.Sprintf("uploads are limited to %d bytes", h.maxUploadBytes),
	})
}

// lookup resolves the workspace_id path parameter for the caller and writes
// the error response when it cannot.
func (h *WorkspacesHandler) lookup(c *gin.Context) (*workspace.Workspace, bool) {
	return lookupWorkspace(c, h.manager)
}

func lookupWorkspace(c *gin.Context, manager *workspace.Manager) (*workspace.Workspace, bool) {
	id, err := uuid.Parse(c.Param("workspace_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid workspace id"})
		return nil, false
	}

	ws, err := manager.Get(id, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return ws, true
}

func uploadedFile(form *multipart.Form) *multipart.FileHeader {
	if form == nil {
		return nil
	}
	for _, field := range uploadFields {
		if files := form.File[field]; len(files) > 0 {
			return files[0]
		}
	}
	return nil
}

func readFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// resultFilename builds <prefix>_<suffix>_<unix millis>.png.
func resultFilename(prefix string, mode models.Mode, at time.Time) string {
	return fmt.Sprintf("%s_%s_%d.png", prefix, mode.FileSuffix(), at.UnixMilli())
}

func imageResponse(img *imagedata.EncodedImage) *models.ImageResponse {
	if img == nil {
		return nil
	}
	return &models.ImageResponse{
		DataURL:  img.DataURL(),
		MimeType: img.MIMEType,
		Size:     len(img.Data),
		Width:    img.Width,
		Height:   img.Height,
	}
}

func workspaceResponse(ws *workspace.Workspace) models.WorkspaceResponse {
	state := ws.Snapshot()
	return models.WorkspaceResponse{
		WorkspaceID:   ws.ID.String(),
		Name:          ws.Name,
		Original:      imageResponse(state.Original),
		Processed:     imageResponse(state.Processed),
		ProcessedMode: state.ProcessedMode,
		Processing:    state.Processing,
		Error:         state.Error,
		UpdatedAt:     ws.UpdatedAt(),
	}
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"photo-studio-backend/internal/middleware"
	"photo-studio-backend/internal/models"
	"photo-studio-backend/internal/services"
)

const maxHistoryLimit = 200

type HistoryHandler struct {
	archive *services.ArchiveService
}

func NewHistoryHandler(archive *services.ArchiveService) *HistoryHandler {
	return &HistoryHandler{archive: archive}
}

// ListHistory godoc
// @Summary     List archived results
// @Description Returns the caller's archived transformations, newest first
// @Tags        history
// @Produce     json
// @Security    Bearer
// @Param       limit query int false "Maximum number of records (default 50, max 200)"
// @Success     200 {object} models.HistoryResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /history [get]
func (h *HistoryHandler) ListHistory(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxHistoryLimit {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "invalid limit",
				Message: "limit must be between 1 and 200",
			})
			return
		}
		limit = n
	}

	records, err := h.archive.History(c.Request.Context(), middleware.UserID(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	response := models.HistoryResponse{Transformations: make([]models.TransformationResponse, 0, len(records))}
	for _, r := range records {
		response.Transformations = append(response.Transformations, models.TransformationResponse{
			ID:          r.ID.String(),
			WorkspaceID: r.WorkspaceID.String(),
			Mode:        r.Mode,
			Model:       r.Model,
			Filename:    r.Filename,
			StorageURL:  r.StorageURL,
			FileSize:    r.FileSize.Int64,
			MimeType:    r.MimeType,
			CreatedAt:   r.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, response)
}

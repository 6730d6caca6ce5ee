package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"photo-studio-backend/internal/gemini"
	"photo-studio-backend/internal/imagedata"
	"photo-studio-backend/internal/models"
	"photo-studio-backend/internal/services"
	"photo-studio-backend/internal/workspace"
)

// statusFor maps a domain error to its HTTP status and short error code.
func statusFor(err error) (int, string) {
	var remote *gemini.RemoteError
	switch {
	case errors.Is(err, workspace.ErrNotFound):
		return http.StatusNotFound, "workspace not found"
	case errors.Is(err, workspace.ErrBusy):
		return http.StatusConflict, "workspace busy"
	case errors.Is(err, workspace.ErrNoOriginal):
		return http.StatusUnprocessableEntity, "no image loaded"
	case errors.Is(err, imagedata.ErrNotImage), errors.Is(err, imagedata.ErrEmptyImage):
		return http.StatusBadRequest, "invalid image"
	case errors.Is(err, gemini.ErrMissingCredential):
		return http.StatusPreconditionFailed, "missing credential"
	case errors.Is(err, gemini.ErrNoImageProduced):
		return http.StatusBadGateway, "no image produced"
	case errors.As(err, &remote):
		return http.StatusBadGateway, "image processing failed"
	case errors.Is(err, services.ErrHistoryDisabled):
		return http.StatusServiceUnavailable, "history unavailable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "request cancelled"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func respondError(c *gin.Context, err error) {
	status, code := statusFor(err)
	c.JSON(status, models.ErrorResponse{
		Error:   code,
		Message: err.Error(),
	})
}

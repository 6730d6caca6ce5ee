package realtime

import "github.com/google/uuid"

// Event names published for a workspace.
const (
	EventImageLoaded         = "image_loaded"
	EventProcessingStarted   = "processing_started"
	EventProcessingCompleted = "processing_completed"
	EventProcessingFailed    = "processing_failed"
	EventResultDiscarded     = "result_discarded"
	EventWorkspaceCleared    = "workspace_cleared"
)

func ImageLoadedPayload(workspaceID uuid.UUID, mimeType string, size int) map[string]interface{} {
	return map[string]interface{}{
		"workspace_id": workspaceID.String(),
		"status":       "ready",
		"mime_type":    mimeType,
		"size":         size,
	}
}

func ProcessingStartedPayload(workspaceID uuid.UUID, mode string) map[string]interface{} {
	return map[string]interface{}{
		"workspace_id": workspaceID.String(),
		"status":       "processing",
		"mode":         mode,
	}
}

func ProcessingCompletedPayload(workspaceID uuid.UUID, mode string, size int) map[string]interface{} {
	return map[string]interface{}{
		"workspace_id": workspaceID.String(),
		"status":       "completed",
		"mode":         mode,
		"size":         size,
	}
}

func ProcessingFailedPayload(workspaceID uuid.UUID, mode, errorMsg string) map[string]interface{} {
	return map[string]interface{}{
		"workspace_id": workspaceID.String(),
		"status":       "failed",
		"mode":         mode,
		"error":        errorMsg,
	}
}

func StatusPayload(workspaceID uuid.UUID, status string) map[string]interface{} {
	return map[string]interface{}{
		"workspace_id": workspaceID.String(),
		"status":       status,
	}
}

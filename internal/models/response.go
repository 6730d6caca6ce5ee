package models

import "time"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type WorkspaceCreatedResponse struct {
	WorkspaceID string    `json:"workspace_id"`
	Name        string    `json:"name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ImageResponse is an encoded image in its textual, directly displayable form.
type ImageResponse struct {
	DataURL  string `json:"data_url"`
	MimeType string `json:"mime_type"`
	Size     int    `json:"size"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

type WorkspaceResponse struct {
	WorkspaceID   string         `json:"workspace_id"`
	Name          string         `json:"name,omitempty"`
	Original      *ImageResponse `json:"original,omitempty"`
	Processed     *ImageResponse `json:"processed,omitempty"`
	ProcessedMode Mode           `json:"processed_mode,omitempty"`
	Processing    bool           `json:"processing"`
	Error         string         `json:"error,omitempty"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type TransformResponse struct {
	WorkspaceID string        `json:"workspace_id"`
	Mode        Mode          `json:"mode"`
	Image       ImageResponse `json:"image"`
	Filename    string        `json:"filename"`
	StorageURL  string        `json:"storage_url,omitempty"`
}

type OptionResponse struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	AspectRatio string `json:"aspect_ratio,omitempty"`
}

type OptionsResponse struct {
	QualityTiers []OptionResponse `json:"quality_tiers"`
	EnhanceModes []OptionResponse `json:"enhance_modes"`
	IDSizes      []OptionResponse `json:"id_sizes"`
	Backgrounds  []OptionResponse `json:"backgrounds"`
	Defaults     DefaultsResponse `json:"defaults"`
}

type DefaultsResponse struct {
	Enhance EnhanceSettings `json:"enhance"`
	IDPhoto IDPhotoSettings `json:"id_photo"`
	Restore RestoreSettings `json:"restore"`
}

type HistoryResponse struct {
	Transformations []TransformationResponse `json:"transformations"`
}

type TransformationResponse struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	Mode        Mode      `json:"mode"`
	Model       string    `json:"model"`
	Filename    string    `json:"filename"`
	StorageURL  string    `json:"storage_url"`
	FileSize    int64     `json:"file_size"`
	MimeType    string    `json:"mime_type"`
	CreatedAt   time.Time `json:"created_at"`
}

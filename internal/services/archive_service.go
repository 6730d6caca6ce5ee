package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"photo-studio-backend/internal/imagedata"
	"photo-studio-backend/internal/models"
)

// ResultStore is the object storage side of the archive.
// *supabase.StorageClient satisfies it.
type ResultStore interface {
	UploadResult(owner string, workspaceID uuid.UUID, filename string, data []byte, contentType string) (string, string, error)
	DeleteWorkspaceFiles(owner string, workspaceID uuid.UUID) error
}

// HistoryStore records archived results. *supabase.DatabaseClient satisfies it.
type HistoryStore interface {
	CreateTransformation(ctx context.Context, t *models.Transformation) error
	ListTransformations(ctx context.Context, owner string, limit int) ([]models.Transformation, error)
	DeleteWorkspaceTransformations(ctx context.Context, workspaceID uuid.UUID) error
}

type ArchiveRequest struct {
	WorkspaceID uuid.UUID
	Owner       string
	Mode        models.Mode
	Model       string
	Filename    string
	Image       imagedata.EncodedImage
}

// ArchiveService copies successful results to storage and records them in the
// history table. Either store may be nil.
type ArchiveService struct {
	storage ResultStore
	history HistoryStore
	logger  zerolog.Logger
}

func NewArchiveService(storage ResultStore, history HistoryStore, logger zerolog.Logger) *ArchiveService {
	return &ArchiveService{
		storage: storage,
		history: history,
		logger:  logger.With().Str("component", "archive").Logger(),
	}
}

func (s *ArchiveService) Enabled() bool {
	return s != nil && s.storage != nil
}

func (s *ArchiveService) HistoryEnabled() bool {
	return s != nil && s.history != nil
}

// Archive uploads the result and records it. A history failure after a
// successful upload still returns the record so the URL can be served.
func (s *ArchiveService) Archive(ctx context.Context, req ArchiveRequest) (*models.Transformation, error) {
	if !s.Enabled() {
		return nil, nil
	}

	storagePath, storageURL, err := s.storage.UploadResult(req.Owner, req.WorkspaceID, req.Filename, req.Image.Data, req.Image.MIMEType)
	if err != nil {
		s.logger.Error().Err(err).Str("workspace_id", req.WorkspaceID.String()).Msg("failed to upload result")
		return nil, err
	}

	record := &models.Transformation{
		ID:          uuid.New(),
		WorkspaceID: req.WorkspaceID,
		Owner:       sql.NullString{String: req.Owner, Valid: req.Owner != ""},
		Mode:        req.Mode,
		Model:       req.Model,
		Filename:    req.Filename,
		StoragePath: storagePath,
		StorageURL:  storageURL,
		FileSize:    sql.NullInt64{Int64: int64(len(req.Image.Data)), Valid: true},
		MimeType:    req.Image.MIMEType,
		CreatedAt:   time.Now().UTC(),
	}

	if s.history != nil {
		if err := s.history.CreateTransformation(ctx, record); err != nil {
			s.logger.Error().Err(err).Str("workspace_id", req.WorkspaceID.String()).Msg("failed to record transformation")
			return record, fmt.Errorf("result uploaded but not recorded: %w", err)
		}
	}

	s.logger.Info().
		Str("workspace_id", req.WorkspaceID.String()).
		Str("mode", string(req.Mode)).
		Str("storage_path", storagePath).
		Msg("result archived")
	return record, nil
}

func (s *ArchiveService) History(ctx context.Context, owner string, limit int) ([]models.Transformation, error) {
	if !s.HistoryEnabled() {
		return nil, ErrHistoryDisabled
	}
	return s.history.ListTransformations(ctx, owner, limit)
}

// Purge removes a workspace's archived files and history rows. Failures are
// logged.
func (s *ArchiveService) Purge(ctx context.Context, owner string, workspaceID uuid.UUID) {
	if !s.Enabled() {
		return
	}
	if err := s.storage.DeleteWorkspaceFiles(owner, workspaceID); err != nil {
		s.logger.Warn().Err(err).Str("workspace_id", workspaceID.String()).Msg("failed to delete archived files")
	}
	if s.history != nil {
		if err := s.history.DeleteWorkspaceTransformations(ctx, workspaceID); err != nil {
			s.logger.Warn().Err(err).Str("workspace_id", workspaceID.String()).Msg("failed to delete history")
		}
	}
}

package supabase

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"photo-studio-backend/internal/models"
)

const defaultHistoryLimit = 50

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

// DB exposes the pool so migrations share the connection.
func (d *DatabaseClient) DB() *sql.DB {
	return d.db
}

func (d *DatabaseClient) CreateTransformation(ctx context.Context, t *models.Transformation) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO transformations (id, workspace_id, owner, mode, model, filename, storage_path, storage_url, file_size, mime_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, t.ID, t.WorkspaceID, t.Owner, string(t.Mode), t.Model, t.Filename,
		t.StoragePath, t.StorageURL, t.FileSize, t.MimeType, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transformation: %w", err)
	}
	return nil
}

// ListTransformations returns the newest records for owner. An empty owner
// lists results archived without authentication.
func (d *DatabaseClient) ListTransformations(ctx context.Context, owner string, limit int) ([]models.Transformation, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT id, workspace_id, owner, mode, model, filename, storage_path, storage_url, file_size, mime_type, created_at
		FROM transformations
		WHERE owner IS NOT DISTINCT FROM $1
		ORDER BY created_at DESC
		LIMIT $2
	`, ownerParam(owner), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transformations: %w", err)
	}
	defer rows.Close()

	var transformations []models.Transformation
	for rows.Next() {
		var t models.Transformation
		var mode string
		err := rows.Scan(
			&t.ID, &t.WorkspaceID, &t.Owner, &mode, &t.Model, &t.Filename,
			&t.StoragePath, &t.StorageURL, &t.FileSize, &t.MimeType, &t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transformation: %w", err)
		}
		t.Mode = models.Mode(mode)
		transformations = append(transformations, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list transformations: %w", err)
	}

	return transformations, nil
}

func (d *DatabaseClient) DeleteWorkspaceTransformations(ctx context.Context, workspaceID uuid.UUID) error {
	_, err := d.db.ExecContext(ctx, `
		DELETE FROM transformations
		WHERE workspace_id = $1
	`, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to delete transformations: %w", err)
	}
	return nil
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}

func ownerParam(owner string) sql.NullString {
	return sql.NullString{String: owner, Valid: owner != ""}
}

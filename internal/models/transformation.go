package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Transformation is an archived result of a successful workspace invocation.
type Transformation struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	Owner       sql.NullString
	Mode        Mode
	Model       string
	Filename    string
	StoragePath string
	StorageURL  string
	FileSize    sql.NullInt64
	MimeType    string
	CreatedAt   time.Time
}

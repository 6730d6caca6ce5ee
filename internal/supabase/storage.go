package supabase

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
	storage "github.com/supabase-community/storage-go"
)

const anonymousOwner = "anonymous"

type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewStorageClient(client *storage.Client, baseURL, bucket string) *StorageClient {
	return &StorageClient{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}
}

// ResultPath builds workspaces/{owner}/{workspace_id}/{filename}. An empty
// owner maps to "anonymous".
func ResultPath(owner string, workspaceID uuid.UUID, filename string) string {
	return workspacePrefix(owner, workspaceID) + filename
}

func workspacePrefix(owner string, workspaceID uuid.UUID) string {
	if owner == "" {
		owner = anonymousOwner
	}
	return fmt.Sprintf("workspaces/%s/%s/", owner, workspaceID.String())
}

// UploadResult stores a processed image and returns its path and public URL.
func (s *StorageClient) UploadResult(owner string, workspaceID uuid.UUID, filename string, data []byte, contentType string) (string, string, error) {
	storagePath := ResultPath(owner, workspaceID, filename)

	upsert := true
	_, err := s.client.UploadFile(s.bucket, storagePath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload file: %w", err)
	}

	return storagePath, s.GetPublicURL(storagePath), nil
}

func (s *StorageClient) GetPublicURL(storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		s.baseURL, s.bucket, storagePath)
}

// DeleteWorkspaceFiles removes every archived result of a workspace.
func (s *StorageClient) DeleteWorkspaceFiles(owner string, workspaceID uuid.UUID) error {
	prefix := workspacePrefix(owner, workspaceID)

	files, err := s.client.ListFiles(s.bucket, prefix, storage.FileSearchOptions{
		Limit: 1000,
	})
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}
	if len(files) == 0 {
		return nil
	}

	filePaths := make([]string, len(files))
	for i, file := range files {
		filePaths[i] = prefix + file.Name
	}
	if _, err := s.client.RemoveFile(s.bucket, filePaths); err != nil {
		return fmt.Errorf("failed to delete files: %w", err)
	}
	return nil
}

package supabase

import (
	"fmt"
	"strings"

	"github.com/supabase-community/supabase-go"
	"photo-studio-backend/internal/config"
)

type Client struct {
	Supabase *supabase.Client
	Config   *config.Config
	baseURL  string
}

// NewClient connects with the service key; archiving writes to storage on
// behalf of every user.
func NewClient(cfg *config.Config) (*Client, error) {
	baseURL := strings.TrimRight(cfg.SupabaseURL, "/")
	client, err := supabase.NewClient(baseURL, cfg.SupabaseServiceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &Client{
		Supabase: client,
		Config:   cfg,
		baseURL:  baseURL,
	}, nil
}

// Storage returns a client for the configured results bucket.
func (c *Client) Storage() *StorageClient {
	return NewStorageClient(c.Supabase.Storage, c.baseURL, c.Config.SupabaseStorageBucket)
}

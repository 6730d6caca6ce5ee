package models

// CreateWorkspaceRequest is the optional body of POST /workspaces.
type CreateWorkspaceRequest struct {
	// Optional label shown back in workspace state
	Name string `json:"name,omitempty" example:"passport-2026"`
}

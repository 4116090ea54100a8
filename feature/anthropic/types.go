package anthropic

import "time"

type orgUser struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Email   string    `json:"email"`
	Name    string    `json:"name"`
	Role    string    `json:"role"`
	AddedAt time.Time `json:"added_at"`
}

type invite struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	InvitedAt time.Time `json:"invited_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type workspace struct {
	ID           string     `json:"id"`
	Type         string     `json:"type"`
	Name         string     `json:"name"`
	CreatedAt    time.Time  `json:"created_at"`
	ArchivedAt   *time.Time `json:"archived_at"`
	DisplayColor string     `json:"display_color"`
}

type workspaceMember struct {
	Type          string `json:"type"`
	UserID        string `json:"user_id"`
	WorkspaceID   string `json:"workspace_id"`
	WorkspaceRole string `json:"workspace_role"`
}

type apiKey struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	Name           string `json:"name"`
	WorkspaceID    string `json:"workspace_id"`
	Status         string `json:"status"`
	PartialKeyHint string `json:"partial_key_hint"`
}

type deleted struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

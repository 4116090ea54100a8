package identity

import "time"

// Identity is the merged representation of one user across providers.
type Identity struct {
	// Email is the unique key. Compare through NormalizeEmail.
	Email string `json:"email"`
	// Name is the best-effort display name supplied by a provider.
	Name string `json:"name"`
	// Providers lists one membership per provider in arrival order.
	Providers []ProviderMembership `json:"providers"`
}

// ProviderNames returns the provider names in membership order.
func (i Identity) ProviderNames() []string {
	names := make([]string, 0, len(i.Providers))
	for _, p := range i.Providers {
		names = append(names, p.Name)
	}
	return names
}

// HasProvider reports whether the identity carries a membership for provider.
func (i Identity) HasProvider(provider string) bool {
	for _, p := range i.Providers {
		if p.Name == provider {
			return true
		}
	}
	return false
}

// ProviderMembership is one vendor's view of an Identity.
type ProviderMembership struct {
	// Name is the provider key (e.g., "openai").
	Name string `json:"name"`
	// CreditsUsed is the month-to-date spend of the user's workspace, if fetched.
	CreditsUsed *float64 `json:"creditsUsed,omitempty"`
	// WorkspaceURL links to the user's workspace or project console page.
	WorkspaceURL string `json:"workspaceUrl,omitempty"`
	// SetLimitURL links to the console page where spend limits are configured.
	SetLimitURL string `json:"setLimitUrl,omitempty"`
	// APIKeys lists the key hints scoped to the user's workspace.
	APIKeys []APIKeyRef `json:"apiKeys,omitempty"`
}

// APIKeyRef names an API key by its redacted hint.
type APIKeyRef struct {
	Name    string `json:"name"`
	KeyHint string `json:"keyHint"`
}

// MemberRef is the result of a membership point lookup.
type MemberRef struct {
	UserID   string
	UserName string
	Email    string
}

// WorkspaceRef identifies the isolation unit (workspace or project) assigned to a member.
type WorkspaceRef struct {
	ID       string
	Name     string
	URL      string
	LimitURL string
}

// Invite is an organization invitation normalized across vendors.
type Invite struct {
	ID        string       `json:"id"`
	Email     string       `json:"email"`
	Status    InviteStatus `json:"status"`
	Provider  string       `json:"provider"`
	InvitedAt time.Time    `json:"invitedAt"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

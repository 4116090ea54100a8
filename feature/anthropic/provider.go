package anthropic

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"ai-access-manager/core/httpclient"
	"ai-access-manager/core/identity"
	"ai-access-manager/core/pagination"

	"go.uber.org/zap"
)

// Name is the provider key used in selection and in identities.
const Name = "anthropic"

const (
	cursorParam = "after_id"

	inviteRole    = "user"
	workspaceRole = "workspace_developer"
)

// Provider talks to the Anthropic Admin API.
type Provider struct {
	client     *httpclient.Client
	consoleURL string
	limit      int
	logger     *zap.Logger
}

// New creates the provider. It fails when no admin key is configured.
func New(cfg Config, logger *zap.Logger) (*Provider, error) {
	version := cfg.Version
	if version == "" {
		version = "2023-06-01"
	}
	client, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.AdminKey,
		Auth:    httpclient.HeaderAuth{Header: "x-api-key"},
		Headers: map[string]string{"anthropic-version": version},
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", Name, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{
		client:     client,
		consoleURL: strings.TrimRight(cfg.ConsoleURL, "/"),
		limit:      cfg.PageLimit,
		logger:     logger.With(zap.String("provider", Name)),
	}, nil
}

// Name implements reconcile.Provider.
func (p *Provider) Name() string {
	return Name
}

func (p *Provider) list(path string, query url.Values) pagination.Options {
	return pagination.Options{Path: path, Limit: p.limit, CursorParam: cursorParam, Query: query}
}

// ListUsers implements reconcile.Provider.
func (p *Provider) ListUsers(ctx context.Context) ([]identity.Identity, error) {
	users, err := pagination.Drain[orgUser](ctx, p.client, p.list("/users", nil))
	if err != nil {
		return nil, err
	}
	out := make([]identity.Identity, 0, len(users))
	for _, u := range users {
		out = append(out, identity.Identity{
			Email:     identity.NormalizeEmail(u.Email),
			Name:      u.Name,
			Providers: []identity.ProviderMembership{{Name: Name}},
		})
	}
	return out, nil
}

// FindMember implements reconcile.Provider. The users endpoint filters by email server side.
func (p *Provider) FindMember(ctx context.Context, email string) (*identity.MemberRef, error) {
	query := url.Values{}
	query.Set("email", identity.NormalizeEmail(email))
	u, err := pagination.Find(ctx, p.client, p.list("/users", query), func(u orgUser) bool {
		return identity.SameEmail(u.Email, email)
	})
	if err != nil || u == nil {
		return nil, err
	}
	return &identity.MemberRef{UserID: u.ID, UserName: u.Name, Email: identity.NormalizeEmail(u.Email)}, nil
}

// ListInvites implements reconcile.Provider.
func (p *Provider) ListInvites(ctx context.Context) ([]identity.Invite, error) {
	invites, err := pagination.Drain[invite](ctx, p.client, p.list("/invites", nil))
	if err != nil {
		return nil, err
	}
	out := make([]identity.Invite, 0, len(invites))
	for _, inv := range invites {
		out = append(out, toInvite(inv))
	}
	return out, nil
}

// FindPendingInvite implements reconcile.Provider.
func (p *Provider) FindPendingInvite(ctx context.Context, email string) (*identity.Invite, error) {
	inv, err := pagination.Find(ctx, p.client, p.list("/invites", nil), func(i invite) bool {
		return identity.SameEmail(i.Email, email) && mapStatus(i.Status) == identity.InviteStatusPending
	})
	if err != nil || inv == nil {
		return nil, err
	}
	out := toInvite(*inv)
	return &out, nil
}

func toInvite(inv invite) identity.Invite {
	return identity.Invite{
		ID:        inv.ID,
		Email:     identity.NormalizeEmail(inv.Email),
		Status:    mapStatus(inv.Status),
		Provider:  Name,
		InvitedAt: inv.InvitedAt.UTC(),
		ExpiresAt: inv.ExpiresAt.UTC(),
	}
}

func mapStatus(status string) identity.InviteStatus {
	switch strings.ToLower(status) {
	case "pending":
		return identity.InviteStatusPending
	case "accepted":
		return identity.InviteStatusAccepted
	case "expired":
		return identity.InviteStatusExpired
	case "deleted":
		return identity.InviteStatusDeleted
	default:
		return identity.InviteStatus(status)
	}
}

// FindWorkspace implements reconcile.Provider. Unarchived workspaces whose name
// matches the member's display name are candidates; the first one the member
// belongs to wins.
func (p *Provider) FindWorkspace(ctx context.Context, member identity.MemberRef) (*identity.WorkspaceRef, error) {
	workspaces, err := pagination.Drain[workspace](ctx, p.client, p.list("/workspaces", nil))
	if err != nil {
		return nil, err
	}

	for _, ws := range workspaces {
		if ws.ArchivedAt != nil || !identity.MatchesWorkspaceName(ws.Name, member.UserName) {
			continue
		}

		var m workspaceMember
		err := p.client.Get(ctx, "/workspaces/"+url.PathEscape(ws.ID)+"/members/"+url.PathEscape(member.UserID), nil, &m)
		if httpclient.IsNotFound(err) {
			p.logger.Debug("Workspace name matched but member is not in it",
				zap.String("workspace_id", ws.ID), zap.String("user_id", member.UserID))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to check workspace %s membership: %w", ws.ID, err)
		}

		return &identity.WorkspaceRef{
			ID:       ws.ID,
			Name:     ws.Name,
			URL:      p.consoleURL + "/settings/workspaces/" + ws.ID,
			LimitURL: p.consoleURL + "/settings/workspaces/" + ws.ID + "/limits",
		}, nil
	}
	return nil, nil
}

// ListWorkspaceAPIKeys implements reconcile.Provider.
func (p *Provider) ListWorkspaceAPIKeys(ctx context.Context, workspaceID string) ([]identity.APIKeyRef, error) {
	query := url.Values{}
	query.Set("workspace_id", workspaceID)
	keys, err := pagination.Drain[apiKey](ctx, p.client, p.list("/api_keys", query))
	if err != nil {
		return nil, err
	}
	out := make([]identity.APIKeyRef, 0, len(keys))
	for _, k := range keys {
		out = append(out, identity.APIKeyRef{Name: k.Name, KeyHint: identity.KeyHint(k.PartialKeyHint)})
	}
	return out, nil
}

// AddUser implements reconcile.Provider.
func (p *Provider) AddUser(ctx context.Context, email string) (bool, error) {
	member, err := p.FindMember(ctx, email)
	if err != nil {
		return false, err
	}
	if member != nil {
		return false, nil
	}

	var created invite
	body := map[string]string{"email": email, "role": inviteRole}
	if err := p.client.Post(ctx, "/invites", body, &created); err != nil {
		return false, err
	}
	p.logger.Info("Invite sent", zap.String("email", email), zap.String("invite_id", created.ID))
	return true, nil
}

// AssignToWorkspace implements reconcile.Provider. It creates a workspace named
// after the member and adds the member as developer. Every call creates a new workspace.
func (p *Provider) AssignToWorkspace(ctx context.Context, member identity.MemberRef) (bool, error) {
	name := member.UserName
	if name == "" {
		name = member.Email
	}

	var ws workspace
	if err := p.client.Post(ctx, "/workspaces", map[string]string{"name": name}, &ws); err != nil {
		return false, fmt.Errorf("failed to create workspace: %w", err)
	}

	var m workspaceMember
	body := map[string]string{"user_id": member.UserID, "workspace_role": workspaceRole}
	if err := p.client.Post(ctx, "/workspaces/"+url.PathEscape(ws.ID)+"/members", body, &m); err != nil {
		return false, fmt.Errorf("created workspace %s but failed to add member: %w", ws.ID, err)
	}
	return m.UserID == member.UserID, nil
}

// RemoveUser implements reconcile.Provider.
func (p *Provider) RemoveUser(ctx context.Context, userID string) (bool, error) {
	var res deleted
	if err := p.client.Delete(ctx, "/users/"+url.PathEscape(userID), &res); err != nil {
		return false, err
	}
	return res.Type == "user_deleted", nil
}

// RemoveWorkspace implements reconcile.Provider. Workspaces cannot be deleted, only archived.
func (p *Provider) RemoveWorkspace(ctx context.Context, workspaceID string) (bool, error) {
	var ws workspace
	if err := p.client.Post(ctx, "/workspaces/"+url.PathEscape(workspaceID)+"/archive", nil, &ws); err != nil {
		return false, err
	}
	return ws.ArchivedAt != nil, nil
}

// RemoveInvite implements reconcile.Provider.
func (p *Provider) RemoveInvite(ctx context.Context, inviteID string) (bool, error) {
	var res deleted
	if err := p.client.Delete(ctx, "/invites/"+url.PathEscape(inviteID), &res); err != nil {
		return false, err
	}
	return res.Type == "invite_deleted", nil
}

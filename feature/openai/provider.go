package openai

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ai-access-manager/core/httpclient"
	"ai-access-manager/core/identity"
	"ai-access-manager/core/pagination"

	"go.uber.org/zap"
)

// Name is the provider key used in selection and in identities.
const Name = "openai"

const cursorParam = "after"

// Provider talks to the OpenAI Admin API.
type Provider struct {
	client     *httpclient.Client
	consoleURL string
	limit      int
	logger     *zap.Logger
	now        func() time.Time
}

// New creates the provider. It fails when no admin key is configured.
func New(cfg Config, logger *zap.Logger) (*Provider, error) {
	client, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.AdminKey,
		Auth:    httpclient.BearerAuth{},
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
		now:        time.Now,
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
	users, err := pagination.Drain[orgUser](ctx, p.client, p.list("/organization/users", nil))
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

// FindMember implements reconcile.Provider.
func (p *Provider) FindMember(ctx context.Context, email string) (*identity.MemberRef, error) {
	u, err := pagination.Find(ctx, p.client, p.list("/organization/users", nil), func(u orgUser) bool {
		return identity.SameEmail(u.Email, email)
	})
	if err != nil || u == nil {
		return nil, err
	}
	return &identity.MemberRef{UserID: u.ID, UserName: u.Name, Email: identity.NormalizeEmail(u.Email)}, nil
}

// ListInvites implements reconcile.Provider.
func (p *Provider) ListInvites(ctx context.Context) ([]identity.Invite, error) {
	invites, err := pagination.Drain[invite](ctx, p.client, p.list("/organization/invites", nil))
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
	inv, err := pagination.Find(ctx, p.client, p.list("/organization/invites", nil), func(i invite) bool {
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
		InvitedAt: time.Unix(inv.InvitedAt, 0).UTC(),
		ExpiresAt: time.Unix(inv.ExpiresAt, 0).UTC(),
	}
}

// mapStatus maps OpenAI invite states onto the canonical set.
// Unknown values are kept verbatim so they never match a filter by accident.
func mapStatus(status string) identity.InviteStatus {
	switch strings.ToLower(status) {
	case "pending":
		return identity.InviteStatusPending
	case "accepted":
		return identity.InviteStatusAccepted
	case "expired":
		return identity.InviteStatusExpired
	default:
		return identity.InviteStatus(status)
	}
}

// FindWorkspace implements reconcile.Provider. Active projects whose name
// matches the member's display name are candidates; the first one the member
// belongs to wins.
func (p *Provider) FindWorkspace(ctx context.Context, member identity.MemberRef) (*identity.WorkspaceRef, error) {
	projects, err := pagination.Drain[project](ctx, p.client, p.list("/organization/projects", nil))
	if err != nil {
		return nil, err
	}

	for _, proj := range projects {
		if proj.Status == "archived" || !identity.MatchesWorkspaceName(proj.Name, member.UserName) {
			continue
		}

		var pu projectUser
		err := p.client.Get(ctx, "/organization/projects/"+url.PathEscape(proj.ID)+"/users/"+url.PathEscape(member.UserID), nil, &pu)
		if httpclient.IsNotFound(err) {
			p.logger.Debug("Project name matched but member is not in it",
				zap.String("project_id", proj.ID), zap.String("user_id", member.UserID))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to check project %s membership: %w", proj.ID, err)
		}

		return &identity.WorkspaceRef{
			ID:       proj.ID,
			Name:     proj.Name,
			URL:      p.consoleURL + "/settings/" + proj.ID + "/general",
			LimitURL: p.consoleURL + "/settings/" + proj.ID + "/limits",
		}, nil
	}
	return nil, nil
}

// ListWorkspaceAPIKeys implements reconcile.Provider.
func (p *Provider) ListWorkspaceAPIKeys(ctx context.Context, workspaceID string) ([]identity.APIKeyRef, error) {
	path := "/organization/projects/" + url.PathEscape(workspaceID) + "/api_keys"
	keys, err := pagination.Drain[projectAPIKey](ctx, p.client, p.list(path, nil))
	if err != nil {
		return nil, err
	}
	out := make([]identity.APIKeyRef, 0, len(keys))
	for _, k := range keys {
		out = append(out, identity.APIKeyRef{Name: k.Name, KeyHint: identity.KeyHint(k.RedactedValue)})
	}
	return out, nil
}

// AddUser implements reconcile.Provider. New users are invited as readers.
func (p *Provider) AddUser(ctx context.Context, email string) (bool, error) {
	member, err := p.FindMember(ctx, email)
	if err != nil {
		return false, err
	}
	if member != nil {
		return false, nil
	}

	var created invite
	body := map[string]string{"email": email, "role": "reader"}
	if err := p.client.Post(ctx, "/organization/invites", body, &created); err != nil {
		return false, err
	}
	p.logger.Info("Invite sent", zap.String("email", email), zap.String("invite_id", created.ID))
	return true, nil
}

// AssignToWorkspace implements reconcile.Provider. It creates a project named
// after the member and adds the member to it. Every call creates a new project.
func (p *Provider) AssignToWorkspace(ctx context.Context, member identity.MemberRef) (bool, error) {
	name := member.UserName
	if name == "" {
		name = member.Email
	}

	var proj project
	if err := p.client.Post(ctx, "/organization/projects", map[string]string{"name": name}, &proj); err != nil {
		return false, fmt.Errorf("failed to create project: %w", err)
	}

	var pu projectUser
	body := map[string]string{"user_id": member.UserID, "role": "member"}
	if err := p.client.Post(ctx, "/organization/projects/"+url.PathEscape(proj.ID)+"/users", body, &pu); err != nil {
		return false, fmt.Errorf("created project %s but failed to add member: %w", proj.ID, err)
	}
	return pu.ID != "", nil
}

// RemoveUser implements reconcile.Provider.
func (p *Provider) RemoveUser(ctx context.Context, userID string) (bool, error) {
	var res deleted
	if err := p.client.Delete(ctx, "/organization/users/"+url.PathEscape(userID), &res); err != nil {
		return false, err
	}
	return res.Deleted, nil
}

// RemoveWorkspace implements reconcile.Provider. Projects cannot be deleted, only archived.
func (p *Provider) RemoveWorkspace(ctx context.Context, workspaceID string) (bool, error) {
	var proj project
	if err := p.client.Post(ctx, "/organization/projects/"+url.PathEscape(workspaceID)+"/archive", nil, &proj); err != nil {
		return false, err
	}
	return proj.Status == "archived", nil
}

// RemoveInvite implements reconcile.Provider.
func (p *Provider) RemoveInvite(ctx context.Context, inviteID string) (bool, error) {
	var res deleted
	if err := p.client.Delete(ctx, "/organization/invites/"+url.PathEscape(inviteID), &res); err != nil {
		return false, err
	}
	return res.Deleted, nil
}

// WorkspaceSpend implements reconcile.UsageReporter. It sums the daily cost
// buckets of the project since the first day of the current month (UTC).
func (p *Provider) WorkspaceSpend(ctx context.Context, workspaceID string) (float64, error) {
	now := p.now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	query := url.Values{}
	query.Set("start_time", strconv.FormatInt(start.Unix(), 10))
	query.Set("bucket_width", "1d")
	query.Set("limit", "31")
	query.Add("project_ids", workspaceID)

	total := 0.0
	seen := make(map[string]struct{})
	for {
		var page costsPage
		if err := p.client.Get(ctx, "/organization/costs", query, &page); err != nil {
			return 0, fmt.Errorf("failed to fetch costs: %w", err)
		}
		for _, bucket := range page.Data {
			for _, r := range bucket.Results {
				if r.ProjectID != nil && *r.ProjectID != workspaceID {
					continue
				}
				total += r.Amount.Value
			}
		}

		if !page.HasMore || page.NextPage == nil || *page.NextPage == "" {
			return total, nil
		}
		if _, dup := seen[*page.NextPage]; dup {
			return total, nil
		}
		seen[*page.NextPage] = struct{}{}
		query.Set("page", *page.NextPage)
	}
}

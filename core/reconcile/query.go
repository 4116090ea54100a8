package reconcile

import (
	"context"
	"fmt"
	"strings"

	"ai-access-manager/core/identity"
	"ai-access-manager/core/store"

	"go.uber.org/zap"
)

type fragmentResult struct {
	outcome   Outcome
	fragments []identity.Identity
}

// Info collects the current state of email on every selected provider:
// pending invite, membership, workspace, key hints and spend when available.
// When no provider failed, the selected providers' memberships are refreshed in
// the stored entry; memberships of unselected providers are left alone.
func (e *Engine) Info(ctx context.Context, email string, names []string) (*Report, error) {
	email, err := identity.ValidateEmail(email)
	if err != nil {
		return nil, err
	}
	providers, err := e.Select(names)
	if err != nil {
		return nil, err
	}

	results := fanOut(ctx, providers, func(ctx context.Context, p Provider) fragmentResult {
		return e.infoOne(ctx, p, email)
	})

	report := &Report{Operation: OpInfo, Email: email}
	groups := make([][]identity.Identity, 0, len(results))
	for _, r := range results {
		report.Outcomes = append(report.Outcomes, r.outcome)
		groups = append(groups, r.fragments)
	}
	report.Users = identity.MergeNested(groups)
	e.logReport(report)

	if !report.Failed() && e.store != nil {
		found := identity.Identity{Email: email}
		if len(report.Users) > 0 {
			found = report.Users[0]
		}
		selected := make([]string, 0, len(providers))
		for _, p := range providers {
			selected = append(selected, p.Name())
		}
		if err := store.MergeUser(ctx, e.store, found, selected...); err != nil {
			e.logger.Warn("Failed to update local store", zap.String("email", email), zap.Error(err))
		}
	}

	return report, nil
}

func (e *Engine) infoOne(ctx context.Context, p Provider, email string) fragmentResult {
	invite, err := p.FindPendingInvite(ctx, email)
	if err != nil {
		return fragmentResult{outcome: failure(p.Name(), CodeFailed, fmt.Errorf("failed to look up invites: %w", err))}
	}

	member, err := p.FindMember(ctx, email)
	if err != nil {
		return fragmentResult{outcome: failure(p.Name(), CodeFailed, fmt.Errorf("failed to look up member: %w", err))}
	}
	if member == nil {
		if invite != nil {
			o := warning(p.Name(), CodeAlreadyInvited, "%s has a pending invite since %s", email, invite.InvitedAt.Format("2006-01-02"))
			since := invite.InvitedAt
			o.Since = &since
			return fragmentResult{outcome: o}
		}
		return fragmentResult{outcome: warning(p.Name(), CodeNotFound, "%s is not a member", email)}
	}

	membership := identity.ProviderMembership{Name: p.Name()}
	workspace, err := p.FindWorkspace(ctx, *member)
	if err != nil {
		return fragmentResult{outcome: failure(p.Name(), CodeFailed, fmt.Errorf("failed to look up workspace: %w", err))}
	}

	if workspace != nil {
		membership.WorkspaceURL = workspace.URL
		membership.SetLimitURL = workspace.LimitURL

		keys, err := p.ListWorkspaceAPIKeys(ctx, workspace.ID)
		if err != nil {
			return fragmentResult{outcome: failure(p.Name(), CodeFailed, fmt.Errorf("failed to list api keys: %w", err))}
		}
		membership.APIKeys = keys

		// Spend is best effort; the membership is still reported without it.
		if reporter, ok := p.(UsageReporter); ok {
			spend, err := reporter.WorkspaceSpend(ctx, workspace.ID)
			if err != nil {
				e.logger.Warn("Failed to fetch workspace spend",
					zap.String("provider", p.Name()),
					zap.String("workspace_id", workspace.ID),
					zap.Error(err))
			} else {
				membership.CreditsUsed = &spend
			}
		}
	}

	fragment := identity.Identity{
		Email:     email,
		Name:      member.UserName,
		Providers: []identity.ProviderMembership{membership},
	}
	o := success(p.Name(), CodeFound, "%s is a member", email)
	if invite != nil {
		// Vendors can keep a stale invite around after it was accepted.
		since := invite.InvitedAt
		o.Since = &since
		o.Message += fmt.Sprintf(", pending invite since %s", since.Format("2006-01-02"))
	}
	return fragmentResult{
		outcome:   o,
		fragments: []identity.Identity{fragment},
	}
}

// List returns the merged users of the selected providers.
//
// With opts.Cached the stored list is returned when one exists. Otherwise every
// selected provider is synced concurrently. The stored list is overwritten only
// after a sync of all configured providers where none failed, so a partial
// sync never drops another provider's users from the store.
func (e *Engine) List(ctx context.Context, opts ListOptions) (*Report, error) {
	providers, err := e.Select(opts.Providers)
	if err != nil {
		return nil, err
	}

	if opts.Cached && e.store != nil {
		var cached []identity.Identity
		found, err := e.store.Get(ctx, store.KeyUsers, &cached)
		if err != nil {
			e.logger.Warn("Failed to read local store, syncing instead", zap.Error(err))
		} else if found {
			return &Report{
				Operation: OpList,
				Users:     filterUsers(cached, opts.Filter),
				FromCache: true,
				Outcomes:  []Outcome{},
			}, nil
		}
	}

	results := fanOut(ctx, providers, func(ctx context.Context, p Provider) fragmentResult {
		users, err := p.ListUsers(ctx)
		if err != nil {
			return fragmentResult{outcome: failure(p.Name(), CodeFailed, fmt.Errorf("failed to list users: %w", err))}
		}
		return fragmentResult{
			outcome:   success(p.Name(), CodeListed, "%d members", len(users)),
			fragments: users,
		}
	})

	report := &Report{Operation: OpList}
	groups := make([][]identity.Identity, 0, len(results))
	for _, r := range results {
		report.Outcomes = append(report.Outcomes, r.outcome)
		groups = append(groups, r.fragments)
	}
	merged := identity.MergeNested(groups)
	e.logReport(report)

	if e.store != nil && !report.Failed() && len(providers) == len(e.providers) {
		if err := store.SaveUsers(ctx, e.store, merged); err != nil {
			e.logger.Warn("Failed to update local store", zap.Error(err))
		}
	}

	report.Users = filterUsers(merged, opts.Filter)
	return report, nil
}

type inviteResult struct {
	outcome Outcome
	invites []identity.Invite
}

// Invites lists invites in one status across the selected providers.
func (e *Engine) Invites(ctx context.Context, opts InviteOptions) (*Report, error) {
	status := identity.InviteStatusPending
	if strings.TrimSpace(opts.Status) != "" {
		parsed, err := identity.ParseInviteStatus(opts.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}
	providers, err := e.Select(opts.Providers)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(opts.Filter))
	results := fanOut(ctx, providers, func(ctx context.Context, p Provider) inviteResult {
		invites, err := p.ListInvites(ctx)
		if err != nil {
			return inviteResult{outcome: failure(p.Name(), CodeFailed, fmt.Errorf("failed to list invites: %w", err))}
		}
		matched := make([]identity.Invite, 0, len(invites))
		for _, inv := range invites {
			if inv.Status != status {
				continue
			}
			if needle != "" && !strings.Contains(strings.ToLower(inv.Email), needle) {
				continue
			}
			matched = append(matched, inv)
		}
		return inviteResult{
			outcome: success(p.Name(), CodeListed, "%d %s invites", len(matched), status),
			invites: matched,
		}
	})

	report := &Report{Operation: OpInvites, Invites: []identity.Invite{}}
	for _, r := range results {
		report.Outcomes = append(report.Outcomes, r.outcome)
		report.Invites = append(report.Invites, r.invites...)
	}
	e.logReport(report)
	return report, nil
}

package reconcile

import (
	"context"
	"fmt"

	"ai-access-manager/core/identity"
)

// Add invites email on every selected provider where the user is neither a
// member nor already invited.
func (e *Engine) Add(ctx context.Context, email string, names []string) (*Report, error) {
	email, err := identity.ValidateEmail(email)
	if err != nil {
		return nil, err
	}
	providers, err := e.Select(names)
	if err != nil {
		return nil, err
	}

	outcomes := fanOut(ctx, providers, func(ctx context.Context, p Provider) Outcome {
		return addOne(ctx, p, email)
	})

	report := &Report{Operation: OpAdd, Email: email, Outcomes: outcomes}
	e.logReport(report)
	return report, nil
}

func addOne(ctx context.Context, p Provider, email string) Outcome {
	member, err := p.FindMember(ctx, email)
	if err != nil {
		return failure(p.Name(), CodeFailed, fmt.Errorf("failed to look up member: %w", err))
	}
	if member != nil {
		return warning(p.Name(), CodeAlreadyMember, "%s is already a member", email)
	}

	invite, err := p.FindPendingInvite(ctx, email)
	if err != nil {
		return failure(p.Name(), CodeFailed, fmt.Errorf("failed to look up invites: %w", err))
	}
	if invite != nil {
		o := warning(p.Name(), CodeAlreadyInvited, "%s was already invited on %s", email, invite.InvitedAt.Format("2006-01-02"))
		since := invite.InvitedAt
		o.Since = &since
		return o
	}

	added, err := p.AddUser(ctx, email)
	if err != nil {
		return failure(p.Name(), CodeFailed, fmt.Errorf("failed to invite user: %w", err))
	}
	if !added {
		return warning(p.Name(), CodeAlreadyMember, "%s is already a member", email)
	}
	return success(p.Name(), CodeInvited, "invited %s", email)
}

// Assign gives a member their own workspace on every selected provider.
// Non-members are reported as errors and no workspace is created for them.
func (e *Engine) Assign(ctx context.Context, email string, names []string) (*Report, error) {
	email, err := identity.ValidateEmail(email)
	if err != nil {
		return nil, err
	}
	providers, err := e.Select(names)
	if err != nil {
		return nil, err
	}

	outcomes := fanOut(ctx, providers, func(ctx context.Context, p Provider) Outcome {
		return assignOne(ctx, p, email)
	})

	report := &Report{Operation: OpAssign, Email: email, Outcomes: outcomes}
	e.logReport(report)
	return report, nil
}

func assignOne(ctx context.Context, p Provider, email string) Outcome {
	member, err := p.FindMember(ctx, email)
	if err != nil {
		return failure(p.Name(), CodeFailed, fmt.Errorf("failed to look up member: %w", err))
	}
	if member == nil {
		return failure(p.Name(), CodeNotMember, fmt.Errorf("%w: %s", ErrNotMember, email))
	}

	workspace, err := p.FindWorkspace(ctx, *member)
	if err != nil {
		return failure(p.Name(), CodeFailed, fmt.Errorf("failed to look up workspace: %w", err))
	}
	if workspace != nil {
		return warning(p.Name(), CodeAlreadyAssigned, "%s is already assigned to workspace %s", email, workspace.Name)
	}

	assigned, err := p.AssignToWorkspace(ctx, *member)
	if err != nil {
		return failure(p.Name(), CodeFailed, fmt.Errorf("failed to assign workspace: %w", err))
	}
	if !assigned {
		return failure(p.Name(), CodeFailed, fmt.Errorf("%w: workspace assignment", ErrRejected))
	}
	return success(p.Name(), CodeAssigned, "assigned %s to a new workspace", email)
}

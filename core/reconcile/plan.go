package reconcile

import (
	"context"
	"errors"
	"fmt"

	"ai-access-manager/core/identity"
	"ai-access-manager/core/store"

	"go.uber.org/zap"
)

// ActionType represents the type of removal step.
type ActionType string

const (
	// ActionRemoveWorkspace archives the member's workspace.
	ActionRemoveWorkspace ActionType = "remove_workspace"
	// ActionRemoveUser deletes the organization member.
	ActionRemoveUser ActionType = "remove_user"
	// ActionRemoveInvite deletes a pending invite.
	ActionRemoveInvite ActionType = "remove_invite"
)

// Action represents a planned vendor call.
type Action struct {
	// Type specifies the call to make.
	Type ActionType `json:"type"`

	// TargetID is the vendor id of the workspace, user or invite.
	TargetID string `json:"target_id"`

	// Label is a display name for the target.
	Label string `json:"label"`
}

// ProviderPlan holds the ordered removal steps for one provider.
type ProviderPlan struct {
	Provider string   `json:"provider"`
	Actions  []Action `json:"actions"`

	// Outcome is set when planning already decided the result (lookup failure
	// or nothing to remove). ApplyRemoval reports it as is.
	Outcome *Outcome `json:"outcome,omitempty"`
}

// RemovalPlan contains the planned removal steps per provider.
type RemovalPlan struct {
	Email     string         `json:"email"`
	Providers []ProviderPlan `json:"providers"`
}

// ActionCount returns the number of vendor calls the plan would make.
func (p *RemovalPlan) ActionCount() int {
	n := 0
	for _, pp := range p.Providers {
		n += len(pp.Actions)
	}
	return n
}

// PlanRemoval looks up email on every selected provider and plans the removal.
// Members lose their workspace first, then their account. Users who only have
// a pending invite lose the invite. It does NOT execute anything; use ApplyRemoval.
func (e *Engine) PlanRemoval(ctx context.Context, email string, names []string) (*RemovalPlan, error) {
	email, err := identity.ValidateEmail(email)
	if err != nil {
		return nil, err
	}
	providers, err := e.Select(names)
	if err != nil {
		return nil, err
	}

	plans := fanOut(ctx, providers, func(ctx context.Context, p Provider) ProviderPlan {
		return planOne(ctx, p, email)
	})

	return &RemovalPlan{Email: email, Providers: plans}, nil
}

func planOne(ctx context.Context, p Provider, email string) ProviderPlan {
	plan := ProviderPlan{Provider: p.Name(), Actions: []Action{}}
	decided := func(o Outcome) ProviderPlan {
		plan.Outcome = &o
		return plan
	}

	member, err := p.FindMember(ctx, email)
	if err != nil {
		return decided(failure(p.Name(), CodeFailed, fmt.Errorf("failed to look up member: %w", err)))
	}

	if member == nil {
		invite, err := p.FindPendingInvite(ctx, email)
		if err != nil {
			return decided(failure(p.Name(), CodeFailed, fmt.Errorf("failed to look up invites: %w", err)))
		}
		if invite == nil {
			return decided(warning(p.Name(), CodeNotFound, "%s is neither a member nor invited", email))
		}
		plan.Actions = append(plan.Actions, Action{Type: ActionRemoveInvite, TargetID: invite.ID, Label: email})
		return plan
	}

	workspace, err := p.FindWorkspace(ctx, *member)
	if err != nil {
		return decided(failure(p.Name(), CodeFailed, fmt.Errorf("failed to look up workspace: %w", err)))
	}
	if workspace != nil {
		plan.Actions = append(plan.Actions, Action{Type: ActionRemoveWorkspace, TargetID: workspace.ID, Label: workspace.Name})
	}
	plan.Actions = append(plan.Actions, Action{Type: ActionRemoveUser, TargetID: member.UserID, Label: email})
	return plan
}

// ApplyRemoval executes a removal plan. Providers run concurrently; the steps of
// one provider run in order and stop at the first failure. A provider where some
// step succeeded before a later one failed is reported as partial_removal, an error.
// Providers removed successfully are dropped from the stored identity.
func (e *Engine) ApplyRemoval(ctx context.Context, plan *RemovalPlan) (*Report, error) {
	if plan == nil {
		return nil, errors.New("nil removal plan")
	}

	providers := make([]Provider, 0, len(plan.Providers))
	steps := make(map[string]ProviderPlan, len(plan.Providers))
	for _, pp := range plan.Providers {
		p, ok := e.byName[pp.Provider]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, pp.Provider)
		}
		providers = append(providers, p)
		steps[pp.Provider] = pp
	}

	outcomes := fanOut(ctx, providers, func(ctx context.Context, p Provider) Outcome {
		pp := steps[p.Name()]
		if pp.Outcome != nil {
			return *pp.Outcome
		}
		return applyOne(ctx, p, plan.Email, pp.Actions)
	})

	report := &Report{Operation: OpRemove, Email: plan.Email, Outcomes: outcomes}
	e.logReport(report)

	var removed []string
	for _, o := range outcomes {
		if o.Status == StatusSuccess {
			removed = append(removed, o.Provider)
		}
	}
	if len(removed) > 0 && e.store != nil {
		if err := store.ForgetProvider(ctx, e.store, plan.Email, removed...); err != nil {
			e.logger.Warn("Failed to update local store", zap.String("email", plan.Email), zap.Error(err))
		}
	}

	return report, nil
}

func applyOne(ctx context.Context, p Provider, email string, actions []Action) Outcome {
	var performed []string
	code := CodeRemoved

	for _, action := range actions {
		var (
			ok  bool
			err error
		)
		switch action.Type {
		case ActionRemoveWorkspace:
			ok, err = p.RemoveWorkspace(ctx, action.TargetID)
		case ActionRemoveUser:
			ok, err = p.RemoveUser(ctx, action.TargetID)
		case ActionRemoveInvite:
			ok, err = p.RemoveInvite(ctx, action.TargetID)
			code = CodeInviteRemoved
		default:
			err = fmt.Errorf("unsupported action %q", action.Type)
		}
		if err == nil && !ok {
			err = ErrRejected
		}

		if err != nil {
			err = fmt.Errorf("failed to %s %s: %w", describe(action.Type), action.Label, err)
			if len(performed) == 0 {
				return failure(p.Name(), CodeFailed, err)
			}
			o := failure(p.Name(), CodePartialRemoval, err)
			o.Performed = performed
			return o
		}
		performed = append(performed, fmt.Sprintf("%s %s", describe(action.Type), action.Label))
	}

	o := success(p.Name(), code, "removed %s", email)
	o.Performed = performed
	return o
}

func describe(t ActionType) string {
	switch t {
	case ActionRemoveWorkspace:
		return "archive workspace"
	case ActionRemoveUser:
		return "remove user"
	case ActionRemoveInvite:
		return "remove invite for"
	default:
		return string(t)
	}
}

// Remove is a convenience wrapper that plans and applies a removal in one call.
func (e *Engine) Remove(ctx context.Context, email string, names []string) (*Report, error) {
	plan, err := e.PlanRemoval(ctx, email, names)
	if err != nil {
		return nil, err
	}
	return e.ApplyRemoval(ctx, plan)
}

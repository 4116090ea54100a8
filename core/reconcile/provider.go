package reconcile

import (
	"context"

	"ai-access-manager/core/identity"
)

// Provider defines the capabilities a vendor adapter exposes to the engine.
// Point lookups return nil without error when nothing matches.
type Provider interface {
	// Name returns the unique provider key (e.g., "openai", "anthropic").
	Name() string

	// ListUsers returns every organization member as a single-provider Identity.
	ListUsers(ctx context.Context) ([]identity.Identity, error)

	// FindMember looks up an organization member by email.
	FindMember(ctx context.Context, email string) (*identity.MemberRef, error)

	// FindPendingInvite returns the pending invite for email, if any.
	FindPendingInvite(ctx context.Context, email string) (*identity.Invite, error)

	// ListInvites returns every invite regardless of status.
	ListInvites(ctx context.Context) ([]identity.Invite, error)

	// FindWorkspace returns the isolation unit assigned to member.
	// The lookup is heuristic, see identity.MatchesWorkspaceName.
	FindWorkspace(ctx context.Context, member identity.MemberRef) (*identity.WorkspaceRef, error)

	// ListWorkspaceAPIKeys returns the key hints scoped to a workspace.
	ListWorkspaceAPIKeys(ctx context.Context, workspaceID string) ([]identity.APIKeyRef, error)

	// AddUser invites email to the organization. It returns false when the
	// email is already a member.
	AddUser(ctx context.Context, email string) (bool, error)

	// AssignToWorkspace creates a workspace named after member and adds member to it.
	// It creates a new unit on every call; callers check FindWorkspace first.
	AssignToWorkspace(ctx context.Context, member identity.MemberRef) (bool, error)

	// RemoveUser deletes the organization member.
	RemoveUser(ctx context.Context, userID string) (bool, error)

	// RemoveWorkspace archives the workspace.
	RemoveWorkspace(ctx context.Context, workspaceID string) (bool, error)

	// RemoveInvite deletes a pending invite.
	RemoveInvite(ctx context.Context, inviteID string) (bool, error)
}

// UsageReporter is implemented by providers that can report workspace spend.
type UsageReporter interface {
	// WorkspaceSpend returns the month-to-date spend of the workspace in USD.
	WorkspaceSpend(ctx context.Context, workspaceID string) (float64, error)
}

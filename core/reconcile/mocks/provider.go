package mocks

import (
	"context"

	"ai-access-manager/core/identity"

	"github.com/stretchr/testify/mock"
)

// Provider is a mock implementation of reconcile.Provider
type Provider struct {
	mock.Mock
	ProviderName string
}

func (m *Provider) Name() string {
	return m.ProviderName
}

func (m *Provider) ListUsers(ctx context.Context) ([]identity.Identity, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]identity.Identity)
	return users, args.Error(1)
}

func (m *Provider) FindMember(ctx context.Context, email string) (*identity.MemberRef, error) {
	args := m.Called(ctx, email)
	member, _ := args.Get(0).(*identity.MemberRef)
	return member, args.Error(1)
}

func (m *Provider) FindPendingInvite(ctx context.Context, email string) (*identity.Invite, error) {
	args := m.Called(ctx, email)
	invite, _ := args.Get(0).(*identity.Invite)
	return invite, args.Error(1)
}

func (m *Provider) ListInvites(ctx context.Context) ([]identity.Invite, error) {
	args := m.Called(ctx)
	invites, _ := args.Get(0).([]identity.Invite)
	return invites, args.Error(1)
}

func (m *Provider) FindWorkspace(ctx context.Context, member identity.MemberRef) (*identity.WorkspaceRef, error) {
	args := m.Called(ctx, member)
	ws, _ := args.Get(0).(*identity.WorkspaceRef)
	return ws, args.Error(1)
}

func (m *Provider) ListWorkspaceAPIKeys(ctx context.Context, workspaceID string) ([]identity.APIKeyRef, error) {
	args := m.Called(ctx, workspaceID)
	keys, _ := args.Get(0).([]identity.APIKeyRef)
	return keys, args.Error(1)
}

func (m *Provider) AddUser(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *Provider) AssignToWorkspace(ctx context.Context, member identity.MemberRef) (bool, error) {
	args := m.Called(ctx, member)
	return args.Bool(0), args.Error(1)
}

func (m *Provider) RemoveUser(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *Provider) RemoveWorkspace(ctx context.Context, workspaceID string) (bool, error) {
	args := m.Called(ctx, workspaceID)
	return args.Bool(0), args.Error(1)
}

func (m *Provider) RemoveInvite(ctx context.Context, inviteID string) (bool, error) {
	args := m.Called(ctx, inviteID)
	return args.Bool(0), args.Error(1)
}

// UsageProvider is a Provider that also reports workspace spend.
type UsageProvider struct {
	Provider
}

func (m *UsageProvider) WorkspaceSpend(ctx context.Context, workspaceID string) (float64, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).(float64), args.Error(1)
}

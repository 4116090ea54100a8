package reconcile

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"ai-access-manager/core/identity"
	"ai-access-manager/core/reconcile/mocks"
	"ai-access-manager/core/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) store.Store {
	t.Helper()
	return store.NewFileStore(filepath.Join(t.TempDir(), ".store.json"))
}

func TestInfo(t *testing.T) {
	ctx := context.Background()

	t.Run("MergesProvidersAndUpdatesStore", func(t *testing.T) {
		st := newStore(t)

		openai := &mocks.UsageProvider{Provider: mocks.Provider{ProviderName: "openai"}}
		openai.On("FindPendingInvite", mock.Anything, "jane@x.com").Return(nil, nil)
		openai.On("FindMember", mock.Anything, "jane@x.com").Return(jane, nil)
		openai.On("FindWorkspace", mock.Anything, *jane).
			Return(&identity.WorkspaceRef{ID: "proj_1", Name: "Jane Doe", URL: "https://ws", LimitURL: "https://limit"}, nil)
		openai.On("ListWorkspaceAPIKeys", mock.Anything, "proj_1").
			Return([]identity.APIKeyRef{{Name: "dev", KeyHint: "sk-...abcd"}}, nil)
		openai.On("WorkspaceSpend", mock.Anything, "proj_1").Return(12.5, nil)

		anthropic := newMock("anthropic")
		anthropic.On("FindPendingInvite", mock.Anything, "jane@x.com").Return(nil, nil)
		anthropic.On("FindMember", mock.Anything, "jane@x.com").Return(jane, nil)
		anthropic.On("FindWorkspace", mock.Anything, *jane).Return(nil, nil)

		report, err := NewEngine([]Provider{openai, anthropic}, st, nil).Info(ctx, "jane@x.com", nil)
		require.NoError(t, err)
		require.Len(t, report.Users, 1)

		user := report.Users[0]
		assert.Equal(t, "Jane Doe", user.Name)
		assert.Equal(t, []string{"openai", "anthropic"}, user.ProviderNames())
		require.NotNil(t, user.Providers[0].CreditsUsed)
		assert.Equal(t, 12.5, *user.Providers[0].CreditsUsed)
		assert.Equal(t, "https://limit", user.Providers[0].SetLimitURL)
		assert.Len(t, user.Providers[0].APIKeys, 1)
		assert.Nil(t, user.Providers[1].CreditsUsed)

		cached, err := store.LoadUsers(ctx, st)
		require.NoError(t, err)
		require.Len(t, cached, 1)
		assert.Equal(t, user, cached[0])
	})

	t.Run("SpendFailureKeepsMembership", func(t *testing.T) {
		p := &mocks.UsageProvider{Provider: mocks.Provider{ProviderName: "openai"}}
		p.On("FindPendingInvite", mock.Anything, "jane@x.com").Return(nil, nil)
		p.On("FindMember", mock.Anything, "jane@x.com").Return(jane, nil)
		p.On("FindWorkspace", mock.Anything, *jane).Return(&identity.WorkspaceRef{ID: "proj_1"}, nil)
		p.On("ListWorkspaceAPIKeys", mock.Anything, "proj_1").Return([]identity.APIKeyRef{}, nil)
		p.On("WorkspaceSpend", mock.Anything, "proj_1").Return(0.0, errors.New("costs unavailable"))

		report, err := NewEngine([]Provider{p}, nil, nil).Info(ctx, "jane@x.com", nil)
		require.NoError(t, err)
		assert.Equal(t, StatusSuccess, report.Outcomes[0].Status)
		require.Len(t, report.Users, 1)
		assert.Nil(t, report.Users[0].Providers[0].CreditsUsed)
	})

	t.Run("PendingInviteStillReportsMembership", func(t *testing.T) {
		invitedAt := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
		p := newMock("anthropic")
		p.On("FindPendingInvite", mock.Anything, "jane@x.com").
			Return(&identity.Invite{ID: "inv", InvitedAt: invitedAt}, nil)
		p.On("FindMember", mock.Anything, "jane@x.com").Return(jane, nil)
		p.On("FindWorkspace", mock.Anything, *jane).
			Return(&identity.WorkspaceRef{ID: "ws_1", URL: "https://ws"}, nil)
		p.On("ListWorkspaceAPIKeys", mock.Anything, "ws_1").Return([]identity.APIKeyRef{}, nil)

		report, err := NewEngine([]Provider{p}, nil, nil).Info(ctx, "jane@x.com", nil)
		require.NoError(t, err)
		o := report.Outcomes[0]
		assert.Equal(t, CodeFound, o.Code)
		require.NotNil(t, o.Since)
		assert.True(t, invitedAt.Equal(*o.Since))
		assert.Contains(t, o.Message, "2026-05-04")
		require.Len(t, report.Users, 1)
		assert.Equal(t, "https://ws", report.Users[0].Providers[0].WorkspaceURL)
	})

	t.Run("ProviderSubsetKeepsOtherMemberships", func(t *testing.T) {
		st := newStore(t)
		require.NoError(t, store.SaveUsers(ctx, st, []identity.Identity{{
			Email:     "jane@x.com",
			Name:      "Jane Doe",
			Providers: []identity.ProviderMembership{{Name: "openai"}, {Name: "anthropic", WorkspaceURL: "https://console/ws"}},
		}}))

		openai := newMock("openai")
		openai.On("FindPendingInvite", mock.Anything, "jane@x.com").Return(nil, nil)
		openai.On("FindMember", mock.Anything, "jane@x.com").Return(jane, nil)
		openai.On("FindWorkspace", mock.Anything, *jane).
			Return(&identity.WorkspaceRef{ID: "proj_1", URL: "https://platform/proj"}, nil)
		openai.On("ListWorkspaceAPIKeys", mock.Anything, "proj_1").Return([]identity.APIKeyRef{}, nil)
		anthropic := newMock("anthropic")

		_, err := NewEngine([]Provider{openai, anthropic}, st, nil).Info(ctx, "jane@x.com", []string{"openai"})
		require.NoError(t, err)
		anthropic.AssertNotCalled(t, "FindMember", mock.Anything, mock.Anything)

		cached, err := store.LoadUsers(ctx, st)
		require.NoError(t, err)
		require.Len(t, cached, 1)
		assert.Equal(t, []string{"openai", "anthropic"}, cached[0].ProviderNames())
		assert.Equal(t, "https://platform/proj", cached[0].Providers[0].WorkspaceURL)
		assert.Equal(t, "https://console/ws", cached[0].Providers[1].WorkspaceURL)
	})

	t.Run("PendingInviteAndNotFound", func(t *testing.T) {
		st := newStore(t)
		openai := newMock("openai")
		openai.On("FindPendingInvite", mock.Anything, "jane@x.com").
			Return(&identity.Invite{ID: "inv", InvitedAt: time.Now()}, nil)
		openai.On("FindMember", mock.Anything, "jane@x.com").Return(nil, nil)
		anthropic := newMock("anthropic")
		anthropic.On("FindPendingInvite", mock.Anything, "jane@x.com").Return(nil, nil)
		anthropic.On("FindMember", mock.Anything, "jane@x.com").Return(nil, nil)

		report, err := NewEngine([]Provider{openai, anthropic}, st, nil).Info(ctx, "jane@x.com", nil)
		require.NoError(t, err)
		assert.Empty(t, report.Users)
		assert.Equal(t, CodeAlreadyInvited, report.Outcomes[0].Code)
		assert.NotNil(t, report.Outcomes[0].Since)
		assert.Equal(t, CodeNotFound, report.Outcomes[1].Code)
		openai.AssertCalled(t, "FindMember", mock.Anything, "jane@x.com")

		found, err := st.Get(ctx, store.KeyUsers, &[]identity.Identity{})
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()

	openaiUsers := []identity.Identity{
		{Email: "a@x.com", Name: "A", Providers: []identity.ProviderMembership{{Name: "openai"}}},
		{Email: "b@x.com", Name: "B", Providers: []identity.ProviderMembership{{Name: "openai"}}},
	}
	anthropicUsers := []identity.Identity{
		{Email: "A@x.com", Name: "A", Providers: []identity.ProviderMembership{{Name: "anthropic"}}},
	}

	t.Run("MergesFiltersAndSaves", func(t *testing.T) {
		st := newStore(t)
		openai := newMock("openai")
		openai.On("ListUsers", mock.Anything).Return(openaiUsers, nil)
		anthropic := newMock("anthropic")
		anthropic.On("ListUsers", mock.Anything).Return(anthropicUsers, nil)

		engine := NewEngine([]Provider{openai, anthropic}, st, nil)
		report, err := engine.List(ctx, ListOptions{Filter: "A@"})
		require.NoError(t, err)
		require.Len(t, report.Users, 1)
		assert.Equal(t, []string{"openai", "anthropic"}, report.Users[0].ProviderNames())

		cached, err := store.LoadUsers(ctx, st)
		require.NoError(t, err)
		assert.Len(t, cached, 2)

		report, err = engine.List(ctx, ListOptions{Cached: true, Filter: "b@"})
		require.NoError(t, err)
		assert.True(t, report.FromCache)
		require.Len(t, report.Users, 1)
		assert.Equal(t, "b@x.com", report.Users[0].Email)
		openai.AssertNumberOfCalls(t, "ListUsers", 1)
	})

	t.Run("FailureKeepsStoredList", func(t *testing.T) {
		st := newStore(t)
		require.NoError(t, store.SaveUsers(ctx, st, []identity.Identity{{Email: "old@x.com"}}))

		openai := newMock("openai")
		openai.On("ListUsers", mock.Anything).Return(openaiUsers, nil)
		anthropic := newMock("anthropic")
		anthropic.On("ListUsers", mock.Anything).Return(nil, errors.New("boom"))

		report, err := NewEngine([]Provider{openai, anthropic}, st, nil).List(ctx, ListOptions{})
		require.NoError(t, err)
		assert.True(t, report.Failed())
		assert.Len(t, report.Users, 2)

		cached, err := store.LoadUsers(ctx, st)
		require.NoError(t, err)
		require.Len(t, cached, 1)
		assert.Equal(t, "old@x.com", cached[0].Email)
	})

	t.Run("SubsetSyncDoesNotOverwrite", func(t *testing.T) {
		st := newStore(t)
		openai := newMock("openai")
		openai.On("ListUsers", mock.Anything).Return(openaiUsers, nil)
		anthropic := newMock("anthropic")

		_, err := NewEngine([]Provider{openai, anthropic}, st, nil).List(ctx, ListOptions{Providers: []string{"openai"}})
		require.NoError(t, err)

		found, err := st.Get(ctx, store.KeyUsers, &[]identity.Identity{})
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("CachedWithoutStoredListSyncs", func(t *testing.T) {
		openai := newMock("openai")
		openai.On("ListUsers", mock.Anything).Return(openaiUsers, nil)

		report, err := NewEngine([]Provider{openai}, newStore(t), nil).List(ctx, ListOptions{Cached: true})
		require.NoError(t, err)
		assert.False(t, report.FromCache)
		assert.Len(t, report.Users, 2)
	})
}

func TestInvites(t *testing.T) {
	ctx := context.Background()
	openai := newMock("openai")
	openai.On("ListInvites", mock.Anything).Return([]identity.Invite{
		{ID: "1", Email: "a@x.com", Status: identity.InviteStatusPending, Provider: "openai"},
		{ID: "2", Email: "b@x.com", Status: identity.InviteStatusExpired, Provider: "openai"},
	}, nil)
	anthropic := newMock("anthropic")
	anthropic.On("ListInvites", mock.Anything).Return([]identity.Invite{
		{ID: "3", Email: "c@y.com", Status: identity.InviteStatusPending, Provider: "anthropic"},
		{ID: "4", Email: "d@y.com", Status: identity.InviteStatusDeleted, Provider: "anthropic"},
	}, nil)
	engine := NewEngine([]Provider{openai, anthropic}, nil, nil)

	t.Run("DefaultsToPending", func(t *testing.T) {
		report, err := engine.Invites(ctx, InviteOptions{})
		require.NoError(t, err)
		require.Len(t, report.Invites, 2)
		assert.Equal(t, "1", report.Invites[0].ID)
		assert.Equal(t, "3", report.Invites[1].ID)
	})

	t.Run("StatusAndFilter", func(t *testing.T) {
		report, err := engine.Invites(ctx, InviteOptions{Status: "Deleted", Filter: "@y.com"})
		require.NoError(t, err)
		require.Len(t, report.Invites, 1)
		assert.Equal(t, "4", report.Invites[0].ID)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		_, err := engine.Invites(ctx, InviteOptions{Status: "rejected"})
		assert.ErrorIs(t, err, identity.ErrInvalidStatus)
	})
}

package reconcile

import (
	"context"
	"errors"
	"testing"

	"ai-access-manager/core/identity"
	"ai-access-manager/core/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPlanRemoval(t *testing.T) {
	ctx := context.Background()

	member := newMock("openai")
	member.On("FindMember", mock.Anything, "jane@x.com").Return(jane, nil)
	member.On("FindWorkspace", mock.Anything, *jane).Return(&identity.WorkspaceRef{ID: "proj_1", Name: "Jane Doe"}, nil)

	invited := newMock("anthropic")
	invited.On("FindMember", mock.Anything, "jane@x.com").Return(nil, nil)
	invited.On("FindPendingInvite", mock.Anything, "jane@x.com").Return(&identity.Invite{ID: "inv_1"}, nil)

	plan, err := NewEngine([]Provider{member, invited}, nil, nil).PlanRemoval(ctx, "jane@x.com", nil)
	require.NoError(t, err)
	require.Len(t, plan.Providers, 2)
	assert.Equal(t, 3, plan.ActionCount())

	assert.Equal(t, []Action{
		{Type: ActionRemoveWorkspace, TargetID: "proj_1", Label: "Jane Doe"},
		{Type: ActionRemoveUser, TargetID: "user-1", Label: "jane@x.com"},
	}, plan.Providers[0].Actions)
	assert.Equal(t, []Action{
		{Type: ActionRemoveInvite, TargetID: "inv_1", Label: "jane@x.com"},
	}, plan.Providers[1].Actions)

	member.AssertNotCalled(t, "RemoveWorkspace", mock.Anything, mock.Anything)
	member.AssertNotCalled(t, "RemoveUser", mock.Anything, mock.Anything)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("WorkspaceRemovedButUserFailsIsError", func(t *testing.T) {
		p := newMock("openai")
		p.On("FindMember", mock.Anything, "jane@x.com").Return(jane, nil)
		p.On("FindWorkspace", mock.Anything, *jane).Return(&identity.WorkspaceRef{ID: "proj_1", Name: "Jane Doe"}, nil)
		p.On("RemoveWorkspace", mock.Anything, "proj_1").Return(true, nil)
		p.On("RemoveUser", mock.Anything, "user-1").Return(false, errors.New("500 internal"))

		report, err := NewEngine([]Provider{p}, nil, nil).Remove(ctx, "jane@x.com", nil)
		require.NoError(t, err)
		o := report.Outcomes[0]
		assert.Equal(t, StatusError, o.Status)
		assert.Equal(t, CodePartialRemoval, o.Code)
		assert.Equal(t, []string{"archive workspace Jane Doe"}, o.Performed)
		assert.ErrorContains(t, o.Err, "500 internal")
	})

	t.Run("WorkspaceFailureStopsBeforeUser", func(t *testing.T) {
		p := newMock("openai")
		p.On("FindMember", mock.Anything, "jane@x.com").Return(jane, nil)
		p.On("FindWorkspace", mock.Anything, *jane).Return(&identity.WorkspaceRef{ID: "proj_1", Name: "Jane Doe"}, nil)
		p.On("RemoveWorkspace", mock.Anything, "proj_1").Return(false, nil)

		report, err := NewEngine([]Provider{p}, nil, nil).Remove(ctx, "jane@x.com", nil)
		require.NoError(t, err)
		assert.Equal(t, CodeFailed, report.Outcomes[0].Code)
		assert.ErrorIs(t, report.Outcomes[0].Err, ErrRejected)
		p.AssertNotCalled(t, "RemoveUser", mock.Anything, mock.Anything)
	})

	t.Run("SuccessUpdatesStore", func(t *testing.T) {
		st := newStore(t)
		require.NoError(t, store.SaveUsers(ctx, st, []identity.Identity{{
			Email:     "jane@x.com",
			Providers: []identity.ProviderMembership{{Name: "openai"}, {Name: "anthropic"}},
		}}))

		openai := newMock("openai")
		openai.On("FindMember", mock.Anything, "jane@x.com").Return(jane, nil)
		openai.On("FindWorkspace", mock.Anything, *jane).Return(nil, nil)
		openai.On("RemoveUser", mock.Anything, "user-1").Return(true, nil)

		anthropic := newMock("anthropic")
		anthropic.On("FindMember", mock.Anything, "jane@x.com").Return(nil, errors.New("unreachable"))

		report, err := NewEngine([]Provider{openai, anthropic}, st, nil).Remove(ctx, "jane@x.com", nil)
		require.NoError(t, err)
		assert.Equal(t, CodeRemoved, report.Outcomes[0].Code)
		assert.Equal(t, StatusError, report.Outcomes[1].Status)

		cached, err := store.LoadUsers(ctx, st)
		require.NoError(t, err)
		require.Len(t, cached, 1)
		assert.Equal(t, []string{"anthropic"}, cached[0].ProviderNames())
	})

	t.Run("InviteOnly", func(t *testing.T) {
		p := newMock("anthropic")
		p.On("FindMember", mock.Anything, "jane@x.com").Return(nil, nil)
		p.On("FindPendingInvite", mock.Anything, "jane@x.com").Return(&identity.Invite{ID: "inv_1"}, nil)
		p.On("RemoveInvite", mock.Anything, "inv_1").Return(true, nil)

		report, err := NewEngine([]Provider{p}, nil, nil).Remove(ctx, "jane@x.com", nil)
		require.NoError(t, err)
		assert.Equal(t, CodeInviteRemoved, report.Outcomes[0].Code)
		p.AssertNotCalled(t, "RemoveUser", mock.Anything, mock.Anything)
	})

	t.Run("NothingToRemove", func(t *testing.T) {
		p := newMock("anthropic")
		p.On("FindMember", mock.Anything, "jane@x.com").Return(nil, nil)
		p.On("FindPendingInvite", mock.Anything, "jane@x.com").Return(nil, nil)

		report, err := NewEngine([]Provider{p}, nil, nil).Remove(ctx, "jane@x.com", nil)
		require.NoError(t, err)
		assert.Equal(t, StatusWarning, report.Outcomes[0].Status)
		assert.Equal(t, CodeNotFound, report.Outcomes[0].Code)
	})

	t.Run("ApplyUnknownProvider", func(t *testing.T) {
		engine := NewEngine([]Provider{newMock("openai")}, nil, nil)
		_, err := engine.ApplyRemoval(ctx, &RemovalPlan{Email: "jane@x.com", Providers: []ProviderPlan{{Provider: "gemini"}}})
		assert.ErrorIs(t, err, ErrUnknownProvider)
	})
}

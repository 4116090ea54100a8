package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-access-manager/core/identity"
	"ai-access-manager/core/reconcile/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMock(name string) *mocks.Provider {
	return &mocks.Provider{ProviderName: name}
}

func TestSelect(t *testing.T) {
	openai := newMock("openai")
	anthropic := newMock("anthropic")
	engine := NewEngine([]Provider{openai, anthropic}, nil, nil)

	t.Run("EmptySelectsAll", func(t *testing.T) {
		selected, err := engine.Select(nil)
		require.NoError(t, err)
		assert.Len(t, selected, 2)
	})

	t.Run("KeepsConfiguredOrderAndDedups", func(t *testing.T) {
		selected, err := engine.Select([]string{"anthropic", "OpenAI", "anthropic"})
		require.NoError(t, err)
		require.Len(t, selected, 2)
		assert.Equal(t, "openai", selected[0].Name())
		assert.Equal(t, "anthropic", selected[1].Name())
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := engine.Select([]string{"gemini"})
		assert.ErrorIs(t, err, ErrUnknownProvider)
		assert.ErrorContains(t, err, "openai, anthropic")
	})

	t.Run("NoProviders", func(t *testing.T) {
		_, err := NewEngine(nil, nil, nil).Select(nil)
		assert.ErrorIs(t, err, ErrNoProviders)
	})
}

// TestFanOutRunsProvidersConcurrently blocks every provider until all of them
// have started, which only completes when they run at the same time.
func TestFanOutRunsProvidersConcurrently(t *testing.T) {
	started := make(chan struct{}, 2)
	release := make(chan struct{})
	allStarted := make(chan bool, 1)

	go func() {
		for i := 0; i < 2; i++ {
			select {
			case <-started:
			case <-time.After(2 * time.Second):
				allStarted <- false
				close(release)
				return
			}
		}
		allStarted <- true
		close(release)
	}()

	var providers []Provider
	for _, name := range []string{"openai", "anthropic"} {
		p := newMock(name)
		p.On("ListUsers", mock.Anything).Run(func(mock.Arguments) {
			started <- struct{}{}
			<-release
		}).Return([]identity.Identity{}, nil)
		providers = append(providers, p)
	}

	report, err := NewEngine(providers, nil, nil).Health(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, <-allStarted)
	assert.Equal(t, 2, report.Count(StatusSuccess))
}

func TestHealth(t *testing.T) {
	openai := newMock("openai")
	openai.On("ListUsers", mock.Anything).Return([]identity.Identity{{Email: "a@x.com"}}, nil)
	anthropic := newMock("anthropic")
	anthropic.On("ListUsers", mock.Anything).Return(nil, errors.New("401 unauthorized"))

	report, err := NewEngine([]Provider{openai, anthropic}, nil, nil).Health(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, report.Outcomes, 2)

	assert.Equal(t, StatusSuccess, report.Outcomes[0].Status)
	assert.Equal(t, CodeHealthy, report.Outcomes[0].Code)
	assert.Equal(t, StatusError, report.Outcomes[1].Status)
	assert.Equal(t, CodeUnreachable, report.Outcomes[1].Code)
	assert.True(t, report.Failed())
	assert.ErrorContains(t, report.Err(), "anthropic: 401 unauthorized")
}

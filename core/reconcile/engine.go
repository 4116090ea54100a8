package reconcile

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"ai-access-manager/core/identity"
	"ai-access-manager/core/store"

	"go.uber.org/zap"
)

// Engine runs reconciliation operations against a fixed set of providers.
type Engine struct {
	providers []Provider
	byName    map[string]Provider
	store     store.Store
	logger    *zap.Logger
}

// NewEngine creates an engine. The store may be nil, in which case nothing is cached.
func NewEngine(providers []Provider, st store.Store, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	byName := make(map[string]Provider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}
	return &Engine{
		providers: providers,
		byName:    byName,
		store:     st,
		logger:    logger,
	}
}

// ProviderNames returns the configured provider names in registration order.
func (e *Engine) ProviderNames() []string {
	names := make([]string, 0, len(e.providers))
	for _, p := range e.providers {
		names = append(names, p.Name())
	}
	return names
}

// Select resolves provider names. Empty names selects every configured provider.
// Duplicates are ignored and the configured order is kept.
func (e *Engine) Select(names []string) ([]Provider, error) {
	if len(e.providers) == 0 {
		return nil, ErrNoProviders
	}
	if len(names) == 0 {
		return e.providers, nil
	}

	wanted := make(map[string]struct{}, len(names))
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if _, ok := e.byName[name]; !ok {
			return nil, fmt.Errorf("%w: %q (configured: %s)", ErrUnknownProvider, raw, strings.Join(e.ProviderNames(), ", "))
		}
		wanted[name] = struct{}{}
	}

	selected := make([]Provider, 0, len(wanted))
	for _, p := range e.providers {
		if _, ok := wanted[p.Name()]; ok {
			selected = append(selected, p)
		}
	}
	return selected, nil
}

// fanOut runs fn once per provider concurrently and returns the results in provider order.
// Every goroutine runs to completion; a failing provider does not cancel the others.
func fanOut[T any](ctx context.Context, providers []Provider, fn func(context.Context, Provider) T) []T {
	results := make([]T, len(providers))

	var wg sync.WaitGroup
	wg.Add(len(providers))
	for i, p := range providers {
		go func(i int, p Provider) {
			defer wg.Done()
			results[i] = fn(ctx, p)
		}(i, p)
	}
	wg.Wait()

	return results
}

// Health checks every selected provider with one list call.
func (e *Engine) Health(ctx context.Context, names []string) (*Report, error) {
	providers, err := e.Select(names)
	if err != nil {
		return nil, err
	}

	outcomes := fanOut(ctx, providers, func(ctx context.Context, p Provider) Outcome {
		users, err := p.ListUsers(ctx)
		if err != nil {
			return failure(p.Name(), CodeUnreachable, err)
		}
		return success(p.Name(), CodeHealthy, "reachable, %d members", len(users))
	})

	report := &Report{Operation: OpHealth, Outcomes: outcomes}
	e.logReport(report)
	return report, nil
}

func (e *Engine) logReport(r *Report) {
	for _, o := range r.Outcomes {
		fields := []zap.Field{
			zap.String("operation", string(r.Operation)),
			zap.String("provider", o.Provider),
			zap.String("code", string(o.Code)),
		}
		if r.Email != "" {
			fields = append(fields, zap.String("email", r.Email))
		}
		switch o.Status {
		case StatusError:
			e.logger.Warn("Provider operation failed", append(fields, zap.Error(o.Err))...)
		case StatusWarning:
			e.logger.Info(o.Message, fields...)
		default:
			e.logger.Debug(o.Message, fields...)
		}
	}
}

// filterUsers keeps users whose email contains filter, case-insensitively.
func filterUsers(users []identity.Identity, filter string) []identity.Identity {
	needle := strings.ToLower(strings.TrimSpace(filter))
	out := make([]identity.Identity, 0, len(users))
	for _, u := range users {
		if needle == "" || strings.Contains(strings.ToLower(u.Email), needle) {
			out = append(out, u)
		}
	}
	return out
}

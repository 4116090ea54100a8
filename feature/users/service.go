package users

import (
	"context"
	"time"

	"ai-access-manager/core/reconcile"

	"go.uber.org/zap"
)

// Service wraps the engine for the HTTP surface.
type Service struct {
	engine  *reconcile.Engine
	cache   *reconcile.SyncCache
	logger  *zap.Logger
	timeout time.Duration
}

// NewService creates a new users service.
func NewService(engine *reconcile.Engine, cacheTTL, timeout time.Duration, logger *zap.Logger) *Service {
	return &Service{
		engine:  engine,
		cache:   reconcile.NewSyncCache(engine, cacheTTL),
		logger:  logger,
		timeout: timeout,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// List returns the merged user list. Requests for a provider subset or with
// refresh bypass the in-memory cache.
func (s *Service) List(ctx context.Context, filter string, providers []string, refresh bool) (*reconcile.Report, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if len(providers) > 0 {
		return s.engine.List(ctx, reconcile.ListOptions{Filter: filter, Providers: providers})
	}
	if refresh {
		s.cache.Invalidate()
	}
	return s.cache.Users(ctx, filter)
}

// Info returns the live state of one user.
func (s *Service) Info(ctx context.Context, email string, providers []string) (*reconcile.Report, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.engine.Info(ctx, email, providers)
}

// Add invites a user.
func (s *Service) Add(ctx context.Context, email string, providers []string) (*reconcile.Report, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	report, err := s.engine.Add(ctx, email, providers)
	if err == nil {
		s.cache.Invalidate()
	}
	return report, err
}

// Assign gives a member a workspace.
func (s *Service) Assign(ctx context.Context, email string, providers []string) (*reconcile.Report, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.engine.Assign(ctx, email, providers)
}

// PlanRemoval returns the removal plan without executing it.
func (s *Service) PlanRemoval(ctx context.Context, email string, providers []string) (*reconcile.RemovalPlan, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.engine.PlanRemoval(ctx, email, providers)
}

// Remove removes a user.
func (s *Service) Remove(ctx context.Context, email string, providers []string) (*reconcile.Report, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	report, err := s.engine.Remove(ctx, email, providers)
	if err == nil {
		s.cache.Invalidate()
	}
	return report, err
}

// Invites lists invites.
func (s *Service) Invites(ctx context.Context, opts reconcile.InviteOptions) (*reconcile.Report, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.engine.Invites(ctx, opts)
}

// Health checks provider reachability.
func (s *Service) Health(ctx context.Context, providers []string) (*reconcile.Report, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.engine.Health(ctx, providers)
}

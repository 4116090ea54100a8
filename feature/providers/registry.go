package providers

import (
	"errors"
	"fmt"
	"strings"

	"ai-access-manager/core/config"
	"ai-access-manager/core/httpclient"
	"ai-access-manager/core/reconcile"
	"ai-access-manager/feature/anthropic"
	"ai-access-manager/feature/openai"

	"go.uber.org/zap"
)

// ErrNotConfigured is returned when a requested provider has no admin key.
var ErrNotConfigured = errors.New("provider not configured")

type entry struct {
	name       string
	configured func(cfg *config.Config) bool
	build      func(cfg *config.Config, logger *zap.Logger) (reconcile.Provider, error)
}

var registry = []entry{
	{
		name:       openai.Name,
		configured: func(cfg *config.Config) bool { return strings.TrimSpace(cfg.OpenAI.AdminKey) != "" },
		build: func(cfg *config.Config, logger *zap.Logger) (reconcile.Provider, error) {
			return openai.New(cfg.OpenAI, logger)
		},
	},
	{
		name:       anthropic.Name,
		configured: func(cfg *config.Config) bool { return strings.TrimSpace(cfg.Anthropic.AdminKey) != "" },
		build: func(cfg *config.Config, logger *zap.Logger) (reconcile.Provider, error) {
			return anthropic.New(cfg.Anthropic, logger)
		},
	},
}

// Supported returns every provider name the binary knows about.
func Supported() []string {
	names := make([]string, 0, len(registry))
	for _, e := range registry {
		names = append(names, e.name)
	}
	return names
}

// Configured returns the names of providers with an admin key set.
func Configured(cfg *config.Config) []string {
	var names []string
	for _, e := range registry {
		if e.configured(cfg) {
			names = append(names, e.name)
		}
	}
	return names
}

// Build constructs the providers named in names, or every configured provider
// when names is empty.
func Build(cfg *config.Config, names []string, logger *zap.Logger) ([]reconcile.Provider, error) {
	if len(names) == 0 {
		names = Configured(cfg)
		if len(names) == 0 {
			return nil, fmt.Errorf("%w: set OPENAI_ADMIN_KEY or ANTHROPIC_ADMIN_KEY", reconcile.ErrNoProviders)
		}
	}

	wanted := make(map[string]struct{}, len(names))
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if !isSupported(name) {
			return nil, fmt.Errorf("%w: %q (supported: %s)", reconcile.ErrUnknownProvider, raw, strings.Join(Supported(), ", "))
		}
		wanted[name] = struct{}{}
	}

	var out []reconcile.Provider
	for _, e := range registry {
		if _, ok := wanted[e.name]; !ok {
			continue
		}
		p, err := e.build(cfg, logger)
		if errors.Is(err, httpclient.ErrMissingCredential) {
			return nil, fmt.Errorf("%w: %s (set %s_ADMIN_KEY)", ErrNotConfigured, e.name, strings.ToUpper(e.name))
		}
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func isSupported(name string) bool {
	for _, e := range registry {
		if e.name == name {
			return true
		}
	}
	return false
}

// Package reconcile runs the user lifecycle operations (add, assign, remove,
// info, list) against every configured AI provider organization.
//
// # Architecture
//
// The package consists of three main components:
//
// 1. Provider: the capability interface each vendor adapter implements (see
// feature/openai and feature/anthropic). Adapters return vendor-agnostic
// identity types; vendor DTOs never cross this boundary.
//
// 2. Engine: validates caller input, fans the per-provider work out (one
// goroutine per provider, joined before returning) and folds the results into a
// Report. A provider failure never cancels or hides its siblings.
//
// 3. SyncCache: TTL-based cache of the merged user list with stampede
// protection, used by the HTTP surface.
//
// Removal is split into PlanRemoval and ApplyRemoval so callers can show the
// planned vendor calls and ask for confirmation before anything is deleted.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(providers, st, log)
//
//	report, err := engine.Add(ctx, "jane@example.com", nil)
//	if err != nil {
//	    return err // validation or provider selection error, nothing was sent
//	}
//	for _, o := range report.Outcomes {
//	    fmt.Println(o.Provider, o.Status, o.Message)
//	}
package reconcile

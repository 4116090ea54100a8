// Package identity holds the vendor-agnostic model shared by every provider
// adapter and the reconciliation operations.
//
// # Model
//
//   - Identity: one human user, keyed by normalized email, with one
//     ProviderMembership per provider that knows the user.
//   - ProviderMembership: a single vendor's view of the user. Optional fields
//     left empty mean "not fetched", never "zero".
//   - APIKeyRef: a named key hint. Full secrets never reach this package.
//   - Invite: a pending or historical organization invitation.
//
// # Merge Engine
//
// Merge and MergeNested fold per-provider fragments into one Identity per email.
// The fold is pure and deterministic: email order is first-seen order and the
// providers of an Identity keep their arrival order.
//
// # Usage
//
//	merged := identity.Merge(openaiUsers, anthropicUsers)
//	for _, u := range merged {
//	    fmt.Println(u.Email, u.ProviderNames())
//	}
package identity

// Package anthropic implements the reconcile.Provider capability against the
// Anthropic organization Admin API.
//
// Requests carry the admin key in the x-api-key header together with a pinned
// anthropic-version. Members map to organization users, workspaces are
// workspaces and key hints come from partial_key_hint. Invite statuses
// (pending, accepted, expired, deleted) map one to one.
package anthropic

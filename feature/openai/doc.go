// Package openai implements the reconcile.Provider capability against the
// OpenAI organization Admin API.
//
// Members map to organization users, workspaces map to projects and key hints
// come from the project API key redacted_value. Spend is read from the
// organization costs endpoint for the current calendar month.
//
// Invite statuses are pending, accepted and expired. The API has no deleted
// status: a removed invite disappears from the listing.
package openai

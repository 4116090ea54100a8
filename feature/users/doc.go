// Package users exposes the reconciliation operations over HTTP.
//
// # Endpoints
//
//   - GET    /users                 merged user list (served from a TTL cache)
//   - GET    /users/:email          live info for one user
//   - POST   /users                 invite a user
//   - POST   /users/:email/assign   give a member their own workspace
//   - DELETE /users/:email          remove a user (dry_run=true returns the plan)
//   - GET    /invites               invites by status
//   - GET    /providers/health      provider reachability
//
// Every endpoint accepts a repeated or comma-separated provider query parameter.
// Responses carry the per-provider outcomes; a request only fails as a whole on
// invalid input or when every targeted provider failed.
package users

// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines the
// settings it reads: the listen port, the API key protecting every route, the
// TTL of the in-memory user list and the per-request timeout for provider calls.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings.
package server

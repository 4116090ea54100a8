// Package providers builds the configured vendor adapters.
//
// A provider is configured when its admin key is set. Callers either take every
// configured provider or name a subset; naming a provider that has no key is a
// configuration error rather than a silent skip.
package providers

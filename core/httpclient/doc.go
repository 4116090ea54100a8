// Package httpclient is the generic JSON client every provider adapter is built on.
//
// A Client is pre-configured with a base URL, an Authenticator and extra headers,
// and exposes Get, Post and Delete that decode JSON responses into a target value.
// Non-2xx responses surface as *APIError. Nothing is retried; the request timeout
// is enforced by the underlying http.Client.
//
// # Usage
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.openai.com/v1",
//	    APIKey:  cfg.AdminKey,
//	    Auth:    httpclient.BearerAuth{},
//	})
//	var out listResponse
//	err = client.Get(ctx, "/organization/users", url.Values{"limit": {"100"}}, &out)
package httpclient

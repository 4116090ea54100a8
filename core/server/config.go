package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// CacheTTLSeconds is how long a synced user list is served from memory.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"60"`
	// RequestTimeoutSeconds bounds each request's provider calls.
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" default:"60"`
}

// IsProtected reports whether requests must carry the API key.
func (c Config) IsProtected() bool {
	return c.ApiKey != ""
}

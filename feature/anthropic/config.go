package anthropic

// Config holds configuration for the Anthropic Admin API.
type Config struct {
	// AdminKey is an organization admin key (sk-ant-admin...). Read from ANTHROPIC_ADMIN_KEY.
	AdminKey string `mapstructure:"admin_key" default:""`
	// BaseURL is the organizations API root.
	BaseURL string `mapstructure:"base_url" default:"https://api.anthropic.com/v1/organizations"`
	// ConsoleURL is the web console root used for workspace links.
	ConsoleURL string `mapstructure:"console_url" default:"https://console.anthropic.com"`
	// Version is sent as the anthropic-version header.
	Version string `mapstructure:"version" default:"2023-06-01"`
	// PageLimit is the page size for list endpoints.
	PageLimit int `mapstructure:"page_limit" default:"100"`
	// TimeoutSeconds bounds every request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

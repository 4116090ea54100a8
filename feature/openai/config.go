package openai

// Config holds configuration for the OpenAI Admin API.
type Config struct {
	// AdminKey is an organization admin key (sk-admin-...). Read from OPENAI_ADMIN_KEY.
	AdminKey string `mapstructure:"admin_key" default:""`
	// BaseURL is the Admin API root.
	BaseURL string `mapstructure:"base_url" default:"https://api.openai.com/v1"`
	// ConsoleURL is the web console root used for workspace links.
	ConsoleURL string `mapstructure:"console_url" default:"https://platform.openai.com"`
	// PageLimit is the page size for list endpoints.
	PageLimit int `mapstructure:"page_limit" default:"100"`
	// TimeoutSeconds bounds every request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

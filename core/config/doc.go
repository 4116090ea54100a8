// Package config provides configuration management for aimgr.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file (loaded with godotenv, overriding the environment).
// Defaults come from the `default` struct tags of each partial config.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, cache TTL)
//   - Log: Logging level and format
//   - Store: local cache driver (file, database, object)
//   - Database: gorm connection for the database driver
//   - Storage: S3/MinIO credentials and bucket for the object driver
//   - OpenAI, Anthropic: admin keys and API endpoints
//
// Nested keys map to environment variables by replacing dots with
// underscores, so openai.admin_key is read from OPENAI_ADMIN_KEY.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Store.Driver)
package config

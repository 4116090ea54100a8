// Package database opens the SQL connection behind the database store driver.
//
// It wraps GORM and configures either MySQL (shared team cache) or SQLite (a
// local file or :memory: for tests). The connection is verified with a ping
// bounded by the configured timeout.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return fmt.Errorf("database store unavailable: %w", err)
//	}
package database

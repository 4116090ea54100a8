package store

// Config holds configuration for the local cache/store.
type Config struct {
	// Driver selects the backend: file, database or object.
	Driver string `mapstructure:"driver" default:"file"`
	// Path is the JSON document location for the file driver.
	Path string `mapstructure:"path" default:".store.json"`
	// ObjectName is the object key for the object driver.
	ObjectName string `mapstructure:"object_name" default:"aimgr/store.json"`
}

const (
	DriverFile     = "file"
	DriverDatabase = "database"
	DriverObject   = "object"
)

// IsValidDriver checks if the configured driver is supported.
func (c Config) IsValidDriver() bool {
	switch c.Driver {
	case DriverFile, DriverDatabase, DriverObject:
		return true
	default:
		return false
	}
}

package fleet

import "time"

// Config holds configuration for the fleet App.
type Config struct {
	// HTTPAddr is the listen address for the HTTP API.
	HTTPAddr string

	// Backend selects the store implementation: "mongo", "postgres", or
	// "memory".
	Backend string

	// MongoURI is the MongoDB connection string (mongo backend).
	MongoURI string

	// Database is the MongoDB database name (mongo backend).
	Database string

	// PostgresDSN is the Postgres connection string (postgres backend).
	PostgresDSN string

	// OperationTimeout bounds each booking operation. Zero disables the
	// deadline.
	OperationTimeout time.Duration

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:         ":8080",
		Backend:          "memory",
		MongoURI:         "mongodb://localhost:27017",
		Database:         "vehicle_allocation",
		OperationTimeout: 10 * time.Second,
		ShutdownTimeout:  30 * time.Second,
	}
}

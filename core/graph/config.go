package graph

// Config holds configuration for the Neo4j graph store.
type Config struct {
	// URI is the Bolt/Neo4j connection URI.
	URI string `mapstructure:"uri" default:"neo4j://localhost:7687"`
	// User is the database user.
	User string `mapstructure:"user" default:"neo4j"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Database selects a named database; empty uses the server default.
	Database string `mapstructure:"database" default:""`
	// TimeoutSeconds bounds connection setup and pool acquisition.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// EnsureIndexes creates lookup indexes for node keys on startup.
	EnsureIndexes bool `mapstructure:"ensure_indexes" default:"true"`
}

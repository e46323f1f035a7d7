package config

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./myvoca.db"

	// DefaultTasksDatabasePath is the default path for the task queue database
	DefaultTasksDatabasePath = "./myvoca-tasks.db"

	// DefaultDotEnvPath is read before the environment is consulted
	DefaultDotEnvPath = ".env"
)

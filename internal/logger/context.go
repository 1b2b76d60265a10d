package logger

// Component-specific logger functions

// HTTP returns a logger for the HTTP surface
func HTTP() Logger {
	return WithField("component", "http")
}

// DB returns a logger for database operations
func DB() Logger {
	return WithField("component", "db")
}

// Policy returns a logger for ownership and sharing policy operations
func Policy() Logger {
	return WithField("component", "policy")
}

// Auth returns a logger for authentication operations
func Auth() Logger {
	return WithField("component", "auth")
}

// CLI returns a logger for CLI operations
func CLI() Logger {
	return WithField("component", "cli")
}

// Migration returns a logger for migration operations
func Migration() Logger {
	return WithField("component", "migration")
}

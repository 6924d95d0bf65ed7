package types

type RunMode string

const (
	// ModeLocal is the mode for running the API server with the in-memory store
	ModeLocal RunMode = "local"
	// ModeAPI is the mode for running the API server against external storage
	ModeAPI RunMode = "api"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
)

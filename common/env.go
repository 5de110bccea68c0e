// Package common provides the types and names shared by the hms daemon and
// its clients.
package common

// Environment variable names for configuration.
const (
	// ConfigDirEnv overrides the configuration directory.
	ConfigDirEnv = "HMS_CONFIG_DIR"

	// ListenEnv overrides the daemon listen address.
	ListenEnv = "HMS_LISTEN"

	// SecretEnv overrides the RPC bearer token.
	SecretEnv = "HMS_RPC_SECRET"

	// DebugEnv enables debug logging.
	DebugEnv = "HMS_DEBUG"
)

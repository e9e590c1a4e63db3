package config

const (
	// userConfigDir is relative to the user's home directory.
	userConfigDir  = ".config/puppetwash"
	configFileName = "config.yaml"

	// EnvConfigPath overrides the default configuration file location.
	EnvConfigPath = "PUPPETWASH_CONFIG"
)

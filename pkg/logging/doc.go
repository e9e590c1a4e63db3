// Package logging provides subsystem-tagged structured logging for puppetwash.
//
// The package wraps Go's standard slog package with a small set of helpers
// that attach a subsystem attribute to every record:
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//	logging.Info("Config", "Loaded %d instances from %s", n, path)
//	logging.Error("PuppetDB", err, "Query %s failed", resource)
//
// # Output
//
// Host protocol commands (list, read, metadata, schema) write their results to
// stdout, so the CLI always initializes logging against stderr. Records below
// the configured level are dropped before any formatting happens.
//
// # Subsystems
//
//   - **Config**: configuration loading and validation
//   - **PuppetDB**: client construction and query execution
//   - **Entry**: tree traversal and state reconstruction
//   - **Plugin**: host protocol encoding
//   - **CLI**: command execution
//
// # Thread Safety
//
// Logging is safe for concurrent use once InitForCLI has returned. InitForCLI
// itself is meant to be called once during startup.
package logging

package cmd

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"

	"puppetwash/internal/config"
	"puppetwash/internal/entry"
	"puppetwash/internal/plugin"
	"puppetwash/internal/puppetdb"
	"puppetwash/pkg/logging"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeAuthConfig indicates an instance has no usable authentication configured.
	ExitCodeAuthConfig = 2
	// ExitCodeRemoteQuery indicates a PuppetDB request failed.
	ExitCodeRemoteQuery = 3
)

var (
	configPath   string
	debugLogging bool
	queryTimeout time.Duration
)

// newEnv turns a loaded configuration into the entry environment. Tests swap
// it to inject client doubles.
var newEnv = entry.NewEnv

// rootCmd represents the base command for the puppetwash application.
var rootCmd = &cobra.Command{
	Use:   "puppetwash",
	Short: "Browse PuppetDB as a read-only tree",
	Long: `puppetwash exposes one or more PuppetDB instances as a tree of
instances, nodes, catalogs, facts and reports.

The init, list, read, metadata and schema commands implement the host
protocol and print JSON meant for a browsing host. The ls, cat and tree
commands walk the same tree by path for interactive use.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logging.LevelInfo
		if debugLogging {
			level = logging.LevelDebug
		}
		// stdout is reserved for command output.
		logging.InitForCLI(level, cmd.ErrOrStderr())
	},
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "puppetwash version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
// This provides semantic exit codes for scripting and automation.
func getExitCode(err error) int {
	var authErr *puppetdb.AuthConfigError
	if errors.As(err, &authErr) {
		return ExitCodeAuthConfig
	}

	var remoteErr *puppetdb.RemoteQueryError
	if errors.As(err, &remoteErr) {
		return ExitCodeRemoteQuery
	}

	return ExitCodeError
}

// loadEnv loads the configuration named by --config.
func loadEnv() (entry.Env, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return entry.Env{}, err
	}
	return newEnv(cfg), nil
}

// loadPlugin returns a plugin for the configuration named by --config.
func loadPlugin() (*plugin.Plugin, error) {
	env, err := loadEnv()
	if err != nil {
		return nil, err
	}
	return plugin.New(env), nil
}

// statePlugin returns a plugin for the protocol calls that take a state
// argument. Their configuration travels in the state, so no file is read.
func statePlugin() *plugin.Plugin {
	return plugin.New(newEnv(config.Config{}))
}

// commandContext bounds a command's requests by --timeout.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, queryTimeout)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is $"+config.EnvConfigPath+" or $HOME/.config/puppetwash/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugLogging, "debug", false, "Enable debug logging (logs every PuppetDB query)")
	rootCmd.PersistentFlags().DurationVar(&queryTimeout, "timeout", time.Minute, "Upper bound for all PuppetDB requests of one command (0 disables)")

	rootCmd.AddCommand(newVersionCmd())
}

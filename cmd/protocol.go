package cmd

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"puppetwash/internal/config"
	"puppetwash/internal/plugin"
)

var entryName string

// writeJSON prints v as a single line of JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

var initCmd = &cobra.Command{
	Use:   "init [config-json]",
	Short: "Print the root descriptor",
	Long: `Print the descriptor of the root entry.

The configuration is taken from the optional JSON argument, which maps
instance names to their settings, or else from the config file. Every
state printed from here on carries the configuration it needs, so list,
read and metadata never consult the config file.

Examples:
  puppetwash init
  puppetwash init '{"pe1":{"puppetdb_url":"https://puppetdb:8081","cacert":"ca.pem","rbac_token":"..."}}'`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := pluginFromArgs(args)
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		root, err := p.Init(ctx)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), root)
	},
}

func pluginFromArgs(args []string) (*plugin.Plugin, error) {
	if len(args) == 0 {
		return loadPlugin()
	}
	cfg, err := config.ParseJSON([]byte(args[0]))
	if err != nil {
		return nil, err
	}
	return plugin.New(newEnv(cfg)), nil
}

var listCmd = &cobra.Command{
	Use:   "list <state>",
	Short: "Print the descriptors of an entry's children",
	Long: `Print the child descriptors of the entry described by state, the
opaque string found in a descriptor's "state" field.

--name should be the descriptor's "name". Reports are labelled by their
end time, which their state does not carry; without --name a report is
known by its hash.

Examples:
  puppetwash list "$(puppetwash init | jq -r .state)"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := statePlugin()
		ctx, cancel := commandContext(cmd)
		defer cancel()

		children, err := p.List(ctx, entryName, args[0])
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), children)
	},
}

var readCmd = &cobra.Command{
	Use:   "read <state>",
	Short: "Print an entry's content",
	Long: `Print the content of the entry described by state.

--name should be the descriptor's "name"; without it a report is known by
its hash.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := statePlugin()
		ctx, cancel := commandContext(cmd)
		defer cancel()

		content, err := p.Read(ctx, entryName, args[0])
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(content)
		return err
	},
}

var metadataCmd = &cobra.Command{
	Use:   "metadata <state>",
	Short: "Print an entry's metadata as JSON",
	Long: `Print the metadata of the entry described by state, fetching it when
the state alone does not hold it.

--name should be the descriptor's "name"; without it a report is known by
its hash.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := statePlugin()
		ctx, cancel := commandContext(cmd)
		defer cancel()

		meta, err := p.Metadata(ctx, entryName, args[0])
		if err != nil {
			return err
		}
		if meta == nil {
			meta = map[string]any{}
		}
		return writeJSON(cmd.OutOrStdout(), meta)
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the schema of every entry type",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeJSON(cmd.OutOrStdout(), plugin.Schema())
	},
}

func init() {
	for _, c := range []*cobra.Command{listCmd, readCmd, metadataCmd} {
		c.Flags().StringVar(&entryName, "name", "", "Name the host knows the entry by (a report falls back to its hash)")
	}
	rootCmd.AddCommand(initCmd, listCmd, readCmd, metadataCmd, schemaCmd)
}

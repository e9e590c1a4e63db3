package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"puppetwash/internal/entry"
	"puppetwash/internal/formatting"
)

var (
	lsOutputFormat   string
	lsQuiet          bool
	metaOutputFormat string
)

// splitPath breaks a /-separated path into its components. The root's own
// name may lead the path.
func splitPath(p string) []string {
	var parts []string
	for _, part := range strings.Split(p, "/") {
		if part != "" && part != "." {
			parts = append(parts, part)
		}
	}
	if len(parts) > 0 && parts[0] == entry.RootName {
		parts = parts[1:]
	}
	return parts
}

// resolvePath walks from root to the entry at p by listing each parent.
func resolvePath(ctx context.Context, root entry.Entry, p string) (entry.Entry, error) {
	current := root
	walked := entry.RootName
	for _, part := range splitPath(p) {
		l, ok := current.(entry.Lister)
		if !ok {
			return nil, fmt.Errorf("%s is not a directory", walked)
		}
		children, err := l.List(ctx)
		if err != nil {
			return nil, err
		}
		var next entry.Entry
		for _, child := range children {
			if child.Name() == part {
				next = child
				break
			}
		}
		if next == nil {
			return nil, fmt.Errorf("%s/%s not found", walked, part)
		}
		current = next
		walked += "/" + part
	}
	return current, nil
}

// listingRow summarizes e for ls output.
func listingRow(e entry.Entry) formatting.ListingRow {
	row := formatting.ListingRow{Name: e.Name(), Kind: string(e.Kind())}
	if spec, ok := entry.TypeOf(e.Kind()); ok {
		row.Methods = append([]string(nil), spec.Methods...)
	}
	if a, ok := e.(entry.Attributed); ok {
		row.Mtime = a.Attributes().Mtime
	}
	return row
}

var lsCmd = &cobra.Command{
	Use:   "ls [path]",
	Short: "List the children of an entry",
	Long: `List the children of the entry at path, or of the root.

Examples:
  puppetwash ls
  puppetwash ls pe1/nodes
  puppetwash ls pe1/nodes/web01.example.com/reports -o json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, ok := formatting.ParseOutputFormat(lsOutputFormat)
		if !ok {
			return fmt.Errorf("unknown output format %q (use table, json or yaml)", lsOutputFormat)
		}
		env, err := loadEnv()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		target, err := resolvePath(ctx, entry.NewRoot(env), firstArg(args))
		if err != nil {
			return err
		}
		l, ok := target.(entry.Lister)
		if !ok {
			return fmt.Errorf("%s is not a directory", target.Name())
		}
		children, err := l.List(ctx)
		if err != nil {
			return err
		}

		rows := make([]formatting.ListingRow, 0, len(children))
		for _, child := range children {
			rows = append(rows, listingRow(child))
		}
		formatter := formatting.NewFormatter(formatting.Options{Format: format, Quiet: lsQuiet})
		return formatter.FormatListing(cmd.OutOrStdout(), rows)
	},
}

var catCmd = &cobra.Command{
	Use:   "cat <path>",
	Short: "Print the content of an entry",
	Long: `Print the content of the entry at path.

Examples:
  puppetwash cat pe1/nodes/web01.example.com/catalog.json
  puppetwash cat pe1/nodes/web01.example.com/facts/os`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		target, err := resolvePath(ctx, entry.NewRoot(env), args[0])
		if err != nil {
			return err
		}
		r, ok := target.(entry.Reader)
		if !ok {
			return fmt.Errorf("%s cannot be read", args[0])
		}
		content, err := r.Read(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if _, err := out.Write(content); err != nil {
			return err
		}
		if len(content) > 0 && content[len(content)-1] != '\n' {
			_, err = fmt.Fprintln(out)
		}
		return err
	},
}

var metaCmd = &cobra.Command{
	Use:   "meta <path>",
	Short: "Print the metadata of an entry",
	Long: `Print the metadata of the entry at path. Nodes show their row from the
nodes listing, reports their summary fields.

Examples:
  puppetwash meta pe1/nodes/web01.example.com
  puppetwash meta pe1/nodes/web01.example.com/reports/2024-01-02T03:04:05Z -o yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, ok := formatting.ParseOutputFormat(metaOutputFormat)
		if !ok {
			return fmt.Errorf("unknown output format %q (use table, json or yaml)", metaOutputFormat)
		}
		env, err := loadEnv()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		target, err := resolvePath(ctx, entry.NewRoot(env), args[0])
		if err != nil {
			return err
		}
		var meta map[string]any
		switch h := target.(type) {
		case entry.MetadataLoader:
			meta, err = h.LoadMetadata(ctx)
		case entry.MetadataHolder:
			meta = h.Metadata()
		default:
			return fmt.Errorf("%s has no metadata", args[0])
		}
		if err != nil {
			return err
		}
		formatter := formatting.NewFormatter(formatting.Options{Format: format})
		return formatter.FormatData(cmd.OutOrStdout(), meta)
	},
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func init() {
	lsCmd.Flags().StringVarP(&lsOutputFormat, "output", "o", "table", "Output format (table, json, yaml)")
	lsCmd.Flags().BoolVarP(&lsQuiet, "quiet", "q", false, "Suppress non-essential output")
	metaCmd.Flags().StringVarP(&metaOutputFormat, "output", "o", "table", "Output format (table, json, yaml)")
	rootCmd.AddCommand(lsCmd, catCmd, metaCmd)
}

package cmd

import (
	"context"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"puppetwash/internal/entry"
	"puppetwash/pkg/logging"
)

var (
	treeDepth       int
	treeConcurrency int
)

// treeNode is one listed entry and the children found under it.
type treeNode struct {
	entry    entry.Entry
	children []*treeNode
}

// walkTree lists the subtree under root one level at a time, listing the
// entries of a level concurrently. depth bounds the number of levels below
// root; zero or less walks everything.
func walkTree(ctx context.Context, root entry.Entry, depth, concurrency int) (*treeNode, error) {
	if concurrency < 1 {
		return nil, fmt.Errorf("concurrency must be at least 1, got %d", concurrency)
	}

	top := &treeNode{entry: root}
	level := []*treeNode{top}
	for d := 0; len(level) > 0 && (depth <= 0 || d < depth); d++ {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(concurrency)
		for _, n := range level {
			l, ok := n.entry.(entry.Lister)
			if !ok {
				continue
			}
			g.Go(func() error {
				children, err := l.List(gctx)
				if err != nil {
					return err
				}
				n.children = make([]*treeNode, 0, len(children))
				for _, c := range children {
					n.children = append(n.children, &treeNode{entry: c})
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		var next []*treeNode
		for _, n := range level {
			next = append(next, n.children...)
		}
		logging.Debug("CLI", "tree level %d: %d entries", d+1, len(next))
		level = next
	}
	return top, nil
}

// renderTree draws n and its descendants with connecting lines.
func renderTree(n *treeNode) string {
	w := list.NewWriter()
	w.SetStyle(list.StyleConnectedLight)
	appendTree(w, n)
	return w.Render()
}

func appendTree(w list.Writer, n *treeNode) {
	w.AppendItem(n.entry.Name())
	if len(n.children) == 0 {
		return
	}
	w.Indent()
	for _, c := range n.children {
		appendTree(w, c)
	}
	w.UnIndent()
}

var treeCmd = &cobra.Command{
	Use:   "tree [path]",
	Short: "Print the tree below an entry",
	Long: `Print the entries below path, or below the root, as a tree.

Each level is listed concurrently, with at most --concurrency requests in
flight. Listing stops after --depth levels.

Examples:
  puppetwash tree
  puppetwash tree pe1/nodes --depth 2 --concurrency 16`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv()
		if err != nil {
			return err
		}
		ctx, cancel := commandContext(cmd)
		defer cancel()

		start, err := resolvePath(ctx, entry.NewRoot(env), firstArg(args))
		if err != nil {
			return err
		}
		top, err := walkTree(ctx, start, treeDepth, treeConcurrency)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), renderTree(top))
		return err
	},
}

func init() {
	treeCmd.Flags().IntVar(&treeDepth, "depth", 4, "Number of levels to list (0 for no limit)")
	treeCmd.Flags().IntVar(&treeConcurrency, "concurrency", 8, "Maximum number of concurrent listings")
	rootCmd.AddCommand(treeCmd)
}

package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hierpart/pkg/hierpart"
	hpio "github.com/matzehuels/hierpart/pkg/io"
)

var (
	treeRootStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	treeEnumStyle     = lipgloss.NewStyle().Foreground(colorDim)
	treeImplicitStyle = lipgloss.NewStyle().Foreground(colorGray).Italic(true)
)

// showCommand creates the show command.
func (c *CLI) showCommand() *cobra.Command {
	var (
		format string
		flat   bool
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "show [file]",
		Short: "Print a hierarchical partition",
		Long: `Print a hierarchical partition as a tree.

Each module shows its identifier, size and, for leaves, its elements.
Elements of a module that none of its children covers are listed in
italics as implicit singletons. --flat prints one line per module in
identifier order instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadTree(args[0], format)
			if err != nil {
				return err
			}
			if flat {
				printFlat(p)
				return nil
			}
			fmt.Fprintln(stdout, buildTree(p, limit).String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "input format: json, yaml or paths (default: from extension)")
	cmd.Flags().BoolVar(&flat, "flat", false, "one line per module in identifier order")
	cmd.Flags().IntVar(&limit, "max-elements", 8, "elements listed per module (0 for all)")

	return cmd
}

// loadTree imports path, using format when given.
func loadTree(path, format string) (*hierpart.Partition[string], error) {
	if format == "" {
		return hpio.Import(path)
	}
	f, err := hpio.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return hpio.ImportAs(path, f)
}

// printFlat prints "id: e1 e2 ..." for every module.
func printFlat(p *hierpart.Partition[string]) {
	for id, elems := range p.Show() {
		fmt.Fprintf(stdout, "%d: %s\n", id, strings.Join(elems, " "))
	}
}

// buildTree converts p into a lipgloss tree. Nodes are created for every
// module first and linked in identifier order, so children keep their
// insertion order and deep hierarchies need no recursion.
func buildTree(p *hierpart.Partition[string], limit int) *tree.Tree {
	nodes := make([]*tree.Tree, p.Len())
	for id, elems := range p.Show() {
		nodes[id] = tree.Root(moduleLabel(id, elems, p.IsLeaf(id), limit))
	}
	for _, e := range p.Edges() {
		nodes[e.Parent].Child(nodes[e.Child])
	}
	for id := range p.Show() {
		if p.IsLeaf(id) {
			continue
		}
		for _, g := range p.Level(id) {
			if g.IsImplicit() {
				nodes[id].Child(treeImplicitStyle.Render(g.Elements[0]))
			}
		}
	}

	root := nodes[p.Root()]
	root.Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(treeEnumStyle).
		RootStyle(treeRootStyle)
	return root
}

// moduleLabel renders "id (size)" and, for leaves, the elements truncated
// to limit.
func moduleLabel(id hierpart.ModuleID, elems []string, leaf bool, limit int) string {
	label := fmt.Sprintf("%d (%d)", id, len(elems))
	if !leaf {
		return label
	}
	return label + " " + StyleDim.Render(truncateElements(elems, limit))
}

// truncateElements joins elems, keeping at most limit and noting the rest.
func truncateElements(elems []string, limit int) string {
	if limit <= 0 || len(elems) <= limit {
		return strings.Join(elems, " ")
	}
	return fmt.Sprintf("%s … +%d", strings.Join(elems[:limit], " "), len(elems)-limit)
}

package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hierpart/pkg/hierpart"
	"github.com/matzehuels/hierpart/pkg/pipeline"
)

// statsCommand creates the stats command.
func (c *CLI) statsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "stats [file...]",
		Short: "Summarize the shape of hierarchical partitions",
		Long: `Print one row per tree: universe size, module and leaf counts, the
depth of the leaves and the branching factor of internal modules.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(args))
			for _, path := range args {
				p, err := loadTree(path, format)
				if err != nil {
					return err
				}
				rows = append(rows, statsRow(path, p))
			}
			fmt.Fprintln(stdout, statsTable(rows).Render())
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "input format: json, yaml or paths (default: from extension)")

	return cmd
}

var statsHeaders = []string{"Tree", "Elements", "Modules", "Leaves", "Depth", "Leaf depth", "Branching", "Complete", "Fingerprint"}

// statsRow formats the statistics of one tree.
func statsRow(path string, p *hierpart.Partition[string]) []string {
	depth := p.DepthStats()
	branching := p.BranchingStats(false)
	complete := "yes"
	if !p.Complete() {
		complete = "no"
	}
	return []string{
		path,
		fmt.Sprint(p.UniverseSize()),
		fmt.Sprint(p.Len()),
		fmt.Sprint(len(p.Leaves())),
		fmt.Sprint(p.MaxDepth()),
		fmt.Sprintf("%.2f ± %.2f", depth.Mean, depth.Std),
		fmt.Sprintf("%.2f ± %.2f", branching.Mean, branching.Std),
		complete,
		pipeline.Fingerprint(p)[:12],
	}
}

func statsTable(rows [][]string) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(statsHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle.Foreground(colorWhite)
			case col == len(statsHeaders)-1:
				return cellStyle.Foreground(colorDim)
			}
			return cellStyle.Foreground(colorCyan)
		})
}

package cli

import (
	"github.com/spf13/cobra"

	hpio "github.com/matzehuels/hierpart/pkg/io"
)

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "convert [input] [output]",
		Short: "Convert a tree between file formats",
		Long: `Convert a hierarchical partition between JSON, YAML and the paths format.

Formats are inferred from the file extensions (.json, .yaml/.yml,
.paths/.hp/.txt) unless --from or --to is given. Use "-" as output to
write to stdout.`,
		Example: `  hierpart convert tree.json tree.yaml
  hierpart convert --to paths tree.json -`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			p, err := loadTree(args[0], from)
			if err != nil {
				return err
			}

			out := args[1]
			if out == "-" {
				f := hpio.FormatJSON
				if to != "" {
					if f, err = hpio.ParseFormat(to); err != nil {
						return err
					}
				}
				return hpio.Write(p, stdout, f)
			}

			if to == "" {
				err = hpio.Export(p, out)
			} else {
				var f hpio.Format
				if f, err = hpio.ParseFormat(to); err != nil {
					return err
				}
				err = hpio.ExportAs(p, out, f)
			}
			if err != nil {
				return err
			}
			logger.Infof("Wrote %d modules to %s", p.Len(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "input format: json, yaml or paths")
	cmd.Flags().StringVar(&to, "to", "", "output format: json, yaml or paths")

	return cmd
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hierpart/pkg/hierpart"
	"github.com/matzehuels/hierpart/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string   // output file path (or base path for multiple outputs)
	formats     []string // output formats: "dot", "svg", "pdf", "png"
	input       string   // input format, inferred from the extension when empty
	detailed    bool     // list elements inside each module
	maxElements int      // truncate detailed element lists
	implicit    bool     // draw implicit singletons
	scale       float64  // PNG scale factor
}

// renderCommand creates the render command for generating diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{maxElements: 8, scale: 2}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Draw a hierarchical partition with Graphviz",
		Long: `Draw a hierarchical partition as a top-down tree of modules.

DOT and SVG are produced in-process. PDF and PNG additionally require
rsvg-convert (librsvg).`,
		Example: `  hierpart render tree.json
  hierpart render tree.json -f svg,png --detailed -o out/tree`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, pdf, png (comma-separated)")
	cmd.Flags().StringVar(&opts.input, "input-format", "", "input format: json, yaml or paths (default: from extension)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "list the elements of each module")
	cmd.Flags().IntVar(&opts.maxElements, "max-elements", opts.maxElements, "elements listed per module with --detailed (0 for all)")
	cmd.Flags().BoolVar(&opts.implicit, "implicit", false, "draw implicit singletons")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	return strings.Split(s, ",")
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{"dot": true, "svg": true, "pdf": true, "png": true}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'dot', 'svg', 'pdf', or 'png')", f)
		}
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// runRender loads the tree and writes one file per requested format.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	p, err := loadTree(input, opts.input)
	if err != nil {
		return err
	}
	logger.Infof("Loaded tree: %d modules, %d elements", p.Len(), p.UniverseSize())

	base := basePath(opts.output, input)
	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()
	var written []string
	for _, format := range opts.formats {
		path := base + "." + format
		if len(opts.formats) == 1 && opts.output != "" {
			path = opts.output
		}
		spinner.Update("Rendering " + format + "...")
		data, err := renderTree(ctx, p, format, opts)
		if err != nil {
			spinner.StopWithError("Rendering " + format + " failed")
			return fmt.Errorf("%s: %w", format, err)
		}
		if err := writeFile(path, data); err != nil {
			spinner.Stop()
			return err
		}
		logger.Debug("wrote output", "format", format, "path", path, "bytes", len(data))
		written = append(written, path)
	}
	spinner.StopWithSuccess("Generated %s", strings.Join(written, ", "))
	return nil
}

// renderTree produces the bytes of one format. SVG is the base for PDF and
// PNG.
func renderTree(ctx context.Context, p *hierpart.Partition[string], format string, opts *renderOpts) ([]byte, error) {
	dot := render.ToDOT(p, render.Options{
		Detailed:    opts.detailed,
		MaxElements: opts.maxElements,
		Implicit:    opts.implicit,
	})
	if format == "dot" {
		return []byte(dot), nil
	}

	svg, err := render.RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	switch format {
	case "svg":
		return svg, nil
	case "pdf":
		return render.ToPDF(ctx, svg)
	case "png":
		return render.ToPNG(ctx, svg, opts.scale)
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is "-", it returns stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

// writeFile writes data through openOutput.
func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

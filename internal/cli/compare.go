package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	hpio "github.com/matzehuels/hierpart/pkg/io"
	"github.com/matzehuels/hierpart/pkg/pipeline"
)

// compareOpts holds the command-line flags for the compare command.
type compareOpts struct {
	mean    string // normalization: max or geometric (default from config)
	format  string // input format, inferred from extensions when empty
	noCache bool   // bypass the cache entirely
	refresh bool   // recompute and overwrite cached results
	trace   bool   // log every compared level pair
	json    bool   // print the result as JSON
	quiet   bool   // print only the four numbers
}

// compareCommand creates the compare command.
func (c *CLI) compareCommand() *cobra.Command {
	var opts compareOpts

	cmd := &cobra.Command{
		Use:   "compare [tree-a] [tree-b]",
		Short: "Compare two hierarchical partitions",
		Long: `Compare two hierarchical partitions of the same universe.

Prints the normalized hierarchical mutual information (1 for identical
hierarchies, lower for more different ones), the cross information and
each tree's self-information. Results are cached by tree structure.`,
		Example: `  hierpart compare x.json y.json
  hierpart compare --mean geometric x.yaml y.yaml
  hierpart compare -q x.paths y.paths`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompare(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVar(&opts.mean, "mean", "", "normalization: max (default) or geometric")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "input format: json, yaml or paths (default: from extension)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "log every level pair (implies debug logging)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "print only: normalized cross self_a self_b")

	return cmd
}

func (c *CLI) runCompare(cmd *cobra.Command, pathA, pathB string, opts compareOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	var format hpio.Format
	if opts.format != "" {
		f, err := hpio.ParseFormat(opts.format)
		if err != nil {
			return err
		}
		format = f
	}

	runner := c.newRunner(ctx, opts.noCache)
	defer runner.Close()

	prog := newProgress(logger)
	a, err := runner.Load(ctx, pathA, format)
	if err != nil {
		return err
	}
	b, err := runner.Load(ctx, pathB, format)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Loaded %d and %d modules over %d elements", a.Len(), b.Len(), a.UniverseSize()))

	popts := c.pipelineOptions(opts.mean)
	popts.Refresh = opts.refresh
	if opts.trace {
		popts.Trace = true
		c.SetLogLevel(LogDebug)
	}

	var spinner *Spinner
	if !opts.trace && !opts.json && !opts.quiet {
		spinner = newSpinnerWithContext(ctx, "Comparing...")
		spinner.Start()
	}
	res, err := runner.Compare(ctx, a, b, popts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	switch {
	case opts.json:
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case opts.quiet:
		n, cross, sa, sb := res.Score.Values()
		_, err := fmt.Fprintf(stdout, "%.10g %.10g %.10g %.10g\n", n, cross, sa, sb)
		return err
	}
	printResult(pathA, pathB, res)
	return nil
}

// printResult prints a comparison in the styled key-value layout.
func printResult(pathA, pathB string, res *pipeline.Result) {
	printSuccess("%s %s %s", StyleValue.Render(pathA), StyleDim.Render("vs"), StyleValue.Render(pathB))
	printKeyValue("normalized", StyleNumber.Render(fmt.Sprintf("%.6f", res.Score.Normalized)))
	printKeyValue("cross", fmt.Sprintf("%.6f", res.Score.Cross))
	printKeyValue("self a", fmt.Sprintf("%.6f", res.Score.SelfA))
	printKeyValue("self b", fmt.Sprintf("%.6f", res.Score.SelfB))
	printKeyValue("mean", res.Mean)
	printStatus(res.CacheHit, res.Duration)
}

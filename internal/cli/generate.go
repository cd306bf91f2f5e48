package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/felipe/pkg/pipeline"
)

type generateOptions struct {
	configPath string
	srcDir     string
	outDir     string
	validate   bool
}

// runGenerate loads the configuration and runs the batch. It fails when
// the configuration cannot be used or when any input failed.
func (c *CLI) runGenerate(cmd *cobra.Command, opts generateOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	prog := newProgress(logger)
	set, err := pipeline.LoadConfig(ctx, opts.configPath, logger)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	prog.done("loaded configuration",
		"path", opts.configPath,
		"components", len(set.ComponentNames()),
		"relations", len(set.RelationNames()))

	runner := pipeline.NewRunner(set, logger)
	runner.Validate = opts.validate

	report, err := runner.Run(ctx, pipeline.Options{SrcDir: opts.srcDir, OutDir: opts.outDir})
	if err != nil {
		return err
	}

	printReport(cmd.OutOrStdout(), report)
	if n := report.Failed(); n > 0 {
		return fmt.Errorf("%d of %d inputs failed", n, len(report.Outcomes))
	}
	return nil
}

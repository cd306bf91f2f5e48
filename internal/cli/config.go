package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/felipe/pkg/config"
	"github.com/matzehuels/felipe/pkg/pipeline"
)

// configCommand prints the configuration with every type flattened, which
// is what the emitter actually uses.
func (c *CLI) configCommand(path *string) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved styling configuration",
		Long: `Resolve every component and relation type along its base chain and print
the result as YAML.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			set, err := pipeline.LoadConfig(ctx, *path, loggerFromContext(ctx))
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			out, err := config.Marshal(set)
			if err != nil {
				return fmt.Errorf("render configuration: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

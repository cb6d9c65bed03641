package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openkeg/openkeg/internal/adapters/outbound/host"
	"github.com/openkeg/openkeg/internal/adapters/outbound/tui"
)

func newCaveatsCmd(g *globals) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "caveats FORMULA.yaml",
		Short: "Show the caveats of an installed formula",
		Long:  "Print what a user should know after installing a formula: keg-only PATH hints, shell completions, services and Python site-packages.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := host.CaveatsService(g.logger).Caveats(g.configPath, args[0])
			if err != nil {
				return fmt.Errorf("caveats failed: %w", err)
			}

			switch {
			case jsonOutput:
				return renderJSON(cmd, report)
			case styled(cmd.OutOrStdout()):
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderCaveats(report))
			default:
				fmt.Fprint(cmd.OutOrStdout(), tui.PlainCaveats(report))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output caveats as JSON")

	return cmd
}

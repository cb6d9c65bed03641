package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openkeg/openkeg/internal/adapters/outbound/host"
	"github.com/openkeg/openkeg/internal/adapters/outbound/tui"
)

func newAuditCmd(g *globals) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "audit FORMULA.yaml",
		Short: "Run the cellar health checks against an installed formula",
		Long:  "Check an installed keg for shadowed headers, system OpenSSL and Python links, system Python shebangs and broken dynamic library links. Exits non-zero when the installation is broken.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := host.AuditService(g.logger).Audit(g.configPath, args[0])
			if err != nil {
				return fmt.Errorf("audit failed: %w", err)
			}

			switch {
			case jsonOutput:
				if err := renderJSON(cmd, report); err != nil {
					return err
				}
			case styled(cmd.OutOrStdout()):
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderAuditReport(report))
			default:
				fmt.Fprint(cmd.OutOrStdout(), tui.PlainAuditReport(report))
			}

			if !report.Passed() {
				return fmt.Errorf("%s: %s", report.Formula, report.Failure.Title)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the audit report as JSON")

	return cmd
}

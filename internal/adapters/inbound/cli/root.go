package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version = "dev"
	commit  = "none"
)

// globals are the persistent flags and the logger built from them.
type globals struct {
	configPath string
	verbose    bool
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	g := &globals{logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:           "openkeg",
		Short:         "Post-install caveats and cellar health checks",
		Long:          "openkeg explains what to do after installing a formula and checks the installed keg for broken linkage and other problems.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(g.verbose)
			if err != nil {
				return err
			}
			g.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = g.logger.Sync()
		},
	}

	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "Path to .openkeg.yaml (default $OPENKEG_CONFIG or ~/.openkeg.yaml)")
	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newCaveatsCmd(g))
	cmd.AddCommand(newAuditCmd(g))
	cmd.AddCommand(newMCPCmd(g))
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

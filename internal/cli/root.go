package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"framepacer/internal/logging"
)

var (
	flagConfig    string
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
)

// NewRootCmd creates the root cobra command for the framesim CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "framesim",
		Short: "framesim: frame-budgeted job scheduler simulator",
		Long: "framesim drives a simulated open-world entity load against the\n" +
			"frame-budgeted job scheduler and reports its statistics.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.New(logging.ParseLevel(flagLogLevel), flagLogFormat)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config.yml (defaults apply if missing)")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newRunCmd(),
	)

	return root
}

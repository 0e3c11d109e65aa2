// Package cli implements the designpanda command line tool.
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
)

type globalOptions struct {
	verbose bool
}

func (o *globalOptions) logger() *zap.Logger {
	if !o.verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:           "designpanda",
		Short:         "Architecture recommendations from project requirements",
		Long:          "DesignPanda turns a requirements file into an architecture recommendation, using an AI backend when it is reachable and local rules when it is not.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log pipeline activity to stderr")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newRecommendCmd(opts))
	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newExtractCmd())
	cmd.AddCommand(newCheckBackendCmd(opts))
	cmd.AddCommand(newAdminTokenCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

// envOr returns the environment value for key, or def
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/aiagent"
	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/settings"
)

var errBackendUnreachable = errors.New("backend connection test failed")

func newCheckBackendCmd(opts *globalOptions) *cobra.Command {
	var (
		backendURL string
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "check-backend",
		Short: "Send the connection-test request to the AI backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := settings.ValidateBackendURL(backendURL)
			if err != nil {
				return err
			}

			client := aiagent.NewClient(timeout, nil, opts.logger())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Backend: %s\n", target)

			res, err := client.CheckConnection(cmd.Context(), target)
			if err != nil {
				fmt.Fprintf(out, "❌ Could not connect: %v\n", err)
				return errBackendUnreachable
			}

			fmt.Fprintf(out, "✅ Connected (HTTP %d in %s)\n", res.StatusCode, res.Latency.Round(time.Millisecond))
			if !res.HasArchitecture {
				fmt.Fprintln(out, "   Warning: response did not include an architecture")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&backendURL, "backend", envOr("BACKEND_URL", settings.DefaultBackendURL), "AI backend base URL")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")
	return cmd
}

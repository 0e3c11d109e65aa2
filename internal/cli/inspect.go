package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aaryan1901/Agentic-AI-Software-Architecture/internal/bundle"
)

var errVerificationFailed = errors.New("bundle verification failed")

func newInspectCmd() *cobra.Command {
	var signingKey string

	cmd := &cobra.Command{
		Use:   "inspect <bundle.json>",
		Short: "Verify an export bundle and display its recommendation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := bundle.Load(args[0])
			if err != nil {
				return fmt.Errorf("loading bundle: %w", err)
			}

			result := bundle.NewService(signingKey).Verify(b)
			out := cmd.OutOrStdout()

			rule := strings.Repeat("═", 63)
			fmt.Fprintln(out, rule)
			fmt.Fprintln(out, "                 DesignPanda Export Bundle")
			fmt.Fprintln(out, rule)
			fmt.Fprintf(out, "Bundle:   %s\n", args[0])
			fmt.Fprintf(out, "ID:       %s\n", b.ID)
			fmt.Fprintf(out, "Created:  %s\n", b.CreatedAt)
			fmt.Fprintf(out, "Hash:     %s\n", b.ContentHash)
			fmt.Fprintln(out, strings.Repeat("─", 63))

			if result.Valid {
				fmt.Fprintln(out, "✅ VERIFICATION PASSED")
			} else {
				fmt.Fprintln(out, "❌ VERIFICATION FAILED")
			}
			fmt.Fprintf(out, "   Hash Valid:      %s\n", boolIcon(result.HashValid))
			fmt.Fprintf(out, "   Signature Valid: %s\n", boolIcon(result.SignatureValid))
			if len(result.Errors) > 0 {
				fmt.Fprintln(out, "\nErrors/Warnings:")
				for _, e := range result.Errors {
					fmt.Fprintf(out, "   • %s\n", e)
				}
			}
			fmt.Fprintln(out)

			if !result.Valid {
				return errVerificationFailed
			}
			fmt.Fprint(out, RenderResult(b.Requirements.ProjectName, &b.Result))
			return nil
		},
	}

	cmd.Flags().StringVar(&signingKey, "signing-key", envOr("BUNDLE_SIGNING_KEY", ""), "HMAC key used to check the signature")
	return cmd
}

func boolIcon(b bool) string {
	if b {
		return "✅"
	}
	return "❌"
}
